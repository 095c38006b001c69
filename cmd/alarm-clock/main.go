// Command alarm-clock sounds hourly and ten-past-hour chimes on a GPIO
// buzzer, keeping time over NTP and publishing telemetry to MQTT.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/alarm-clock/internal/gpio"
	"github.com/sweeney/alarm-clock/internal/logic"
	"github.com/sweeney/alarm-clock/internal/mqtt"
	"github.com/sweeney/alarm-clock/internal/netlink"
	"github.com/sweeney/alarm-clock/internal/status"
	"github.com/sweeney/alarm-clock/internal/timesync"
	"github.com/sweeney/alarm-clock/internal/tone"
)

type config struct {
	poll         time.Duration
	pin          int
	quietStart   int
	quietEnd     int
	beep         time.Duration
	gap          time.Duration
	repeatGap    time.Duration
	minSleep     time.Duration
	networkCheck time.Duration
	resync       time.Duration
	heartbeat    time.Duration
	iface        string
	ntpServer    string
	broker       string
	printTime    bool
}

func main() {
	var cfg config
	flag.DurationVar(&cfg.poll, "poll", 500*time.Millisecond, "Clock polling interval")
	flag.IntVar(&cfg.pin, "pin", gpio.DefaultPinBuzzer, "BCM pin number for the buzzer")
	flag.IntVar(&cfg.quietStart, "quiet-start", logic.DefaultQuietWindow.StartHour, "First hour alarms may sound (inclusive)")
	flag.IntVar(&cfg.quietEnd, "quiet-end", logic.DefaultQuietWindow.EndHour, "Last hour alarms may sound (inclusive)")
	flag.DurationVar(&cfg.beep, "beep", 200*time.Millisecond, "Beep duration")
	flag.DurationVar(&cfg.gap, "gap", 200*time.Millisecond, "Pause between beeps")
	flag.DurationVar(&cfg.repeatGap, "repeat-gap", 500*time.Millisecond, "Pause between repeats")
	flag.DurationVar(&cfg.minSleep, "min-sleep", tone.DefaultMinSleep, "Minimum schedulable sleep quantum for tone timing")
	flag.DurationVar(&cfg.networkCheck, "network-check", 30*time.Second, "Network health check interval (0 to disable)")
	flag.DurationVar(&cfg.resync, "resync", time.Hour, "NTP resync interval (0 to disable)")
	flag.DurationVar(&cfg.heartbeat, "heartbeat", 15*time.Minute, "Heartbeat interval (0 to disable)")
	flag.StringVar(&cfg.iface, "iface", netlink.DefaultInterface, "Network interface to watch")
	flag.StringVar(&cfg.ntpServer, "ntp-server", timesync.DefaultServer, "NTP server")
	flag.StringVar(&cfg.broker, "broker", "tcp://192.168.1.200:1883", "MQTT broker address")
	flag.BoolVar(&cfg.printTime, "print-time", false, "Print the synchronized time and exit")
	flag.Parse()

	if err := run(cfg); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

func run(cfg config) error {
	// Print time mode
	if cfg.printTime {
		source := timesync.NewNTPSource(cfg.ntpServer)
		if err := source.Reinitialize(); err != nil {
			return fmt.Errorf("time sync: %w", err)
		}
		wc := logic.SampleEpoch(source.EpochSeconds())
		fmt.Printf("%02d:%02d:%02d\n", wc.Hours, wc.Minutes, wc.Seconds)
		return nil
	}

	// Bring the network up first; time sync needs the link.
	network := netlink.NewRealNetwork(cfg.iface, nil)
	if !network.IsConnected() {
		log.Printf("connecting network on %s", cfg.iface)
		if err := network.Connect(); err != nil {
			log.Printf("initial connect: %v", err)
		}
		if ip, err := network.WaitForIP(); err != nil {
			log.Printf("wait for ip: %v", err)
		} else {
			log.Printf("network up, ip %s", ip)
		}
	}

	// Block until the clock is trustworthy; alarms before the first
	// sync would fire at arbitrary times.
	source := timesync.NewNTPSource(cfg.ntpServer)
	log.Printf("waiting for initial time sync from %s", cfg.ntpServer)
	for source.Status() != timesync.SyncCompleted {
		if err := source.Reinitialize(); err != nil {
			log.Printf("time sync error: %v", err)
			time.Sleep(cfg.poll)
		}
	}
	log.Printf("initial time sync complete")

	publisher := mqtt.NewRealPublisher(cfg.broker)
	defer publisher.Close()

	startTime := time.Now()
	tracker := status.NewTracker(startTime, status.Config{
		PollMs:         cfg.poll.Milliseconds(),
		QuietStartHour: cfg.quietStart,
		QuietEndHour:   cfg.quietEnd,
		BeepMs:         cfg.beep.Milliseconds(),
		NetworkCheckMs: cfg.networkCheck.Milliseconds(),
		ResyncMs:       cfg.resync.Milliseconds(),
		HeartbeatMs:    cfg.heartbeat.Milliseconds(),
		Broker:         cfg.broker,
		NTPServer:      cfg.ntpServer,
		Pin:            cfg.pin,
	})
	tracker.SetSyncState(source.Status())

	// The actuator owns the pin for the process lifetime. If the pin
	// cannot be acquired the worker never starts and the closed queue
	// drops alarms with a logged send failure; scheduling continues.
	queue := tone.NewQueue()
	var actuator *tone.Actuator
	line, err := gpio.NewRealLine(cfg.pin)
	if err != nil {
		log.Printf("init gpio: %v (alarms disabled)", err)
		queue.Close()
	} else {
		defer line.Close()
		gen := tone.NewGenerator(line, cfg.minSleep)
		player := tone.NewPlayer(gen, tone.Timing{
			BeepDuration:     cfg.beep,
			InterBeepPause:   cfg.gap,
			InterRepeatPause: cfg.repeatGap,
		})
		actuator = tone.NewActuator(queue, player)
		actuator.Start()
	}

	// Publish startup event with full status snapshot
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Printf("failed to publish startup event: %v", err)
	} else {
		log.Printf("published startup event")
	}

	log.Printf("started: poll=%v pin=%d quiet=[%d,%d] broker=%s ntp=%s",
		cfg.poll, cfg.pin, cfg.quietStart, cfg.quietEnd, cfg.broker, cfg.ntpServer)

	ticker := time.NewTicker(cfg.poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	deps := loopDeps{
		source:     source,
		network:    network,
		publisher:  publisher,
		mqttStatus: publisher,
		tracker:    tracker,
		queue:      queue,
		evaluator:  logic.NewEvaluator(logic.QuietWindow{StartHour: cfg.quietStart, EndHour: cfg.quietEnd}),
		monitor:    logic.NewMonitor(cfg.networkCheck, cfg.resync, cfg.heartbeat, startTime),
		iface:      cfg.iface,
	}
	loopErr := runLoop(deps, time.Now, ticker.C, sigCh)

	// Let queued alarms finish before the pin is released.
	queue.Close()
	if actuator != nil {
		select {
		case <-actuator.Done():
		case <-time.After(30 * time.Second):
			log.Printf("actuator drain timeout")
		}
	}
	return loopErr
}

// loopDeps carries the detection loop's collaborators. All mutable
// schedule state lives in evaluator and monitor, owned by the loop.
type loopDeps struct {
	source     timesync.Source
	network    netlink.Network
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	tracker    *status.Tracker
	queue      *tone.Queue
	evaluator  *logic.Evaluator
	monitor    *logic.Monitor
	iface      string
}

func runLoop(d loopDeps, now func() time.Time, tick <-chan time.Time, sig <-chan os.Signal) error {
	for {
		select {
		case s := <-sig:
			log.Printf("received %v, shutting down", s)
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if d.tracker != nil {
				if d.mqttStatus != nil {
					d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
				}
				snap := d.tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if d.publisher != nil {
				if err := d.publisher.PublishSystem(event); err != nil {
					log.Printf("failed to publish shutdown event: %v", err)
				} else {
					log.Printf("published shutdown event")
				}
			}
			return nil

		case <-tick:
			t := now()
			wc := logic.SampleEpoch(d.source.EpochSeconds())

			for _, f := range d.evaluator.Process(wc) {
				log.Printf("ALARM! %s at %02d:%02d (repeats=%d freq=%dHz)",
					f.Kind, wc.Hours, wc.Minutes, f.Command.Repeats, f.Command.FrequencyHz)
				if err := d.queue.Send(f.Command); err != nil {
					// A dropped tone is non-fatal to scheduling.
					log.Printf("alarm dropped: %v", err)
				}
				if d.publisher != nil {
					event := mqtt.AlarmEvent{
						Timestamp:   t,
						Kind:        f.Kind,
						Hour:        f.Hour,
						Repeats:     f.Command.Repeats,
						FrequencyHz: f.Command.FrequencyHz,
					}
					if err := d.publisher.PublishAlarm(event); err != nil {
						log.Printf("alarm publish error: %v", err)
					}
				}
			}

			if d.evaluator.CheckStatusLog(wc) {
				log.Printf("time: %02d:%02d", wc.Hours, wc.Minutes)
			}

			if d.monitor.CheckNetwork(t) {
				checkNetwork(d.network, d.tracker, d.iface)
			}

			if d.monitor.CheckResync(t) {
				log.Printf("performing scheduled time resync")
				if err := d.source.Reinitialize(); err != nil {
					log.Printf("time resync error: %v", err)
				}
			}

			// Update status tracker for heartbeat consumers
			if d.tracker != nil {
				d.tracker.Update(wc, d.evaluator.Counts(), d.queue.Len())
				d.tracker.SetSyncState(d.source.Status())
				if d.mqttStatus != nil {
					d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
				}
			}

			if d.monitor.CheckHeartbeat(t) && d.publisher != nil && d.tracker != nil {
				snap := d.tracker.Snapshot()
				log.Printf("heartbeat: uptime=%v hourly=%d ten_past=%d",
					snap.Uptime().Truncate(time.Second), snap.Counts.Hourly, snap.Counts.TenPast)

				hbEvent := mqtt.SystemEvent{
					Timestamp:  t,
					Event:      "HEARTBEAT",
					RawPayload: status.FormatStatusEvent(snap, "HEARTBEAT", ""),
				}
				if err := d.publisher.PublishSystem(hbEvent); err != nil {
					log.Printf("heartbeat publish error: %v", err)
				}
			}
		}
	}
}

// checkNetwork runs one health check: reconnect if the link is down.
// No backoff; the monitor retries at the next fixed interval regardless.
func checkNetwork(network netlink.Network, tracker *status.Tracker, iface string) {
	if network == nil {
		return
	}
	if network.IsConnected() {
		return
	}

	log.Printf("network down, reconnecting %s", iface)
	if err := network.Connect(); err != nil {
		log.Printf("reconnect error: %v", err)
		if tracker != nil {
			tracker.SetNetwork(&status.NetworkInfo{Iface: iface, Connected: false})
		}
		return
	}
	ip, err := network.WaitForIP()
	if err != nil {
		log.Printf("wait for ip: %v", err)
		if tracker != nil {
			tracker.SetNetwork(&status.NetworkInfo{Iface: iface, Connected: false})
		}
		return
	}
	log.Printf("network reconnected, ip %s", ip)
	if tracker != nil {
		tracker.SetNetwork(&status.NetworkInfo{Iface: iface, IP: ip, Connected: true})
	}
}
