package mqtt

import (
	"fmt"
	"log"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// backlogCapacity bounds how many messages are held for replay while
// the broker is unreachable.
const backlogCapacity = 64

// RealPublisher publishes to an actual MQTT broker. Messages that
// cannot be delivered while disconnected are held in a bounded backlog
// and replayed on reconnect.
type RealPublisher struct {
	client paho.Client

	mu      sync.Mutex
	backlog *ringBuffer
}

// NewRealPublisher creates a publisher for the given broker. If the
// broker is unreachable the client keeps retrying in the background;
// the publisher is usable immediately either way.
func NewRealPublisher(broker string) *RealPublisher {
	p := &RealPublisher{backlog: newRingBuffer(backlogCapacity)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("alarm-clock").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(5 * time.Second).
		SetOnConnectHandler(func(paho.Client) {
			p.replayBacklog()
		})

	p.client = paho.NewClient(opts)
	token := p.client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		log.Printf("mqtt: broker %s not reachable yet, retrying in background", broker)
	} else if err := token.Error(); err != nil {
		log.Printf("mqtt: connect to %s: %v (retrying in background)", broker, err)
	}

	return p
}

// PublishAlarm sends an alarm firing to the MQTT broker.
func (p *RealPublisher) PublishAlarm(event AlarmEvent) error {
	payload, err := FormatAlarmPayload(event)
	if err != nil {
		return fmt.Errorf("format alarm payload: %w", err)
	}
	// QoS 0 (at-most-once), not retained
	return p.publish(Topic, 0, false, payload)
}

// PublishSystem sends a system lifecycle event to the MQTT broker.
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	// QoS 1 (at-least-once) for lifecycle events
	return p.publish(TopicSystem, 1, event.Retained, payload)
}

func (p *RealPublisher) publish(topic string, qos byte, retained bool, payload []byte) error {
	if !p.client.IsConnected() {
		p.stash(topic, qos, retained, payload)
		return fmt.Errorf("not connected, message queued for replay")
	}

	token := p.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(5 * time.Second) {
		p.stash(topic, qos, retained, payload)
		return fmt.Errorf("publish timeout, message queued for replay")
	}
	if err := token.Error(); err != nil {
		p.stash(topic, qos, retained, payload)
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

func (p *RealPublisher) stash(topic string, qos byte, retained bool, payload []byte) {
	p.mu.Lock()
	p.backlog.push(bufferedMsg{topic: topic, payload: payload, qos: qos, retained: retained})
	p.mu.Unlock()
}

// replayBacklog republishes messages buffered while disconnected.
// Runs on paho's connect callback goroutine.
func (p *RealPublisher) replayBacklog() {
	p.mu.Lock()
	msgs := p.backlog.drainAll()
	p.mu.Unlock()

	if len(msgs) == 0 {
		return
	}
	log.Printf("mqtt: replaying %d buffered messages", len(msgs))
	for _, msg := range msgs {
		token := p.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload)
		if !token.WaitTimeout(5 * time.Second) {
			log.Printf("mqtt: replay timeout, dropping message")
		} else if err := token.Error(); err != nil {
			log.Printf("mqtt: replay failed: %v", err)
		}
	}
}

// IsConnected reports whether the client is currently connected.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnected()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second timeout
	return nil
}
