package tone

import "log"

// Actuator is the worker that owns the output line for the process
// lifetime. It blocks on the queue and renders each command to
// completion before dequeuing the next, so bursts of enqueued commands
// play back sequentially rather than overlapping.
type Actuator struct {
	queue  *Queue
	player *Player
	done   chan struct{}
}

// NewActuator creates an Actuator consuming from queue and rendering
// through player. The caller must not touch the player's line afterwards.
func NewActuator(queue *Queue, player *Player) *Actuator {
	return &Actuator{
		queue:  queue,
		player: player,
		done:   make(chan struct{}),
	}
}

// Start launches the worker goroutine.
func (a *Actuator) Start() {
	go a.run()
}

func (a *Actuator) run() {
	defer close(a.done)
	for {
		cmd, ok := a.queue.Receive()
		if !ok {
			log.Printf("tone: queue closed, actuator exiting")
			return
		}
		log.Printf("tone: playing alarm: repeats=%d freq=%dHz", cmd.Repeats, cmd.FrequencyHz)
		a.player.Play(cmd)
	}
}

// Done is closed once the queue has drained and the worker has exited.
func (a *Actuator) Done() <-chan struct{} {
	return a.done
}
