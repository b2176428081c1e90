package haptics

import (
	"sync"

	"github.com/xvierd/pomo/internal/ports"
)

// pulseQueueSize bounds pulses waiting for the device. A full queue blocks
// the caller.
const pulseQueueSize = 16

// Async delivers pulses to a slow device on a background worker so the
// caller never waits for a beep to finish. Pulses reach the device one at a
// time in the order they were requested.
type Async struct {
	device ports.Haptics
	queue  chan func()
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// NewAsync wraps device and starts its worker. Call Close to stop it.
func NewAsync(device ports.Haptics) *Async {
	a := &Async{
		device: device,
		queue:  make(chan func(), pulseQueueSize),
	}
	go a.work()
	return a
}

// Ensure Async implements ports.Haptics.
var _ ports.Haptics = (*Async)(nil)

// ShortPulse implements ports.Haptics.
func (a *Async) ShortPulse() {
	a.enqueue(a.device.ShortPulse)
}

// LongPulse implements ports.Haptics.
func (a *Async) LongPulse() {
	a.enqueue(a.device.LongPulse)
}

func (a *Async) enqueue(pulse func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.wg.Add(1)
	a.queue <- pulse
}

func (a *Async) work() {
	for pulse := range a.queue {
		pulse()
		a.wg.Done()
	}
}

// Wait blocks until every pulse requested so far has finished.
func (a *Async) Wait() {
	a.wg.Wait()
}

// Close waits for queued pulses and stops the worker. Later pulses are
// dropped.
func (a *Async) Close() {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return
	}
	a.closed = true
	close(a.queue)
	a.mu.Unlock()
	a.wg.Wait()
}
