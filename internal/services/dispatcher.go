package services

import (
	"context"
	"errors"
	"sync"

	"github.com/xvierd/pomo/internal/domain"
)

// ErrDispatcherStopped is returned once the dispatch loop has exited.
var ErrDispatcherStopped = errors.New("dispatcher stopped")

// request is one unit of work applied on the dispatch goroutine.
type request struct {
	fn   func(*PomodoroController)
	done chan struct{}
}

// Dispatcher serializes events and queries from concurrent callers onto a
// single goroutine that owns the controller.
type Dispatcher struct {
	ctrl     *PomodoroController
	requests chan request
	stopped  chan struct{}
	once     sync.Once
}

// NewDispatcher creates a dispatcher for ctrl. Call Run to start it.
func NewDispatcher(ctrl *PomodoroController) *Dispatcher {
	return &Dispatcher{
		ctrl:     ctrl,
		requests: make(chan request, 16),
		stopped:  make(chan struct{}),
	}
}

// Run applies requests in arrival order until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) error {
	defer d.once.Do(func() { close(d.stopped) })

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-d.requests:
			req.fn(d.ctrl)
			close(req.done)
		}
	}
}

// Dispatch delivers ev and waits until it has been handled.
func (d *Dispatcher) Dispatch(ctx context.Context, ev domain.Event) error {
	return d.Query(ctx, func(c *PomodoroController) {
		c.Handle(ev)
	})
}

// Query runs fn on the dispatch goroutine and waits for it to finish.
func (d *Dispatcher) Query(ctx context.Context, fn func(*PomodoroController)) error {
	req := request{fn: fn, done: make(chan struct{})}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-d.stopped:
		return ErrDispatcherStopped
	case d.requests <- req:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-d.stopped:
		// The loop may have finished this request before exiting.
		select {
		case <-req.done:
			return nil
		default:
			return ErrDispatcherStopped
		}
	case <-req.done:
		return nil
	}
}

// Stopped is closed once Run has returned.
func (d *Dispatcher) Stopped() <-chan struct{} {
	return d.stopped
}
