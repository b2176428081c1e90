package haptics

import (
	"sync"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// Recorder remembers every pulse it receives.
type Recorder struct {
	mu     sync.Mutex
	pulses []domain.Pulse
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Ensure Recorder implements ports.Haptics.
var _ ports.Haptics = (*Recorder)(nil)

// ShortPulse implements ports.Haptics.
func (r *Recorder) ShortPulse() {
	r.record(domain.PulseShort)
}

// LongPulse implements ports.Haptics.
func (r *Recorder) LongPulse() {
	r.record(domain.PulseLong)
}

func (r *Recorder) record(p domain.Pulse) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pulses = append(r.pulses, p)
}

// Pulses returns a copy of all recorded pulses in order.
func (r *Recorder) Pulses() []domain.Pulse {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Pulse(nil), r.pulses...)
}

// Count returns how many pulses were recorded.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pulses)
}

// Last returns the most recent pulse and whether there was one.
func (r *Recorder) Last() (domain.Pulse, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.pulses) == 0 {
		return "", false
	}
	return r.pulses[len(r.pulses)-1], true
}

// Fanout delivers every pulse to each of its members in order.
type Fanout []ports.Haptics

// ShortPulse implements ports.Haptics.
func (f Fanout) ShortPulse() {
	for _, h := range f {
		h.ShortPulse()
	}
}

// LongPulse implements ports.Haptics.
func (f Fanout) LongPulse() {
	for _, h := range f {
		h.LongPulse()
	}
}
