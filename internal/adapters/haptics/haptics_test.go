package haptics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xvierd/pomo/internal/adapters/notification"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
)

type fakeDevice struct {
	beeps         []int
	notifications []string
	err           error
}

func newTestBuzzer(h config.HapticsConfig, n config.NotificationConfig) (*Buzzer, *fakeDevice) {
	dev := &fakeDevice{}
	notifier := notification.NewWithSender(&n, func(title, message string) error {
		dev.notifications = append(dev.notifications, title)
		return dev.err
	})
	b := NewBuzzer(&h, notifier, nil)
	b.beep = func(freq float64, durationMs int) error {
		dev.beeps = append(dev.beeps, durationMs)
		return dev.err
	}
	return b, dev
}

func TestBuzzer_PulseLengths(t *testing.T) {
	b, dev := newTestBuzzer(config.HapticsConfig{
		Enabled:    true,
		Sound:      true,
		ShortPulse: config.Duration(100 * time.Millisecond),
		LongPulse:  config.Duration(600 * time.Millisecond),
	}, config.NotificationConfig{Enabled: true})

	b.ShortPulse()
	b.LongPulse()

	assert.Equal(t, []int{100, 600}, dev.beeps)
	assert.Len(t, dev.notifications, 2)
}

func TestBuzzer_Disabled(t *testing.T) {
	b, dev := newTestBuzzer(config.HapticsConfig{Enabled: false, Sound: true},
		config.NotificationConfig{Enabled: true})

	b.ShortPulse()
	b.LongPulse()

	assert.False(t, b.IsEnabled())
	assert.Empty(t, dev.beeps)
	assert.Empty(t, dev.notifications)
}

func TestBuzzer_SilentStillNotifies(t *testing.T) {
	b, dev := newTestBuzzer(config.HapticsConfig{
		Enabled:    true,
		Sound:      false,
		ShortPulse: config.Duration(100 * time.Millisecond),
	}, config.NotificationConfig{Enabled: true})

	b.ShortPulse()

	assert.Empty(t, dev.beeps)
	assert.Equal(t, []string{"🍅 Pomodoro Complete!"}, dev.notifications)
}

func TestBuzzer_DeviceErrorsAreSwallowed(t *testing.T) {
	b, dev := newTestBuzzer(config.HapticsConfig{
		Enabled:   true,
		Sound:     true,
		LongPulse: config.Duration(time.Second),
	}, config.NotificationConfig{Enabled: false})
	dev.err = errors.New("no audio device")

	assert.NotPanics(t, b.LongPulse)
	assert.Equal(t, []int{1000}, dev.beeps)
	assert.Empty(t, dev.notifications)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()

	_, ok := r.Last()
	assert.False(t, ok)

	r.ShortPulse()
	r.LongPulse()

	last, ok := r.Last()
	assert.True(t, ok)
	assert.Equal(t, domain.PulseLong, last)
	assert.Equal(t, 2, r.Count())
	assert.Equal(t, []domain.Pulse{domain.PulseShort, domain.PulseLong}, r.Pulses())
}

func TestFanout(t *testing.T) {
	a, b := NewRecorder(), NewRecorder()
	f := Fanout{a, b}

	f.ShortPulse()
	f.LongPulse()

	assert.Equal(t, a.Pulses(), b.Pulses())
	assert.Equal(t, 2, b.Count())
}

// slowDevice records pulses after a delay, like a speaker that blocks
// while it plays.
type slowDevice struct {
	rec   *Recorder
	delay time.Duration
}

func (d slowDevice) ShortPulse() {
	time.Sleep(d.delay)
	d.rec.ShortPulse()
}

func (d slowDevice) LongPulse() {
	time.Sleep(d.delay)
	d.rec.LongPulse()
}

func TestAsync_DeliversInBackground(t *testing.T) {
	rec := NewRecorder()
	a := NewAsync(rec)
	defer a.Close()

	a.ShortPulse()
	a.LongPulse()
	a.Wait()

	assert.Equal(t, 2, rec.Count())
	assert.Equal(t, []domain.Pulse{domain.PulseShort, domain.PulseLong}, rec.Pulses())
}

func TestAsync_PreservesOrder(t *testing.T) {
	rec := NewRecorder()
	a := NewAsync(slowDevice{rec: rec, delay: time.Millisecond})
	defer a.Close()

	var want []domain.Pulse
	for i := 0; i < 10; i++ {
		if i%3 == 0 {
			a.LongPulse()
			want = append(want, domain.PulseLong)
		} else {
			a.ShortPulse()
			want = append(want, domain.PulseShort)
		}
	}
	a.Wait()

	assert.Equal(t, want, rec.Pulses())
}

func TestAsync_CloseDrainsThenDrops(t *testing.T) {
	rec := NewRecorder()
	a := NewAsync(slowDevice{rec: rec, delay: time.Millisecond})

	a.ShortPulse()
	a.Close()
	assert.Equal(t, 1, rec.Count())

	a.LongPulse()
	a.Close()
	assert.Equal(t, []domain.Pulse{domain.PulseShort}, rec.Pulses())
}
