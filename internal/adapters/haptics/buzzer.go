// Package haptics provides ports.Haptics implementations. Buzzer beeps on a
// desktop, Recorder remembers pulses for harnesses, and Fanout and Async
// combine them.
package haptics

import (
	"io"
	"log/slog"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/pomo/internal/adapters/notification"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/ports"
)

// Buzzer turns pulses into beeps and, optionally, desktop notifications.
type Buzzer struct {
	cfg      *config.HapticsConfig
	notifier *notification.Notifier
	beep     func(freq float64, durationMs int) error
	logger   *slog.Logger
}

// NewBuzzer creates a buzzer with the given configuration. notifier may be
// nil to skip desktop notifications.
func NewBuzzer(cfg *config.HapticsConfig, notifier *notification.Notifier, logger *slog.Logger) *Buzzer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Buzzer{
		cfg:      cfg,
		notifier: notifier,
		beep:     beeep.Beep,
		logger:   logger,
	}
}

// Ensure Buzzer implements ports.Haptics.
var _ ports.Haptics = (*Buzzer)(nil)

// ShortPulse implements ports.Haptics. It marks the start of a break.
func (b *Buzzer) ShortPulse() {
	if !b.IsEnabled() {
		return
	}
	b.buzz(b.cfg.ShortPulse.Milliseconds())
	b.show(b.notifier.NotifyBreakStarted)
}

// LongPulse implements ports.Haptics. It marks the end of a break.
func (b *Buzzer) LongPulse() {
	if !b.IsEnabled() {
		return
	}
	b.buzz(b.cfg.LongPulse.Milliseconds())
	b.show(b.notifier.NotifyBreakOver)
}

// IsEnabled returns true if pulses are delivered at all.
func (b *Buzzer) IsEnabled() bool {
	return b.cfg != nil && b.cfg.Enabled
}

func (b *Buzzer) buzz(durationMs int) {
	if !b.cfg.Sound || durationMs <= 0 {
		return
	}
	if err := b.beep(beeep.DefaultFreq, durationMs); err != nil {
		b.logger.Debug("beep failed", "error", err)
	}
}

func (b *Buzzer) show(notify func() error) {
	if !b.notifier.IsEnabled() {
		return
	}
	if err := notify(); err != nil {
		b.logger.Debug("notification failed", "error", err)
	}
}
