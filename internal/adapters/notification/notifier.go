// Package notification provides desktop notification utilities.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/xvierd/pomo/internal/config"
	"github.com/xvierd/pomo/internal/domain"
)

// Notifier handles desktop notifications.
type Notifier struct {
	cfg  *config.NotificationConfig
	send func(title, message string) error
}

// New creates a new notifier with the given configuration.
func New(cfg *config.NotificationConfig) *Notifier {
	return NewWithSender(cfg, func(title, message string) error {
		return beeep.Notify(title, message, "")
	})
}

// NewWithSender creates a notifier that delivers through send.
func NewWithSender(cfg *config.NotificationConfig, send func(title, message string) error) *Notifier {
	return &Notifier{cfg: cfg, send: send}
}

// Notify displays a desktop notification if enabled.
func (n *Notifier) Notify(title, message string) error {
	if !n.IsEnabled() {
		return nil
	}

	return n.send(title, message)
}

// NotifyBreakStarted announces the end of a work interval.
func (n *Notifier) NotifyBreakStarted() error {
	title := "🍅 Pomodoro Complete!"
	message := fmt.Sprintf("Great job! Time for a %d minute break.", domain.BreakTargetSeconds/60)
	return n.Notify(title, message)
}

// NotifyBreakOver announces the end of a break.
func (n *Notifier) NotifyBreakOver() error {
	title := "☕ Break Over!"
	message := "Press select to start the next pomodoro."
	return n.Notify(title, message)
}

// IsEnabled returns true if notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n != nil && n.cfg != nil && n.cfg.Enabled
}
