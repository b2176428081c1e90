package notification

import (
	"errors"
	"testing"

	"github.com/xvierd/pomo/internal/config"
)

type sentNotification struct {
	title   string
	message string
}

func newTestNotifier(enabled bool, err error) (*Notifier, *[]sentNotification) {
	var sent []sentNotification
	n := NewWithSender(&config.NotificationConfig{Enabled: enabled}, func(title, message string) error {
		sent = append(sent, sentNotification{title, message})
		return err
	})
	return n, &sent
}

func TestNotifier_Disabled(t *testing.T) {
	n, sent := newTestNotifier(false, nil)

	if err := n.NotifyBreakStarted(); err != nil {
		t.Errorf("NotifyBreakStarted() error = %v", err)
	}
	if len(*sent) != 0 {
		t.Errorf("expected no notifications, got %d", len(*sent))
	}
	if n.IsEnabled() {
		t.Error("IsEnabled() should be false")
	}
}

func TestNotifier_BreakMessages(t *testing.T) {
	n, sent := newTestNotifier(true, nil)

	_ = n.NotifyBreakStarted()
	_ = n.NotifyBreakOver()

	if len(*sent) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(*sent))
	}
	if (*sent)[0].title != "🍅 Pomodoro Complete!" {
		t.Errorf("unexpected title %q", (*sent)[0].title)
	}
	if (*sent)[0].message != "Great job! Time for a 5 minute break." {
		t.Errorf("unexpected message %q", (*sent)[0].message)
	}
	if (*sent)[1].title != "☕ Break Over!" {
		t.Errorf("unexpected title %q", (*sent)[1].title)
	}
}

func TestNotifier_ReturnsSendError(t *testing.T) {
	want := errors.New("no notification daemon")
	n, _ := newTestNotifier(true, want)

	if err := n.NotifyBreakOver(); !errors.Is(err, want) {
		t.Errorf("NotifyBreakOver() error = %v, want %v", err, want)
	}
}

func TestNotifier_NilConfig(t *testing.T) {
	n := New(nil)
	if n.IsEnabled() {
		t.Error("IsEnabled() should be false without config")
	}
	if err := n.Notify("title", "message"); err != nil {
		t.Errorf("Notify() error = %v", err)
	}
}
