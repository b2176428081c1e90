// Package display provides an in-memory watch face that the controller
// draws on and harnesses read back.
package display

import (
	"sync"

	"github.com/xvierd/pomo/internal/domain"
	"github.com/xvierd/pomo/internal/ports"
)

// Screen implements ports.Display by remembering the last value of every
// text field and button icon.
type Screen struct {
	mu         sync.RWMutex
	duration   string
	cycleCount string
	icons      map[domain.Button]domain.Icon
	revision   uint64
}

// NewScreen creates a blank screen.
func NewScreen() *Screen {
	return &Screen{icons: make(map[domain.Button]domain.Icon)}
}

// Ensure Screen implements ports.Display and ports.FaceSource.
var (
	_ ports.Display    = (*Screen)(nil)
	_ ports.FaceSource = (*Screen)(nil)
)

// SetDurationText implements ports.Display.
func (s *Screen) SetDurationText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.duration = text
	s.revision++
}

// SetCycleCountText implements ports.Display.
func (s *Screen) SetCycleCountText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycleCount = text
	s.revision++
}

// SetButtonIcon implements ports.Display.
func (s *Screen) SetButtonIcon(button domain.Button, icon domain.Icon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if icon == domain.IconNone {
		delete(s.icons, button)
	} else {
		s.icons[button] = icon
	}
	s.revision++
}

// Snapshot implements ports.FaceSource.
func (s *Screen) Snapshot() ports.Face {
	s.mu.RLock()
	defer s.mu.RUnlock()

	icons := make(map[domain.Button]domain.Icon, len(s.icons))
	for b, i := range s.icons {
		icons[b] = i
	}
	return ports.Face{
		DurationText:   s.duration,
		CycleCountText: s.cycleCount,
		Icons:          icons,
		Revision:       s.revision,
	}
}
