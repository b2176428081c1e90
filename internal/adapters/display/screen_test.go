package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xvierd/pomo/internal/domain"
)

func TestScreen_RemembersLastValues(t *testing.T) {
	s := NewScreen()

	s.SetDurationText("25:00")
	s.SetDurationText("24:59")
	s.SetCycleCountText("3")
	s.SetButtonIcon(domain.ButtonSelect, domain.IconStop)
	s.SetButtonIcon(domain.ButtonDown, domain.IconPause)

	assert.Equal(t, "24:59", s.Snapshot().DurationText)
	assert.Equal(t, "3", s.Snapshot().CycleCountText)
	assert.Equal(t, domain.IconStop, s.Snapshot().Icons[domain.ButtonSelect])
	assert.Equal(t, domain.IconPause, s.Snapshot().Icons[domain.ButtonDown])
	assert.Equal(t, domain.IconNone, s.Snapshot().Icons[domain.ButtonUp])
	assert.Equal(t, uint64(5), s.Snapshot().Revision)
}

func TestScreen_IconNoneClears(t *testing.T) {
	s := NewScreen()
	s.SetButtonIcon(domain.ButtonDown, domain.IconPause)
	s.SetButtonIcon(domain.ButtonDown, domain.IconNone)

	assert.Equal(t, domain.IconNone, s.Snapshot().Icons[domain.ButtonDown])
	_, present := s.Snapshot().Icons[domain.ButtonDown]
	assert.False(t, present, "cleared icon should not appear in snapshot")
}

func TestScreen_SnapshotIsACopy(t *testing.T) {
	s := NewScreen()
	s.SetButtonIcon(domain.ButtonSelect, domain.IconPlay)

	face := s.Snapshot()
	face.Icons[domain.ButtonSelect] = domain.IconStop

	assert.Equal(t, domain.IconPlay, s.Snapshot().Icons[domain.ButtonSelect])
}
