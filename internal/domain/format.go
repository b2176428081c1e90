package domain

import (
	"fmt"
	"strconv"
)

// FormatDuration formats the time left (target minus elapsed) as MM:SS.
func FormatDuration(targetSeconds, elapsedSeconds int) string {
	remaining := targetSeconds - elapsedSeconds
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)
}

// FormatCycleCount formats the completed cycle count without padding.
func FormatCycleCount(completedCycles int) string {
	return strconv.Itoa(completedCycles)
}
