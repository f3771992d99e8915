package notify

import (
	"strings"

	"github.com/gen2brain/beeep"
)

const maxDesktopMessage = 800

// DesktopSurface shows notifications through the desktop notification
// daemon. The display timeout is left to the daemon.
type DesktopSurface struct {
	// send wraps beeep.Notify, swapped out in tests.
	send func(title, message string) error
}

// NewDesktopSurface creates a DesktopSurface backed by beeep.
func NewDesktopSurface() *DesktopSurface {
	return &DesktopSurface{send: func(title, message string) error {
		return beeep.Notify(title, message, "")
	}}
}

func (d *DesktopSurface) Notify(msg string, level Level, meta Meta) error {
	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = TitleOK
	}
	message := strings.TrimSpace(msg)
	if message == "" {
		message = strings.ToLower(level.String())
	}
	if len(message) > maxDesktopMessage {
		message = message[:maxDesktopMessage] + "..."
	}
	return d.send(title, message)
}
