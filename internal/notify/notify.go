// Package notify formats and emits user-facing messages about zellij
// commands: an informational message when a command succeeded and an error
// message when it failed or could not be launched.
package notify

import (
	"errors"
	"log/slog"
	"time"

	"github.com/timvw/zellij-nvim/internal/logger"
)

const (
	TitleOK    = "ZELLIJ"
	TitleError = "Zellij cmd failed"

	TimeoutOK    = 3 * time.Second
	TimeoutError = 5 * time.Second
)

// Level is the severity of a notification.
type Level int

const (
	LevelInfo Level = iota
	LevelError
)

// String returns the level name as used by vim.log.levels.
func (l Level) String() string {
	if l == LevelError {
		return "ERROR"
	}
	return "INFO"
}

// Meta is the display metadata attached to a notification.
type Meta struct {
	Title   string
	Timeout time.Duration
}

// Surface displays a notification to the user.
type Surface interface {
	Notify(msg string, level Level, meta Meta) error
}

// SurfaceFunc adapts a function to a Surface.
type SurfaceFunc func(msg string, level Level, meta Meta) error

func (f SurfaceFunc) Notify(msg string, level Level, meta Meta) error {
	return f(msg, level, meta)
}

// Notifier sends OK and error messages to a Surface with fixed titles and
// timeouts. Surface failures are logged, never returned.
type Notifier struct {
	Surface Surface
	Log     *slog.Logger
}

// New creates a Notifier for s.
func New(s Surface) *Notifier {
	return &Notifier{Surface: s}
}

// OK emits an informational message.
func (n *Notifier) OK(msg string) {
	n.emit(msg, LevelInfo, Meta{Title: TitleOK, Timeout: TimeoutOK})
}

// Error emits an error message.
func (n *Notifier) Error(msg string) {
	n.emit(msg, LevelError, Meta{Title: TitleError, Timeout: TimeoutError})
}

func (n *Notifier) emit(msg string, level Level, meta Meta) {
	if n == nil || n.Surface == nil {
		return
	}
	if err := n.Surface.Notify(msg, level, meta); err != nil {
		n.log().Warn("notification failed", "level", level.String(), "title", meta.Title, "error", err)
	}
}

func (n *Notifier) log() *slog.Logger {
	if n.Log != nil {
		return n.Log
	}
	return logger.WithComponent("notify")
}

// Multi fans a notification out to every surface and joins their errors.
type Multi []Surface

func (m Multi) Notify(msg string, level Level, meta Meta) error {
	var errs []error
	for _, s := range m {
		if s == nil {
			continue
		}
		if err := s.Notify(msg, level, meta); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
