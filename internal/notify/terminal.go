package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// TerminalSurface writes one line per notification. Titles are styled when
// the output is a terminal and plain otherwise.
type TerminalSurface struct {
	Out   io.Writer
	Color bool

	infoStyle  lipgloss.Style
	errorStyle lipgloss.Style
}

// NewTerminalSurface creates a TerminalSurface on f, enabling styling when
// f is a terminal.
func NewTerminalSurface(f *os.File) *TerminalSurface {
	fd := f.Fd()
	color := isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	return newTerminalSurface(f, color)
}

func newTerminalSurface(w io.Writer, color bool) *TerminalSurface {
	r := lipgloss.NewRenderer(w)
	return &TerminalSurface{
		Out:        w,
		Color:      color,
		infoStyle:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		errorStyle: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
	}
}

func (t *TerminalSurface) Notify(msg string, level Level, meta Meta) error {
	title := "[" + meta.Title + "]"
	if t.Color {
		style := t.infoStyle
		if level == LevelError {
			style = t.errorStyle
		}
		title = style.Render(title)
	}
	_, err := fmt.Fprintf(t.Out, "%s %s\n", title, msg)
	return err
}
