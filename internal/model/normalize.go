package model

import (
	"fmt"
	"strings"
)

// NormalizePane resolves a PaneInput into a fully defaulted PaneOptions.
func NormalizePane(input PaneInput, d Defaults) (PaneOptions, error) {
	switch in := input.(type) {
	case RawCommand:
		return PaneOptions{
			Cmd:            in.Text,
			Floating:       d.Floating,
			CloseOnExit:    d.CloseOnExit,
			StartSuspended: d.StartSuspended,
		}, nil
	case *RawCommand:
		if in == nil {
			return PaneOptions{}, &InvalidInputKindError{Got: "nil"}
		}
		return NormalizePane(*in, d)
	case RawOptions:
		dir, err := parseDirection(in.Direction)
		if err != nil {
			return PaneOptions{}, err
		}
		return PaneOptions{
			Cmd:            in.Cmd,
			Floating:       resolve(in.Floating, d.Floating),
			Direction:      dir,
			Cwd:            in.Cwd,
			Name:           in.Name,
			CloseOnExit:    resolve(in.CloseOnExit, d.CloseOnExit),
			StartSuspended: resolve(in.StartSuspended, d.StartSuspended),
			Session:        in.Session,
		}, nil
	case *RawOptions:
		if in == nil {
			return PaneOptions{}, &InvalidInputKindError{Got: "nil"}
		}
		return NormalizePane(*in, d)
	case nil:
		return PaneOptions{}, &InvalidInputKindError{Got: "nil"}
	default:
		return PaneOptions{}, &InvalidInputKindError{Got: fmt.Sprintf("%T", input)}
	}
}

// NormalizeRun injects cmd into opts and normalizes the result as a pane.
func NormalizeRun(cmd string, opts RunInput, d Defaults) (PaneOptions, error) {
	opts.Cmd = cmd
	return NormalizePane(opts, d)
}

// NormalizeEdit resolves an edit request. Only the floating flag is drawn
// from the defaults; close-on-exit and start-suspended do not apply to edit.
func NormalizeEdit(file string, in EditInput, d Defaults) (EditOptions, error) {
	if strings.TrimSpace(file) == "" {
		return EditOptions{}, ErrMissingFile
	}
	if in.Line < 0 {
		return EditOptions{}, fmt.Errorf("invalid line number %d", in.Line)
	}
	dir, err := parseDirection(in.Direction)
	if err != nil {
		return EditOptions{}, err
	}
	return EditOptions{
		File:      file,
		Line:      in.Line,
		Floating:  resolve(in.Floating, d.Floating),
		Direction: dir,
		Cwd:       in.Cwd,
		Session:   in.Session,
	}, nil
}

// NormalizeTab returns the canonical new-tab record.
func NormalizeTab(in TabInput) TabOptions {
	return TabOptions(in)
}

// resolve keeps an explicit caller value, false included, and only falls
// back to the default when the field was not supplied.
func resolve(v *bool, def bool) bool {
	if v != nil {
		return *v
	}
	return def
}

func parseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case DirectionNone:
		return DirectionNone, nil
	case DirectionRight:
		return DirectionRight, nil
	case DirectionDown:
		return DirectionDown, nil
	default:
		return DirectionNone, fmt.Errorf("%w %q (supported: right, down)", ErrInvalidDirection, s)
	}
}
