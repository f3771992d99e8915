// Package model defines the option records that describe a zellij action,
// from the raw shapes callers hand in to the canonical, fully defaulted
// records the command builders consume.
package model

import (
	"errors"
	"fmt"
)

// Direction is the split direction for a tiled pane.
type Direction string

const (
	DirectionNone  Direction = ""
	DirectionRight Direction = "right"
	DirectionDown  Direction = "down"
)

var (
	// ErrInvalidInputKind is returned when an input is neither a bare command
	// string nor an options record.
	ErrInvalidInputKind = errors.New("invalid input kind")
	// ErrInvalidDirection is returned for a direction other than right or down.
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrMissingFile is returned when edit is called without a file path.
	ErrMissingFile = errors.New("file path is required")
)

// InvalidInputKindError names the kind of value that could not be normalized.
type InvalidInputKindError struct {
	Got string
}

func (e *InvalidInputKindError) Error() string {
	return fmt.Sprintf("%s: expected a command string or an options table, got %s", ErrInvalidInputKind, e.Got)
}

func (e *InvalidInputKindError) Unwrap() error {
	return ErrInvalidInputKind
}

// Defaults are the fallback values for every optional boolean of a pane.
type Defaults struct {
	Floating       bool `yaml:"floating" toml:"floating"`
	CloseOnExit    bool `yaml:"close_on_exit" toml:"close_on_exit"`
	StartSuspended bool `yaml:"start_suspended" toml:"start_suspended"`
}

// PaneInput is what a caller passes to new-pane: either a RawCommand or
// RawOptions. The interface is sealed; a nil PaneInput is rejected by
// NormalizePane.
type PaneInput interface {
	paneInput()
}

// RawCommand is a bare command string, run in a pane with default options.
type RawCommand struct {
	Text string
}

// RawOptions is a partial options record. Nil booleans were not supplied by
// the caller and take the configured default; a non-nil false is kept.
type RawOptions struct {
	Cmd            string
	Floating       *bool
	Direction      string
	Cwd            string
	Name           string
	CloseOnExit    *bool
	StartSuspended *bool
	Session        string
}

func (RawCommand) paneInput() {}
func (RawOptions) paneInput() {}

// RunInput carries the options of a run call; the command is passed separately.
type RunInput = RawOptions

// PaneOptions is the canonical new-pane record.
type PaneOptions struct {
	// Cmd is the command line to run through the shell. Empty opens a bare pane.
	Cmd            string
	Floating       bool
	Direction      Direction
	Cwd            string
	Name           string
	CloseOnExit    bool
	StartSuspended bool
	// Session targets a named zellij session instead of the current one.
	Session string
}

// EditInput is the partial record for opening a file in an editor pane.
type EditInput struct {
	Line      int
	Floating  *bool
	Direction string
	Cwd       string
	Session   string
}

// EditOptions is the canonical edit record.
type EditOptions struct {
	File      string
	Line      int // 0 means no line number
	Floating  bool
	Direction Direction
	Cwd       string
	Session   string
}

// TabInput is the partial record for a new tab. Tabs carry no booleans, so
// the canonical record has the same shape.
type TabInput struct {
	Layout    string
	LayoutURL string
	Name      string
	Cwd       string
	Session   string
}

// TabOptions is the canonical new-tab record.
type TabOptions = TabInput

// Bool returns a pointer to v, for filling optional fields.
func Bool(v bool) *bool {
	return &v
}
