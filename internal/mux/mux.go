// Package mux turns canonical option records into argument vectors for a
// terminal multiplexer binary.
//
// This package is pure transport: it decides which tokens to hand to the
// binary and nothing else. Running the vector is the caller's job.
package mux

import (
	"github.com/timvw/zellij-nvim/internal/model"
)

// Multiplexer builds the argument vector for each supported action.
// Every returned vector starts with the binary name and holds one token
// per element; tokens are never joined into a shell string.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "zellij").
	Name() string

	// NewPane builds the vector that opens a pane, optionally running a command.
	NewPane(opts model.PaneOptions) []string

	// Edit builds the vector that opens a file in an editor pane.
	Edit(opts model.EditOptions) []string

	// NewTab builds the vector that opens a tab.
	NewTab(opts model.TabOptions) []string
}
