package mux

import (
	"os"
	"strconv"

	"github.com/timvw/zellij-nvim/internal/model"
)

// DefaultShell is used when neither the configuration nor $SHELL names one.
const DefaultShell = "/bin/sh"

// Env reads a named environment variable.
type Env func(key string) string

// Zellij implements the Multiplexer interface for zellij.
type Zellij struct {
	// Binary is argv[0]. Empty means "zellij".
	Binary string
	// Shell runs pane commands. Empty falls back to $SHELL, then DefaultShell.
	Shell string
	// Getenv reads the environment. Nil means os.Getenv.
	Getenv Env
}

// Name returns "zellij".
func (z *Zellij) Name() string {
	return "zellij"
}

// NewPane builds: zellij action new-pane [placement] [--cwd] [--name]
// [--close-on-exit] [--start-suspended] [--session] [-- <shell> -c <cmd>].
func (z *Zellij) NewPane(opts model.PaneOptions) []string {
	args := z.action("new-pane")
	args = appendPlacement(args, opts.Floating, opts.Direction)
	if opts.Cwd != "" {
		args = append(args, "--cwd", opts.Cwd)
	}
	if opts.Name != "" {
		args = append(args, "--name", opts.Name)
	}
	if opts.CloseOnExit {
		args = append(args, "--close-on-exit")
	}
	if opts.StartSuspended {
		args = append(args, "--start-suspended")
	}
	args = appendSession(args, opts.Session)

	// Without a command the pane opens zellij's default shell and the
	// separator must not be emitted at all.
	if opts.Cmd != "" {
		args = append(args, "--", z.ResolveShell(), "-c", opts.Cmd)
	}
	return args
}

// Edit builds: zellij action edit [placement] [--cwd] [--session]
// [--line-number <n>] <file>.
func (z *Zellij) Edit(opts model.EditOptions) []string {
	args := z.action("edit")
	args = appendPlacement(args, opts.Floating, opts.Direction)
	if opts.Cwd != "" {
		args = append(args, "--cwd", opts.Cwd)
	}
	args = appendSession(args, opts.Session)
	if opts.Line > 0 {
		args = append(args, "--line-number", strconv.Itoa(opts.Line))
	}
	return append(args, opts.File)
}

// NewTab builds: zellij action new-tab [--cwd] [--session]
// [--layout <path> | --layout-url <url>] [--name <name>].
func (z *Zellij) NewTab(opts model.TabOptions) []string {
	args := z.action("new-tab")
	if opts.Cwd != "" {
		args = append(args, "--cwd", opts.Cwd)
	}
	args = appendSession(args, opts.Session)
	switch {
	case opts.Layout != "":
		args = append(args, "--layout", opts.Layout)
	case opts.LayoutURL != "":
		args = append(args, "--layout-url", opts.LayoutURL)
	}
	if opts.Name != "" {
		args = append(args, "--name", opts.Name)
	}
	return args
}

// ResolveShell returns the configured shell, then $SHELL, then DefaultShell.
func (z *Zellij) ResolveShell() string {
	if z.Shell != "" {
		return z.Shell
	}
	getenv := z.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if shell := getenv("SHELL"); shell != "" {
		return shell
	}
	return DefaultShell
}

func (z *Zellij) action(name string) []string {
	bin := z.Binary
	if bin == "" {
		bin = "zellij"
	}
	return []string{bin, "action", name}
}

// appendPlacement emits --floating, or --direction when not floating.
// Floating wins: a direction given alongside floating is dropped.
func appendPlacement(args []string, floating bool, dir model.Direction) []string {
	if floating {
		return append(args, "--floating")
	}
	if dir != model.DirectionNone {
		return append(args, "--direction", string(dir))
	}
	return args
}

func appendSession(args []string, session string) []string {
	if session == "" {
		return args
	}
	return append(args, "--session", session)
}

var _ Multiplexer = (*Zellij)(nil)
