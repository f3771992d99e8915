package mux

import (
	"os"
	"os/exec"
)

// Status reports whether zellij can be reached from this process.
type Status struct {
	// BinaryPath is the resolved executable, empty if not on PATH.
	BinaryPath string
	// InSession is true when running inside a zellij session ($ZELLIJ set).
	InSession bool
	// SessionName is $ZELLIJ_SESSION_NAME, if any.
	SessionName string
}

// Detect checks for the zellij binary and an enclosing session.
// It never fails a call on its own: actions with an explicit session work
// from outside zellij, so callers only use the result to warn.
func Detect(binary string, lookPath func(string) (string, error), getenv Env) Status {
	if binary == "" {
		binary = "zellij"
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if getenv == nil {
		getenv = os.Getenv
	}

	var st Status
	if p, err := lookPath(binary); err == nil {
		st.BinaryPath = p
	}
	st.InSession = getenv("ZELLIJ") != ""
	st.SessionName = getenv("ZELLIJ_SESSION_NAME")
	return st
}

// Warning returns a human-readable problem description, or "" if none.
func (s Status) Warning() string {
	switch {
	case s.BinaryPath == "":
		return "zellij not found in PATH; pane commands will fail to launch"
	case !s.InSession:
		return "not running inside a zellij session ($ZELLIJ unset); actions without a session target will fail"
	default:
		return ""
	}
}
