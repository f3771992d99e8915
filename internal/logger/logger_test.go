package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesToFile(t *testing.T) {
	t.Cleanup(Close)
	Close()

	path := filepath.Join(t.TempDir(), "nested", "zellij-nvim.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if Path() != path {
		t.Errorf("Path() = %q, want %q", Path(), path)
	}

	Get().Info("pane launched", "action", "new-pane")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"logger initialized", "pane launched", "action=new-pane"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log file missing %q:\n%s", want, data)
		}
	}
}

func TestInitOnlyOnce(t *testing.T) {
	t.Cleanup(Close)
	Close()

	first := filepath.Join(t.TempDir(), "first.log")
	second := filepath.Join(t.TempDir(), "second.log")
	if err := Init(first); err != nil {
		t.Fatalf("Init(first) error: %v", err)
	}
	if err := Init(second); err != nil {
		t.Fatalf("Init(second) error: %v", err)
	}
	if Path() != first {
		t.Errorf("Path() = %q, want %q", Path(), first)
	}
	if _, err := os.Stat(second); !os.IsNotExist(err) {
		t.Errorf("second log file should not be created, stat err = %v", err)
	}
}

func TestDefaultLogPathHonoursXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	got, err := DefaultLogPath()
	if err != nil {
		t.Fatalf("DefaultLogPath() error: %v", err)
	}
	want := filepath.Join(dir, "zellij-nvim", "zellij-nvim.log")
	if got != want {
		t.Errorf("DefaultLogPath() = %q, want %q", got, want)
	}
}

func TestSetDebug(t *testing.T) {
	t.Cleanup(func() {
		SetDebug(false)
		Close()
	})

	var buf bytes.Buffer
	SetOutput(&buf)

	Get().Debug("hidden")
	SetDebug(true)
	WithComponent("invoker").Debug("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line logged at info level:\n%s", out)
	}
	if !strings.Contains(out, "visible") || !strings.Contains(out, "component=invoker") {
		t.Errorf("expected debug line with component:\n%s", out)
	}
}

func TestGetBeforeInitDiscards(t *testing.T) {
	Close()
	Get().Error("nowhere")
}
