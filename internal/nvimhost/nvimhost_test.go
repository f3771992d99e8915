package nvimhost

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/timvw/zellij-nvim/internal/config"
	"github.com/timvw/zellij-nvim/internal/invoker"
	"github.com/timvw/zellij-nvim/internal/model"
	"github.com/timvw/zellij-nvim/internal/notify"
	"github.com/timvw/zellij-nvim/internal/process"
)

func newTestHost() (*Host, *process.MockSpawner) {
	sp := process.NewMockSpawner()
	store := config.NewStore(config.Defaults())
	inv := invoker.New(store, sp, notify.New(nil))
	inv.Getenv = func(string) string { return "/bin/bash" }
	return &Host{Invoker: inv, Store: store}, sp
}

func argv(t *testing.T, sp *process.MockSpawner) []string {
	t.Helper()
	calls := sp.GetCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 spawn, got %d", len(calls))
	}
	return calls[0].Argv
}

func TestNewPaneFunction(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{
			name: "string",
			args: []interface{}{"htop"},
			want: "zellij action new-pane --floating -- /bin/bash -c htop",
		},
		{
			name: "table",
			args: []interface{}{map[string]interface{}{"cmd": "ls", "floating": false, "direction": "right"}},
			want: "zellij action new-pane --direction right -- /bin/bash -c ls",
		},
		{
			name: "empty table",
			args: []interface{}{[]interface{}{}},
			want: "zellij action new-pane --floating",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, sp := newTestHost()
			if err := h.newPane(tt.args); err != nil {
				t.Fatalf("newPane() error: %v", err)
			}
			h.Invoker.Wait()
			if got := strings.Join(argv(t, sp), " "); got != tt.want {
				t.Errorf("argv:\n got  %q\n want %q", got, tt.want)
			}
		})
	}
}

func TestNewPaneFunction_InvalidKind(t *testing.T) {
	h, sp := newTestHost()
	for _, args := range [][]interface{}{{int64(42)}, {true}, {}} {
		if err := h.newPane(args); !errors.Is(err, model.ErrInvalidInputKind) {
			t.Errorf("newPane(%v): expected ErrInvalidInputKind, got %v", args, err)
		}
	}
	if calls := sp.GetCalls(); len(calls) != 0 {
		t.Errorf("expected no spawns, got %d", len(calls))
	}
}

func TestRunFunction(t *testing.T) {
	h, sp := newTestHost()
	opts := map[string]interface{}{"name": "tests", "close_on_exit": true}
	if err := h.run([]interface{}{"go test ./...", opts}); err != nil {
		t.Fatalf("run() error: %v", err)
	}
	h.Invoker.Wait()

	want := "zellij action new-pane --floating --name tests --close-on-exit -- /bin/bash -c go test ./..."
	if got := strings.Join(argv(t, sp), " "); got != want {
		t.Errorf("argv:\n got  %q\n want %q", got, want)
	}

	if err := h.run([]interface{}{int64(1)}); err == nil {
		t.Error("expected error for non-string cmd")
	}
}

func TestEditFunction(t *testing.T) {
	h, sp := newTestHost()
	if err := h.edit([]interface{}{"main.go", map[string]interface{}{"line": int64(7)}}); err != nil {
		t.Fatalf("edit() error: %v", err)
	}
	h.Invoker.Wait()

	want := "zellij action edit --floating --line-number 7 main.go"
	if got := strings.Join(argv(t, sp), " "); got != want {
		t.Errorf("argv:\n got  %q\n want %q", got, want)
	}
}

func TestNewTabFunction(t *testing.T) {
	h, sp := newTestHost()
	if err := h.newTab(nil); err != nil {
		t.Fatalf("newTab() error: %v", err)
	}
	h.Invoker.Wait()

	if got := strings.Join(argv(t, sp), " "); got != "zellij action new-tab" {
		t.Errorf("argv: got %q", got)
	}
}

func TestSetupFunction(t *testing.T) {
	h, sp := newTestHost()
	setup := map[string]interface{}{
		"shell":    "/bin/zsh",
		"defaults": map[string]interface{}{"floating": false},
	}
	if err := h.setup([]interface{}{setup}); err != nil {
		t.Fatalf("setup() error: %v", err)
	}

	cfg := h.Store.Get()
	if cfg.Defaults.Floating {
		t.Error("Defaults.Floating: got true, want false")
	}
	if !cfg.Notifications.OnError {
		t.Error("Notifications.OnError should keep its prior value")
	}

	if err := h.runCommand([]string{"echo", "hi"}); err != nil {
		t.Fatalf("runCommand() error: %v", err)
	}
	h.Invoker.Wait()
	want := "zellij action new-pane -- /bin/zsh -c echo hi"
	if got := strings.Join(argv(t, sp), " "); got != want {
		t.Errorf("argv:\n got  %q\n want %q", got, want)
	}

	if err := h.setup([]interface{}{"not a table"}); err == nil {
		t.Error("expected error for non-table setup")
	}
}

func TestRunCommand_NoArgsOpensBarePane(t *testing.T) {
	h, sp := newTestHost()
	if err := h.runCommand(nil); err != nil {
		t.Fatalf("runCommand() error: %v", err)
	}
	h.Invoker.Wait()
	if got := strings.Join(argv(t, sp), " "); got != "zellij action new-pane --floating" {
		t.Errorf("argv: got %q", got)
	}
}

func TestEditCommand(t *testing.T) {
	t.Run("explicit file", func(t *testing.T) {
		h, sp := newTestHost()
		if err := h.editCommand([]string{"go.mod"}, &bufferPosition{File: "/src/main.go", Line: 3}); err != nil {
			t.Fatalf("editCommand() error: %v", err)
		}
		h.Invoker.Wait()
		if got := strings.Join(argv(t, sp), " "); got != "zellij action edit --floating go.mod" {
			t.Errorf("argv: got %q", got)
		}
	})

	t.Run("current buffer", func(t *testing.T) {
		h, sp := newTestHost()
		if err := h.editCommand(nil, &bufferPosition{File: "/src/main.go", Line: 3}); err != nil {
			t.Fatalf("editCommand() error: %v", err)
		}
		h.Invoker.Wait()
		want := "zellij action edit --floating --line-number 3 /src/main.go"
		if got := strings.Join(argv(t, sp), " "); got != want {
			t.Errorf("argv:\n got  %q\n want %q", got, want)
		}
	})

	t.Run("unnamed buffer", func(t *testing.T) {
		h, _ := newTestHost()
		if err := h.editCommand(nil, &bufferPosition{}); err == nil {
			t.Error("expected error for unnamed buffer")
		}
	})
}

func TestNewTabCommand(t *testing.T) {
	h, sp := newTestHost()
	if err := h.newTabCommand([]string{"dev.kdl"}); err != nil {
		t.Fatalf("newTabCommand() error: %v", err)
	}
	h.Invoker.Wait()
	if got := strings.Join(argv(t, sp), " "); got != "zellij action new-tab --layout dev.kdl" {
		t.Errorf("argv: got %q", got)
	}
}

type execCall struct {
	code string
	args []interface{}
}

type fakeLua struct {
	calls []execCall
	err   error
}

func (f *fakeLua) ExecLua(code string, _ interface{}, args ...interface{}) error {
	f.calls = append(f.calls, execCall{code, args})
	return f.err
}

func TestSurface_Notify(t *testing.T) {
	lua := &fakeLua{}
	s := NewSurface(lua)

	err := s.Notify("boom", notify.LevelError, notify.Meta{Title: notify.TitleError, Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("Notify() error: %v", err)
	}
	if len(lua.calls) != 1 {
		t.Fatalf("expected 1 ExecLua call, got %d", len(lua.calls))
	}
	c := lua.calls[0]
	if !strings.Contains(c.code, "vim.notify") {
		t.Errorf("code does not call vim.notify: %q", c.code)
	}
	if len(c.args) != 3 || c.args[0] != "boom" || c.args[1] != "ERROR" {
		t.Fatalf("args: got %v", c.args)
	}
	opts, ok := c.args[2].(map[string]interface{})
	if !ok {
		t.Fatalf("opts: got %T", c.args[2])
	}
	if opts["title"] != "Zellij cmd failed" || opts["timeout"] != int64(5000) {
		t.Errorf("opts: got %v", opts)
	}
}

func TestSurface_NotifyError(t *testing.T) {
	s := NewSurface(&fakeLua{err: errors.New("closed")})
	if err := s.Notify("x", notify.LevelInfo, notify.Meta{}); err == nil {
		t.Error("expected ExecLua error to be returned")
	}
}
