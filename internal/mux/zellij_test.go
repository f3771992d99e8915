package mux

import (
	"errors"
	"reflect"
	"testing"

	"github.com/timvw/zellij-nvim/internal/model"
)

func fakeEnv(vars map[string]string) Env {
	return func(key string) string { return vars[key] }
}

// defaultDefaults mirrors the configuration defaults: floating panes,
// no close-on-exit, no start-suspended.
var defaultDefaults = model.Defaults{Floating: true}

func TestNewPane_BareCommandUsesDefaults(t *testing.T) {
	z := &Zellij{Getenv: fakeEnv(map[string]string{"SHELL": "/bin/zsh"})}

	opts, err := model.NormalizePane(model.RawCommand{Text: "echo hello"}, defaultDefaults)
	if err != nil {
		t.Fatalf("NormalizePane() error: %v", err)
	}

	got := z.NewPane(opts)
	want := []string{"zellij", "action", "new-pane", "--floating", "--", "/bin/zsh", "-c", "echo hello"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NewPane() =\n  %q\nwant\n  %q", got, want)
	}
}

func TestNewPane_DirectionWhenNotFloating(t *testing.T) {
	z := &Zellij{Getenv: fakeEnv(nil)}

	opts, err := model.NormalizePane(model.RawOptions{
		Cmd:       "npm test",
		Floating:  model.Bool(false),
		Direction: "down",
	}, defaultDefaults)
	if err != nil {
		t.Fatalf("NormalizePane() error: %v", err)
	}

	got := z.NewPane(opts)
	if !containsPair(got, "--direction", "down") {
		t.Errorf("expected --direction down in %q", got)
	}
	if contains(got, "--floating") {
		t.Errorf("did not expect --floating in %q", got)
	}
}

func TestNewPane_FloatingSuppressesDirection(t *testing.T) {
	z := &Zellij{Getenv: fakeEnv(nil)}

	got := z.NewPane(model.PaneOptions{Cmd: "htop", Floating: true, Direction: model.DirectionRight})
	if !contains(got, "--floating") {
		t.Errorf("expected --floating in %q", got)
	}
	if contains(got, "--direction") {
		t.Errorf("direction must be dropped when floating, got %q", got)
	}
}

func TestNewPane_NoCommandOmitsSeparator(t *testing.T) {
	z := &Zellij{Getenv: fakeEnv(map[string]string{"SHELL": "/bin/bash"})}

	opts, err := model.NormalizePane(model.RawOptions{Floating: model.Bool(true), Name: "Shell"}, defaultDefaults)
	if err != nil {
		t.Fatalf("NormalizePane() error: %v", err)
	}

	got := z.NewPane(opts)
	want := []string{"zellij", "action", "new-pane", "--floating", "--name", "Shell"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NewPane() = %q, want %q", got, want)
	}
	for _, tok := range []string{"--", "-c", "/bin/bash"} {
		if contains(got, tok) {
			t.Errorf("did not expect %q in %q", tok, got)
		}
	}
}

func TestNewPane_FullOrdering(t *testing.T) {
	z := &Zellij{Shell: "/usr/bin/fish", Getenv: fakeEnv(map[string]string{"SHELL": "/bin/zsh"})}

	got := z.NewPane(model.PaneOptions{
		Cmd:            "cargo watch -x test",
		Direction:      model.DirectionRight,
		Cwd:            "/src/app",
		Name:           "watch",
		CloseOnExit:    true,
		StartSuspended: true,
		Session:        "work",
	})
	want := []string{
		"zellij", "action", "new-pane",
		"--direction", "right",
		"--cwd", "/src/app",
		"--name", "watch",
		"--close-on-exit",
		"--start-suspended",
		"--session", "work",
		"--", "/usr/bin/fish", "-c", "cargo watch -x test",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NewPane() =\n  %q\nwant\n  %q", got, want)
	}
}

func TestNewPane_CommandIsOneToken(t *testing.T) {
	z := &Zellij{Shell: "/bin/sh"}
	cmd := `echo "a b"; rm -rf $HOME`

	got := z.NewPane(model.PaneOptions{Cmd: cmd})
	if got[len(got)-1] != cmd {
		t.Errorf("last token: got %q, want the command verbatim %q", got[len(got)-1], cmd)
	}
}

func TestEdit(t *testing.T) {
	z := &Zellij{}
	tests := []struct {
		name string
		opts model.EditOptions
		want []string
	}{
		{
			name: "floating with line",
			opts: model.EditOptions{File: "main.go", Line: 12, Floating: true},
			want: []string{"zellij", "action", "edit", "--floating", "--line-number", "12", "main.go"},
		},
		{
			name: "direction, cwd and session",
			opts: model.EditOptions{File: "/tmp/x.txt", Direction: model.DirectionDown, Cwd: "/tmp", Session: "s1"},
			want: []string{"zellij", "action", "edit", "--direction", "down", "--cwd", "/tmp", "--session", "s1", "/tmp/x.txt"},
		},
		{
			name: "file only",
			opts: model.EditOptions{File: "README.md"},
			want: []string{"zellij", "action", "edit", "README.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := z.Edit(tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Edit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewTab(t *testing.T) {
	z := &Zellij{}
	tests := []struct {
		name string
		opts model.TabOptions
		want []string
	}{
		{
			name: "empty",
			opts: model.TabOptions{},
			want: []string{"zellij", "action", "new-tab"},
		},
		{
			name: "layout then name",
			opts: model.TabOptions{Layout: "dev.kdl", Name: "Dev"},
			want: []string{"zellij", "action", "new-tab", "--layout", "dev.kdl", "--name", "Dev"},
		},
		{
			name: "layout url",
			opts: model.TabOptions{LayoutURL: "https://example.com/l.kdl"},
			want: []string{"zellij", "action", "new-tab", "--layout-url", "https://example.com/l.kdl"},
		},
		{
			name: "local layout wins over url",
			opts: model.TabOptions{Layout: "a.kdl", LayoutURL: "https://example.com/b.kdl"},
			want: []string{"zellij", "action", "new-tab", "--layout", "a.kdl"},
		},
		{
			name: "session and cwd",
			opts: model.TabOptions{Cwd: "/srv", Session: "ops", Name: "Logs"},
			want: []string{"zellij", "action", "new-tab", "--cwd", "/srv", "--session", "ops", "--name", "Logs"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := z.NewTab(tt.opts)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewTab() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveShell(t *testing.T) {
	tests := []struct {
		name  string
		shell string
		env   map[string]string
		want  string
	}{
		{"config wins", "/usr/bin/fish", map[string]string{"SHELL": "/bin/zsh"}, "/usr/bin/fish"},
		{"env fallback", "", map[string]string{"SHELL": "/bin/zsh"}, "/bin/zsh"},
		{"posix default", "", nil, DefaultShell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := &Zellij{Shell: tt.shell, Getenv: fakeEnv(tt.env)}
			if got := z.ResolveShell(); got != tt.want {
				t.Errorf("ResolveShell() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBinaryOverride(t *testing.T) {
	z := &Zellij{Binary: "/opt/zellij/bin/zellij"}
	got := z.NewTab(model.TabOptions{})
	if got[0] != "/opt/zellij/bin/zellij" {
		t.Errorf("argv[0]: got %q, want %q", got[0], "/opt/zellij/bin/zellij")
	}
}

func TestDetect(t *testing.T) {
	found := func(string) (string, error) { return "/usr/bin/zellij", nil }
	missing := func(string) (string, error) { return "", errors.New("not found") }

	st := Detect("", found, fakeEnv(map[string]string{"ZELLIJ": "0", "ZELLIJ_SESSION_NAME": "main"}))
	if st.BinaryPath != "/usr/bin/zellij" || !st.InSession || st.SessionName != "main" {
		t.Errorf("Detect() = %+v", st)
	}
	if w := st.Warning(); w != "" {
		t.Errorf("Warning() = %q, want empty", w)
	}

	st = Detect("", missing, fakeEnv(nil))
	if st.BinaryPath != "" {
		t.Errorf("BinaryPath: got %q, want empty", st.BinaryPath)
	}
	if st.Warning() == "" {
		t.Error("expected a warning when zellij is missing")
	}

	st = Detect("", found, fakeEnv(nil))
	if st.InSession {
		t.Error("InSession: got true, want false")
	}
	if st.Warning() == "" {
		t.Error("expected a warning outside a zellij session")
	}
}

func contains(args []string, tok string) bool {
	for _, a := range args {
		if a == tok {
			return true
		}
	}
	return false
}

func containsPair(args []string, flag, value string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == flag && args[i+1] == value {
			return true
		}
	}
	return false
}
