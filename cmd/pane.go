package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/timvw/zellij-nvim/internal/invoker"
	"github.com/timvw/zellij-nvim/internal/logger"
	"github.com/timvw/zellij-nvim/internal/model"
	"github.com/timvw/zellij-nvim/internal/notify"
)

// stderrSurface is where CLI notifications go. Swapped out in tests.
var stderrSurface = func() notify.Surface { return notify.NewTerminalSurface(os.Stderr) }

// paneFlags are the options shared by pane and run.
type paneFlags struct {
	floating       bool
	closeOnExit    bool
	startSuspended bool
	direction      string
	cwd            string
	name           string
	session        string
}

func (f *paneFlags) register(fs *pflag.FlagSet) {
	fs.BoolVarP(&f.floating, "floating", "f", false, "open a floating pane (default from config)")
	fs.BoolVar(&f.closeOnExit, "close-on-exit", false, "close the pane when its command exits (default from config)")
	fs.BoolVar(&f.startSuspended, "start-suspended", false, "wait for a keypress before running the command (default from config)")
	fs.StringVarP(&f.direction, "direction", "d", "", "split direction for tiled panes: right, down")
	fs.StringVar(&f.cwd, "cwd", "", "working directory of the pane")
	fs.StringVarP(&f.name, "name", "n", "", "pane name")
	fs.StringVarP(&f.session, "session", "s", "", "target zellij session")
}

// options returns the flags as an options record. Booleans the user did not
// set stay nil so the config defaults apply.
func (f *paneFlags) options(fs *pflag.FlagSet) model.RawOptions {
	o := model.RawOptions{
		Direction: f.direction,
		Cwd:       f.cwd,
		Name:      f.name,
		Session:   f.session,
	}
	if fs.Changed("floating") {
		o.Floating = model.Bool(f.floating)
	}
	if fs.Changed("close-on-exit") {
		o.CloseOnExit = model.Bool(f.closeOnExit)
	}
	if fs.Changed("start-suspended") {
		o.StartSuspended = model.Bool(f.startSuspended)
	}
	return o
}

// anySet reports whether any pane option was given on the command line.
func (f *paneFlags) anySet(fs *pflag.FlagSet) bool {
	for _, name := range []string{"floating", "close-on-exit", "start-suspended", "direction", "cwd", "name", "session"} {
		if fs.Changed(name) {
			return true
		}
	}
	return false
}

// paneInput picks the input shape: a bare command when only a command was
// given, an options record otherwise.
func (f *paneFlags) paneInput(fs *pflag.FlagSet, args []string) model.PaneInput {
	cmd := strings.Join(args, " ")
	if cmd != "" && !f.anySet(fs) {
		return model.RawCommand{Text: cmd}
	}
	o := f.options(fs)
	o.Cmd = cmd
	return o
}

var paneOpts paneFlags

var paneCmd = &cobra.Command{
	Use:   "pane [command...]",
	Short: "Open a zellij pane, optionally running a command",
	Long: `Open a zellij pane.

With arguments, the pane runs them through the configured shell. Without
arguments it opens an empty pane. Options not given on the command line
come from the config defaults.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input := paneOpts.paneInput(cmd.Flags(), args)
		return runAction(cmd, func(ctx context.Context, inv *invoker.Invoker) error {
			return inv.NewPane(ctx, input)
		})
	},
}

// runAction wires an app that reports on stderr, runs fn and waits for the
// outcome.
func runAction(cmd *cobra.Command, fn func(ctx context.Context, inv *invoker.Invoker) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogFile); err != nil {
		cmd.PrintErrf("warning: logging disabled: %v\n", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a := newApp(ctx, cfg, stderrSurface())
	defer a.close(ctx)

	return fn(ctx, a.invoker)
}

func init() {
	paneOpts.register(paneCmd.Flags())
	rootCmd.AddCommand(paneCmd)
}
