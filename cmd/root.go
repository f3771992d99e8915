package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/timvw/zellij-nvim/internal/config"
	"github.com/timvw/zellij-nvim/internal/invoker"
	"github.com/timvw/zellij-nvim/internal/logger"
	"github.com/timvw/zellij-nvim/internal/notify"
	telem "github.com/timvw/zellij-nvim/internal/otel"
	"github.com/timvw/zellij-nvim/internal/process"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=...".
var Version = "dev"

var (
	// Global flags.
	flagBinary  string
	flagShell   string
	flagLogFile string
	flagDebug   bool
	flagDesktop bool
)

// newSpawner is swapped out in tests.
var newSpawner = func() process.Spawner { return process.NewExecSpawner() }

var rootCmd = &cobra.Command{
	Use:   "zellij-nvim",
	Short: "Open zellij panes and tabs from Neovim or the shell",
	Long: `zellij-nvim opens zellij panes, editor panes and tabs.

Run it as a Neovim remote plugin host ("zellij-nvim host") to get the
ZellijRun, ZellijEdit and ZellijNewTab commands, or call the subcommands
directly from a shell. Results are reported as notifications: errors by
default, successes when notifications.on_success is enabled.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBinary, "binary", "", "zellij executable (default: zellij, or ZELLIJ_NVIM_BINARY)")
	rootCmd.PersistentFlags().StringVar(&flagShell, "shell", "", "shell that runs pane commands (default: $SHELL, then /bin/sh)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "log file path (default: $XDG_STATE_HOME/zellij-nvim/zellij-nvim.log)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagDesktop, "desktop", envOrDefault("ZELLIJ_NVIM_DESKTOP", "") != "", "also send notifications to the desktop")
}

// loadConfig loads the config and applies the global flags the user set.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}

	var p config.Partial
	flags := cmd.Flags()
	if flags.Changed("binary") {
		p.Binary = &flagBinary
	}
	if flags.Changed("shell") {
		p.Shell = &flagShell
	}
	if flags.Changed("log-file") {
		p.LogFile = &flagLogFile
	}
	if flags.Changed("debug") {
		p.Debug = &flagDebug
	}
	return config.Merge(cfg, p), nil
}

// app is the wired set of collaborators shared by the subcommands.
type app struct {
	store   *config.Store
	invoker *invoker.Invoker
	tel     *telem.Telemetry
}

// newApp wires the invoker for cfg, notifying through surface.
func newApp(ctx context.Context, cfg config.Config, surface notify.Surface) *app {
	logger.SetDebug(cfg.Debug)
	log := logger.WithComponent("cmd")

	telem.Version = Version
	tel, err := telem.Init(ctx, telem.OTELConfig{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		log.Warn("otel init failed", "error", err)
		tel = nil
	}

	if flagDesktop {
		surface = notify.Multi{surface, notify.NewDesktopSurface()}
	}
	notifier := notify.New(surface)
	notifier.Log = logger.WithComponent("notify")

	store := config.NewStore(cfg)
	inv := invoker.New(store, newSpawner(), notifier)
	inv.Log = logger.WithComponent("invoker")
	if tel != nil {
		inv.Metrics = tel.Metrics
		inv.Tracer = tel.Tracer
	}
	return &app{store: store, invoker: inv, tel: tel}
}

// close waits for pending completions and flushes telemetry.
func (a *app) close(ctx context.Context) {
	a.invoker.Wait()
	if err := a.tel.Shutdown(ctx); err != nil {
		logger.Get().Warn("otel shutdown failed", "error", err)
	}
	logger.Close()
}

// envOrDefault returns the environment variable value or a default.
func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
