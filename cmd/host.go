package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/neovim/go-client/nvim"
	"github.com/neovim/go-client/nvim/plugin"
	"github.com/spf13/cobra"

	"github.com/timvw/zellij-nvim/internal/config"
	"github.com/timvw/zellij-nvim/internal/invoker"
	"github.com/timvw/zellij-nvim/internal/logger"
	"github.com/timvw/zellij-nvim/internal/mux"
	"github.com/timvw/zellij-nvim/internal/notify"
	"github.com/timvw/zellij-nvim/internal/nvimhost"
)

var flagManifest string

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Serve Neovim as a remote plugin host over stdio",
	Long: `Serve Neovim as a remote plugin host over stdio.

Neovim starts this command through its remote plugin machinery. stdout is
the msgpack-RPC channel, so all diagnostics go to the log file.

Use --manifest <host> to print the registration script for
:UpdateRemotePlugins.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagManifest != "" {
			return writeManifest(cmd, flagManifest)
		}
		return runHost(cmd)
	},
}

func init() {
	hostCmd.Flags().StringVar(&flagManifest, "manifest", "", "print the plugin manifest for the named host and exit")
	rootCmd.AddCommand(hostCmd)
}

// writeManifest prints the Vim script that registers the plugin's
// functions and commands.
func writeManifest(cmd *cobra.Command, host string) error {
	store := config.NewStore(config.Defaults())
	h := &nvimhost.Host{
		Invoker: invoker.New(store, newSpawner(), notify.New(nil)),
		Store:   store,
	}
	p := plugin.New(nil)
	if err := nvimhost.Register(p, h); err != nil {
		return err
	}
	_, err := cmd.OutOrStdout().Write(p.Manifest(host))
	return err
}

func runHost(cmd *cobra.Command) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "zellij-nvim: logging disabled: %v\n", err)
	}
	log := logger.WithComponent("host")
	if cfg.ConfigFile != "" {
		log.Info("config loaded", "path", cfg.ConfigFile)
	}

	v, err := nvim.New(os.Stdin, os.Stdout, os.Stdout, func(format string, args ...interface{}) {
		log.Info(fmt.Sprintf(format, args...))
	})
	if err != nil {
		return fmt.Errorf("nvim connection: %w", err)
	}
	defer v.Close()

	a := newApp(ctx, cfg, nvimhost.NewSurface(v))
	defer a.close(ctx)

	if w := mux.Detect(cfg.Binary, nil, nil).Warning(); w != "" {
		log.Warn(w)
	}

	if cfg.ConfigFile != "" {
		err := config.Watch(ctx, cfg.ConfigFile,
			func(p config.Partial) {
				updated := a.store.Setup(p)
				logger.SetDebug(updated.Debug)
				log.Info("config reloaded", "path", cfg.ConfigFile)
			},
			func(err error) {
				log.Warn("config reload failed", "error", err)
			})
		if err != nil {
			log.Warn("config watch disabled", "error", err)
		}
	}

	p := plugin.New(v)
	if err := nvimhost.Register(p, &nvimhost.Host{Invoker: a.invoker, Store: a.store}); err != nil {
		return err
	}

	log.Info("serving", "version", Version, "pid", os.Getpid())
	return v.Serve()
}
