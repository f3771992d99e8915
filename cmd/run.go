package cmd

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timvw/zellij-nvim/internal/invoker"
)

var runOpts paneFlags

var runCmd = &cobra.Command{
	Use:   "run <command...>",
	Short: "Run a command in a new zellij pane",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		command := strings.Join(args, " ")
		opts := runOpts.options(cmd.Flags())
		return runAction(cmd, func(ctx context.Context, inv *invoker.Invoker) error {
			return inv.Run(ctx, command, opts)
		})
	},
}

func init() {
	runOpts.register(runCmd.Flags())
	rootCmd.AddCommand(runCmd)
}
