package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/timvw/zellij-nvim/internal/invoker"
	"github.com/timvw/zellij-nvim/internal/model"
)

var tabOpts model.TabInput

var tabCmd = &cobra.Command{
	Use:   "tab [layout]",
	Short: "Open a zellij tab",
	Long: `Open a zellij tab, optionally from a layout file or URL.

A positional layout is the same as --layout. --layout wins over --layout-url
when both are given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := tabOpts
		if len(args) == 1 && in.Layout == "" {
			in.Layout = args[0]
		}
		return runAction(cmd, func(ctx context.Context, inv *invoker.Invoker) error {
			return inv.NewTab(ctx, in)
		})
	},
}

func init() {
	tabCmd.Flags().StringVar(&tabOpts.Layout, "layout", "", "layout file")
	tabCmd.Flags().StringVar(&tabOpts.LayoutURL, "layout-url", "", "layout URL")
	tabCmd.Flags().StringVarP(&tabOpts.Name, "name", "n", "", "tab name")
	tabCmd.Flags().StringVar(&tabOpts.Cwd, "cwd", "", "working directory of the tab")
	tabCmd.Flags().StringVarP(&tabOpts.Session, "session", "s", "", "target zellij session")
	rootCmd.AddCommand(tabCmd)
}
