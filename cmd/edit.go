package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/timvw/zellij-nvim/internal/invoker"
	"github.com/timvw/zellij-nvim/internal/model"
)

type editFlags struct {
	line      int
	floating  bool
	direction string
	cwd       string
	session   string
}

func (f *editFlags) register(fs *pflag.FlagSet) {
	fs.IntVarP(&f.line, "line", "l", 0, "line to open the file at")
	fs.BoolVarP(&f.floating, "floating", "f", false, "open a floating pane (default from config)")
	fs.StringVarP(&f.direction, "direction", "d", "", "split direction for tiled panes: right, down")
	fs.StringVar(&f.cwd, "cwd", "", "working directory of the editor pane")
	fs.StringVarP(&f.session, "session", "s", "", "target zellij session")
}

func (f *editFlags) input(fs *pflag.FlagSet) model.EditInput {
	in := model.EditInput{
		Line:      f.line,
		Direction: f.direction,
		Cwd:       f.cwd,
		Session:   f.session,
	}
	if fs.Changed("floating") {
		in.Floating = model.Bool(f.floating)
	}
	return in
}

var editOpts editFlags

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Open a file in a zellij editor pane",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file := args[0]
		in := editOpts.input(cmd.Flags())
		return runAction(cmd, func(ctx context.Context, inv *invoker.Invoker) error {
			return inv.Edit(ctx, file, in)
		})
	},
}

func init() {
	editOpts.register(editCmd.Flags())
	rootCmd.AddCommand(editCmd)
}
