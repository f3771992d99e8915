// Package nvimhost exposes zellij-nvim to Neovim as a remote plugin.
//
// Functions take Lua values (strings and tables) and commands take
// Ex-command arguments; both end up in the same Invoker. Notifications go
// back to the editor through vim.notify.
package nvimhost

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/neovim/go-client/nvim/plugin"

	"github.com/timvw/zellij-nvim/internal/config"
	"github.com/timvw/zellij-nvim/internal/invoker"
	"github.com/timvw/zellij-nvim/internal/logger"
	"github.com/timvw/zellij-nvim/internal/model"
)

// Host holds what the handlers need.
type Host struct {
	Invoker *invoker.Invoker
	Store   *config.Store
	Log     *slog.Logger
}

// Register installs every function and command on p.
func Register(p *plugin.Plugin, h *Host) error {
	if h == nil || h.Invoker == nil || h.Store == nil {
		return fmt.Errorf("nvimhost: invoker and config store are required")
	}

	p.HandleFunction(&plugin.FunctionOptions{Name: "ZellijSetup"}, h.setup)
	p.HandleFunction(&plugin.FunctionOptions{Name: "ZellijNewPane"}, h.newPane)
	p.HandleFunction(&plugin.FunctionOptions{Name: "ZellijRun"}, h.run)
	p.HandleFunction(&plugin.FunctionOptions{Name: "ZellijEdit"}, h.edit)
	p.HandleFunction(&plugin.FunctionOptions{Name: "ZellijNewTab"}, h.newTab)

	p.HandleCommand(&plugin.CommandOptions{Name: "ZellijRun", NArgs: "*", Complete: "shellcmd"}, h.runCommand)
	p.HandleCommand(&plugin.CommandOptions{
		Name:     "ZellijEdit",
		NArgs:    "?",
		Complete: "file",
		Eval:     "[expand('%:p'), line('.')]",
	}, h.editCommand)
	p.HandleCommand(&plugin.CommandOptions{Name: "ZellijNewTab", NArgs: "?", Complete: "file"}, h.newTabCommand)

	h.log().Info("handlers registered")
	return nil
}

// setup implements ZellijSetup({...}).
func (h *Host) setup(args []interface{}) error {
	p, err := config.DecodePartial(argAt(args, 0))
	if err != nil {
		return err
	}
	cfg := h.Store.Setup(p)
	logger.SetDebug(cfg.Debug)
	h.log().Debug("setup applied", "config", fmt.Sprintf("%+v", cfg))
	return nil
}

// newPane implements ZellijNewPane(cmd) and ZellijNewPane({...}).
func (h *Host) newPane(args []interface{}) error {
	input, err := model.DecodePaneInput(argAt(args, 0))
	if err != nil {
		return err
	}
	return h.Invoker.NewPane(context.Background(), input)
}

// run implements ZellijRun(cmd [, {...}]).
func (h *Host) run(args []interface{}) error {
	cmd, err := stringArg(args, 0, "cmd")
	if err != nil {
		return err
	}
	opts, err := model.DecodeRunInput(argAt(args, 1))
	if err != nil {
		return err
	}
	return h.Invoker.Run(context.Background(), cmd, opts)
}

// edit implements ZellijEdit(file [, {...}]).
func (h *Host) edit(args []interface{}) error {
	file, err := stringArg(args, 0, "file")
	if err != nil {
		return err
	}
	in, err := model.DecodeEditInput(argAt(args, 1))
	if err != nil {
		return err
	}
	return h.Invoker.Edit(context.Background(), file, in)
}

// newTab implements ZellijNewTab([{...}]).
func (h *Host) newTab(args []interface{}) error {
	in, err := model.DecodeTabInput(argAt(args, 0))
	if err != nil {
		return err
	}
	return h.Invoker.NewTab(context.Background(), in)
}

// runCommand implements :ZellijRun [cmd...]. Without arguments it opens an
// empty pane.
func (h *Host) runCommand(args []string) error {
	cmd := strings.TrimSpace(strings.Join(args, " "))
	if cmd == "" {
		return h.Invoker.NewPane(context.Background(), model.RawOptions{})
	}
	return h.Invoker.NewPane(context.Background(), model.RawCommand{Text: cmd})
}

// bufferPosition is the result of the :ZellijEdit eval expression.
type bufferPosition struct {
	File string `msgpack:",array"`
	Line int
}

// editCommand implements :ZellijEdit [file]. Without an argument it opens
// the current buffer at the cursor line.
func (h *Host) editCommand(args []string, pos *bufferPosition) error {
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		return h.Invoker.Edit(context.Background(), args[0], model.EditInput{})
	}
	if pos == nil || pos.File == "" {
		return fmt.Errorf("ZellijEdit: current buffer has no file name")
	}
	return h.Invoker.Edit(context.Background(), pos.File, model.EditInput{Line: pos.Line})
}

// newTabCommand implements :ZellijNewTab [layout].
func (h *Host) newTabCommand(args []string) error {
	var in model.TabInput
	if len(args) > 0 {
		in.Layout = strings.TrimSpace(args[0])
	}
	return h.Invoker.NewTab(context.Background(), in)
}

func (h *Host) log() *slog.Logger {
	if h.Log != nil {
		return h.Log
	}
	return logger.WithComponent("nvimhost")
}

func argAt(args []interface{}, i int) interface{} {
	if i < len(args) {
		return args[i]
	}
	return nil
}

func stringArg(args []interface{}, i int, name string) (string, error) {
	v := argAt(args, i)
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s: expected string, got %T", name, v)
	}
	return s, nil
}
