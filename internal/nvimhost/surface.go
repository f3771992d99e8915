package nvimhost

import (
	"github.com/timvw/zellij-nvim/internal/notify"
)

const notifyLua = `local msg, level, opts = ...
vim.notify(msg, vim.log.levels[level], opts)`

// luaExecer is the part of *nvim.Nvim the surface uses.
type luaExecer interface {
	ExecLua(code string, result interface{}, args ...interface{}) error
}

// Surface shows notifications with vim.notify.
type Surface struct {
	v luaExecer
}

// NewSurface creates a Surface on an nvim connection (usually p.Nvim).
func NewSurface(v luaExecer) *Surface {
	return &Surface{v: v}
}

func (s *Surface) Notify(msg string, level notify.Level, meta notify.Meta) error {
	opts := map[string]interface{}{
		"title":   meta.Title,
		"timeout": meta.Timeout.Milliseconds(),
	}
	return s.v.ExecLua(notifyLua, nil, msg, level.String(), opts)
}
