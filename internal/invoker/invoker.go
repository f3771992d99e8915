// Package invoker turns user requests into zellij commands: it normalizes
// the input against the live config, builds the argument vector, spawns it
// and routes the outcome to the notifier.
package invoker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/timvw/zellij-nvim/internal/config"
	"github.com/timvw/zellij-nvim/internal/logger"
	"github.com/timvw/zellij-nvim/internal/model"
	"github.com/timvw/zellij-nvim/internal/mux"
	"github.com/timvw/zellij-nvim/internal/notify"
	telem "github.com/timvw/zellij-nvim/internal/otel"
	"github.com/timvw/zellij-nvim/internal/process"
)

// Actions, used for logs, spans and metrics.
const (
	ActionNewPane = "new-pane"
	ActionRun     = "run"
	ActionEdit    = "edit"
	ActionNewTab  = "new-tab"
)

// Invoker runs zellij commands on behalf of the editor or the CLI.
// Public calls return once the process has been started; the outcome is
// reported later through Notifier.
type Invoker struct {
	Store    *config.Store
	Spawner  process.Spawner
	Notifier *notify.Notifier

	// Optional.
	Metrics *telem.Metrics
	Tracer  trace.Tracer
	Log     *slog.Logger
	// Getenv resolves $SHELL when the config names no shell.
	Getenv mux.Env

	wg   sync.WaitGroup
	cbMu sync.Mutex
}

// New creates an Invoker with the given collaborators.
func New(store *config.Store, spawner process.Spawner, notifier *notify.Notifier) *Invoker {
	return &Invoker{Store: store, Spawner: spawner, Notifier: notifier}
}

// NewPane opens a pane. input is either a bare command or an options record.
func (i *Invoker) NewPane(ctx context.Context, input model.PaneInput) error {
	return i.newPane(ctx, ActionNewPane, input)
}

// Run opens a pane running cmd, with opts supplying the remaining options.
func (i *Invoker) Run(ctx context.Context, cmd string, opts model.RunInput) error {
	opts.Cmd = cmd
	return i.newPane(ctx, ActionRun, opts)
}

func (i *Invoker) newPane(ctx context.Context, action string, input model.PaneInput) error {
	cfg := i.config()
	opts, err := model.NormalizePane(input, cfg.Defaults)
	if err != nil {
		i.rejected(ctx, action, err)
		return err
	}
	i.launch(ctx, action, i.builder(cfg).NewPane(opts), cfg)
	return nil
}

// Edit opens file in an editor pane.
func (i *Invoker) Edit(ctx context.Context, file string, in model.EditInput) error {
	cfg := i.config()
	opts, err := model.NormalizeEdit(file, in, cfg.Defaults)
	if err != nil {
		i.rejected(ctx, ActionEdit, err)
		return err
	}
	i.launch(ctx, ActionEdit, i.builder(cfg).Edit(opts), cfg)
	return nil
}

// NewTab opens a tab.
func (i *Invoker) NewTab(ctx context.Context, in model.TabInput) error {
	cfg := i.config()
	i.launch(ctx, ActionNewTab, i.builder(cfg).NewTab(model.NormalizeTab(in)), cfg)
	return nil
}

// Wait blocks until every started command has been reported.
func (i *Invoker) Wait() {
	i.wg.Wait()
}

func (i *Invoker) config() config.Config {
	if i.Store == nil {
		return config.Defaults()
	}
	return i.Store.Get()
}

func (i *Invoker) builder(cfg config.Config) mux.Multiplexer {
	return &mux.Zellij{Binary: cfg.Binary, Shell: cfg.Shell, Getenv: i.Getenv}
}

func (i *Invoker) rejected(ctx context.Context, action string, err error) {
	i.log().Warn("invalid request", "action", action, "error", err)
	i.Metrics.RecordInvocation(ctx, action, telem.OutcomeInvalidRequest)
}

// launch spawns argv. A launch failure is reported immediately and never
// returned to the caller.
func (i *Invoker) launch(ctx context.Context, action string, argv []string, cfg config.Config) {
	id := uuid.NewString()
	log := i.log().With("invocation", id, "action", action)

	ctx, span := i.tracer().Start(ctx, "zellij."+action, trace.WithAttributes(
		attribute.String("zellij.invocation_id", id),
		attribute.StringSlice("zellij.argv", argv),
	))

	log.Debug("spawning", "argv", argv)
	start := time.Now()

	i.wg.Add(1)
	handle, err := i.Spawner.Spawn(ctx, argv, process.Options{TextMode: true}, func(res process.Result) {
		defer i.wg.Done()
		defer span.End()
		i.onComplete(ctx, action, res, cfg, log, span, time.Since(start))
	})
	if err != nil {
		i.wg.Done()
		span.RecordError(err)
		span.SetStatus(codes.Error, "launch failed")
		span.End()

		log.Error("launch failed", "error", err)
		i.Metrics.RecordInvocation(ctx, action, telem.OutcomeLaunchError)
		// Not gated by the notification policy, which covers completions.
		i.cbMu.Lock()
		defer i.cbMu.Unlock()
		i.Notifier.Error(fmt.Sprintf("Failed to launch zellij: %v", err))
		i.Metrics.RecordNotification(ctx, notify.LevelError.String())
		return
	}
	log.Debug("spawned", "pid", handle.PID())
}

// onComplete routes a finished command to the notifier. Completions are
// serialized.
func (i *Invoker) onComplete(ctx context.Context, action string, res process.Result, cfg config.Config, log *slog.Logger, span trace.Span, elapsed time.Duration) {
	i.cbMu.Lock()
	defer i.cbMu.Unlock()

	i.Metrics.RecordDuration(ctx, action, float64(elapsed.Microseconds())/1000)
	span.SetAttributes(attribute.Int("zellij.exit_code", res.ExitCode))

	n := cfg.Notifications
	if res.Success() {
		log.Info("command succeeded", "elapsed", elapsed)
		i.Metrics.RecordInvocation(ctx, action, telem.OutcomeSuccess)
		if n.Enabled && n.OnSuccess {
			i.Notifier.OK(successMessage(action, res))
			i.Metrics.RecordNotification(ctx, notify.LevelInfo.String())
		}
		return
	}

	msg := failureMessage(action, res)
	log.Error("command failed", "exit_code", res.ExitCode, "signal", res.Signal, "stderr", res.Stderr, "error", res.Err)
	span.SetStatus(codes.Error, msg)
	i.Metrics.RecordInvocation(ctx, action, telem.OutcomeFailure)
	if n.Enabled && n.OnError {
		i.Notifier.Error(msg)
		i.Metrics.RecordNotification(ctx, notify.LevelError.String())
	}
}

func successMessage(action string, res process.Result) string {
	out := strings.TrimSpace(res.Stdout)
	if out == "" {
		return fmt.Sprintf("zellij %s done", action)
	}
	return fmt.Sprintf("zellij %s done: %s", action, out)
}

func failureMessage(action string, res process.Result) string {
	stderr := strings.TrimSpace(res.Stderr)
	var status string
	switch {
	case res.Signal != 0:
		status = fmt.Sprintf("terminated by signal %d", res.Signal)
	case res.Err != nil:
		status = fmt.Sprintf("no exit status (%v)", res.Err)
	case res.ExitCode < 0:
		status = "no exit status"
	default:
		status = fmt.Sprintf("exit code %d", res.ExitCode)
	}
	if stderr == "" {
		return fmt.Sprintf("zellij %s failed: %s", action, status)
	}
	return fmt.Sprintf("zellij %s failed: %s (%s)", action, stderr, status)
}

func (i *Invoker) log() *slog.Logger {
	if i.Log != nil {
		return i.Log
	}
	return logger.WithComponent("invoker")
}

func (i *Invoker) tracer() trace.Tracer {
	if i.Tracer != nil {
		return i.Tracer
	}
	return noop.NewTracerProvider().Tracer("")
}
