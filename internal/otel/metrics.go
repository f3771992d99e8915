package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "zellij-nvim"

// Outcomes recorded per invocation.
const (
	OutcomeSuccess        = "success"
	OutcomeFailure        = "failure"
	OutcomeLaunchError    = "launch_error"
	OutcomeInvalidRequest = "invalid_request"
)

// Metrics holds the metric instruments. Methods are nil-safe.
type Metrics struct {
	// Invocations counts zellij commands by action and outcome.
	Invocations metric.Int64Counter
	// Duration is the wall time from spawn to completion.
	Duration metric.Float64Histogram
	// Notifications counts notifications by level.
	Notifications metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Invocations, err = meter.Int64Counter("zellij.invocations",
		metric.WithDescription("zellij commands by action and outcome"))
	if err != nil {
		return nil, err
	}

	m.Duration, err = meter.Float64Histogram("zellij.duration",
		metric.WithDescription("Time from spawn to completion of a zellij command"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	m.Notifications, err = meter.Int64Counter("notifications.total",
		metric.WithDescription("User notifications by level"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordInvocation records one finished (or rejected) invocation.
func (m *Metrics) RecordInvocation(ctx context.Context, action, outcome string) {
	if m == nil {
		return
	}
	m.Invocations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("zellij.action", action),
		attribute.String("zellij.outcome", outcome),
	))
}

// RecordDuration records the spawn-to-completion time in milliseconds.
func (m *Metrics) RecordDuration(ctx context.Context, action string, ms float64) {
	if m == nil {
		return
	}
	m.Duration.Record(ctx, ms, metric.WithAttributes(
		attribute.String("zellij.action", action),
	))
}

// RecordNotification records a notification of the given level.
func (m *Metrics) RecordNotification(ctx context.Context, level string) {
	if m == nil {
		return
	}
	m.Notifications.Add(ctx, 1, metric.WithAttributes(
		attribute.String("notification.level", level),
	))
}
