package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ToolCallOutcome is the final status of a dispatched tool call.
type ToolCallOutcome string

const (
	ToolCallOutcomeSuccess ToolCallOutcome = "success"
	ToolCallOutcomeError   ToolCallOutcome = "error"
)

// CustomMetrics records snowgate's application-level metrics.
// Callers always hold a valid implementation: when metrics are disabled a
// no-op implementation is used, so call sites never branch on enablement.
type CustomMetrics interface {
	// RecordToolCall records a single tool invocation with its outcome and duration.
	RecordToolCall(ctx context.Context, tool string, outcome ToolCallOutcome, duration time.Duration)
}

type noopCustomMetrics struct{}

// NewNoopCustomMetrics returns a CustomMetrics implementation that does nothing.
func NewNoopCustomMetrics() CustomMetrics {
	return &noopCustomMetrics{}
}

func (n *noopCustomMetrics) RecordToolCall(context.Context, string, ToolCallOutcome, time.Duration) {
}

type otelCustomMetrics struct {
	toolCalls        metric.Int64Counter
	toolCallDuration metric.Float64Histogram
}

// NewOtelCustomMetrics creates a CustomMetrics implementation backed by the given meter.
func NewOtelCustomMetrics(meter metric.Meter) (CustomMetrics, error) {
	toolCalls, err := meter.Int64Counter(
		"snowgate.tool.calls",
		metric.WithDescription("Number of tool invocations dispatched by the gateway"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool calls counter: %w", err)
	}

	toolCallDuration, err := meter.Float64Histogram(
		"snowgate.tool.call.duration",
		metric.WithDescription("Duration of tool invocations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool call duration histogram: %w", err)
	}

	return &otelCustomMetrics{
		toolCalls:        toolCalls,
		toolCallDuration: toolCallDuration,
	}, nil
}

func (o *otelCustomMetrics) RecordToolCall(
	ctx context.Context, tool string, outcome ToolCallOutcome, duration time.Duration,
) {
	attrs := metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("outcome", string(outcome)),
	)
	o.toolCalls.Add(ctx, 1, attrs)
	o.toolCallDuration.Record(ctx, duration.Seconds(), attrs)
}
