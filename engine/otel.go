package engine

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/charcheck/sdk/report"
	"github.com/charcheck/sdk/snapshot"
)

// otelHooks holds the optional OpenTelemetry instruments for the engine.
// All hooks degrade to no-ops when tracing or metrics are not configured,
// so observability never changes validation behavior.
type otelHooks struct {
	tracer trace.Tracer
	meter  metric.Meter

	// runDuration records validation run duration in milliseconds.
	runDuration metric.Float64Histogram

	// ruleCount increments once per rule/node evaluation, labeled by rule
	// and outcome.
	ruleCount metric.Int64Counter

	// diagnosticCount increments per emitted diagnostic.
	diagnosticCount metric.Int64Counter

	// faultCount increments per contained rule execution fault.
	faultCount metric.Int64Counter
}

// WithTracer sets an OpenTelemetry tracer; each run becomes a span carrying
// the report summary.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) { e.otel.tracer = tracer }
}

// WithMeter sets an OpenTelemetry meter for run and rule metrics.
func WithMeter(meter metric.Meter) Option {
	return func(e *Engine) {
		e.otel.meter = meter
		if err := e.otel.initInstruments(); err != nil {
			// Metrics are best-effort; a failed instrument disables them.
			e.otel.meter = nil
		}
	}
}

// initInstruments creates the metric instruments. Called once by WithMeter.
func (h *otelHooks) initInstruments() error {
	var err error

	h.runDuration, err = h.meter.Float64Histogram(
		"validation.run.duration",
		metric.WithDescription("Validation run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return fmt.Errorf("create run duration histogram: %w", err)
	}

	h.ruleCount, err = h.meter.Int64Counter(
		"validation.rule.evaluations",
		metric.WithDescription("Number of rule/node evaluations performed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("create rule counter: %w", err)
	}

	h.diagnosticCount, err = h.meter.Int64Counter(
		"validation.diagnostics",
		metric.WithDescription("Number of diagnostics emitted"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("create diagnostic counter: %w", err)
	}

	h.faultCount, err = h.meter.Int64Counter(
		"validation.rule.faults",
		metric.WithDescription("Number of contained rule execution faults"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("create fault counter: %w", err)
	}

	return nil
}

// startRun opens the run span. The returned func closes it with the
// report's summary once the run finishes.
func (h *otelHooks) startRun(ctx context.Context, kind string, scope snapshot.Scope) (context.Context, func(*report.Report, error)) {
	if h.tracer == nil && h.meter == nil {
		return ctx, func(*report.Report, error) {}
	}

	started := time.Now()
	var span trace.Span
	if h.tracer != nil {
		ctx, span = h.tracer.Start(ctx, "validation.run",
			trace.WithAttributes(
				attribute.String("validation.kind", kind),
				attribute.Bool("validation.scope.all", scope.IsAll()),
				attribute.Int("validation.scope.paths", len(scope)),
			))
	}

	return ctx, func(rep *report.Report, err error) {
		if h.runDuration != nil {
			h.runDuration.Record(ctx, float64(time.Since(started).Milliseconds()),
				metric.WithAttributes(attribute.String("validation.kind", kind)))
		}
		if span == nil {
			return
		}
		defer span.End()
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return
		}
		summary := rep.Summarize()
		span.SetAttributes(
			attribute.String("validation.report_id", rep.ID()),
			attribute.Int("validation.errors", summary.Errors),
			attribute.Int("validation.warnings", summary.Warnings),
			attribute.Int("validation.infos", summary.Infos),
			attribute.Bool("validation.incomplete", rep.Incomplete()),
			attribute.Bool("validation.upload_blocking", rep.UploadBlocking()),
		)
		if rep.UploadBlocking() {
			span.SetStatus(codes.Error, "upload blocking")
		} else {
			span.SetStatus(codes.Ok, "clear to upload")
		}
	}
}

// recordRule counts one rule/node evaluation.
func (h *otelHooks) recordRule(ctx context.Context, ruleID, outcome string, diagnostics int) {
	if h.meter == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("rule.id", ruleID),
		attribute.String("rule.outcome", outcome),
	)
	h.ruleCount.Add(ctx, 1, attrs)
	if diagnostics > 0 {
		h.diagnosticCount.Add(ctx, int64(diagnostics),
			metric.WithAttributes(attribute.String("rule.id", ruleID)))
	}
}

// recordFault counts one contained rule execution fault.
func (h *otelHooks) recordFault(ctx context.Context, ruleID string) {
	if h.meter == nil {
		return
	}
	h.faultCount.Add(ctx, 1,
		metric.WithAttributes(attribute.String("rule.id", ruleID)))
}
