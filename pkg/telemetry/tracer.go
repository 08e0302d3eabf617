package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultTracerName = "formprinter"

// Tracer is a Recorder that opens a span per operation using the global
// OpenTelemetry tracer provider.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer resolves a tracer by name. An empty name uses "formprinter".
func NewTracer(name string) *Tracer {
	if name == "" {
		name = defaultTracerName
	}
	return &Tracer{tracer: otel.Tracer(name)}
}

func (t *Tracer) Start(ctx context.Context, op string) (context.Context, func(error)) {
	ctx, span := t.tracer.Start(ctx, op, trace.WithAttributes(attribute.String("formprinter.op", op)))
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}
}

func (t *Tracer) ObserveRows(ctx context.Context, group string, rows int) {
	trace.SpanFromContext(ctx).AddEvent("array_group", trace.WithAttributes(
		attribute.String("formprinter.group", group),
		attribute.Int("formprinter.rows", rows),
	))
}

func (t *Tracer) ObserveIDs(ctx context.Context, issued, collisions int) {
	trace.SpanFromContext(ctx).SetAttributes(
		attribute.Int("formprinter.ids", issued),
		attribute.Int("formprinter.id_collisions", collisions),
	)
}
