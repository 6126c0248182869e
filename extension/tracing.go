// Package extension provides ready-made execution extensions.
package extension

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/veldt-io/graphql/execution"
)

// Tracing records one span per resolved field using the global
// OpenTelemetry tracer provider.
type Tracing struct {
	tracer trace.Tracer
	spans  sync.Map // resolve id -> trace.Span
}

// NewTracing builds a Tracing extension. With no provider configured it
// degrades to no-op spans.
func NewTracing() *Tracing {
	return &Tracing{tracer: otel.Tracer("graphql")}
}

// NewTracingWithProvider builds a Tracing extension bound to an
// explicit provider, which tests use to capture spans.
func NewTracingWithProvider(provider trace.TracerProvider) *Tracing {
	return &Tracing{tracer: provider.Tracer("graphql")}
}

func (t *Tracing) ResolveFieldStart(info *execution.ResolveInfo) {
	_, span := t.tracer.Start(context.Background(), "graphql.field "+info.PathNode.String())
	span.SetAttributes(
		attribute.String("graphql.field.path", info.PathNode.String()),
		attribute.String("graphql.field.parentType", info.ParentType),
		attribute.String("graphql.field.returnType", info.ReturnType),
	)
	t.spans.Store(info.ResolveID, span)
}

func (t *Tracing) ResolveFieldEnd(resolveID int64) {
	if span, ok := t.spans.LoadAndDelete(resolveID); ok {
		span.(trace.Span).End()
	}
}

var _ execution.Extension = (*Tracing)(nil)
