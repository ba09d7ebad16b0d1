package telemetry

import (
	"context"
	"errors"

	"github.com/watchlist/backend/internal/domain/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope for spans created by this module.
const TracerName = "github.com/watchlist/backend"

// Span attribute keys used across the service and repositories.
const (
	AttrMovieID    = attribute.Key("movie.id")
	AttrMovieTitle = attribute.Key("movie.title")
	AttrMovieYear  = attribute.Key("movie.year")
	AttrErrorKind  = attribute.Key("error.kind")
	AttrDBSystem   = attribute.Key("db.system")
	AttrDBOp       = attribute.Key("db.operation")
	AttrDBColl     = attribute.Key("db.collection")
)

// StartServiceSpan starts an internal span named {service}.{method}, e.g. "watchlist.add".
// The caller must end it.
func StartServiceSpan(ctx context.Context, service, method string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, service+"."+method,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// StartClientSpan starts a client span for an outbound storage call.
func StartClientSpan(ctx context.Context, system, operation, collection string) (context.Context, trace.Span) {
	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, system+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			AttrDBSystem.String(system),
			AttrDBOp.String(operation),
			AttrDBColl.String(collection),
		),
	)
}

// RecordError marks the span failed. Domain errors also carry their kind;
// a not-found is recorded as an attribute but does not fail the span.
func RecordError(span trace.Span, err error) {
	if span == nil || err == nil {
		return
	}

	var de *shared.DomainError
	if errors.As(err, &de) {
		span.SetAttributes(AttrErrorKind.String(string(de.Kind)))
		if de.Kind == shared.KindNotFound {
			return
		}
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
