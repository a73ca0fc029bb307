package http

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/trace"
)

// Span returns the request context together with the span opened for it
// by the tracing middleware.
func Span(c echo.Context) (context.Context, trace.Span) {
	ctx := c.Request().Context()
	return ctx, trace.SpanFromContext(ctx)
}

// RecordSpanError attaches a handler error to the request span. The span
// itself is ended by the tracing middleware, never here.
func RecordSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
	}
}
