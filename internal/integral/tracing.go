package integral

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/quadbench/internal/quadrature"
)

const tracerName = "github.com/agbru/quadbench/internal/integral"

// startSpan opens a span describing one reduction. The returned function
// ends it, recording err when non-nil.
func startSpan(ctx context.Context, strategy string, iv quadrature.Interval, threads int) (context.Context, func(err error)) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "integral."+strategy)
	span.SetAttributes(
		attribute.String("integral.strategy", strategy),
		attribute.Float64("integral.a", iv.A),
		attribute.Float64("integral.b", iv.B),
		attribute.Int("integral.n", iv.N),
		attribute.Int("integral.threads", threads),
	)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
