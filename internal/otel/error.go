package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Svynct/ignite-rocketshoes/internal/common/constants"
)

var Tracer = otel.Tracer(constants.APP_STOREFRONT)

func RecordError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.AddEvent(err.Error())
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
