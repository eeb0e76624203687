package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/Svynct/ignite-rocketshoes/internal/common/constants"
)

var Tracer = otel.Tracer(constants.APP_CART_SERVICE)
