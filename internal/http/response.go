package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Svynct/ignite-rocketshoes/internal/log"
	"github.com/Svynct/ignite-rocketshoes/internal/otel"
)

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	c, span := otel.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "WriteJsonResponse").Logger()

	w.Header().Add(KEY_HEADER_CONTENT_TYPE, VALUE_HEADER_APPLICATION_JSON)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"].(int); ok {
		w.WriteHeader(v)
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
}
