package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/Svynct/ignite-rocketshoes/cart/internal/common/otel"
	"github.com/Svynct/ignite-rocketshoes/cart/internal/service"
	"github.com/Svynct/ignite-rocketshoes/cart/pkg/request"
	inHttp "github.com/Svynct/ignite-rocketshoes/internal/http"
	"github.com/Svynct/ignite-rocketshoes/internal/log"
	inOtel "github.com/Svynct/ignite-rocketshoes/internal/otel"
	"github.com/Svynct/ignite-rocketshoes/notification"
)

type CartController struct {
	service  *service.CartService
	validate *validator.Validate
}

func AttachCartController(mux *mux.Router, service *service.CartService) {
	controller := CartController{
		service:  service,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}

	router := mux.PathPrefix("/cart").Subrouter()
	router.HandleFunc("", controller.FindCart).Methods(http.MethodGet)
	router.HandleFunc("/products", controller.AddProduct).Methods(http.MethodPost)
	router.HandleFunc("/products/{productId}", controller.RemoveProduct).
		Methods(http.MethodDelete)
	router.HandleFunc("/products/{productId}", controller.UpdateProductAmount).
		Methods(http.MethodPatch)
}

func (t CartController) FindCart(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController FindCart")
	defer span.End()

	cart := t.service.Cart(c)
	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     "success",
		"statusCode": http.StatusOK,
		"message":    "found cart",
		"data": map[string]interface{}{
			"cart": cart,
		},
	})
}

func (t CartController) AddProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController AddProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController AddProduct").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.AddProduct{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeBadRequest(w, r.WithContext(c), err)
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	if err := t.validate.StructCtx(c, reqBody); err != nil {
		err = fmt.Errorf("failed validating request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeBadRequest(w, r.WithContext(c), err)
		return
	}
	logger = logger.With().Int(log.KeyProductID, reqBody.ProductId).Logger()
	logger.Info().Msg("validated request body")

	recorder := notification.NewRecorder()
	c = notification.WithRecorder(logger.WithContext(c), recorder)
	t.service.AddProduct(c, reqBody.ProductId)
	t.writeOutcome(w, r.WithContext(c), recorder)
}

func (t CartController) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController RemoveProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController RemoveProduct").
		Str(log.KeyProcess, "validating productId").
		Logger()

	pathValues := mux.Vars(r)
	logger = logger.With().Any(log.KeyPathValues, pathValues).Logger()
	reqBody := request.RemoveProduct{}
	productId, err := strconv.Atoi(pathValues["productId"])
	if err == nil {
		reqBody.ProductId = productId
		err = t.validate.StructCtx(c, reqBody)
	}
	if err != nil {
		err = fmt.Errorf("failed validating productId=%s with error=%w", pathValues["productId"], err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeBadRequest(w, r.WithContext(c), err)
		return
	}
	logger = logger.With().Int(log.KeyProductID, productId).Logger()
	logger.Info().Msg("validated productId")

	recorder := notification.NewRecorder()
	c = notification.WithRecorder(logger.WithContext(c), recorder)
	t.service.RemoveProduct(c, reqBody.ProductId)
	t.writeOutcome(w, r.WithContext(c), recorder)
}

func (t CartController) UpdateProductAmount(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController UpdateProductAmount")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController UpdateProductAmount").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UpdateProductAmount{}
	if err := json.NewDecoder(r.Body).Decode(&reqBody); err != nil {
		err = fmt.Errorf("failed decoding request body with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeBadRequest(w, r.WithContext(c), err)
		return
	}
	logger.Info().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "validating request body").Logger()
	pathValues := mux.Vars(r)
	productId, err := strconv.Atoi(pathValues["productId"])
	if err == nil {
		reqBody.ProductId = productId
		err = t.validate.StructCtx(c, reqBody)
	}
	if err != nil {
		err = fmt.Errorf("failed validating request with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		writeBadRequest(w, r.WithContext(c), err)
		return
	}
	logger = logger.With().
		Int(log.KeyProductID, reqBody.ProductId).
		Int(log.KeyAmount, reqBody.Amount).
		Logger()
	logger.Info().Msg("validated request body")

	recorder := notification.NewRecorder()
	c = notification.WithRecorder(logger.WithContext(c), recorder)
	t.service.UpdateProductAmount(c, reqBody)
	t.writeOutcome(w, r.WithContext(c), recorder)
}

func (t CartController) writeOutcome(
	w http.ResponseWriter,
	r *http.Request,
	recorder *notification.Recorder,
) {
	c := r.Context()
	notices := recorder.Notices()

	status, statusCode, message := "success", http.StatusOK, "cart unchanged"
	if last, ok := recorder.Last(); ok {
		message = last.Message
	}
	switch notification.Worst(notices) {
	case notification.LevelWarning:
		status, statusCode = "failed", http.StatusConflict
	case notification.LevelError:
		status, statusCode = "failed", http.StatusUnprocessableEntity
	}

	inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     status,
		"statusCode": statusCode,
		"message":    message,
		"data": map[string]interface{}{
			"cart":    t.service.Cart(c),
			"notices": notices,
		},
	})
}

func writeBadRequest(w http.ResponseWriter, r *http.Request, err error) {
	inHttp.WriteJsonResponse(r.Context(), w, map[string]string{}, map[string]interface{}{
		"status":     "failed",
		"statusCode": http.StatusBadRequest,
		"message":    err.Error(),
	})
}
