package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	commonOtel "github.com/Svynct/ignite-rocketshoes/cart/internal/common/otel"
	"github.com/Svynct/ignite-rocketshoes/cart/internal/controller"
	"github.com/Svynct/ignite-rocketshoes/cart/internal/service"
	"github.com/Svynct/ignite-rocketshoes/internal/catalog"
	"github.com/Svynct/ignite-rocketshoes/internal/common/constants"
	"github.com/Svynct/ignite-rocketshoes/internal/config"
	"github.com/Svynct/ignite-rocketshoes/internal/log"
	"github.com/Svynct/ignite-rocketshoes/internal/middleware"
	"github.com/Svynct/ignite-rocketshoes/internal/otel"
	"github.com/Svynct/ignite-rocketshoes/internal/storage"
	"github.com/Svynct/ignite-rocketshoes/notification"
)

// initCartService opens the configured storage and builds the cart on top
// of it. The returned close func releases the storage.
func initCartService(
	c context.Context,
	cfg *config.Config,
	notifiers ...notification.Notifier,
) (*service.CartService, func(), error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main initCartService").
		Logger()

	logger = logger.With().
		Str(log.KeyProcess, "initializing storage").
		Str(log.KeyStorageDriver, cfg.Storage.Driver).
		Logger()
	logger.Info().Msg("initializing storage")
	c = logger.WithContext(c)
	store, err := storage.New(c, *cfg)
	if err != nil {
		err = fmt.Errorf("failed initializing storage with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return nil, nil, err
	}
	closeStorage := func() {
		logger.Info().Msg("closing storage")
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msgf("failed closing storage with error=%s", err.Error())
			return
		}
		logger.Info().Msg("closed storage")
	}
	logger.Info().Msg("initialized storage")

	logger = logger.With().
		Str(log.KeyProcess, "initializing cart service").
		Str(log.KeyCatalogURL, cfg.Catalog.BaseURL).
		Logger()
	logger.Info().Msg("initializing cart service")
	c = logger.WithContext(c)
	notifiers = append([]notification.Notifier{notification.Log{}, notification.Metric{}}, notifiers...)
	cartService := service.NewCartService(
		c,
		catalog.NewClient(cfg.Catalog),
		store,
		notification.Chain(notifiers...),
		cfg.Storage.Key,
	)
	logger.Info().Msg("initialized cart service")

	return cartService, closeStorage, nil
}

func RunCartService(c context.Context) {
	c, span := commonOtel.Tracer.Start(c, "RunCartService")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyAppName, constants.APP_CART_SERVICE).
		Str(log.KeyTag, "main RunCartService").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	c = logger.WithContext(c)
	cfg := config.InitConfig(c, constants.APP_STOREFRONT)
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "initializing otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	c = logger.WithContext(c)
	otelShutdowns, err := otel.InitOtelSdk(c, constants.APP_CART_SERVICE, cfg.Otel)
	if err != nil {
		err = fmt.Errorf("failed initializing otel sdk with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer func() {
		logger.Info().Msg("shutting down otel")
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(c), 5*time.Second)
		defer cancel()
		if err := otel.ShutdownOtel(shutdownCtx, otelShutdowns); err != nil {
			err = fmt.Errorf("failed shutting down otel with error=%w", err)
			logger.Error().Err(err).Msg(err.Error())
			return
		}
		logger.Info().Msg("shutdown otel")
	}()
	logger.Info().Msg("initialized otel sdk")

	c = logger.WithContext(c)
	cartService, closeStorage, err := initCartService(c, cfg, notification.Context{})
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	defer closeStorage()

	logger = logger.With().Str(log.KeyProcess, "initializing router").Logger()
	logger.Info().Msg("initializing router")
	router := mux.NewRouter()
	router.Use(
		otelmux.Middleware(constants.APP_CART_SERVICE),
		middleware.Logging,
		middleware.RecoverPanic,
	)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	controller.AttachCartController(router, cartService)
	logger.Info().Msg("initialized router")

	logger = logger.With().Str(log.KeyProcess, "initializing server").Logger()
	logger.Info().Msg("initializing server")
	httpServer := http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Application.Host, cfg.Application.Port),
		BaseContext:  func(net.Listener) context.Context { return c },
		Handler:      router,
		ReadTimeout:  45 * time.Second,
		WriteTimeout: 45 * time.Second,
	}
	logger.Info().Msg("initialized server")

	serverErr := make(chan error, 1)
	go func() {
		logger := logger.With().Str(log.KeyProcess, "start server").Logger()
		logger.Info().Msgf("start listening request at %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("error=%w occured while server is running", err)
			return
		}
		logger.Info().Msg("server stopped listening")
	}()

	select {
	case err = <-serverErr:
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	case <-c.Done():
	}
	logger = logger.With().Str(log.KeyProcess, "shutdown server").Logger()
	logger.Info().Msg("received interuption signal shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(c), 10*time.Second)
	defer cancel()
	err = httpServer.Shutdown(shutdownCtx)
	if err != nil {
		err = fmt.Errorf("failed shutting down http server with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("shutdown http server")
}
