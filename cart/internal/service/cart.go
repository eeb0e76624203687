package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Svynct/ignite-rocketshoes/cart/internal/common/otel"
	"github.com/Svynct/ignite-rocketshoes/cart/pkg/request"
	"github.com/Svynct/ignite-rocketshoes/cart/pkg/response"
	inErrors "github.com/Svynct/ignite-rocketshoes/internal/errors"
	"github.com/Svynct/ignite-rocketshoes/internal/log"
	inOtel "github.com/Svynct/ignite-rocketshoes/internal/otel"
	"github.com/Svynct/ignite-rocketshoes/internal/storage"
	"github.com/Svynct/ignite-rocketshoes/notification"
	productRes "github.com/Svynct/ignite-rocketshoes/product/pkg/response"
)

type Catalog interface {
	FindProductById(c context.Context, productId int) (productRes.Product, error)
	HasStock(c context.Context, productId int, amount int) (bool, error)
}

// CartService owns the cart of one storefront client. Every successful
// mutation is written to storage under key before it becomes visible, so
// the stored snapshot always equals the in-memory cart. Failures never
// reach the caller; they are reported through the notifier.
type CartService struct {
	mu       sync.Mutex
	catalog  Catalog
	storage  storage.Storage
	notifier notification.Notifier
	key      string
	cart     []productRes.Product
}

func NewCartService(
	c context.Context,
	catalog Catalog,
	storage storage.Storage,
	notifier notification.Notifier,
	key string,
) *CartService {
	svc := &CartService{
		catalog:  catalog,
		storage:  storage,
		notifier: notifier,
		key:      key,
		cart:     []productRes.Product{},
	}
	svc.cart = svc.load(c)
	return svc
}

func (s *CartService) load(c context.Context) []productRes.Product {
	c, span := otel.Tracer.Start(c, "CartService load")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "CartService load").
		Str(log.KeyStorageKey, s.key).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "reading stored cart").Logger()
	logger.Info().Msg("reading stored cart")
	stored, ok, err := s.storage.GetItem(c, s.key)
	if err != nil {
		err = fmt.Errorf("failed reading stored cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return []productRes.Product{}
	}
	if !ok || stored == "" {
		logger.Info().Msg("no stored cart, starting empty")
		return []productRes.Product{}
	}

	logger = logger.With().Str(log.KeyProcess, "unmarshaling stored cart").Logger()
	products := []productRes.Product{}
	err = json.Unmarshal([]byte(stored), &products)
	if err != nil {
		err = fmt.Errorf("failed unmarshaling stored cart with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return []productRes.Product{}
	}
	logger.Info().Int(log.KeyCartLength, len(products)).Msg("loaded stored cart")

	return products
}

// Cart returns a view of the current cart.
func (s *CartService) Cart(c context.Context) response.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return response.NewCart(s.cart)
}

// Products returns a copy of the cart entries in insertion order.
func (s *CartService) Products() []productRes.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.cart)
}

func (s *CartService) AddProduct(c context.Context, productId int) {
	c, span := otel.Tracer.Start(
		c,
		"CartService AddProduct",
		trace.WithAttributes(attribute.Int(log.KeyProductID, productId)),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "CartService AddProduct").
		Int(log.KeyProductID, productId).
		Logger()
	c = logger.WithContext(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.addProduct(c, productId)
	s.report(c, span, operationAdd, err, MessageAddProductSuccess, MessageAddProductFailed)
}

func (s *CartService) addProduct(c context.Context, productId int) error {
	logger := zerolog.Ctx(c).With().Logger()

	next := slices.Clone(s.cart)
	index := indexOf(next, productId)
	amount := 1
	if index >= 0 {
		amount = next[index].Amount + 1
	}

	logger = logger.With().
		Str(log.KeyProcess, "verifying stock").
		Int(log.KeyRequestedAmount, amount).
		Logger()
	logger.Info().Msg("verifying stock")
	if err := s.verifyStock(c, productId, amount); err != nil {
		return err
	}
	logger.Info().Msg("verified stock")

	if index >= 0 {
		next[index].Amount = amount
		return s.commit(c, next)
	}

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Info().Msg("finding product")
	product, err := s.catalog.FindProductById(c, productId)
	if err != nil {
		return fmt.Errorf("failed finding productId=%d with error=%w", productId, err)
	}
	product.ID = productId
	product.Amount = 1
	logger.Info().Object(log.KeyProduct, product).Msg("found product")

	return s.commit(c, append(next, product))
}

func (s *CartService) RemoveProduct(c context.Context, productId int) {
	c, span := otel.Tracer.Start(
		c,
		"CartService RemoveProduct",
		trace.WithAttributes(attribute.Int(log.KeyProductID, productId)),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "CartService RemoveProduct").
		Int(log.KeyProductID, productId).
		Logger()
	c = logger.WithContext(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.removeProduct(c, productId)
	s.report(c, span, operationRemove, err, MessageRemoveProductSuccess, MessageRemoveProductFailed)
}

func (s *CartService) removeProduct(c context.Context, productId int) error {
	index := indexOf(s.cart, productId)
	if index < 0 {
		return fmt.Errorf("productId=%d: %w", productId, inErrors.ErrProductNotInCart)
	}
	return s.commit(c, slices.Delete(slices.Clone(s.cart), index, index+1))
}

func (s *CartService) UpdateProductAmount(c context.Context, param request.UpdateProductAmount) {
	if param.Amount <= 0 {
		return
	}

	c, span := otel.Tracer.Start(
		c,
		"CartService UpdateProductAmount",
		trace.WithAttributes(
			attribute.Int(log.KeyProductID, param.ProductId),
			attribute.Int(log.KeyAmount, param.Amount),
		),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "CartService UpdateProductAmount").
		Int(log.KeyProductID, param.ProductId).
		Int(log.KeyAmount, param.Amount).
		Logger()
	c = logger.WithContext(c)

	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.updateProductAmount(c, param)
	s.report(c, span, operationUpdate, err, MessageUpdateAmountSuccess, MessageUpdateAmountFailed)
}

func (s *CartService) updateProductAmount(c context.Context, param request.UpdateProductAmount) error {
	index := indexOf(s.cart, param.ProductId)
	if index < 0 {
		return fmt.Errorf("productId=%d: %w", param.ProductId, inErrors.ErrProductNotInCart)
	}

	if err := s.verifyStock(c, param.ProductId, param.Amount); err != nil {
		return err
	}

	next := slices.Clone(s.cart)
	next[index].Amount = param.Amount
	return s.commit(c, next)
}

func (s *CartService) verifyStock(c context.Context, productId int, amount int) error {
	ok, err := s.catalog.HasStock(c, productId, amount)
	if err != nil {
		return fmt.Errorf("failed verifying stock of productId=%d with error=%w", productId, err)
	}
	if !ok {
		return fmt.Errorf("productId=%d amount=%d: %w", productId, amount, inErrors.ErrOutOfStock)
	}
	return nil
}

// commit persists next and only then makes it the current cart.
func (s *CartService) commit(c context.Context, next []productRes.Product) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyProcess, "persisting cart").
		Str(log.KeyStorageKey, s.key).
		Int(log.KeyCartLength, len(next)).
		Logger()

	logger.Info().Msg("persisting cart")
	snapshot, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed marshaling cart with error=%w", err)
	}
	err = s.storage.SetItem(c, s.key, string(snapshot))
	if err != nil {
		return fmt.Errorf("failed persisting cart with error=%w", err)
	}
	s.cart = next
	logger.Info().Msg("persisted cart")

	return nil
}

func (s *CartService) report(
	c context.Context,
	span trace.Span,
	operation string,
	err error,
	success string,
	failure string,
) {
	logger := zerolog.Ctx(c)

	switch {
	case err == nil:
		cartOperationsTotal.WithLabelValues(operation, string(notification.LevelSuccess)).Inc()
		s.notifier.Notify(c, notification.Success(success))
	case errors.Is(err, inErrors.ErrOutOfStock):
		cartOperationsTotal.WithLabelValues(operation, string(notification.LevelWarning)).Inc()
		span.AddEvent(err.Error())
		logger.Warn().Err(err).Msg(err.Error())
		s.notifier.Notify(c, notification.Warning(MessageOutOfStock))
	default:
		cartOperationsTotal.WithLabelValues(operation, string(notification.LevelError)).Inc()
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		s.notifier.Notify(c, notification.Error(failure))
	}
}

func indexOf(products []productRes.Product, productId int) int {
	return slices.IndexFunc(products, func(p productRes.Product) bool {
		return p.ID == productId
	})
}
