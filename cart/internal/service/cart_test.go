package service

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Svynct/ignite-rocketshoes/cart/pkg/request"
	inErrors "github.com/Svynct/ignite-rocketshoes/internal/errors"
	"github.com/Svynct/ignite-rocketshoes/internal/storage"
	"github.com/Svynct/ignite-rocketshoes/notification"
	productRes "github.com/Svynct/ignite-rocketshoes/product/pkg/response"
)

const testKey = "@RocketShoes:cart"

type fakeCatalog struct {
	products   map[int]productRes.Product
	stock      map[int]int
	stockErr   error
	productErr error
}

func (f fakeCatalog) FindProductById(_ context.Context, productId int) (productRes.Product, error) {
	if f.productErr != nil {
		return productRes.Product{}, f.productErr
	}
	p, ok := f.products[productId]
	if !ok {
		return productRes.Product{}, inErrors.ErrProductNotFound
	}
	return p, nil
}

func (f fakeCatalog) HasStock(_ context.Context, productId int, amount int) (bool, error) {
	if f.stockErr != nil {
		return false, f.stockErr
	}
	available, ok := f.stock[productId]
	if !ok {
		return false, inErrors.ErrProductNotFound
	}
	return amount <= available, nil
}

type failingStorage struct {
	*storage.MemoryStorage
}

func (failingStorage) SetItem(context.Context, string, string) error {
	return errors.New("quota exceeded")
}

func newCatalog() fakeCatalog {
	return fakeCatalog{
		products: map[int]productRes.Product{
			1: {ID: 1, Title: "Tênis de Caminhada Leve Confortável", Price: decimal.NewFromInt(180), Image: "https://example.com/1.jpg"},
			2: {ID: 2, Title: "Tênis VR Caminhada Confortável", Price: decimal.NewFromInt(140), Image: "https://example.com/2.jpg"},
			3: {ID: 3, Title: "Tênis Adidas Duramo Lite 2.0", Price: decimal.NewFromInt(220), Image: "https://example.com/3.jpg"},
		},
		stock: map[int]int{1: 3, 2: 5, 3: 1},
	}
}

func testContext() context.Context {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339Nano}).
		WithContext(context.Background())
}

func seed(t *testing.T, store storage.Storage, products []productRes.Product) {
	t.Helper()
	b, err := json.Marshal(products)
	require.NoError(t, err)
	require.NoError(t, store.SetItem(context.Background(), testKey, string(b)))
}

func stored(t *testing.T, store storage.Storage) []productRes.Product {
	t.Helper()
	value, ok, err := store.GetItem(context.Background(), testKey)
	require.NoError(t, err)
	require.True(t, ok, "cart should be persisted")
	products := []productRes.Product{}
	require.NoError(t, json.Unmarshal([]byte(value), &products))
	return products
}

func product(id int, amount int) productRes.Product {
	p := newCatalog().products[id]
	p.Amount = amount
	return p
}

func TestNewCartService(t *testing.T) {
	tests := []struct {
		name     string
		stored   *string
		expected []productRes.Product
	}{
		{
			name:     "given empty storage should start with empty cart",
			expected: []productRes.Product{},
		},
		{
			name:     "given corrupt snapshot should start with empty cart",
			stored:   func() *string { s := "{not json"; return &s }(),
			expected: []productRes.Product{},
		},
		{
			name: "given stored snapshot should seed cart from it",
			stored: func() *string {
				b, _ := json.Marshal([]productRes.Product{product(1, 2), product(3, 1)})
				s := string(b)
				return &s
			}(),
			expected: []productRes.Product{product(1, 2), product(3, 1)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContext()
			store := storage.NewMemoryStorage()
			if tt.stored != nil {
				require.NoError(t, store.SetItem(c, testKey, *tt.stored))
			}

			svc := NewCartService(c, newCatalog(), store, notification.NewRecorder(), testKey)

			assert.Equal(t, tt.expected, svc.Products())
		})
	}
}

func TestAddProduct(t *testing.T) {
	tests := []struct {
		name           string
		initial        []productRes.Product
		catalog        func() fakeCatalog
		productId      int
		expected       []productRes.Product
		expectedNotice notification.Notice
		persisted      bool
	}{
		{
			name:           "given product not in cart with stock should insert it with amount 1",
			initial:        []productRes.Product{product(2, 1)},
			catalog:        newCatalog,
			productId:      1,
			expected:       []productRes.Product{product(2, 1), product(1, 1)},
			expectedNotice: notification.Success(MessageAddProductSuccess),
			persisted:      true,
		},
		{
			name:           "given product in cart with stock should increment amount by 1",
			initial:        []productRes.Product{product(1, 2), product(2, 1)},
			catalog:        newCatalog,
			productId:      1,
			expected:       []productRes.Product{product(1, 3), product(2, 1)},
			expectedNotice: notification.Success(MessageAddProductSuccess),
			persisted:      true,
		},
		{
			name:           "given product in cart at stock limit should leave cart unchanged and warn",
			initial:        []productRes.Product{product(1, 3)},
			catalog:        newCatalog,
			productId:      1,
			expected:       []productRes.Product{product(1, 3)},
			expectedNotice: notification.Warning(MessageOutOfStock),
		},
		{
			name:    "given product without stock should not insert it and warn",
			initial: []productRes.Product{},
			catalog: func() fakeCatalog {
				cat := newCatalog()
				cat.stock[2] = 0
				return cat
			},
			productId:      2,
			expected:       []productRes.Product{},
			expectedNotice: notification.Warning(MessageOutOfStock),
		},
		{
			name:           "given unknown product should leave cart unchanged and report error",
			initial:        []productRes.Product{product(1, 1)},
			catalog:        newCatalog,
			productId:      99,
			expected:       []productRes.Product{product(1, 1)},
			expectedNotice: notification.Error(MessageAddProductFailed),
		},
		{
			name:    "given stock lookup failure should report error",
			initial: []productRes.Product{},
			catalog: func() fakeCatalog {
				cat := newCatalog()
				cat.stockErr = inErrors.ErrCatalogUnavailable
				return cat
			},
			productId:      1,
			expected:       []productRes.Product{},
			expectedNotice: notification.Error(MessageAddProductFailed),
		},
		{
			name:    "given product lookup failure after stock check should report error",
			initial: []productRes.Product{},
			catalog: func() fakeCatalog {
				cat := newCatalog()
				cat.productErr = inErrors.ErrCatalogUnavailable
				return cat
			},
			productId:      1,
			expected:       []productRes.Product{},
			expectedNotice: notification.Error(MessageAddProductFailed),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContext()
			store := storage.NewMemoryStorage()
			seed(t, store, tt.initial)
			recorder := notification.NewRecorder()
			svc := NewCartService(c, tt.catalog(), store, recorder, testKey)

			svc.AddProduct(c, tt.productId)

			assert.Equal(t, tt.expected, svc.Products())
			assert.Equal(t, []notification.Notice{tt.expectedNotice}, recorder.Notices())
			assert.Equal(t, svc.Products(), stored(t, store), "stored cart should equal in-memory cart")
		})
	}
}

func TestRemoveProduct(t *testing.T) {
	tests := []struct {
		name           string
		initial        []productRes.Product
		productId      int
		expected       []productRes.Product
		expectedNotice notification.Notice
	}{
		{
			name:           "given product in cart should remove exactly that entry",
			initial:        []productRes.Product{product(1, 2), product(2, 1), product(3, 1)},
			productId:      2,
			expected:       []productRes.Product{product(1, 2), product(3, 1)},
			expectedNotice: notification.Success(MessageRemoveProductSuccess),
		},
		{
			name:           "given last product should leave empty cart",
			initial:        []productRes.Product{product(1, 2)},
			productId:      1,
			expected:       []productRes.Product{},
			expectedNotice: notification.Success(MessageRemoveProductSuccess),
		},
		{
			name:           "given product not in cart should leave cart unchanged and report error",
			initial:        []productRes.Product{product(1, 2)},
			productId:      3,
			expected:       []productRes.Product{product(1, 2)},
			expectedNotice: notification.Error(MessageRemoveProductFailed),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContext()
			store := storage.NewMemoryStorage()
			seed(t, store, tt.initial)
			recorder := notification.NewRecorder()
			svc := NewCartService(c, newCatalog(), store, recorder, testKey)

			svc.RemoveProduct(c, tt.productId)

			assert.Equal(t, tt.expected, svc.Products())
			assert.Equal(t, []notification.Notice{tt.expectedNotice}, recorder.Notices())
			assert.Equal(t, svc.Products(), stored(t, store), "stored cart should equal in-memory cart")
		})
	}
}

func TestUpdateProductAmount(t *testing.T) {
	tests := []struct {
		name            string
		initial         []productRes.Product
		param           request.UpdateProductAmount
		expected        []productRes.Product
		expectedNotices []notification.Notice
	}{
		{
			name:            "given amount 0 should do nothing",
			initial:         []productRes.Product{product(1, 2)},
			param:           request.UpdateProductAmount{ProductId: 1, Amount: 0},
			expected:        []productRes.Product{product(1, 2)},
			expectedNotices: []notification.Notice{},
		},
		{
			name:            "given negative amount should do nothing",
			initial:         []productRes.Product{product(1, 2)},
			param:           request.UpdateProductAmount{ProductId: 1, Amount: -4},
			expected:        []productRes.Product{product(1, 2)},
			expectedNotices: []notification.Notice{},
		},
		{
			name:            "given valid amount should overwrite exactly that entry",
			initial:         []productRes.Product{product(1, 1), product(2, 1)},
			param:           request.UpdateProductAmount{ProductId: 2, Amount: 5},
			expected:        []productRes.Product{product(1, 1), product(2, 5)},
			expectedNotices: []notification.Notice{notification.Success(MessageUpdateAmountSuccess)},
		},
		{
			name:            "given amount above stock should leave cart unchanged and warn",
			initial:         []productRes.Product{product(1, 1)},
			param:           request.UpdateProductAmount{ProductId: 1, Amount: 4},
			expected:        []productRes.Product{product(1, 1)},
			expectedNotices: []notification.Notice{notification.Warning(MessageOutOfStock)},
		},
		{
			name:            "given product not in cart should leave cart unchanged and report error",
			initial:         []productRes.Product{product(1, 1)},
			param:           request.UpdateProductAmount{ProductId: 2, Amount: 2},
			expected:        []productRes.Product{product(1, 1)},
			expectedNotices: []notification.Notice{notification.Error(MessageUpdateAmountFailed)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testContext()
			store := storage.NewMemoryStorage()
			seed(t, store, tt.initial)
			recorder := notification.NewRecorder()
			svc := NewCartService(c, newCatalog(), store, recorder, testKey)

			svc.UpdateProductAmount(c, tt.param)

			assert.Equal(t, tt.expected, svc.Products())
			assert.Equal(t, tt.expectedNotices, recorder.Notices())
			assert.Equal(t, svc.Products(), stored(t, store), "stored cart should equal in-memory cart")
		})
	}
}

func TestStorageFailureLeavesCartUnchanged(t *testing.T) {
	c := testContext()
	memory := storage.NewMemoryStorage()
	seed(t, memory, []productRes.Product{product(1, 1)})
	recorder := notification.NewRecorder()
	svc := NewCartService(c, newCatalog(), failingStorage{memory}, recorder, testKey)

	svc.AddProduct(c, 2)
	svc.UpdateProductAmount(c, request.UpdateProductAmount{ProductId: 1, Amount: 2})
	svc.RemoveProduct(c, 1)

	assert.Equal(t, []productRes.Product{product(1, 1)}, svc.Products())
	assert.Equal(t, []notification.Notice{
		notification.Error(MessageAddProductFailed),
		notification.Error(MessageUpdateAmountFailed),
		notification.Error(MessageRemoveProductFailed),
	}, recorder.Notices())
}

func TestAddProductUpToStock(t *testing.T) {
	c := testContext()
	store := storage.NewMemoryStorage()
	recorder := notification.NewRecorder()
	svc := NewCartService(c, newCatalog(), store, recorder, testKey)

	for range 4 {
		svc.AddProduct(c, 1)
	}

	assert.Equal(t, []productRes.Product{product(1, 3)}, svc.Products())
	last, ok := recorder.Last()
	require.True(t, ok)
	assert.Equal(t, notification.Warning(MessageOutOfStock), last)
	assert.Equal(t, svc.Products(), stored(t, store))

	cart := svc.Cart(c)
	assert.Equal(t, 3, cart.Count)
	assert.True(t, decimal.NewFromInt(540).Equal(cart.Total), "total should be 3 x 180")
}
