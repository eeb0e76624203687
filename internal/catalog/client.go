package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Svynct/ignite-rocketshoes/internal/config"
	inErrors "github.com/Svynct/ignite-rocketshoes/internal/errors"
	inHttp "github.com/Svynct/ignite-rocketshoes/internal/http"
	"github.com/Svynct/ignite-rocketshoes/internal/log"
	"github.com/Svynct/ignite-rocketshoes/internal/otel"
	"github.com/Svynct/ignite-rocketshoes/product/pkg/response"
)

// Client reads products and stock from the storefront catalog service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg config.Catalog) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		},
	}
}

func (cl *Client) FindStockById(c context.Context, productId int) (response.Stock, error) {
	c, span := otel.Tracer.Start(
		c,
		"CatalogClient FindStockById",
		trace.WithAttributes(attribute.Int(log.KeyProductID, productId)),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "CatalogClient FindStockById").
		Int(log.KeyProductID, productId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding stock").Logger()
	logger.Debug().Msg("finding stock")
	stock := response.Stock{}
	err := cl.get(c, "stock", productId, &stock)
	if err != nil {
		err = fmt.Errorf("failed finding stock of productId=%d with error=%w", productId, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Stock{}, err
	}
	logger.Debug().Object(log.KeyStock, stock).Msg("found stock")

	return stock, nil
}

func (cl *Client) FindProductById(c context.Context, productId int) (response.Product, error) {
	c, span := otel.Tracer.Start(
		c,
		"CatalogClient FindProductById",
		trace.WithAttributes(attribute.Int(log.KeyProductID, productId)),
	)
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Ctx(c).
		Str(log.KeyTag, "CatalogClient FindProductById").
		Int(log.KeyProductID, productId).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Debug().Msg("finding product")
	product := response.Product{}
	err := cl.get(c, "products", productId, &product)
	if err != nil {
		err = fmt.Errorf("failed finding productId=%d with error=%w", productId, err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Debug().Object(log.KeyProduct, product).Msg("found product")

	return product, nil
}

// HasStock reports whether amount units of the product are available.
func (cl *Client) HasStock(c context.Context, productId int, amount int) (bool, error) {
	stock, err := cl.FindStockById(c, productId)
	if err != nil {
		return false, err
	}
	return amount <= stock.Amount, nil
}

func (cl *Client) get(c context.Context, resource string, id int, dst any) error {
	endpoint, err := url.JoinPath(cl.baseURL, resource, strconv.Itoa(id))
	if err != nil {
		return fmt.Errorf("failed building url with error=%w", err)
	}

	req, err := http.NewRequestWithContext(c, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed creating request to %s with error=%w", endpoint, err)
	}
	if requestId := log.RequestIDFromContext(c); requestId != "" {
		req.Header.Add(inHttp.KEY_HEADER_REQUEST_ID, requestId)
	}
	req.Header.Add("Accept", inHttp.VALUE_HEADER_APPLICATION_JSON)

	resp, err := cl.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed requesting %s with error=%w", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s returned status code=%d: %w", endpoint, resp.StatusCode, inErrors.ErrProductNotFound)
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("%s returned status code=%d: %w", endpoint, resp.StatusCode, inErrors.ErrCatalogUnavailable)
	}

	err = json.NewDecoder(resp.Body).Decode(dst)
	if err != nil {
		return fmt.Errorf("failed decoding response of %s with error=%w", endpoint, err)
	}
	return nil
}
