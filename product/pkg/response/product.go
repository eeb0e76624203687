package response

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Product is a catalog product. Amount is zero as served by the catalog
// and holds the quantity once the product sits in a cart.
type Product struct {
	ID     int             `json:"id"`
	Title  string          `json:"title"`
	Price  decimal.Decimal `json:"price"`
	Image  string          `json:"image"`
	Amount int             `json:"amount"`
}

func (p Product) Subtotal() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Amount)))
}

func (p Product) MarshalZerologObject(e *zerolog.Event) {
	e.Int("id", p.ID).
		Str("title", p.Title).
		Str("price", p.Price.String()).
		Int("amount", p.Amount)
}

type Stock struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

func (s Stock) MarshalZerologObject(e *zerolog.Event) {
	e.Int("id", s.ID).Int("amount", s.Amount)
}
