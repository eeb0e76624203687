package response

import (
	"github.com/shopspring/decimal"

	productRes "github.com/Svynct/ignite-rocketshoes/product/pkg/response"
)

type CartItem struct {
	productRes.Product
	Subtotal decimal.Decimal `json:"subtotal"`
}

type Cart struct {
	Products []CartItem     `json:"products"`
	Count    int             `json:"count"`
	Total    decimal.Decimal `json:"total"`
}

func NewCart(products []productRes.Product) Cart {
	cart := Cart{Products: make([]CartItem, len(products)), Total: decimal.Zero}
	for i, p := range products {
		subtotal := p.Subtotal()
		cart.Products[i] = CartItem{Product: p, Subtotal: subtotal}
		cart.Count += p.Amount
		cart.Total = cart.Total.Add(subtotal)
	}
	return cart
}
