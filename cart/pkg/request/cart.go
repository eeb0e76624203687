package request

type AddProduct struct {
	ProductId int `validate:"required,gte=1" json:"productId"`
}

type RemoveProduct struct {
	ProductId int `validate:"required,gte=1" json:"productId"`
}

// UpdateProductAmount sets the quantity of a product already in the cart.
// An Amount of zero leaves the cart untouched.
type UpdateProductAmount struct {
	ProductId int `validate:"required,gte=1" json:"productId"`
	Amount    int `validate:"gte=0"          json:"amount"`
}
