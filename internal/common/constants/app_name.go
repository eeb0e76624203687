package constants

const (
	APP_STOREFRONT   = "storefront"
	APP_CART_SERVICE = "cart-service"
	APP_CART_CLI     = "cart-cli"
)
