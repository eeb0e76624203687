package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Svynct/ignite-rocketshoes/cart/internal/service"
	"github.com/Svynct/ignite-rocketshoes/cart/pkg/request"
	"github.com/Svynct/ignite-rocketshoes/cart/pkg/response"
	"github.com/Svynct/ignite-rocketshoes/internal/common/constants"
	"github.com/Svynct/ignite-rocketshoes/internal/config"
	"github.com/Svynct/ignite-rocketshoes/internal/log"
	"github.com/Svynct/ignite-rocketshoes/notification"
)

type cartOperation func(c context.Context, svc *service.CartService, args []string) error

// NewCartCommand returns the cart command group, running one cart
// operation against the configured storage per invocation.
func NewCartCommand() *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Inspect and change the stored cart",
	}
	cartCmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Print the cart",
			Args:  cobra.NoArgs,
			RunE:  runCartOperation(func(context.Context, *service.CartService, []string) error { return nil }),
		},
		&cobra.Command{
			Use:   "add <productId>",
			Short: "Add one unit of a product",
			Args:  cobra.ExactArgs(1),
			RunE: runCartOperation(func(c context.Context, svc *service.CartService, args []string) error {
				productId, err := parseProductId(args[0])
				if err != nil {
					return err
				}
				svc.AddProduct(c, productId)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "remove <productId>",
			Short: "Remove a product",
			Args:  cobra.ExactArgs(1),
			RunE: runCartOperation(func(c context.Context, svc *service.CartService, args []string) error {
				productId, err := parseProductId(args[0])
				if err != nil {
					return err
				}
				svc.RemoveProduct(c, productId)
				return nil
			}),
		},
		&cobra.Command{
			Use:   "update <productId> <amount>",
			Short: "Set the amount of a product in the cart",
			Args:  cobra.ExactArgs(2),
			RunE: runCartOperation(func(c context.Context, svc *service.CartService, args []string) error {
				productId, err := parseProductId(args[0])
				if err != nil {
					return err
				}
				amount, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid amount=%s with error=%w", args[1], err)
				}
				svc.UpdateProductAmount(c, request.UpdateProductAmount{ProductId: productId, Amount: amount})
				return nil
			}),
		},
	)
	return cartCmd
}

func runCartOperation(op cartOperation) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c := cmd.Context()
		logger := zerolog.Ctx(c).
			With().
			Str(log.KeyAppName, constants.APP_CART_CLI).
			Str(log.KeyTag, "cli "+cmd.Name()).
			Logger()
		c = logger.WithContext(c)

		cfg := config.InitConfig(c, constants.APP_STOREFRONT)
		out := cmd.OutOrStdout()
		svc, closeStorage, err := initCartService(c, cfg, notification.Writer{Out: out})
		if err != nil {
			return err
		}
		defer closeStorage()

		if err := op(c, svc, args); err != nil {
			return err
		}
		printCart(out, svc.Cart(c))
		return nil
	}
}

func parseProductId(arg string) (int, error) {
	productId, err := strconv.Atoi(arg)
	if err != nil || productId < 1 {
		return 0, fmt.Errorf("invalid productId=%s", arg)
	}
	return productId, nil
}

func printCart(out io.Writer, cart response.Cart) {
	if len(cart.Products) == 0 {
		fmt.Fprintln(out, "cart is empty")
		return
	}
	for _, item := range cart.Products {
		fmt.Fprintf(
			out,
			"%4d  %-40s %3d x %10s = %10s\n",
			item.ID,
			item.Title,
			item.Amount,
			item.Price.StringFixed(2),
			item.Subtotal.StringFixed(2),
		)
	}
	fmt.Fprintf(out, "items: %d  total: %s\n", cart.Count, cart.Total.StringFixed(2))
}
