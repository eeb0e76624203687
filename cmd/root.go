package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	cartCmd "github.com/Svynct/ignite-rocketshoes/cart/cmd"
	"github.com/Svynct/ignite-rocketshoes/internal/common/constants"
	"github.com/Svynct/ignite-rocketshoes/internal/log"
)

func Start() {
	logFile := os.Getenv("STOREFRONT_LOG_FILE")
	logger := log.InitLogger(logFile, os.Getenv("STOREFRONT_APPLICATION_ENV")).
		With().
		Str(log.KeyAppName, constants.APP_STOREFRONT).
		Str(log.KeyTag, "main Start").
		Logger()

	logger.Info().Msg("adding listener for SIGINT and SIGTERM")
	c, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger.Info().Msg("added listener for SIGINT and SIGTERM")

	c = logger.WithContext(c)

	rootCmd := &cobra.Command{
		Use:           "storefront",
		Short:         "Storefront shopping cart",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run cart service",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				cartCmd.RunCartService(cmd.Context())
			},
		},
		cartCmd.NewCartCommand(),
	)
	if err := rootCmd.ExecuteContext(c); err != nil {
		logger.Error().Err(err).Msgf("error when executing command=%s", err.Error())
		stop()
		os.Exit(1)
	}
}
