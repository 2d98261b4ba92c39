package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tanishqpabla/agrogenius-gateways/internal/config"
	"github.com/tanishqpabla/agrogenius-gateways/internal/server"
	"go.uber.org/zap"
)

var (
	configPath string
	serverCmd  = &cobra.Command{
		Use:   "server",
		Short: "Start the gateway HTTP server",
		Long:  `Start the HTTP server exposing the get-weather and get-mandi-prices gateway endpoints.`,
		RunE:  runServer,
	}
)

func init() {
	serverCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: ./config.yaml)")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	log.Info("Starting gateway server",
		zap.String("config_path", configPath),
		zap.Bool("telemetry_enabled", cfg.Telemetry.Enabled),
		zap.Bool("weather_configured", cfg.Weather.APIKey != ""),
		zap.Bool("market_live_configured", cfg.Market.APIKey != ""),
		zap.Int("server_port", cfg.Server.Port))

	srv := server.NewServer(log.Logger, tele)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		if err := srv.Shutdown(); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		log.Info("Server shutdown complete")
		return nil
	}
}
