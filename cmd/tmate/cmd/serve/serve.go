package serve

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"transcribe-mate/internal/app"
	"transcribe-mate/internal/app/logging"
	"transcribe-mate/internal/config"
)

var host string
var port string

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "bind address (default $HOST or 0.0.0.0)")
	Cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default $PORT or 8000)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transcription and cleaning backend",
	Long: `Run the HTTP backend used by the terminal client and the web front end.

- POST /api/transcribe  transcribe an uploaded audio file
- POST /api/clean       clean a transcript with an LLM
- GET  /api/system-prompt  the default cleaning instruction
- GET  /health, GET /metrics

Providers are selected with TRANSCRIBER (openai, whisper_cpp) and CLEANER (gemini, openai).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		network := config.GetNetworkConfig()
		if host != "" {
			network.Host = host
		}
		if port != "" {
			network.Port = port
		}
		if err := config.ValidateNetworkConfig(network); err != nil {
			return fmt.Errorf("invalid network configuration: %w", err)
		}

		logger, err := logging.NewLogger(network.Environment != "production")
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync()

		keys, err := config.GetAPIKeys()
		if err != nil {
			return err
		}
		selection := config.GetProviderSelection()
		if err := selection.Validate(); err != nil {
			return err
		}
		if err := config.RequireServerKeys(keys, selection); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, err := app.InitializeServer(ctx, selection, keys, network, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize server: %w", err)
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		logger.Info("Received shutdown signal", zap.Duration("timeout", config.DefaultShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.DefaultShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	},
}
