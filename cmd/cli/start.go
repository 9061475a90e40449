package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taskloom/taskloom/internal/config"
	"github.com/taskloom/taskloom/internal/initialization"
	"github.com/taskloom/taskloom/internal/server"
	"github.com/taskloom/taskloom/internal/version"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func NewStartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the API service",
		RunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			return runServer()
		},
	}

	return cmd
}

func runServer() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().Str("version", version.GetFullVersion()).Msg("Starting taskloom API")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error().Err(err).Msg("Failed to load configuration")

		return err
	}

	deps, err := initialization.BuildDependencies(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build dependencies")

		return err
	}

	app := server.NewHTTPServer(server.HTTPServerDependencies{
		SessionVerifier:               deps.SessionVerifier,
		WorkflowCredentialsController: deps.WorkflowCredentialsController,
	})

	go func() {
		log.Info().Str("address", cfg.HTTPAddress).Msg("HTTP server listening")

		if err := app.Listen(cfg.HTTPAddress); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
			cancel()
		}
	}()

	<-ctx.Done()

	log.Info().Msg("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("HTTP server shutdown was not clean")
	}

	deps.Close(shutdownCtx)

	return nil
}
