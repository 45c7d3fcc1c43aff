package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"taskpilot/internal/ai"
	"taskpilot/internal/config"
	"taskpilot/internal/logging"
	"taskpilot/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the AI task generation proxy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("env-dir")
			cfg, err := config.LoadServer(dir)
			logger := logging.New(os.Stderr, cfg.LogLevel)
			if errors.Is(err, config.ErrMissingCredential) {
				logger.Fatal("Missing GEMINI_API_KEY. Set it in the environment or a .env file.")
			}
			if err != nil {
				return err
			}
			if cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			model, err := ai.NewModel(ctx, ai.ModelConfig{
				Provider: cfg.Provider,
				APIKey:   cfg.APIKey,
				Model:    cfg.Model,
				BaseURL:  cfg.BaseURL,
			})
			if err != nil {
				return err
			}

			srv := server.New(ai.NewGenerator(model), logger)
			logger.Info("task proxy ready", "provider", cfg.Provider, "addr", cfg.Addr())
			return srv.Run(ctx, cfg.Addr())
		},
	}
	cmd.Flags().String("env-dir", ".", "directory holding an optional .env file")
	return cmd
}
