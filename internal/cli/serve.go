package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/rohmanhakim/flowmap/internal/api"
	"github.com/rohmanhakim/flowmap/internal/flowmap"
	"github.com/rohmanhakim/flowmap/internal/metadata"
	"github.com/rohmanhakim/flowmap/internal/scheduler"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the flow mapper over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := InitConfigWithError()
		if err != nil {
			return err
		}
		logger, err := metadata.NewLogger(cfg.LogLevel(), cfg.LogFormat(), os.Stderr)
		if err != nil {
			return err
		}

		recorder := metadata.NewRecorder("api", logger)
		mapper := flowmap.NewMapper(scheduler.NewScheduler(cfg, recorder))
		server := api.NewServer(mapper, logger, cfg.AllowedOrigin(), cfg.MaxDepth())

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return server.ListenAndServe(ctx, cfg.ListenAddr())
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (default :3000)")
	serveCmd.Flags().StringVar(&allowedOrigin, "allowed-origin", "", "origin allowed by CORS (default http://localhost:5173)")
}
