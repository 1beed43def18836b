package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-classifier/internal/server"
	"github.com/jonathan/resume-classifier/internal/server/ratelimit"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP prediction API",
		Long: `Starts an HTTP server exposing:
  GET  /health           liveness and history status
  POST /predict          classify an uploaded résumé
  POST /predict/stream   classify with server-sent progress events
  GET  /history          recent predictions (requires DATABASE_URL)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appCtx, cleanup, err := opts.openApp(cmd)
			if err != nil {
				fmt.Fprintf(opts.stderr, "Error: %v\n", err)
				return &exitError{code: 1}
			}
			defer cleanup()

			if cmd.Flags().Changed("port") {
				appCtx.Config.Port = port
			}

			srv, err := server.New(server.Config{
				Port:           appCtx.Config.Port,
				RequestTimeout: appCtx.Config.Timeout(),
				RateLimit:      ratelimit.FromEnv(os.Getenv),
				Logger:         appCtx.Logger,
			}, appCtx.NewProcessor, appCtx.History)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(opts.stderr, "Listening on :%d\n", appCtx.Config.Port)
			return srv.Start(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (env PORT, default 8080)")
	return cmd
}
