package commands

import (
	"context"
	"errors"
	"net/http"
	"time"

	"securities_master/internal/app/di"
	"securities_master/internal/app/router"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the read-only HTTP API",
	Long: `Serves the stored data over HTTP:

  GET /healthz                 liveness and database ping
  GET /symbols                 stored symbols ordered by ticker
  GET /prices/:ticker?limit=N  latest N bars, newest first (default 30, max 5000)`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	gdb, err := di.OpenDatabase(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer closeDatabase(gdb)


	h, err := di.NewHandlers(gdb)
	if err != nil {
		return err
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           router.NewRouter(h.Health, h.Symbols, h.Prices),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-cmd.Context().Done():
		log.Info("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info("http server stopped")
	return nil
}
