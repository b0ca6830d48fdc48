package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	chiTransport "github.com/kailas-cloud/chapterdex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/chapterdex/internal/usecase/health"
	lookupuc "github.com/kailas-cloud/chapterdex/internal/usecase/lookup"
	"github.com/kailas-cloud/chapterdex/internal/version"
)

func newServeCmd(a *app) *cobra.Command {
	var port int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve read-only lookups against the master index over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if port != 0 {
				a.cfg.HTTP.Port = port
			}
			b, err := a.openBackend(ctx)
			if err != nil {
				return err
			}

			server := chiTransport.NewServer(
				lookupuc.New(b.store),
				healthuc.New(b.store, b.pinger),
				a.logger,
			)

			addr := fmt.Sprintf(":%d", a.cfg.HTTP.Port)
			srv := &http.Server{
				Addr:         addr,
				Handler:      server.Router(a.cfg.Auth.APIKeys),
				ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
				WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("Starting HTTP server",
					zap.String("addr", addr),
					zap.String("version", version.Version),
					zap.String("master", b.location),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}
			a.logger.Info("Received shutdown signal")

			shutdownCtx, cancel := context.WithTimeout(context.Background(),
				time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.logger.Error("Error during shutdown", zap.Error(err))
				return fmt.Errorf("shutdown: %w", err)
			}
			a.logger.Info("Server stopped gracefully")
			return nil
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default http.port)")
	return cmd
}
