package root

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httphandler "github.com/status-system/progression/internal/http"
	"github.com/status-system/progression/internal/notify"
	"github.com/status-system/progression/internal/service"
	"github.com/status-system/progression/pkg/logger"
)

func newServeCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the daily-cycle monitor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := openApp(ctx, opts, false)
			if err != nil {
				return err
			}
			defer a.close()

			loc, err := a.cfg.Location()
			if err != nil {
				return err
			}
			monitor := service.NewMonitor(a.svc, a.cfg.CheckSchedule, loc, a.log)
			if err := monitor.Start(ctx); err != nil {
				return err
			}
			defer monitor.Stop()

			if a.cfg.WebhookURL != "" {
				updates, unsubscribe := a.svc.Subscribe()
				defer unsubscribe()
				notifier := notify.NewWebhookNotifier(a.cfg.WebhookURL, a.cfg.WebhookTimeout, a.clock, a.log)
				go notifier.Run(ctx, updates)
				a.log.Info("Reminder webhook enabled", logger.F("url", a.cfg.WebhookURL))
			}

			handler := httphandler.NewHandler(a.svc, monitor, a.log, a.cfg.CORSOrigins)
			server := &http.Server{
				Addr:              a.cfg.Address(),
				Handler:           httphandler.NewRouter(handler, a.log, a.cfg.CORSOrigins),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("Server starting", logger.F("addr", server.Addr), logger.F("store", a.cfg.StoreBackend))
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				return fmt.Errorf("server failed: %w", err)
			}

			a.log.Info("Shutting down server...")

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("server forced to shutdown: %w", err)
			}

			a.log.Info("Server exited")
			return nil
		},
	}
}
