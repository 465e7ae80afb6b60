package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/avilev/daily-status/internal/config"
	"github.com/avilev/daily-status/internal/mailer"
	"github.com/avilev/daily-status/internal/normalize"
	"github.com/avilev/daily-status/internal/sheets"
	"github.com/avilev/daily-status/internal/submit"
	transporthttp "github.com/avilev/daily-status/internal/transport/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP submission server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "daily-status",
	})

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration: %w", err)
	}
	zone, err := cfg.Location()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := sheets.New(ctx, sheets.Credentials{
		ClientEmail: cfg.GoogleClientEmail,
		PrivateKey:  cfg.GooglePrivateKey,
	}, cfg.SpreadsheetID, cfg.TabName)
	if err != nil {
		return fmt.Errorf("sheets client: %w", err)
	}

	svc := &submit.Service{
		Normalizer: normalize.New(zone, cfg.SheetYear),
		Storage:    store,
		Log:        logger,
	}
	if cfg.MailEnabled() {
		svc.Mail = mailer.New(cfg.ResendAPIKey, cfg.MailFrom, cfg.MailSubjectPrefix)
		logger.Info("confirmation emails enabled", "from", cfg.MailFrom)
	}

	api := &transporthttp.API{
		Submitter:    svc,
		Reader:       store,
		MaxBodyBytes: cfg.MaxBodyBytes,
		Log:          logger,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening",
			"addr", srv.Addr,
			"timezone", cfg.Timezone,
			"sheet_year", cfg.SheetYear,
			"tab", cfg.TabName,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("http server", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
