package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rsilvagit/jobfit/internal/analysis"
	"github.com/rsilvagit/jobfit/internal/api"
	"github.com/rsilvagit/jobfit/internal/output"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the extraction API for browser panels",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		onward, release, err := publishers(ctx)
		defer release()
		if err != nil {
			return err
		}
		analyzer, err := newAnalyzer(ctx)
		if err != nil {
			return err
		}
		submitter := analysis.NewSubmitter(analyzer, log)

		srv := api.NewServer(api.Options{
			Extractor:      newExtractor(),
			Publisher:      append(output.Multi{submitter}, onward...),
			Submitter:      submitter,
			SettleDelay:    cfg.Session.SettleDelay,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			Logger:         log,
		})
		httpSrv := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           srv.Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info("serving", zap.String("addr", cfg.Server.Addr))
			errCh <- httpSrv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case <-ctx.Done():
		}

		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
