package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"wishly/internal/cli"
	apphttp "wishly/internal/http"
	"wishly/internal/log"
	"wishly/internal/rates"
	"wishly/internal/wishlist"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	// All state is memory-resident for the session; an optional seed file
	// fills in people at startup.
	store := wishlist.NewFromFiles(cfg.SeedDir)
	if n := len(store.People()); n > 0 {
		logger.Info("Seeded people from file", "count", n, "dir", cfg.SeedDir)
	}

	table := rates.NewTable(cfg.BaseCurrency)
	client := rates.NewClient(cfg.RatesURL, cfg.RatesTimeout, logger)

	srv := apphttp.NewServer(":"+cfg.Port, store, table, cfg.DisplayCurrency, cfg.AllowedOrigins, cfg.RateLimitPerMin)

	// Configure server timeouts and limits
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	// One-shot best-effort rate fetch; until (and unless) it completes,
	// conversions fall back to identity.
	g.Go(func() error {
		client.Populate(gctx, table)
		return nil
	})

	g.Go(func() error {
		logger.Info("Starting wishly server",
			"port", cfg.Port,
			"base_currency", string(cfg.BaseCurrency),
			"display_currency", string(cfg.DisplayCurrency))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err.Error())
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", log.FieldError, err.Error())
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
