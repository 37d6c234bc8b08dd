package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"currency-exchange-gateway/config"
	httpHandler "currency-exchange-gateway/internal/adapter/http/handler"
	"currency-exchange-gateway/internal/adapter/memory"
	"currency-exchange-gateway/internal/adapter/ratesource"
	"currency-exchange-gateway/internal/core/ports"
	"currency-exchange-gateway/internal/metrics"
	"currency-exchange-gateway/internal/service"
	"currency-exchange-gateway/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Currency Exchange Gateway")

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	met := metrics.New(registry)

	// In-memory stores
	rateCache := memory.NewRateCache()
	txStore := memory.NewTransactionStore()

	// Rate source chain: live API, scrape fallback, static last resort.
	httpClient := &http.Client{Timeout: cfg.Rates.HTTPTimeout}
	static := ratesource.NewStaticSource()
	scrape := ratesource.NewScrapeSource(cfg.Rates.ScrapeURL, httpClient, cfg.Rates.BatchSize, cfg.Rates.BatchDelay)
	sources := []ports.RateSource{
		ratesource.NewPrimarySource(cfg.Rates.ProviderBaseURL, httpClient),
		scrape,
		static,
	}

	// Event hub shared by the rate engine and the purchase workflow
	hub := service.NewEventHub()
	defer hub.Close()

	// Business services
	rateSvc := service.NewRateEngine(cfg.Rates, rateCache, sources, scrape,
		ratesource.DefaultBoardPairs(), hub, met, log)
	purchaseSvc := service.NewPurchaseWorkflow(cfg.Purchase, rateSvc, txStore,
		service.NewFeeCalculator(cfg.Purchase.FeeBase, cfg.Purchase.FeePercent),
		service.NewSimulatedAuthorizer(cfg.Purchase.PaymentDelay),
		hub, met, log)

	// Background refresher
	refreshCtx, stopRefresh := context.WithCancel(context.Background())
	defer stopRefresh()
	go rateSvc.Run(refreshCtx)

	// Warm the cache so the first request is served from memory.
	warmCtx, cancelWarm := context.WithTimeout(context.Background(), cfg.Rates.HTTPTimeout)
	if _, err := rateSvc.FetchRates(warmCtx, service.DefaultBase); err != nil {
		log.Warn().Err(err).Msg("initial rate fetch failed")
	}
	cancelWarm()

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		RateSvc:     rateSvc,
		PurchaseSvc: purchaseSvc,
		Registry:    registry,
		Logger:      log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	stopRefresh()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Let in-flight settlements finish before exiting.
	if err := purchaseSvc.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Settlements did not drain in time")
	}

	log.Info().Msg("Server exited")
}
