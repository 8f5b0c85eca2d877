package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"cardfx-service/internal/adapter/cache"
	httpRouter "cardfx-service/internal/adapter/http"
	"cardfx-service/internal/adapter/transport"
	"cardfx-service/internal/config"
	"cardfx-service/internal/domain/model"
	"cardfx-service/internal/domain/ports"
	"cardfx-service/internal/metrics"
	"cardfx-service/internal/provider/amex"
	"cardfx-service/internal/provider/mastercard"
	"cardfx-service/internal/provider/refrate"
	"cardfx-service/internal/provider/visa"
	"cardfx-service/internal/service"
	"cardfx-service/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file loaded, relying on environment")
	}

	log := logger.NewLogger(os.Getenv("LOG_LEVEL"))
	defer log.Sync()
	log.Info("Starting card FX rate service")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	appMetrics := metrics.NewMetrics()

	// One HTTP client serves every transport; it owns the upstream timeout so
	// a stalled provider cannot hang an aggregated request forever.
	httpClient := &http.Client{Timeout: cfg.Providers.Timeout}

	referenceTransport := transport.NewReferenceClient(cfg.Reference.BaseURL, httpClient, log)
	mastercardTransport := transport.NewMastercardClient(cfg.Mastercard.BaseURL, httpClient, log)
	visaTransport := transport.NewVisaClient(cfg.Visa.BaseURL, httpClient, log)
	amexTransport := transport.NewAmexClient(cfg.Amex.BaseURL, httpClient, log)

	// Each provider owns its cache; keys never collide across providers.
	newCache := func(name string) *cache.MemoryCache {
		return cache.NewMemoryCache(cfg.Cache.TTL, log).WithMetrics(name, appMetrics.CacheEventsTotal)
	}

	referenceResolver := refrate.NewResolver(referenceTransport, newCache("reference"), model.Currency(cfg.Reference.Currency), log)
	mastercardProvider := mastercard.NewProvider(mastercardTransport, referenceResolver, newCache("mastercard"), log)
	visaProvider := visa.NewProvider(visaTransport, newCache("visa"), log)
	amexProvider := amex.NewProvider(amexTransport, newCache("amex"), log)

	aggregator := service.NewAggregatorService(
		referenceResolver,
		[]ports.RateProvider{mastercardProvider, visaProvider, amexProvider},
		log,
	)

	handler := httpRouter.NewHandler(aggregator, log, appMetrics)
	router := httpRouter.NewRouter(handler, log, appMetrics)
	routes := router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      routes,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Starting HTTP server", "port", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("Server exited")
}
