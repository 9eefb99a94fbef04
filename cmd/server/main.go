package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"notiongrid/internal/api"
	"notiongrid/internal/config"
	"notiongrid/internal/gateway"
	"notiongrid/internal/metrics"
	"notiongrid/internal/notion"
)

func main() {
	// .env is optional; real deployments use the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogFormat)
	logger.Info("Starting notiongrid server",
		"port", cfg.Port,
		"base_url", cfg.BaseURL,
		"cors_origins", cfg.CORSOrigins,
		"notion_version", cfg.NotionVersion,
		"query_page_size", cfg.QueryPageSize,
		"http_timeout", cfg.HTTPTimeout,
	)

	// One HTTP client for all outbound Notion calls; credentials are
	// per-request, the transport is shared.
	notionHTTP := &http.Client{
		Timeout:   cfg.HTTPTimeout,
		Transport: metrics.InstrumentTransport(nil),
	}

	gw := gateway.New(
		gateway.WithPageSize(cfg.QueryPageSize),
		gateway.WithClientFactory(func(apiKey string) *notion.Client {
			return notion.New(apiKey,
				notion.WithBaseURL(cfg.NotionBaseURL),
				notion.WithVersion(cfg.NotionVersion),
				notion.WithHTTPClient(notionHTTP),
			)
		}),
	)

	handler := api.NewHandler(gw, cfg.BaseURL, logger)
	router := api.NewRouter(handler, cfg.CORSOrigins)

	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		logger.Info("Shutting down server...")
		if err := server.Close(); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Server listening", "addr", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped")
}

func newLogger(format string) *slog.Logger {
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
