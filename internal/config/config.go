package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"notiongrid/internal/notion"
)

// Config holds all server configuration
type Config struct {
	Port          string
	BaseURL       string
	CORSOrigins   []string
	NotionBaseURL string
	NotionVersion string
	QueryPageSize int
	HTTPTimeout   time.Duration
	LogFormat     string
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		BaseURL:       strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		CORSOrigins:   parseCORSOrigins(getEnv("CORS_ORIGINS", "*")),
		NotionBaseURL: strings.TrimRight(getEnv("NOTION_BASE_URL", notion.DefaultBaseURL), "/"),
		NotionVersion: getEnv("NOTION_VERSION", notion.DefaultVersion),
	}

	// Parse QUERY_PAGE_SIZE
	pageSize, err := strconv.Atoi(getEnv("QUERY_PAGE_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUERY_PAGE_SIZE: %w", err)
	}
	if pageSize <= 0 || pageSize > 100 {
		return nil, fmt.Errorf("QUERY_PAGE_SIZE must be between 1 and 100, got %d", pageSize)
	}
	cfg.QueryPageSize = pageSize

	// Parse HTTP_TIMEOUT
	timeoutStr := getEnv("HTTP_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("HTTP_TIMEOUT must be positive, got %s", timeoutStr)
	}
	cfg.HTTPTimeout = timeout

	// Parse LOG_FORMAT
	logFormat := getEnv("LOG_FORMAT", "text")
	if logFormat != "text" && logFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be 'text' or 'json', got %q", logFormat)
	}
	cfg.LogFormat = logFormat

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseCORSOrigins parses a comma-separated list of CORS origins
func parseCORSOrigins(origins string) []string {
	if origins == "*" {
		return []string{"*"}
	}

	var result []string
	for _, origin := range strings.Split(origins, ",") {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return []string{"*"}
	}

	return result
}
