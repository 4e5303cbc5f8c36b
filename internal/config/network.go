package config

import (
	"fmt"
	"os"
	"strings"
)

// NetworkConfig holds network-related configuration
type NetworkConfig struct {
	// Backend server bind address
	Host string
	Port string

	// URL the terminal client talks to
	BackendURL string

	// Origin allowed by the backend's CORS policy
	FrontendURL string

	// Environment selects the gin mode: production, development or test
	Environment string
}

// GetNetworkConfig returns network configuration from environment or defaults
func GetNetworkConfig() *NetworkConfig {
	return &NetworkConfig{
		Host:        getEnvOrDefault("HOST", DefaultHost),
		Port:        getEnvOrDefault("PORT", DefaultHTTPPort),
		BackendURL:  getEnvOrDefault("BACKEND_URL", ""),
		FrontendURL: getEnvOrDefault("FRONTEND_URL", DefaultFrontendURL),
		Environment: getEnvOrDefault("APP_ENV", "development"),
	}
}

// GetBackendURL returns the backend base URL without a trailing slash
func (nc *NetworkConfig) GetBackendURL() string {
	if nc.BackendURL != "" {
		return strings.TrimRight(nc.BackendURL, "/")
	}
	host := nc.Host
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return fmt.Sprintf("http://%s:%s", host, nc.Port)
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
