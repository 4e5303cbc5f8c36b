package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeys holds all API keys loaded from environment
type APIKeys struct {
	OpenAI string
	Gemini string
}

// LoadEnv loads environment variables from .env file if it exists
func LoadEnv() error {
	// Try to load .env file from current directory or project root
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	// Look for .env file, but don't fail if not found (environment variables might be set system-wide)
	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// GetAPIKeys retrieves and validates API keys from environment variables
func GetAPIKeys() (*APIKeys, error) {
	apiKeys := &APIKeys{
		OpenAI: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Gemini: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
	}

	if apiKeys.OpenAI != "" {
		if err := ValidateAPIKey(apiKeys.OpenAI, "OpenAI"); err != nil {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY: %w", err)
		}
	}

	if apiKeys.Gemini != "" {
		if err := ValidateAPIKey(apiKeys.Gemini, "Gemini"); err != nil {
			return nil, fmt.Errorf("invalid GEMINI_API_KEY: %w", err)
		}
	}

	return apiKeys, nil
}

// RequireServerKeys validates that the keys needed by the selected backend
// providers are present. The server refuses to start without them.
func RequireServerKeys(apiKeys *APIKeys, providers *ProviderSelection) error {
	if providers.Cleaner == CleanerGemini && apiKeys.Gemini == "" {
		return fmt.Errorf("required environment variable 'GEMINI_API_KEY' is not set")
	}
	if (providers.Cleaner == CleanerOpenAI || providers.Transcriber == TranscriberOpenAI) && apiKeys.OpenAI == "" {
		return fmt.Errorf("required environment variable 'OPENAI_API_KEY' is not set")
	}
	return nil
}

// InitializeConfig loads environment and validates configuration
// This is the main entry point for configuration loading
func InitializeConfig() (*APIKeys, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	apiKeys, err := GetAPIKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to get API keys: %w", err)
	}

	return apiKeys, nil
}
