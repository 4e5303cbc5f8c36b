package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"
)

// ValidateTimeout validates timeout duration
func ValidateTimeout(timeout time.Duration, name string) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive", name)
	}
	if timeout > 30*time.Minute {
		return fmt.Errorf("%s timeout too large (max 30 minutes)", name)
	}
	return nil
}

// ValidateAPIKey validates API key format
func ValidateAPIKey(apiKey string, keyType string) error {
	if apiKey == "" {
		return fmt.Errorf("%s API key is required", keyType)
	}

	switch keyType {
	case "OpenAI":
		if !strings.HasPrefix(apiKey, "sk-") {
			return fmt.Errorf("invalid OpenAI API key format: must start with 'sk-'")
		}
		if len(apiKey) < 20 {
			return fmt.Errorf("invalid OpenAI API key format: too short")
		}
	case "Gemini":
		if !strings.HasPrefix(apiKey, "AIza") {
			return fmt.Errorf("invalid Gemini API key format: must start with 'AIza'")
		}
		if len(apiKey) < 30 {
			return fmt.Errorf("invalid Gemini API key format: too short")
		}
	}

	return nil
}

// ValidateURL validates URL format
func ValidateURL(url string, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}

	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}

	return nil
}

// ValidatePort validates port number
func ValidatePort(port string, name string) error {
	if port == "" {
		return fmt.Errorf("%s port is required", name)
	}

	n, err := strconv.Atoi(port)
	if err != nil || n <= 0 || n > 65535 {
		return fmt.Errorf("%s port invalid", name)
	}

	return nil
}

// ValidateRequired returns an error when value is empty
func ValidateRequired(name string, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}

// ValidateOneOf checks that value is one of allowed
func ValidateOneOf(name string, value string, allowed []string) error {
	if !lo.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q, must be one of %v", name, value, allowed)
	}
	return nil
}

// ValidateNetworkConfig validates the backend network settings
func ValidateNetworkConfig(nc *NetworkConfig) error {
	if err := ValidatePort(nc.Port, "HTTP"); err != nil {
		return err
	}
	if err := ValidateURL(nc.GetBackendURL(), "backend"); err != nil {
		return err
	}
	return ValidateURL(nc.FrontendURL, "frontend")
}
