// Package prompt provides the default cleaning instruction.
package prompt

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
)

//go:embed system_prompt.txt
var defaultPrompt string

// Default returns the built-in system prompt
func Default() string {
	return strings.TrimSpace(defaultPrompt)
}

// Load reads the system prompt from path, or returns the built-in one when
// path is empty.
func Load(path string) (string, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read system prompt: %w", err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return "", fmt.Errorf("system prompt file %s is empty", path)
	}
	return text, nil
}

// Resolve picks the custom prompt when it is non-blank, else fallback
func Resolve(custom, fallback string) string {
	if strings.TrimSpace(custom) != "" {
		return custom
	}
	return fallback
}
