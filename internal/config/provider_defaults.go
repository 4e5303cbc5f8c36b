package config

import (
	"os"
	"strings"
	"time"
)

// Provider default configuration constants
const (
	// Timeout defaults
	DefaultTranscribeTimeout = 300 * time.Second
	DefaultCleanTimeout      = 120 * time.Second
	DefaultPromptTimeout     = 10 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second

	// Network defaults
	DefaultHost        = "0.0.0.0"
	DefaultHTTPPort    = "8000"
	DefaultFrontendURL = "http://localhost:3000"

	// Upload defaults
	DefaultUploadSuffix = ".webm"
	MaxUploadSizeMB     = 100

	// Model defaults
	DefaultGeminiModel  = "gemini-2.5-flash"
	DefaultOpenAIModel  = "gpt-4o-mini"
	DefaultWhisperModel = "whisper-1"
)

// Cleaner provider names
const (
	CleanerGemini = "gemini"
	CleanerOpenAI = "openai"
)

// Transcriber provider names
const (
	TranscriberOpenAI     = "openai"
	TranscriberWhisperCpp = "whisper_cpp"
)

// ProviderSelection holds the backend providers chosen through the environment
type ProviderSelection struct {
	Transcriber  string
	Cleaner      string
	GeminiModel  string
	OpenAIModel  string
	WhisperModel string

	// Optional OpenAI-compatible endpoint
	OpenAIBaseURL string

	// whisper.cpp settings, used when Transcriber is whisper_cpp
	WhisperCppBinary string
	WhisperCppModel  string
	WhisperLanguage  string

	// Optional file overriding the embedded default system prompt
	SystemPromptFile string
}

// GetProviderSelection returns the provider selection from environment or defaults
func GetProviderSelection() *ProviderSelection {
	return &ProviderSelection{
		Transcriber:      strings.ToLower(getEnvOrDefault("TRANSCRIBER", TranscriberOpenAI)),
		Cleaner:          strings.ToLower(getEnvOrDefault("CLEANER", CleanerGemini)),
		GeminiModel:      getEnvOrDefault("GEMINI_MODEL", DefaultGeminiModel),
		OpenAIModel:      getEnvOrDefault("OPENAI_MODEL", DefaultOpenAIModel),
		WhisperModel:     getEnvOrDefault("WHISPER_MODEL", DefaultWhisperModel),
		OpenAIBaseURL:    os.Getenv("OPENAI_BASE_URL"),
		WhisperCppBinary: os.Getenv("WHISPER_CPP_BINARY"),
		WhisperCppModel:  os.Getenv("WHISPER_CPP_MODEL"),
		WhisperLanguage:  getEnvOrDefault("WHISPER_LANGUAGE", "auto"),
		SystemPromptFile: os.Getenv("SYSTEM_PROMPT_FILE"),
	}
}

// Validate checks that the selected providers exist and are configured
func (p *ProviderSelection) Validate() error {
	switch p.Transcriber {
	case TranscriberOpenAI:
	case TranscriberWhisperCpp:
		if p.WhisperCppBinary == "" || p.WhisperCppModel == "" {
			return ValidateRequired("WHISPER_CPP_BINARY and WHISPER_CPP_MODEL", "")
		}
	default:
		return ValidateOneOf("TRANSCRIBER", p.Transcriber, []string{TranscriberOpenAI, TranscriberWhisperCpp})
	}

	switch p.Cleaner {
	case CleanerGemini, CleanerOpenAI:
	default:
		return ValidateOneOf("CLEANER", p.Cleaner, []string{CleanerGemini, CleanerOpenAI})
	}
	return nil
}
