package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAPIKeys(t *testing.T) {
	testCases := []struct {
		name          string
		openaiKey     string
		geminiKey     string
		expectError   bool
		errorContains string
	}{
		{
			name:        "valid OpenAI key",
			openaiKey:   "sk-1234567890abcdef1234567890abcdef",
			geminiKey:   "",
			expectError: false,
		},
		{
			name:        "valid Gemini key",
			openaiKey:   "",
			geminiKey:   "AIzaTest-1234567890abcdef1234567890",
			expectError: false,
		},
		{
			name:          "invalid OpenAI key format",
			openaiKey:     "invalid-key",
			geminiKey:     "",
			expectError:   true,
			errorContains: "invalid OPENAI_API_KEY",
		},
		{
			name:          "OpenAI key too short",
			openaiKey:     "sk-short",
			geminiKey:     "",
			expectError:   true,
			errorContains: "too short",
		},
		{
			name:          "invalid Gemini key format",
			openaiKey:     "",
			geminiKey:     "invalid-key",
			expectError:   true,
			errorContains: "invalid GEMINI_API_KEY",
		},
		{
			name:        "empty keys are allowed",
			openaiKey:   "",
			geminiKey:   "",
			expectError: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", tc.openaiKey)
			t.Setenv("GEMINI_API_KEY", tc.geminiKey)

			apiKeys, err := GetAPIKeys()

			if tc.expectError {
				assert.Error(t, err)
				if tc.errorContains != "" {
					assert.Contains(t, err.Error(), tc.errorContains)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, tc.openaiKey, apiKeys.OpenAI)
				assert.Equal(t, tc.geminiKey, apiKeys.Gemini)
			}
		})
	}
}

func TestRequireServerKeys(t *testing.T) {
	gemini := &ProviderSelection{Transcriber: TranscriberWhisperCpp, Cleaner: CleanerGemini}
	openai := &ProviderSelection{Transcriber: TranscriberOpenAI, Cleaner: CleanerGemini}

	testCases := []struct {
		name          string
		apiKeys       *APIKeys
		providers     *ProviderSelection
		errorContains string
	}{
		{
			name:      "gemini cleaner with key",
			apiKeys:   &APIKeys{Gemini: "AIzaTest-1234567890abcdef1234567890"},
			providers: gemini,
		},
		{
			name:          "gemini cleaner without key",
			apiKeys:       &APIKeys{},
			providers:     gemini,
			errorContains: "GEMINI_API_KEY",
		},
		{
			name:          "openai transcriber without key",
			apiKeys:       &APIKeys{Gemini: "AIzaTest-1234567890abcdef1234567890"},
			providers:     openai,
			errorContains: "OPENAI_API_KEY",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := RequireServerKeys(tc.apiKeys, tc.providers)
			if tc.errorContains == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errorContains)
		})
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TMATE_TEST_VALUE=from-dotenv\n"), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	defer os.Chdir(wd)

	os.Unsetenv("TMATE_TEST_VALUE")
	defer os.Unsetenv("TMATE_TEST_VALUE")

	require.NoError(t, LoadEnv())
	assert.Equal(t, "from-dotenv", os.Getenv("TMATE_TEST_VALUE"))
}

func TestGetNetworkConfig(t *testing.T) {
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("BACKEND_URL", "")
	t.Setenv("FRONTEND_URL", "")

	nc := GetNetworkConfig()
	assert.Equal(t, DefaultHTTPPort, nc.Port)
	assert.Equal(t, DefaultFrontendURL, nc.FrontendURL)
	assert.Equal(t, "http://localhost:8000", nc.GetBackendURL())
	assert.NoError(t, ValidateNetworkConfig(nc))

	t.Setenv("BACKEND_URL", "https://tmate.example.com/")
	assert.Equal(t, "https://tmate.example.com", GetNetworkConfig().GetBackendURL())
}

func TestProviderSelectionValidate(t *testing.T) {
	t.Setenv("TRANSCRIBER", "")
	t.Setenv("CLEANER", "")
	t.Setenv("GEMINI_MODEL", "")

	defaults := GetProviderSelection()
	assert.Equal(t, TranscriberOpenAI, defaults.Transcriber)
	assert.Equal(t, CleanerGemini, defaults.Cleaner)
	assert.Equal(t, DefaultGeminiModel, defaults.GeminiModel)
	assert.NoError(t, defaults.Validate())

	bad := &ProviderSelection{Transcriber: "faster_whisper", Cleaner: CleanerGemini}
	assert.ErrorContains(t, bad.Validate(), "TRANSCRIBER")

	cpp := &ProviderSelection{Transcriber: TranscriberWhisperCpp, Cleaner: CleanerOpenAI}
	assert.ErrorContains(t, cpp.Validate(), "WHISPER_CPP_BINARY")

	cpp.WhisperCppBinary = "/usr/local/bin/whisper-cli"
	cpp.WhisperCppModel = "/models/ggml-base.bin"
	assert.NoError(t, cpp.Validate())
}
