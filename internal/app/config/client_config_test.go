package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearClientEnv(t *testing.T) {
	for _, key := range []string{"BACKEND_URL", "TMATE_AUDIO_FORMAT", "TMATE_AUDIO_DEVICE", "FFMPEG_PATH", "HOST", "PORT"} {
		t.Setenv(key, "")
	}
}

func TestLoadClientConfig_FromFile(t *testing.T) {
	clearClientEnv(t)

	path := filepath.Join(t.TempDir(), "tmate.yaml")
	content := `
backend_url: http://backend.local:9000/
timeouts:
  clean: 45s
recording:
  format: alsa
  device: hw:1
  sample_rate: 44100
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadClientConfig(path, true)
	require.NoError(t, err)

	assert.Equal(t, "http://backend.local:9000", cfg.BackendURL)
	assert.Equal(t, 45*time.Second, cfg.Timeouts.Clean)
	assert.Equal(t, 300*time.Second, cfg.Timeouts.Transcribe)
	assert.Equal(t, "alsa", cfg.Recording.Format)
	assert.Equal(t, "hw:1", cfg.Recording.Device)
	assert.Equal(t, 44100, cfg.Recording.SampleRate)
	assert.Equal(t, 1, cfg.Recording.Channels)
	assert.Equal(t, "ffmpeg", cfg.Recording.FFmpegPath)
}

func TestLoadClientConfig_EnvironmentOverridesFile(t *testing.T) {
	clearClientEnv(t)
	t.Setenv("BACKEND_URL", "https://override.example.com")

	path := filepath.Join(t.TempDir(), "tmate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend_url: http://file.local\n"), 0644))

	cfg, err := LoadClientConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", cfg.BackendURL)
}

func TestLoadClientConfig_MissingFile(t *testing.T) {
	clearClientEnv(t)
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := LoadClientConfig(path, false)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.BackendURL)

	_, err = LoadClientConfig(path, true)
	assert.ErrorContains(t, err, "config file not found")
}

func TestLoadClientConfig_Invalid(t *testing.T) {
	clearClientEnv(t)

	path := filepath.Join(t.TempDir(), "tmate.yaml")
	require.NoError(t, os.WriteFile(path, []byte("recording:\n  channels: 6\n"), 0644))

	_, err := LoadClientConfig(path, true)
	assert.ErrorContains(t, err, "channels")
}

func TestSaveClientConfig_RoundTrip(t *testing.T) {
	clearClientEnv(t)

	path := filepath.Join(t.TempDir(), "nested", "tmate.yaml")
	original := &ClientConfig{BackendURL: "http://saved.local:8000"}
	require.NoError(t, SaveClientConfig(original, path))

	loaded, err := LoadClientConfig(path, true)
	require.NoError(t, err)
	assert.Equal(t, "http://saved.local:8000", loaded.BackendURL)
}

func TestDefaultInputDevice(t *testing.T) {
	format, device := defaultInputDevice("darwin")
	assert.Equal(t, "avfoundation", format)
	assert.Equal(t, ":0", device)

	format, _ = defaultInputDevice("linux")
	assert.Equal(t, "pulse", format)
}
