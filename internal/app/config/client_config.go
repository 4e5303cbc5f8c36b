package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	appconfig "transcribe-mate/internal/config"
)

// ClientConfig represents the terminal client configuration
type ClientConfig struct {
	BackendURL string          `yaml:"backend_url"`
	Timeouts   TimeoutsConfig  `yaml:"timeouts,omitempty"`
	Recording  RecordingConfig `yaml:"recording,omitempty"`
}

// TimeoutsConfig bounds each backend call
type TimeoutsConfig struct {
	Transcribe time.Duration `yaml:"transcribe,omitempty"`
	Clean      time.Duration `yaml:"clean,omitempty"`
	Prompt     time.Duration `yaml:"prompt,omitempty"`
}

// RecordingConfig describes how ffmpeg reaches the microphone
type RecordingConfig struct {
	FFmpegPath string `yaml:"ffmpeg_path,omitempty"`
	Format     string `yaml:"format,omitempty"` // ffmpeg input format: pulse, alsa, avfoundation, dshow
	Device     string `yaml:"device,omitempty"`
	SampleRate int    `yaml:"sample_rate,omitempty"`
	Channels   int    `yaml:"channels,omitempty"`
}

// DefaultConfigPath returns ~/.tmate.yaml
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tmate.yaml"
	}
	return filepath.Join(home, ".tmate.yaml")
}

// LoadClientConfig loads the client configuration from a YAML file.
// A missing file is not an error when the path is the default one;
// environment variables always override file values.
func LoadClientConfig(configPath string, explicit bool) (*ClientConfig, error) {
	config := &ClientConfig{}

	configPath = os.ExpandEnv(configPath)
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case os.IsNotExist(err) && !explicit:
	case os.IsNotExist(err):
		return nil, fmt.Errorf("config file not found: %s", configPath)
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config.applyEnvironment()
	config.setDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// SaveClientConfig saves the client configuration to a YAML file
func SaveClientConfig(config *ClientConfig, configPath string) error {
	configPath = os.ExpandEnv(configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *ClientConfig) applyEnvironment() {
	if v := os.Getenv("BACKEND_URL"); v != "" {
		c.BackendURL = v
	}
	if v := os.Getenv("TMATE_AUDIO_FORMAT"); v != "" {
		c.Recording.Format = v
	}
	if v := os.Getenv("TMATE_AUDIO_DEVICE"); v != "" {
		c.Recording.Device = v
	}
	if v := os.Getenv("FFMPEG_PATH"); v != "" {
		c.Recording.FFmpegPath = v
	}
}

func (c *ClientConfig) setDefaults() {
	if c.BackendURL == "" {
		c.BackendURL = appconfig.GetNetworkConfig().GetBackendURL()
	}
	c.BackendURL = strings.TrimRight(c.BackendURL, "/")

	if c.Timeouts.Transcribe == 0 {
		c.Timeouts.Transcribe = appconfig.DefaultTranscribeTimeout
	}
	if c.Timeouts.Clean == 0 {
		c.Timeouts.Clean = appconfig.DefaultCleanTimeout
	}
	if c.Timeouts.Prompt == 0 {
		c.Timeouts.Prompt = appconfig.DefaultPromptTimeout
	}

	if c.Recording.FFmpegPath == "" {
		c.Recording.FFmpegPath = "ffmpeg"
	}
	if c.Recording.Format == "" || c.Recording.Device == "" {
		format, device := defaultInputDevice(runtime.GOOS)
		if c.Recording.Format == "" {
			c.Recording.Format = format
		}
		if c.Recording.Device == "" {
			c.Recording.Device = device
		}
	}
	if c.Recording.SampleRate == 0 {
		c.Recording.SampleRate = 16000
	}
	if c.Recording.Channels == 0 {
		c.Recording.Channels = 1
	}
}

// Validate validates the client configuration
func (c *ClientConfig) Validate() error {
	if err := appconfig.ValidateURL(c.BackendURL, "backend"); err != nil {
		return err
	}
	if err := appconfig.ValidateTimeout(c.Timeouts.Transcribe, "transcribe"); err != nil {
		return err
	}
	if err := appconfig.ValidateTimeout(c.Timeouts.Clean, "clean"); err != nil {
		return err
	}
	if err := appconfig.ValidateTimeout(c.Timeouts.Prompt, "prompt"); err != nil {
		return err
	}
	if c.Recording.Channels < 1 || c.Recording.Channels > 2 {
		return fmt.Errorf("recording channels must be 1 or 2")
	}
	if c.Recording.SampleRate < 8000 || c.Recording.SampleRate > 48000 {
		return fmt.Errorf("recording sample_rate must be between 8000 and 48000")
	}
	return nil
}

// defaultInputDevice returns the ffmpeg input format and device of the
// default microphone on each platform.
func defaultInputDevice(goos string) (string, string) {
	switch goos {
	case "darwin":
		return "avfoundation", ":0"
	case "windows":
		return "dshow", "audio=default"
	default:
		return "pulse", "default"
	}
}
