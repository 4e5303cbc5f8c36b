// Package shared holds the flags and wiring common to tmate's subcommands.
package shared

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"transcribe-mate/internal/app/audio"
	"transcribe-mate/internal/app/client"
	appconfig "transcribe-mate/internal/app/config"
	"transcribe-mate/internal/app/logging"
	"transcribe-mate/internal/app/session"
	"transcribe-mate/internal/app/ui"
)

const (
	verboseFlag   = "verbose"
	configFlag    = "config"
	backendFlag   = "backend"
	noSpinnerFlag = "no-spinner"
)

// BindPersistentFlags registers the global flags on the root command
func BindPersistentFlags(root *cobra.Command) {
	root.PersistentFlags().BoolP(verboseFlag, "V", false, "verbose output")
	root.PersistentFlags().String(configFlag, appconfig.DefaultConfigPath(), "client config file")
	root.PersistentFlags().String(backendFlag, "", "backend URL (overrides config and BACKEND_URL)")
	root.PersistentFlags().Bool(noSpinnerFlag, false, "disable progress spinners")
}

// Verbose reports the --verbose flag
func Verbose(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool(verboseFlag)
	return v
}

// Logger builds the console logger; diagnostics go to stderr
func Logger(cmd *cobra.Command) *zap.Logger {
	logger, err := logging.NewCLILogger(Verbose(cmd))
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// ClientConfig loads the client config named by --config and applies --backend
func ClientConfig(cmd *cobra.Command) (*appconfig.ClientConfig, error) {
	path, _ := cmd.Flags().GetString(configFlag)
	explicit := cmd.Flags().Changed(configFlag)

	if backend, _ := cmd.Flags().GetString(backendFlag); backend != "" {
		os.Setenv("BACKEND_URL", backend)
	}
	return appconfig.LoadClientConfig(path, explicit)
}

// NewClient creates the backend client for cfg
func NewClient(cfg *appconfig.ClientConfig) *client.Client {
	return client.New(client.Config{
		BaseURL: cfg.BackendURL,
		Timeouts: client.Timeouts{
			Transcribe: cfg.Timeouts.Transcribe,
			Clean:      cfg.Timeouts.Clean,
			Prompt:     cfg.Timeouts.Prompt,
		},
	})
}

// NewCapture creates the ffmpeg microphone capture for cfg
func NewCapture(cfg *appconfig.ClientConfig, logger *zap.Logger) *audio.FFmpegCapture {
	return audio.NewFFmpegCapture(audio.FFmpegConfig{
		Binary:     cfg.Recording.FFmpegPath,
		Format:     cfg.Recording.Format,
		Device:     cfg.Recording.Device,
		SampleRate: cfg.Recording.SampleRate,
		Channels:   cfg.Recording.Channels,
	}, logger.Named("ffmpeg"))
}

// Session wires a controller to the configured backend and microphone
func Session(cmd *cobra.Command) (*session.Controller, *zap.Logger, error) {
	logger := Logger(cmd)
	cfg, err := ClientConfig(cmd)
	if err != nil {
		return nil, logger, err
	}
	logger.Debug("Using backend", zap.String("url", cfg.BackendURL))
	return session.NewController(NewClient(cfg), NewCapture(cfg, logger), logger), logger, nil
}

// Spinner returns the spinner settings for cmd
func Spinner(cmd *cobra.Command) ui.SpinnerConfig {
	disabled, _ := cmd.Flags().GetBool(noSpinnerFlag)
	return ui.SpinnerConfig{
		Enabled: !disabled && !Verbose(cmd),
		Writer:  cmd.ErrOrStderr(),
	}
}
