package whisper_cpp

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"transcribe-mate/internal/app/audio"
	"transcribe-mate/internal/app/util/files"
)

// LocalTranscriber implements local transcription, using local binary commands.
type LocalTranscriber struct {
	binaryPath string
	modelPath  string
	language   string
	logger     *zap.Logger

	// prepare returns a 16kHz mono WAV for inputFilePath and a cleanup func
	prepare        func(ctx context.Context, inputFilePath string) (string, func(), error)
	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewLocalTranscriber creates a new instance of LocalTranscriber. An empty
// language lets whisper.cpp detect it.
func NewLocalTranscriber(binaryPath, modelPath, language string, logger *zap.Logger) *LocalTranscriber {
	if language == "" {
		language = "auto"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalTranscriber{
		binaryPath:     binaryPath,
		modelPath:      modelPath,
		language:       language,
		logger:         logger,
		prepare:        prepare16kHzWav,
		commandContext: exec.CommandContext,
	}
}

func prepare16kHzWav(ctx context.Context, inputFilePath string) (string, func(), error) {
	noop := func() {}

	is16kHzWav, err := audio.Is16kHzWavFile(ctx, inputFilePath)
	if err != nil {
		return "", noop, fmt.Errorf("error checking input file: %v", err)
	}
	if is16kHzWav {
		return inputFilePath, noop, nil
	}

	converted, err := audio.ConvertTo16kHzWav(ctx, inputFilePath)
	if err != nil {
		return "", noop, fmt.Errorf("error converting input file: %v", err)
	}
	return converted, func() { os.Remove(converted) }, nil
}

func (lt *LocalTranscriber) args(inputFilePath, outputPrefix string) []string {
	return []string{
		"-m", lt.modelPath,
		"-l", lt.language,
		"-nt",
		"-otxt",
		"-f", inputFilePath,
		"-of", outputPrefix,
	}
}

// Transcript converts the input to 16kHz WAV when needed, runs whisper.cpp
// and returns the text it wrote.
func (lt *LocalTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	lt.logger.Debug("Starting transcription", zap.String("file", inputFilePath))

	wavPath, cleanup, err := lt.prepare(ctx, inputFilePath)
	if err != nil {
		return "", err
	}
	defer cleanup()

	if lt.logger.Core().Enabled(zap.DebugLevel) {
		if seconds, err := audio.GetAudioDuration(ctx, wavPath); err == nil {
			lt.logger.Debug("Prepared input", zap.String("wav", wavPath), zap.Int("duration_sec", seconds))
		}
	}

	outputDir, err := os.MkdirTemp("", "tmate-whisper-")
	if err != nil {
		return "", fmt.Errorf("failed to create output directory: %v", err)
	}
	defer os.RemoveAll(outputDir)
	outputPrefix := filepath.Join(outputDir, "transcript")

	args := lt.args(wavPath, outputPrefix)
	command := lt.commandContext(ctx, lt.binaryPath, args...)
	var stdout, stderr bytes.Buffer
	command.Stdout = &stdout
	command.Stderr = &stderr

	lt.logger.Debug("Running transcription command",
		zap.String("command", lt.binaryPath+" "+strings.Join(args, " ")))

	if err := command.Run(); err != nil {
		return "", fmt.Errorf("command execution error: %v, stderr: %s", err, strings.TrimSpace(stderr.String()))
	}

	output, err := files.ReadOutputFile(outputPrefix + ".txt")
	if err != nil {
		return "", fmt.Errorf("failed to read output file: %v", err)
	}

	lt.logger.Debug("Transcription finished", zap.Int("chars", len(output)))
	return output, nil
}
