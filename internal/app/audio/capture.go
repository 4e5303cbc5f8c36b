package audio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	apperrors "transcribe-mate/internal/app/errors"
)

// Capture acquires an audio input. Start requires the user's permission to
// use the microphone.
type Capture interface {
	Start(ctx context.Context) (Stream, error)
}

// Stream is an active recording. Stop ends it, releases the input and
// returns everything captured as one payload.
type Stream interface {
	Stop() (*Payload, error)
	Abort()
}

// FFmpegConfig describes how ffmpeg reaches the microphone
type FFmpegConfig struct {
	Binary     string
	Format     string
	Device     string
	SampleRate int
	Channels   int

	// StartupGrace is how long Start waits for ffmpeg to fail on open
	StartupGrace time.Duration
	// StopTimeout bounds a graceful stop before the process is killed
	StopTimeout time.Duration
}

// FFmpegCapture records from the default input through an ffmpeg process.
type FFmpegCapture struct {
	config FFmpegConfig
	logger *zap.Logger

	commandContext func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// NewFFmpegCapture creates a microphone capture backed by ffmpeg
func NewFFmpegCapture(config FFmpegConfig, logger *zap.Logger) *FFmpegCapture {
	if config.Binary == "" {
		config.Binary = "ffmpeg"
	}
	if config.SampleRate == 0 {
		config.SampleRate = 16000
	}
	if config.Channels == 0 {
		config.Channels = 1
	}
	if config.StartupGrace == 0 {
		config.StartupGrace = 500 * time.Millisecond
	}
	if config.StopTimeout == 0 {
		config.StopTimeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FFmpegCapture{
		config:         config,
		logger:         logger,
		commandContext: exec.CommandContext,
	}
}

func (c *FFmpegCapture) args(outputPath string) []string {
	return []string{
		"-hide_banner", "-loglevel", "error", "-nostats", "-y",
		"-f", c.config.Format,
		"-i", c.config.Device,
		"-ac", strconv.Itoa(c.config.Channels),
		"-ar", strconv.Itoa(c.config.SampleRate),
		"-acodec", "pcm_s16le",
		outputPath,
	}
}

// Start launches ffmpeg. Failures to open the device surface here as
// ErrPermissionDenied or ErrDeviceNotFound.
func (c *FFmpegCapture) Start(ctx context.Context) (Stream, error) {
	dir, err := os.MkdirTemp("", "tmate-recording-")
	if err != nil {
		return nil, apperrors.Wrap(err, "create recording directory")
	}
	outputPath := filepath.Join(dir, "recording.wav")

	cmd := c.commandContext(ctx, c.config.Binary, c.args(outputPath)...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		os.RemoveAll(dir)
		return nil, apperrors.Wrap(err, "open ffmpeg stdin")
	}
	stderr := &lockedBuffer{}
	cmd.Stderr = stderr

	if err := cmd.Start(); err != nil {
		os.RemoveAll(dir)
		if apperrors.Is(err, exec.ErrNotFound) {
			return nil, apperrors.Wrapf(apperrors.ErrDeviceNotFound, "ffmpeg binary %q not found", c.config.Binary)
		}
		return nil, apperrors.Wrap(err, "start ffmpeg")
	}

	s := &ffmpegStream{
		cmd:         cmd,
		stdin:       stdin,
		stderr:      stderr,
		dir:         dir,
		outputPath:  outputPath,
		stopTimeout: c.config.StopTimeout,
		done:        make(chan struct{}),
		logger:      c.logger,
	}
	go s.wait()

	select {
	case <-s.done:
		os.RemoveAll(dir)
		return nil, classifyFailure(stderr.String(), s.waitErr)
	case <-time.After(c.config.StartupGrace):
	case <-ctx.Done():
		s.Abort()
		return nil, ctx.Err()
	}

	c.logger.Debug("Recording started",
		zap.String("format", c.config.Format),
		zap.String("device", c.config.Device),
		zap.Int("pid", cmd.Process.Pid),
	)
	return s, nil
}

type ffmpegStream struct {
	cmd         *exec.Cmd
	stdin       io.WriteCloser
	stderr      *lockedBuffer
	dir         string
	outputPath  string
	stopTimeout time.Duration
	logger      *zap.Logger

	done    chan struct{}
	waitErr error

	once sync.Once
}

func (s *ffmpegStream) wait() {
	s.waitErr = s.cmd.Wait()
	close(s.done)
}

// Stop asks ffmpeg to finish the file ("q" on stdin), waits for the process,
// then reads the recording.
func (s *ffmpegStream) Stop() (*Payload, error) {
	var payload *Payload
	var stopErr error

	ran := false
	s.once.Do(func() {
		ran = true
		defer os.RemoveAll(s.dir)

		io.WriteString(s.stdin, "q\n")
		s.stdin.Close()

		select {
		case <-s.done:
		case <-time.After(s.stopTimeout):
			s.logger.Warn("ffmpeg did not stop in time, killing", zap.Duration("timeout", s.stopTimeout))
			s.cmd.Process.Kill()
			<-s.done
		}

		data, err := os.ReadFile(s.outputPath)
		if err != nil || len(data) == 0 {
			stopErr = classifyFailure(s.stderr.String(), s.waitErr)
			return
		}
		payload = NewPayload("recording.wav", data)
	})

	if !ran {
		return nil, apperrors.ErrNotRecording
	}
	return payload, stopErr
}

// Abort kills ffmpeg and discards the recording.
func (s *ffmpegStream) Abort() {
	s.once.Do(func() {
		s.stdin.Close()
		s.cmd.Process.Kill()
		<-s.done
		os.RemoveAll(s.dir)
	})
}

// classifyFailure maps ffmpeg's stderr to the capture error taxonomy.
func classifyFailure(stderr string, waitErr error) error {
	msg := strings.TrimSpace(stderr)
	lower := strings.ToLower(msg)

	switch {
	case strings.Contains(lower, "permission denied"), strings.Contains(lower, "not authorized"):
		return apperrors.Wrap(apperrors.ErrPermissionDenied, msg)
	case strings.Contains(lower, "no such file or directory"),
		strings.Contains(lower, "no such device"),
		strings.Contains(lower, "cannot open"),
		strings.Contains(lower, "could not find"),
		strings.Contains(lower, "unknown input format"),
		strings.Contains(lower, "input/output error"):
		return apperrors.Wrap(apperrors.ErrDeviceNotFound, msg)
	}

	if msg == "" && waitErr != nil {
		msg = waitErr.Error()
	}
	if msg == "" {
		msg = "empty recording"
	}
	return fmt.Errorf("ffmpeg recording failed: %s", msg)
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
