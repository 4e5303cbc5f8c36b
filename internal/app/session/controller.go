// Package session drives one transcription session: capture a transcript,
// optionally clean it, and show either version.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"transcribe-mate/internal/app/audio"
	"transcribe-mate/internal/app/capture"
	apperrors "transcribe-mate/internal/app/errors"
)

const (
	// NoTranscriptMessage is shown when cleaning is requested without text
	NoTranscriptMessage = "No transcript to clean"
	// CleanFailedMessage is shown when the cleaning request fails
	CleanFailedMessage = "Failed to clean transcript"
)

// ErrSuperseded is returned for a result that arrived after a newer capture
var ErrSuperseded = apperrors.New("result superseded by a newer capture")

// Backend is the remote side of a session
type Backend interface {
	capture.Transcriber
	Clean(ctx context.Context, text, instruction string) (string, error)
	SystemPrompt(ctx context.Context) (string, error)
}

// Listener receives every state transition. Listeners run while the
// controller holds its lock and must not call back into it.
type Listener func(State)

// Controller owns the session state. All transitions go through it; network
// calls run outside its lock and their results are applied only while their
// generation is current.
type Controller struct {
	backend Backend
	device  audio.Capture
	logger  *zap.Logger

	mu            sync.Mutex
	state         State
	generation    uint64
	recording     *capture.Recording
	cancelClean   context.CancelFunc
	defaultPrompt string

	listeners map[int]Listener
	nextID    int
}

// NewController creates a session. device may be nil when recording is not
// available.
func NewController(backend Backend, device audio.Capture, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		backend:   backend,
		device:    device,
		logger:    logger.With(zap.String("session_id", uuid.New().String())),
		state:     State{Kind: Idle},
		listeners: make(map[int]Listener),
	}
}

// Subscribe registers l and returns a function removing it
func (c *Controller) Subscribe(l Listener) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	c.listeners[id] = l
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// Snapshot returns the current state
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Status returns the derived session flags
func (c *Controller) Status() Status {
	return c.Snapshot().Status()
}

// Recording reports whether the microphone is open
func (c *Controller) Recording() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recording != nil
}

// DefaultPrompt returns the instruction fetched by LoadSystemPrompt
func (c *Controller) DefaultPrompt() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.defaultPrompt
}

// Paste loads text as the transcript. Whitespace-only text is rejected
// without changing state.
func (c *Controller) Paste(ctx context.Context, text string) error {
	src, err := capture.NewPaste(text)
	if err != nil {
		return err
	}
	_, err = c.run(ctx, src)
	return err
}

// UploadFile submits an audio file for transcription
func (c *Controller) UploadFile(ctx context.Context, path string) error {
	_, err := c.run(ctx, capture.NewFile(path))
	return err
}

// StartRecording opens the microphone. ctx bounds the whole recording.
func (c *Controller) StartRecording(ctx context.Context) error {
	if c.device == nil {
		return apperrors.Wrap(apperrors.ErrDeviceNotFound, "recording is not available")
	}

	rec := capture.NewRecording(c.device)
	gen, err := c.beginCapture(func() { c.recording = rec })
	if err != nil {
		return err
	}

	if err := rec.Start(ctx); err != nil {
		c.mu.Lock()
		if c.recording == rec {
			c.recording = nil
		}
		c.mu.Unlock()
		c.finishCapture(gen, capture.KindRecording, "", err)
		return err
	}
	c.logger.Info("Recording started", zap.Uint64("generation", gen))
	return nil
}

// StopRecording closes the microphone and transcribes what was recorded
func (c *Controller) StopRecording(ctx context.Context) error {
	c.mu.Lock()
	rec := c.recording
	gen := c.generation
	if c.state.Kind != Capturing || rec == nil {
		c.mu.Unlock()
		return apperrors.ErrNotRecording
	}
	c.recording = nil
	c.notify()
	c.mu.Unlock()

	text, err := capture.Resolve(ctx, rec, c.backend)
	c.finishCapture(gen, capture.KindRecording, text, err)
	return err
}

// Clean asks the backend to clean the current transcript. A blank
// instruction leaves the backend's default in effect.
func (c *Controller) Clean(ctx context.Context, instruction string) error {
	c.mu.Lock()
	switch c.state.Kind {
	case Capturing, Cleaning:
		c.mu.Unlock()
		return apperrors.ErrBusy
	}

	transcript := c.state.Transcript
	if strings.TrimSpace(transcript) == "" {
		c.setState(State{Kind: Error, Transcript: transcript, Err: NoTranscriptMessage, Generation: c.generation})
		c.mu.Unlock()
		return apperrors.Validation(NoTranscriptMessage)
	}

	gen := c.generation
	cleanCtx, cancel := context.WithCancel(ctx)
	c.cancelClean = cancel
	c.setState(State{Kind: Cleaning, Transcript: transcript, Generation: gen})
	c.mu.Unlock()

	cleaned, err := c.backend.Clean(cleanCtx, transcript, instruction)
	cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation || c.state.Kind != Cleaning {
		c.logger.Debug("Discarding stale cleaning result",
			zap.Uint64("generation", gen),
			zap.Uint64("current_generation", c.generation),
		)
		return ErrSuperseded
	}
	c.cancelClean = nil

	if err != nil {
		c.logger.Warn("Cleaning failed", zap.Uint64("generation", gen), zap.Error(err))
		c.setState(State{
			Kind:       Error,
			Transcript: transcript,
			Err:        apperrors.UserMessage(err, CleanFailedMessage),
			Generation: gen,
		})
		return err
	}

	c.setState(State{Kind: Ready, Transcript: transcript, Cleaned: cleaned, Generation: gen})
	return nil
}

// LoadSystemPrompt fetches the backend's default instruction. Failures are
// logged and yield an empty prompt.
func (c *Controller) LoadSystemPrompt(ctx context.Context) string {
	prompt, err := c.backend.SystemPrompt(ctx)
	if err != nil {
		c.logger.Warn("Failed to load system prompt", zap.Error(err))
		return ""
	}

	c.mu.Lock()
	c.defaultPrompt = prompt
	c.mu.Unlock()
	return prompt
}

// Close releases the microphone and cancels an in-flight cleaning
func (c *Controller) Close() {
	c.mu.Lock()
	rec := c.recording
	c.recording = nil
	if c.cancelClean != nil {
		c.cancelClean()
		c.cancelClean = nil
	}
	c.mu.Unlock()

	if rec != nil {
		rec.Abort()
	}
}

func (c *Controller) run(ctx context.Context, src capture.Source) (string, error) {
	gen, err := c.beginCapture(nil)
	if err != nil {
		return "", err
	}
	text, err := capture.Resolve(ctx, src, c.backend)
	c.finishCapture(gen, src.Kind(), text, err)
	return text, err
}

// beginCapture enters Capturing, dropping the cleaned version and any error.
// An in-flight cleaning is cancelled. locked runs under the lock.
func (c *Controller) beginCapture(locked func()) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Kind == Capturing {
		return 0, apperrors.ErrBusy
	}
	if c.cancelClean != nil {
		c.cancelClean()
		c.cancelClean = nil
	}
	if locked != nil {
		locked()
	}

	c.generation++
	c.setState(State{Kind: Capturing, Transcript: c.state.Transcript, Generation: c.generation})
	return c.generation, nil
}

// finishCapture applies a capture outcome. Failures are diagnostics only:
// the previous transcript stays in place.
func (c *Controller) finishCapture(gen uint64, kind capture.Kind, text string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		c.logger.Debug("Discarding stale capture result", zap.Uint64("generation", gen))
		return
	}

	if err != nil {
		c.logger.Warn("Capture failed",
			zap.String("source", string(kind)),
			zap.Uint64("generation", gen),
			zap.Error(err),
		)
		text = c.state.Transcript
	} else {
		c.logger.Info("Transcript captured",
			zap.String("source", string(kind)),
			zap.Uint64("generation", gen),
			zap.Int("chars", len(text)),
		)
	}

	if text == "" {
		c.setState(State{Kind: Idle, Generation: gen})
		return
	}
	c.setState(State{Kind: Ready, Transcript: text, Generation: gen})
}

// setState must be called with c.mu held
func (c *Controller) setState(s State) {
	c.state = s
	c.notify()
}

func (c *Controller) notify() {
	for _, l := range c.listeners {
		l(c.state)
	}
}
