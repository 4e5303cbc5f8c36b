package capture

import (
	"context"
	"sync"

	"transcribe-mate/internal/app/audio"
	apperrors "transcribe-mate/internal/app/errors"
)

// Recording captures from the microphone between Start and Capture. Nothing
// is submitted until the stream has been stopped.
type Recording struct {
	device audio.Capture

	mu     sync.Mutex
	stream audio.Stream
}

func NewRecording(device audio.Capture) *Recording {
	return &Recording{device: device}
}

func (r *Recording) Kind() Kind { return KindRecording }

// Start acquires the input device
func (r *Recording) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stream != nil {
		return apperrors.Wrap(apperrors.ErrBusy, "already recording")
	}
	stream, err := r.device.Start(ctx)
	if err != nil {
		return err
	}
	r.stream = stream
	return nil
}

// Active reports whether a stream is open
func (r *Recording) Active() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stream != nil
}

// Capture stops the stream, releases the device and returns the assembled
// recording.
func (r *Recording) Capture(ctx context.Context) (Result, error) {
	r.mu.Lock()
	stream := r.stream
	r.stream = nil
	r.mu.Unlock()

	if stream == nil {
		return Result{}, apperrors.ErrNotRecording
	}
	payload, err := stream.Stop()
	if err != nil {
		return Result{}, err
	}
	return Result{Payload: payload}, nil
}

// Abort discards an open stream, if any
func (r *Recording) Abort() {
	r.mu.Lock()
	stream := r.stream
	r.stream = nil
	r.mu.Unlock()

	if stream != nil {
		stream.Abort()
	}
}
