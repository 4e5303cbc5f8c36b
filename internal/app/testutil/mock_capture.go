package testutil

import (
	"context"
	"sync"

	"transcribe-mate/internal/app/audio"
	apperrors "transcribe-mate/internal/app/errors"
)

// FakeCapture is an in-memory microphone. Each started stream yields Data
// on Stop.
type FakeCapture struct {
	mu sync.Mutex

	Data     []byte
	Name     string
	StartErr error
	StopErr  error

	Starts  int
	Aborted int
	Active  bool
}

// NewFakeCapture creates a fake microphone returning data when stopped
func NewFakeCapture(data []byte) *FakeCapture {
	return &FakeCapture{Data: data, Name: "recording.wav"}
}

// Start implements audio.Capture
func (f *FakeCapture) Start(ctx context.Context) (audio.Stream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Starts++
	if f.StartErr != nil {
		return nil, f.StartErr
	}
	f.Active = true
	return &fakeStream{owner: f}, nil
}

// IsActive reports whether the fake device is held by a stream
func (f *FakeCapture) IsActive() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Active
}

type fakeStream struct {
	owner *FakeCapture
	done  bool
}

func (s *fakeStream) Stop() (*audio.Payload, error) {
	f := s.owner
	f.mu.Lock()
	defer f.mu.Unlock()

	if s.done {
		return nil, apperrors.ErrNotRecording
	}
	s.done = true
	f.Active = false
	if f.StopErr != nil {
		return nil, f.StopErr
	}
	return audio.NewPayload(f.Name, f.Data), nil
}

func (s *fakeStream) Abort() {
	f := s.owner
	f.mu.Lock()
	defer f.mu.Unlock()

	if !s.done {
		s.done = true
		f.Active = false
		f.Aborted++
	}
}
