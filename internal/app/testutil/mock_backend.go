package testutil

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"transcribe-mate/internal/app/audio"
)

// MockBackend is a mock of the transcription, cleaning and prompt client
type MockBackend struct {
	mock.Mock

	mu       sync.Mutex
	uploaded [][]byte
}

func NewMockBackend(t *testing.T) *MockBackend {
	m := &MockBackend{}
	m.Test(t)
	return m
}

// TranscribeAudio records the uploaded bytes before dispatching to the mock
func (m *MockBackend) TranscribeAudio(ctx context.Context, payload *audio.Payload) (string, error) {
	data, _ := io.ReadAll(payload.Body)
	m.mu.Lock()
	m.uploaded = append(m.uploaded, data)
	m.mu.Unlock()

	args := m.Called(ctx, payload.Name)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) Clean(ctx context.Context, text, instruction string) (string, error) {
	args := m.Called(ctx, text, instruction)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) SystemPrompt(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// Uploads returns every audio body received, in order
func (m *MockBackend) Uploads() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.uploaded...)
}
