package testutil

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockTranscriber is a mock implementation of the api.Transcriber interface.
// It records the content of every file it was asked to transcribe, since
// the files are usually removed once the call returns.
type MockTranscriber struct {
	mock.Mock

	mu       sync.Mutex
	contents [][]byte
	paths    []string
}

func NewMockTranscriber(t *testing.T) *MockTranscriber {
	m := &MockTranscriber{}
	m.Test(t)
	return m
}

// Transcript implements the api.Transcriber interface
func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	data, _ := os.ReadFile(inputFilePath)
	m.mu.Lock()
	m.contents = append(m.contents, data)
	m.paths = append(m.paths, inputFilePath)
	m.mu.Unlock()

	args := m.Called(ctx, inputFilePath)
	return args.String(0), args.Error(1)
}

// Contents returns the bytes of each transcribed file
func (m *MockTranscriber) Contents() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.contents...)
}

// Paths returns the paths passed to Transcript
func (m *MockTranscriber) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

// MockCleaner is a mock implementation of the api.Cleaner interface
type MockCleaner struct {
	mock.Mock
}

func NewMockCleaner(t *testing.T) *MockCleaner {
	m := &MockCleaner{}
	m.Test(t)
	return m
}

func (m *MockCleaner) Clean(ctx context.Context, text, systemPrompt string) (string, error) {
	args := m.Called(ctx, text, systemPrompt)
	return args.String(0), args.Error(1)
}
