package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"
	"transcribe-mate/internal/api/v1/dto"
)

// MockServices contains all mock services for testing
type MockServices struct {
	TranscriptionService *MockTranscriptionService
	CleaningService      *MockCleaningService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		TranscriptionService: NewMockTranscriptionService(t),
		CleaningService:      NewMockCleaningService(t),
	}
}

// MockTranscriptionService is a mock implementation of TranscriptionService
type MockTranscriptionService struct {
	mock.Mock
}

func NewMockTranscriptionService(t *testing.T) *MockTranscriptionService {
	m := &MockTranscriptionService{}
	m.Test(t)
	return m
}

// Transcribe reads the upload so expectations can match on its content
func (m *MockTranscriptionService) Transcribe(ctx context.Context, audio io.Reader, filename string) (*dto.TranscribeResponse, error) {
	data, _ := io.ReadAll(audio)
	args := m.Called(ctx, string(data), filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.TranscribeResponse), args.Error(1)
}

// MockCleaningService is a mock implementation of CleaningService
type MockCleaningService struct {
	mock.Mock
}

func NewMockCleaningService(t *testing.T) *MockCleaningService {
	m := &MockCleaningService{}
	m.Test(t)
	return m
}

func (m *MockCleaningService) Clean(ctx context.Context, req *dto.CleanRequest) (*dto.CleanResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CleanResponse), args.Error(1)
}

func (m *MockCleaningService) SystemPrompt(ctx context.Context) (*dto.SystemPromptResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SystemPromptResponse), args.Error(1)
}
