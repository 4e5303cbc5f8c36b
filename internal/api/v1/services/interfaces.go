package services

import (
	"context"
	"io"

	"transcribe-mate/internal/api/v1/dto"
)

// TranscriptionService defines the interface for transcription operations
type TranscriptionService interface {
	Transcribe(ctx context.Context, audio io.Reader, filename string) (*dto.TranscribeResponse, error)
}

// CleaningService defines the interface for cleaning operations
type CleaningService interface {
	Clean(ctx context.Context, req *dto.CleanRequest) (*dto.CleanResponse, error)
	SystemPrompt(ctx context.Context) (*dto.SystemPromptResponse, error)
}

// Recorder counts pipeline outcomes
type Recorder interface {
	RecordTranscription(outcome string)
	RecordCleaning(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordTranscription(string) {}
func (nopRecorder) RecordCleaning(string)      {}
