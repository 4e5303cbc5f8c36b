package services

import (
	"context"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"transcribe-mate/internal/api/errors"
	"transcribe-mate/internal/api/v1/dto"
	"transcribe-mate/internal/app/api"
	"transcribe-mate/internal/app/util/files"
)

// TranscriptionServiceImpl implements TranscriptionService
type TranscriptionServiceImpl struct {
	transcriber api.Transcriber
	recorder    Recorder
	logger      *zap.Logger
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(transcriber api.Transcriber, recorder Recorder, logger *zap.Logger) TranscriptionService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TranscriptionServiceImpl{
		transcriber: transcriber,
		recorder:    recorder,
		logger:      logger,
	}
}

// Transcribe stores the upload in a temp file named after the upload's
// extension, transcribes it and removes the file.
func (s *TranscriptionServiceImpl) Transcribe(ctx context.Context, audio io.Reader, filename string) (*dto.TranscribeResponse, error) {
	path, cleanup, err := files.WriteTempUpload(audio, filename)
	if err != nil {
		s.logger.Error("Failed to store upload", zap.Error(err))
		return nil, errors.NewInternalError("Failed to store uploaded audio")
	}
	defer cleanup()

	start := time.Now()
	text, err := s.transcriber.Transcript(ctx, path)
	if err != nil {
		s.recorder.RecordTranscription("error")
		s.logger.Error("Transcription error",
			zap.String("filename", filename),
			zap.Error(err),
		)
		return nil, errors.NewOperationError("Transcription", err)
	}

	text = strings.TrimSpace(text)
	s.recorder.RecordTranscription("success")
	s.logger.Info("Transcribed upload",
		zap.String("filename", filename),
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return &dto.TranscribeResponse{Success: true, Text: text}, nil
}
