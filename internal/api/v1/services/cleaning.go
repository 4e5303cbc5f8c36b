package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"transcribe-mate/internal/api/v1/dto"
	"transcribe-mate/internal/app/api"
	"transcribe-mate/internal/app/prompt"
)

// CleaningServiceImpl implements CleaningService
type CleaningServiceImpl struct {
	cleaner       api.Cleaner
	defaultPrompt string
	recorder      Recorder
	logger        *zap.Logger
}

// NewCleaningService creates a cleaning service using defaultPrompt when a
// request carries none.
func NewCleaningService(cleaner api.Cleaner, defaultPrompt string, recorder Recorder, logger *zap.Logger) CleaningService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CleaningServiceImpl{
		cleaner:       cleaner,
		defaultPrompt: defaultPrompt,
		recorder:      recorder,
		logger:        logger,
	}
}

// Clean runs the model over the text. Blank text, a model failure or an
// empty reply all return the original text unchanged.
func (s *CleaningServiceImpl) Clean(ctx context.Context, req *dto.CleanRequest) (*dto.CleanResponse, error) {
	if strings.TrimSpace(req.Text) == "" {
		s.recorder.RecordCleaning("skipped")
		return &dto.CleanResponse{Cleaned: req.Text}, nil
	}

	systemPrompt := prompt.Resolve(req.SystemPrompt, s.defaultPrompt)

	cleaned, err := s.cleaner.Clean(ctx, req.Text, systemPrompt)
	if err != nil {
		s.recorder.RecordCleaning("fallback")
		s.logger.Warn("LLM error, returning original text", zap.Error(err))
		return &dto.CleanResponse{Cleaned: req.Text}, nil
	}
	if strings.TrimSpace(cleaned) == "" {
		s.recorder.RecordCleaning("fallback")
		s.logger.Warn("LLM returned no text, returning original text")
		return &dto.CleanResponse{Cleaned: req.Text}, nil
	}

	s.recorder.RecordCleaning("success")
	return &dto.CleanResponse{Cleaned: cleaned}, nil
}

// SystemPrompt returns the default cleaning instruction
func (s *CleaningServiceImpl) SystemPrompt(ctx context.Context) (*dto.SystemPromptResponse, error) {
	return &dto.SystemPromptResponse{DefaultPrompt: s.defaultPrompt}, nil
}
