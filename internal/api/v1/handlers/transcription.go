package handlers

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"transcribe-mate/internal/api/errors"
	"transcribe-mate/internal/api/middleware"
	"transcribe-mate/internal/api/v1/services"
)

// AudioField is the multipart field carrying the upload
const AudioField = "audio"

// DefaultMaxUploadMB bounds an upload when no limit is configured
const DefaultMaxUploadMB int64 = 100

// TranscriptionHandler handles audio upload endpoints
type TranscriptionHandler struct {
	service     services.TranscriptionService
	maxUploadMB int64
}

// NewTranscriptionHandler creates a new transcription handler
func NewTranscriptionHandler(service services.TranscriptionService, maxUploadMB int64) *TranscriptionHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = DefaultMaxUploadMB
	}
	return &TranscriptionHandler{
		service:     service,
		maxUploadMB: maxUploadMB,
	}
}

// Transcribe handles POST /api/transcribe
// Accepts a multipart form with the audio in the "audio" field.
func (h *TranscriptionHandler) Transcribe(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadMB<<20)

	file, header, err := c.Request.FormFile(AudioField)
	if err != nil {
		if isTooLarge(err) {
			middleware.HandleError(c, errors.NewPayloadTooLargeError(h.maxUploadMB))
			return
		}
		middleware.HandleError(c, errors.NewValidationError("Validation failed", map[string]string{
			AudioField: "is required",
		}))
		return
	}
	defer file.Close()

	response, err := h.service.Transcribe(c.Request.Context(), file, header.Filename)
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func isTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return true
	}
	// multipart does not always keep the original error in the chain
	return strings.Contains(err.Error(), "request body too large")
}
