package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"transcribe-mate/internal/api/middleware"
	"transcribe-mate/internal/api/v1/dto"
	"transcribe-mate/internal/api/v1/services"
)

// CleaningHandler handles transcript cleaning endpoints
type CleaningHandler struct {
	service services.CleaningService
}

// NewCleaningHandler creates a new cleaning handler
func NewCleaningHandler(service services.CleaningService) *CleaningHandler {
	return &CleaningHandler{
		service: service,
	}
}

// Clean handles POST /api/clean
func (h *CleaningHandler) Clean(c *gin.Context) {
	var body dto.CleanBody

	if err := middleware.ValidateRequest(c, &body); err != nil {
		middleware.HandleError(c, err)
		return
	}

	response, err := h.service.Clean(c.Request.Context(), body.Request())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SystemPrompt handles GET /api/system-prompt
func (h *CleaningHandler) SystemPrompt(c *gin.Context) {
	response, err := h.service.SystemPrompt(c.Request.Context())
	if err != nil {
		middleware.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
