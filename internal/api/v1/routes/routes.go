package routes

import (
	"github.com/gin-gonic/gin"
	"transcribe-mate/internal/api/v1/handlers"
	"transcribe-mate/internal/api/v1/services"
)

// RegisterRoutes registers the transcription and cleaning routes
func RegisterRoutes(router *gin.RouterGroup, container *ServiceContainer) {
	transcriptionHandler := handlers.NewTranscriptionHandler(container.TranscriptionService, container.MaxUploadMB)
	router.POST("/transcribe", transcriptionHandler.Transcribe)

	cleaningHandler := handlers.NewCleaningHandler(container.CleaningService)
	router.POST("/clean", cleaningHandler.Clean)
	router.GET("/system-prompt", cleaningHandler.SystemPrompt)
}

// ServiceContainer holds all services needed by handlers
type ServiceContainer struct {
	TranscriptionService services.TranscriptionService
	CleaningService      services.CleaningService
	MaxUploadMB          int64
}
