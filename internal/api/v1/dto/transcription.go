package dto

// TranscribeResponse is returned by POST /api/transcribe
type TranscribeResponse struct {
	Success bool   `json:"success"`
	Text    string `json:"text"`
}

// CleanRequest is the body of POST /api/clean. A blank SystemPrompt selects
// the server's default prompt.
type CleanRequest struct {
	Text         string `json:"text"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

// CleanBody binds POST /api/clean. The text key is required but may hold an
// empty string.
type CleanBody struct {
	Text         *string `json:"text" binding:"required"`
	SystemPrompt string  `json:"system_prompt"`
}

// Request converts the bound body into a CleanRequest
func (b *CleanBody) Request() *CleanRequest {
	return &CleanRequest{Text: *b.Text, SystemPrompt: b.SystemPrompt}
}

// CleanResponse is returned by POST /api/clean
type CleanResponse struct {
	Cleaned string `json:"cleaned"`
}

// SystemPromptResponse is returned by GET /api/system-prompt
type SystemPromptResponse struct {
	DefaultPrompt string `json:"default_prompt"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status      string `json:"status"`
	Timestamp   int64  `json:"timestamp"`
	Transcriber string `json:"transcriber"`
	Cleaner     string `json:"cleaner"`
}
