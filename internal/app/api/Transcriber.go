package api

import "context"

// Transcriber defines a transcription interface for converting audio files to text.
type Transcriber interface {
	Transcript(ctx context.Context, inputFilePath string) (string, error)
}

// Cleaner rewrites a raw transcript into polished text following
// systemPrompt.
type Cleaner interface {
	Clean(ctx context.Context, text, systemPrompt string) (string, error)
}
