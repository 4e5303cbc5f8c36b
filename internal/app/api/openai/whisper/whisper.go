package whisper

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client *openai.Client
	model  string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, model string) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, model: model}
}

// Transcript uses the OpenAI API for remote transcription.
func (rt *RemoteTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	req := openai.AudioRequest{
		Model:    rt.model,
		FilePath: inputFilePath,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", fmt.Errorf("createTranscription failed: %s", err)
	}

	return resp.Text, nil
}
