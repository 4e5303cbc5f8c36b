package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"transcribe-mate/internal/app/audio"
	apperrors "transcribe-mate/internal/app/errors"
)

const (
	transcribePath   = "/api/transcribe"
	cleanPath        = "/api/clean"
	systemPromptPath = "/api/system-prompt"

	// AudioField is the multipart field the backend reads the upload from
	AudioField = "audio"

	// NoTranscriptMessage is reported when cleaning is requested without text
	NoTranscriptMessage = "No transcript to clean"
)

// Timeouts bounds each backend operation
type Timeouts struct {
	Transcribe time.Duration
	Clean      time.Duration
	Prompt     time.Duration
}

// Config represents configuration for the backend client
type Config struct {
	BaseURL  string
	Timeouts Timeouts
	// HTTPClient overrides the default client, mainly for tests
	HTTPClient *http.Client
}

// Client talks to the transcription and cleaning backend
type Client struct {
	baseURL  string
	timeouts Timeouts
	http     *http.Client
}

type transcribeResponse struct {
	Success *bool  `json:"success,omitempty"`
	Text    string `json:"text"`
}

type cleanRequest struct {
	Text         string `json:"text"`
	SystemPrompt string `json:"system_prompt,omitempty"`
}

type cleanResponse struct {
	Cleaned string `json:"cleaned"`
}

type systemPromptResponse struct {
	DefaultPrompt string `json:"default_prompt"`
}

// New creates a backend client
func New(config Config) *Client {
	if config.Timeouts.Transcribe == 0 {
		config.Timeouts.Transcribe = 300 * time.Second
	}
	if config.Timeouts.Clean == 0 {
		config.Timeouts.Clean = 120 * time.Second
	}
	if config.Timeouts.Prompt == 0 {
		config.Timeouts.Prompt = 10 * time.Second
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:  strings.TrimRight(config.BaseURL, "/"),
		timeouts: config.Timeouts,
		http:     httpClient,
	}
}

// BaseURL returns the backend address requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// TranscribeAudio uploads one audio payload and returns the transcript
func (c *Client) TranscribeAudio(ctx context.Context, payload *audio.Payload) (string, error) {
	if payload == nil || payload.Body == nil {
		return "", apperrors.Validation("no audio to transcribe")
	}

	body, contentType, err := createMultipartForm(payload)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to create multipart form")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Transcribe)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+transcribePath, body)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to create HTTP request")
	}
	req.Header.Set("Content-Type", contentType)

	var result transcribeResponse
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	if result.Success != nil && !*result.Success {
		return "", apperrors.Wrap(apperrors.ErrBackendFailure, "transcription was not successful")
	}
	return result.Text, nil
}

// Clean sends text for cleaning. A blank instruction leaves the backend's
// default prompt in effect. Blank text fails locally without a request.
func (c *Client) Clean(ctx context.Context, text, instruction string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", apperrors.Validation(NoTranscriptMessage)
	}

	payload := cleanRequest{Text: text}
	if strings.TrimSpace(instruction) != "" {
		payload.SystemPrompt = instruction
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to marshal clean request")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Clean)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+cleanPath, bytes.NewReader(data))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to create HTTP request")
	}
	req.Header.Set("Content-Type", "application/json")

	var result cleanResponse
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	return result.Cleaned, nil
}

// SystemPrompt fetches the backend's default cleaning instruction
func (c *Client) SystemPrompt(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Prompt)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+systemPromptPath, nil)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to create HTTP request")
	}

	var result systemPromptResponse
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	return result.DefaultPrompt, nil
}

// do executes req and decodes a 2xx JSON body into out.
func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrNetworkFailure, "%s %s: %v", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrNetworkFailure, "failed to read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperrors.Wrapf(apperrors.ErrBackendFailure, "%s %s returned status %d: %s",
			req.Method, req.URL.Path, resp.StatusCode, truncate(string(data), 200))
	}

	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrapf(apperrors.ErrBackendFailure, "failed to parse response: %v", err)
	}
	return nil
}

// createMultipartForm builds the upload body with the payload's name and type
func createMultipartForm(payload *audio.Payload) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	name := payload.Name
	if name == "" {
		name = "recording.webm"
	}
	contentType := payload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		AudioField, escapeQuotes(name)))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %v", err)
	}
	if _, err := io.Copy(part, payload.Body); err != nil {
		return nil, "", fmt.Errorf("failed to copy audio content: %v", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart writer: %v", err)
	}

	return body, writer.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
