package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"transcribe-mate/internal/app/audio"
	apperrors "transcribe-mate/internal/app/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *int32) {
	t.Helper()
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return New(Config{BaseURL: server.URL + "/"}), &calls
}

func TestTranscribeAudio(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/transcribe", r.URL.Path)

		file, header, err := r.FormFile("audio")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)

		assert.Equal(t, "memo.webm", header.Filename)
		assert.Equal(t, "audio/webm", header.Header.Get("Content-Type"))
		assert.Equal(t, "fake audio", string(data))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "text": "hello world"})
	})

	payload := audio.NewPayload("memo.webm", []byte("fake audio"))
	payload.ContentType = "audio/webm"

	text, err := c.TranscribeAudio(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
	assert.EqualValues(t, 1, *calls)
}

func TestTranscribeAudio_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"detail":"Transcription failed: boom"}`))
			},
			wantErr: apperrors.ErrBackendFailure,
		},
		{
			name: "undecodable body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<html>"))
			},
			wantErr: apperrors.ErrBackendFailure,
		},
		{
			name: "unsuccessful",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"success":false,"text":""}`))
			},
			wantErr: apperrors.ErrBackendFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, tt.handler)
			_, err := c.TranscribeAudio(context.Background(), audio.NewPayload("a.wav", []byte("x")))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTranscribeAudio_TextOnlyBody(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"hello from backend"}`))
	})

	text, err := c.TranscribeAudio(context.Background(), audio.NewPayload("a.wav", []byte("x")))
	require.NoError(t, err)
	assert.Equal(t, "hello from backend", text)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("  short  ", 10))
	assert.Equal(t, "héll...", truncate("héllo", 4))
	assert.Equal(t, "日本...", truncate("日本語のエラー", 2))

	out := truncate(strings.Repeat("é", 300), 200)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, 203, utf8.RuneCountInString(out))
}

func TestTranscribeAudio_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := New(Config{BaseURL: url})
	_, err := c.TranscribeAudio(context.Background(), audio.NewPayload("a.wav", []byte("x")))
	assert.ErrorIs(t, err, apperrors.ErrNetworkFailure)
}

func TestClean(t *testing.T) {
	tests := []struct {
		name        string
		instruction string
		wantPrompt  bool
	}{
		{name: "default prompt", instruction: "", wantPrompt: false},
		{name: "blank instruction", instruction: "   ", wantPrompt: false},
		{name: "custom instruction", instruction: "Make it formal", wantPrompt: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/clean", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var body map[string]interface{}
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "hello   world", body["text"])
				prompt, ok := body["system_prompt"]
				assert.Equal(t, tt.wantPrompt, ok)
				if tt.wantPrompt {
					assert.Equal(t, tt.instruction, prompt)
				}

				w.Write([]byte(`{"cleaned":"Hello, world."}`))
			})

			cleaned, err := c.Clean(context.Background(), "hello   world", tt.instruction)
			require.NoError(t, err)
			assert.Equal(t, "Hello, world.", cleaned)
		})
	}
}

func TestClean_EmptyTextMakesNoRequest(t *testing.T) {
	c, calls := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"cleaned":"x"}`))
	})

	for _, text := range []string{"", "  \n\t"} {
		_, err := c.Clean(context.Background(), text, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		assert.Equal(t, NoTranscriptMessage, apperrors.UserMessage(err, ""))
	}
	assert.EqualValues(t, 0, *calls)
}

func TestClean_BackendFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Clean(context.Background(), "text", "")
	assert.ErrorIs(t, err, apperrors.ErrBackendFailure)
	assert.Contains(t, err.Error(), "502")
}

func TestClean_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	c := New(Config{BaseURL: server.URL, Timeouts: Timeouts{Clean: 50 * time.Millisecond}})
	_, err := c.Clean(context.Background(), "text", "")
	assert.ErrorIs(t, err, apperrors.ErrNetworkFailure)
}

func TestSystemPrompt(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/system-prompt", r.URL.Path)
		w.Write([]byte(`{"default_prompt":"Clean this up."}`))
	})

	prompt, err := c.SystemPrompt(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Clean this up.", prompt)
	assert.Equal(t, c.baseURL, c.BaseURL())
}
