package test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"transcribe-mate/internal/api/errors"
	"transcribe-mate/internal/api/v1/dto"
	"transcribe-mate/internal/api/v1/handlers"
	"transcribe-mate/internal/app/testutil"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *testutil.MockServices) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	mockServices := testutil.NewMockServices(t)
	return router, mockServices
}

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if field != "" {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	} else {
		require.NoError(t, w.WriteField("note", "no audio here"))
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestTranscriptionHandler_Transcribe(t *testing.T) {
	tests := []struct {
		name           string
		field          string
		filename       string
		data           []byte
		maxUploadMB    int64
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:     "successful transcription",
			field:    handlers.AudioField,
			filename: "recording.webm",
			data:     []byte("webm-bytes"),
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Transcribe", mock.Anything, "webm-bytes", "recording.webm").
					Return(&dto.TranscribeResponse{Success: true, Text: "hello world"}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, true, body["success"])
				assert.Equal(t, "hello world", body["text"])
			},
		},
		{
			name:           "missing audio field",
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "validation", body["kind"])
				details := body["details"].(map[string]interface{})
				assert.Equal(t, "is required", details["audio"])
			},
		},
		{
			name:           "upload over the limit",
			field:          handlers.AudioField,
			filename:       "big.wav",
			data:           bytes.Repeat([]byte("a"), 2<<20),
			maxUploadMB:    1,
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusRequestEntityTooLarge,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "payload_too_large", body["kind"])
			},
		},
		{
			name:     "transcription failure",
			field:    handlers.AudioField,
			filename: "memo.m4a",
			data:     []byte("m4a"),
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Transcribe", mock.Anything, "m4a", "memo.m4a").
					Return(nil, errors.NewOperationError("Transcription", assert.AnError))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "internal", body["kind"])
				assert.True(t, strings.HasPrefix(body["detail"].(string), "Transcription failed: "))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t)
			tt.setupMocks(mockServices)

			handler := handlers.NewTranscriptionHandler(mockServices.TranscriptionService, tt.maxUploadMB)
			router.POST("/api/transcribe", handler.Transcribe)

			body, contentType := multipartBody(t, tt.field, tt.filename, tt.data)
			req := httptest.NewRequest("POST", "/api/transcribe", body)
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var responseBody map[string]interface{}
			err := json.Unmarshal(rec.Body.Bytes(), &responseBody)
			require.NoError(t, err)

			tt.validateBody(t, responseBody)
			mockServices.TranscriptionService.AssertExpectations(t)
		})
	}
}
