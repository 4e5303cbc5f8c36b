package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"transcribe-mate/internal/api/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS(DefaultCORSConfig("http://localhost:3000/")))
	router.POST("/api/clean", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantAllowed string
	}{
		{"allowed origin", http.MethodPost, "http://localhost:3000", http.StatusOK, "http://localhost:3000"},
		{"other origin", http.MethodPost, "http://evil.example", http.StatusOK, ""},
		{"allowed preflight", http.MethodOptions, "http://localhost:3000", http.StatusNoContent, "http://localhost:3000"},
		{"rejected preflight", http.MethodOptions, "http://evil.example", http.StatusForbidden, ""},
		{"no origin", http.MethodPost, "", http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/clean", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowed, rec.Header().Get("Access-Control-Allow-Origin"))
			if tt.wantAllowed != "" {
				assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
				assert.Equal(t, "3600", rec.Header().Get("Access-Control-Max-Age"))
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get("X-Request-ID")
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, rec.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestErrorHandler(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(RequestID(), ErrorHandler(zap.New(core)))
	router.GET("/api", func(c *gin.Context) {
		HandleError(c, errors.NewPayloadTooLargeError(1))
	})
	router.GET("/plain", func(c *gin.Context) {
		HandleError(c, fmt.Errorf("database exploded"))
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api", nil))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "payload_too_large", body["kind"])
	assert.NotEmpty(t, body["request_id"])

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plain", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "database exploded")
	assert.Equal(t, 1, logs.FilterMessage("Internal server error").Len())
}

type sampleRequest struct {
	Text string `json:"text" binding:"required"`
}

func TestValidateRequest(t *testing.T) {
	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var req sampleRequest
		if err := ValidateRequest(c, &req); err != nil {
			HandleError(c, err)
			return
		}
		c.String(http.StatusOK, req.Text)
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantDetail string
	}{
		{"valid", `{"text":"hi"}`, http.StatusOK, ""},
		{"missing field", `{}`, http.StatusUnprocessableEntity, "is required"},
		{"malformed", `{"text":`, http.StatusUnprocessableEntity, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantDetail != "" {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				details := body["details"].(map[string]interface{})
				assert.Equal(t, tt.wantDetail, details["text"])
			}
		})
	}
}

func TestStructuredLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(RequestID(), StructuredLogging(zap.New(core)))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/system-prompt", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/system-prompt", nil))

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "/api/system-prompt", entries[0].ContextMap()["path"])
	assert.NotEmpty(t, entries[0].ContextMap()["request_id"])
}

func TestMetrics(t *testing.T) {
	m := NewMetrics()
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/system-prompt", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", m.Handler())

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/system-prompt", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	m.RecordTranscription("error")
	m.RecordCleaning("fallback")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("/api/system-prompt", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues("unmatched", "GET", "404")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transcriptions.WithLabelValues("error")))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "tmate_cleanings_total"))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.RecordCleaning("success") })
}
