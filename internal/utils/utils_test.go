package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestGenerateIDs(t *testing.T) {
	correlationID := GenerateCorrelationID()
	if correlationID == "" {
		t.Error("Expected non-empty correlation ID")
	}

	requestID := GenerateRequestID()
	if requestID == "" {
		t.Error("Expected non-empty request ID")
	}

	// Check that IDs are different
	if correlationID == requestID {
		t.Error("Correlation ID and request ID should be different")
	}
}

func TestLoggerFromContextAddsIDs(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() { SetLogOutput(nopWriter{}) })

	ctx := WithCorrelationID(context.Background(), "corr-1")
	ctx = WithRequestID(ctx, "req_1")

	LogInfo(ctx, "hello", Fields{"videoId": "dQw4w9WgXcQ"})

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["message"] != "hello" {
		t.Errorf("Expected message field, got %v", entry["message"])
	}
	if entry["correlation_id"] != "corr-1" || entry["request_id"] != "req_1" {
		t.Errorf("Expected correlation and request IDs, got %v", entry)
	}
	if entry["videoId"] != "dQw4w9WgXcQ" {
		t.Errorf("Expected extra field, got %v", entry["videoId"])
	}
}

func TestAppErrorMapping(t *testing.T) {
	testCases := []struct {
		name       string
		err        *AppError
		statusCode int
		code       ErrorCode
	}{
		{"Invalid input", NewInvalidInputError("Video ID is required"), http.StatusBadRequest, ErrorCodeInvalidInput},
		{"Conflict", NewConflictError("exists"), http.StatusConflict, ErrorCodeConflict},
		{"Not found", NewNotFoundError("missing"), http.StatusNotFound, ErrorCodeNotFound},
		{"Upstream", NewUpstreamError("upstream", errors.New("boom")), http.StatusInternalServerError, ErrorCodeUpstreamError},
		{"Database", NewDatabaseError("db", errors.New("boom")), http.StatusInternalServerError, ErrorCodeDatabaseError},
		{"Rate limit", NewRateLimitError(), http.StatusTooManyRequests, ErrorCodeRateLimitExceeded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.StatusCode != tc.statusCode {
				t.Errorf("Expected status %d, got %d", tc.statusCode, tc.err.StatusCode)
			}
			if tc.err.Code != tc.code {
				t.Errorf("Expected code %s, got %s", tc.code, tc.err.Code)
			}
		})
	}
}

func TestAsAppError(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := NewUpstreamError("Error fetching videos", cause)

	got := AsAppError(wrapped, "fallback")
	if got != wrapped {
		t.Fatalf("Expected the same AppError back, got %v", got)
	}
	if !errors.Is(got, cause) {
		t.Error("Expected AppError to unwrap to its cause")
	}
	if got.CauseMessage() != "connection reset" {
		t.Errorf("Unexpected cause message %q", got.CauseMessage())
	}

	plain := AsAppError(cause, "Error adding video")
	if plain.Code != ErrorCodeInternalError || plain.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected internal error, got %+v", plain)
	}
	if plain.Message != "Error adding video" {
		t.Errorf("Expected fallback message, got %q", plain.Message)
	}
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }
