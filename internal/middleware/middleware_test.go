package middleware

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-adoption/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestMaxBodySize_RejectsDeclaredOversize(t *testing.T) {
	called := false
	h := MaxBodySize(10)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodPost, "/adopt/x", strings.NewReader(strings.Repeat("a", 11)))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", rr.Code)
	}
	if called {
		t.Fatalf("handler must not run for oversized body")
	}
}

func TestMaxBodySize_CapsUndeclaredBody(t *testing.T) {
	var readErr error
	h := MaxBodySize(10)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	req := httptest.NewRequest(http.MethodPost, "/adopt/x", strings.NewReader(strings.Repeat("a", 50)))
	req.ContentLength = -1
	h.ServeHTTP(httptest.NewRecorder(), req)

	var tooLarge *http.MaxBytesError
	if readErr == nil || !asMaxBytes(readErr, &tooLarge) {
		t.Fatalf("expected MaxBytesError, got %v", readErr)
	}
}

func asMaxBytes(err error, target **http.MaxBytesError) bool {
	e, ok := err.(*http.MaxBytesError)
	if ok {
		*target = e
	}
	return ok
}

func TestRequestLogger_LogsWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.Options{Output: &buf})

	var inner logger.Logger
	h := chimw.RequestID(RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = logger.FromContext(r.Context(), nil)
		w.WriteHeader(http.StatusTeapot)
	})))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if inner == nil || inner == base {
		t.Fatalf("expected request scoped logger in context")
	}
	line := buf.String()
	if !strings.Contains(line, "status=418") || !strings.Contains(line, "path=/health") || !strings.Contains(line, "request_id=") {
		t.Fatalf("unexpected log line %q", line)
	}
}
