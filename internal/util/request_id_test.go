package util

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWithRequestIDKeepsCallerID(t *testing.T) {
	var inContext string
	h := WithRequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		inContext = RequestIDFromRequest(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/users/me/status", nil)
	req.Header.Set("X-Request-Id", "caller-supplied-id")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if inContext != "caller-supplied-id" {
		t.Fatalf("context id = %q, want the caller's", inContext)
	}
	if got := rec.Header().Get("X-Request-Id"); got != "caller-supplied-id" {
		t.Fatalf("response id = %q, want the caller's", got)
	}
}

func TestWithRequestIDGeneratesDistinctIDs(t *testing.T) {
	h := WithRequestID(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))

	ids := make(map[string]bool)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		id := rec.Header().Get("X-Request-Id")
		if id == "" {
			t.Fatal("expected a generated request id")
		}
		ids[id] = true
	}
	if len(ids) != 3 {
		t.Fatalf("generated ids should be distinct, got %d unique of 3", len(ids))
	}
}

func TestWithRequestIDStoresLoggerInContext(t *testing.T) {
	var sawLogger bool
	h := WithRequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		sawLogger = LoggerFromContext(r.Context()) != nil
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !sawLogger {
		t.Fatal("expected a request-scoped logger in context")
	}
}

func TestRequestIDFromEmptyContext(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := RequestIDFromRequest(req); got != "" {
		t.Fatalf("request without middleware should have no id, got %q", got)
	}
}
