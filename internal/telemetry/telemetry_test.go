package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BruksfildServices01/barber-booking/internal/config"
)

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), &config.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("noop shutdown failed: %v", err)
	}
}

func TestHandler_DisabledReturnsSameHandler(t *testing.T) {
	called := false
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	wrapped := Handler(&config.Config{}, h)
	w := httptest.NewRecorder()
	wrapped.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if !called || w.Code != http.StatusNoContent {
		t.Fatalf("expected passthrough, got %d", w.Code)
	}
}

func TestHandler_Enabled(t *testing.T) {
	cfg := &config.Config{OtelEnabled: true, OtelServiceName: "barber-booking"}
	h := Handler(cfg, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/services", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}
