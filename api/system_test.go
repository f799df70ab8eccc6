package api_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/newwork/workforce/api"
)

func TestHealthHandler(t *testing.T) {
	h := &api.SystemHandler{}
	w := httptest.NewRecorder()
	h.HealthHandler(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got map[string]string
	decodeJSON(t, w, &got)
	if got["status"] != "ok" {
		t.Fatalf("body = %v", got)
	}
}

func TestVersionHandler(t *testing.T) {
	h := &api.SystemHandler{}
	w := httptest.NewRecorder()
	h.VersionHandler("1.2.3", "2026-01-01")(w, httptest.NewRequest(http.MethodGet, "/version", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var got map[string]string
	decodeJSON(t, w, &got)
	if got["version"] != "1.2.3" {
		t.Fatalf("body = %v", got)
	}
}
