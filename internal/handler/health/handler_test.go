package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/future-self/backend/internal/service/session"
)

func TestHealthReportsStatusAndStats(t *testing.T) {
	sessions := session.NewMemoryStore(time.Hour)
	r := chi.NewRouter()
	New(sessions, false).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Status    string        `json:"status"`
		AIEnabled bool          `json:"aiEnabled"`
		Sessions  session.Stats `json:"sessions"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Status != "healthy" {
		t.Fatalf("expected healthy, got %q", body.Status)
	}
	if body.AIEnabled {
		t.Fatal("expected aiEnabled false")
	}
	if body.Sessions.Sessions != 0 {
		t.Fatalf("expected empty store, got %+v", body.Sessions)
	}
}
