package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/future-self/backend/internal/config"
	"github.com/future-self/backend/internal/service/session"
)

func setupRouter(t *testing.T) (*chi.Mux, *session.MemoryStore, config.UploadConfig) {
	t.Helper()
	dir := t.TempDir()
	sessions := session.NewMemoryStore(time.Hour)
	cfg := config.UploadConfig{
		PhotoDir:    filepath.Join(dir, "uploads"),
		ResumeDir:   filepath.Join(dir, "resumes"),
		MaxSizeByte: 10 << 20,
	}
	handler := New(sessions, cfg)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, sessions, cfg
}

func postPhoto(t *testing.T, r http.Handler, filename string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("photo", filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write([]byte("fake image bytes")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestUploadPhotoCreatesSession(t *testing.T) {
	r, sessions, cfg := setupRouter(t)

	resp := postPhoto(t, r, "me.png")

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Success   bool   `json:"success"`
		SessionID string `json:"sessionId"`
		PhotoURL  string `json:"photoUrl"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !body.Success || body.SessionID == "" || body.PhotoURL == "" {
		t.Fatalf("incomplete response: %+v", body)
	}

	sess, err := sessions.Get(context.Background(), body.SessionID)
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if sess.PhotoPath == "" {
		t.Fatal("expected photo path on session")
	}
	if _, err := os.Stat(sess.PhotoPath); err != nil {
		t.Fatalf("stored photo missing: %v", err)
	}
	if filepath.Dir(sess.PhotoPath) != cfg.PhotoDir {
		t.Fatalf("photo stored outside configured dir: %s", sess.PhotoPath)
	}
}

func TestUploadPhotoRejectsUnsupportedType(t *testing.T) {
	r, _, _ := setupRouter(t)

	resp := postPhoto(t, r, "malware.exe")

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestUploadPhotoMissingFile(t *testing.T) {
	r, _, _ := setupRouter(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAgePhotoRecordsAvatar(t *testing.T) {
	r, sessions, _ := setupRouter(t)
	sess, _ := sessions.Create(context.Background())
	sess.PhotoURL = "/static/uploads/original.png"
	if err := sessions.Update(context.Background(), sess); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	payload, _ := json.Marshal(map[string]string{
		"sessionId": sess.ID,
		"career":    "doctor",
	})
	req := httptest.NewRequest(http.MethodPost, "/age-photo", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		AgedPhotoURL string `json:"agedPhotoUrl"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.AgedPhotoURL != "/static/uploads/original.png" {
		t.Fatalf("expected pass-through url, got %q", body.AgedPhotoURL)
	}

	got, _ := sessions.Get(context.Background(), sess.ID)
	if got.AgedAvatars["doctor"] != "/static/uploads/original.png" {
		t.Fatalf("expected aged avatar recorded, got %+v", got.AgedAvatars)
	}
}

func TestAgePhotoUnknownSession(t *testing.T) {
	r, _, _ := setupRouter(t)

	payload, _ := json.Marshal(map[string]string{
		"sessionId": "missing",
		"career":    "doctor",
	})
	req := httptest.NewRequest(http.MethodPost, "/age-photo", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"../../etc/passwd", "passwd"},
		{"my photo (1).png", "my_photo_1_.png"},
	}
	for _, tc := range cases {
		if got := sanitizeFilename(tc.in); got != tc.want {
			t.Fatalf("sanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
