package resume

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/future-self/backend/internal/config"
	careerModel "github.com/future-self/backend/internal/model/career"
	"github.com/future-self/backend/internal/model/resume"
	resumeService "github.com/future-self/backend/internal/service/resume"
	"github.com/future-self/backend/internal/service/session"
)

const fixtureResume = `John Smith
john.smith@example.com

Software Engineer with 6 years of experience

SKILLS
Python, JavaScript, SQL, React, Git, Docker, AWS, Agile

EXPERIENCE
Software Engineer at Acme Corp (2018 - 2022)

EDUCATION
Bachelor of Science in Computer Science, MIT, 2016
`

func setupRouter(t *testing.T) (*chi.Mux, *session.MemoryStore) {
	t.Helper()
	dir := t.TempDir()
	sessions := session.NewMemoryStore(time.Hour)
	careers := careerModel.NewMemoryStore(careerModel.Seed())
	analyzer := resumeService.NewAnalyzer(careers)
	cfg := config.UploadConfig{
		PhotoDir:    filepath.Join(dir, "uploads"),
		ResumeDir:   filepath.Join(dir, "resumes"),
		MaxSizeByte: 10 << 20,
	}
	handler := New(sessions, careers, analyzer, nil, cfg)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, sessions
}

func postResume(t *testing.T, r http.Handler, filename, content string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("resume", filename)
	if err != nil {
		t.Fatalf("create form file failed: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file failed: %v", err)
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field failed: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/analyze-resume", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestAnalyzeResumeBuildsPersona(t *testing.T) {
	r, _ := setupRouter(t)

	resp := postResume(t, r, "resume.txt", fixtureResume, nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var body struct {
		Success   bool   `json:"success"`
		SessionID string `json:"sessionId"`
		Persona   struct {
			Name       string `json:"name"`
			CareerPath string `json:"careerPath"`
		} `json:"persona"`
		DetectedCareer string                        `json:"detectedCareer"`
		CareerMatches  map[string]resume.CareerMatch `json:"careerMatches"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if !body.Success || body.SessionID == "" {
		t.Fatalf("incomplete response: %+v", body)
	}
	if body.Persona.Name == "" {
		t.Fatal("expected persona with a name")
	}
	if body.Persona.CareerPath == "" {
		t.Fatal("expected persona with a career path")
	}
	if body.DetectedCareer != "software_engineer" {
		t.Fatalf("expected software_engineer detected, got %q", body.DetectedCareer)
	}
	if len(body.CareerMatches) == 0 {
		t.Fatal("expected career matches for the catalog")
	}
}

func TestAnalyzeResumeStoresOnSession(t *testing.T) {
	r, sessions := setupRouter(t)

	resp := postResume(t, r, "resume.txt", fixtureResume, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	sess, err := sessions.Get(context.Background(), body.SessionID)
	if err != nil {
		t.Fatalf("session lookup failed: %v", err)
	}
	if sess.Resume == nil || sess.Persona == nil {
		t.Fatalf("expected analysis and persona on session, got %+v", sess)
	}
	if sess.Career == "" {
		t.Fatal("expected career bound to session")
	}
}

func TestAnalyzeResumeIntoExistingSession(t *testing.T) {
	r, sessions := setupRouter(t)
	sess, _ := sessions.Create(context.Background())

	resp := postResume(t, r, "resume.txt", fixtureResume, map[string]string{
		"sessionId": sess.ID,
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		SessionID string `json:"sessionId"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.SessionID != sess.ID {
		t.Fatalf("expected existing session %s, got %s", sess.ID, body.SessionID)
	}
}

func TestAnalyzeResumeUnknownSession(t *testing.T) {
	r, _ := setupRouter(t)

	resp := postResume(t, r, "resume.txt", fixtureResume, map[string]string{
		"sessionId": "missing",
	})

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestAnalyzeResumeCareerGoalWins(t *testing.T) {
	r, _ := setupRouter(t)

	resp := postResume(t, r, "resume.txt", fixtureResume, map[string]string{
		"careerGoal": "teacher",
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body struct {
		Persona struct {
			CareerPath string `json:"careerPath"`
		} `json:"persona"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body.Persona.CareerPath != "teacher" {
		t.Fatalf("expected teacher career path, got %q", body.Persona.CareerPath)
	}
}

func TestAnalyzeResumeRejectsUnsupportedType(t *testing.T) {
	r, _ := setupRouter(t)

	resp := postResume(t, r, "resume.exe", "binary junk", nil)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAnalyzeResumeMissingFile(t *testing.T) {
	r, _ := setupRouter(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/analyze-resume", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}
