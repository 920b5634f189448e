package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-interviewer/internal/models"
	"ai-interviewer/internal/services"
)

type stubStorage struct {
	path    string
	err     error
	removed []string
}

func (s *stubStorage) SaveResume(file *multipart.FileHeader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.path, nil
}

func (s *stubStorage) Remove(filePath string) {
	s.removed = append(s.removed, filePath)
}

func (s *stubStorage) EnsureUploadDir() error {
	return nil
}

type stubPDFParser struct {
	text string
	err  error
}

func (s *stubPDFParser) ExtractText(filePath string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func newInterviewApp(storage services.StorageService, pdfParser services.PDFParserService, model services.ModelClient) *fiber.App {
	app := fiber.New()
	handler := NewInterviewHandler(
		storage,
		pdfParser,
		services.NewPromptBuilder(),
		services.NewDifficultyTable(),
		model,
		1<<20,
		time.Second,
	)
	app.Post("/api/v1/interview-questions", handler.HandleGenerateQuestions)
	return app
}

func postResume(t *testing.T, app *fiber.App, difficulty, jobDescription string, withFile bool) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if withFile {
		fw, err := w.CreateFormFile("pdf_file", "resume.pdf")
		require.NoError(t, err)
		_, err = fw.Write([]byte("%PDF-1.4 stub"))
		require.NoError(t, err)
	}
	if difficulty != "" {
		require.NoError(t, w.WriteField("difficulty", difficulty))
	}
	if jobDescription != "" {
		require.NoError(t, w.WriteField("job_description", jobDescription))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/interview-questions", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestHandleGenerateQuestions_Success(t *testing.T) {
	storage := &stubStorage{path: "/tmp/resume_test.pdf"}
	parser := &stubPDFParser{text: "Five years of Go experience at a fintech."}
	stub := &stubModelClient{reply: "1. Tell me about yourself\n2. Describe a recent project\n3. Why fintech?"}
	app := newInterviewApp(storage, parser, stub)

	resp := postResume(t, app, "1", "Backend engineer role", true)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var decoded models.InterviewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))

	assert.Equal(t, []string{
		"Tell me about yourself",
		"Describe a recent project",
		"Why fintech?",
	}, decoded.GeneratedQuestions)
	assert.Equal(t, "stub-model", decoded.Model)
	assert.Equal(t, 1, decoded.Difficulty)

	// Level 1 drives both the question count and the sampling profile.
	assert.Contains(t, stub.lastPrompt, "Generate 10 interview questions")
	assert.Contains(t, stub.lastPrompt, "Backend engineer role")
	assert.Equal(t, services.NewDifficultyTable().Lookup(1), stub.lastParams)

	// The scratch file is cleaned up after the request.
	assert.Equal(t, []string{"/tmp/resume_test.pdf"}, storage.removed)
}

func TestHandleGenerateQuestions_CapsAtTenQuestions(t *testing.T) {
	var reply bytes.Buffer
	for i := 1; i <= 12; i++ {
		fmt.Fprintf(&reply, "%d. Question %d\n", i, i)
	}

	storage := &stubStorage{path: "/tmp/resume_test.pdf"}
	parser := &stubPDFParser{text: "resume"}
	stub := &stubModelClient{reply: reply.String()}
	app := newInterviewApp(storage, parser, stub)

	resp := postResume(t, app, "3", "", true)
	defer resp.Body.Close()

	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var decoded models.InterviewResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	assert.Len(t, decoded.GeneratedQuestions, 10)
}

func TestHandleGenerateQuestions_BadRequests(t *testing.T) {
	tests := []struct {
		name       string
		difficulty string
		withFile   bool
	}{
		{name: "missing file", difficulty: "2", withFile: false},
		{name: "missing difficulty", difficulty: "", withFile: true},
		{name: "difficulty not a number", difficulty: "hard", withFile: true},
		{name: "difficulty below range", difficulty: "0", withFile: true},
		{name: "difficulty above range", difficulty: "4", withFile: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubModelClient{}
			app := newInterviewApp(&stubStorage{path: "/tmp/x.pdf"}, &stubPDFParser{text: "resume"}, stub)

			resp := postResume(t, app, tt.difficulty, "", tt.withFile)
			defer resp.Body.Close()

			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, 0, stub.calls)
		})
	}
}

func TestHandleGenerateQuestions_ExtractionFailures(t *testing.T) {
	tests := []struct {
		name       string
		storage    *stubStorage
		parser     *stubPDFParser
		wantStatus int
	}{
		{
			name:       "non-pdf upload",
			storage:    &stubStorage{err: fmt.Errorf("%w: unexpected file extension", models.ErrInvalidDocument)},
			parser:     &stubPDFParser{},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "corrupt pdf",
			storage:    &stubStorage{path: "/tmp/x.pdf"},
			parser:     &stubPDFParser{err: fmt.Errorf("%w: bad xref", models.ErrInvalidDocument)},
			wantStatus: fiber.StatusBadRequest,
		},
		{
			name:       "empty resume text",
			storage:    &stubStorage{path: "/tmp/x.pdf"},
			parser:     &stubPDFParser{err: fmt.Errorf("%w: no text content found in PDF", models.ErrEmptyContent)},
			wantStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubModelClient{}
			app := newInterviewApp(tt.storage, tt.parser, stub)

			resp := postResume(t, app, "2", "", true)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, 0, stub.calls)
		})
	}
}

func TestHandleGenerateQuestions_ModelUnavailable(t *testing.T) {
	stub := &stubModelClient{err: fmt.Errorf("%w: timeout", models.ErrServiceUnavailable)}
	app := newInterviewApp(&stubStorage{path: "/tmp/x.pdf"}, &stubPDFParser{text: "resume"}, stub)

	resp := postResume(t, app, "2", "", true)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestHandleGenerateQuestions_NoQuestionsInReply(t *testing.T) {
	stub := &stubModelClient{reply: "I cannot help with that."}
	app := newInterviewApp(&stubStorage{path: "/tmp/x.pdf"}, &stubPDFParser{text: "resume"}, stub)

	resp := postResume(t, app, "2", "", true)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
