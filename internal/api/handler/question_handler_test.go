package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stackit-hq/stackit-api/internal/core/ports"
)

type stubQuestionService struct {
	submitFn func(ctx context.Context, in ports.SubmitQuestionInput) (string, error)
}

func (s *stubQuestionService) Submit(ctx context.Context, in ports.SubmitQuestionInput) (string, error) {
	return s.submitFn(ctx, in)
}

type stubFeedService struct {
	loadFn func(ctx context.Context, in ports.FeedInput) (*ports.FeedPage, error)
}

func (s *stubFeedService) Load(ctx context.Context, in ports.FeedInput) (*ports.FeedPage, error) {
	return s.loadFn(ctx, in)
}

func multipartQuestion(t *testing.T, title, description string, tags []string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("title", title); err != nil {
		t.Fatal(err)
	}
	if err := w.WriteField("description", description); err != nil {
		t.Fatal(err)
	}
	for _, tag := range tags {
		if err := w.WriteField("tags", tag); err != nil {
			t.Fatal(err)
		}
	}
	for name, content := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+name+`"`)
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return &body, w.FormDataContentType()
}

func TestCreateQuestionHandler(t *testing.T) {
	var got ports.SubmitQuestionInput
	composer := &stubQuestionService{
		submitFn: func(ctx context.Context, in ports.SubmitQuestionInput) (string, error) {
			got = in
			// Drain file readers while the multipart form is still open.
			for _, f := range in.Files {
				if _, err := io.ReadAll(f.Content); err != nil {
					t.Errorf("read %s: %v", f.Name, err)
				}
			}
			return "q1", nil
		},
	}
	h := NewQuestionHandler(composer, &stubFeedService{}, nil)

	body, contentType := multipartQuestion(t,
		"How do I join two tables?",
		"<p>Long enough description of the problem.</p>",
		[]string{"sql", "joins"},
		map[string]string{"schema.png": "png-bytes"},
	)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/questions", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "u1")
	c.Set("username", "asker")

	if err := h.Create(c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}

	if got.Title != "How do I join two tables?" {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.TagNames) != 2 || got.TagNames[0] != "sql" || got.TagNames[1] != "joins" {
		t.Errorf("tags = %v", got.TagNames)
	}
	if len(got.Files) != 1 || got.Files[0].Name != "schema.png" {
		t.Fatalf("files = %+v", got.Files)
	}
	if got.Files[0].ContentType != "image/png" {
		t.Errorf("content type = %q", got.Files[0].ContentType)
	}
	if got.Username != "asker" {
		t.Errorf("username = %q", got.Username)
	}

	var resp struct {
		QuestionID string `json:"question_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.QuestionID != "q1" {
		t.Errorf("question_id = %q", resp.QuestionID)
	}
}

func TestCreateQuestionHandlerRequiresClaims(t *testing.T) {
	h := NewQuestionHandler(&stubQuestionService{}, &stubFeedService{}, nil)

	body, contentType := multipartQuestion(t, "t", "d", nil, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/questions", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()

	err := h.Create(e.NewContext(req, rec))
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("Create() error = %v, want 401 HTTPError", err)
	}
}

func TestListQuestionsHandlerPassesQueryParams(t *testing.T) {
	var got ports.FeedInput
	feed := &stubFeedService{
		loadFn: func(ctx context.Context, in ports.FeedInput) (*ports.FeedPage, error) {
			got = in
			return &ports.FeedPage{Items: []ports.QuestionSummary{}, Page: in.Page, PageSize: ports.FeedPageSize}, nil
		},
	}
	h := NewQuestionHandler(&stubQuestionService{}, feed, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/questions?sort=popular&q=sql&tag=go&page=3", nil)
	rec := httptest.NewRecorder()

	if err := h.List(e.NewContext(req, rec)); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if got.Sort != "popular" || got.Search != "sql" || got.Tag != "go" || got.Page != 3 {
		t.Errorf("input = %+v", got)
	}
}
