package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/stackit-hq/stackit-api/internal/core/ports"
)

// QuestionHandler handles question submission, the feed, and the detail view.
type QuestionHandler struct {
	composer ports.QuestionService
	feed     ports.FeedService
	detail   ports.DetailService
}

func NewQuestionHandler(composer ports.QuestionService, feed ports.FeedService, detail ports.DetailService) *QuestionHandler {
	return &QuestionHandler{composer: composer, feed: feed, detail: detail}
}

type createQuestionResponse struct {
	QuestionID string `json:"question_id"`
}

// Create handles POST /v1/questions. The payload is multipart form data:
// title, description (HTML), repeated tags fields, and zero or more files.
//
// @Summary      Submit a new question
// @Tags         questions
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        title        formData  string  true   "Question title (min 10 chars)"
// @Param        description  formData  string  true   "Rich-text body as HTML"
// @Param        tags         formData  []string true  "1-5 tag names"
// @Param        files        formData  file    false  "Attachments (max 10 MB each)"
// @Success      201  {object}  createQuestionResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /v1/questions [post]
func (h *QuestionHandler) Create(c echo.Context) error {
	_, username, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid multipart payload"})
	}

	title := c.FormValue("title")
	description := c.FormValue("description")
	tags := form.Value["tags"]

	files := make([]ports.UploadFile, 0, len(form.File["files"]))
	var closers []func() error
	defer func() {
		for _, cl := range closers {
			_ = cl()
		}
	}()

	for _, fh := range form.File["files"] {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "unreadable file " + fh.Filename})
		}
		closers = append(closers, src.Close)
		files = append(files, ports.UploadFile{
			Name:        fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Content:     src,
		})
	}

	id, err := h.composer.Submit(c.Request().Context(), ports.SubmitQuestionInput{
		Title:           title,
		DescriptionHTML: description,
		TagNames:        tags,
		Files:           files,
		Username:        username,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createQuestionResponse{QuestionID: id})
}

// List handles GET /v1/questions — the home feed.
//
// @Summary      Load the question feed
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        sort  query     string  false  "newest | popular | trending | unanswered"
// @Param        q     query     string  false  "Case-insensitive search over title and description"
// @Param        tag   query     string  false  "Exact tag-name filter"
// @Param        page  query     int     false  "1-based page number (page size 10)"
// @Success      200   {object}  ports.FeedPage
// @Router       /v1/questions [get]
func (h *QuestionHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))

	feedPage, err := h.feed.Load(c.Request().Context(), ports.FeedInput{
		Sort:   c.QueryParam("sort"),
		Search: c.QueryParam("q"),
		Tag:    c.QueryParam("tag"),
		Page:   page,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, feedPage)
}

// Get handles GET /v1/questions/:id — the full thread view.
//
// @Summary      Get a question with its answers and comments
// @Tags         questions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Question id"
// @Success      200  {object}  ports.QuestionDetail
// @Failure      404  {object}  map[string]string
// @Router       /v1/questions/{id} [get]
func (h *QuestionHandler) Get(c echo.Context) error {
	detail, err := h.detail.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}
