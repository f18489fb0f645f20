package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
	"github.com/stackit-hq/stackit-api/internal/core/ports"
)

// AnswerHandler handles the thread mutations: votes, accepts, answers,
// comments. All of them persist to the document store.
type AnswerHandler struct {
	detail ports.DetailService
}

func NewAnswerHandler(detail ports.DetailService) *AnswerHandler {
	return &AnswerHandler{detail: detail}
}

type voteRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type voteResponse struct {
	Votes int `json:"votes"`
}

type contentRequest struct {
	Content string `json:"content" validate:"required"`
}

// VoteQuestion handles POST /v1/questions/:id/votes.
//
// @Summary      Vote on a question
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Question id"
// @Param        body  body      voteRequest  true  "up or down"
// @Success      200   {object}  voteResponse
// @Router       /v1/questions/{id}/votes [post]
func (h *AnswerHandler) VoteQuestion(c echo.Context) error {
	return h.vote(c, domain.VoteQuestion)
}

// VoteAnswer handles POST /v1/answers/:id/votes.
//
// @Summary      Vote on an answer
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Answer id"
// @Param        body  body      voteRequest  true  "up or down"
// @Success      200   {object}  voteResponse
// @Router       /v1/answers/{id}/votes [post]
func (h *AnswerHandler) VoteAnswer(c echo.Context) error {
	return h.vote(c, domain.VoteAnswer)
}

func (h *AnswerHandler) vote(c echo.Context, target domain.VoteTarget) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req voteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	votes, err := h.detail.Vote(c.Request().Context(), ports.VoteInput{
		Target:    target,
		ID:        c.Param("id"),
		Direction: domain.VoteDirection(req.Direction),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, voteResponse{Votes: votes})
}

// Accept handles POST /v1/answers/:id/accept.
//
// @Summary      Accept an answer
// @Tags         answers
// @Security     BearerAuth
// @Param        id  path  string  true  "Answer id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /v1/answers/{id}/accept [post]
func (h *AnswerHandler) Accept(c echo.Context) error {
	if _, _, err := ctxIdentity(c); err != nil {
		return err
	}

	if err := h.detail.AcceptAnswer(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AddAnswer handles POST /v1/questions/:id/answers.
//
// @Summary      Post an answer
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Question id"
// @Param        body  body      contentRequest  true  "Answer content"
// @Success      201   {object}  domain.Answer
// @Failure      404   {object}  map[string]string
// @Router       /v1/questions/{id}/answers [post]
func (h *AnswerHandler) AddAnswer(c echo.Context) error {
	_, username, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	answer, err := h.detail.AddAnswer(c.Request().Context(), c.Param("id"), username, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, answer)
}

// AddComment handles POST /v1/answers/:id/comments.
//
// @Summary      Comment on an answer
// @Tags         answers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Answer id"
// @Param        body  body      contentRequest  true  "Comment content"
// @Success      201   {object}  domain.Comment
// @Failure      404   {object}  map[string]string
// @Router       /v1/answers/{id}/comments [post]
func (h *AnswerHandler) AddComment(c echo.Context) error {
	_, username, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req contentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.detail.AddComment(c.Request().Context(), c.Param("id"), username, req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, comment)
}
