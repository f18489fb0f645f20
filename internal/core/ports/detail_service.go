package ports

import (
	"context"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
)

// CommentView is a comment as rendered in the detail flow.
type CommentView struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Username string `json:"username"`
	TimeAgo  string `json:"time_ago"`
}

// AnswerView is an answer with its eagerly loaded comments.
type AnswerView struct {
	ID         string        `json:"id"`
	Content    string        `json:"content"`
	Username   string        `json:"username"`
	Votes      int           `json:"votes"`
	IsAccepted bool          `json:"is_accepted"`
	TimeAgo    string        `json:"time_ago"`
	Comments   []CommentView `json:"comments"`
}

// QuestionDetail is the full thread view. Answer and comment counts are the
// lengths of the fetched arrays, not stored counters.
type QuestionDetail struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Tags        []string     `json:"tags"`
	FileURLs    []string     `json:"file_urls"`
	Username    string       `json:"username"`
	Votes       int          `json:"votes"`
	Views       int          `json:"views"`
	TimeAgo     string       `json:"time_ago"`
	Answers     []AnswerView `json:"answers"`
}

// VoteInput names the record a vote applies to.
type VoteInput struct {
	Target    domain.VoteTarget
	ID        string
	Direction domain.VoteDirection
}

// DetailService serves one question thread and its durable mutations.
type DetailService interface {
	// Get eagerly loads the question, resolved tag names, all answers, and
	// every answer's comments. A missing question returns
	// ErrQuestionNotFound.
	Get(ctx context.Context, questionID string) (*QuestionDetail, error)
	// Vote adjusts the stored vote count by one and returns the new value.
	// Voting is deliberately not idempotent and keeps no per-user ledger.
	Vote(ctx context.Context, in VoteInput) (int, error)
	// AcceptAnswer marks exactly the named answer accepted, clearing the
	// flag on every sibling first.
	AcceptAnswer(ctx context.Context, answerID string) error
	AddComment(ctx context.Context, answerID, username, content string) (*domain.Comment, error)
	AddAnswer(ctx context.Context, questionID, username, content string) (*domain.Answer, error)
}
