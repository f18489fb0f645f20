package ports

import (
	"context"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
)

// QuestionRepository persists question documents.
type QuestionRepository interface {
	// Create inserts the question and returns its store-assigned id.
	Create(ctx context.Context, q *domain.Question) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Question, error)
	// List returns every question. The feed is assembled entirely in memory;
	// this is an accepted small-scale simplification, not server-side
	// pagination.
	List(ctx context.Context) ([]*domain.Question, error)
	// IncrementVotes applies delta to the vote counter and returns the new
	// value.
	IncrementVotes(ctx context.Context, id string, delta int) (int, error)
	IncrementViews(ctx context.Context, id string) error
}

// AnswerRepository persists answer documents, children of questions.
type AnswerRepository interface {
	Create(ctx context.Context, a *domain.Answer) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Answer, error)
	ListByQuestion(ctx context.Context, questionID string) ([]*domain.Answer, error)
	// CountsByQuestion returns answer counts keyed by question id, used by
	// the feed's popular and unanswered sorts.
	CountsByQuestion(ctx context.Context) (map[string]int, error)
	IncrementVotes(ctx context.Context, id string, delta int) (int, error)
	// ClearAccepted unsets is_accepted on every answer of the question.
	ClearAccepted(ctx context.Context, questionID string) error
	// MarkAccepted sets is_accepted on the named answer.
	MarkAccepted(ctx context.Context, id string) error
}

// CommentRepository persists comment documents, children of answers.
type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) (string, error)
	ListByAnswer(ctx context.Context, answerID string) ([]*domain.Comment, error)
}
