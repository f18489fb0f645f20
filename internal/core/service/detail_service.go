package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackit-hq/stackit-api/internal/api/metrics"
	"github.com/stackit-hq/stackit-api/internal/core/domain"
	"github.com/stackit-hq/stackit-api/internal/core/ports"
)

// ViewRecorder accepts asynchronous view-count increments (the dispatcher).
type ViewRecorder interface {
	Record(questionID string)
}

// DetailService serves one question thread and persists its mutations.
type DetailService struct {
	questions ports.QuestionRepository
	answers   ports.AnswerRepository
	comments  ports.CommentRepository
	tags      ports.TagRepository
	views     ViewRecorder
	logger    zerolog.Logger
}

func NewDetailService(
	questions ports.QuestionRepository,
	answers ports.AnswerRepository,
	comments ports.CommentRepository,
	tags ports.TagRepository,
	views ViewRecorder,
	logger zerolog.Logger,
) *DetailService {
	return &DetailService{
		questions: questions,
		answers:   answers,
		comments:  comments,
		tags:      tags,
		views:     views,
		logger:    logger,
	}
}

// Get eagerly loads the full thread: question, tag names, answers, and every
// answer's comments. No lazy expansion; counts are array lengths.
func (s *DetailService) Get(ctx context.Context, questionID string) (*ports.QuestionDetail, error) {
	question, err := s.questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	tagNames, err := s.tags.NamesByID(ctx, question.TagIDs)
	if err != nil {
		return nil, err
	}

	answers, err := s.answers.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	answerViews := make([]ports.AnswerView, 0, len(answers))
	for _, a := range answers {
		comments, err := s.comments.ListByAnswer(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		commentViews := make([]ports.CommentView, 0, len(comments))
		for _, c := range comments {
			commentViews = append(commentViews, ports.CommentView{
				ID:       c.ID,
				Content:  c.Content,
				Username: c.Username,
				TimeAgo:  domain.TimeAgo(c.CreatedAt, now),
			})
		}
		answerViews = append(answerViews, ports.AnswerView{
			ID:         a.ID,
			Content:    a.Content,
			Username:   a.Username,
			Votes:      a.Votes,
			IsAccepted: a.IsAccepted,
			TimeAgo:    domain.TimeAgo(a.CreatedAt, now),
			Comments:   commentViews,
		})
	}

	s.views.Record(questionID)

	return &ports.QuestionDetail{
		ID:          question.ID,
		Title:       question.Title,
		Description: question.Description,
		Tags:        resolveTagNames(question.TagIDs, tagNames),
		FileURLs:    question.FileURLs,
		Username:    question.Username,
		Votes:       question.Votes,
		Views:       question.Views,
		TimeAgo:     domain.TimeAgo(question.CreatedAt, now),
		Answers:     answerViews,
	}, nil
}

// Vote applies a ±1 increment to the stored counter and returns the new
// value. Repeated votes by the same user stack; there is no vote ledger.
func (s *DetailService) Vote(ctx context.Context, in ports.VoteInput) (int, error) {
	if !in.Direction.Valid() {
		return 0, domain.Invalid("direction", "direction must be up or down")
	}

	var votes int
	var err error
	switch in.Target {
	case domain.VoteQuestion:
		votes, err = s.questions.IncrementVotes(ctx, in.ID, in.Direction.Delta())
	case domain.VoteAnswer:
		votes, err = s.answers.IncrementVotes(ctx, in.ID, in.Direction.Delta())
	default:
		return 0, domain.Invalid("target", "target must be question or answer")
	}
	if err != nil {
		return 0, err
	}

	metrics.VotesCastTotal.WithLabelValues(string(in.Target), string(in.Direction)).Inc()
	return votes, nil
}

// AcceptAnswer marks exactly the named answer accepted. Siblings are cleared
// first, then the flag is set; the two writes are not transactional, but the
// sequence converges on at most one accepted answer per question.
func (s *DetailService) AcceptAnswer(ctx context.Context, answerID string) error {
	answer, err := s.answers.FindByID(ctx, answerID)
	if err != nil {
		return err
	}

	if err := s.answers.ClearAccepted(ctx, answer.QuestionID); err != nil {
		return err
	}
	if err := s.answers.MarkAccepted(ctx, answerID); err != nil {
		return err
	}

	s.logger.Info().
		Str("question_id", answer.QuestionID).
		Str("answer_id", answerID).
		Msg("answer accepted")
	return nil
}

func (s *DetailService) AddComment(ctx context.Context, answerID, username, content string) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.Invalid("content", "comment cannot be empty")
	}

	if _, err := s.answers.FindByID(ctx, answerID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		AnswerID:  answerID,
		Content:   content,
		Username:  username,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.comments.Create(ctx, comment)
	if err != nil {
		return nil, err
	}
	comment.ID = id

	metrics.CommentsPostedTotal.Inc()
	return comment, nil
}

func (s *DetailService) AddAnswer(ctx context.Context, questionID, username, content string) (*domain.Answer, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.Invalid("content", "answer cannot be empty")
	}

	if _, err := s.questions.FindByID(ctx, questionID); err != nil {
		return nil, err
	}

	answer := &domain.Answer{
		QuestionID: questionID,
		Content:    content,
		Username:   username,
		Votes:      0,
		IsAccepted: false,
		CreatedAt:  time.Now().UTC(),
	}
	id, err := s.answers.Create(ctx, answer)
	if err != nil {
		return nil, err
	}
	answer.ID = id

	metrics.AnswersPostedTotal.Inc()
	s.logger.Info().Str("question_id", questionID).Str("answer_id", id).Msg("answer posted")
	return answer, nil
}
