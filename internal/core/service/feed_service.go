package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
	"github.com/stackit-hq/stackit-api/internal/core/ports"
)

// FeedService assembles the home feed. Every load fetches the full tag and
// question collections and filters, sorts, and paginates in memory; the
// target scale is small enough that this stays cheap.
type FeedService struct {
	questions ports.QuestionRepository
	tags      ports.TagRepository
	answers   ports.AnswerRepository
	logger    zerolog.Logger
}

func NewFeedService(
	questions ports.QuestionRepository,
	tags ports.TagRepository,
	answers ports.AnswerRepository,
	logger zerolog.Logger,
) *FeedService {
	return &FeedService{questions: questions, tags: tags, answers: answers, logger: logger}
}

func (s *FeedService) Load(ctx context.Context, in ports.FeedInput) (*ports.FeedPage, error) {
	tagNames, err := s.tagLookup(ctx)
	if err != nil {
		return nil, err
	}

	questions, err := s.questions.List(ctx)
	if err != nil {
		return nil, err
	}

	answerCounts, err := s.answers.CountsByQuestion(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	summaries := make([]ports.QuestionSummary, 0, len(questions))
	for _, q := range questions {
		summaries = append(summaries, ports.QuestionSummary{
			ID:          q.ID,
			Title:       q.Title,
			Description: q.Description,
			Tags:        resolveTagNames(q.TagIDs, tagNames),
			Answers:     answerCounts[q.ID],
			Votes:       q.Votes,
			Views:       q.Views,
			Username:    q.Username,
			TimeAgo:     domain.TimeAgo(q.CreatedAt, now),
		})
	}

	summaries = filterFeed(summaries, in.Search, in.Tag)
	sortFeed(summaries, questions, in.Sort)

	return paginate(summaries, in.Page), nil
}

func (s *FeedService) tagLookup(ctx context.Context) (map[string]string, error) {
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, err
	}
	lookup := make(map[string]string, len(tags))
	for _, t := range tags {
		lookup[t.ID] = t.Name
	}
	return lookup, nil
}

// resolveTagNames maps ids through the lookup, falling back to the raw id
// string for ids with no tag document. Degradation, not an error.
func resolveTagNames(ids []string, lookup map[string]string) []string {
	names := make([]string, len(ids))
	for i, id := range ids {
		if name, ok := lookup[id]; ok {
			names[i] = name
		} else {
			names[i] = id
		}
	}
	return names
}

func filterFeed(items []ports.QuestionSummary, search, tag string) []ports.QuestionSummary {
	if search == "" && tag == "" {
		return items
	}

	needle := strings.ToLower(search)
	out := items[:0]
	for _, it := range items {
		if needle != "" {
			haystack := strings.ToLower(it.Title + " " + it.Description)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		if tag != "" && !containsTag(it.Tags, tag) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func containsTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}

// sortFeed orders the summaries in place. popular weighs engagement
// (views + answers*10 + votes*5), trending is raw views, unanswered floats
// questions with the fewest answers, newest is the default.
func sortFeed(items []ports.QuestionSummary, questions []*domain.Question, key string) {
	createdAt := make(map[string]time.Time, len(questions))
	for _, q := range questions {
		createdAt[q.ID] = q.CreatedAt
	}

	switch key {
	case ports.SortPopular:
		sort.SliceStable(items, func(i, j int) bool {
			return popularity(items[i]) > popularity(items[j])
		})
	case ports.SortTrending:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Views > items[j].Views
		})
	case ports.SortUnanswered:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Answers < items[j].Answers
		})
	default: // ports.SortNewest
		sort.SliceStable(items, func(i, j int) bool {
			return createdAt[items[i].ID].After(createdAt[items[j].ID])
		})
	}
}

func popularity(s ports.QuestionSummary) int {
	return s.Views + s.Answers*10 + s.Votes*5
}

func paginate(items []ports.QuestionSummary, page int) *ports.FeedPage {
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + ports.FeedPageSize - 1) / ports.FeedPageSize

	start := (page - 1) * ports.FeedPageSize
	if start > total {
		start = total
	}
	end := start + ports.FeedPageSize
	if end > total {
		end = total
	}

	return &ports.FeedPage{
		Items:      items[start:end],
		Total:      total,
		Page:       page,
		PageSize:   ports.FeedPageSize,
		TotalPages: totalPages,
	}
}
