package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
	"github.com/stackit-hq/stackit-api/internal/core/ports"
)

// seedFeed fills the repos with a fixed scenario:
//
//	q1 "Optimising SQL joins"     tags [sql]     views 50  votes 2  answers 1  (oldest)
//	q2 "Goroutine leak detection" tags [go]      views 200 votes 0  answers 0
//	q3 "Indexing in MongoDB"      tags [mongodb] views 10  votes 8  answers 3  (newest)
func seedFeed(t *testing.T) (*FeedService, *stubQuestionRepo) {
	t.Helper()

	questions := newStubQuestionRepo()
	tags := newStubTagRepo("sql", "go", "mongodb")
	answers := newStubAnswerRepo()

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seed := []struct {
		title string
		tag   string
		views int
		votes int
		age   time.Duration
	}{
		{"Optimising SQL joins", "t1", 50, 2, 0},
		{"Goroutine leak detection", "t2", 200, 0, time.Hour},
		{"Indexing in MongoDB", "t3", 10, 8, 2 * time.Hour},
	}
	ids := make([]string, 0, len(seed))
	for _, s := range seed {
		id, err := questions.Create(context.Background(), &domain.Question{
			Title:       s.title,
			Description: "A longer body describing the problem in detail.",
			TagIDs:      []string{s.tag},
			Username:    "poster",
			Views:       s.views,
			Votes:       s.votes,
			CreatedAt:   base.Add(s.age),
		})
		if err != nil {
			t.Fatalf("seed question: %v", err)
		}
		ids = append(ids, id)
	}

	// q1 gets one answer, q3 gets three.
	for i, n := range map[int]int{0: 1, 2: 3} {
		for j := 0; j < n; j++ {
			if _, err := answers.Create(context.Background(), &domain.Answer{
				QuestionID: ids[i],
				Content:    "an answer",
				Username:   "answerer",
			}); err != nil {
				t.Fatalf("seed answer: %v", err)
			}
		}
	}

	return NewFeedService(questions, tags, answers, zerolog.Nop()), questions
}

func titles(items []ports.QuestionSummary) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Title
	}
	return out
}

func TestFeedSortNewest(t *testing.T) {
	svc, _ := seedFeed(t)

	page, err := svc.Load(context.Background(), ports.FeedInput{Sort: ports.SortNewest})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"Indexing in MongoDB", "Goroutine leak detection", "Optimising SQL joins"}
	got := titles(page.Items)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("newest order = %v, want %v", got, want)
		}
	}
}

func TestFeedSortPopular(t *testing.T) {
	svc, _ := seedFeed(t)

	// popularity = views + answers*10 + votes*5:
	//   q2 = 200, q1 = 50+10+10 = 70, q3 = 10+30+40 = 80
	page, err := svc.Load(context.Background(), ports.FeedInput{Sort: ports.SortPopular})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"Goroutine leak detection", "Indexing in MongoDB", "Optimising SQL joins"}
	got := titles(page.Items)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("popular order = %v, want %v", got, want)
		}
	}
}

func TestFeedSortTrending(t *testing.T) {
	svc, _ := seedFeed(t)

	page, err := svc.Load(context.Background(), ports.FeedInput{Sort: ports.SortTrending})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []string{"Goroutine leak detection", "Optimising SQL joins", "Indexing in MongoDB"}
	got := titles(page.Items)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trending order = %v, want %v", got, want)
		}
	}
}

func TestFeedSortUnanswered(t *testing.T) {
	svc, _ := seedFeed(t)

	page, err := svc.Load(context.Background(), ports.FeedInput{Sort: ports.SortUnanswered})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got := page.Items[0].Title; got != "Goroutine leak detection" {
		t.Errorf("first unanswered = %q, want the zero-answer question", got)
	}
	if page.Items[0].Answers != 0 {
		t.Errorf("answers = %d, want 0", page.Items[0].Answers)
	}
}

func TestFeedSearchIsCaseInsensitive(t *testing.T) {
	svc, _ := seedFeed(t)

	page, err := svc.Load(context.Background(), ports.FeedInput{Search: "sql"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if page.Total != 1 {
		t.Fatalf("total = %d, want 1", page.Total)
	}
	if page.Items[0].Title != "Optimising SQL joins" {
		t.Errorf("match = %q, want the SQL question", page.Items[0].Title)
	}
}

func TestFeedTagFilterIsExact(t *testing.T) {
	svc, _ := seedFeed(t)

	page, err := svc.Load(context.Background(), ports.FeedInput{Tag: "go"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if page.Total != 1 || page.Items[0].Title != "Goroutine leak detection" {
		t.Fatalf("tag filter matched %v, want only the go question", titles(page.Items))
	}

	// "mongo" is a prefix of "mongodb" but must not match.
	page, err = svc.Load(context.Background(), ports.FeedInput{Tag: "mongo"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if page.Total != 0 {
		t.Errorf("prefix tag matched %v, want no results", titles(page.Items))
	}
}

func TestFeedPagination(t *testing.T) {
	questions := newStubQuestionRepo()
	tags := newStubTagRepo("go")
	answers := newStubAnswerRepo()
	svc := NewFeedService(questions, tags, answers, zerolog.Nop())

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 23; i++ {
		if _, err := questions.Create(context.Background(), &domain.Question{
			Title:       "Question number " + strconv.Itoa(i),
			Description: "body body body body body",
			TagIDs:      []string{"t1"},
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	tests := []struct {
		page      int
		wantItems int
		wantPage  int
	}{
		{0, 10, 1}, // page < 1 clamps to 1
		{1, 10, 1},
		{2, 10, 2},
		{3, 3, 3},
		{4, 0, 4}, // past the end: empty, not an error
	}
	for _, tt := range tests {
		page, err := svc.Load(context.Background(), ports.FeedInput{Page: tt.page})
		if err != nil {
			t.Fatalf("Load(page=%d) error = %v", tt.page, err)
		}
		if len(page.Items) != tt.wantItems {
			t.Errorf("page %d: items = %d, want %d", tt.page, len(page.Items), tt.wantItems)
		}
		if page.Page != tt.wantPage {
			t.Errorf("page %d: reported page = %d, want %d", tt.page, page.Page, tt.wantPage)
		}
		if page.Total != 23 {
			t.Errorf("page %d: total = %d, want 23", tt.page, page.Total)
		}
		if page.TotalPages != 3 {
			t.Errorf("page %d: total pages = %d, want 3", tt.page, page.TotalPages)
		}
		if page.PageSize != ports.FeedPageSize {
			t.Errorf("page %d: page size = %d, want %d", tt.page, page.PageSize, ports.FeedPageSize)
		}
	}
}

func TestFeedResolvesTagNames(t *testing.T) {
	svc, _ := seedFeed(t)

	page, err := svc.Load(context.Background(), ports.FeedInput{Search: "mongodb"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("total = %d, want 1", page.Total)
	}
	got := page.Items[0]
	if len(got.Tags) != 1 || got.Tags[0] != "mongodb" {
		t.Errorf("tags = %v, want [mongodb]", got.Tags)
	}
	if got.Answers != 3 {
		t.Errorf("answers = %d, want 3", got.Answers)
	}
}
