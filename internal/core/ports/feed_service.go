package ports

import "context"

// Feed sort keys.
const (
	SortNewest     = "newest"
	SortPopular    = "popular"
	SortTrending   = "trending"
	SortUnanswered = "unanswered"
)

// FeedPageSize is the fixed client-side page size.
const FeedPageSize = 10

// FeedInput carries the feed query parameters.
type FeedInput struct {
	Sort   string // one of the Sort* keys; empty means newest
	Search string // case-insensitive substring over title+description
	Tag    string // exact tag-name filter
	Page   int    // 1-based
}

// QuestionSummary is one feed row.
type QuestionSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Answers     int      `json:"answers"`
	Votes       int      `json:"votes"`
	Views       int      `json:"views"`
	Username    string   `json:"username"`
	TimeAgo     string   `json:"time_ago"`
}

// FeedPage is one page of the filtered, sorted feed.
type FeedPage struct {
	Items      []QuestionSummary `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
}

// FeedService assembles the question feed. The entire collection is fetched
// on every load and filtered/sorted/paginated in memory.
type FeedService interface {
	Load(ctx context.Context, in FeedInput) (*FeedPage, error)
}
