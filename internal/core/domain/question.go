package domain

import "time"

// VoteTarget identifies what a vote applies to.
type VoteTarget string

const (
	VoteQuestion VoteTarget = "question"
	VoteAnswer   VoteTarget = "answer"
)

// VoteDirection is the direction of a single vote action. Votes are plain
// increments: repeated votes by the same user count repeatedly.
type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Delta converts the direction into the amount applied to a vote counter.
func (d VoteDirection) Delta() int {
	if d == VoteDown {
		return -1
	}
	return 1
}

// Valid reports whether d is a recognised direction.
func (d VoteDirection) Valid() bool {
	return d == VoteUp || d == VoteDown
}

// Question is the root record of a thread. Description holds the rich-text
// body as HTML; TagIDs reference tag documents and FileURLs hold attachment
// locations returned by the object store. A question is never edited after
// creation.
type Question struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TagIDs      []string  `json:"tag_ids"`
	FileURLs    []string  `json:"file_urls"`
	Username    string    `json:"username"`
	Views       int       `json:"views"`
	Votes       int       `json:"votes"`
	CreatedAt   time.Time `json:"created_at"`
}

// Answer belongs to one question. At most one answer per question carries
// IsAccepted=true; AcceptAnswer clears siblings before setting the flag.
type Answer struct {
	ID         string    `json:"id"`
	QuestionID string    `json:"question_id"`
	Content    string    `json:"content"`
	Username   string    `json:"username"`
	Votes      int       `json:"votes"`
	IsAccepted bool      `json:"is_accepted"`
	CreatedAt  time.Time `json:"created_at"`
}

// Comment belongs to one answer.
type Comment struct {
	ID        string    `json:"id"`
	AnswerID  string    `json:"answer_id"`
	Content   string    `json:"content"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
