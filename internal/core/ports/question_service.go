package ports

import "context"

// SubmitQuestionInput carries everything the composer needs for one
// submission.
type SubmitQuestionInput struct {
	Title           string
	DescriptionHTML string
	TagNames        []string
	Files           []UploadFile
	Username        string
}

// QuestionService is the question composer: validate, upload attachments,
// resolve tags, write the question document.
type QuestionService interface {
	// Submit returns the new question's id. Preconditions fail fast with a
	// field-scoped ValidationError before any network call; any backend
	// failure aborts the whole submission with no partial-state rollback
	// (already-uploaded files stay orphaned in the object store).
	Submit(ctx context.Context, in SubmitQuestionInput) (string, error)
}
