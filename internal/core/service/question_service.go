package service

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/stackit-hq/stackit-api/internal/api/metrics"
	"github.com/stackit-hq/stackit-api/internal/core/domain"
	"github.com/stackit-hq/stackit-api/internal/core/ports"
)

const (
	minTitleLen       = 10
	minDescriptionLen = 20
	maxTags           = 5
	maxFileSize       = 10 * 1024 * 1024 // 10 MiB, inclusive
)

// allowedMIMEPrefixes gates attachments by content type.
var allowedMIMEPrefixes = []string{"image/", "video/", "text/", "application/pdf", "application/json"}

// QuestionService is the composer: validate, upload attachments, resolve
// tags, write the question document.
type QuestionService struct {
	questions ports.QuestionRepository
	tags      ports.TagRepository
	storage   ports.ObjectStorage
	logger    zerolog.Logger
}

func NewQuestionService(
	questions ports.QuestionRepository,
	tags ports.TagRepository,
	storage ports.ObjectStorage,
	logger zerolog.Logger,
) *QuestionService {
	return &QuestionService{questions: questions, tags: tags, storage: storage, logger: logger}
}

// Submit creates a new question and returns its id.
//
// The three steps run in order: upload all attachments, resolve all tags,
// insert the document. Uploads and tag lookups each fan out concurrently and
// are awaited jointly; the first failure fails the whole submission. Files
// uploaded before a later step fails stay orphaned in the object store — the
// composer performs no cleanup and no retries.
func (s *QuestionService) Submit(ctx context.Context, in ports.SubmitQuestionInput) (string, error) {
	tagNames, err := validateSubmission(&in)
	if err != nil {
		return "", err
	}

	fileURLs, err := s.uploadAll(ctx, in.Files)
	if err != nil {
		s.logger.Error().Err(err).Msg("attachment upload failed")
		return "", err
	}

	tagIDs, err := s.resolveTags(ctx, tagNames)
	if err != nil {
		s.logger.Error().Err(err).Msg("tag resolution failed")
		return "", err
	}

	question := &domain.Question{
		Title:       strings.TrimSpace(in.Title),
		Description: in.DescriptionHTML,
		TagIDs:      tagIDs,
		FileURLs:    fileURLs,
		Username:    in.Username,
		CreatedAt:   time.Now().UTC(),
	}

	id, err := s.questions.Create(ctx, question)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create question")
		return "", err
	}

	metrics.QuestionsCreatedTotal.Inc()
	s.logger.Info().
		Str("question_id", id).
		Str("username", in.Username).
		Int("tags", len(tagIDs)).
		Int("attachments", len(fileURLs)).
		Msg("question created")

	return id, nil
}

// validateSubmission enforces every precondition before any network call and
// returns the normalised tag set.
func validateSubmission(in *ports.SubmitQuestionInput) ([]string, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, domain.Invalid("title", "title is required")
	}
	if utf8.RuneCountInString(title) < minTitleLen {
		return nil, domain.Invalid("title", "title must be at least 10 characters")
	}

	text := StripHTML(in.DescriptionHTML)
	if strings.TrimSpace(text) == "" {
		return nil, domain.Invalid("description", "description is required")
	}
	if utf8.RuneCountInString(text) < minDescriptionLen {
		return nil, domain.Invalid("description", "description must be at least 20 characters")
	}

	tagNames := normalizeTags(in.TagNames)
	if len(tagNames) == 0 {
		return nil, domain.Invalid("tags", "at least one tag is required")
	}
	if len(tagNames) > maxTags {
		return nil, domain.Invalid("tags", "no more than 5 tags are allowed")
	}

	for _, f := range in.Files {
		if f.Size > maxFileSize {
			return nil, domain.Invalid("files", "file "+f.Name+" exceeds the 10 MB limit")
		}
		if !allowedMIME(f.ContentType) {
			return nil, domain.Invalid("files", "file "+f.Name+" has an unsupported type")
		}
	}

	return tagNames, nil
}

// normalizeTags trims, lower-cases, and deduplicates while preserving input
// order. A name submitted twice in one request resolves to one tag.
func normalizeTags(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func allowedMIME(contentType string) bool {
	for _, p := range allowedMIMEPrefixes {
		if strings.HasPrefix(contentType, p) {
			return true
		}
	}
	return false
}

// uploadAll sends every attachment to the object store concurrently,
// preserving input order in the returned URLs.
func (s *QuestionService) uploadAll(ctx context.Context, files []ports.UploadFile) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			url, err := s.storage.Upload(gctx, classifyUpload(f.ContentType), f)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// classifyUpload picks the endpoint kind for a content type. PDFs, text, and
// JSON all travel as raw files.
func classifyUpload(contentType string) ports.UploadKind {
	switch {
	case strings.HasPrefix(contentType, "video/"):
		return ports.UploadVideo
	case strings.HasPrefix(contentType, "image/"):
		return ports.UploadImage
	default:
		return ports.UploadRaw
	}
}

// resolveTags maps each tag name to a stable id, creating missing tags. The
// lookups run concurrently; order follows the input names.
func (s *QuestionService) resolveTags(ctx context.Context, names []string) ([]string, error) {
	ids := make([]string, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			id, err := s.resolveTag(gctx, name)
			if err != nil {
				return err
			}
			ids[i] = id
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *QuestionService) resolveTag(ctx context.Context, name string) (string, error) {
	tag, err := s.tags.FindByName(ctx, name)
	if err == nil {
		return tag.ID, nil
	}
	if !errors.Is(err, domain.ErrTagNotFound) {
		return "", err
	}

	created, err := s.tags.Create(ctx, name)
	if err == nil {
		metrics.TagsCreatedTotal.Inc()
		return created.ID, nil
	}
	// Lost the create race against a concurrent submission; the unique
	// index rejected the insert, so the winner's tag is readable now.
	if errors.Is(err, domain.ErrTagExists) {
		tag, err = s.tags.FindByName(ctx, name)
		if err != nil {
			return "", err
		}
		return tag.ID, nil
	}
	return "", err
}

// StripHTML reduces a rich-text HTML fragment to its text content, the same
// measure the browser's textContent gives. Tags drop out, entities unescape.
func StripHTML(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return html.UnescapeString(b.String())
}
