package ports

import (
	"context"

	"github.com/stackit-hq/stackit-api/internal/core/domain"
)

// TagRepository persists tag documents. Names are stored trimmed and
// lower-cased; the collection enforces uniqueness on name.
type TagRepository interface {
	FindByName(ctx context.Context, name string) (*domain.Tag, error)
	// Create inserts a new tag, returning ErrTagExists when the name is
	// already taken (lost create race).
	Create(ctx context.Context, name string) (*domain.Tag, error)
	// NamesByID returns a lookup table of tag id to tag name for the given
	// ids. Unresolved ids are simply absent from the result.
	NamesByID(ctx context.Context, ids []string) (map[string]string, error)
	List(ctx context.Context) ([]domain.Tag, error)
}
