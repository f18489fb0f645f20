package domain

// Tag labels a question. Name is the natural key: it is trimmed and
// lower-cased before it ever reaches the store, and the tags collection
// carries a unique index on it.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
