package ports

import (
	"context"
	"io"
)

// UploadKind selects the object-store endpoint a file is sent to.
type UploadKind string

const (
	UploadImage UploadKind = "image"
	UploadVideo UploadKind = "video"
	UploadRaw   UploadKind = "raw"
)

// UploadFile is one attachment as received from the client.
type UploadFile struct {
	Name        string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ObjectStorage uploads a binary file and returns its durable public URL.
// One call is one multipart POST; there are no retries and no client-side
// cancellation of in-flight siblings.
type ObjectStorage interface {
	Upload(ctx context.Context, kind UploadKind, f UploadFile) (string, error)
}
