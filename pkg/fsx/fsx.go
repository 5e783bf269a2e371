package fsx

import (
	"context"
	"io"
)

// FileSystem abstracts the blob store used for CV uploads and archived
// certificate documents. Keys are slash-separated paths inside one bucket.
type FileSystem interface {
	// WriteFile stores data under the given key, overwriting any existing object
	WriteFile(ctx context.Context, path string, data []byte) error

	// ReadFile reads the whole object into memory
	ReadFile(ctx context.Context, path string) ([]byte, error)

	// ReadFileStream opens the object for streaming; the caller closes it
	ReadFileStream(ctx context.Context, path string) (io.ReadCloser, error)

	// DeleteFile removes the object; deleting a missing object is not an error
	DeleteFile(ctx context.Context, path string) error

	// Exists checks whether an object is stored under the key
	Exists(ctx context.Context, path string) (bool, error)

	// Join builds a key from path segments
	Join(parts ...string) string
}
