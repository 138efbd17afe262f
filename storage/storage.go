package storage

import (
	"context"
	"io"
	"path/filepath"

	"github.com/google/uuid"
)

// ProofStore persists proof-of-payment files and returns a URL the frontend
// can render. Implementations: local disk (dev) and MinIO (production).
type ProofStore interface {
	Save(ctx context.Context, filename, contentType string, r io.Reader, size int64) (string, error)
}

// objectName keeps the original extension but replaces the client-supplied
// name with a random key.
func objectName(filename string) string {
	return uuid.New().String() + filepath.Ext(filename)
}
