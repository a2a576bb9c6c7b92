// Package stores abstracts file storage for uploaded media such as user
// avatars. Local disk is the default; an S3-compatible backend is available
// for deployments with object storage.
package stores

import (
	"io"
	"net/http"

	"github.com/code-100-precent/LingChat/pkg/utils"
)

const (
	KindLocal = "local" // Local file system storage
	KindMinio = "minio" // MinIO / S3 compatible storage
)

var ErrInvalidPath = &utils.Error{Code: http.StatusBadRequest, Message: "invalid path"}

// DefaultStoreKind is the default storage type, read from the STORAGE_KIND
// environment variable. Defaults to local if unset or invalid.
var DefaultStoreKind = getDefaultStoreKind()

func getDefaultStoreKind() string {
	kind := utils.GetEnv("STORAGE_KIND")
	switch kind {
	case KindLocal, KindMinio:
		return kind
	default:
		return KindLocal
	}
}

// Store is the common storage interface
type Store interface {
	// Read reads a file from storage
	Read(key string) (io.ReadCloser, int64, error)
	// Write writes a file to storage
	Write(key string, r io.Reader) error
	// Delete deletes a file from storage
	Delete(key string) error
	// Exists checks if a file exists in storage
	Exists(key string) (bool, error)
	// PublicURL returns the public URL for a file
	PublicURL(key string) string
}

// GetStore creates a storage instance by kind
func GetStore(kind string) Store {
	switch kind {
	case KindMinio:
		return NewMinioStore()
	default:
		return NewLocalStore()
	}
}

// Default returns the default storage instance
func Default() Store {
	return GetStore(DefaultStoreKind)
}
