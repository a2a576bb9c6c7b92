package stores

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/code-100-precent/LingChat/pkg/utils"
)

// UploadDir is the default upload directory for local storage
var UploadDir string = "./uploads"

// MediaPrefix defines the public URL prefix for locally stored files
var MediaPrefix string = "/uploads"

// LocalStore represents local file system storage
type LocalStore struct {
	Root       string
	NewDirPerm os.FileMode
}

// NewLocalStore creates a new local storage instance
func NewLocalStore() Store {
	uploadDir := utils.GetEnv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = UploadDir
	}
	return &LocalStore{
		Root:       uploadDir,
		NewDirPerm: 0755,
	}
}

// resolve maps a key onto the storage root, rejecting keys that escape it.
func (l *LocalStore) resolve(key string) (string, error) {
	root, err := filepath.Abs(l.Root)
	if err != nil {
		return "", err
	}
	fname := filepath.Clean(filepath.Join(root, key))
	if !strings.HasPrefix(fname, root) {
		return "", ErrInvalidPath
	}
	return fname, nil
}

// Read reads a file from local storage
func (l *LocalStore) Read(key string) (io.ReadCloser, int64, error) {
	fname, err := l.resolve(key)
	if err != nil {
		return nil, 0, err
	}
	st, err := os.Stat(fname)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(fname)
	if err != nil {
		return nil, 0, err
	}
	return f, st.Size(), nil
}

// Write writes a file to local storage
func (l *LocalStore) Write(key string, r io.Reader) error {
	fname, err := l.resolve(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(fname), l.NewDirPerm); err != nil {
		return err
	}
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(f, r)
	return err
}

// Delete deletes a file from local storage
func (l *LocalStore) Delete(key string) error {
	fname, err := l.resolve(key)
	if err != nil {
		return err
	}
	return os.Remove(fname)
}

// Exists checks if a file exists in local storage
func (l *LocalStore) Exists(key string) (bool, error) {
	fname, err := l.resolve(key)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(fname); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// PublicURL returns the public URL for a file in local storage
func (l *LocalStore) PublicURL(key string) string {
	mediaPrefix := utils.GetEnv("MEDIA_PREFIX")
	if mediaPrefix == "" {
		mediaPrefix = MediaPrefix
	}
	// path.Join keeps URL paths on forward slashes regardless of platform.
	mediaPrefix = strings.TrimSuffix(mediaPrefix, "/")
	key = strings.TrimPrefix(key, "/")
	return path.Join("/", mediaPrefix, key)
}
