package session

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned by Store.Get when the key has never been written.
var ErrNotFound = errors.New("session: key not found")

// IsNotFound reports whether err means a missing key rather than a storage
// failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// Store is durable string-keyed storage, the server-side equivalent of the
// browser's localStorage. Implementations must tolerate concurrent use
// across different keys but may assume single-actor access per key.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// FileStore persists each key as one file under a directory. Writes go
// through a temp file and rename so a crash never leaves a half-written
// value behind.
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create store dir")
	}
	return &FileStore{dir: dir}, nil
}

// Get returns the value for key, or ErrNotFound.
func (fs *FileStore) Get(key string) ([]byte, error) {
	raw, err := os.ReadFile(fs.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "read %q", key)
	}
	return raw, nil
}

// Set writes the value for key atomically.
func (fs *FileStore) Set(key string, value []byte) error {
	path := fs.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return errors.Wrapf(err, "write %q", key)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrapf(err, "rename %q", key)
	}
	return nil
}

// path maps a key to a file name. Keys are caller-controlled identifiers
// like "cart"; path separators are flattened to keep everything in dir.
func (fs *FileStore) path(key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(fs.dir, name+".json")
}
