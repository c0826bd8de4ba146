package collection

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

const lockRetryDelay = 10 * time.Millisecond

// FileBackend keeps each key in its own JSON file under a directory. A
// sidecar lock file serializes access across processes.
type FileBackend struct {
	dir  string
	perm os.FileMode
}

// NewFileBackend creates dir if needed.
func NewFileBackend(dir string, perm os.FileMode) (*FileBackend, error) {
	if perm == 0 {
		perm = 0o755
	}
	if err := os.MkdirAll(dir, perm); err != nil {
		return nil, err
	}
	return &FileBackend{dir: dir, perm: perm}, nil
}

// Path returns the file that holds key.
func (b *FileBackend) Path(key string) string {
	return filepath.Join(b.dir, key+".json")
}

func (b *FileBackend) Load(ctx context.Context, key string) ([]byte, bool, error) {
	lock := flock.New(b.Path(key) + ".lock")
	if _, err := lock.TryRLockContext(ctx, lockRetryDelay); err != nil {
		return nil, false, err
	}
	defer lock.Unlock()

	data, err := os.ReadFile(b.Path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Save writes to a temp file and renames it over the target.
func (b *FileBackend) Save(ctx context.Context, key string, data []byte) error {
	lock := flock.New(b.Path(key) + ".lock")
	if _, err := lock.TryLockContext(ctx, lockRetryDelay); err != nil {
		return err
	}
	defer lock.Unlock()

	tmp, err := os.CreateTemp(b.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), b.Path(key))
}

func (b *FileBackend) Close() error {
	return nil
}
