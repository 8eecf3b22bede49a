package txtshot

import (
	"context"
	"fmt"
	"hash/crc32"
	"os"
	"path/filepath"

	"github.com/k1LoW/errors"
)

// Storage is the interface for storing encoded parts.
type Storage interface {
	// Store saves data under name. It reports false when nothing had to be written.
	Store(ctx context.Context, name string, data []byte) (stored bool, err error)
}

// fileStorage implements Storage on the local file system.
type fileStorage struct {
	perm os.FileMode
}

// NewFileStorage returns a Storage that writes parts as files, creating parent directories as needed.
// A file whose content is already identical is left untouched.
func NewFileStorage() Storage {
	return &fileStorage{perm: 0o644}
}

func (s *fileStorage) Store(ctx context.Context, name string, data []byte) (_ bool, err error) {
	defer func() {
		err = errors.WithStack(err)
	}()
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if dir := filepath.Dir(name); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if b, err := os.ReadFile(name); err == nil && len(b) == len(data) && crc32.ChecksumIEEE(b) == crc32.ChecksumIEEE(data) {
		return false, nil
	}
	if err := os.WriteFile(name, data, s.perm); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", name, err)
	}
	return true, nil
}
