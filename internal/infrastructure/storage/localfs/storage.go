package localfs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/kirillkom/smartname/internal/core/domain"
)

// Storage is the local filesystem. Keys are joined to basePath; an empty
// basePath uses keys as given.
type Storage struct {
	basePath string
}

func New(basePath string) (*Storage, error) {
	if basePath != "" {
		if err := os.MkdirAll(basePath, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	return &Storage{basePath: basePath}, nil
}

func (s *Storage) path(key string) string {
	if s.basePath == "" {
		return key
	}
	return filepath.Join(s.basePath, key)
}

// Save writes data to key, creating parent directories.
func (s *Storage) Save(_ context.Context, key string, data io.Reader) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, data); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return f.Close()
}

func (s *Storage) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

// ListFiles returns the regular files directly inside dir in lexical order.
func (s *Storage) ListFiles(_ context.Context, dir string) ([]string, error) {
	root := s.path(dir)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, domain.WrapError(domain.ErrNotDirectory, "list files", fmt.Errorf("%s", dir))
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		out = append(out, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(out)
	return out, nil
}

func (s *Storage) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Lstat(s.path(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}

// Move renames src to dst, creating dst's parent. An existing dst is never
// overwritten.
func (s *Storage) Move(ctx context.Context, src, dst string) error {
	exists, err := s.Exists(ctx, dst)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("move %s: destination %s: %w", src, dst, fs.ErrExist)
	}
	if err := os.MkdirAll(filepath.Dir(s.path(dst)), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	if err := os.Rename(s.path(src), s.path(dst)); err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	return nil
}
