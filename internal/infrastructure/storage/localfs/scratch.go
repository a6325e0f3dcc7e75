package localfs

import (
	"fmt"
	"os"
	"path/filepath"
)

// Scratch is a disposable working directory created on first use and never
// cleaned up. Reusing a name overwrites the previous artifact.
type Scratch struct {
	root string
}

func NewScratch(root string) *Scratch {
	return &Scratch{root: root}
}

func (s *Scratch) Dir() (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	return s.root, nil
}

// Path returns root/name with its parent directories created.
func (s *Scratch) Path(name string) (string, error) {
	path := filepath.Join(s.root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	return path, nil
}
