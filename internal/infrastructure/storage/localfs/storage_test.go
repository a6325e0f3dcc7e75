package localfs

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kirillkom/smartname/internal/core/domain"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestListFilesOnlyRegularChildrenSorted(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.pdf"))
	touch(t, filepath.Join(dir, "a.png"))
	touch(t, filepath.Join(dir, "nested", "c.txt"))

	store, err := New("")
	require.NoError(t, err)
	got, err := store.ListFiles(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.png"), filepath.Join(dir, "b.pdf")}, got)
}

func TestListFilesRejectsNonDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "a.txt")
	touch(t, file)

	store, _ := New("")
	_, err := store.ListFiles(context.Background(), file)
	assert.True(t, domain.IsKind(err, domain.ErrNotDirectory), "got %v", err)
}

func TestMoveCreatesParentAndRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.png")
	dst := filepath.Join(dir, "photos", "beach.png")
	touch(t, src)

	store, _ := New("")
	ctx := context.Background()
	require.NoError(t, store.Move(ctx, src, dst))

	ok, err := store.Exists(ctx, dst)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = store.Exists(ctx, src)
	assert.False(t, ok)

	other := filepath.Join(dir, "b.png")
	touch(t, other)
	err = store.Move(ctx, other, dst)
	assert.True(t, errors.Is(err, fs.ErrExist), "got %v", err)
}

func TestSaveCreatesParentsAndOpenReadsBack(t *testing.T) {
	base := t.TempDir()
	store, err := New(base)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, filepath.Join("out", "deep", "novel.md"), strings.NewReader("# Page 1\n")))
	rc, err := store.Open(ctx, filepath.Join("out", "deep", "novel.md"))
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "# Page 1\n", string(body))
}

func TestScratchPathCreatesDirectories(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ollama_pdf")
	scratch := NewScratch(root)

	path, err := scratch.Path(filepath.Join("novel", "page_0001.png"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "novel", "page_0001.png"), path)
	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	dir, err := scratch.Dir()
	require.NoError(t, err)
	assert.Equal(t, root, dir)
}
