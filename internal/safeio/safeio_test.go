package safeio

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeFSAllowsAbsoluteUnderRoot(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(p, []byte("hello"), 0o644))

	fs, err := NewSafeFS(dir)
	require.NoError(t, err)

	abs, err := filepath.EvalSymlinks(p)
	require.NoError(t, err)
	f, err := fs.Open(abs)
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestSafeFSRejectsTraversal(t *testing.T) {
	fs, err := NewSafeFS(t.TempDir())
	require.NoError(t, err)

	_, err = fs.Open("../outside.txt")
	assert.Error(t, err)
	_, err = fs.Lstat("..")
	assert.Error(t, err)
	_, err = fs.Open("/definitely/not/under/root.txt")
	assert.Error(t, err)
	_, err = fs.Open("")
	assert.Error(t, err)
}

func TestNewSafeFSValidatesRoot(t *testing.T) {
	_, err := NewSafeFS("")
	assert.Error(t, err)

	dir := t.TempDir()
	file := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = NewSafeFS(file)
	assert.Error(t, err)

	_, err = NewSafeFS(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestOpenRejectsDirectory(t *testing.T) {
	mem := memfs.New()
	require.NoError(t, mem.MkdirAll("pkg", 0o755))
	fs := FromBilly(mem)

	_, err := fs.Open("pkg")
	assert.Error(t, err)
}

func TestWalkIsLexicalAndRelative(t *testing.T) {
	mem := memfs.New()
	require.NoError(t, util.WriteFile(mem, "b/z.java", []byte("z"), 0o644))
	require.NoError(t, util.WriteFile(mem, "a.java", []byte("a"), 0o644))
	require.NoError(t, util.WriteFile(mem, "b/a.java", []byte("a"), 0o644))
	fs := FromBilly(mem)

	var got []string
	err := fs.Walk(".", func(p string, info os.FileInfo, err error) error {
		require.NoError(t, err)
		got = append(got, filepath.ToSlash(p))
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{".", "a.java", "b", "b/a.java", "b/z.java"}, got)
}

func TestNilSafeFS(t *testing.T) {
	var fs *SafeFS
	assert.Equal(t, "", fs.Root())
	_, err := fs.Lstat("a")
	assert.Error(t, err)
}
