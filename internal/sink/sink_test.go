package sink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBilly_WriteAndTree(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(Options{})

	require.NoError(t, s.EnsureDirectory(ctx, s.BuildPath("lib")))
	require.NoError(t, s.EnsureDirectory(ctx, s.BuildPath("src")))
	require.NoError(t, s.WriteFile(ctx, s.BuildPath("src/index.js"), []byte("(function(){}());")))
	require.NoError(t, s.WriteFile(ctx, s.BuildPath("build.json"), []byte("{}")))

	tree, err := s.Tree()
	require.NoError(t, err)
	assert.Equal(t, []string{"build.json", "lib/", "src/", "src/index.js"}, tree)

	content, err := s.ReadFile(s.BuildPath("src/index.js"))
	require.NoError(t, err)
	assert.Equal(t, "(function(){}());", string(content))
}

func TestBilly_RefusesOverwriteWithoutForce(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(Options{})

	require.NoError(t, s.WriteFile(ctx, "a.txt", []byte("one")))
	err := s.WriteFile(ctx, "a.txt", []byte("two"))
	assert.ErrorIs(t, err, ErrExists)

	forced := New(s.fs, Options{Force: true})
	require.NoError(t, forced.WriteFile(ctx, "a.txt", []byte("two")))

	content, err := s.ReadFile("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "two", string(content))
}

func TestBilly_DryRun(t *testing.T) {
	ctx := context.Background()
	s := NewMemory(Options{DryRun: true})

	require.NoError(t, s.EnsureDirectory(ctx, "lib"))
	require.NoError(t, s.WriteFile(ctx, "build.json", []byte("{}")))

	assert.Equal(t, []string{"mkdir lib", "write build.json"}, s.Planned())

	tree, err := s.Tree()
	require.NoError(t, err)
	assert.Empty(t, tree)
}

func TestBilly_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewMemory(Options{})
	assert.ErrorIs(t, s.EnsureDirectory(ctx, "lib"), context.Canceled)
	assert.ErrorIs(t, s.WriteFile(ctx, "a.txt", nil), context.Canceled)
}

func TestNewOS(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewOS(dir, Options{})

	require.NoError(t, s.EnsureDirectory(ctx, s.BuildPath("src/nested")))
	require.NoError(t, s.WriteFile(ctx, s.BuildPath("src/nested/file.txt"), []byte("hello")))

	data, err := os.ReadFile(filepath.Join(dir, "src", "nested", "file.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	info, err := os.Stat(filepath.Join(dir, "src"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
