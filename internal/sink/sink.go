// Package sink implements the filesystem the scaffold resolver writes into,
// on top of go-billy so real runs and tests share one code path.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

const (
	dirMode  os.FileMode = 0o755
	fileMode os.FileMode = 0o644
)

// ErrExists is returned when a write would overwrite an existing file and
// Force is not set.
var ErrExists = errors.New("file already exists; use --force to overwrite")

// Options tune a Billy sink.
type Options struct {
	// Force allows overwriting existing files.
	Force bool
	// DryRun records operations without touching the filesystem.
	DryRun bool
}

// Billy is a scaffold sink over a billy.Filesystem. Calls are serialized,
// so it is safe to share between the resolver's goroutines.
type Billy struct {
	fs   billy.Filesystem
	opts Options

	mu      sync.Mutex
	planned []string
}

// New wraps an existing filesystem.
func New(fs billy.Filesystem, opts Options) *Billy {
	return &Billy{fs: fs, opts: opts}
}

// NewOS returns a sink rooted at dir on the local disk.
func NewOS(dir string, opts Options) *Billy {
	return New(osfs.New(dir), opts)
}

// NewMemory returns an in-memory sink.
func NewMemory(opts Options) *Billy {
	return New(memfs.New(), opts)
}

// Root returns the destination root.
func (b *Billy) Root() string {
	return b.fs.Root()
}

// BuildPath converts a slash-separated tree path into a filesystem path.
func (b *Billy) BuildPath(rel string) string {
	return b.fs.Join(strings.Split(rel, "/")...)
}

// EnsureDirectory creates path and any missing parents.
func (b *Billy) EnsureDirectory(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.opts.DryRun {
		b.planned = append(b.planned, "mkdir "+path)
		return nil
	}
	if err := b.fs.MkdirAll(path, dirMode); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	return nil
}

// WriteFile writes content to path, refusing to overwrite unless Force is set.
func (b *Billy) WriteFile(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.opts.DryRun {
		b.planned = append(b.planned, "write "+path)
		return nil
	}

	if !b.opts.Force {
		if _, err := b.fs.Stat(path); err == nil {
			return ErrExists
		}
	}

	if err := util.WriteFile(b.fs, path, content, fileMode); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}

// Planned returns the operations recorded in dry-run mode, in call order.
func (b *Billy) Planned() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.planned...)
}

// ReadFile returns the content of a file in the sink.
func (b *Billy) ReadFile(path string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return util.ReadFile(b.fs, path)
}

// Tree lists every entry under the root, slash separated and sorted.
// Directories carry a trailing slash.
func (b *Billy) Tree() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	var entries []string
	err := util.Walk(b.fs, "", func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		p = filepath.ToSlash(strings.TrimPrefix(p, string(filepath.Separator)))
		if p == "" || p == "." {
			return nil
		}
		if info.IsDir() {
			p += "/"
		}
		entries = append(entries, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking sink: %w", err)
	}

	sort.Strings(entries)
	return entries, nil
}
