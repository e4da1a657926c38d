package scaffold

import (
	"context"
	"fmt"
	"path"
	"sort"
	"sync"

	"github.com/forgekit/forge/internal/output"
)

// Sink is the filesystem the resolver materializes into. Implementations
// must tolerate concurrent calls on disjoint paths.
type Sink interface {
	BuildPath(rel string) string
	EnsureDirectory(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, content []byte) error
}

// EventOp names the side effect an Event reports.
type EventOp string

const (
	EventDirectory EventOp = "directory"
	EventFile      EventOp = "file"
)

// Event is emitted after each successful sink operation.
type Event struct {
	Op   EventOp
	Path string // tree-relative path, slash separated
}

// Options tune a Resolver.
type Options struct {
	// MaxConcurrency caps in-flight siblings per directory level. Zero
	// means unlimited.
	MaxConcurrency int

	// Observer, when set, is called after every created directory and file.
	// It may be called from several goroutines at once.
	Observer func(Event)
}

// Report lists what a resolution created, sorted by path.
type Report struct {
	Directories []string
	Files       []string
}

// Resolver walks an output tree and drives the sink.
type Resolver struct {
	sink   Sink
	render RenderFunc
	opts   Options

	mu     sync.Mutex
	report Report
}

// NewResolver creates a resolver. A nil render passes names and content
// through unchanged.
func NewResolver(sink Sink, render RenderFunc, opts Options) *Resolver {
	return &Resolver{sink: sink, render: render, opts: opts}
}

// Resolve materializes node at the tree-relative path. The root call uses
// an empty path; the destination root is assumed to exist.
func (r *Resolver) Resolve(ctx context.Context, node Node, relPath string, data *ViewContext) error {
	switch node.Kind() {
	case KindGenerator:
		next, err := r.generate(ctx, node, relPath, data)
		if err != nil {
			return err
		}
		return r.Resolve(ctx, next, relPath, data)

	case KindDirectory:
		return r.resolveDir(ctx, node, relPath, data)

	case KindContent:
		if relPath == "" {
			return ErrRootContent
		}
		return r.resolveContent(ctx, node, relPath, data)

	default:
		return nodeError(relPath, ErrInvalidNode)
	}
}

// Report returns the directories and files created so far.
func (r *Resolver) Report() Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	rep := Report{
		Directories: append([]string(nil), r.report.Directories...),
		Files:       append([]string(nil), r.report.Files...),
	}
	sort.Strings(rep.Directories)
	sort.Strings(rep.Files)
	return rep
}

// generate invokes a generator exactly once and validates what it produced.
func (r *Resolver) generate(ctx context.Context, node Node, relPath string, data *ViewContext) (Node, error) {
	if node.generate == nil {
		return Node{}, nodeError(relPath, ErrInvalidNode)
	}

	next, err := node.generate(ctx, data.Clone())
	if err != nil {
		return Node{}, nodeError(relPath, fmt.Errorf("generator: %w", err))
	}

	switch next.Kind() {
	case KindDirectory, KindContent:
		return next, nil
	case KindGenerator:
		return Node{}, nodeError(relPath, ErrGeneratorNesting)
	default:
		return Node{}, nodeError(relPath, ErrInvalidNode)
	}
}

func (r *Resolver) resolveDir(ctx context.Context, node Node, relPath string, data *ViewContext) error {
	entries := node.Entries()

	// Names are rendered before anything touches the sink so a bad template
	// fails the directory without partial effects.
	tasks := make([]Task, 0, len(entries))
	for _, entry := range entries {
		name, err := r.renderName(entry.Name, data)
		if err != nil {
			return nodeError(relPath, err)
		}

		childPath := name
		if relPath != "" {
			childPath = relPath + "/" + name
		}

		child := entry.Node
		tasks = append(tasks, Task{
			Name: childPath,
			Run: func(ctx context.Context) error {
				return r.Resolve(ctx, child, childPath, data)
			},
		})
	}

	if relPath != "" {
		if err := r.ensureDirectory(ctx, relPath); err != nil {
			return err
		}
	}

	return RunAll(ctx, r.opts.MaxConcurrency, tasks)
}

func (r *Resolver) resolveContent(ctx context.Context, node Node, relPath string, data *ViewContext) error {
	text := node.Text()
	if r.render != nil {
		rendered, err := r.render(RenderRequest{
			Mode:     ModeFile,
			Filename: path.Base(relPath),
			Template: text,
			Data:     data.Clone(),
		})
		if err != nil {
			return fmt.Errorf("%w: file %s: %w", ErrRender, relPath, err)
		}
		text = rendered
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	abs := r.sink.BuildPath(relPath)
	if err := r.sink.WriteFile(ctx, abs, []byte(text)); err != nil {
		return &SinkError{Op: "write", Path: abs, Err: err}
	}

	output.Debug("created file", "path", relPath)
	r.record(Event{Op: EventFile, Path: relPath})
	return nil
}

func (r *Resolver) ensureDirectory(ctx context.Context, relPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	abs := r.sink.BuildPath(relPath)
	if err := r.sink.EnsureDirectory(ctx, abs); err != nil {
		return &SinkError{Op: "mkdir", Path: abs, Err: err}
	}

	output.Debug("created directory", "path", relPath)
	r.record(Event{Op: EventDirectory, Path: relPath})
	return nil
}

func (r *Resolver) renderName(tmpl string, data *ViewContext) (string, error) {
	if r.render == nil {
		return tmpl, nil
	}
	name, err := r.render(RenderRequest{
		Mode:     ModeName,
		Template: tmpl,
		Data:     data.Clone(),
	})
	if err != nil {
		return "", fmt.Errorf("%w: name %q: %w", ErrRender, tmpl, err)
	}
	return name, nil
}

func (r *Resolver) record(ev Event) {
	r.mu.Lock()
	switch ev.Op {
	case EventDirectory:
		r.report.Directories = append(r.report.Directories, ev.Path)
	case EventFile:
		r.report.Files = append(r.report.Files, ev.Path)
	}
	r.mu.Unlock()

	if r.opts.Observer != nil {
		r.opts.Observer(ev)
	}
}
