package scaffold

import (
	"errors"
	"fmt"
)

// Sentinel errors for run and resolution failures.
var (
	// ErrUnknownScaffold reports a type that was never registered. Runs treat
	// it as a no-op and return it as Result.Reason rather than failing.
	ErrUnknownScaffold = errors.New("no scaffold registered")

	// ErrMissingOutput reports a definition without an output tree.
	ErrMissingOutput = errors.New("this scaffold did not specify any output")

	// ErrRootContent reports an output tree whose root is file content.
	ErrRootContent = errors.New("output root must be a directory, not file content")

	// ErrPromptFailed reports a failure while collecting parameters.
	ErrPromptFailed = errors.New("an error occurred while trying to fetch user input")

	// ErrSink reports a failed directory creation or file write.
	ErrSink = errors.New("filesystem operation failed")

	// ErrRender reports a failing render hook.
	ErrRender = errors.New("render failed")

	// ErrGeneratorNesting reports a generator that yielded another generator.
	ErrGeneratorNesting = errors.New("generator yielded a generator; wrap it in a directory")

	// ErrInvalidNode reports a zero Node inside a tree.
	ErrInvalidNode = errors.New("invalid output node")
)

// SinkError records which sink operation failed and on which path.
type SinkError struct {
	Op   string // "mkdir" or "write"
	Path string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrSink) match any SinkError.
func (e *SinkError) Is(target error) bool { return target == ErrSink }

// RunError wraps an aborted run with the scaffold type that failed.
type RunError struct {
	Type string
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("scaffold %q: %v", e.Type, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }

// nodeError attaches a tree path to an error raised while resolving it.
func nodeError(path string, err error) error {
	if path == "" {
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}
