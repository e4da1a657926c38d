package output

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
)

// IsTTY reports whether stderr is attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// RunWithSpinner executes action while a spinner runs on terminals.
// Without a terminal the action runs directly. It always returns after
// action has returned; if the spinner fails (e.g. the user aborts), the
// context passed to action is cancelled first.
func RunWithSpinner(ctx context.Context, title string, action func(ctx context.Context) error) error {
	if !IsTTY() {
		return action(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	running := startTask(ctx, action)
	spinnerErr := spinner.New().Title(title).Action(func() {
		_ = running.wait()
	}).Run()
	if spinnerErr != nil {
		cancel()
		_ = running.wait()
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}
	return running.wait()
}

// task is an action running on its own goroutine.
type task struct {
	done chan struct{}
	err  error
}

func startTask(ctx context.Context, action func(ctx context.Context) error) *task {
	t := &task{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		t.err = action(ctx)
	}()
	return t
}

// wait blocks until the action returns. It is safe to call more than once.
func (t *task) wait() error {
	<-t.done
	return t.err
}
