package scaffold

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task is one unit of sibling work scheduled by RunAll.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// RunAll starts every task in declaration order without waiting for the
// previous one and returns once all of them have returned. The first failure
// cancels the context shared by the remaining tasks and is the error
// returned. limit caps the number of tasks in flight; zero means no cap.
func RunAll(ctx context.Context, limit int, tasks []Task) error {
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, task := range tasks {
		task := task
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return task.Run(gctx)
		})
	}

	return g.Wait()
}
