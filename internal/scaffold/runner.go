package scaffold

import (
	"context"
	"fmt"
	"io"

	"github.com/forgekit/forge/internal/output"
)

// ListAction is the reserved action that prints the registry instead of
// running a scaffold.
const ListAction = "list"

// Prompter collects missing parameters before resolution starts.
type Prompter interface {
	Collect(ctx context.Context, data *ViewContext, params []Param) (*ViewContext, error)
}

// Outcome describes how a run ended successfully.
type Outcome int

const (
	// OutcomeCompleted means the output tree was fully materialized.
	OutcomeCompleted Outcome = iota
	// OutcomeNoScaffold means the requested type is not registered.
	OutcomeNoScaffold
	// OutcomeListed means the list action printed the registry.
	OutcomeListed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeNoScaffold:
		return "no scaffold"
	case OutcomeListed:
		return "listed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is returned by a successful run.
type Result struct {
	Type    string
	Outcome Outcome
	Report  Report

	// Reason explains a run that did nothing. For OutcomeNoScaffold it
	// wraps ErrUnknownScaffold.
	Reason error
}

// Runner drives one scaffold run. The caller decides what happens after
// Run returns; the runner never ends the process.
type Runner struct {
	Registry *Registry
	Sink     Sink

	// Prompter is consulted only for definitions that declare parameters.
	// A nil Prompter leaves missing parameters unset.
	Prompter Prompter

	// Overrides are merged into the view context before prompting, so
	// parameters supplied up front are not asked for again.
	Overrides *ViewContext

	// Out receives the list action's report.
	Out io.Writer

	Options Options
}

// Run executes action, which is either ListAction or a registered type.
func (r *Runner) Run(ctx context.Context, action string) (*Result, error) {
	if action == ListAction {
		if err := WriteList(r.Out, r.Registry.List()); err != nil {
			return nil, fmt.Errorf("writing scaffold list: %w", err)
		}
		return &Result{Type: action, Outcome: OutcomeListed}, nil
	}

	def, ok := r.Registry.Lookup(action)
	if !ok {
		output.Debug("no scaffold registered", "type", action)
		return &Result{
			Type:    action,
			Outcome: OutcomeNoScaffold,
			Reason:  fmt.Errorf("%w for %q", ErrUnknownScaffold, action),
		}, nil
	}

	if def.Output.IsZero() {
		return nil, &RunError{Type: def.Type, Err: ErrMissingOutput}
	}

	data := def.viewContext()
	data.Merge(r.Overrides)

	if len(def.Prompt) > 0 && r.Prompter != nil {
		collected, err := r.Prompter.Collect(ctx, data, def.Prompt)
		if err != nil {
			return nil, &RunError{Type: def.Type, Err: fmt.Errorf("%w: %w", ErrPromptFailed, err)}
		}
		data = collected
	}

	if def.ProcessData != nil {
		processed, err := def.ProcessData(data)
		if err != nil {
			return nil, &RunError{Type: def.Type, Err: fmt.Errorf("processing data: %w", err)}
		}
		if processed != nil {
			data = processed
		}
	}

	output.Debug("resolving scaffold", "type", def.Type, "vars", data.Len())

	resolver := NewResolver(r.Sink, def.Render, r.Options)
	if err := resolver.Resolve(ctx, def.Output, "", data); err != nil {
		return nil, &RunError{Type: def.Type, Err: err}
	}

	return &Result{
		Type:    def.Type,
		Outcome: OutcomeCompleted,
		Report:  resolver.Report(),
	}, nil
}
