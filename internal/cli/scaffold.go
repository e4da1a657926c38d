package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/forgekit/forge/internal/branding"
	"github.com/forgekit/forge/internal/builtin"
	"github.com/forgekit/forge/internal/config"
	"github.com/forgekit/forge/internal/manifest"
	"github.com/forgekit/forge/internal/output"
	"github.com/forgekit/forge/internal/prompt"
	"github.com/forgekit/forge/internal/scaffold"
	"github.com/forgekit/forge/internal/sink"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// runOptions are the flags shared by the root command and "scaffold".
type runOptions struct {
	dest        string
	set         []string
	noPrompt    bool
	force       bool
	dryRun      bool
	concurrency int
}

func (o *runOptions) bind(fs *pflag.FlagSet) {
	fs.StringVarP(&o.dest, "dest", "d", "", "Destination root (default from config, else .)")
	fs.StringArrayVar(&o.set, "set", nil, "Set a view context value (key=value, repeatable)")
	fs.BoolVar(&o.noPrompt, "no-prompt", false, "Never prompt; fail on missing required values")
	fs.BoolVar(&o.force, "force", false, "Overwrite existing files")
	fs.BoolVar(&o.dryRun, "dry-run", false, "Show what would be created without writing")
	fs.IntVar(&o.concurrency, "concurrency", -1, "Max siblings materialized at once (0 = unlimited, default from config)")
}

func newScaffoldCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:     "scaffold <type>",
		Aliases: []string{"generate", "gen"},
		Short:   "Materialize a scaffold into the destination",
		Long: `Materialize a registered scaffold. Parameters the scaffold declares are
prompted for unless already supplied with --set or --no-prompt is given.
The type "list" prints the available scaffolds instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScaffold(cmd, args[0], &opts)
		},
	}
	opts.bind(cmd.Flags())
	return cmd
}

// loadRegistry registers the built-in scaffolds and then the user's, so a
// user scaffold replaces a built-in of the same type.
func loadRegistry() (*scaffold.Registry, error) {
	reg := scaffold.NewRegistry()
	if err := builtin.Register(reg, buildVersion); err != nil {
		return nil, err
	}

	dir := config.ScaffoldsDir()
	res, err := manifest.LoadDir(dir, buildVersion)
	if err != nil {
		return nil, fmt.Errorf("loading scaffolds from %s: %w", dir, err)
	}
	for _, w := range res.Warnings {
		output.Warn("skipping scaffold", "reason", w)
	}
	for _, def := range res.Definitions {
		if _, exists := reg.Lookup(def.Type); exists {
			output.Debug("user scaffold replaces built-in", "type", def.Type)
		}
		if err := reg.Register(def); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func parseOverrides(pairs []string) (*scaffold.ViewContext, error) {
	vc := scaffold.NewViewContext()
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", pair)
		}
		vc.Set(key, value)
	}
	return vc, nil
}

func runScaffold(cmd *cobra.Command, action string, opts *runOptions) error {
	out := cmd.OutOrStdout()

	reg, err := loadRegistry()
	if err != nil {
		return err
	}
	overrides, err := parseOverrides(opts.set)
	if err != nil {
		return err
	}

	dest := opts.dest
	if dest == "" {
		dest = config.Dest()
	}
	concurrency := opts.concurrency
	if concurrency < 0 {
		concurrency = config.Concurrency()
	}

	fsSink := sink.NewOS(dest, sink.Options{Force: opts.force, DryRun: opts.dryRun})

	var prompter scaffold.Prompter = prompt.New(cmd.InOrStdin(), cmd.ErrOrStderr())
	if opts.noPrompt {
		prompter = prompt.NonInteractive{}
	}

	runner := &scaffold.Runner{
		Registry:  reg,
		Sink:      fsSink,
		Prompter:  prompter,
		Overrides: overrides,
		Out:       out,
		Options:   scaffold.Options{MaxConcurrency: concurrency},
	}

	// Without prompts nothing reads the terminal, so the run can sit behind
	// a spinner and the created paths are printed afterwards.
	var result *scaffold.Result
	if opts.noPrompt {
		err = output.RunWithSpinner(contextOf(cmd), "Materializing "+action+"...", func(ctx context.Context) error {
			var runErr error
			result, runErr = runner.Run(ctx, action)
			return runErr
		})
		if err == nil && result.Outcome == scaffold.OutcomeCompleted {
			printReport(out, result.Report)
		}
	} else {
		runner.Options.Observer = liveObserver(out)
		result, err = runner.Run(contextOf(cmd), action)
	}
	if err != nil {
		return err
	}

	switch result.Outcome {
	case scaffold.OutcomeNoScaffold:
		output.Debug("nothing to do", "reason", result.Reason)
		fmt.Fprintf(out, "No scaffold registered for %s. Run '%s list' to see the available types.\n",
			output.StyleNoun.Render(action), branding.CLIName())
	case scaffold.OutcomeCompleted:
		verb := "Created"
		if opts.dryRun {
			verb = "Would create"
		}
		fmt.Fprintln(out, output.StyleSummary.Render(fmt.Sprintf("%s %d directories and %d files for %s in %s",
			verb, len(result.Report.Directories), len(result.Report.Files), result.Type, fsSink.Root())))
	}
	return nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// liveObserver prints one line per created path. The resolver calls it
// from several goroutines.
func liveObserver(w io.Writer) func(scaffold.Event) {
	var mu sync.Mutex
	return func(ev scaffold.Event) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, output.CreatingLine(string(ev.Op), ev.Path))
	}
}

func printReport(w io.Writer, report scaffold.Report) {
	for _, d := range report.Directories {
		fmt.Fprintln(w, output.CreatingLine(string(scaffold.EventDirectory), d))
	}
	for _, f := range report.Files {
		fmt.Fprintln(w, output.CreatingLine(string(scaffold.EventFile), f))
	}
}
