package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/forgekit/forge/internal/branding"
	"github.com/forgekit/forge/internal/config"
	"github.com/forgekit/forge/internal/output"
	"github.com/forgekit/forge/internal/scaffold"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// actionAliases are alternate spellings of --scaffold.
var actionAliases = map[string]string{
	"generate": "scaffold",
	"gen":      "scaffold",
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	var (
		verbose bool
		action  string
		opts    runOptions
	)

	root := &cobra.Command{
		Use:   branding.CLIName(),
		Short: branding.Description(),
		Long: branding.DisplayName() + ` materializes declarative scaffolds: trees of directories and
files, some produced lazily by generators, rendered against a view context and
written under a destination root.

Pick a scaffold with --scaffold (or its aliases --generate and --gen), or use
"` + branding.CLIName() + ` list" to see what is available.`,
		Example: fmt.Sprintf("  %[1]s --scaffold plugin --set name=demo\n  %[1]s gen gopkg --dest ./libs", branding.CLIName()),
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			output.SetupLogging(cmd.ErrOrStderr(), verbose)
			config.Load()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if action == "" {
				return cmd.Help()
			}
			return runScaffold(cmd, action, &opts)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	root.Flags().StringVar(&action, "scaffold", "", `Scaffold type to run, or "list" (aliases: --generate, --gen)`)
	root.Flags().SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if canonical, ok := actionAliases[name]; ok {
			name = canonical
		}
		return pflag.NormalizedName(name)
	})
	opts.bind(root.Flags())

	root.AddCommand(
		newScaffoldCmd(),
		newListCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

// printError reports a failed command. Missing output is a usage problem in
// the scaffold itself, so it is shown as a warning.
func printError(w io.Writer, err error) {
	if w == nil {
		w = os.Stderr
	}
	if errors.Is(err, scaffold.ErrMissingOutput) {
		fmt.Fprintln(w, output.StyleWarning.Render("Warning: "+err.Error()))
		return
	}
	fmt.Fprintln(w, output.StyleError.Render("Error: ")+err.Error())
}
