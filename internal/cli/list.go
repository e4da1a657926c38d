package cli

import (
	"github.com/forgekit/forge/internal/scaffold"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available scaffolds",
		Long:  `List built-in scaffolds and those found in the configured scaffolds directory.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry()
			if err != nil {
				return err
			}
			runner := &scaffold.Runner{Registry: reg, Out: cmd.OutOrStdout()}
			_, err = runner.Run(contextOf(cmd), scaffold.ListAction)
			return err
		},
	}
}
