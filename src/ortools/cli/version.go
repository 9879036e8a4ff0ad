package cli

import (
	"fmt"

	"github.com/cpsat-go/ortools-buildpack/src/ortools/config"
	"github.com/spf13/cobra"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ortools-build version %s\n", Version)
			fmt.Fprintf(cmd.OutOrStdout(), "OR-Tools release %s.%s\n", config.DefaultVersion, config.DefaultPatch)
		},
	}
}
