package cli

import (
	"fmt"

	"github.com/cpsat-go/ortools-buildpack/src/ortools/acquire"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/platform"
	"github.com/spf13/cobra"
)

func newResolveCommand(opts *options, lookup func(string) (string, bool)) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Print the release that would be downloaded for the target",
		Long: `resolve runs the platform resolver without touching the network and
prints the identifiers, URL and extraction directory for the target.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env := opts.env(lookup)
			target := opts.targetSpec(env)
			probe := opts.probe(newLogger(cmd.ErrOrStderr()))

			ids, err := platform.Resolve(target, probe)
			if err != nil {
				return err
			}

			cfg, err := opts.loadConfig(env)
			if err != nil {
				return err
			}

			rel := acquire.Release{
				Host:     cfg.DownloadHost,
				Version:  cfg.Version,
				Patch:    cfg.Patch,
				Platform: ids,
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Target:    %s\n", target)
			if ids.Distribution != "" {
				fmt.Fprintf(out, "Platform:  %s %s\n", ids.Distribution, ids.Release)
			}
			if ids.Fallback {
				fmt.Fprintf(out, "Fallback:  %s is not a known release\n", probe)
			}
			fmt.Fprintf(out, "URL ID:    %s\n", ids.URL)
			fmt.Fprintf(out, "Dir ID:    %s\n", ids.Dir)
			fmt.Fprintf(out, "URL:       %s\n", rel.URL())
			fmt.Fprintf(out, "Directory: %s\n", rel.DirName())
			return nil
		},
	}
}
