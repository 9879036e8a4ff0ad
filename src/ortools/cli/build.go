package cli

import (
	"fmt"

	"github.com/cloudfoundry/libbuildpack"
	"github.com/cpsat-go/ortools-buildpack/src/ortools"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/acquire"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/config"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/finalize"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/pipeline"
	"github.com/paketo-buildpacks/packit/v2/pexec"
	"github.com/spf13/cobra"
)

func newBuildCommand(opts *options, lookup func(string) (string, bool)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile schemas, resolve OR-Tools and emit link directives",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, opts, lookup)
		},
	}

	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "scratch and output directory (default $ORTOOLS_OUT_DIR)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "use this OR-Tools installation (overrides $ORTOOLS_PREFIX)")
	cmd.Flags().BoolVar(&opts.forceDownload, "force-download", false, "download the release even when a prefix is set")
	cmd.Flags().BoolVar(&opts.docsBuild, "docs-build", false, "only compile the schemas")

	return cmd
}

func runBuild(cmd *cobra.Command, opts *options, lookup func(string) (string, bool)) error {
	logger := newLogger(cmd.OutOrStdout())
	env := opts.env(lookup)

	if env.OutDir == "" && !env.DocsBuild {
		return ortools.Errorf(ortools.ErrInvalidConfiguration, "build", config.EnvOutDir, "no output directory: pass --out-dir or set %s", config.EnvOutDir)
	}

	cfg, err := opts.loadConfig(env)
	if err != nil {
		return err
	}

	target := opts.targetSpec(env)
	cxx, ar := finalize.Toolchain(target, env)

	p := pipeline.Pipeline{
		ProjectDir: opts.projectDir,
		OutDir:     env.OutDir,
		Env:        env,
		Config:     cfg,
		Target:     target,
		Probe:      opts.probe(logger),
		Acquirer:   &acquire.Acquirer{Log: logger},
		Protoc:     pexec.NewExecutable("protoc"),
		Compiler:   pexec.NewExecutable(cxx),
		Archiver:   pexec.NewExecutable(ar),
		YAML:       libbuildpack.NewYAML(),
		Log:        logger,
		Out:        cmd.OutOrStdout(),
	}

	result, err := p.Run(cmd.Context())
	if err != nil {
		return err
	}

	if result.Native {
		logger.BeginStep("OR-Tools ready at %s", result.Resolution.Prefix)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "native OR-Tools skipped")
	}
	return nil
}
