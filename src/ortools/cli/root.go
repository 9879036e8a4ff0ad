package cli

import (
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/cloudfoundry/libbuildpack"
	"github.com/cpsat-go/ortools-buildpack/src/ortools"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/config"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/platform"
	"github.com/spf13/cobra"
)

// Version of ortools-build.
const Version = "0.3.0"

type options struct {
	projectDir string
	outDir     string
	target     string
	osRelease  string
	debug      bool

	prefix        string
	forceDownload bool
	docsBuild     bool
}

// NewRootCommand builds the ortools-build command tree. lookup stands in for
// os.LookupEnv.
func NewRootCommand(lookup func(string) (string, bool)) *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "ortools-build",
		Short: "Resolve, download and link OR-Tools for the CP-SAT binding",
		Long: `ortools-build prepares the native side of the CP-SAT binding.

It compiles the CP-SAT schemas, resolves an OR-Tools installation from
ORTOOLS_PREFIX or the matching prebuilt release, compiles the C++ shim
against it and emits the link directives the final binary needs.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.env(lookup).Debug {
				os.Setenv(config.EnvDebug, "1")
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.projectDir, "project-dir", ".", "directory holding ortools.yml, the shim and proto/")
	root.PersistentFlags().StringVar(&opts.target, "target", "", "target triple (default $ORTOOLS_TARGET or the host)")
	root.PersistentFlags().StringVar(&opts.osRelease, "os-release", platform.DefaultOSReleasePath, "os-release file probed for the Linux distribution")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	root.AddCommand(newBuildCommand(opts, lookup))
	root.AddCommand(newResolveCommand(opts, lookup))
	root.AddCommand(newVersionCommand())

	return root
}

// Execute runs the command tree against the process environment.
func Execute() error {
	return NewRootCommand(os.LookupEnv).Execute()
}

// env snapshots the environment and applies the command line on top.
func (o *options) env(lookup func(string) (string, bool)) config.Env {
	env := config.Snapshot(lookup)

	if o.prefix != "" {
		env.Prefix = o.prefix
	}
	if o.forceDownload {
		env.ForceDownload = true
	}
	if o.docsBuild {
		env.DocsBuild = true
	}
	if o.target != "" {
		env.Target = o.target
	}
	if o.outDir != "" {
		env.OutDir = o.outDir
	}
	if o.debug {
		env.Debug = true
	}
	return env
}

// loadConfig reads ortools.yml from the project directory with env on top, the
// same way for every subcommand.
func (o *options) loadConfig(env config.Env) (config.Config, error) {
	cfg, err := config.Load(libbuildpack.NewYAML(), o.projectDir)
	if err != nil {
		return config.Config{}, ortools.Wrap(ortools.ErrInvalidConfiguration, "load", filepath.Join(o.projectDir, config.FileName), err)
	}
	return cfg.WithEnv(env), nil
}

func (o *options) targetSpec(env config.Env) platform.TargetSpec {
	if env.Target != "" {
		return platform.TargetSpec(env.Target)
	}
	return platform.HostTarget(runtime.GOOS, runtime.GOARCH)
}

// probe is only consulted for the amd64 Linux target, so a missing file is
// not an error here.
func (o *options) probe(logger *libbuildpack.Logger) platform.OSRelease {
	probe, err := platform.ProbeOSRelease(o.osRelease)
	if err != nil {
		logger.Debug("Unable to read %s: %s", o.osRelease, err.Error())
	}
	return probe
}

func newLogger(w io.Writer) *libbuildpack.Logger {
	return libbuildpack.NewLogger(w)
}
