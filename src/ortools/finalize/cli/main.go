package main

import (
	"os"

	"github.com/cloudfoundry/libbuildpack"
	"github.com/cpsat-go/ortools-buildpack/src/ortools"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/config"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/finalize"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/platform"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/supply"
	"github.com/paketo-buildpacks/packit/v2/pexec"
)

// usage: finalize <project-dir> [out-dir]
func main() {
	logger := libbuildpack.NewLogger(os.Stdout)

	if len(os.Args) < 2 {
		logger.Error("usage: finalize <project-dir> [out-dir]")
		os.Exit(10)
	}
	projectDir := os.Args[1]

	env := config.FromOS()
	if env.DocsBuild {
		logger.Info("%s is set, skipping native OR-Tools", config.EnvDocsBuild)
		return
	}

	outDir := env.OutDir
	if len(os.Args) >= 3 {
		outDir = os.Args[2]
	}
	if outDir == "" {
		logger.Error("no output directory: pass one or set %s", config.EnvOutDir)
		os.Exit(10)
	}

	yaml := libbuildpack.NewYAML()
	cfg, err := config.Load(yaml, projectDir)
	if err != nil {
		logger.Error("Unable to load %s: %s", config.FileName, err.Error())
		os.Exit(11)
	}

	res, err := supply.LoadResolution(yaml, outDir)
	if err != nil {
		logger.Error("Unable to load %s, run supply first: %s", supply.ResolutionFile, err.Error())
		os.Exit(ortools.ExitCode(err))
	}

	target := platform.TargetSpec(res.Target)
	cxx, ar := finalize.Toolchain(target, env)

	f := finalize.Finalizer{
		Prefix:     res.Prefix,
		Target:     target,
		OutDir:     outDir,
		ProjectDir: projectDir,
		Config:     cfg,
		Compiler:   pexec.NewExecutable(cxx),
		Archiver:   pexec.NewExecutable(ar),
		YAML:       yaml,
		Log:        logger,
		Out:        os.Stdout,
	}

	if _, err := finalize.Run(&f); err != nil {
		os.Exit(ortools.ExitCode(err))
	}
}
