package main

import (
	"context"
	"os"
	"runtime"

	"github.com/cloudfoundry/libbuildpack"
	"github.com/cpsat-go/ortools-buildpack/src/ortools"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/acquire"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/config"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/platform"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/supply"
)

// usage: supply <project-dir> [out-dir]
func main() {
	logger := libbuildpack.NewLogger(os.Stdout)

	if len(os.Args) < 2 {
		logger.Error("usage: supply <project-dir> [out-dir]")
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

	target := platform.TargetSpec(env.Target)
	if target == "" {
		target = platform.HostTarget(runtime.GOOS, runtime.GOARCH)
	}

	probe, err := platform.ProbeOSRelease(platform.DefaultOSReleasePath)
	if err != nil {
		logger.Debug("No os-release: %s", err.Error())
	}

	ss := supply.Supplier{
		Env:      env,
		Config:   cfg.WithEnv(env),
		Target:   target,
		Probe:    probe,
		OutDir:   outDir,
		Acquirer: &acquire.Acquirer{Log: logger},
		YAML:     yaml,
		Log:      logger,
	}

	if _, err := supply.Run(context.Background(), &ss); err != nil {
		os.Exit(ortools.ExitCode(err))
	}
}
