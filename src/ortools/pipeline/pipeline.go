package pipeline

import (
	"context"
	"io"

	"github.com/cloudfoundry/libbuildpack"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/config"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/finalize"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/platform"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/schema"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/supply"
)

// Pipeline runs one build: schema compilation, then, unless the docs marker
// is set, resolution of a single OR-Tools prefix followed by the shim build
// and link emission against it.
type Pipeline struct {
	ProjectDir string
	OutDir     string
	Env        config.Env
	Config     config.Config
	Target     platform.TargetSpec
	Probe      platform.OSRelease

	Acquirer supply.Acquirer
	Protoc   schema.Executable
	Compiler finalize.Executable
	Archiver finalize.Executable
	YAML     finalize.YAML
	Log      *libbuildpack.Logger
	Out      io.Writer
}

type Result struct {
	// Native is false when the docs marker skipped everything after the schemas.
	Native     bool
	Resolution supply.Resolution
	Links      finalize.LinkSet
}

func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	err := schema.Run(&schema.Compiler{
		ProjectDir: p.ProjectDir,
		Config:     p.Config,
		Protoc:     p.Protoc,
		Log:        p.Log,
	})
	if err != nil {
		return nil, err
	}

	if p.Env.DocsBuild {
		p.Log.Info("%s is set, skipping native OR-Tools", config.EnvDocsBuild)
		return &Result{}, nil
	}

	res, err := supply.Run(ctx, &supply.Supplier{
		Env:      p.Env,
		Config:   p.Config,
		Target:   p.Target,
		Probe:    p.Probe,
		OutDir:   p.OutDir,
		Acquirer: p.Acquirer,
		YAML:     p.YAML,
		Log:      p.Log,
	})
	if err != nil {
		return nil, err
	}

	links, err := finalize.Run(&finalize.Finalizer{
		Prefix:     res.Prefix,
		Target:     p.Target,
		OutDir:     p.OutDir,
		ProjectDir: p.ProjectDir,
		Config:     p.Config,
		Compiler:   p.Compiler,
		Archiver:   p.Archiver,
		YAML:       p.YAML,
		Log:        p.Log,
		Out:        p.Out,
	})
	if err != nil {
		return nil, err
	}

	return &Result{Native: true, Resolution: res, Links: links}, nil
}
