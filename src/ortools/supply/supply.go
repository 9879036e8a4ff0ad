package supply

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cloudfoundry/libbuildpack"
	"github.com/cpsat-go/ortools-buildpack/src/ortools"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/acquire"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/config"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/platform"
)

// ResolutionFile is written to the output directory for the finalize phase.
const ResolutionFile = "ortools-resolved.yml"

type Acquirer interface {
	Acquire(ctx context.Context, rel acquire.Release, scratchDir string) (string, error)
}

type YAML interface {
	Load(file string, obj interface{}) error
	Write(dest string, obj interface{}) error
}

// Resolution is the one installation every later step derives its paths from.
type Resolution struct {
	Prefix     string `yaml:"prefix"`
	Target     string `yaml:"target"`
	URLID      string `yaml:"url_id,omitempty"`
	DirID      string `yaml:"dir_id,omitempty"`
	Downloaded bool   `yaml:"downloaded"`
}

type Supplier struct {
	Env    config.Env
	Config config.Config
	Target platform.TargetSpec
	Probe  platform.OSRelease
	OutDir string

	Acquirer Acquirer
	YAML     YAML
	Log      *libbuildpack.Logger
}

func Run(ctx context.Context, ss *Supplier) (Resolution, error) {
	res, err := ss.Resolve(ctx)
	if err != nil {
		ss.Log.Error("Unable to resolve OR-Tools: %s", err.Error())
		return Resolution{}, err
	}

	if err := ss.WriteResolution(res); err != nil {
		ss.Log.Error("Unable to record resolved OR-Tools: %s", err.Error())
		return Resolution{}, err
	}

	return res, nil
}

// Resolve returns the user's installation when ORTOOLS_PREFIX is set, and
// otherwise downloads the release matching Target. A broken override is an
// error rather than a reason to download.
func (ss *Supplier) Resolve(ctx context.Context) (Resolution, error) {
	ss.Log.BeginStep("Resolving OR-Tools installation")

	if ss.Env.Prefix != "" {
		if !ss.Env.ForceDownload {
			return ss.Locate()
		}
		ss.Log.Warning("%s is set, ignoring %s=%s", config.EnvForceDownload, config.EnvPrefix, ss.Env.Prefix)
	}

	return ss.Download(ctx)
}

// Locate validates the ORTOOLS_PREFIX override.
func (ss *Supplier) Locate() (Resolution, error) {
	prefix := ss.Env.Prefix

	info, err := os.Stat(prefix)
	if err != nil {
		return Resolution{}, ortools.Wrap(ortools.ErrInvalidConfiguration, config.EnvPrefix, prefix, err)
	}
	if !info.IsDir() {
		return Resolution{}, ortools.Errorf(ortools.ErrInvalidConfiguration, config.EnvPrefix, prefix, "not a directory")
	}

	ss.Log.Info("Using %s %s", config.EnvPrefix, prefix)
	return Resolution{Prefix: prefix, Target: ss.Target.String()}, nil
}

// Download resolves the platform identifiers and hands the release to the Acquirer.
func (ss *Supplier) Download(ctx context.Context) (Resolution, error) {
	ids, err := platform.Resolve(ss.Target, ss.Probe)
	if err != nil {
		return Resolution{}, err
	}

	if ids.Fallback {
		ss.Log.Warning("%s %s is not a known release, falling back to the %s %s archive", ids.Distribution, ss.Probe.VersionID, ids.Distribution, ids.Release)
	}
	ss.Log.Info("Detected %s", ids)

	if err := os.MkdirAll(ss.OutDir, 0755); err != nil {
		return Resolution{}, ortools.Wrap(ortools.ErrExtractionFailed, "create scratch directory", ss.OutDir, err)
	}

	rel := acquire.Release{
		Host:     ss.Config.DownloadHost,
		Version:  ss.Config.Version,
		Patch:    ss.Config.Patch,
		Platform: ids,
	}

	prefix, err := ss.Acquirer.Acquire(ctx, rel, ss.OutDir)
	if err != nil {
		return Resolution{}, err
	}

	return Resolution{
		Prefix:     prefix,
		Target:     ids.Target.String(),
		URLID:      ids.URL,
		DirID:      ids.Dir,
		Downloaded: true,
	}, nil
}

func (ss *Supplier) WriteResolution(res Resolution) error {
	return ss.YAML.Write(filepath.Join(ss.OutDir, ResolutionFile), res)
}

// LoadResolution reads what a previous supply phase wrote to outDir.
func LoadResolution(y YAML, outDir string) (Resolution, error) {
	var res Resolution
	if err := y.Load(filepath.Join(outDir, ResolutionFile), &res); err != nil {
		return Resolution{}, err
	}
	if res.Prefix == "" {
		return Resolution{}, ortools.Errorf(ortools.ErrInvalidConfiguration, "load resolution", outDir, "%s has no prefix", ResolutionFile)
	}
	return res, nil
}
