package config

import "os"

// Environment variables read by Snapshot.
const (
	EnvPrefix        = "ORTOOLS_PREFIX"
	EnvDocsBuild     = "ORTOOLS_DOCS_BUILD"
	EnvForceDownload = "ORTOOLS_FORCE_DOWNLOAD"
	EnvTarget        = "ORTOOLS_TARGET"
	EnvOutDir        = "ORTOOLS_OUT_DIR"
	EnvVersion       = "ORTOOLS_VERSION"
	EnvPatch         = "ORTOOLS_PATCH"
	EnvDownloadHost  = "ORTOOLS_DOWNLOAD_HOST"
	EnvCXX           = "CXX"
	EnvAR            = "AR"
	EnvDebug         = "BP_DEBUG"
)

// Env is the build environment captured once at process start. Everything
// downstream branches on this value rather than on the live environment.
type Env struct {
	// Prefix is the user-supplied installation; empty when unset.
	Prefix string

	DocsBuild     bool
	ForceDownload bool

	Target       string
	OutDir       string
	Version      string
	Patch        string
	DownloadHost string
	CXX          string
	AR           string

	// Debug mirrors libbuildpack's Logger, which only logs debug lines for a
	// non-empty BP_DEBUG.
	Debug bool
}

// Snapshot captures Env through lookup, normally os.LookupEnv.
func Snapshot(lookup func(string) (string, bool)) Env {
	get := func(key string) string {
		v, _ := lookup(key)
		return v
	}

	return Env{
		Prefix:        get(EnvPrefix),
		DocsBuild:     isEnabled(get(EnvDocsBuild)),
		ForceDownload: isEnabled(get(EnvForceDownload)),
		Target:        get(EnvTarget),
		OutDir:        get(EnvOutDir),
		Version:       get(EnvVersion),
		Patch:         get(EnvPatch),
		DownloadHost:  get(EnvDownloadHost),
		CXX:           get(EnvCXX),
		AR:            get(EnvAR),
		Debug:         get(EnvDebug) != "",
	}
}

// FromOS is Snapshot over the process environment.
func FromOS() Env {
	return Snapshot(os.LookupEnv)
}
