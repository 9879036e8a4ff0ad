package config

import (
	"os"
	"path/filepath"
	"strings"
)

// FileName is the optional project file read from the project directory.
const FileName = "ortools.yml"

const (
	DefaultVersion      = "9.10"
	DefaultPatch        = "4067"
	DefaultDownloadHost = "github.com"
	DefaultShimSource   = "cp_sat_wrapper.cpp"
	DefaultCgoPackage   = "cpsat"
	DefaultCgoOutput    = "zz_ortools_cgo.go"
	DefaultProtoInclude = "proto"
	DefaultGoOut        = "."
)

// DefaultProtos are the schema files compiled ahead of the native pipeline.
var DefaultProtos = []string{"cp_model.proto", "sat_parameters.proto"}

type YAML interface {
	Load(file string, obj interface{}) error
	Write(dest string, obj interface{}) error
}

// Config is the content of ortools.yml with defaults applied.
type Config struct {
	Version      string   `yaml:"version"`
	Patch        string   `yaml:"patch"`
	DownloadHost string   `yaml:"download_host"`
	ShimSource   string   `yaml:"shim_source"`
	CgoPackage   string   `yaml:"cgo_package"`
	CgoOutput    string   `yaml:"cgo_output"`
	Protos       []string `yaml:"protos"`
	ProtoInclude string   `yaml:"proto_include"`
	GoOut        string   `yaml:"go_out"`
}

// Default returns the configuration used when ortools.yml is absent.
func Default() Config {
	var c Config
	c.applyDefaults()
	return c
}

// Load reads ortools.yml from projectDir. A missing file is not an error.
func Load(y YAML, projectDir string) (Config, error) {
	var c Config

	err := y.Load(filepath.Join(projectDir, FileName), &c)
	if err != nil && !os.IsNotExist(err) {
		return Config{}, err
	}

	c.applyDefaults()
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Patch == "" {
		c.Patch = DefaultPatch
	}
	if c.DownloadHost == "" {
		c.DownloadHost = DefaultDownloadHost
	}
	if c.ShimSource == "" {
		c.ShimSource = DefaultShimSource
	}
	if c.CgoPackage == "" {
		c.CgoPackage = DefaultCgoPackage
	}
	if c.CgoOutput == "" {
		c.CgoOutput = DefaultCgoOutput
	}
	if len(c.Protos) == 0 {
		c.Protos = append([]string(nil), DefaultProtos...)
	}
	if c.ProtoInclude == "" {
		c.ProtoInclude = DefaultProtoInclude
	}
	if c.GoOut == "" {
		c.GoOut = DefaultGoOut
	}
}

// WithEnv returns c with the release coordinates overridden by env.
func (c Config) WithEnv(env Env) Config {
	if env.Version != "" {
		c.Version = env.Version
	}
	if env.Patch != "" {
		c.Patch = env.Patch
	}
	if env.DownloadHost != "" {
		c.DownloadHost = env.DownloadHost
	}
	return c
}

func isEnabled(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "enabled", "yes":
		return true
	}
	return false
}
