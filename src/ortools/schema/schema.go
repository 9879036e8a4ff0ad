package schema

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudfoundry/libbuildpack"
	"github.com/cpsat-go/ortools-buildpack/src/ortools"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/config"
	"github.com/paketo-buildpacks/packit/v2/pexec"
)

type Executable interface {
	Execute(pexec.Execution) error
}

// Compiler generates Go types for the CP-SAT model and parameter schemas.
type Compiler struct {
	ProjectDir string
	Config     config.Config
	Protoc     Executable
	Log        *libbuildpack.Logger
}

func Run(c *Compiler) error {
	if err := c.Compile(); err != nil {
		c.Log.Error("Unable to compile schemas: %s", err.Error())
		return err
	}
	return nil
}

func (c *Compiler) Compile() error {
	c.Log.BeginStep("Compiling schemas")

	include := c.path(c.Config.ProtoInclude)
	for _, proto := range c.Config.Protos {
		exists, err := libbuildpack.FileExists(filepath.Join(include, proto))
		if err != nil {
			return ortools.Wrap(ortools.ErrSchemaCompilationFailed, "compile schema", proto, err)
		}
		if !exists {
			return ortools.Errorf(ortools.ErrSchemaCompilationFailed, "compile schema", filepath.Join(include, proto), "file does not exist")
		}
	}

	goOut := c.path(c.Config.GoOut)
	if err := os.MkdirAll(goOut, 0755); err != nil {
		return ortools.Wrap(ortools.ErrSchemaCompilationFailed, "compile schema", goOut, err)
	}

	args := []string{
		"--proto_path=" + include,
		"--go_out=" + goOut,
		"--go_opt=paths=source_relative",
	}
	args = append(args, c.Config.Protos...)

	output := new(bytes.Buffer)
	err := c.Protoc.Execute(pexec.Execution{
		Args:   args,
		Dir:    c.ProjectDir,
		Stdout: output,
		Stderr: output,
	})
	if err != nil {
		if out := strings.TrimSpace(output.String()); out != "" {
			err = fmt.Errorf("%w\n%s", err, out)
		}
		return ortools.Wrap(ortools.ErrSchemaCompilationFailed, "protoc", strings.Join(c.Config.Protos, ","), err)
	}

	c.Log.Info("Generated %s into %s", strings.Join(c.Config.Protos, ", "), goOut)
	return nil
}

func (c *Compiler) path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectDir, p)
}
