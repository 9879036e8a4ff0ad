package finalize

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/cloudfoundry/libbuildpack"
	"github.com/cpsat-go/ortools-buildpack/src/ortools"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/config"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/platform"
	"github.com/paketo-buildpacks/packit/v2/pexec"
)

// LinkFile is written to the output directory next to the shim archive.
const LinkFile = "ortools-link.yml"

const shimName = "cp_sat_wrapper"

type Executable interface {
	Execute(pexec.Execution) error
}

type YAML interface {
	Load(file string, obj interface{}) error
	Write(dest string, obj interface{}) error
}

type Finalizer struct {
	Prefix     string
	Target     platform.TargetSpec
	OutDir     string
	ProjectDir string
	Config     config.Config

	Compiler Executable
	Archiver Executable
	YAML     YAML
	Log      *libbuildpack.Logger

	// Out receives one directive per line.
	Out io.Writer
}

func Run(f *Finalizer) (LinkSet, error) {
	archive, err := f.Compile()
	if err != nil {
		f.Log.Error("Unable to compile the CP-SAT shim: %s", err.Error())
		return LinkSet{}, err
	}

	links, err := f.EmitLinkDirectives()
	if err != nil {
		f.Log.Error("Unable to emit link directives: %s", err.Error())
		return LinkSet{}, err
	}
	links.Archive = archive

	if err := f.WriteDirectives(links); err != nil {
		f.Log.Error("Unable to write link directives: %s", err.Error())
		return LinkSet{}, err
	}

	if err := f.WriteCgoFile(links); err != nil {
		f.Log.Error("Unable to write %s: %s", f.Config.CgoOutput, err.Error())
		return LinkSet{}, err
	}

	return links, nil
}

// Toolchain picks the compiler and archiver for target. MSVC targets always
// use cl and lib.
func Toolchain(target platform.TargetSpec, env config.Env) (string, string) {
	if target.IsMSVC() {
		return "cl", "lib"
	}

	cxx, ar := env.CXX, env.AR
	if cxx == "" {
		cxx = "c++"
	}
	if ar == "" {
		ar = "ar"
	}
	return cxx, ar
}

// Compile builds the shim against <prefix>/include into a static archive in
// OutDir and returns the archive path.
func (f *Finalizer) Compile() (string, error) {
	f.Log.BeginStep("Compiling %s", f.Config.ShimSource)

	shim := f.Config.ShimSource
	if !filepath.IsAbs(shim) {
		shim = filepath.Join(f.ProjectDir, shim)
	}

	exists, err := libbuildpack.FileExists(shim)
	if err != nil {
		return "", ortools.Wrap(ortools.ErrCompilationFailed, "compile", shim, err)
	}
	if !exists {
		return "", ortools.Errorf(ortools.ErrCompilationFailed, "compile", shim, "source file does not exist")
	}

	if err := os.MkdirAll(f.OutDir, 0755); err != nil {
		return "", ortools.Wrap(ortools.ErrCompilationFailed, "compile", f.OutDir, err)
	}

	include := filepath.Join(f.Prefix, "include")
	compileArgs, archiveArgs, archive := f.commands(shim, include)

	f.Log.Debug("%s", strings.Join(compileArgs, " "))
	if err := run(f.Compiler, compileArgs); err != nil {
		return "", ortools.Wrap(ortools.ErrCompilationFailed, "compile", shim, err)
	}

	f.Log.Debug("%s", strings.Join(archiveArgs, " "))
	if err := run(f.Archiver, archiveArgs); err != nil {
		return "", ortools.Wrap(ortools.ErrCompilationFailed, "archive", archive, err)
	}

	f.Log.Info("Built %s", archive)
	return archive, nil
}

func (f *Finalizer) commands(shim, include string) ([]string, []string, string) {
	if f.Target.IsMSVC() {
		obj := filepath.Join(f.OutDir, shimName+".obj")
		archive := filepath.Join(f.OutDir, shimName+".lib")
		return []string{"/std:c++20", "/EHsc", "/I" + include, "/c", shim, "/Fo" + obj},
			[]string{"/OUT:" + archive, obj},
			archive
	}

	obj := filepath.Join(f.OutDir, shimName+".o")
	archive := filepath.Join(f.OutDir, "lib"+shimName+".a")
	return []string{"-std=c++20", "-I" + include, "-c", shim, "-o", obj},
		[]string{"crs", archive, obj},
		archive
}

func run(exe Executable, args []string) error {
	output := new(bytes.Buffer)
	err := exe.Execute(pexec.Execution{
		Args:   args,
		Stdout: output,
		Stderr: output,
	})
	if err != nil {
		if out := strings.TrimSpace(output.String()); out != "" {
			return fmt.Errorf("%w\n%s", err, out)
		}
		return err
	}
	return nil
}

// EmitLinkDirectives scans <prefix>/lib. Static or import libraries of the
// target's suffix win; without any, a single libortools shared artifact is
// linked dynamically.
func (f *Finalizer) EmitLinkDirectives() (LinkSet, error) {
	f.Log.BeginStep("Scanning OR-Tools libraries")

	libDir := filepath.Join(f.Prefix, "lib")
	links := LinkSet{
		Prefix:     f.Prefix,
		Target:     f.Target.String(),
		IncludeDir: filepath.Join(f.Prefix, "include"),
		SearchDir:  libDir,
		StaticExt:  f.Target.StaticLibExt(),
	}

	entries, err := os.ReadDir(libDir)
	if err != nil {
		return LinkSet{}, ortools.Wrap(ortools.ErrLinkEmissionFailed, "read library directory", libDir, err)
	}

	seen := map[string]bool{}
	var shared string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		ext := filepath.Ext(name)
		if strings.EqualFold(ext, links.StaticExt) {
			lib := strings.TrimSuffix(name, ext)
			if !seen[lib] {
				seen[lib] = true
				links.Static = append(links.Static, lib)
			}
			continue
		}

		if shared == "" && isSharedArtifact(name, f.Target) {
			shared = name
		}

		f.Log.Debug("Skipping %s", name)
	}
	sort.Strings(links.Static)

	switch {
	case len(links.Static) > 0:
		f.Log.Info("Linking %d static libraries from %s", len(links.Static), libDir)
	case shared != "":
		links.Dynamic = "ortools"
		f.Log.Info("Linking %s dynamically", shared)
	default:
		return LinkSet{}, ortools.Errorf(ortools.ErrLinkEmissionFailed, "scan library directory", libDir, "no %s libraries found", links.StaticExt)
	}

	return links, nil
}

// isSharedArtifact matches libortools.so, libortools.so.9 and
// libortools.9.dylib. Windows releases link through import libraries only.
func isSharedArtifact(name string, target platform.TargetSpec) bool {
	ext := target.SharedLibExt()
	switch {
	case target.IsWindows() || !strings.HasPrefix(name, "libortools"):
		return false
	case target.IsDarwin():
		return strings.HasSuffix(name, ext)
	default:
		return strings.HasPrefix(name, "libortools"+ext)
	}
}

// WriteDirectives prints the directive set to Out and records it in
// <out>/ortools-link.yml.
func (f *Finalizer) WriteDirectives(links LinkSet) error {
	for _, d := range links.Directives() {
		if _, err := fmt.Fprintln(f.Out, d); err != nil {
			return ortools.Wrap(ortools.ErrLinkEmissionFailed, "print directive", d.String(), err)
		}
	}

	dest := filepath.Join(f.OutDir, LinkFile)
	if err := f.YAML.Write(dest, links); err != nil {
		return ortools.Wrap(ortools.ErrLinkEmissionFailed, "write", dest, err)
	}
	return nil
}

// WriteCgoFile renders the cgo preamble for the binding package into the
// project directory.
func (f *Finalizer) WriteCgoFile(links LinkSet) error {
	contents, err := f.generateCgoFile(links)
	if err != nil {
		return ortools.Wrap(ortools.ErrLinkEmissionFailed, "render", f.Config.CgoOutput, err)
	}

	dest := f.Config.CgoOutput
	if !filepath.IsAbs(dest) {
		dest = filepath.Join(f.ProjectDir, dest)
	}

	if err := os.WriteFile(dest, []byte(contents), 0644); err != nil {
		return ortools.Wrap(ortools.ErrLinkEmissionFailed, "write", dest, err)
	}

	f.Log.Info("Wrote %s", dest)
	return nil
}

func (f *Finalizer) generateCgoFile(links LinkSet) (string, error) {
	buffer := new(bytes.Buffer)

	t := template.Must(template.New("cgo").Parse(cgoTemplate))

	err := t.Execute(buffer, cgoData{
		Package:  f.Config.CgoPackage,
		CXXFlags: []string{"-std=c++20", "-I" + links.IncludeDir},
		LDFlags:  links.LDFlags(f.Target),
	})
	if err != nil {
		return "", err
	}
	return buffer.String(), nil
}
