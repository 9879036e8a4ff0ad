package finalize

import (
	"path/filepath"

	"github.com/cpsat-go/ortools-buildpack/src/ortools/platform"
)

type DirectiveKind string

const (
	LinkSearch DirectiveKind = "link-search"
	LinkLib    DirectiveKind = "link-lib"
	Include    DirectiveKind = "include"
	Archive    DirectiveKind = "archive"
)

// Directive is one line of build output, printed as ortools:<kind>=<value>.
type Directive struct {
	Kind  DirectiveKind
	Value string
}

func (d Directive) String() string {
	return "ortools:" + string(d.Kind) + "=" + d.Value
}

// LinkSet is everything the final link needs, derived from one prefix.
type LinkSet struct {
	Prefix     string   `yaml:"prefix"`
	Target     string   `yaml:"target"`
	IncludeDir string   `yaml:"include_dir"`
	SearchDir  string   `yaml:"search_dir"`
	Static     []string `yaml:"static_libs,omitempty"`
	Dynamic    string   `yaml:"dynamic_lib,omitempty"`
	Archive    string   `yaml:"shim_archive"`
	StaticExt  string   `yaml:"static_ext"`
}

func (l LinkSet) Directives() []Directive {
	directives := []Directive{{LinkSearch, "native=" + l.SearchDir}}

	for _, lib := range l.Static {
		directives = append(directives, Directive{LinkLib, "static=" + lib})
	}
	if l.Dynamic != "" {
		directives = append(directives, Directive{LinkLib, "dylib=" + l.Dynamic})
	}

	directives = append(directives, Directive{Include, l.IncludeDir})
	if l.Archive != "" {
		directives = append(directives, Directive{Archive, l.Archive})
	}
	return directives
}

// LDFlags renders the set for a cgo LDFLAGS line. Unix archives are passed by
// path since their stems keep the lib prefix; MSVC resolves -l<name> against
// -L.
func (l LinkSet) LDFlags(target platform.TargetSpec) []string {
	windows := target.IsWindows()

	var flags []string
	if l.Archive != "" {
		flags = append(flags, l.Archive)
	}

	flags = append(flags, "-L"+l.SearchDir)
	for _, lib := range l.Static {
		if windows {
			flags = append(flags, "-l"+lib)
		} else {
			flags = append(flags, filepath.Join(l.SearchDir, lib+l.StaticExt))
		}
	}
	if l.Dynamic != "" {
		flags = append(flags, "-l"+l.Dynamic)
	}

	switch {
	case target.IsDarwin():
		flags = append(flags, "-lc++")
	case !windows:
		flags = append(flags, "-lstdc++")
	}
	return flags
}
