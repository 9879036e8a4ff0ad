package platform

import (
	"fmt"
	"strings"
)

// TargetSpec is a build target triple such as x86_64-unknown-linux-gnu.
type TargetSpec string

const (
	TargetLinuxAmd64   TargetSpec = "x86_64-unknown-linux-gnu"
	TargetLinuxArm64   TargetSpec = "aarch64-unknown-linux-gnu"
	TargetWindowsAmd64 TargetSpec = "x86_64-pc-windows-msvc"
	TargetDarwinArm64  TargetSpec = "aarch64-apple-darwin"
)

var hostTargets = map[string]TargetSpec{
	"linux/amd64":   TargetLinuxAmd64,
	"linux/arm64":   TargetLinuxArm64,
	"windows/amd64": TargetWindowsAmd64,
	"darwin/arm64":  TargetDarwinArm64,
	"darwin/amd64":  "x86_64-apple-darwin",
}

// HostTarget maps a GOOS/GOARCH pair to its target triple. Pairs without a
// known triple still produce one so that Resolve can name it in its error.
func HostTarget(goos, goarch string) TargetSpec {
	if t, ok := hostTargets[goos+"/"+goarch]; ok {
		return t
	}
	return TargetSpec(fmt.Sprintf("%s-unknown-%s", goarch, goos))
}

func (t TargetSpec) String() string {
	return string(t)
}

// IsWindows reports whether the triple names a Windows target.
func (t TargetSpec) IsWindows() bool {
	return strings.Contains(string(t), "-windows")
}

// IsMSVC reports whether the triple uses the MSVC toolchain and ABI.
func (t TargetSpec) IsMSVC() bool {
	return strings.HasSuffix(string(t), "-msvc")
}

// IsDarwin reports whether the triple names a macOS target.
func (t TargetSpec) IsDarwin() bool {
	return strings.Contains(string(t), "-apple-darwin")
}

// ArchiveExt is the release archive suffix published for the target.
func (t TargetSpec) ArchiveExt() string {
	if t.IsWindows() {
		return "zip"
	}
	return "tar.gz"
}

// StaticLibExt is the suffix of static and import libraries on the target.
func (t TargetSpec) StaticLibExt() string {
	if t.IsWindows() {
		return ".lib"
	}
	return ".a"
}

// SharedLibExt is the suffix of the single shared artifact a release may ship.
func (t TargetSpec) SharedLibExt() string {
	switch {
	case t.IsWindows():
		return ".dll"
	case t.IsDarwin():
		return ".dylib"
	default:
		return ".so"
	}
}
