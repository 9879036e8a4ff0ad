package platform

import (
	"fmt"
	"sort"

	"github.com/cpsat-go/ortools-buildpack/src/ortools"
)

// Identifiers is the pair of platform tokens for one target. URL is spliced
// into the release download URL, Dir into the name of the directory the
// release archive unpacks to. Both come from the same table row so they
// never disagree about the detected platform.
type Identifiers struct {
	Target       TargetSpec
	URL          string
	Dir          string
	Distribution string
	Release      string

	// Fallback is set when the detected distribution version was not in the
	// table and the lowest supported release was chosen instead.
	Fallback bool
}

func (i Identifiers) String() string {
	if i.Distribution == "" {
		return fmt.Sprintf("%s (%s)", i.Target, i.URL)
	}
	return fmt.Sprintf("%s on %s %s (%s)", i.Target, i.Distribution, i.Release, i.URL)
}

var fixedTargets = map[TargetSpec]Identifiers{
	TargetWindowsAmd64: {URL: "x64_VisualStudio2022", Dir: "x64_VisualStudio2022"},
	TargetLinuxArm64:   {URL: "arm64_debian-12", Dir: "aarch64_Debian-12"},
	TargetDarwinArm64:  {URL: "arm64_macOS-14.4.1", Dir: "arm64_macOS-14.4.1"},
}

type release struct {
	version Version
	label   string
}

type distribution struct {
	urlName string
	dirName string

	// releases is ordered from the lowest supported version upwards.
	releases []release
}

// The amd64 Linux target is published per distribution release.
const (
	distroTarget  = TargetLinuxAmd64
	distroURLArch = "amd64"
	distroDirArch = "x86_64"
)

var distributions = map[string]distribution{
	"ubuntu": {
		urlName: "ubuntu",
		dirName: "Ubuntu",
		releases: []release{
			{Version{22, 4}, "22.04"},
			{Version{24, 4}, "24.04"},
		},
	},
	"debian": {
		urlName: "debian",
		dirName: "Debian",
		releases: []release{
			{Version{11, 0}, "11"},
			{Version{12, 0}, "12"},
		},
	},
}

// Resolve maps target, refined by probe for the amd64 Linux target, to its
// identifier pair.
func Resolve(target TargetSpec, probe OSRelease) (Identifiers, error) {
	if ids, ok := fixedTargets[target]; ok {
		ids.Target = target
		return ids, nil
	}

	if target != distroTarget {
		return Identifiers{}, ortools.Errorf(ortools.ErrUnsupportedPlatform, "resolve target", string(target), "no release archive is published for this target")
	}

	distro, ok := distributions[probe.ID]
	if !ok {
		name := probe.ID
		if name == "" {
			name = "unknown"
		}
		return Identifiers{}, ortools.Errorf(ortools.ErrUnsupportedPlatform, "resolve distribution", name, "no release archive is published for this distribution on %s", target)
	}

	rel, fallback := distro.lookup(probe.VersionID)

	return Identifiers{
		Target:       target,
		URL:          fmt.Sprintf("%s_%s-%s", distroURLArch, distro.urlName, rel.label),
		Dir:          fmt.Sprintf("%s_%s-%s", distroDirArch, distro.dirName, rel.label),
		Distribution: probe.ID,
		Release:      rel.label,
		Fallback:     fallback,
	}, nil
}

// lookup returns the release matching versionID on (major, minor). An
// unparsable or unknown version resolves to the lowest supported release and
// reports fallback.
func (d distribution) lookup(versionID string) (release, bool) {
	v, err := ParseVersion(versionID)
	if err == nil {
		for _, r := range d.releases {
			if r.version == v {
				return r, false
			}
		}
	}
	return d.releases[0], true
}

// Supported lists every target that Resolve can map to a release.
func Supported() []TargetSpec {
	targets := []TargetSpec{distroTarget}
	for t := range fixedTargets {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets
}

// Distributions lists the distribution IDs accepted for the amd64 Linux target.
func Distributions() []string {
	ids := make([]string, 0, len(distributions))
	for id := range distributions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
