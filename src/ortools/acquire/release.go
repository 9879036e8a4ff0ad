package acquire

import (
	"fmt"
	"strings"

	"github.com/cpsat-go/ortools-buildpack/src/ortools/platform"
)

const (
	project     = "or-tools"
	releasePath = "google/or-tools/releases/download"
)

// Release identifies one published OR-Tools C++ archive.
type Release struct {
	Host     string
	Version  string
	Patch    string
	Platform platform.Identifiers
}

// URL is the download location of the archive.
//
//	https://<host>/google/or-tools/releases/download/v<version>/or-tools_<url-id>_cpp_v<version>.<patch>.<ext>
func (r Release) URL() string {
	return fmt.Sprintf("%s/%s/v%s/%s_%s_cpp_v%s.%s.%s",
		r.base(), releasePath, r.Version, project, r.Platform.URL, r.Version, r.Patch, r.Platform.Target.ArchiveExt())
}

// DirName is the top-level directory every archive entry is nested under.
func (r Release) DirName() string {
	return fmt.Sprintf("%s_%s_cpp_v%s.%s", project, r.Platform.Dir, r.Version, r.Patch)
}

func (r Release) base() string {
	host := strings.TrimSuffix(r.Host, "/")
	if strings.Contains(host, "://") {
		return host
	}
	return "https://" + host
}
