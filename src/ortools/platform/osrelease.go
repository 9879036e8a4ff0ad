package platform

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Masterminds/semver"
)

// DefaultOSReleasePath is where systemd-era distributions describe themselves.
const DefaultOSReleasePath = "/etc/os-release"

// OSRelease is the probed distribution of the running system.
type OSRelease struct {
	ID        string
	VersionID string
}

func (o OSRelease) String() string {
	if o.ID == "" {
		return "unknown"
	}
	return o.ID + " " + o.VersionID
}

// Version is a distribution release number reduced to (major, minor).
type Version struct {
	Major int64
	Minor int64
}

// ParseVersion reads distribution versions such as "22.04" or "12".
func ParseVersion(s string) (Version, error) {
	v, err := semver.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("parsing distribution version %q: %w", s, err)
	}
	return Version{Major: v.Major(), Minor: v.Minor()}, nil
}

// ProbeOSRelease reads the ID and VERSION_ID fields of an os-release file.
func ProbeOSRelease(path string) (OSRelease, error) {
	f, err := os.Open(path)
	if err != nil {
		return OSRelease{}, err
	}
	defer f.Close()

	return ParseOSRelease(f)
}

// ParseOSRelease parses os-release(5) content.
func ParseOSRelease(r io.Reader) (OSRelease, error) {
	var rel OSRelease

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = unquote(value)

		switch key {
		case "ID":
			rel.ID = strings.ToLower(value)
		case "VERSION_ID":
			rel.VersionID = value
		}
	}
	if err := scanner.Err(); err != nil {
		return OSRelease{}, fmt.Errorf("reading os-release: %w", err)
	}

	return rel, nil
}

func unquote(value string) string {
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		if value[0] == '"' {
			if s, err := strconv.Unquote(value); err == nil {
				return s
			}
		}
		return value[1 : len(value)-1]
	}
	return value
}
