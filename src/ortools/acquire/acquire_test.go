package acquire_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cloudfoundry/libbuildpack"
	"github.com/cloudfoundry/libbuildpack/ansicleaner"
	"github.com/cpsat-go/ortools-buildpack/src/ortools"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/acquire"
	"github.com/cpsat-go/ortools-buildpack/src/ortools/platform"
	"github.com/jarcoal/httpmock"
	"github.com/paketo-buildpacks/packit/v2/fs"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Release", func() {
	It("builds the download URL from the release coordinates", func() {
		rel := acquire.Release{
			Host:     "github.com",
			Version:  "9.10",
			Patch:    "4067",
			Platform: platform.Identifiers{Target: platform.TargetLinuxAmd64, URL: "amd64_ubuntu-22.04", Dir: "x86_64_Ubuntu-22.04"},
		}

		Expect(rel.URL()).To(Equal("https://github.com/google/or-tools/releases/download/v9.10/or-tools_amd64_ubuntu-22.04_cpp_v9.10.4067.tar.gz"))
		Expect(rel.DirName()).To(Equal("or-tools_x86_64_Ubuntu-22.04_cpp_v9.10.4067"))
	})

	It("uses the zip suffix for Windows", func() {
		rel := acquire.Release{
			Host:     "github.com",
			Version:  "9.10",
			Patch:    "4067",
			Platform: platform.Identifiers{Target: platform.TargetWindowsAmd64, URL: "x64_VisualStudio2022", Dir: "x64_VisualStudio2022"},
		}

		Expect(rel.URL()).To(Equal("https://github.com/google/or-tools/releases/download/v9.10/or-tools_x64_VisualStudio2022_cpp_v9.10.4067.zip"))
	})

	It("keeps an explicit scheme on the host", func() {
		rel := acquire.Release{
			Host:     "http://mirror.internal/",
			Version:  "9.10",
			Patch:    "4067",
			Platform: platform.Identifiers{Target: platform.TargetLinuxArm64, URL: "arm64_debian-12"},
		}

		Expect(rel.URL()).To(HavePrefix("http://mirror.internal/google/or-tools/"))
	})
})

var _ = Describe("Acquirer", func() {
	var (
		err        error
		root       string
		scratchDir string
		acquirer   *acquire.Acquirer
		buffer     *bytes.Buffer
		linuxRel   acquire.Release
		windowsRel acquire.Release
	)

	release := func(target platform.TargetSpec) acquire.Release {
		ids, err := platform.Resolve(target, platform.OSRelease{})
		Expect(err).To(BeNil())
		return acquire.Release{Host: "github.com", Version: "9.10", Patch: "4067", Platform: ids}
	}

	BeforeEach(func() {
		root, err = os.MkdirTemp("", "ortools-buildpack.acquire.")
		Expect(err).To(BeNil())

		scratchDir = filepath.Join(root, "scratch")
		Expect(os.MkdirAll(scratchDir, 0755)).To(Succeed())

		buffer = new(bytes.Buffer)
		acquirer = &acquire.Acquirer{Log: libbuildpack.NewLogger(ansicleaner.New(buffer))}

		linuxRel = release(platform.TargetLinuxArm64)
		windowsRel = release(platform.TargetWindowsAmd64)

		httpmock.Reset()
	})

	AfterEach(func() {
		Expect(os.RemoveAll(root)).To(Succeed())
	})

	Describe("tar.gz releases", func() {
		BeforeEach(func() {
			dir := linuxRel.DirName()
			httpmock.RegisterResponder("GET", linuxRel.URL(), httpmock.NewBytesResponder(200, tarGz(
				entry{dir + "/include/ortools/sat/cp_model.h", "// header"},
				entry{dir + "/lib/libortools.a", "archive"},
			)))
		})

		It("unpacks into <scratch>/<dir> and returns that path", func() {
			path, err := acquirer.Acquire(context.Background(), linuxRel, scratchDir)
			Expect(err).To(BeNil())
			Expect(path).To(Equal(filepath.Join(scratchDir, "or-tools_aarch64_Debian-12_cpp_v9.10.4067")))

			Expect(tree(path)).To(Equal([]string{
				"include/ortools/sat/cp_model.h=// header",
				"lib/libortools.a=archive",
			}))
		})

		It("logs the URL it downloads", func() {
			_, err = acquirer.Acquire(context.Background(), linuxRel, scratchDir)
			Expect(err).To(BeNil())
			Expect(buffer.String()).To(ContainSubstring("-----> Downloading OR-Tools 9.10.4067 for aarch64-unknown-linux-gnu"))
			Expect(buffer.String()).To(ContainSubstring("Using " + linuxRel.URL()))
		})
	})

	Describe("zip and tar.gz equivalence", func() {
		files := func(dir string) []entry {
			return []entry{
				{dir + "/include/h.h", "#pragma once"},
				{dir + "/lib/ortools.lib", "import library"},
				{dir + "/lib/cmake/ortoolsConfig.cmake", "set(x 1)"},
			}
		}

		BeforeEach(func() {
			httpmock.RegisterResponder("GET", linuxRel.URL(), httpmock.NewBytesResponder(200, tarGz(files(linuxRel.DirName())...)))
			httpmock.RegisterResponder("GET", windowsRel.URL(), httpmock.NewBytesResponder(200, zipped(files(windowsRel.DirName())...)))
		})

		It("produces identical trees on both code paths", func() {
			tarPath, err := acquirer.Acquire(context.Background(), linuxRel, filepath.Join(scratchDir, "tar"))
			Expect(err).To(BeNil())

			zipPath, err := acquirer.Acquire(context.Background(), windowsRel, filepath.Join(scratchDir, "zip"))
			Expect(err).To(BeNil())

			Expect(tree(tarPath)).NotTo(BeEmpty())
			Expect(tree(zipPath)).To(Equal(tree(tarPath)))
		})
	})

	Describe("unsafe zip entries", func() {
		BeforeEach(func() {
			httpmock.RegisterResponder("GET", windowsRel.URL(), httpmock.NewBytesResponder(200, zipped(
				entry{"../escaped.txt", "gotcha"},
				entry{windowsRel.DirName() + "/include/h.h", "#pragma once"},
			)))
		})

		It("rejects the archive without writing outside the scratch directory", func() {
			_, err = acquirer.Acquire(context.Background(), windowsRel, scratchDir)
			Expect(errors.Is(err, ortools.ErrExtractionFailed)).To(BeTrue())

			exists, err := fs.Exists(filepath.Join(root, "escaped.txt"))
			Expect(err).To(BeNil())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("unsafe tar entries", func() {
		BeforeEach(func() {
			httpmock.RegisterResponder("GET", linuxRel.URL(), httpmock.NewBytesResponder(200, tarGz(
				entry{"../../escaped.txt", "gotcha"},
			)))
		})

		It("rejects the archive", func() {
			_, err = acquirer.Acquire(context.Background(), linuxRel, scratchDir)
			Expect(errors.Is(err, ortools.ErrExtractionFailed)).To(BeTrue())

			exists, err := fs.Exists(filepath.Join(filepath.Dir(root), "escaped.txt"))
			Expect(err).To(BeNil())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("a corrupt body", func() {
		BeforeEach(func() {
			httpmock.RegisterResponder("GET", linuxRel.URL(), httpmock.NewStringResponder(200, "this is not gzip"))
		})

		It("fails with ErrExtractionFailed", func() {
			_, err = acquirer.Acquire(context.Background(), linuxRel, scratchDir)
			Expect(errors.Is(err, ortools.ErrExtractionFailed)).To(BeTrue())
		})
	})

	Describe("a non-200 response", func() {
		var calls int

		BeforeEach(func() {
			calls = 0
			httpmock.RegisterResponder("GET", linuxRel.URL(), func(req *http.Request) (*http.Response, error) {
				calls++
				return httpmock.NewStringResponse(404, "Not Found"), nil
			})
		})

		It("fails with ErrDownloadFailed naming the URL and status", func() {
			_, err = acquirer.Acquire(context.Background(), linuxRel, scratchDir)
			Expect(errors.Is(err, ortools.ErrDownloadFailed)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring(linuxRel.URL()))
			Expect(err.Error()).To(ContainSubstring("404"))
		})

		It("does not retry and writes nothing", func() {
			_, err = acquirer.Acquire(context.Background(), linuxRel, scratchDir)
			Expect(err).NotTo(BeNil())
			Expect(calls).To(Equal(1))
			Expect(fs.IsEmptyDir(scratchDir)).To(BeTrue())
		})
	})

	Describe("a transport error", func() {
		BeforeEach(func() {
			httpmock.RegisterResponder("GET", linuxRel.URL(), func(req *http.Request) (*http.Response, error) {
				return nil, errors.New("connection reset by peer")
			})
		})

		It("fails with ErrDownloadFailed", func() {
			_, err = acquirer.Acquire(context.Background(), linuxRel, scratchDir)
			Expect(errors.Is(err, ortools.ErrDownloadFailed)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("connection reset by peer"))
			Expect(fs.IsEmptyDir(scratchDir)).To(BeTrue())
		})
	})
})
