package acquire

import (
	"context"
	"io"
	"net/http"
	"path/filepath"

	"github.com/cloudfoundry/libbuildpack"
	"github.com/cpsat-go/ortools-buildpack/src/ortools"
	"github.com/paketo-buildpacks/packit/v2/fs"
	"github.com/paketo-buildpacks/packit/v2/vacation"
)

// Acquirer downloads a release archive and unpacks it into a scratch
// directory. Each call downloads again; reuse across builds is left to
// whoever owns the scratch directory.
type Acquirer struct {
	// Client defaults to http.DefaultClient. No timeout is applied.
	Client *http.Client
	Log    *libbuildpack.Logger
}

// Acquire fetches rel and returns scratchDir joined with rel.DirName(). The
// include/ and lib/ subdirectories are not checked here; a wrong layout
// surfaces when the shim is compiled and linked.
func (a *Acquirer) Acquire(ctx context.Context, rel Release, scratchDir string) (string, error) {
	url := rel.URL()

	a.Log.BeginStep("Downloading OR-Tools %s.%s for %s", rel.Version, rel.Patch, rel.Platform.Target)
	a.Log.Info("Using %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", ortools.Wrap(ortools.ErrDownloadFailed, "download", url, err)
	}

	resp, err := a.client().Do(req)
	if err != nil {
		return "", ortools.Wrap(ortools.ErrDownloadFailed, "download", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", ortools.Errorf(ortools.ErrDownloadFailed, "download", url, "server returned %s", resp.Status)
	}

	body := &countingReader{r: resp.Body}
	if err := a.decompressor(rel, body).Decompress(scratchDir); err != nil {
		return "", ortools.Wrap(ortools.ErrExtractionFailed, "extract", url, err)
	}
	a.Log.Debug("Read %d bytes from %s", body.n, url)

	dir := filepath.Join(scratchDir, rel.DirName())
	if exists, err := fs.Exists(dir); err != nil || !exists {
		a.Log.Warning("Archive did not contain the expected directory %s", rel.DirName())
	}

	a.Log.Info("Extracted to %s", dir)
	return dir, nil
}

// decompressor streams tarballs straight from the response. Zip needs random
// access, so ZipArchive buffers the whole body first. Both reject entries
// that would land outside the destination.
func (a *Acquirer) decompressor(rel Release, body io.Reader) vacation.Decompressor {
	if rel.Platform.Target.IsWindows() {
		return vacation.NewZipArchive(body)
	}
	return vacation.NewGzipArchive(body)
}

func (a *Acquirer) client() *http.Client {
	if a.Client != nil {
		return a.Client
	}
	return http.DefaultClient
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
