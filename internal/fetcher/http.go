package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/google/uuid"

	"treeprobe/internal/errors"
)

// HTTPFetcher retrieves tree content over HTTP(S).
type HTTPFetcher struct {
	location   string
	scratchDir string
	client     *http.Client
}

func (f *HTTPFetcher) Location() string {
	return f.location
}

func (f *HTTPFetcher) url(relpath string) string {
	return f.location + "/" + relpath
}

func (f *HTTPFetcher) HasFile(relpath string) bool {
	resp, err := f.client.Head(f.url(relpath))
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (f *HTTPFetcher) AcquireFileContent(relpath string) (string, error) {
	resp, err := f.client.Get(f.url(relpath))
	if err != nil {
		return "", errors.EPath("fetch", relpath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: %w", relpath, ErrNotFound)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxMetadataSize))
	if err != nil {
		return "", errors.EPath("read", relpath, err)
	}
	return string(data), nil
}

// AcquireFile downloads relpath into the scratch directory and returns
// the local path. A spinner keeps long kernel/initrd downloads from
// looking hung.
func (f *HTTPFetcher) AcquireFile(relpath string) (string, error) {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(color.CyanString(" Downloading %s..."), f.url(relpath))
	s.Start()
	defer s.Stop()

	resp, err := f.client.Get(f.url(relpath))
	if err != nil {
		return "", errors.EPath("fetch", relpath, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: %w", relpath, ErrNotFound)
	}

	// Unique names so concurrent downloads of equally-named artifacts
	// (every distro calls its kernel "linux") never collide.
	name := fmt.Sprintf("%s-%s", uuid.NewString()[:8], path.Base(relpath))
	local := filepath.Join(f.scratchDir, name)
	out, err := os.Create(local)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(local)
		return "", errors.EPath("download", relpath, err)
	}
	return local, nil
}

func (f *HTTPFetcher) CanAccess() bool {
	resp, err := f.client.Get(f.location)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode < 400
}
