// Package fetcher retrieves files from an installer tree rooted at an
// HTTP(S) URL or a local directory. The detection engine only talks to
// trees through the Fetcher interface, so tests can substitute an
// in-memory implementation.
package fetcher

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNotFound reports that a probed path does not exist in the tree.
// Callers treat it as "keep looking", never as a fatal condition.
var ErrNotFound = errors.New("file not found in tree")

// Fetcher is the transport used to probe and retrieve tree content.
type Fetcher interface {
	// Location returns the tree root URL or directory path.
	Location() string
	// HasFile reports whether path exists relative to the tree root.
	HasFile(path string) bool
	// AcquireFileContent fetches path and returns its content.
	// Returns an error matching ErrNotFound when the path is absent.
	AcquireFileContent(path string) (string, error)
	// AcquireFile materializes path as a local file and returns its
	// filesystem location. Same not-found contract as
	// AcquireFileContent.
	AcquireFile(path string) (string, error)
	// CanAccess reports whether the tree root itself is reachable.
	// Only used to sharpen error messages, never for detection.
	CanAccess() bool
}

// maxMetadataSize bounds metadata fetches; no tree descriptor or
// manifest comes anywhere near this.
const maxMetadataSize = 8 * 1024 * 1024

// New returns a Fetcher for the given location. HTTP and HTTPS URLs get
// the network fetcher, anything else is treated as a local directory.
func New(location, scratchDir string) (Fetcher, error) {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return &HTTPFetcher{
			location:   strings.TrimSuffix(location, "/"),
			scratchDir: scratchDir,
			client:     &http.Client{Timeout: 60 * time.Second},
		}, nil
	case strings.Contains(location, "://"):
		return nil, fmt.Errorf("unsupported location scheme in %q (expected http, https, or a local path)", location)
	default:
		return &LocalFetcher{root: strings.TrimSuffix(location, "/")}, nil
	}
}
