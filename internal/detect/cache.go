package detect

import (
	"regexp"
	"strings"

	"treeprobe/internal/fetcher"
)

// Cache memoizes metadata fetches and parses for one detection call.
// Detectors probe overlapping files; the cache guarantees at most one
// transport round-trip per path per call. A fetch miss is remembered as
// absent and never retried.
type Cache struct {
	fetcher fetcher.Fetcher

	// files maps tree-relative path to content; a nil entry records a
	// fetch that was attempted and failed.
	files map[string]*string

	treeinfo          *TreeInfo
	treeinfoErr       error
	treeinfoAttempted bool

	suseContent   *SUSEContent
	suseAttempted bool

	debianMediaType string
}

func newCache(f fetcher.Fetcher) *Cache {
	return &Cache{
		fetcher: f,
		files:   make(map[string]*string),
	}
}

// AcquireFileContent fetches path once and memoizes the result. All
// transport errors are normalized to "absent"; no fetch error escapes
// the cache into detector logic.
func (c *Cache) AcquireFileContent(path string) (string, bool) {
	if content, ok := c.files[path]; ok {
		if content == nil {
			return "", false
		}
		return *content, true
	}

	content, err := c.fetcher.AcquireFileContent(path)
	if err != nil {
		logger.Debug("failed to acquire file", "path", path, "err", err)
		c.files[path] = nil
		return "", false
	}
	c.files[path] = &content
	return content, true
}

// TreeInfo lazily fetches and parses the tree descriptor. An absent
// .treeinfo returns (nil, nil). A .treeinfo that is present but has no
// family entry is a hard error that aborts the whole detection: every
// descriptor-based detector would fail on the same bytes, and a broken
// mirror should be reported rather than classified as "no distro".
// Note the asymmetry with fetch misses, which are silently absent.
func (c *Cache) TreeInfo() (*TreeInfo, error) {
	if c.treeinfoAttempted {
		return c.treeinfo, c.treeinfoErr
	}
	c.treeinfoAttempted = true

	content, ok := c.AcquireFileContent(".treeinfo")
	if !ok {
		return nil, nil
	}
	ti, err := ParseTreeInfo(content)
	if err != nil {
		c.treeinfoErr = err
		return nil, err
	}
	c.treeinfo = ti
	logger.Debug("parsed treeinfo", "family", ti.Family, "version", ti.Version)
	return ti, nil
}

// TreeInfoFamilyMatches reports whether a tree descriptor exists and
// its family matches re. No descriptor is a plain false, not an error.
func (c *Cache) TreeInfoFamilyMatches(re *regexp.Regexp) (bool, error) {
	ti, err := c.TreeInfo()
	if err != nil {
		return false, err
	}
	if ti == nil {
		return false, nil
	}
	if !re.MatchString(ti.Family) {
		logger.Debug("treeinfo family did not match", "family", ti.Family, "regex", re.String())
		return false, nil
	}
	return true, nil
}

// ContentMatches fetches path and reports whether any of its lines
// matches re. An absent file is false.
func (c *Cache) ContentMatches(path string, re *regexp.Regexp) bool {
	content, ok := c.AcquireFileContent(path)
	if !ok {
		return false
	}
	for _, line := range strings.Split(content, "\n") {
		if re.MatchString(line) {
			return true
		}
	}
	logger.Debug("file present but regex did not match", "path", path, "regex", re.String())
	return false
}

// SUSEContent lazily parses the vendor content manifest. Both a fetch
// miss and a parse failure are memoized as nil so later SUSE variants
// do not retry; the attempted flag is the "failed, do not retry"
// sentinel distinct from "not yet attempted".
func (c *Cache) SUSEContent() *SUSEContent {
	if c.suseAttempted {
		return c.suseContent
	}
	c.suseAttempted = true

	content, ok := c.AcquireFileContent("content")
	if !ok {
		return nil
	}
	sc, err := ParseSUSEContent(content)
	if err != nil {
		logger.Debug("error parsing SUSE content file", "err", err)
		return nil
	}
	c.suseContent = sc
	return sc
}
