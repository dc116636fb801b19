// Package detect classifies OS installer trees. Given a fetcher rooted
// at a tree (an HTTP mirror or a mounted ISO), it works out which
// distribution and release the tree contains and which kernel/initrd or
// boot ISO paths boot its installer.
package detect

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"treeprobe/internal/fetcher"
)

// Guest types select which boot-artifact layout applies.
const (
	GuestTypeHVM = "hvm"
	GuestTypeXen = "xen"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "detect"})

// SetVerbose enables debug logging of every probe the engine makes.
func SetVerbose(v bool) {
	if v {
		logger.SetLevel(log.DebugLevel)
	}
}

// detector is one registered distro family: a cheap validity probe over
// the cache plus a constructor run once the probe passes.
type detector struct {
	prettyName string
	// urlDistro is the stable id users pass to prioritize this family.
	// Empty only for the generic fallback.
	urlDistro string
	isValid   func(c *Cache) (bool, error)
	create    func(f fetcher.Fetcher, arch, guestType string, c *Cache) (Distro, error)
}

// Detectors are tried in this order. The generic treeinfo detector must
// stay last: it matches any tree with a descriptor and would shadow the
// family-specific version heuristics.
var registry = validateRegistry([]*detector{
	fedoraDetector,
	rhelDetector,
	centosDetector,
	slesDetector,
	sledDetector,
	opensuseDetector,
	debianDetector,
	ubuntuDetector,
	altLinuxDetector,
	mandrivaDetector,
	genericTreeinfoDetector,
})

func validateRegistry(detectors []*detector) []*detector {
	seen := make(map[string]bool)
	for _, d := range detectors {
		if d.urlDistro == "" {
			continue
		}
		if seen[d.urlDistro] {
			panic(fmt.Sprintf("programming error: duplicate urldistro=%s", d.urlDistro))
		}
		seen[d.urlDistro] = true
	}
	return detectors
}

// Detect probes location through f and returns the first distro variant
// whose validity test passes. A distroHint matching a registered
// urldistro id moves that family to the front of the evaluation order;
// the generic fallback is never reordered. Each call uses a fresh
// metadata cache, so at most one fetch per path happens per call.
func Detect(f fetcher.Fetcher, arch, guestType, distroHint string) (Distro, error) {
	logger.Debug("finding distro store", "location", f.Location())
	cache := newCache(f)

	order := make([]*detector, len(registry))
	copy(order, registry)
	if distroHint != "" {
		for i, d := range order {
			if d.urlDistro != "" && d.urlDistro == distroHint {
				logger.Debug("prioritizing distro store", "urldistro", distroHint)
				copy(order[1:i+1], order[:i])
				order[0] = d
				break
			}
		}
	}

	for _, d := range order {
		ok, err := d.isValid(cache)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		store, err := d.create(f, arch, guestType, cache)
		if err != nil {
			return nil, err
		}
		logger.Debug("detected distro",
			"pretty_name", store.PrettyName(), "os_variant", store.OSVariant())
		return store, nil
	}

	// Nothing matched. Check whether the location resolves at all so
	// the user can tell a typo from an unrecognized tree. Not always
	// conclusive, some webservers forbid directory listing.
	extramsg := ""
	if !f.CanAccess() {
		extramsg = ": the location could not be accessed, maybe you mistyped?"
	}
	return nil, fmt.Errorf(
		"could not find an installable distribution at %q%s\n\n"+
			"The location must be the root directory of an install tree",
		f.Location(), extramsg)
}
