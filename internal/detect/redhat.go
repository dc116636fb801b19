package detect

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"treeprobe/internal/fetcher"
	"treeprobe/internal/osdict"
)

var (
	reFedoraFamily = regexp.MustCompile(`.*Fedora.*`)
	// Matches "Red Hat Enterprise Linux" and "RHEL Atomic Host".
	reRHELFamily   = regexp.MustCompile(`.*(Red Hat Enterprise Linux|RHEL).*`)
	reCentOSFamily = regexp.MustCompile(`.*(CentOS|Scientific).*`)
)

var fedoraDetector = &detector{
	prettyName: "Fedora",
	urlDistro:  "fedora",
	isValid: func(c *Cache) (bool, error) {
		return c.TreeInfoFamilyMatches(reFedoraFamily)
	},
	create: func(f fetcher.Fetcher, arch, guestType string, c *Cache) (Distro, error) {
		version, osVariant := parseFedoraVersion(c)
		return newTreeinfoStore(f, arch, guestType, c,
			"Fedora", "fedora", version, osVariant)
	},
}

var rhelDetector = &detector{
	prettyName: "Red Hat Enterprise Linux",
	urlDistro:  "rhel",
	isValid: func(c *Cache) (bool, error) {
		return c.TreeInfoFamilyMatches(reRHELFamily)
	},
	create: newRHELFamilyCreate("Red Hat Enterprise Linux", "rhel"),
}

var centosDetector = &detector{
	prettyName: "CentOS",
	urlDistro:  "centos",
	isValid: func(c *Cache) (bool, error) {
		return c.TreeInfoFamilyMatches(reCentOSFamily)
	},
	create: newRHELFamilyCreate("CentOS", "centos"),
}

// genericTreeinfoDetector is the catchall for any tree that ships a
// descriptor but matches no family-specific detector. It infers no
// version or variant.
var genericTreeinfoDetector = &detector{
	prettyName: "Generic Treeinfo",
	isValid: func(c *Cache) (bool, error) {
		ti, err := c.TreeInfo()
		if err != nil {
			return false, err
		}
		return ti != nil, nil
	},
	create: func(f fetcher.Fetcher, arch, guestType string, c *Cache) (Distro, error) {
		return newTreeinfoStore(f, arch, guestType, c, "Generic Treeinfo", "", 0, "")
	},
}

// newTreeinfoStore builds a store whose boot paths come from the tree
// descriptor's image-group sections. Candidates that the descriptor
// does not carry are skipped, not fatal.
func newTreeinfoStore(f fetcher.Fetcher, arch, guestType string, c *Cache,
	pretty, urlDistro string, versionNumber int, osVariant string) (Distro, error) {

	s := &store{
		fetcher:   f,
		cache:     c,
		pretty:    pretty,
		urlDistro: urlDistro,
		osVariant: osVariant,
		arch:      arch,
		guestType: guestType,
		kernelArg: rhKernelURLArg(urlDistro, versionNumber),
	}

	ti, err := c.TreeInfo()
	if err != nil {
		return nil, err
	}
	if ti == nil {
		return s, nil
	}

	group := ti.GeneralArch
	if guestType == GuestTypeXen {
		group = "xen"
	}

	kpath, kerr := ti.ImagePath(group, "kernel")
	ipath, ierr := ti.ImagePath(group, "initrd")
	if kerr == nil && ierr == nil {
		s.kernels = append(s.kernels, KernelPair{Kernel: kpath, Initrd: ipath})
	} else {
		logger.Debug("failed to parse treeinfo kernel/initrd", "group", group)
	}

	if iso, err := ti.ImagePath(group, "boot.iso"); err == nil {
		s.bootISOs = append(s.bootISOs, iso)
	} else {
		logger.Debug("failed to parse treeinfo boot.iso", "group", group)
	}

	return s, nil
}

// rhKernelURLArg picks the installer argument naming the tree source.
// Fedora before 19 and the RHEL family before 7 used "method"; anaconda
// renamed it to "inst.repo".
func rhKernelURLArg(urlDistro string, versionNumber int) string {
	old := false
	if versionNumber != 0 {
		if urlDistro == "fedora" {
			old = versionNumber < 19
		} else {
			old = versionNumber < 7
		}
	}
	if old {
		return "method"
	}
	return "inst.repo"
}

func parseFedoraVersion(c *Cache) (int, string) {
	latestVariant := osdict.LatestFedora()
	latestVerInt, _ := strconv.Atoi(strings.TrimPrefix(latestVariant, "fedora"))

	ti, _ := c.TreeInfo()
	verstr := ""
	if ti != nil {
		verstr = ti.Version
	}
	if verstr == "" {
		logger.Debug("no treeinfo version, assuming rawhide")
		verstr = "rawhide"
	}

	// Rawhide trees switched to version=Rawhide in Apr 2016.
	switch verstr {
	case "development", "rawhide", "Rawhide":
		return latestVerInt, latestVariant
	}

	verint, err := strconv.Atoi(verstr)
	if err != nil {
		logger.Debug("failed to parse treeinfo version number",
			"version", verstr, "using_latest", latestVerInt)
		verint = latestVerInt
	}

	// A tree newer than the catalog clamps to the newest known release.
	if verint > latestVerInt {
		return verint, latestVariant
	}
	return verint, "fedora" + strconv.Itoa(verint)
}

func newRHELFamilyCreate(pretty, variantPrefix string) func(fetcher.Fetcher, string, string, *Cache) (Distro, error) {
	return func(f fetcher.Fetcher, arch, guestType string, c *Cache) (Distro, error) {
		ti, err := c.TreeInfo()
		if err != nil {
			return nil, err
		}

		version, update := 0, 0
		osVariant := ""
		if ti != nil && ti.Version != "" {
			version, update = splitRHELVersion(ti.Version)

			// Start at <prefix><major>.<minor> and walk the minor
			// backwards until the catalog knows the identifier, so a
			// rhel7.6 tree resolves against a catalog that stops at
			// rhel7.5.
			base := variantPrefix + strconv.Itoa(version)
			for update >= 0 {
				tryvar := fmt.Sprintf("%s.%d", base, update)
				if _, ok := osdict.Lookup(tryvar); ok {
					osVariant = tryvar
					break
				}
				update--
			}
		}

		return newTreeinfoStore(f, arch, guestType, c, pretty, variantPrefix, version, osVariant)
	}
}

// splitRHELVersion parses strings like "6.9" or "7.4"; centos altarch
// trees carry a bare "7". Non-numeric components become 0.
func splitRHELVersion(verstr string) (int, int) {
	safeint := func(s string) int {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0
		}
		return n
	}

	version := safeint(verstr)
	update := 0
	if strings.Count(verstr, ".") == 1 {
		parts := strings.SplitN(verstr, ".", 2)
		version = safeint(parts[0])
		update = safeint(parts[1])
	}
	logger.Debug("parsed rhel-family version", "verstr", verstr, "version", version, "update", update)
	return version, update
}
