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
	reSLESName     = regexp.MustCompile(`.*(SUSE Linux Enterprise Server|SUSE SLES).*`)
	reSLEDName     = regexp.MustCompile(`.*SUSE Linux Enterprise Desktop.*`)
	reOpensuseName = regexp.MustCompile(`.*openSUSE.*`)

	reLegacyI86 = regexp.MustCompile(`^i[4-9]86`)
)

var slesDetector = newSUSEDetector("SUSE Linux Enterprise Server", "sles", reSLESName)
var sledDetector = newSUSEDetector("SUSE Linux Enterprise Desktop", "sled", reSLEDName)
var opensuseDetector = newSUSEDetector("openSUSE", "opensuse", reOpensuseName)

func newSUSEDetector(pretty, urlDistro string, nameRe *regexp.Regexp) *detector {
	return &detector{
		prettyName: pretty,
		urlDistro:  urlDistro,
		isValid: func(c *Cache) (bool, error) {
			sc := c.SUSEContent()
			if sc == nil {
				return false, nil
			}
			return nameRe.MatchString(sc.ProductName), nil
		},
		create: func(f fetcher.Fetcher, arch, guestType string, c *Cache) (Distro, error) {
			return newSUSEStore(f, guestType, c, pretty, urlDistro)
		},
	}
}

func newSUSEStore(f fetcher.Fetcher, guestType string, c *Cache, pretty, urlDistro string) (Distro, error) {
	sc := c.SUSEContent()

	// The manifest's architecture wins over whatever the caller asked
	// for; the tree is what it is.
	arch := sc.TreeArch
	if reLegacyI86.MatchString(arch) {
		arch = "i386"
	}

	osVariant, err := suseVariantFromVersion(urlDistro, sc.ProductVersion)
	if err != nil {
		return nil, err
	}
	osVariant = suseVariantFromURL(f.Location(), osVariant)

	s := &store{
		fetcher:   f,
		cache:     c,
		pretty:    pretty,
		urlDistro: urlDistro,
		osVariant: osVariant,
		arch:      arch,
		guestType: guestType,
		kernelArg: "install",
		bootISOs:  []string{"boot/boot.iso"},
	}

	oldkern, oldinit := "linux", "initrd"
	if arch == "x86_64" {
		oldkern += "64"
		oldinit += "64"
	}

	if guestType == GuestTypeXen {
		// openSUSE > 10.2 and sles 10 ship a xen pair.
		s.kernels = append(s.kernels, KernelPair{
			Kernel: fmt.Sprintf("boot/%s/vmlinuz-xen", arch),
			Initrd: fmt.Sprintf("boot/%s/initrd-xen", arch),
		})
	}

	// sles/sled 11 on s390x boot from a rescue reader image.
	if arch == "s390x" && (osVariant == "sles11" || osVariant == "sled11") {
		s.kernels = append(s.kernels, KernelPair{
			Kernel: "boot/s390x/vmrdr.ikr",
			Initrd: "boot/s390x/initrd",
		})
	}

	// Modern layout: SLES 12 for ppc64le, all s390x.
	s.kernels = append(s.kernels, KernelPair{
		Kernel: fmt.Sprintf("boot/%s/linux", arch),
		Initrd: fmt.Sprintf("boot/%s/initrd", arch),
	})
	// openSUSE 10.0 loader layout.
	s.kernels = append(s.kernels, KernelPair{
		Kernel: "boot/loader/" + oldkern,
		Initrd: "boot/loader/" + oldinit,
	})
	// openSUSE >= 10.2, 11, and sles 10.
	s.kernels = append(s.kernels, KernelPair{
		Kernel: fmt.Sprintf("boot/%s/loader/linux", arch),
		Initrd: fmt.Sprintf("boot/%s/loader/initrd", arch),
	})

	return s, nil
}

// suseVariantFromVersion maps a manifest product version to a catalog
// identifier: enterprise releases get a "spN" suffix, 8-digit dates are
// Tumbleweed snapshots, and anything before 10 collapses into the 9-era
// identifiers.
func suseVariantFromVersion(urlDistro, productVersion string) (string, error) {
	if productVersion == "" {
		return "", nil
	}

	parts := strings.SplitN(productVersion, ".", 2)
	major := strings.TrimSpace(parts[0])
	majorInt, err := strconv.Atoi(major)
	if err != nil {
		return "", fmt.Errorf("cannot parse SUSE product version %q", productVersion)
	}

	variant := urlDistro
	if majorInt < 10 {
		return variant + "9", nil
	}

	if strings.HasPrefix(variant, "sles") || strings.HasPrefix(variant, "sled") {
		variant += major
		if len(parts) == 2 {
			variant += "sp" + strings.TrimSpace(parts[1])
		}
		return variant, nil
	}

	if len(major) == 8 {
		// Tumbleweed snapshots version as an 8 digit date.
		return variant + "tumbleweed", nil
	}
	return variant + productVersion, nil
}

// suseVariantFromURL overrides the version-derived guess when the tree
// URL names a known openSUSE release, e.g. ".../distribution/13.2/repo/oss/".
func suseVariantFromURL(uri, variant string) string {
	for _, os := range osdict.List("opensuse") {
		codename := strings.TrimPrefix(os.ID, "opensuse")
		if strings.Contains(uri, "/"+codename+"/") {
			return os.ID
		}
	}
	return variant
}
