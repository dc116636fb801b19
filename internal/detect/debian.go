package detect

import (
	"fmt"
	"regexp"
	"strings"

	"treeprobe/internal/fetcher"
	"treeprobe/internal/osdict"
)

// Debian media types, resolved by the validity probe and reused by path
// construction.
const (
	debianMediaURL   = "url"
	debianMediaDaily = "daily"
	debianMediaDisk  = "disk"
)

var (
	reManifestUbuntu = regexp.MustCompile(`^.*[Uu]buntu.*`)
	reManifestDebian = regexp.MustCompile(`^.*[Dd]ebian.*`)
	reDiskInfoDebian = regexp.MustCompile(`^Debian.*`)
	reDiskInfoUbuntu = regexp.MustCompile(`^Ubuntu.*`)

	reInstallerArch = regexp.MustCompile(`^.*/installer-(\w+)/?$`)
	reDailyArch     = regexp.MustCompile(`^.*/daily-images/(\w+)/?$`)
)

// Mirror trees look like
// http://ftp.debian.org/debian/dists/stretch/main/installer-amd64/,
// daily builds like http://d-i.debian.org/daily-images/amd64/.
var debianDetector = newDebianDetector("Debian", "debian", "debian", reDiskInfoDebian)

// e.g. http://archive.ubuntu.com/ubuntu/dists/bionic/main/installer-amd64/
var ubuntuDetector = newDebianDetector("Ubuntu", "ubuntu", "ubuntu", reDiskInfoUbuntu)

func newDebianDetector(pretty, urlDistro, debname string, diskInfoRe *regexp.Regexp) *detector {
	return &detector{
		prettyName: pretty,
		urlDistro:  urlDistro,
		isValid: func(c *Cache) (bool, error) {
			// A manifest that mentions Ubuntu satisfies only the
			// Ubuntu variant; plain Debian wording satisfies only
			// Debian.
			checkManifest := func(path string) bool {
				if c.ContentMatches(path, reManifestUbuntu) {
					return debname == "ubuntu"
				}
				if debname == "ubuntu" {
					return false
				}
				return c.ContentMatches(path, reManifestDebian)
			}

			mediaType := ""
			switch {
			case checkManifest("current/images/MANIFEST"):
				mediaType = debianMediaURL
			case checkManifest("daily/MANIFEST"):
				mediaType = debianMediaDaily
			case c.ContentMatches(".disk/info", diskInfoRe):
				mediaType = debianMediaDisk
			}

			if mediaType != "" {
				c.debianMediaType = mediaType
			}
			return mediaType != "", nil
		},
		create: func(f fetcher.Fetcher, arch, guestType string, c *Cache) (Distro, error) {
			return newDebianStore(f, arch, guestType, c, pretty, urlDistro, debname)
		},
	}
}

func newDebianStore(f fetcher.Fetcher, arch, guestType string, c *Cache,
	pretty, urlDistro, debname string) (Distro, error) {

	s := &store{
		fetcher:   f,
		cache:     c,
		pretty:    pretty,
		urlDistro: urlDistro,
		arch:      arch,
		guestType: guestType,
	}

	switch c.debianMediaType {
	case debianMediaURL, debianMediaDaily:
		urlPrefix := "current/images"
		if c.debianMediaType == debianMediaDaily {
			urlPrefix = "daily"
		}
		setDebianURLPaths(s, debname, urlPrefix)
		s.osVariant = debianVariantFromURL(debname, urlPrefix, f.Location())
	case debianMediaDisk:
		s.kernels = append(s.kernels, debianInstallCDPair(debname, arch))
	}

	return s, nil
}

// debianTreeArch pulls the architecture out of the tree URL. Netboot
// mirrors encode it in the path; ISO mounts usually carry it somewhere
// in the location string.
func debianTreeArch(uri string) string {
	for _, re := range []*regexp.Regexp{reInstallerArch, reDailyArch} {
		if m := re.FindStringSubmatch(uri); m != nil {
			logger.Debug("found treearch in uri", "regex", re.String(), "treearch", m[1])
			return m[1]
		}
	}

	for _, arch := range []string{"i386", "amd64", "x86_64", "arm64"} {
		if strings.Contains(uri, arch) {
			logger.Debug("found treearch in uri", "treearch", arch)
			if arch == "x86_64" {
				return "amd64"
			}
			return arch
		}
	}

	logger.Debug("no treearch found in uri, defaulting to i386")
	return "i386"
}

func setDebianURLPaths(s *store, debname, urlPrefix string) {
	s.bootISOs = []string{urlPrefix + "/netboot/mini.iso"}

	treeArch := debianTreeArch(s.fetcher.Location())
	hvmRoot := fmt.Sprintf("%s/netboot/%s-installer/%s/", urlPrefix, debname, treeArch)
	kernelName, initrdName := "linux", "initrd.gz"
	if treeArch == "ppc64el" {
		kernelName = "vmlinux"
	}
	if treeArch == "s390x" {
		hvmRoot = urlPrefix + "/generic/"
		kernelName = "kernel." + debname
		initrdName = "initrd." + debname
	}

	if s.guestType == GuestTypeXen {
		xenRoot := urlPrefix + "/netboot/xen/"
		s.kernels = append(s.kernels, KernelPair{
			Kernel: xenRoot + "vmlinuz",
			Initrd: xenRoot + "initrd.gz",
		})
	}
	s.kernels = append(s.kernels, KernelPair{
		Kernel: hvmRoot + kernelName,
		Initrd: hvmRoot + initrdName,
	})
}

// debianInstallCDPair picks the fixed kernel/initrd layout of install
// CDs, which differs per architecture and between Debian and Ubuntu.
func debianInstallCDPair(debname, arch string) KernelPair {
	if debname == "ubuntu" {
		if arch == "s390x" {
			return KernelPair{Kernel: "boot/kernel.ubuntu", Initrd: "boot/initrd.ubuntu"}
		}
		return KernelPair{Kernel: "install/vmlinuz", Initrd: "install/initrd.gz"}
	}
	switch arch {
	case "x86_64":
		return KernelPair{Kernel: "install.amd/vmlinuz", Initrd: "install.amd/initrd.gz"}
	case "i686":
		return KernelPair{Kernel: "install.386/vmlinuz", Initrd: "install.386/initrd.gz"}
	case "aarch64":
		return KernelPair{Kernel: "install.a64/vmlinuz", Initrd: "install.a64/initrd.gz"}
	case "ppc64le":
		return KernelPair{Kernel: "install/vmlinux", Initrd: "install/initrd.gz"}
	case "s390x":
		return KernelPair{Kernel: "boot/linux_vm", Initrd: "boot/root.bin"}
	default:
		return KernelPair{Kernel: "install/vmlinuz", Initrd: "install/initrd.gz"}
	}
}

// debianVariantFromURL resolves the release from the tree URL: daily
// builds are always the newest catalog entry, otherwise the URL is
// scanned for a release codename path segment.
func debianVariantFromURL(debname, urlPrefix, uri string) string {
	oses := osdict.List(debname)

	if urlPrefix == "daily" {
		logger.Debug("daily build tree, using latest release", "distro", debname)
		if len(oses) == 0 {
			return ""
		}
		return oses[0].ID
	}

	for _, os := range oses {
		var codename string
		if os.Codename != "" {
			// Ubuntu codenames look like "Warty Warthog".
			codename = strings.ToLower(strings.Fields(os.Codename)[0])
		} else {
			// Debian labels look like "Debian Sarge".
			fields := strings.Fields(os.Label)
			if len(fields) < 2 {
				continue
			}
			codename = strings.ToLower(fields[1])
		}

		if strings.Contains(uri, "/"+codename+"/") {
			logger.Debug("found codename in uri", "codename", codename)
			return os.ID
		}
	}

	logger.Debug("no known codename in uri")
	return ""
}
