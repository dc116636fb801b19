package detect

import (
	"regexp"

	"treeprobe/internal/fetcher"
)

var reALTDiskInfo = regexp.MustCompile(`^.*ALT .*`)

// ALT Linux has no installable URL trees; this only ever matches
// mounted ISO media.
var altLinuxDetector = &detector{
	prettyName: "ALT Linux",
	urlDistro:  "altlinux",
	isValid: func(c *Cache) (bool, error) {
		return c.ContentMatches(".disk/info", reALTDiskInfo), nil
	},
	create: func(f fetcher.Fetcher, arch, guestType string, c *Cache) (Distro, error) {
		return &store{
			fetcher:   f,
			cache:     c,
			pretty:    "ALT Linux",
			urlDistro: "altlinux",
			arch:      arch,
			guestType: guestType,
			kernels: []KernelPair{
				{Kernel: "syslinux/alt0/vmlinuz", Initrd: "syslinux/alt0/full.cz"},
			},
			bootISOs: []string{"altinst", "live"},
		}, nil
	},
}
