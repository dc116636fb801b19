package detect

import (
	"fmt"
	"regexp"

	"treeprobe/internal/fetcher"
)

var reMandrivaVersion = regexp.MustCompile(`^.*(Mandriva|Mageia).*`)

// e.g. ftp://ftp.uwsg.indiana.edu/linux/mandrake/official/2007.1/x86_64/
var mandrivaDetector = &detector{
	prettyName: "Mandriva/Mageia",
	urlDistro:  "mandriva",
	isValid: func(c *Cache) (bool, error) {
		return c.ContentMatches("VERSION", reMandrivaVersion), nil
	},
	create: func(f fetcher.Fetcher, arch, guestType string, c *Cache) (Distro, error) {
		return &store{
			fetcher:   f,
			cache:     c,
			pretty:    "Mandriva/Mageia",
			urlDistro: "mandriva",
			arch:      arch,
			guestType: guestType,
			kernels: []KernelPair{
				// Mageia 5 onwards names the directory after the arch.
				{
					Kernel: fmt.Sprintf("isolinux/%s/vmlinuz", arch),
					Initrd: fmt.Sprintf("isolinux/%s/all.rdz", arch),
				},
				// Releases 2007.1 through 2009.0.
				{Kernel: "isolinux/alt0/vmlinuz", Initrd: "isolinux/alt0/all.rdz"},
			},
			bootISOs: []string{"install/images/boot.iso"},
		}, nil
	},
}
