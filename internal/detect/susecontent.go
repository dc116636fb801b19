package detect

import (
	"fmt"
	"regexp"
	"strings"
)

// SUSEContent is the product identity parsed from a SUSE-style vendor
// "content" manifest at the tree root.
type SUSEContent struct {
	TreeArch       string
	ProductName    string
	ProductVersion string
}

var suseContentKeys = []string{
	"LABEL", "DISTRO", "VERSION", "BASEARCHS", "DEFAULTBASE", "REPOID",
}

// Matches CPE-style DISTRO lines like
// "cpe:/o:opensuse:opensuse:13.2,openSUSE".
var reCPEOpenSUSE = regexp.MustCompile(`^.*:.*,openSUSE$`)

// ParseSUSEContent parses manifest text. Field values vary wildly
// across releases; the derivations below encode the known historical
// shapes, e.g.:
//
//	opensuse 10.3: LABEL openSUSE 10.3 / DEFAULTBASE i586
//	opensuse 13.2: DISTRO cpe:/o:opensuse:opensuse:13.2,openSUSE
//	sles11sp4 DVD: LABEL SUSE Linux Enterprise Server 11 SP4
func ParseSUSEContent(content string) (*SUSEContent, error) {
	values := make(map[string]string)
	for _, line := range strings.Split(content, "\n") {
		for _, prefix := range suseContentKeys {
			if strings.HasPrefix(line, prefix+" ") {
				values[prefix] = strings.SplitN(line, " ", 2)[1]
			}
		}
	}

	sc := &SUSEContent{
		TreeArch:    suseTreeArch(values),
		ProductName: suseProductName(values),
	}
	version, err := suseProductVersion(values, sc.ProductName)
	if err != nil {
		return nil, err
	}
	sc.ProductVersion = version

	logger.Debug("SUSE content",
		"product_name", sc.ProductName,
		"product_version", sc.ProductVersion,
		"tree_arch", sc.TreeArch)
	return sc, nil
}

func suseTreeArch(values map[string]string) string {
	// BASEARCHS on modern trees, DEFAULTBASE on old ones, and as a
	// last resort the final path segment of REPOID.
	arch := values["BASEARCHS"]
	if arch == "" {
		arch = values["DEFAULTBASE"]
	}
	if arch == "" {
		if repoid, ok := values["REPOID"]; ok {
			arch = repoid[strings.LastIndex(repoid, "/")+1:]
		}
	}
	if arch == "" {
		return ""
	}

	arch = strings.TrimSpace(arch)
	// The 13.2 official oss repo lists "i586-x86_64".
	if strings.Contains(arch, "i586-x86_64") {
		arch = "x86_64"
	}
	return arch
}

func suseProductName(values map[string]string) string {
	if label, ok := values["LABEL"]; ok {
		return label
	}
	if distro := values["DISTRO"]; strings.Contains(distro, ",") {
		return distro[strings.LastIndex(distro, ",")+1:]
	}
	return ""
}

func suseProductVersion(values map[string]string, productName string) (string, error) {
	// A version only means something relative to a product name.
	if productName == "" {
		return "", nil
	}

	version := values["VERSION"]
	// "10.4-0" carries a build suffix.
	if idx := strings.Index(version, "-"); idx != -1 {
		version = version[:idx]
	}

	if version == "" && reCPEOpenSUSE.MatchString(values["DISTRO"]) {
		cpe := strings.TrimSpace(values["DISTRO"][:strings.LastIndex(values["DISTRO"], ",")])
		fields := strings.Split(cpe, ":")
		if len(fields) < 5 {
			return "", fmt.Errorf("unexpected DISTRO cpe value %q", values["DISTRO"])
		}
		version = fields[4]
	}

	if strings.Contains(productName, "Enterprise") || strings.Contains(productName, "SLES") {
		// "SUSE Linux Enterprise Server 11 SP4" encodes the version in
		// the 5th token and the service pack in the 6th.
		tokens := strings.Fields(strings.TrimSpace(productName))
		if len(tokens) < 5 {
			return "", fmt.Errorf("unexpected SLE product name %q", productName)
		}
		version = tokens[4]
		if len(tokens) > 5 {
			if len(tokens[5]) < 3 {
				return "", fmt.Errorf("unexpected SLE service pack token %q", tokens[5])
			}
			version += "." + string(tokens[5][2])
		}
	}

	return version, nil
}
