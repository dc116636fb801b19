package detect

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// TreeInfo is the parsed tree descriptor (the ".treeinfo" file found at
// the root of Fedora-style install trees): the distro family and
// version, plus per-image-group media paths.
type TreeInfo struct {
	Family  string
	Version string
	// GeneralArch is the descriptor's own architecture tag, used to
	// pick the image-group section.
	GeneralArch string

	file *ini.File
}

// ParseTreeInfo parses descriptor content. A descriptor without a
// family entry is malformed; there is no such thing as a valid but
// family-less tree descriptor.
func ParseTreeInfo(content string) (*TreeInfo, error) {
	file, err := ini.Load([]byte(content))
	if err != nil {
		return nil, fmt.Errorf("malformed .treeinfo: %w", err)
	}

	general, err := file.GetSection("general")
	if err != nil || !general.HasKey("family") {
		return nil, fmt.Errorf(".treeinfo has no general/family entry")
	}

	ti := &TreeInfo{
		Family: general.Key("family").String(),
		file:   file,
	}
	if general.HasKey("version") {
		ti.Version = general.Key("version").String()
	}
	if general.HasKey("arch") {
		ti.GeneralArch = general.Key("arch").String()
	}
	return ti, nil
}

// ImagePath returns the media path registered under the images-<group>
// section, e.g. ImagePath("x86_64", "kernel"). Missing sections or keys
// are per-candidate errors; callers skip to the next candidate.
func (t *TreeInfo) ImagePath(group, media string) (string, error) {
	section, err := t.file.GetSection("images-" + group)
	if err != nil {
		return "", fmt.Errorf(".treeinfo has no images-%s section", group)
	}
	if !section.HasKey(media) {
		return "", fmt.Errorf(".treeinfo images-%s section has no %s entry", group, media)
	}
	return section.Key(media).String(), nil
}
