// Package osdict is the catalog of operating system releases the
// detection engine can name. Entries are loaded from an embedded YAML
// database and kept in file order: newest release first within each
// family. Several heuristics rely on that ordering, so the data file
// must stay sorted.
package osdict

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed os.yaml
var rawDB []byte

// OS is a single catalog entry.
type OS struct {
	// ID is the identifier reported as the os-variant of a detected
	// tree, e.g. "fedora21" or "sles11sp4".
	ID string `yaml:"id"`
	// Label is the human readable release name.
	Label string `yaml:"label"`
	// Codename is the release codename where the distro uses one,
	// e.g. "Bionic Beaver".
	Codename string `yaml:"codename,omitempty"`
	// Distro is the family tag matching a detector's URLDistro id.
	Distro string `yaml:"distro,omitempty"`
}

var db = load()

func load() []OS {
	var oses []OS
	if err := yaml.Unmarshal(rawDB, &oses); err != nil {
		panic(fmt.Sprintf("osdict: embedded database is malformed: %v", err))
	}
	return oses
}

// Lookup returns the catalog entry with the given identifier.
func Lookup(id string) (OS, bool) {
	for _, os := range db {
		if os.ID == id {
			return os, true
		}
	}
	return OS{}, false
}

// List returns all entries whose identifier starts with prefix, in
// catalog order. An empty prefix returns the whole catalog.
func List(prefix string) []OS {
	var oses []OS
	for _, os := range db {
		if strings.HasPrefix(os.ID, prefix) {
			oses = append(oses, os)
		}
	}
	return oses
}

// Latest returns the identifier of the newest release whose id starts
// with prefix, relying on the newest-first file ordering.
func Latest(prefix string) (string, bool) {
	for _, os := range db {
		if strings.HasPrefix(os.ID, prefix) {
			return os.ID, true
		}
	}
	return "", false
}

// LatestFedora returns the newest known Fedora identifier. The result
// is guaranteed to be of the form "fedoraNN".
func LatestFedora() string {
	id, ok := Latest("fedora")
	if !ok {
		panic("osdict: no fedora entries in embedded database")
	}
	return id
}
