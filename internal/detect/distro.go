package detect

import (
	"fmt"
	"os"
	"strings"

	"treeprobe/internal/fetcher"
	"treeprobe/internal/osdict"
)

// KernelPair is one candidate kernel/initrd path pair, relative to the
// tree root.
type KernelPair struct {
	Kernel string
	Initrd string
}

// Kernel is a materialized kernel/initrd pair plus the kernel argument
// string that points the installer back at the tree.
type Kernel struct {
	KernelPath string
	InitrdPath string
	Args       string
}

// Distro is a detected install tree: its identity plus the candidate
// boot artifact paths, and operations to materialize them.
type Distro interface {
	PrettyName() string
	URLDistro() string
	// OSVariant returns the catalog identifier of the detected
	// release, or "" when the release could not be pinned down.
	OSVariant() string
	Arch() string
	GuestType() string
	KernelPaths() []KernelPair
	BootISOPaths() []string
	// KernelURLArg is the installer kernel argument used to pass the
	// tree location, or "" when the installer takes none.
	KernelURLArg() string
	AcquireKernel() (*Kernel, error)
	AcquireBootISO() (string, error)
}

// store is the shared implementation behind every distro variant; the
// per-family constructors fill in identity and candidate paths.
type store struct {
	fetcher   fetcher.Fetcher
	cache     *Cache
	pretty    string
	urlDistro string
	osVariant string
	arch      string
	guestType string
	kernels   []KernelPair
	bootISOs  []string
	kernelArg string
}

func (s *store) PrettyName() string        { return s.pretty }
func (s *store) URLDistro() string         { return s.urlDistro }
func (s *store) Arch() string              { return s.arch }
func (s *store) GuestType() string         { return s.guestType }
func (s *store) KernelPaths() []KernelPair { return s.kernels }
func (s *store) BootISOPaths() []string    { return s.bootISOs }
func (s *store) KernelURLArg() string      { return s.kernelArg }

// OSVariant validates the inferred variant against the catalog; an
// identifier the catalog does not know is reported as undetected.
func (s *store) OSVariant() string {
	if s.osVariant == "" {
		return ""
	}
	if _, ok := osdict.Lookup(s.osVariant); !ok {
		logger.Debug("inferred os variant is not in the catalog", "os_variant", s.osVariant)
		return ""
	}
	return s.osVariant
}

// AcquireKernel walks the candidate pairs in order and materializes the
// first pair whose two files both exist.
func (s *store) AcquireKernel() (*Kernel, error) {
	var kpath, ipath string
	for _, pair := range s.kernels {
		if s.fetcher.HasFile(pair.Kernel) && s.fetcher.HasFile(pair.Initrd) {
			kpath = pair.Kernel
			ipath = pair.Initrd
			break
		}
	}
	if kpath == "" || ipath == "" {
		return nil, fmt.Errorf("couldn't find kernel for %s tree", s.pretty)
	}

	args := ""
	remote := !strings.HasPrefix(s.fetcher.Location(), "/")
	if remote && s.kernelArg != "" {
		args = fmt.Sprintf("%s=%s", s.kernelArg, s.fetcher.Location())
	}

	kernel, err := s.fetcher.AcquireFile(kpath)
	if err != nil {
		return nil, err
	}
	initrd, err := s.fetcher.AcquireFile(ipath)
	if err != nil {
		if remote {
			os.Remove(kernel)
		}
		return nil, err
	}
	return &Kernel{KernelPath: kernel, InitrdPath: initrd, Args: args}, nil
}

// AcquireBootISO materializes the first existing boot ISO candidate.
func (s *store) AcquireBootISO() (string, error) {
	for _, path := range s.bootISOs {
		if s.fetcher.HasFile(path) {
			return s.fetcher.AcquireFile(path)
		}
	}
	return "", fmt.Errorf("could not find boot.iso in %s tree", s.pretty)
}
