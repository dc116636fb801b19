package detect

import (
	"testing"
)

func TestSuseVariantFromVersion(t *testing.T) {
	tests := []struct {
		urlDistro string
		version   string
		want      string
	}{
		{"sles", "11.4", "sles11sp4"},
		{"sles", "12.3", "sles12sp3"},
		{"sles", "12", "sles12"},
		{"sled", "12.3", "sled12sp3"},
		{"sles", "9.1", "sles9"},
		{"opensuse", "13.2", "opensuse13.2"},
		{"opensuse", "42.3", "opensuse42.3"},
		{"opensuse", "20180810", "opensusetumbleweed"},
		{"opensuse", "", ""},
	}

	for _, tt := range tests {
		got, err := suseVariantFromVersion(tt.urlDistro, tt.version)
		if err != nil {
			t.Errorf("suseVariantFromVersion(%q, %q) returned an error: %v",
				tt.urlDistro, tt.version, err)
			continue
		}
		if got != tt.want {
			t.Errorf("suseVariantFromVersion(%q, %q) = %q, want %q",
				tt.urlDistro, tt.version, got, tt.want)
		}
	}
}

func TestSuseVariantFromVersionUnparseable(t *testing.T) {
	if _, err := suseVariantFromVersion("opensuse", "factory"); err == nil {
		t.Error("expected error for non-numeric version")
	}
}

func TestSuseVariantFromURL(t *testing.T) {
	uri := "http://download.opensuse.org/distribution/13.2/repo/oss/"
	if got := suseVariantFromURL(uri, "opensusetumbleweed"); got != "opensuse13.2" {
		t.Errorf("suseVariantFromURL = %q, want opensuse13.2", got)
	}

	uri = "http://example.com/suse/tree/"
	if got := suseVariantFromURL(uri, "sles12sp3"); got != "sles12sp3" {
		t.Errorf("suseVariantFromURL = %q, want passthrough sles12sp3", got)
	}
}

func TestDetectSLES(t *testing.T) {
	files := map[string]string{
		"content": "LABEL SUSE Linux Enterprise Server 11 SP4\nVERSION 11.4-0\nDEFAULTBASE x86_64\n",
	}
	f := newFakeFetcher("http://example.com/tree", files)

	d, err := Detect(f, "x86_64", GuestTypeHVM, "")
	if err != nil {
		t.Fatalf("Detect returned an error: %v", err)
	}

	if d.OSVariant() != "sles11sp4" {
		t.Errorf("OSVariant = %q, want sles11sp4", d.OSVariant())
	}
	if d.Arch() != "x86_64" {
		t.Errorf("Arch = %q, want x86_64 from manifest", d.Arch())
	}
	if d.KernelURLArg() != "install" {
		t.Errorf("KernelURLArg = %q, want install", d.KernelURLArg())
	}

	pairs := d.KernelPaths()
	if len(pairs) != 3 {
		t.Fatalf("expected 3 kernel pairs for hvm x86_64, got %+v", pairs)
	}
	if pairs[0].Kernel != "boot/x86_64/linux" {
		t.Errorf("first candidate = %q, want boot/x86_64/linux", pairs[0].Kernel)
	}
	if pairs[1].Kernel != "boot/loader/linux64" {
		t.Errorf("second candidate = %q, want boot/loader/linux64", pairs[1].Kernel)
	}
	if pairs[2].Kernel != "boot/x86_64/loader/linux" {
		t.Errorf("third candidate = %q, want boot/x86_64/loader/linux", pairs[2].Kernel)
	}
}

func TestDetectSLESXenAddsParavirtPair(t *testing.T) {
	files := map[string]string{
		"content": "LABEL SUSE Linux Enterprise Server 12 SP3\nDEFAULTBASE x86_64\n",
	}
	f := newFakeFetcher("http://example.com/tree", files)

	d, err := Detect(f, "x86_64", GuestTypeXen, "")
	if err != nil {
		t.Fatalf("Detect returned an error: %v", err)
	}
	pairs := d.KernelPaths()
	if len(pairs) == 0 || pairs[0].Kernel != "boot/x86_64/vmlinuz-xen" {
		t.Errorf("expected xen pair first, got %+v", pairs)
	}
}

func TestDetectSLESS390xRescuePair(t *testing.T) {
	files := map[string]string{
		"content": "LABEL SUSE Linux Enterprise Server 11\nDEFAULTBASE s390x\n",
	}
	f := newFakeFetcher("http://example.com/tree", files)

	d, err := Detect(f, "s390x", GuestTypeHVM, "")
	if err != nil {
		t.Fatalf("Detect returned an error: %v", err)
	}
	if d.OSVariant() != "sles11" {
		t.Fatalf("OSVariant = %q, want sles11", d.OSVariant())
	}
	pairs := d.KernelPaths()
	if len(pairs) == 0 || pairs[0].Kernel != "boot/s390x/vmrdr.ikr" {
		t.Errorf("expected s390x rescue pair first, got %+v", pairs)
	}
}

func TestDetectOpensuseTumbleweed(t *testing.T) {
	files := map[string]string{
		"content": "DISTRO cpe:/o:opensuse:opensuse:20180810,openSUSE\nREPOID obsproduct://build.opensuse.org/openSUSE:Factory/20180810/DVD/x86_64\n",
	}
	f := newFakeFetcher("http://example.com/tumbleweed/repo/oss", files)

	d, err := Detect(f, "x86_64", GuestTypeHVM, "")
	if err != nil {
		t.Fatalf("Detect returned an error: %v", err)
	}
	if d.OSVariant() != "opensusetumbleweed" {
		t.Errorf("OSVariant = %q, want opensusetumbleweed", d.OSVariant())
	}
}

func TestDetectOpensuseLegacyArchNormalized(t *testing.T) {
	files := map[string]string{
		"content": "LABEL openSUSE 11.4\nVERSION 11.4\nDEFAULTBASE i586\n",
	}
	f := newFakeFetcher("http://example.com/tree", files)

	d, err := Detect(f, "x86_64", GuestTypeHVM, "")
	if err != nil {
		t.Fatalf("Detect returned an error: %v", err)
	}
	if d.Arch() != "i386" {
		t.Errorf("Arch = %q, want normalized i386", d.Arch())
	}
	if d.OSVariant() != "opensuse11.4" {
		t.Errorf("OSVariant = %q, want opensuse11.4", d.OSVariant())
	}
}
