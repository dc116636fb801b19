package osdict

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	os, ok := Lookup("fedora21")
	require.True(t, ok)
	assert.Equal(t, "Fedora 21", os.Label)
	assert.Equal(t, "fedora", os.Distro)

	_, ok = Lookup("fedora9000")
	assert.False(t, ok)
}

func TestListOrder(t *testing.T) {
	debians := List("debian")
	require.NotEmpty(t, debians)

	// Newest release first; the daily-build heuristic depends on it.
	assert.Equal(t, "debian10", debians[0].ID)

	for _, os := range debians {
		assert.True(t, strings.HasPrefix(os.ID, "debian"))
	}
}

func TestLatest(t *testing.T) {
	assert.Equal(t, "fedora30", LatestFedora())

	id, ok := Latest("ubuntu")
	require.True(t, ok)
	assert.Equal(t, "ubuntu19.04", id)

	_, ok = Latest("plan9")
	assert.False(t, ok)
}

func TestUbuntuEntriesHaveCodenames(t *testing.T) {
	for _, os := range List("ubuntu") {
		if os.Codename == "" {
			t.Errorf("ubuntu entry %s has no codename", os.ID)
		}
	}
}
