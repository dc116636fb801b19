package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewWithHomeOverride(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("TREEPROBE_HOME", tempHome)

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() returned an error: %v", err)
	}

	expected := filepath.Join(tempHome, "."+AppName)
	if cfg.GetAppDir() != expected {
		t.Errorf("GetAppDir() = %v, want %v", cfg.GetAppDir(), expected)
	}
}

func TestScratchDir(t *testing.T) {
	cfg := &Config{}
	cfg.SetHomeDir(t.TempDir())

	dir, err := cfg.ScratchDir()
	if err != nil {
		t.Fatalf("ScratchDir() returned an error: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("scratch dir was not created: %v", err)
	}
	if !info.IsDir() {
		t.Errorf("scratch path %s is not a directory", dir)
	}
}
