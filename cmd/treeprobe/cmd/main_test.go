package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"treeprobe/internal/config"
)

// executeCommand executes a cobra command and captures its combined output.
func executeCommand(root *cobra.Command, args ...string) (string, error) {
	cobraBuf := new(bytes.Buffer)
	root.SetOut(cobraBuf)
	root.SetErr(cobraBuf)
	root.SetArgs(args)

	// Redirect color library output to the same buffer
	originalColorOutput := color.Output
	color.Output = cobraBuf
	defer func() { color.Output = originalColorOutput }()

	// Capture direct stdout writes
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := root.Execute()

	w.Close()
	os.Stdout = oldStdout
	capturedBuf := new(bytes.Buffer)
	io.Copy(capturedBuf, r)

	return cobraBuf.String() + capturedBuf.String(), err
}

// setupConfig points the app directory at a temp dir for the test.
func setupConfig(t *testing.T) {
	t.Helper()
	originalConfigNew := config.New
	t.Cleanup(func() { config.New = originalConfigNew })

	tempDir := t.TempDir()
	config.New = func() (*config.Config, error) {
		cfg := &config.Config{}
		cfg.SetHomeDir(tempDir)
		return cfg, nil
	}
}
