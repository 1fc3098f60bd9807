//go:build integration

package integration

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// binaryPath returns the path to the built CLI binary, building it when
// necessary
func binaryPath(t *testing.T) string {
	t.Helper()
	paths := []string{
		"../jobtool",
		"./jobtool",
		filepath.Join(os.Getenv("GOPATH"), "bin", "jobtool"),
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			abs, _ := filepath.Abs(p)
			return abs
		}
	}

	t.Log("Binary not found, building...")
	cmd := exec.Command("go", "build", "-o", "../jobtool", "../cmd/jobtool")
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build binary: %v\n%s", err, out)
	}

	abs, _ := filepath.Abs("../jobtool")
	return abs
}

// newJobfolder creates dir with a marker file and, when log is non-empty,
// a log file
func newJobfolder(t *testing.T, dir, log string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "initial.traj"), []byte("traj"), 0644); err != nil {
		t.Fatal(err)
	}
	if log != "" {
		if err := os.WriteFile(filepath.Join(dir, "log.txt"), []byte(log), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// sampleTree builds a tree with jobfolders in the three interesting depths,
// one nested inside another
func sampleTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	newJobfolder(t, root, "Date: 2024-01-01\n")
	newJobfolder(t, filepath.Join(root, "pending"), "")
	newJobfolder(t, filepath.Join(root, "pending", "sub", "failed"), "Did not converge!\n")
	return root
}

// emptyConfig returns a --config path that cannot exist, so the developer's
// real configuration never leaks into a test run
func emptyConfig(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "none.toml")
}
