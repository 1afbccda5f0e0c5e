package e2e

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildHashscanBinary builds ./cmd/hashscan into a temporary directory
func buildHashscanBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "hashscan")

	// Build from the project root (one level up from the e2e directory)
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/hashscan")
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build hashscan binary: %v\n%s", err, out)
	}

	return binaryPath
}

// runHashscan runs the binary in dir and returns stdout, stderr and the run error
func runHashscan(t *testing.T, binaryPath, dir string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "CI=true")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// createCorpusFile writes a corpus file into dir
func createCorpusFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", filename, err)
	}
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create corpus file %s: %v", filename, err)
	}
	return filePath
}

// createTestConfigFile creates a .hashscan.toml config file that directs
// report files to outputDir
func createTestConfigFile(t *testing.T, testDir, outputDir string) {
	t.Helper()
	configFile := filepath.Join(testDir, ".hashscan.toml")
	configContent := fmt.Sprintf("[output]\ndirectory = \"%s\"\n", filepath.ToSlash(outputDir))
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
}
