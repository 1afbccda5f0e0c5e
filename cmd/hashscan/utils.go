package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/hashscan/domain"
	"github.com/ludo-technologies/hashscan/internal/config"
)

// generateTimestampedFileName generates a filename with timestamp suffix
func generateTimestampedFileName(command, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", command, timestamp, extension)
}

// resolveOutputDirectory returns the configured report directory, or
// .hashscan/reports under the working directory
func resolveOutputDirectory(cfg *config.Config) string {
	if cfg != nil && cfg.Output.Directory != "" {
		return cfg.Output.Directory
	}

	cwd, err := os.Getwd()
	if err != nil {
		return domain.DefaultReportDirectory
	}
	return filepath.Join(cwd, domain.DefaultReportDirectory)
}

// generateOutputFilePath combines filename generation and directory resolution
func generateOutputFilePath(command, extension string, cfg *config.Config) (string, error) {
	filename := generateTimestampedFileName(command, extension)
	outputDir := resolveOutputDirectory(cfg)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}
	return filepath.Join(outputDir, filename), nil
}

// getTargetPathFromArgs extracts the first argument as target path, or returns empty string
func getTargetPathFromArgs(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}
