package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestRunHelp tests that -h prints usage and succeeds
func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-h"}, &stdout, &stderr)

	if code != 0 {
		t.Errorf("Expected exit code 0 for -h, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("Expected usage information in output, got: %s", stderr.String())
	}
}

// TestRunUnknownFlag tests that flag errors are reported with usage
func TestRunUnknownFlag(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"--loud"}, &stdout, &stderr)

	if code != 2 {
		t.Errorf("Expected exit code 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("Expected usage information in output, got: %s", stderr.String())
	}
}

// TestRunWithNonExistentFile tests error handling for missing files
func TestRunWithNonExistentFile(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"/nonexistent/file.mp3"}, &stdout, &stderr)

	if code != 1 {
		t.Errorf("Expected exit code 1 for non-existent file, got %d", code)
	}
	if !strings.Contains(stderr.String(), "not found") {
		t.Errorf("Expected 'not found' error, got: %s", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("Nothing should be played, got: %s", stdout.String())
	}
}

// TestRunWithInvalidVolume tests volume validation
func TestRunWithInvalidVolume(t *testing.T) {
	tmpDir := t.TempDir()
	dummyFile := filepath.Join(tmpDir, "test.mp3")
	if err := os.WriteFile(dummyFile, []byte{}, 0644); err != nil {
		t.Fatalf("Failed to create dummy file: %v", err)
	}

	for _, vol := range []string{"2.0", "-0.1"} {
		t.Run(vol, func(t *testing.T) {
			var stdout, stderr bytes.Buffer

			code := run([]string{"--volume", vol, dummyFile}, &stdout, &stderr)

			if code != 1 {
				t.Errorf("Expected exit code 1, got %d", code)
			}
			if !strings.Contains(stderr.String(), "Volume must be between") {
				t.Errorf("Expected volume validation error, got: %s", stderr.String())
			}
		})
	}
}
