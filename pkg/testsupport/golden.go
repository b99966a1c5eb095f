// Package testsupport holds helpers shared by package tests.
package testsupport

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// EnvUpdateGolden rewrites golden files with the actual output when set to "1".
const EnvUpdateGolden = "UPDATE_GOLDEN"

// LoadFixture reads a fixture file.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteGolden stores data at the golden path, creating parent folders.
func WriteGolden(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadGolden reads golden data with CRLF line endings normalised.
func LoadGolden(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")), nil
}

// GoldenPath resolves a golden name in testdata directory.
func GoldenPath(baseDir, name string) string {
	return filepath.Join(baseDir, "testdata", name)
}

// AssertGolden compares got with the golden file at path and reports a line diff.
func AssertGolden(t testing.TB, path string, got []byte) {
	t.Helper()

	if os.Getenv(EnvUpdateGolden) == "1" {
		if err := WriteGolden(path, got); err != nil {
			t.Fatalf("update golden %s: %v", path, err)
		}
		return
	}

	want, err := LoadGolden(path)
	if err != nil {
		t.Fatalf("load golden %s: %v", path, err)
	}
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("golden mismatch %s (-want +got):\n%s", path, diff)
	}
}
