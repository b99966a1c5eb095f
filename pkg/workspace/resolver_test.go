package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestDetect(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, dir := range []string{"/builds/track/.dtc/DCs", "/builds/track/gen/default", "/elsewhere"} {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	tests := []struct {
		name   string
		start  string
		want   string
		wantOK bool
	}{
		{name: "nested folder", start: "/builds/track/gen/default", want: "/builds/track", wantOK: true},
		{name: "root itself", start: "/builds/track", want: "/builds/track", wantOK: true},
		{name: "no marker", start: "/elsewhere", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, ok := Detect(fs, tt.start)
			if ok != tt.wantOK {
				t.Fatalf("Detect(%q) ok = %v, want %v", tt.start, ok, tt.wantOK)
			}
			if root != tt.want {
				t.Fatalf("Detect(%q) = %q, want %q", tt.start, root, tt.want)
			}
		})
	}
}

func TestResolve_Explicit(t *testing.T) {
	if got := Resolve(afero.NewMemMapFs(), "/ws"); got != "/ws" {
		t.Fatalf("Resolve(/ws) = %q", got)
	}

	rel := Resolve(afero.NewMemMapFs(), "rel/ws")
	if !filepath.IsAbs(rel) || filepath.Base(rel) != "ws" {
		t.Fatalf("Resolve(rel/ws) = %q, want absolute path ending in ws", rel)
	}
}

func TestResolve_FallsBackToCurrentDirectory(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	assertSameDir(t, Resolve(afero.NewOsFs(), ""), dir)
}

func TestResolve_DetectsMarker(t *testing.T) {
	dir := t.TempDir()
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(filepath.Join(dir, MarkerDir), 0o755); err != nil {
		t.Fatalf("mkdir marker: %v", err)
	}
	sub := filepath.Join(dir, "t", "ABC")
	if err := osFs.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir sub: %v", err)
	}
	chdir(t, sub)

	assertSameDir(t, Resolve(osFs, ""), dir)
}

func assertSameDir(t *testing.T, got, want string) {
	t.Helper()
	gotReal, err := filepath.EvalSymlinks(got)
	if err != nil {
		t.Fatalf("eval %s: %v", got, err)
	}
	wantReal, err := filepath.EvalSymlinks(want)
	if err != nil {
		t.Fatalf("eval %s: %v", want, err)
	}
	if gotReal != wantReal {
		t.Fatalf("resolved %q, want %q", gotReal, wantReal)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains: it changes
// the working directory and restores it when the test finishes.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	if !filepath.IsAbs(dir) {
		dir, _ = os.Getwd()
	}
	t.Setenv("PWD", dir)
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
