package buildhelper

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/goliatone/nwdi-cpd/internal/component"
)

func TestHelper_SourceFolders(t *testing.T) {
	fs := afero.NewMemMapFs()
	workspace := "/work"
	c := component.Component{
		Vendor:            "example.com",
		Name:              "app/dc1",
		Type:              component.TypeJava,
		SourceFolders:     []string{"src/packages", "gen_ddic/packages", "missing", ""},
		TestSourceFolders: []string{"test/packages"},
	}

	base := filepath.Join(workspace, ".dtc", "DCs", "example.com", "app", "dc1", "_comp")
	for _, dir := range []string{"src/packages", "gen_ddic/packages", "test/packages"} {
		if err := fs.MkdirAll(filepath.Join(base, dir), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	h := New(workspace, fs)

	if diff := cmp.Diff([]string{"/work/.dtc/DCs/example.com/app/dc1/_comp/src/packages"}, h.SourceFolders(c)); diff != "" {
		t.Fatalf("source folders mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"/work/.dtc/DCs/example.com/app/dc1/_comp/test/packages"}, h.TestSourceFolders(c)); diff != "" {
		t.Fatalf("test source folders mismatch (-want +got):\n%s", diff)
	}
	if got := h.PathToWorkspace(); got != "/work" {
		t.Fatalf("PathToWorkspace() = %q", got)
	}
}

func TestHelper_SourceFolders_NoneDeclared(t *testing.T) {
	h := New("/work", afero.NewMemMapFs())
	got := h.SourceFolders(component.Component{Vendor: "example.com", Name: "dc1"})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestHelper_SourceFolders_FileIsNotAFolder(t *testing.T) {
	fs := afero.NewMemMapFs()
	c := component.Component{Vendor: "example.com", Name: "dc1", SourceFolders: []string{"src"}}
	if err := afero.WriteFile(fs, filepath.Join(ComponentBase("/work", c), "src"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if got := New("/work", fs).SourceFolders(c); len(got) != 0 {
		t.Fatalf("expected no folders, got %v", got)
	}
}

func TestHelper_ClassPath(t *testing.T) {
	h := New("/work", afero.NewMemMapFs())
	c := component.Component{
		Vendor:    "example.com",
		Name:      "dc1",
		ClassPath: []string{"lib/a.jar", "", "/opt/sap/b.jar"},
	}

	if diff := cmp.Diff([]string{"/work/lib/a.jar", "/opt/sap/b.jar"}, h.ClassPath(c)); diff != "" {
		t.Fatalf("class path mismatch (-want +got):\n%s", diff)
	}
}

func TestComponentBase(t *testing.T) {
	c := component.Component{Vendor: "sap.com", Name: "tc/bi/anttasks"}
	want := filepath.Join("ws", ".dtc", "DCs", "sap.com", "tc", "bi", "anttasks", "_comp")
	if got := ComponentBase("ws", c); got != want {
		t.Fatalf("ComponentBase() = %q, want %q", got, want)
	}
}
