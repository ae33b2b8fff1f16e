package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/slacklinehq/slackline/pkg/errors"
)

const demoManifest = `
name = "House Build"

[[task]]
id = "found"
name = "Pour foundation"
duration = 4

[[task]]
id = "frame"
name = "Frame walls"
duration = 3
deps = ["found"]

[[task]]
id = "roof"
name = "Install roof"
duration = 5
deps = ["frame"]
`

func TestParseManifest(t *testing.T) {
	p, err := ParseManifest([]byte(demoManifest))
	if err != nil {
		t.Fatalf("ParseManifest: %v", err)
	}

	if p.Name != "House Build" {
		t.Errorf("Name = %q, want %q", p.Name, "House Build")
	}
	if p.ID == "" {
		t.Error("missing manifest id should be filled with a UUID")
	}
	if len(p.Tasks) != 3 {
		t.Fatalf("task count = %d, want 3", len(p.Tasks))
	}
	if got := p.Tasks[1].Deps; len(got) != 1 || got[0] != "found" {
		t.Errorf("frame deps = %v, want [found]", got)
	}
}

func TestParseManifest_InvalidTOML(t *testing.T) {
	_, err := ParseManifest([]byte("name = [broken"))
	if err == nil {
		t.Fatal("malformed TOML accepted")
	}
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidFormat)
	}
}

func TestParseManifest_InvalidProject(t *testing.T) {
	bad := `
name = "X"

[[task]]
id = "a"
name = "A"
duration = 0
`
	if _, err := ParseManifest([]byte(bad)); err == nil {
		t.Error("zero-duration task accepted")
	}
}

func TestLoad_Dispatch(t *testing.T) {
	dir := t.TempDir()

	tomlPath := filepath.Join(dir, "p.toml")
	if err := os.WriteFile(tomlPath, []byte(demoManifest), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(tomlPath); err != nil {
		t.Errorf("Load(toml): %v", err)
	}

	p, _ := ParseManifest([]byte(demoManifest))
	jsonPath := filepath.Join(dir, "p.json")
	if err := ExportJSON(p, jsonPath); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := Load(jsonPath)
	if err != nil {
		t.Fatalf("Load(json): %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("Load(json) id = %q, want %q", got.ID, p.ID)
	}

	if _, err := Load(filepath.Join(dir, "p.yaml")); err == nil {
		t.Error("unsupported extension accepted")
	}
}

func TestLoadManifest_Missing(t *testing.T) {
	_, err := LoadManifest(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %q, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}
