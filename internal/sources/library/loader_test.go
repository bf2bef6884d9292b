package library

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "affirmations.yaml")

	yamlContent := `---
affirmations:
  - text: I am worthy of love and respect
    category: Self Love
  - id: custom-1
    text: Success flows to me easily
    category: Success
`

	err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644)
	if err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	config, err := loader.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(config.Affirmations) != 2 {
		t.Fatalf("Load() returned %v entries, want 2", len(config.Affirmations))
	}
	if config.Affirmations[1].ID != "custom-1" {
		t.Errorf("Load() entry id = %q, want %q", config.Affirmations[1].ID, "custom-1")
	}
}

func TestLoaderLoadMissingFile(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "nope.yaml"))
	if _, err := loader.Load(); err == nil {
		t.Error("Load() with missing file should return error")
	}
}

func TestLoaderLoadInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "bad.yaml")

	if err := os.WriteFile(yamlPath, []byte("affirmations: {not: [valid"), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	loader := NewLoader(yamlPath)
	if _, err := loader.Load(); err == nil {
		t.Error("Load() with invalid yaml should return error")
	}
}
