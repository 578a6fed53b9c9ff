package prompt

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prompt_config.json")
	data := `{
		"company_name": "Widget Co",
		"icp": {"target_industries": ["Finance"]},
		"qualifying_questions": ["Is there budget?"]
	}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.CompanyName != "Widget Co" {
		t.Errorf("Unexpected company name: %q", cfg.CompanyName)
	}
	if len(cfg.ICP.TargetIndustries) != 1 || cfg.ICP.TargetIndustries[0] != "Finance" {
		t.Errorf("Unexpected ICP: %+v", cfg.ICP)
	}
	if cfg.IsEmpty() {
		t.Error("Expected config to be non-empty")
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !cfg.IsEmpty() {
		t.Errorf("Expected empty config for missing file, got %+v", cfg)
	}
}

func TestLoadConfigFileMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfigFile(path); err == nil {
		t.Error("Expected malformed JSON to be an error")
	}
}

func TestConfigIsEmpty(t *testing.T) {
	var nilCfg *Config
	if !nilCfg.IsEmpty() {
		t.Error("Expected nil config to be empty")
	}
	if !(&Config{}).IsEmpty() {
		t.Error("Expected zero config to be empty")
	}
	if (&Config{CustomInstructions: "x"}).IsEmpty() {
		t.Error("Expected config with instructions to be non-empty")
	}
	if (&Config{ICP: &ICPConfig{TargetRoles: []string{"CTO"}}}).IsEmpty() {
		t.Error("Expected config with ICP to be non-empty")
	}
}
