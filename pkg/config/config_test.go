package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Writing config failed: %v", err)
	}
	return path
}

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default config is invalid: %v", err)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoad_OverridesFieldByField(t *testing.T) {
	path := writeConfig(t, "repeats: 8\nfailure_scale: country\nrho_steps: 11\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Repeats != 8 || cfg.FailureScale != "country" || cfg.RhoSteps != 11 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.MaxTiers != Default().MaxTiers {
		t.Errorf("Untouched field lost its default: %d", cfg.MaxTiers)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "repeats: [not a number\n")
	if _, err := Load(path); err == nil {
		t.Fatal("Expected parse error")
	}
}

func TestValidate_RejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero repeats", func(c *Config) { c.Repeats = 0 }, "Repeats"},
		{"threshold above one", func(c *Config) { c.BreakdownThreshold = 1.5 }, "BreakdownThreshold"},
		{"zero thinning ratio", func(c *Config) { c.ThinningRatio = 0 }, "ThinningRatio"},
		{"unknown scale", func(c *Config) { c.FailureScale = "planet" }, "FailureScale"},
		{"rho max below min", func(c *Config) { c.RhoMin = 0.9; c.RhoMax = 0.5 }, "RhoMax"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "Workers"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Expected validation error")
			}
			if !strings.Contains(err.Error(), tc.field) {
				t.Errorf("Error %q does not name field %s", err, tc.field)
			}
		})
	}
}
