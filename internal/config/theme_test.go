package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/thenoetrevino/phaseboard/internal/config/colors"
)

func TestThemeFileLoading(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	themeFile := filepath.Join(t.TempDir(), "theme.yaml")
	themeContent := []byte(`theme:
  accent: "#FF0000"
  winning: "#00FF00"
  error: "#0000FF"
`)
	if err := os.WriteFile(themeFile, themeContent, 0o644); err != nil {
		t.Fatalf("Failed to write theme file: %v", err)
	}
	t.Setenv("PHASEBOARD_THEME_FILE", themeFile)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.ColorScheme.Accent != "#FF0000" {
		t.Errorf("Expected accent to be #FF0000, got %s", cfg.ColorScheme.Accent)
	}
	if cfg.ColorScheme.Winning != "#00FF00" {
		t.Errorf("Expected winning to be #00FF00, got %s", cfg.ColorScheme.Winning)
	}
	if cfg.ColorScheme.Error != "#0000FF" {
		t.Errorf("Expected error to be #0000FF, got %s", cfg.ColorScheme.Error)
	}

	// Verify other colors still have defaults
	if cfg.ColorScheme.Testing != colors.Default().Testing {
		t.Error("Expected testing to keep its default value")
	}
}

func TestMergeFromPreset(t *testing.T) {
	scheme := *colors.Default()
	scheme.MergeFrom(colors.ColorScheme{Preset: "monochrome", Accent: "#123456"})

	if scheme.Preset != "monochrome" {
		t.Errorf("Expected monochrome preset, got %s", scheme.Preset)
	}
	if scheme.Accent != "#123456" {
		t.Errorf("Expected accent override, got %s", scheme.Accent)
	}
	if scheme.Title != colors.Monochrome().Title {
		t.Errorf("Expected monochrome title, got %s", scheme.Title)
	}
}

func TestApplyDefaultsFillsGaps(t *testing.T) {
	scheme := colors.ColorScheme{Preset: "monochrome", Winning: "#ABCDEF"}
	scheme.ApplyDefaults()

	if scheme.Winning != "#ABCDEF" {
		t.Errorf("Custom winning color was overwritten: %s", scheme.Winning)
	}
	if scheme.Normal != colors.Monochrome().Normal {
		t.Errorf("Expected monochrome normal, got %s", scheme.Normal)
	}
}
