package gioui

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestHexColorUnmarshal(t *testing.T) {
	var c struct{ Rgb, Rgba hexColor }
	err := yaml.Unmarshal([]byte("rgb: \"#80deea\"\nrgba: \"#dededede\""), &c)
	if err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if got := c.Rgb.nrgba(); got != (color.NRGBA{R: 0x80, G: 0xde, B: 0xea, A: 255}) {
		t.Errorf("expected #80deea to be opaque, got %+v", got)
	}
	if got := c.Rgba.nrgba(); got != (color.NRGBA{R: 0xde, G: 0xde, B: 0xde, A: 0xde}) {
		t.Errorf("expected #dededede to carry alpha, got %+v", got)
	}
	if err := yaml.Unmarshal([]byte("rgb: \"#1234\""), &c); err == nil {
		t.Error("expected an error for a truncated color")
	}
	if err := yaml.Unmarshal([]byte("rgb: \"zzzzzz\""), &c); err == nil {
		t.Error("expected an error for a non-hex color")
	}
}

func TestThemeColorsUserOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	defaults := loadThemeColors()
	writeTestConfig(t, "theme.yml", "primary: \"#ff0000\"\n")
	colors := loadThemeColors()
	if got := colors.Primary.nrgba(); got != (color.NRGBA{R: 255, A: 255}) {
		t.Errorf("expected the primary color override, got %+v", got)
	}
	if colors.Secondary != defaults.Secondary {
		t.Errorf("expected the secondary color to keep its default, got %+v", colors.Secondary)
	}
}

func writeTestConfig(t *testing.T, filename, contents string) {
	t.Helper()
	configDir, err := os.UserConfigDir()
	if err != nil {
		t.Fatalf("no user config dir: %v", err)
	}
	dir := filepath.Join(configDir, "sinepad")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating config dir failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, filename), []byte(contents), 0644); err != nil {
		t.Fatalf("writing config file failed: %v", err)
	}
}
