package gioui

import (
	"testing"
)

func TestPreferencesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	p := MakePreferences()
	if p.Window.Width != 800 || p.Window.Height != 600 {
		t.Errorf("expected a 800x600 default window, got %dx%d", p.Window.Width, p.Window.Height)
	}
	if p.Window.Maximized {
		t.Error("expected the window not to be maximized by default")
	}
	if p.YmlError != nil {
		t.Errorf("expected no error without a user config, got %v", p.YmlError)
	}
}

func TestPreferencesUserOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	writeTestConfig(t, "preferences.yml", "window:\n  width: 1024\n  maximized: true\n")
	p := MakePreferences()
	if p.Window.Width != 1024 {
		t.Errorf("expected width 1024, got %d", p.Window.Width)
	}
	if p.Window.Height != 600 {
		t.Errorf("expected the height to keep its default, got %d", p.Window.Height)
	}
	if !p.Window.Maximized {
		t.Error("expected a maximized window")
	}
}
