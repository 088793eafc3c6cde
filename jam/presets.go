package jam

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wavetooth/sinepad"
	"gopkg.in/yaml.v3"
)

//go:embed presets.yml
var defaultPresetsYml []byte

// loadPresets returns the built-in presets followed by any user presets from
// the config directory. A broken user preset file is silently ignored; the
// built-ins are always available.
func loadPresets() []sinepad.Preset {
	var presets []sinepad.Preset
	if err := yaml.Unmarshal(defaultPresetsYml, &presets); err != nil {
		panic(fmt.Errorf("broken built-in presets: %w", err))
	}
	if data, err := os.ReadFile(userPresetPath()); err == nil {
		var user []sinepad.Preset
		if yaml.Unmarshal(data, &user) == nil {
			presets = append(presets, user...)
		}
	}
	for i := range presets {
		presets[i].Params.Clamp()
	}
	return presets
}

func userPresetPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "sinepad", "presets.yml")
}

func (m *Model) PresetCount() int { return len(m.presets) }

func (m *Model) PresetName(index int) string {
	if index < 0 || index >= len(m.presets) {
		return ""
	}
	return m.presets[index].Name
}

// selectPreset
type selectPreset struct {
	Index int
	*Model
}

func (m *Model) SelectPreset(index int) Action {
	return MakeAction(selectPreset{Index: index, Model: m})
}
func (s selectPreset) Enabled() bool { return s.Index >= 0 && s.Index < len(s.presets) }
func (s selectPreset) Do() {
	m := s.Model
	p := m.presets[s.Index]
	m.setParams(p.Params)
	m.Alerts().AddNamed("Preset", fmt.Sprintf("Preset: %s", p.Name), Info)
}

// saveUserPreset
type saveUserPreset struct {
	Name string
	*Model
}

// SaveUserPreset appends the current panel as a named user preset and
// persists the user presets to the config directory.
func (m *Model) SaveUserPreset(name string) Action {
	return MakeAction(saveUserPreset{Name: name, Model: m})
}
func (s saveUserPreset) Enabled() bool { return s.Name != "" }
func (s saveUserPreset) Do() {
	m := s.Model
	m.presets = append(m.presets, sinepad.Preset{Name: s.Name, Params: m.params})
	if err := saveUserPresets(m.presets); err != nil {
		m.Alerts().Add(fmt.Sprintf("Error saving preset: %v", err), Error)
		return
	}
	m.Alerts().Add(fmt.Sprintf("Saved preset: %s", s.Name), Info)
}

// saveUserPresets writes everything past the built-ins to the user preset
// file.
func saveUserPresets(presets []sinepad.Preset) error {
	var builtin []sinepad.Preset
	if err := yaml.Unmarshal(defaultPresetsYml, &builtin); err != nil {
		return err
	}
	user := presets[len(builtin):]
	data, err := yaml.Marshal(user)
	if err != nil {
		return err
	}
	path := userPresetPath()
	if path == "" {
		return os.ErrNotExist
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
