package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chimarrao/platformer/internal/animations"
)

type animatorListFile struct {
	Animators []animations.AnimatorSettings `yaml:"animators"`
}

// AnimatorSettingsTable holds animator settings indexed by animator name.
type AnimatorSettingsTable struct {
	settings map[string]animations.AnimatorSettings
}

var _ animations.SettingsRepository = (*AnimatorSettingsTable)(nil)

// LoadAnimatorSettings loads animator settings from a YAML file.
func LoadAnimatorSettings(path string) (*AnimatorSettingsTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read animators: %w", err)
	}
	var f animatorListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse animators: %w", err)
	}
	t := &AnimatorSettingsTable{settings: make(map[string]animations.AnimatorSettings, len(f.Animators))}
	for _, s := range f.Animators {
		t.settings[s.Name] = s
	}
	return t, nil
}

// AnimatorSettings returns the settings stored under name.
func (t *AnimatorSettingsTable) AnimatorSettings(name string) (animations.AnimatorSettings, bool) {
	s, ok := t.settings[name]
	return s, ok
}

// Count returns the number of loaded animators.
func (t *AnimatorSettingsTable) Count() int {
	return len(t.settings)
}
