package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrTemplateNotFound = errors.New("character template not found")

// CharacterTemplate holds the static data a factory needs to build one
// kind of owner.
type CharacterTemplate struct {
	Name           string  `yaml:"name"`
	Kind           string  `yaml:"kind"` // player, follower, npc, enemy, item
	Animator       string  `yaml:"animator"`
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	Health         int     `yaml:"health"`
	Speed          float64 `yaml:"speed"` // 0 = physics default
	Damage         int     `yaml:"damage"`
	AttackReach    float64 `yaml:"attack_reach"`
	AttackCooldown float64 `yaml:"attack_cooldown"` // seconds
	SightRange     float64 `yaml:"sight_range"`
	FollowDistance float64 `yaml:"follow_distance"`
	Texture        string  `yaml:"texture"`
	HealPoints     int     `yaml:"heal_points"`
	Capacity       int     `yaml:"capacity"` // items a collector can hold
}

type templateListFile struct {
	Templates []CharacterTemplate `yaml:"templates"`
}

// TemplateTable holds character templates indexed by name.
type TemplateTable struct {
	templates map[string]*CharacterTemplate
}

// LoadCharacterTemplates loads character templates from a YAML file.
func LoadCharacterTemplates(path string) (*TemplateTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var f templateListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	t := &TemplateTable{templates: make(map[string]*CharacterTemplate, len(f.Templates))}
	for i := range f.Templates {
		tpl := &f.Templates[i]
		t.templates[tpl.Name] = tpl
	}
	return t, nil
}

// Template returns the template called name.
func (t *TemplateTable) Template(name string) (*CharacterTemplate, error) {
	tpl, ok := t.templates[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrTemplateNotFound)
	}
	return tpl, nil
}

// Count returns the number of loaded templates.
func (t *TemplateTable) Count() int {
	return len(t.templates)
}
