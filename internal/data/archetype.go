package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Archetype holds static data for an enemy type loaded from YAML.
// Templates are immutable after load; runtime scaling is applied by
// the spawn director without touching them.
type Archetype struct {
	TypeID      string   `yaml:"type_id"`
	BaseHealth  float64  `yaml:"base_health"`
	BaseSpeed   float64  `yaml:"base_speed"`
	SizeW       float64  `yaml:"size_w"`
	SizeH       float64  `yaml:"size_h"`
	SpawnWeight float64  `yaml:"spawn_weight"`
	Damage      float64  `yaml:"damage"`
	Knockback   float64  `yaml:"knockback"` // knockback distance dealt on contact
	Tags        []string `yaml:"tags"`      // damage-type affinities, AI flags
}

type archetypeListFile struct {
	Archetypes []Archetype `yaml:"archetypes"`
}

// ArchetypeTable holds all enemy templates indexed by TypeID.
type ArchetypeTable struct {
	templates map[string]*Archetype
	ordered   []string // TypeIDs sorted for deterministic iteration
}

// LoadArchetypeTable loads enemy templates from a YAML file.
// Validation failures are load-time fatal and name the offending
// archetype; the simulation never sees an invalid template.
func LoadArchetypeTable(path string) (*ArchetypeTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archetypes: %w", err)
	}
	var f archetypeListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse archetypes: %w", err)
	}
	return NewArchetypeTable(f.Archetypes)
}

// NewArchetypeTable validates and indexes a template set.
func NewArchetypeTable(archetypes []Archetype) (*ArchetypeTable, error) {
	t := &ArchetypeTable{templates: make(map[string]*Archetype, len(archetypes))}
	for i := range archetypes {
		a := &archetypes[i]
		if err := validateArchetype(a); err != nil {
			return nil, err
		}
		if _, dup := t.templates[a.TypeID]; dup {
			return nil, fmt.Errorf("archetype %q: duplicate type_id", a.TypeID)
		}
		t.templates[a.TypeID] = a
		t.ordered = append(t.ordered, a.TypeID)
	}
	sort.Strings(t.ordered)
	return t, nil
}

func validateArchetype(a *Archetype) error {
	if a.TypeID == "" {
		return fmt.Errorf("archetype with empty type_id")
	}
	if a.BaseHealth <= 0 {
		return fmt.Errorf("archetype %q: base_health must be positive, got %g", a.TypeID, a.BaseHealth)
	}
	if a.BaseSpeed < 0 {
		return fmt.Errorf("archetype %q: base_speed must not be negative, got %g", a.TypeID, a.BaseSpeed)
	}
	if a.SizeW <= 0 || a.SizeH <= 0 {
		return fmt.Errorf("archetype %q: size must be positive, got %gx%g", a.TypeID, a.SizeW, a.SizeH)
	}
	if a.SpawnWeight < 0 {
		return fmt.Errorf("archetype %q: spawn_weight must not be negative, got %g", a.TypeID, a.SpawnWeight)
	}
	if a.Damage < 0 {
		return fmt.Errorf("archetype %q: damage must not be negative, got %g", a.TypeID, a.Damage)
	}
	return nil
}

// Get returns a template by TypeID, or nil if not found.
func (t *ArchetypeTable) Get(typeID string) *Archetype {
	return t.templates[typeID]
}

// Count returns the number of loaded templates.
func (t *ArchetypeTable) Count() int {
	return len(t.templates)
}

// TypeIDs returns all template IDs in sorted order. The spawn
// director's weighted draw iterates this, so draw order is stable
// across runs.
func (t *ArchetypeTable) TypeIDs() []string {
	return t.ordered
}
