package content

import "fmt"

// BaseStats holds a species' six base stat values.
type BaseStats struct {
	HP        int `yaml:"hp"`
	Attack    int `yaml:"attack"`
	Defense   int `yaml:"defense"`
	SpAttack  int `yaml:"sp_attack"`
	SpDefense int `yaml:"sp_defense"`
	Speed     int `yaml:"speed"`
}

// Species is the static definition of a monster species, loaded from YAML.
type Species struct {
	ID            string    `yaml:"id"`
	Name          string    `yaml:"name"`
	PrimaryType   Type      `yaml:"primary_type"`
	SecondaryType Type      `yaml:"secondary_type"` // TypeNone when single-typed
	Stats         BaseStats `yaml:"stats"`
	Abilities     []string  `yaml:"abilities"` // ability IDs this species may carry
	LearnableMove []string  `yaml:"moves"`     // move IDs in its learnset
}

// HasType reports whether t is one of the species' types.
func (s Species) HasType(t Type) bool {
	return t != TypeNone && (s.PrimaryType == t || s.SecondaryType == t)
}

// Validate checks the internal consistency of a loaded species definition.
//
// Postcondition: Returns nil when the species is usable by the engine.
func (s Species) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("content: species missing id")
	}
	if s.Name == "" {
		return fmt.Errorf("content: species %q missing name", s.ID)
	}
	if s.PrimaryType == TypeNone {
		return fmt.Errorf("content: species %q has no primary type", s.ID)
	}
	if s.PrimaryType == s.SecondaryType {
		return fmt.Errorf("content: species %q repeats type %s", s.ID, s.PrimaryType)
	}
	for name, v := range map[string]int{
		"hp": s.Stats.HP, "attack": s.Stats.Attack, "defense": s.Stats.Defense,
		"sp_attack": s.Stats.SpAttack, "sp_defense": s.Stats.SpDefense, "speed": s.Stats.Speed,
	} {
		if v <= 0 {
			return fmt.Errorf("content: species %q base stat %s must be positive", s.ID, name)
		}
	}
	return nil
}
