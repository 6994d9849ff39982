package content

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Category splits moves into physical, special, and status.
type Category int

const (
	CategoryPhysical Category = iota
	CategorySpecial
	CategoryStatus
)

var categoryNames = map[Category]string{
	CategoryPhysical: "Physical",
	CategorySpecial:  "Special",
	CategoryStatus:   "Status",
}

// String returns the category's catalog name.
func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return "Unknown"
}

// UnmarshalYAML decodes a category from its catalog name.
func (c *Category) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, categoryNames, "category")
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Move is the static definition of a move, loaded from YAML. Moves are values:
// the engine copies them freely and never mutates one.
type Move struct {
	ID           string           `yaml:"id"`
	Name         string           `yaml:"name"`
	Type         Type             `yaml:"type"`
	Category     Category         `yaml:"category"`
	Power        int              `yaml:"power"`    // 0 for status moves
	Accuracy     int              `yaml:"accuracy"` // 1-100; 0 = never misses
	PP           int              `yaml:"pp"`
	Priority     int              `yaml:"priority"`
	MakesContact bool             `yaml:"makes_contact"`
	Effects      []EffectInstance `yaml:"effects"`
}

// IsDamaging reports whether the move runs the damage pipeline.
func (m Move) IsDamaging() bool {
	return m.Category != CategoryStatus
}

// NeverMisses reports whether the move bypasses the accuracy check entirely,
// either through a zero accuracy value or a NeverMiss modifier.
func (m Move) NeverMisses() bool {
	if m.Accuracy == 0 {
		return true
	}
	for _, e := range m.Effects {
		if e.Category == EffectDamageModifier && e.Modifier == ModifierNeverMiss {
			return true
		}
	}
	return false
}

// HasModifier reports whether the move carries the given damage modifier.
func (m Move) HasModifier(kind ModifierKind) bool {
	for _, e := range m.Effects {
		if e.Category == EffectDamageModifier && e.Modifier == kind {
			return true
		}
	}
	return false
}

// ModifierAmount returns the Amount payload of the given modifier, or 0 when
// the move does not carry it.
func (m Move) ModifierAmount(kind ModifierKind) int {
	for _, e := range m.Effects {
		if e.Category == EffectDamageModifier && e.Modifier == kind {
			return e.Amount
		}
	}
	return 0
}

// HasOther reports whether the move carries the given discrete mechanic.
func (m Move) HasOther(kind OtherKind) bool {
	for _, e := range m.Effects {
		if e.Category == EffectOther && e.Other == kind {
			return true
		}
	}
	return false
}

// Validate checks the internal consistency of a loaded move definition.
//
// Postcondition: Returns nil when the move is usable by the engine.
func (m Move) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("content: move missing id")
	}
	if m.Name == "" {
		return fmt.Errorf("content: move %q missing name", m.ID)
	}
	if m.Type == TypeNone {
		return fmt.Errorf("content: move %q has no type", m.ID)
	}
	if m.Accuracy < 0 || m.Accuracy > 100 {
		return fmt.Errorf("content: move %q accuracy %d out of range", m.ID, m.Accuracy)
	}
	if m.PP <= 0 {
		return fmt.Errorf("content: move %q has non-positive pp", m.ID)
	}
	if m.Category != CategoryStatus && m.Power <= 0 && !m.hasFixedDamage() {
		return fmt.Errorf("content: damaging move %q has no power and no fixed-damage modifier", m.ID)
	}
	for i, e := range m.Effects {
		if e.Probability < 0 || e.Probability > 100 {
			return fmt.Errorf("content: move %q effect %d probability %d out of range", m.ID, i, e.Probability)
		}
	}
	return nil
}

func (m Move) hasFixedDamage() bool {
	for _, kind := range []ModifierKind{
		ModifierFixedLevel, ModifierFixedHalfHP, ModifierFixedHPDifference, ModifierFixedAmount,
	} {
		if m.HasModifier(kind) {
			return true
		}
	}
	return m.HasOther(OtherOHKO)
}
