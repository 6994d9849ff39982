// Package content defines the immutable battle catalog: species, move
// descriptors, effect instances, and the type-effectiveness chart. The engine
// treats everything in this package as read-only once loaded.
package content

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Type is one of the eighteen elemental types. TypeNone marks an absent
// secondary type.
type Type int

const (
	TypeNone Type = iota
	TypeNormal
	TypeFire
	TypeWater
	TypeElectric
	TypeGrass
	TypeIce
	TypeFighting
	TypePoison
	TypeGround
	TypeFlying
	TypePsychic
	TypeBug
	TypeRock
	TypeGhost
	TypeDragon
	TypeDark
	TypeSteel
	TypeFairy
)

var typeNames = map[Type]string{
	TypeNone:     "None",
	TypeNormal:   "Normal",
	TypeFire:     "Fire",
	TypeWater:    "Water",
	TypeElectric: "Electric",
	TypeGrass:    "Grass",
	TypeIce:      "Ice",
	TypeFighting: "Fighting",
	TypePoison:   "Poison",
	TypeGround:   "Ground",
	TypeFlying:   "Flying",
	TypePsychic:  "Psychic",
	TypeBug:      "Bug",
	TypeRock:     "Rock",
	TypeGhost:    "Ghost",
	TypeDragon:   "Dragon",
	TypeDark:     "Dark",
	TypeSteel:    "Steel",
	TypeFairy:    "Fairy",
}

var typesByName = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, n := range typeNames {
		m[n] = t
	}
	return m
}()

// String returns the type's display name.
func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "Unknown"
}

// ParseType converts a display name into a Type.
//
// Postcondition: Returns the matching Type or an error for unknown names.
func ParseType(name string) (Type, error) {
	if t, ok := typesByName[name]; ok {
		return t, nil
	}
	return TypeNone, fmt.Errorf("content: unknown type %q", name)
}

// UnmarshalYAML decodes a type from its display name.
func (t *Type) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// typeChart maps attacking type to the non-neutral multipliers against each
// defending type. Entries absent from the inner map are 1.0.
var typeChart = map[Type]map[Type]float64{
	TypeNormal: {TypeRock: 0.5, TypeSteel: 0.5, TypeGhost: 0},
	TypeFire: {TypeGrass: 2, TypeIce: 2, TypeBug: 2, TypeSteel: 2,
		TypeWater: 0.5, TypeFire: 0.5, TypeRock: 0.5, TypeDragon: 0.5},
	TypeWater: {TypeFire: 2, TypeGround: 2, TypeRock: 2,
		TypeWater: 0.5, TypeGrass: 0.5, TypeDragon: 0.5},
	TypeElectric: {TypeWater: 2, TypeFlying: 2,
		TypeElectric: 0.5, TypeGrass: 0.5, TypeDragon: 0.5, TypeGround: 0},
	TypeGrass: {TypeWater: 2, TypeGround: 2, TypeRock: 2,
		TypeFire: 0.5, TypeGrass: 0.5, TypePoison: 0.5, TypeFlying: 0.5,
		TypeBug: 0.5, TypeDragon: 0.5, TypeSteel: 0.5},
	TypeIce: {TypeGrass: 2, TypeGround: 2, TypeFlying: 2, TypeDragon: 2,
		TypeFire: 0.5, TypeWater: 0.5, TypeIce: 0.5, TypeSteel: 0.5},
	TypeFighting: {TypeNormal: 2, TypeIce: 2, TypeRock: 2, TypeDark: 2, TypeSteel: 2,
		TypePoison: 0.5, TypeFlying: 0.5, TypePsychic: 0.5, TypeBug: 0.5,
		TypeFairy: 0.5, TypeGhost: 0},
	TypePoison: {TypeGrass: 2, TypeFairy: 2,
		TypePoison: 0.5, TypeGround: 0.5, TypeRock: 0.5, TypeGhost: 0.5,
		TypeSteel: 0},
	TypeGround: {TypeFire: 2, TypeElectric: 2, TypePoison: 2, TypeRock: 2, TypeSteel: 2,
		TypeGrass: 0.5, TypeBug: 0.5, TypeFlying: 0},
	TypeFlying: {TypeGrass: 2, TypeFighting: 2, TypeBug: 2,
		TypeElectric: 0.5, TypeRock: 0.5, TypeSteel: 0.5},
	TypePsychic: {TypeFighting: 2, TypePoison: 2,
		TypePsychic: 0.5, TypeSteel: 0.5, TypeDark: 0},
	TypeBug: {TypeGrass: 2, TypePsychic: 2, TypeDark: 2,
		TypeFire: 0.5, TypeFighting: 0.5, TypePoison: 0.5, TypeFlying: 0.5,
		TypeGhost: 0.5, TypeSteel: 0.5, TypeFairy: 0.5},
	TypeRock: {TypeFire: 2, TypeIce: 2, TypeFlying: 2, TypeBug: 2,
		TypeFighting: 0.5, TypeGround: 0.5, TypeSteel: 0.5},
	TypeGhost: {TypePsychic: 2, TypeGhost: 2, TypeDark: 0.5, TypeNormal: 0},
	TypeDragon: {TypeDragon: 2, TypeSteel: 0.5, TypeFairy: 0},
	TypeDark: {TypePsychic: 2, TypeGhost: 2,
		TypeFighting: 0.5, TypeDark: 0.5, TypeFairy: 0.5},
	TypeSteel: {TypeIce: 2, TypeRock: 2, TypeFairy: 2,
		TypeFire: 0.5, TypeWater: 0.5, TypeElectric: 0.5, TypeSteel: 0.5},
	TypeFairy: {TypeFighting: 2, TypeDragon: 2, TypeDark: 2,
		TypeFire: 0.5, TypePoison: 0.5, TypeSteel: 0.5},
}

// Effectiveness returns the combined type-effectiveness multiplier of an
// attack of type atk against a defender with types def1 and def2.
// def2 may be TypeNone for single-typed defenders.
//
// Postcondition: Returns one of 0, 0.25, 0.5, 1, 2, or 4.
func Effectiveness(atk, def1, def2 Type) float64 {
	mult := 1.0
	for _, def := range [2]Type{def1, def2} {
		if def == TypeNone {
			continue
		}
		if row, ok := typeChart[atk]; ok {
			if m, ok := row[def]; ok {
				mult *= m
			}
		}
	}
	return mult
}
