// Package ai implements the CPU opponent: a scoring planner that picks one
// battle action per turn from a weighted heuristic over the active
// combatant's moves, with an optional Lua hook that can override the choice.
package ai

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Weights tunes the scoring heuristic. All weights must be non-negative.
type Weights struct {
	// Power scales the base-power component of damaging moves.
	Power float64 `yaml:"power"`
	// Effectiveness scales the type-effectiveness multiplier.
	Effectiveness float64 `yaml:"effectiveness"`
	// Stab scales the same-type bonus multiplier.
	Stab float64 `yaml:"stab"`
	// Accuracy scales the hit-chance discount.
	Accuracy float64 `yaml:"accuracy"`
	// Status is the flat base score of a usable status move against a
	// target that is not already statused.
	Status float64 `yaml:"status"`
}

// Profile is one CPU personality loaded from YAML: a weight set, the HP
// percentage below which the planner will consider switching out, and an
// optional Lua hook that can override the heuristic entirely.
type Profile struct {
	ID          string  `yaml:"id"`
	Description string  `yaml:"description"`
	Weights     Weights `yaml:"weights"`
	// SwitchThreshold is the active combatant's HP percentage below which
	// a switch to a healthy bench member is preferred. 0 disables switching.
	SwitchThreshold float64 `yaml:"switch_threshold"`
	// Hook is a Lua function name; empty means the heuristic always decides.
	Hook string `yaml:"hook"`
}

// DefaultProfile returns the built-in balanced personality used when no
// profile directory is configured.
func DefaultProfile() *Profile {
	return &Profile{
		ID:          "balanced",
		Description: "weighs power, effectiveness, and accuracy evenly",
		Weights: Weights{
			Power:         1,
			Effectiveness: 1,
			Stab:          1,
			Accuracy:      1,
			Status:        40,
		},
		SwitchThreshold: 20,
	}
}

// Validate checks all required fields.
//
// Postcondition: nil return guarantees a non-empty ID, non-negative weights,
// and a SwitchThreshold in [0, 100].
func (p *Profile) Validate() error {
	if p.ID == "" {
		return errors.New("ai.Profile: ID must not be empty")
	}
	for name, w := range map[string]float64{
		"power": p.Weights.Power, "effectiveness": p.Weights.Effectiveness,
		"stab": p.Weights.Stab, "accuracy": p.Weights.Accuracy, "status": p.Weights.Status,
	} {
		if w < 0 {
			return fmt.Errorf("ai.Profile %q: weight %s must not be negative", p.ID, name)
		}
	}
	if p.SwitchThreshold < 0 || p.SwitchThreshold > 100 {
		return fmt.Errorf("ai.Profile %q: switch_threshold %.1f out of range [0, 100]", p.ID, p.SwitchThreshold)
	}
	return nil
}

// yamlProfileFile wraps the YAML top-level key.
type yamlProfileFile struct {
	Profiles []*Profile `yaml:"profiles"`
}

// LoadProfiles reads all *.yaml files from dir and returns parsed Profiles.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns an error if any file fails to parse or any profile
// fails validation or duplicates an ID.
func LoadProfiles(dir string) ([]*Profile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ai.LoadProfiles: reading %q: %w", dir, err)
	}
	seen := make(map[string]struct{})
	var profiles []*Profile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("ai.LoadProfiles: reading %s: %w", e.Name(), err)
		}
		var f yamlProfileFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("ai.LoadProfiles: parsing %s: %w", e.Name(), err)
		}
		for _, p := range f.Profiles {
			if err := p.Validate(); err != nil {
				return nil, err
			}
			if _, dup := seen[p.ID]; dup {
				return nil, fmt.Errorf("ai.LoadProfiles: duplicate profile ID %q", p.ID)
			}
			seen[p.ID] = struct{}{}
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}
