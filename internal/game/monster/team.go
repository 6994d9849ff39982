package monster

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/arena/internal/game/content"
)

// yamlSpread mirrors IVs and EVs for YAML decoding.
type yamlSpread struct {
	HP        int `yaml:"hp"`
	Attack    int `yaml:"attack"`
	Defense   int `yaml:"defense"`
	SpAttack  int `yaml:"sp_attack"`
	SpDefense int `yaml:"sp_defense"`
	Speed     int `yaml:"speed"`
}

// yamlMember mirrors Spec for YAML decoding.
type yamlMember struct {
	Species  string     `yaml:"species"`
	Nickname string     `yaml:"nickname"`
	Level    int        `yaml:"level"`
	IVs      yamlSpread `yaml:"ivs"`
	EVs      yamlSpread `yaml:"evs"`
	Ability  string     `yaml:"ability"`
	Moves    []string   `yaml:"moves"`
}

type yamlTeamFile struct {
	Name    string       `yaml:"name"`
	Members []yamlMember `yaml:"members"`
}

// LoadTeam reads one team YAML file and returns the build specs for its
// members, in file order.
//
// Postcondition: Returns at least one spec, or a non-nil error.
func LoadTeam(path string) ([]Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading team file %q: %w", path, err)
	}

	var doc yamlTeamFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing team file %q: %w", path, err)
	}
	if len(doc.Members) == 0 {
		return nil, fmt.Errorf("team file %q has no members", path)
	}

	specs := make([]Spec, 0, len(doc.Members))
	for _, m := range doc.Members {
		specs = append(specs, Spec{
			SpeciesID: m.Species,
			Nickname:  m.Nickname,
			Level:     m.Level,
			IVs: IVs{
				HP: m.IVs.HP, Attack: m.IVs.Attack, Defense: m.IVs.Defense,
				SpAttack: m.IVs.SpAttack, SpDefense: m.IVs.SpDefense, Speed: m.IVs.Speed,
			},
			EVs: EVs{
				HP: m.EVs.HP, Attack: m.EVs.Attack, Defense: m.EVs.Defense,
				SpAttack: m.EVs.SpAttack, SpDefense: m.EVs.SpDefense, Speed: m.EVs.Speed,
			},
			Ability: m.Ability,
			MoveIDs: m.Moves,
		})
	}
	return specs, nil
}

// BuildTeam resolves every spec in specs against store.
//
// Precondition: store must be non-nil.
// Postcondition: Returns one Combatant per spec, or the first build error.
func BuildTeam(store content.Store, specs []Spec) ([]*Combatant, error) {
	team := make([]*Combatant, 0, len(specs))
	for i, spec := range specs {
		c, err := Build(store, spec)
		if err != nil {
			return nil, fmt.Errorf("building team member %d (%s): %w", i, spec.SpeciesID, err)
		}
		team = append(team, c)
	}
	return team, nil
}
