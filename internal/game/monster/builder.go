package monster

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/arena/internal/game/condition"
	"github.com/cory-johannsen/arena/internal/game/content"
)

// Spec describes the inputs to Build: a species, level, spreads, ability,
// and move list resolved against a content store.
type Spec struct {
	SpeciesID string
	Nickname  string
	Level     int
	IVs       IVs
	EVs       EVs
	Ability   string
	MoveIDs   []string
}

const (
	maxIV      = 31
	maxEV      = 252
	maxEVTotal = 510
	maxMoves   = 4
)

func validateSpread(ivs IVs, evs EVs) error {
	for name, v := range map[string]int{
		"hp": ivs.HP, "attack": ivs.Attack, "defense": ivs.Defense,
		"sp_attack": ivs.SpAttack, "sp_defense": ivs.SpDefense, "speed": ivs.Speed,
	} {
		if v < 0 || v > maxIV {
			return fmt.Errorf("monster: iv %s=%d out of range [0, %d]", name, v, maxIV)
		}
	}
	for name, v := range map[string]int{
		"hp": evs.HP, "attack": evs.Attack, "defense": evs.Defense,
		"sp_attack": evs.SpAttack, "sp_defense": evs.SpDefense, "speed": evs.Speed,
	} {
		if v < 0 || v > maxEV {
			return fmt.Errorf("monster: ev %s=%d out of range [0, %d]", name, v, maxEV)
		}
	}
	if evs.Total() > maxEVTotal {
		return fmt.Errorf("monster: ev total %d exceeds %d", evs.Total(), maxEVTotal)
	}
	return nil
}

// Build constructs a battle-ready Combatant from a Spec, resolving the
// species and moves through store.
//
// Precondition: store must be non-nil.
// Postcondition: Returns a Combatant at full HP with a fresh condition set,
// or a non-nil error describing the first violation found.
func Build(store content.Store, spec Spec) (*Combatant, error) {
	if spec.Level < 1 || spec.Level > 100 {
		return nil, fmt.Errorf("monster: level %d out of range [1, 100]", spec.Level)
	}
	if err := validateSpread(spec.IVs, spec.EVs); err != nil {
		return nil, err
	}
	if len(spec.MoveIDs) == 0 {
		return nil, errors.New("monster: at least one move is required")
	}
	if len(spec.MoveIDs) > maxMoves {
		return nil, fmt.Errorf("monster: %d moves exceeds the limit of %d", len(spec.MoveIDs), maxMoves)
	}

	species, ok := store.Species(spec.SpeciesID)
	if !ok {
		return nil, fmt.Errorf("monster: unknown species %q", spec.SpeciesID)
	}

	slots := make([]MoveSlot, 0, len(spec.MoveIDs))
	seen := make(map[string]bool, len(spec.MoveIDs))
	for _, id := range spec.MoveIDs {
		if seen[id] {
			return nil, fmt.Errorf("monster: duplicate move %q", id)
		}
		seen[id] = true
		mv, ok := store.Move(id)
		if !ok {
			return nil, fmt.Errorf("monster: unknown move %q", id)
		}
		slots = append(slots, MoveSlot{Move: mv, PP: mv.PP})
	}

	maxHP := computeHP(species.Stats.HP, spec.IVs.HP, spec.EVs.HP, spec.Level)
	stats := Stats{
		Attack:    computeStat(species.Stats.Attack, spec.IVs.Attack, spec.EVs.Attack, spec.Level),
		Defense:   computeStat(species.Stats.Defense, spec.IVs.Defense, spec.EVs.Defense, spec.Level),
		SpAttack:  computeStat(species.Stats.SpAttack, spec.IVs.SpAttack, spec.EVs.SpAttack, spec.Level),
		SpDefense: computeStat(species.Stats.SpDefense, spec.IVs.SpDefense, spec.EVs.SpDefense, spec.Level),
		Speed:     computeStat(species.Stats.Speed, spec.IVs.Speed, spec.EVs.Speed, spec.Level),
	}

	return &Combatant{
		UID:           uuid.New(),
		Nickname:      spec.Nickname,
		Species:       species,
		Level:         spec.Level,
		Ability:       spec.Ability,
		MaxHP:         maxHP,
		CurrentHP:     maxHP,
		stats:         stats,
		primaryType:   species.PrimaryType,
		secondaryType: species.SecondaryType,
		Conditions:    condition.NewSet(),
		Moves:         slots,
	}, nil
}
