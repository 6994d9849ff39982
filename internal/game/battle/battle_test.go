package battle_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/battle"
	"github.com/cory-johannsen/arena/internal/game/content"
	"github.com/cory-johannsen/arena/internal/game/monster"
	"github.com/cory-johannsen/arena/internal/game/rng"
)

// scriptSource replays a queue of raw draws. When the queue runs dry it
// returns n-1, which reads as: no crit, full damage spread, failed
// percent roll, and a stable tie-break.
type scriptSource struct {
	q []int
}

func (s *scriptSource) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with n <= 0")
	}
	if len(s.q) == 0 {
		return n - 1
	}
	v := s.q[0] % n
	s.q = s.q[1:]
	return v
}

const battleCatalog = `
moves:
  - id: tackle
    name: Tackle
    type: Normal
    category: Physical
    power: 40
    accuracy: 100
    pp: 35
    makes_contact: true
  - id: quick-attack
    name: Quick Attack
    type: Normal
    category: Physical
    power: 40
    accuracy: 100
    pp: 30
    priority: 1
    makes_contact: true
  - id: thunderbolt
    name: Thunderbolt
    type: Electric
    category: Special
    power: 90
    accuracy: 100
    pp: 15
    effects:
      - name: paralyze
        category: Status
        trigger: IfSecondary
        target: Target
        probability: 10
        status: Paralysis
  - id: thunder-wave
    name: Thunder Wave
    type: Electric
    category: Status
    accuracy: 100
    pp: 20
    effects:
      - name: paralyze
        category: Status
        trigger: OnHit
        target: Target
        probability: 100
        status: Paralysis
  - id: will-o-wisp
    name: Will-O-Wisp
    type: Fire
    category: Status
    accuracy: 100
    pp: 15
    effects:
      - name: burn
        category: Status
        trigger: OnHit
        target: Target
        probability: 100
        status: Burn
  - id: toxic
    name: Toxic
    type: Poison
    category: Status
    accuracy: 100
    pp: 10
    effects:
      - name: bad poison
        category: Status
        trigger: OnHit
        target: Target
        probability: 100
        status: BadlyPoison
  - id: swords-dance
    name: Swords Dance
    type: Normal
    category: Status
    accuracy: 0
    pp: 20
    effects:
      - name: sharpen
        category: StatChange
        trigger: Always
        target: User
        probability: 100
        stat: Attack
        stages: 2
  - id: protect
    name: Protect
    type: Normal
    category: Status
    accuracy: 0
    pp: 10
    priority: 4
    effects:
      - name: protect
        category: Other
        trigger: Always
        target: User
        probability: 100
        other: Protect
  - id: recover
    name: Recover
    type: Normal
    category: Status
    accuracy: 0
    pp: 10
    effects:
      - name: recover
        category: Heal
        trigger: Always
        target: User
        probability: 100
        heal_percent: 50
  - id: double-kick
    name: Double Kick
    type: Fighting
    category: Physical
    power: 30
    accuracy: 100
    pp: 30
    makes_contact: true
    effects:
      - name: two hits
        category: Other
        trigger: Always
        target: Target
        probability: 100
        other: MultiHit2
  - id: iron-head
    name: Iron Head
    type: Steel
    category: Physical
    power: 80
    accuracy: 100
    pp: 15
    makes_contact: true
    effects:
      - name: flinch
        category: Other
        trigger: IfSecondary
        target: Target
        probability: 30
        other: Flinch
  - id: taunt
    name: Taunt
    type: Dark
    category: Status
    accuracy: 100
    pp: 20
    effects:
      - name: taunt
        category: Other
        trigger: OnHit
        target: Target
        probability: 100
        other: Taunt
  - id: explosion
    name: Explosion
    type: Normal
    category: Physical
    power: 250
    accuracy: 100
    pp: 5
    effects:
      - name: self destruct
        category: Other
        trigger: Always
        target: User
        probability: 100
        other: SelfDestruct
  - id: endeavor
    name: Endeavor
    type: Normal
    category: Physical
    accuracy: 100
    pp: 5
    effects:
      - name: match hp
        category: DamageModifier
        trigger: Always
        target: Target
        probability: 100
        modifier: FixedHPDifference
  - id: stealth-rock
    name: Stealth Rock
    type: Rock
    category: Status
    accuracy: 0
    pp: 20
    effects:
      - name: rocks
        category: FieldEffect
        trigger: Always
        target: TargetSide
        probability: 100
        field: StealthRock
  - id: trick-room
    name: Trick Room
    type: Psychic
    category: Status
    accuracy: 0
    pp: 5
    priority: -7
    effects:
      - name: twist
        category: FieldEffect
        trigger: Always
        target: Field
        probability: 100
        field: TrickRoom
species:
  - id: pikachu
    name: Pikachu
    primary_type: Electric
    stats: {hp: 35, attack: 55, defense: 40, sp_attack: 50, sp_defense: 50, speed: 90}
  - id: snorlax
    name: Snorlax
    primary_type: Normal
    stats: {hp: 160, attack: 110, defense: 65, sp_attack: 65, sp_defense: 110, speed: 30}
  - id: golem
    name: Golem
    primary_type: Rock
    secondary_type: Ground
    stats: {hp: 80, attack: 120, defense: 130, sp_attack: 55, sp_defense: 65, speed: 45}
  - id: pelipper
    name: Pelipper
    primary_type: Water
    secondary_type: Flying
    stats: {hp: 60, attack: 50, defense: 100, sp_attack: 95, sp_defense: 70, speed: 65}
  - id: gengar
    name: Gengar
    primary_type: Ghost
    secondary_type: Poison
    stats: {hp: 60, attack: 65, defense: 60, sp_attack: 130, sp_defense: 75, speed: 110}
`

var battleStore = func() *content.Registry {
	reg := content.NewRegistry()
	if err := reg.LoadBytes([]byte(battleCatalog)); err != nil {
		panic(err)
	}
	return reg
}()

// mon builds a level 50, 31-IV combatant for tests.
func mon(t *testing.T, speciesID string, moveIDs ...string) *monster.Combatant {
	t.Helper()
	c, err := monster.Build(battleStore, monster.Spec{
		SpeciesID: speciesID,
		Level:     50,
		IVs:       monster.IVs{HP: 31, Attack: 31, Defense: 31, SpAttack: 31, SpDefense: 31, Speed: 31},
		MoveIDs:   moveIDs,
	})
	require.NoError(t, err)
	return c
}

// newBattle wires a battle around the given rosters and source.
func newBattle(t *testing.T, src rng.Source, rosterA, rosterB []*monster.Combatant) *battle.State {
	t.Helper()
	st, err := battle.New(battle.Config{
		RosterA: rosterA,
		RosterB: rosterB,
		Roller:  rng.NewRoller(src, zap.NewNop()),
		Logger:  zap.NewNop(),
	})
	require.NoError(t, err)
	return st
}

// scripted returns a battle fed by a scriptSource.
func scripted(t *testing.T, rosterA, rosterB []*monster.Combatant, draws ...int) *battle.State {
	t.Helper()
	return newBattle(t, &scriptSource{q: draws}, rosterA, rosterB)
}

// seeded returns a battle fed by a deterministic seeded source.
func seeded(t *testing.T, seed int64, rosterA, rosterB []*monster.Combatant) *battle.State {
	t.Helper()
	return newBattle(t, rng.NewSeededSource(seed), rosterA, rosterB)
}

// narratives flattens a result's event text for assertions.
func narratives(res *battle.TurnResult) []string {
	out := make([]string, len(res.Events))
	for i, ev := range res.Events {
		out[i] = ev.Narrative
	}
	return out
}

// firstIndex returns the position of the first narrative containing sub, or
// -1.
func firstIndex(res *battle.TurnResult, sub string) int {
	for i, ev := range res.Events {
		if strings.Contains(ev.Narrative, sub) {
			return i
		}
	}
	return -1
}

func moveA(id string) battle.Action {
	return battle.Action{Side: battle.SideA, Kind: battle.ActionMove, MoveID: id}
}

func moveB(id string) battle.Action {
	return battle.Action{Side: battle.SideB, Kind: battle.ActionMove, MoveID: id}
}
