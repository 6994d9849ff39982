package ability_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/ability"
	"github.com/cory-johannsen/arena/internal/game/battle"
	"github.com/cory-johannsen/arena/internal/game/condition"
	"github.com/cory-johannsen/arena/internal/game/content"
	"github.com/cory-johannsen/arena/internal/game/monster"
	"github.com/cory-johannsen/arena/internal/game/rng"
)

const abilityCatalog = `
moves:
  - id: tackle
    name: Tackle
    type: Normal
    category: Physical
    power: 40
    accuracy: 100
    pp: 35
    makes_contact: true
  - id: earthquake
    name: Earthquake
    type: Ground
    category: Physical
    power: 100
    accuracy: 100
    pp: 10
  - id: thunderbolt
    name: Thunderbolt
    type: Electric
    category: Special
    power: 90
    accuracy: 100
    pp: 15
  - id: growl
    name: Growl
    type: Normal
    category: Status
    accuracy: 100
    pp: 40
    effects:
      - name: soften
        category: StatChange
        trigger: OnHit
        target: Target
        probability: 100
        stat: Attack
        stages: -1
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
species:
  - id: pikachu
    name: Pikachu
    primary_type: Electric
    stats: {hp: 35, attack: 55, defense: 40, sp_attack: 50, sp_defense: 50, speed: 90}
  - id: snorlax
    name: Snorlax
    primary_type: Normal
    stats: {hp: 160, attack: 110, defense: 65, sp_attack: 65, sp_defense: 110, speed: 30}
  - id: gyarados
    name: Gyarados
    primary_type: Water
    secondary_type: Flying
    stats: {hp: 95, attack: 125, defense: 79, sp_attack: 60, sp_defense: 100, speed: 81}
`

var abilityStore = func() *content.Registry {
	reg := content.NewRegistry()
	if err := reg.LoadBytes([]byte(abilityCatalog)); err != nil {
		panic(err)
	}
	return reg
}()

func abilityMon(t *testing.T, speciesID, abilityName string, moveIDs ...string) *monster.Combatant {
	t.Helper()
	c, err := monster.Build(abilityStore, monster.Spec{
		SpeciesID: speciesID,
		Level:     50,
		IVs:       monster.IVs{HP: 31, Attack: 31, Defense: 31, SpAttack: 31, SpDefense: 31, Speed: 31},
		Ability:   abilityName,
		MoveIDs:   moveIDs,
	})
	require.NoError(t, err)
	return c
}

func abilityBattle(t *testing.T, seed int64, a, b *monster.Combatant) *battle.State {
	t.Helper()
	st, err := battle.New(battle.Config{
		RosterA: []*monster.Combatant{a},
		RosterB: []*monster.Combatant{b},
		Roller:  rng.NewRoller(rng.NewSeededSource(seed), zap.NewNop()),
		Logger:  zap.NewNop(),
		Hooks:   ability.NewSet(zap.NewNop()),
	})
	require.NoError(t, err)
	return st
}

func TestIntimidate_LowersAttackOnEntry(t *testing.T) {
	gyara := abilityMon(t, "gyarados", ability.Intimidate, "tackle")
	lax := abilityMon(t, "snorlax", "", "tackle")
	abilityBattle(t, 1, gyara, lax)

	assert.Equal(t, -1, lax.Stages[content.StatAttack], "intimidate fires on the lead switch-in")
	assert.Equal(t, 0, gyara.Stages[content.StatAttack])
}

func TestLevitate_BlocksGroundMoves(t *testing.T) {
	quake := abilityMon(t, "snorlax", "", "earthquake")
	floaty := abilityMon(t, "pikachu", ability.Levitate, "tackle")
	st := abilityBattle(t, 1, quake, floaty)

	hpBefore := floaty.CurrentHP
	res, err := st.ExecuteTurn([]battle.Action{
		{Side: battle.SideA, Kind: battle.ActionMove, MoveID: "earthquake"},
		{Side: battle.SideB, Kind: battle.ActionMove, MoveID: "tackle"},
	})
	require.NoError(t, err)

	found := false
	for _, ev := range res.Events {
		if ev.Kind == battle.EventMoveFailed {
			found = true
		}
	}
	assert.True(t, found, "earthquake is announced as having no effect")
	assert.Equal(t, hpBefore, floaty.CurrentHP)
}

func TestVoltAbsorb_HealsInsteadOfDamage(t *testing.T) {
	zapper := abilityMon(t, "pikachu", "", "thunderbolt")
	sponge := abilityMon(t, "gyarados", ability.VoltAbsorb, "tackle")
	st := abilityBattle(t, 1, zapper, sponge)

	sponge.ApplyDamage(60)
	hpBefore := sponge.CurrentHP
	_, err := st.ExecuteTurn([]battle.Action{
		{Side: battle.SideA, Kind: battle.ActionMove, MoveID: "thunderbolt"},
		{Side: battle.SideB, Kind: battle.ActionMove, MoveID: "tackle"},
	})
	require.NoError(t, err)

	assert.Equal(t, hpBefore+sponge.MaxHP/4, sponge.CurrentHP,
		"an absorbed hit heals a quarter of max HP")
}

func TestLimber_BlocksParalysis(t *testing.T) {
	waver := abilityMon(t, "pikachu", "", "thunder-wave")
	limber := abilityMon(t, "snorlax", ability.Limber, "tackle")
	st := abilityBattle(t, 1, waver, limber)

	_, err := st.ExecuteTurn([]battle.Action{
		{Side: battle.SideA, Kind: battle.ActionMove, MoveID: "thunder-wave"},
		{Side: battle.SideB, Kind: battle.ActionMove, MoveID: "tackle"},
	})
	require.NoError(t, err)
	assert.Equal(t, condition.StatusNone, limber.Conditions.Status())
}

func TestSturdy_SurvivesFromFullHP(t *testing.T) {
	set := ability.NewSet(zap.NewNop())
	target := abilityMon(t, "pikachu", ability.Sturdy, "tackle")
	assert.True(t, set.SurvivesKO(nil, target, target.MaxHP*2))

	plain := abilityMon(t, "pikachu", "", "tackle")
	assert.False(t, set.SurvivesKO(nil, plain, plain.MaxHP*2))
}

func TestMoldBreaker_BypassesLevitate(t *testing.T) {
	quake := abilityMon(t, "snorlax", ability.MoldBreaker, "earthquake")
	floaty := abilityMon(t, "pikachu", ability.Levitate, "tackle")
	st := abilityBattle(t, 1, quake, floaty)

	hpBefore := floaty.CurrentHP
	_, err := st.ExecuteTurn([]battle.Action{
		{Side: battle.SideA, Kind: battle.ActionMove, MoveID: "earthquake"},
		{Side: battle.SideB, Kind: battle.ActionMove, MoveID: "tackle"},
	})
	require.NoError(t, err)
	assert.Less(t, floaty.CurrentHP, hpBefore, "mold breaker ignores levitate")
}

func TestGuts_BoostsDamageWhenStatused(t *testing.T) {
	set := ability.NewSet(zap.NewNop())
	gutsy := abilityMon(t, "snorlax", ability.Guts, "tackle")
	mv, ok := abilityStore.Move("tackle")
	require.True(t, ok)

	assert.Equal(t, 100, set.ModifyOutgoingDamage(nil, gutsy, nil, mv, 100),
		"no boost while healthy")
	require.NoError(t, gutsy.Conditions.ApplyStatus(condition.StatusBurn, 0))
	assert.Equal(t, 150, set.ModifyOutgoingDamage(nil, gutsy, nil, mv, 100))
}

func TestThickFat_HalvesFireAndIce(t *testing.T) {
	set := ability.NewSet(zap.NewNop())
	fat := abilityMon(t, "snorlax", ability.ThickFat, "tackle")
	fire := content.Move{Type: content.TypeFire, Category: content.CategorySpecial}
	water := content.Move{Type: content.TypeWater, Category: content.CategorySpecial}

	assert.Equal(t, 50, set.ModifyIncomingDamage(nil, nil, fat, fire, 100))
	assert.Equal(t, 100, set.ModifyIncomingDamage(nil, nil, fat, water, 100))
}

func TestSpeedAbilities(t *testing.T) {
	set := ability.NewSet(zap.NewNop())
	swimmer := abilityMon(t, "gyarados", ability.SwiftSwim, "tackle")
	plain := abilityMon(t, "snorlax", "", "tackle")
	st := abilityBattle(t, 1, swimmer, plain)

	assert.Equal(t, 100, set.ModifySpeed(st, swimmer, 100), "no rain, no boost")
	st.Weather = content.WeatherRain
	assert.Equal(t, 200, set.ModifySpeed(st, swimmer, 100))
}

func TestDrizzle_SetsRainOnEntry(t *testing.T) {
	rainmaker := abilityMon(t, "gyarados", ability.Drizzle, "tackle")
	plain := abilityMon(t, "snorlax", "", "tackle")
	st := abilityBattle(t, 1, rainmaker, plain)

	assert.Equal(t, content.WeatherRain, st.Weather)
	assert.Equal(t, 5, st.WeatherTurns)
}

func TestClearBody_BlocksHostileDrops(t *testing.T) {
	set := ability.NewSet(zap.NewNop())
	solid := abilityMon(t, "snorlax", ability.ClearBody, "tackle")

	assert.Equal(t, 0, set.ModifyStatChange(nil, solid, content.StatAttack, -1, true))
	assert.Equal(t, -1, set.ModifyStatChange(nil, solid, content.StatAttack, -1, false),
		"self-inflicted drops go through")
	assert.Equal(t, 2, set.ModifyStatChange(nil, solid, content.StatAttack, 2, true),
		"raises go through")
}

func TestClearBody_StopsIntimidateAndGrowl(t *testing.T) {
	gyara := abilityMon(t, "gyarados", ability.Intimidate, "growl")
	solid := abilityMon(t, "snorlax", ability.ClearBody, "tackle")
	st := abilityBattle(t, 1, gyara, solid)

	assert.Equal(t, 0, solid.Stages[content.StatAttack],
		"intimidate on entry is shrugged off")

	_, err := st.ExecuteTurn([]battle.Action{
		{Side: battle.SideA, Kind: battle.ActionMove, MoveID: "growl"},
		{Side: battle.SideB, Kind: battle.ActionMove, MoveID: "tackle"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, solid.Stages[content.StatAttack])
}

func TestContrary_InvertsStatChanges(t *testing.T) {
	waver := abilityMon(t, "pikachu", "", "growl")
	perverse := abilityMon(t, "snorlax", ability.Contrary, "tackle")
	st := abilityBattle(t, 1, waver, perverse)

	_, err := st.ExecuteTurn([]battle.Action{
		{Side: battle.SideA, Kind: battle.ActionMove, MoveID: "growl"},
		{Side: battle.SideB, Kind: battle.ActionMove, MoveID: "tackle"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, perverse.Stages[content.StatAttack],
		"a drop lands as a raise")
}

func TestSimple_DoublesStatChanges(t *testing.T) {
	set := ability.NewSet(zap.NewNop())
	simple := abilityMon(t, "snorlax", ability.Simple, "tackle")

	assert.Equal(t, 2, set.ModifyStatChange(nil, simple, content.StatAttack, 1, false))
	assert.Equal(t, -2, set.ModifyStatChange(nil, simple, content.StatDefense, -1, true))
}

// recordSink collects hook events for direct hook-call tests.
type recordSink struct {
	events []battle.Event
}

func (r *recordSink) Add(kind battle.EventKind, narrative string) {
	r.events = append(r.events, battle.Event{Kind: kind, Narrative: narrative})
}

func TestHydration_CuresStatusInRain(t *testing.T) {
	set := ability.NewSet(zap.NewNop())
	hydrated := abilityMon(t, "gyarados", ability.Hydration, "tackle")
	plain := abilityMon(t, "snorlax", "", "tackle")
	st := abilityBattle(t, 1, hydrated, plain)
	require.NoError(t, hydrated.Conditions.ApplyStatus(condition.StatusBurn, 0))

	sink := &recordSink{}
	set.OnTurnEnd(st, battle.SideA, hydrated, sink)
	assert.Equal(t, condition.StatusBurn, hydrated.Conditions.Status(), "no rain, no cure")

	st.Weather = content.WeatherRain
	set.OnTurnEnd(st, battle.SideA, hydrated, sink)
	assert.Equal(t, condition.StatusNone, hydrated.Conditions.Status())
}

func TestShedSkin_EventuallyCures(t *testing.T) {
	set := ability.NewSet(zap.NewNop())
	shedder := abilityMon(t, "snorlax", ability.ShedSkin, "tackle")
	plain := abilityMon(t, "pikachu", "", "tackle")
	st := abilityBattle(t, 7, shedder, plain)
	require.NoError(t, shedder.Conditions.ApplyStatus(condition.StatusParalysis, 0))

	sink := &recordSink{}
	cured := false
	for i := 0; i < 100 && !cured; i++ {
		set.OnTurnEnd(st, battle.SideA, shedder, sink)
		cured = shedder.Conditions.Status() == condition.StatusNone
	}
	assert.True(t, cured, "a one-in-three cure should land well within 100 ticks")
}

func TestBadDreams_DamagesSleepingFoe(t *testing.T) {
	set := ability.NewSet(zap.NewNop())
	dreamer := abilityMon(t, "gyarados", ability.BadDreams, "tackle")
	sleeper := abilityMon(t, "snorlax", "", "tackle")
	st := abilityBattle(t, 1, dreamer, sleeper)

	sink := &recordSink{}
	hpBefore := sleeper.CurrentHP
	set.OnTurnEnd(st, battle.SideA, dreamer, sink)
	assert.Equal(t, hpBefore, sleeper.CurrentHP, "awake foes take nothing")

	require.NoError(t, sleeper.Conditions.ApplyStatus(condition.StatusSleep, 2))
	set.OnTurnEnd(st, battle.SideA, dreamer, sink)
	assert.Equal(t, hpBefore-sleeper.MaxHP/8, sleeper.CurrentHP)
}
