package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/arena/internal/game/condition"
)

func TestSet_ApplyStatus_Exclusive(t *testing.T) {
	s := condition.NewSet()
	require.NoError(t, s.ApplyStatus(condition.StatusBurn, 0))
	assert.Equal(t, condition.StatusBurn, s.Status())

	err := s.ApplyStatus(condition.StatusPoison, 0)
	assert.ErrorIs(t, err, condition.ErrAlreadyStatused)
	assert.Equal(t, condition.StatusBurn, s.Status(), "existing status must be kept")

	s.CureStatus()
	assert.Equal(t, condition.StatusNone, s.Status())
	require.NoError(t, s.ApplyStatus(condition.StatusPoison, 0))
}

func TestSet_Sleep_Countdown(t *testing.T) {
	s := condition.NewSet()
	require.NoError(t, s.ApplyStatus(condition.StatusSleep, 2))
	assert.Equal(t, 2, s.SleepTurns())

	assert.False(t, s.DecrementSleep())
	assert.Equal(t, condition.StatusSleep, s.Status())

	assert.True(t, s.DecrementSleep(), "second decrement wakes the combatant")
	assert.Equal(t, condition.StatusNone, s.Status())
}

func TestSet_Volatiles(t *testing.T) {
	s := condition.NewSet()
	s.ApplyVolatile(condition.VolatileConfusion, 3)
	assert.True(t, s.HasVolatile(condition.VolatileConfusion))
	assert.Equal(t, 3, s.VolatileTurns(condition.VolatileConfusion))

	// re-apply refreshes, never stacks
	s.ApplyVolatile(condition.VolatileConfusion, 2)
	assert.Equal(t, 2, s.VolatileTurns(condition.VolatileConfusion))

	assert.False(t, s.DecrementVolatile(condition.VolatileConfusion))
	assert.Equal(t, 1, s.VolatileTurns(condition.VolatileConfusion))
	assert.True(t, s.DecrementVolatile(condition.VolatileConfusion))
	assert.False(t, s.HasVolatile(condition.VolatileConfusion))

	s.ApplyVolatile(condition.VolatileIngrain, condition.Indefinite)
	assert.False(t, s.DecrementVolatile(condition.VolatileIngrain), "indefinite volatiles never count down")
	assert.True(t, s.HasVolatile(condition.VolatileIngrain))
}

func TestSet_ResetVolatiles(t *testing.T) {
	s := condition.NewSet()
	require.NoError(t, s.ApplyStatus(condition.StatusBadlyPoison, 0))
	s.ApplyVolatile(condition.VolatileLeechSeed, condition.Indefinite)
	s.ApplyVolatile(condition.VolatileTaunt, 3)

	// two ticks escalate the toxic counter
	s.Tick(160)
	events := s.Tick(160)
	var toxic *condition.TickEvent
	for i := range events {
		if events[i].Kind == condition.TickToxic {
			toxic = &events[i]
		}
	}
	require.NotNil(t, toxic)
	assert.Equal(t, 160*2/16, toxic.Damage)

	s.ResetVolatiles()
	assert.False(t, s.HasVolatile(condition.VolatileLeechSeed))
	assert.False(t, s.HasVolatile(condition.VolatileTaunt))
	assert.Equal(t, condition.StatusBadlyPoison, s.Status(), "major status survives leaving the field")

	// counter restarted: next tick deals 1/16 again
	events = s.Tick(160)
	require.Len(t, events, 1)
	assert.Equal(t, condition.TickToxic, events[0].Kind)
	assert.Equal(t, 160/16, events[0].Damage)
}

func TestSet_Tick_Order(t *testing.T) {
	s := condition.NewSet()
	require.NoError(t, s.ApplyStatus(condition.StatusBurn, 0))
	s.ApplyVolatile(condition.VolatileIngrain, condition.Indefinite)
	s.ApplyVolatile(condition.VolatileAquaRing, condition.Indefinite)
	s.ApplyVolatile(condition.VolatileLeechSeed, condition.Indefinite)
	s.ApplyVolatile(condition.VolatileCurse, condition.Indefinite)
	s.ApplyVolatile(condition.VolatileTrap, 2)

	events := s.Tick(320)
	kinds := make([]condition.TickKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []condition.TickKind{
		condition.TickBurn,
		condition.TickTrap,
		condition.TickCurse,
		condition.TickAquaRingHeal,
		condition.TickIngrainHeal,
		condition.TickLeechSeed,
	}, kinds)

	assert.Equal(t, 20, events[0].Damage) // 320/16
	assert.Equal(t, 20, events[1].Damage) // 320/16
	assert.Equal(t, 80, events[2].Damage) // 320/4
	assert.Equal(t, 20, events[3].Heal)   // 320/16
	assert.Equal(t, 20, events[4].Heal)   // 320/16
	assert.Equal(t, 40, events[5].Damage) // 320/8
}

func TestSet_Tick_StatusDamageBeforeResidualHeals(t *testing.T) {
	s := condition.NewSet()
	require.NoError(t, s.ApplyStatus(condition.StatusPoison, 0))
	s.ApplyVolatile(condition.VolatileIngrain, condition.Indefinite)

	events := s.Tick(160)
	require.Len(t, events, 2)
	assert.Equal(t, condition.TickPoison, events[0].Kind,
		"poison damage lands before the ingrain heal")
	assert.Equal(t, condition.TickIngrainHeal, events[1].Kind)
}

func TestSet_Tick_TrapDealsFinalTickBeforeExpiring(t *testing.T) {
	s := condition.NewSet()
	s.ApplyVolatile(condition.VolatileTrap, 1)

	events := s.Tick(100)
	require.Len(t, events, 2)
	assert.Equal(t, condition.TickTrap, events[0].Kind)
	assert.Equal(t, 6, events[0].Damage)
	assert.Equal(t, condition.TickVolatileExpired, events[1].Kind)
	assert.Equal(t, condition.VolatileTrap, events[1].Expired)
	assert.False(t, s.HasVolatile(condition.VolatileTrap))
}

func TestSet_Tick_MinimumOneDamage(t *testing.T) {
	s := condition.NewSet()
	require.NoError(t, s.ApplyStatus(condition.StatusBurn, 0))
	events := s.Tick(10) // 10/16 floors to 0
	require.Len(t, events, 1)
	assert.Equal(t, 1, events[0].Damage)
}

func TestSet_Tick_ToxicEscalation_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxHP := rapid.IntRange(16, 500).Draw(rt, "maxHP")
		turns := rapid.IntRange(1, 15).Draw(rt, "turns")

		s := condition.NewSet()
		require.NoError(rt, s.ApplyStatus(condition.StatusBadlyPoison, 0))
		var last int
		for i := 1; i <= turns; i++ {
			events := s.Tick(maxHP)
			require.Len(rt, events, 1)
			dmg := events[0].Damage
			want := maxHP * i / 16
			if want < 1 {
				want = 1
			}
			assert.Equal(rt, want, dmg, "tick %d", i)
			assert.GreaterOrEqual(rt, dmg, last, "toxic damage never decreases")
			last = dmg
		}
	})
}
