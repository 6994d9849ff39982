package battle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/arena/internal/game/battle"
	"github.com/cory-johannsen/arena/internal/game/monster"
)

func TestExecuteTurn_FasterActsFirst(t *testing.T) {
	st := seeded(t, 1,
		[]*monster.Combatant{mon(t, "pikachu", "tackle")},
		[]*monster.Combatant{mon(t, "snorlax", "tackle")},
	)
	res, err := st.ExecuteTurn([]battle.Action{moveA("tackle"), moveB("tackle")})
	require.NoError(t, err)

	pika := firstIndex(res, "Pikachu used Tackle")
	lax := firstIndex(res, "Snorlax used Tackle")
	require.NotEqual(t, -1, pika)
	require.NotEqual(t, -1, lax)
	assert.Less(t, pika, lax, "the faster combatant moves first")
}

func TestExecuteTurn_PriorityBeatsSpeed(t *testing.T) {
	st := seeded(t, 1,
		[]*monster.Combatant{mon(t, "pikachu", "tackle")},
		[]*monster.Combatant{mon(t, "snorlax", "quick-attack")},
	)
	res, err := st.ExecuteTurn([]battle.Action{moveA("tackle"), moveB("quick-attack")})
	require.NoError(t, err)

	lax := firstIndex(res, "Snorlax used Quick Attack")
	pika := firstIndex(res, "Pikachu used Tackle")
	require.NotEqual(t, -1, lax)
	assert.Less(t, lax, pika, "higher priority resolves before higher speed")
}

func TestExecuteTurn_TrickRoomInvertsSpeedOrder(t *testing.T) {
	st := seeded(t, 1,
		[]*monster.Combatant{mon(t, "pikachu", "tackle")},
		[]*monster.Combatant{mon(t, "snorlax", "trick-room", "tackle")},
	)
	// Turn 1: Trick Room goes up (priority -7, resolves last).
	res, err := st.ExecuteTurn([]battle.Action{moveA("tackle"), moveB("trick-room")})
	require.NoError(t, err)
	require.NotEqual(t, -1, firstIndex(res, "dimensions were twisted"))

	// Turn 2: the slower Snorlax now moves first.
	res, err = st.ExecuteTurn([]battle.Action{moveA("tackle"), moveB("tackle")})
	require.NoError(t, err)
	lax := firstIndex(res, "Snorlax used Tackle")
	pika := firstIndex(res, "Pikachu used Tackle")
	assert.Less(t, lax, pika, "trick room inverts the speed comparison")
}

func TestExecuteTurn_SwitchResolvesBeforeMoves(t *testing.T) {
	st := seeded(t, 1,
		[]*monster.Combatant{mon(t, "snorlax", "tackle"), mon(t, "golem", "tackle")},
		[]*monster.Combatant{mon(t, "pikachu", "tackle")},
	)
	res, err := st.ExecuteTurn([]battle.Action{
		{Side: battle.SideA, Kind: battle.ActionSwitch, SwitchTo: 1},
		moveB("tackle"),
	})
	require.NoError(t, err)

	sw := firstIndex(res, "Golem was sent out")
	mv := firstIndex(res, "Pikachu used Tackle")
	require.NotEqual(t, -1, sw)
	assert.Less(t, sw, mv, "switches occupy the top priority bracket")
	assert.Equal(t, "Golem", st.Sides[battle.SideA].ActiveCombatant().Name())
}

func TestExecuteTurn_SpeedTieUsesRandomTieBreak(t *testing.T) {
	// Identical species and spreads: only the tie-break decides. With a
	// scripted source the first two draws are the tie-breaks, in
	// submission order; a larger draw wins.
	rosterA := []*monster.Combatant{mon(t, "pikachu", "tackle")}
	rosterB := []*monster.Combatant{mon(t, "pikachu", "tackle")}
	rosterA[0].Nickname = "Sparky"
	rosterB[0].Nickname = "Volty"

	st := scripted(t, rosterA, rosterB, 1, 2)
	res, err := st.ExecuteTurn([]battle.Action{moveA("tackle"), moveB("tackle")})
	require.NoError(t, err)

	volty := firstIndex(res, "Volty used Tackle")
	sparky := firstIndex(res, "Sparky used Tackle")
	assert.Less(t, volty, sparky, "the larger tie-break draw acts first")
}

func TestOrderingKeysFrozenAtTurnStart(t *testing.T) {
	// Pikachu outspeeds and paralyzes Snorlax; Snorlax's tackle in the
	// same turn still resolves in the order computed before the
	// paralysis landed. Draws: two tie-breaks, then Snorlax's full-stop
	// roll (99 -> not stopped), crit roll, and damage spread.
	st := scripted(t,
		[]*monster.Combatant{mon(t, "pikachu", "thunder-wave")},
		[]*monster.Combatant{mon(t, "snorlax", "tackle")},
		0, 0, 99, 23, 15,
	)
	res, err := st.ExecuteTurn([]battle.Action{moveA("thunder-wave"), moveB("tackle")})
	require.NoError(t, err)

	para := firstIndex(res, "Snorlax was paralyzed")
	tackle := firstIndex(res, "Snorlax used Tackle")
	require.NotEqual(t, -1, para)
	require.NotEqual(t, -1, tackle)
	assert.Less(t, para, tackle, "paralysis lands before the slower action, which still runs")
}
