package ai

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/cory-johannsen/arena/internal/game/battle"
	"github.com/cory-johannsen/arena/internal/game/condition"
	"github.com/cory-johannsen/arena/internal/game/content"
	"github.com/cory-johannsen/arena/internal/game/monster"
)

// MoveView is one selectable move at planning time.
type MoveView struct {
	ID       string
	Name     string
	Type     content.Type
	Category content.Category
	Power    int
	Accuracy int
	PP       int
	Usable   bool
}

// CombatantView captures one active combatant's planning-relevant state.
type CombatantView struct {
	Name          string
	HP            int
	MaxHP         int
	PrimaryType   content.Type
	SecondaryType content.Type
	Status        condition.Status
	Moves         []MoveView
}

// HPPercent returns current HP as a percentage of MaxHP; 0 if MaxHP == 0.
func (v *CombatantView) HPPercent() float64 {
	if v.MaxHP <= 0 {
		return 0
	}
	return float64(v.HP) / float64(v.MaxHP) * 100
}

// Snapshot is the per-turn state the planner scores against.
//
// Invariant: Self and Foe describe the two active combatants from the
// planning side's perspective.
type Snapshot struct {
	Side      battle.SideID
	Turn      int
	Self      CombatantView
	Foe       CombatantView
	Bench     []int // roster indexes of healthy non-active members
	CanSwitch bool
}

// BuildSnapshot constructs a Snapshot of st from side's perspective.
//
// Precondition: st must not be nil and both sides must have an active
// combatant.
func BuildSnapshot(st *battle.State, side battle.SideID) *Snapshot {
	self := st.Sides[side]
	foe := st.Sides[side.Opponent()]

	snap := &Snapshot{
		Side: side,
		Turn: st.Turn,
		Self: buildView(self.ActiveCombatant(), true),
		Foe:  buildView(foe.ActiveCombatant(), false),
	}
	for i, c := range self.Roster {
		if i != self.Active && !c.Fainted() {
			snap.Bench = append(snap.Bench, i)
		}
	}
	active := self.ActiveCombatant()
	snap.CanSwitch = len(snap.Bench) > 0 &&
		(active.HasType(content.TypeGhost) ||
			(!active.Conditions.HasVolatile(condition.VolatilePreventEscape) &&
				!active.Conditions.HasVolatile(condition.VolatileTrap)))
	return snap
}

// buildView snapshots one combatant. Move views are only populated for the
// planning side's own active.
func buildView(c *monster.Combatant, withMoves bool) CombatantView {
	t1, t2 := c.Types()
	v := CombatantView{
		Name:          c.Name(),
		HP:            c.CurrentHP,
		MaxHP:         c.MaxHP,
		PrimaryType:   t1,
		SecondaryType: t2,
		Status:        c.Conditions.Status(),
	}
	if withMoves {
		for _, slot := range c.Moves {
			v.Moves = append(v.Moves, MoveView{
				ID:       slot.Move.ID,
				Name:     slot.Move.Name,
				Type:     slot.Move.Type,
				Category: slot.Move.Category,
				Power:    slot.Move.Power,
				Accuracy: slot.Move.Accuracy,
				PP:       slot.PP,
				Usable:   c.CanUseMove(slot.Move.ID) == nil,
			})
		}
	}
	return v
}

// ToLua converts the snapshot into a Lua table for script hooks. The layout
// is stable: self/foe sub-tables with hp, max_hp, status, and types, a moves
// array on self, and can_switch.
func (s *Snapshot) ToLua(L *lua.LState) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("turn", lua.LNumber(s.Turn))
	tbl.RawSetString("can_switch", lua.LBool(s.CanSwitch))
	tbl.RawSetString("self", combatantToLua(L, s.Self, true))
	tbl.RawSetString("foe", combatantToLua(L, s.Foe, false))
	return tbl
}

func combatantToLua(L *lua.LState, v CombatantView, withMoves bool) *lua.LTable {
	tbl := L.NewTable()
	tbl.RawSetString("name", lua.LString(v.Name))
	tbl.RawSetString("hp", lua.LNumber(v.HP))
	tbl.RawSetString("max_hp", lua.LNumber(v.MaxHP))
	tbl.RawSetString("status", lua.LString(v.Status.String()))
	tbl.RawSetString("primary_type", lua.LString(v.PrimaryType.String()))
	tbl.RawSetString("secondary_type", lua.LString(v.SecondaryType.String()))
	if withMoves {
		moves := L.NewTable()
		for _, mv := range v.Moves {
			entry := L.NewTable()
			entry.RawSetString("id", lua.LString(mv.ID))
			entry.RawSetString("name", lua.LString(mv.Name))
			entry.RawSetString("type", lua.LString(mv.Type.String()))
			entry.RawSetString("power", lua.LNumber(mv.Power))
			entry.RawSetString("accuracy", lua.LNumber(mv.Accuracy))
			entry.RawSetString("pp", lua.LNumber(mv.PP))
			entry.RawSetString("usable", lua.LBool(mv.Usable))
			moves.Append(entry)
		}
		tbl.RawSetString("moves", moves)
	}
	return tbl
}
