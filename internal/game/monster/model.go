// Package monster defines the battle-side combatant model: computed stats,
// stage modifiers, HP accounting, move slots, and the transient state that
// rides on a combatant during a battle.
package monster

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/cory-johannsen/arena/internal/game/condition"
	"github.com/cory-johannsen/arena/internal/game/content"
)

// MoveSlot is one of a combatant's known moves with its remaining PP.
type MoveSlot struct {
	Move content.Move
	PP   int
}

// transformState snapshots the fields Transform overwrites so Revert can
// restore them when the combatant leaves the field.
type transformState struct {
	primaryType   content.Type
	secondaryType content.Type
	stats         Stats
	moves         []MoveSlot
}

// Combatant is one monster participating in a battle.
//
// A Combatant is not safe for concurrent use; the engine serialises access
// per battle.
type Combatant struct {
	UID      uuid.UUID
	Nickname string
	Species  content.Species
	Level    int
	Ability  string

	MaxHP     int
	CurrentHP int
	stats     Stats

	primaryType   content.Type
	secondaryType content.Type

	Stages     [content.NumStats]int
	Conditions *condition.Set
	Moves      []MoveSlot

	SubstituteHP int

	LastMoveID      string
	ConsecutiveUses int
	ProtectStreak   int

	transformed *transformState
}

// Stats holds the five computed non-HP stats.
type Stats struct {
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int
}

// Name returns the nickname if set, otherwise the species name.
func (c *Combatant) Name() string {
	if c.Nickname != "" {
		return c.Nickname
	}
	return c.Species.Name
}

// Fainted reports whether the combatant has no HP left.
func (c *Combatant) Fainted() bool {
	return c.CurrentHP <= 0
}

// Types returns the combatant's current types, reflecting any Transform.
func (c *Combatant) Types() (content.Type, content.Type) {
	return c.primaryType, c.secondaryType
}

// HasType reports whether t is one of the combatant's current types.
func (c *Combatant) HasType(t content.Type) bool {
	return t != content.TypeNone && (c.primaryType == t || c.secondaryType == t)
}

// ApplyDamage subtracts dmg from CurrentHP, clamping at zero, and returns
// the amount actually dealt. Fainting clears the major status and all
// volatiles.
//
// Precondition: dmg >= 0.
func (c *Combatant) ApplyDamage(dmg int) int {
	if dmg > c.CurrentHP {
		dmg = c.CurrentHP
	}
	c.CurrentHP -= dmg
	if c.CurrentHP == 0 {
		c.Conditions.CureStatus()
		c.Conditions.ResetVolatiles()
		c.SubstituteHP = 0
	}
	return dmg
}

// Heal restores up to amount HP, clamping at MaxHP, and returns the amount
// actually restored. Heal Block suppresses all healing.
//
// Precondition: amount >= 0.
func (c *Combatant) Heal(amount int) int {
	if c.Fainted() || c.Conditions.HasVolatile(condition.VolatileHealBlock) {
		return 0
	}
	missing := c.MaxHP - c.CurrentHP
	if amount > missing {
		amount = missing
	}
	c.CurrentHP += amount
	return amount
}

// ModifyStage adjusts one stat stage by delta, clamping to [-6, 6], and
// returns the stages actually applied.
func (c *Combatant) ModifyStage(stat content.Stat, delta int) int {
	before := c.Stages[stat]
	after := before + delta
	if after > 6 {
		after = 6
	}
	if after < -6 {
		after = -6
	}
	c.Stages[stat] = after
	return after - before
}

// ResetStages clears all stat stages to zero.
func (c *Combatant) ResetStages() {
	c.Stages = [content.NumStats]int{}
}

// MoveSlotByID returns the slot holding the move with the given ID.
func (c *Combatant) MoveSlotByID(id string) (*MoveSlot, bool) {
	for i := range c.Moves {
		if c.Moves[i].Move.ID == id {
			return &c.Moves[i], true
		}
	}
	return nil, false
}

// CanUseMove reports whether the combatant may select the move with the
// given ID, considering PP, Taunt, Disable, Encore, and Torment.
//
// Postcondition: A nil error means the move is selectable this turn.
func (c *Combatant) CanUseMove(id string) error {
	slot, ok := c.MoveSlotByID(id)
	if !ok {
		return fmt.Errorf("monster: %s does not know move %q", c.Name(), id)
	}
	if slot.PP <= 0 {
		return fmt.Errorf("monster: %s has no PP left for %s", c.Name(), slot.Move.Name)
	}
	if c.Conditions.HasVolatile(condition.VolatileTaunt) && slot.Move.Category == content.CategoryStatus {
		return fmt.Errorf("monster: %s is taunted and cannot use %s", c.Name(), slot.Move.Name)
	}
	if c.Conditions.HasVolatile(condition.VolatileDisable) && id == c.LastMoveID {
		return fmt.Errorf("monster: %s's %s is disabled", c.Name(), slot.Move.Name)
	}
	if c.Conditions.HasVolatile(condition.VolatileEncore) && c.LastMoveID != "" && id != c.LastMoveID {
		return fmt.Errorf("monster: %s is locked into %s by encore", c.Name(), c.LastMoveID)
	}
	if c.Conditions.HasVolatile(condition.VolatileTorment) && id != "" && id == c.LastMoveID {
		return fmt.Errorf("monster: %s is tormented and cannot repeat %s", c.Name(), slot.Move.Name)
	}
	return nil
}

// RecordMoveUse updates PP and the consecutive-use bookkeeping after the
// combatant commits to a move.
func (c *Combatant) RecordMoveUse(id string) {
	if slot, ok := c.MoveSlotByID(id); ok && slot.PP > 0 {
		slot.PP--
	}
	if id == c.LastMoveID {
		c.ConsecutiveUses++
	} else {
		c.ConsecutiveUses = 1
	}
	c.LastMoveID = id
}

// SetSubstitute raises a substitute with the given HP.
func (c *Combatant) SetSubstitute(hp int) {
	c.SubstituteHP = hp
	c.Conditions.ApplyVolatile(condition.VolatileSubstitute, condition.Indefinite)
}

// HasSubstitute reports whether a substitute is up.
func (c *Combatant) HasSubstitute() bool {
	return c.SubstituteHP > 0
}

// DamageSubstitute routes dmg into the substitute, returning the amount it
// absorbed and whether it broke.
//
// Precondition: HasSubstitute().
func (c *Combatant) DamageSubstitute(dmg int) (absorbed int, broke bool) {
	if dmg >= c.SubstituteHP {
		absorbed = c.SubstituteHP
		c.SubstituteHP = 0
		c.Conditions.ClearVolatile(condition.VolatileSubstitute)
		return absorbed, true
	}
	c.SubstituteHP -= dmg
	return dmg, false
}

// Transform copies the target's types, non-HP stats, stat stages, and moves
// (each with 5 PP). HP and level are kept. Transforming twice is a no-op.
func (c *Combatant) Transform(target *Combatant) {
	if c.transformed != nil {
		return
	}
	c.transformed = &transformState{
		primaryType:   c.primaryType,
		secondaryType: c.secondaryType,
		stats:         c.stats,
		moves:         c.Moves,
	}
	c.primaryType, c.secondaryType = target.Types()
	c.stats = target.stats
	c.Stages = target.Stages
	copied := make([]MoveSlot, len(target.Moves))
	for i, slot := range target.Moves {
		copied[i] = MoveSlot{Move: slot.Move, PP: 5}
	}
	c.Moves = copied
}

// RevertTransform restores the pre-Transform state. No-op when not
// transformed.
func (c *Combatant) RevertTransform() {
	if c.transformed == nil {
		return
	}
	c.primaryType = c.transformed.primaryType
	c.secondaryType = c.transformed.secondaryType
	c.stats = c.transformed.stats
	c.Moves = c.transformed.moves
	c.transformed = nil
}

// LeaveField runs the bookkeeping for switching out: volatiles clear, stages
// reset, Transform reverts, and the substitute disappears.
func (c *Combatant) LeaveField() {
	c.Conditions.ResetVolatiles()
	c.ResetStages()
	c.RevertTransform()
	c.SubstituteHP = 0
	c.LastMoveID = ""
	c.ConsecutiveUses = 0
	c.ProtectStreak = 0
}
