package battle

import (
	"github.com/cory-johannsen/arena/internal/game/condition"
	"github.com/cory-johannsen/arena/internal/game/content"
	"github.com/cory-johannsen/arena/internal/game/monster"
)

// Hooks is the capability surface abilities plug into the engine through.
// The engine calls every hook at its fixed point in the pipeline; an
// implementation that does not care about a hook returns its input
// unchanged. Implementations must not retain the State pointer beyond the
// call.
type Hooks interface {
	// ModifyAccuracy adjusts the final hit chance in [0, 100] after stage
	// ratios have been applied.
	ModifyAccuracy(st *State, user, target *monster.Combatant, mv content.Move, accuracy float64) float64

	// ModifySpeed adjusts the effective speed used for action ordering.
	ModifySpeed(st *State, c *monster.Combatant, speed int) int

	// ModifyCritStage adjusts the attacker's critical-hit stage.
	ModifyCritStage(st *State, user *monster.Combatant, stage int) int

	// ModifySTAB adjusts the same-type attack bonus multiplier.
	ModifySTAB(st *State, user *monster.Combatant, mv content.Move, stab float64) float64

	// ModifyOutgoingDamage adjusts damage the user is about to deal.
	ModifyOutgoingDamage(st *State, user, target *monster.Combatant, mv content.Move, dmg int) int

	// ModifyIncomingDamage adjusts damage the target is about to take.
	ModifyIncomingDamage(st *State, user, target *monster.Combatant, mv content.Move, dmg int) int

	// ModifyStatChange adjusts a stage delta about to land on target.
	// hostile reports whether another combatant inflicted it. Returning 0
	// suppresses the change entirely.
	ModifyStatChange(st *State, target *monster.Combatant, stat content.Stat, stages int, hostile bool) int

	// BlocksStatus reports whether the target's ability prevents the status.
	BlocksStatus(st *State, target *monster.Combatant, status condition.Status) bool

	// BlocksMove reports whether the target's ability grants full immunity
	// to the move, such as an absorbing ability.
	BlocksMove(st *State, user, target *monster.Combatant, mv content.Move) bool

	// SurvivesKO reports whether the target's ability keeps it at 1 HP when
	// a hit from full HP would faint it.
	SurvivesKO(st *State, target *monster.Combatant, dmg int) bool

	// IgnoresDefenderAbility reports whether the user bypasses the
	// defender's damage-and-immunity abilities.
	IgnoresDefenderAbility(st *State, user *monster.Combatant) bool

	// OnContact fires after a contact move lands, with the defender as c.
	OnContact(st *State, attacker, defender *monster.Combatant, log EventSink)

	// OnCritReceived fires after the defender takes a critical hit.
	OnCritReceived(st *State, defender *monster.Combatant, log EventSink)

	// OnKO fires when the attacker knocks out the defender.
	OnKO(st *State, attacker, defender *monster.Combatant, log EventSink)

	// OnSwitchIn fires when a combatant enters the field, after hazards.
	OnSwitchIn(st *State, side SideID, c *monster.Combatant, log EventSink)

	// OnSwitchOut fires when a combatant leaves the field voluntarily.
	OnSwitchOut(st *State, side SideID, c *monster.Combatant, log EventSink)

	// OnTurnStart fires for each active combatant before actions resolve.
	OnTurnStart(st *State, side SideID, c *monster.Combatant, log EventSink)

	// OnTurnEnd fires for each active combatant during the end-of-turn
	// phase, before residual condition ticks.
	OnTurnEnd(st *State, side SideID, c *monster.Combatant, log EventSink)
}

// EventSink lets hook implementations append to the battle log without
// access to the log's internals.
type EventSink interface {
	Add(kind EventKind, narrative string)
}

func (l *eventLog) Add(kind EventKind, narrative string) {
	l.add(kind, narrative)
}

// discardSink drops hook narration, used for the initial lead switch-ins
// that happen before any turn log exists.
type discardSink struct{}

func (discardSink) Add(EventKind, string) {}

// NopHooks implements Hooks with identity passthroughs. Ability sets embed
// it and override only the hooks they use.
type NopHooks struct{}

func (NopHooks) ModifyAccuracy(_ *State, _, _ *monster.Combatant, _ content.Move, accuracy float64) float64 {
	return accuracy
}

func (NopHooks) ModifySpeed(_ *State, _ *monster.Combatant, speed int) int { return speed }

func (NopHooks) ModifyCritStage(_ *State, _ *monster.Combatant, stage int) int { return stage }

func (NopHooks) ModifySTAB(_ *State, _ *monster.Combatant, _ content.Move, stab float64) float64 {
	return stab
}

func (NopHooks) ModifyOutgoingDamage(_ *State, _, _ *monster.Combatant, _ content.Move, dmg int) int {
	return dmg
}

func (NopHooks) ModifyIncomingDamage(_ *State, _, _ *monster.Combatant, _ content.Move, dmg int) int {
	return dmg
}

func (NopHooks) ModifyStatChange(_ *State, _ *monster.Combatant, _ content.Stat, stages int, _ bool) int {
	return stages
}

func (NopHooks) BlocksStatus(_ *State, _ *monster.Combatant, _ condition.Status) bool { return false }

func (NopHooks) BlocksMove(_ *State, _, _ *monster.Combatant, _ content.Move) bool { return false }

func (NopHooks) SurvivesKO(_ *State, _ *monster.Combatant, _ int) bool { return false }

func (NopHooks) IgnoresDefenderAbility(_ *State, _ *monster.Combatant) bool { return false }

func (NopHooks) OnContact(_ *State, _, _ *monster.Combatant, _ EventSink) {}

func (NopHooks) OnCritReceived(_ *State, _ *monster.Combatant, _ EventSink) {}

func (NopHooks) OnKO(_ *State, _, _ *monster.Combatant, _ EventSink) {}

func (NopHooks) OnSwitchIn(_ *State, _ SideID, _ *monster.Combatant, _ EventSink) {}

func (NopHooks) OnSwitchOut(_ *State, _ SideID, _ *monster.Combatant, _ EventSink) {}

func (NopHooks) OnTurnStart(_ *State, _ SideID, _ *monster.Combatant, _ EventSink) {}

func (NopHooks) OnTurnEnd(_ *State, _ SideID, _ *monster.Combatant, _ EventSink) {}
