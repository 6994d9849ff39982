package battle

import (
	"fmt"
	"sort"
)

// ActionKind is the tag of the Action variant.
type ActionKind int

const (
	ActionMove ActionKind = iota
	ActionSwitch
	ActionForfeit
)

// Action is one side's declared intent for the turn. Exactly the fields of
// the tagged variant are meaningful: MoveID for ActionMove, SwitchTo for
// ActionSwitch, neither for ActionForfeit.
type Action struct {
	Side     SideID
	Kind     ActionKind
	MoveID   string
	SwitchTo int
}

// switchPriority is the priority bracket switches resolve in; it outranks
// every move priority.
const switchPriority = 8

// validate checks an action against the current state.
//
// Postcondition: A nil error means the action can enter the turn queue.
func (s *State) validate(a Action) error {
	if a.Side != SideA && a.Side != SideB {
		return fmt.Errorf("%w: unknown side %d", ErrInvalidTarget, a.Side)
	}
	actor := s.active(a.Side)
	switch a.Kind {
	case ActionForfeit:
		return nil
	case ActionSwitch:
		if actor.Fainted() {
			return ErrFaintedActor
		}
		sd := s.side(a.Side)
		if a.SwitchTo < 0 || a.SwitchTo >= len(sd.Roster) || a.SwitchTo == sd.Active {
			return fmt.Errorf("%w: switch slot %d", ErrInvalidTarget, a.SwitchTo)
		}
		if sd.Roster[a.SwitchTo].Fainted() {
			return fmt.Errorf("%w: %s has fainted", ErrInvalidTarget, sd.Roster[a.SwitchTo].Name())
		}
		return nil
	case ActionMove:
		if actor.Fainted() {
			return ErrFaintedActor
		}
		// Usability (PP, taunt, disable, encore, torment) is checked at
		// execution time, not here: a move that becomes unusable mid-turn
		// fails in the log instead of aborting the turn.
		if _, ok := actor.MoveSlotByID(a.MoveID); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownMove, a.MoveID)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown action kind %d", ErrInvalidTarget, a.Kind)
	}
}

// ordered is an action annotated with the ordering keys computed at the
// start of the turn. Keys are frozen before any action resolves, so a speed
// change mid-turn never reorders the queue.
type ordered struct {
	action   Action
	priority int
	speed    int
	tieBreak int
}

// orderActions computes ordering keys for the submitted actions and sorts
// them: higher priority first, then higher effective speed (inverted under
// Trick Room), then a per-action random tie-break drawn in submission order.
func (s *State) orderActions(actions []Action) []ordered {
	out := make([]ordered, len(actions))
	for i, a := range actions {
		o := ordered{action: a}
		switch a.Kind {
		case ActionSwitch, ActionForfeit:
			o.priority = switchPriority
		case ActionMove:
			actor := s.active(a.Side)
			if slot, ok := actor.MoveSlotByID(a.MoveID); ok {
				o.priority = slot.Move.Priority
			}
		}
		o.speed = s.effectiveSpeed(a.Side)
		// One draw per action, in submission order, keeps replays stable.
		o.tieBreak = s.roller.Intn(1 << 30)
		out[i] = o
	}
	trickRoom := s.TrickRoomTurns > 0
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].priority != out[j].priority {
			return out[i].priority > out[j].priority
		}
		if out[i].speed != out[j].speed {
			if trickRoom {
				return out[i].speed < out[j].speed
			}
			return out[i].speed > out[j].speed
		}
		return out[i].tieBreak > out[j].tieBreak
	})
	return out
}

// effectiveSpeed returns the ordering speed for side's active combatant:
// the stat after stages and paralysis, doubled under Tailwind, then passed
// through the speed hook.
func (s *State) effectiveSpeed(side SideID) int {
	actor := s.active(side)
	speed := actor.EffectiveStat(speedStat)
	if s.side(side).TailwindTurns > 0 {
		speed *= 2
	}
	return s.hooks.ModifySpeed(s, actor, speed)
}
