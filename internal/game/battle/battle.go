// Package battle implements the turn-resolution engine: action ordering,
// the damage pipeline, the data-driven effect dispatcher, and the fixed
// turn phase sequence. A State is single-threaded; callers serialise access
// per battle.
package battle

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/condition"
	"github.com/cory-johannsen/arena/internal/game/content"
	"github.com/cory-johannsen/arena/internal/game/monster"
	"github.com/cory-johannsen/arena/internal/game/rng"
)

// Sentinel errors returned by action validation and turn execution.
var (
	ErrUnknownMove         = errors.New("battle: actor does not know that move")
	ErrFaintedActor        = errors.New("battle: acting combatant has fainted")
	ErrInvalidTarget       = errors.New("battle: invalid target")
	ErrBattleFinished      = errors.New("battle: battle is already decided")
	ErrReplacementRequired = errors.New("battle: a fainted active must be replaced first")
	ErrNoReplacement       = errors.New("battle: no replacement is required")
)

// SideID identifies one of the two sides.
type SideID int

const (
	SideA SideID = iota
	SideB
)

// Opponent returns the other side.
func (s SideID) Opponent() SideID {
	if s == SideA {
		return SideB
	}
	return SideA
}

// String returns the side's display label.
func (s SideID) String() string {
	if s == SideA {
		return "side A"
	}
	return "side B"
}

// Side holds one side's roster, the index of its active combatant, and the
// side-scoped field conditions.
type Side struct {
	ID     SideID
	Roster []*monster.Combatant
	Active int

	SpikesLayers      int
	ToxicSpikesLayers int
	StealthRock       bool
	StickyWeb         bool

	ReflectTurns     int
	LightScreenTurns int
	AuroraVeilTurns  int
	TailwindTurns    int
	SafeguardTurns   int
	MistTurns        int
}

// ActiveCombatant returns the side's active combatant.
func (s *Side) ActiveCombatant() *monster.Combatant {
	return s.Roster[s.Active]
}

// Defeated reports whether every roster member has fainted.
func (s *Side) Defeated() bool {
	for _, c := range s.Roster {
		if !c.Fainted() {
			return false
		}
	}
	return true
}

// HasBench reports whether a healthy non-active roster member exists.
func (s *Side) HasBench() bool {
	for i, c := range s.Roster {
		if i != s.Active && !c.Fainted() {
			return true
		}
	}
	return false
}

// State is the full mutable state of one battle.
type State struct {
	Sides [2]*Side
	Turn  int

	Weather      content.WeatherKind
	WeatherTurns int

	TrickRoomTurns int
	GravityTurns   int

	roller *rng.Roller
	logger *zap.Logger
	hooks  Hooks

	finished bool
	winner   SideID
	drawn    bool

	awaitingReplacement [2]bool
	movedThisTurn       [2]bool
	faintLogged         map[uuid.UUID]bool
	faintedThisTurn     []string
}

// Config carries the inputs to New.
type Config struct {
	RosterA []*monster.Combatant
	RosterB []*monster.Combatant
	Roller  *rng.Roller
	Logger  *zap.Logger
	Hooks   Hooks
}

// New creates a battle in its initial state and runs switch-in hooks for
// both leads.
//
// Precondition: both rosters are non-empty and every member is at positive
// HP; Roller is non-nil.
// Postcondition: Returns a State ready for ExecuteTurn, or a non-nil error.
func New(cfg Config) (*State, error) {
	if len(cfg.RosterA) == 0 || len(cfg.RosterB) == 0 {
		return nil, errors.New("battle: both sides need at least one combatant")
	}
	for _, c := range append(append([]*monster.Combatant{}, cfg.RosterA...), cfg.RosterB...) {
		if c.Fainted() {
			return nil, fmt.Errorf("battle: %s entered the battle fainted", c.Name())
		}
	}
	if cfg.Roller == nil {
		return nil, errors.New("battle: roller must not be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	hooks := cfg.Hooks
	if hooks == nil {
		hooks = NopHooks{}
	}
	st := &State{
		Sides: [2]*Side{
			{ID: SideA, Roster: cfg.RosterA},
			{ID: SideB, Roster: cfg.RosterB},
		},
		roller: cfg.Roller,
		logger: logger,
		hooks:  hooks,
	}
	st.hooks.OnSwitchIn(st, SideA, st.Sides[SideA].ActiveCombatant(), discardSink{})
	st.hooks.OnSwitchIn(st, SideB, st.Sides[SideB].ActiveCombatant(), discardSink{})
	return st, nil
}

// Finished reports whether the battle has been decided.
func (s *State) Finished() bool {
	return s.finished
}

// Winner returns the winning side.
//
// Precondition: Finished() && !Drawn().
func (s *State) Winner() SideID {
	return s.winner
}

// Drawn reports whether the battle ended with both sides wiped out.
func (s *State) Drawn() bool {
	return s.drawn
}

// AwaitingReplacement reports whether side must replace a fainted active
// before the next turn.
func (s *State) AwaitingReplacement(side SideID) bool {
	return s.awaitingReplacement[side]
}

// Roller exposes the battle's randomness for hook implementations.
func (s *State) Roller() *rng.Roller {
	return s.roller
}

// side returns the Side for id.
func (s *State) side(id SideID) *Side {
	return s.Sides[id]
}

// active returns side id's active combatant.
func (s *State) active(id SideID) *monster.Combatant {
	return s.Sides[id].ActiveCombatant()
}

// decide marks the battle finished with the given winner.
func (s *State) decide(winner SideID) {
	s.finished = true
	s.winner = winner
}

// SubmitReplacement switches a fainted active for the roster member at idx.
//
// Precondition: AwaitingReplacement(side).
// Postcondition: On success the side's active is the healthy member at idx
// and switch-in effects have run.
func (s *State) SubmitReplacement(side SideID, idx int) ([]Event, error) {
	if s.finished {
		return nil, ErrBattleFinished
	}
	if !s.awaitingReplacement[side] {
		return nil, ErrNoReplacement
	}
	sd := s.side(side)
	if idx < 0 || idx >= len(sd.Roster) || idx == sd.Active {
		return nil, ErrInvalidTarget
	}
	if sd.Roster[idx].Fainted() {
		return nil, fmt.Errorf("%w: %s has fainted", ErrInvalidTarget, sd.Roster[idx].Name())
	}
	var log eventLog
	s.bringIn(&log, side, idx)
	s.awaitingReplacement[side] = false
	s.checkForWinner(&log)
	return log.events, nil
}

// checkForWinner ends the battle when a side has no combatants left. A side
// whose opponent is wiped wins; a simultaneous wipe is a draw.
func (s *State) checkForWinner(log *eventLog) {
	if s.finished {
		return
	}
	aDown := s.side(SideA).Defeated()
	bDown := s.side(SideB).Defeated()
	switch {
	case aDown && bDown:
		s.finished = true
		s.drawn = true
		log.add(EventBattleEnd, "Both sides are out of combatants. The battle ended in a draw.")
	case aDown:
		s.decide(SideB)
		log.addf(EventBattleEnd, "%s is out of combatants. %s wins.", SideA, SideB)
	case bDown:
		s.decide(SideA)
		log.addf(EventBattleEnd, "%s is out of combatants. %s wins.", SideB, SideA)
	}
}

// statusDisplay maps a major status to its narration verb.
func statusDisplay(st condition.Status) string {
	switch st {
	case condition.StatusBurn:
		return "was burned"
	case condition.StatusParalysis:
		return "was paralyzed"
	case condition.StatusPoison:
		return "was poisoned"
	case condition.StatusBadlyPoison:
		return "was badly poisoned"
	case condition.StatusSleep:
		return "fell asleep"
	case condition.StatusFreeze:
		return "was frozen solid"
	default:
		return "was afflicted"
	}
}
