package ai

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/battle"
	"github.com/cory-johannsen/arena/internal/game/condition"
	"github.com/cory-johannsen/arena/internal/game/content"
	"github.com/cory-johannsen/arena/internal/game/rng"
)

// ScriptCaller is the interface required by the Planner to evaluate Lua
// override hooks. The build callback constructs the hook arguments inside
// the owning VM.
type ScriptCaller interface {
	// CallHook calls a named Lua function in the given pack's VM.
	// Returns (LNil, nil) if the function is not defined.
	CallHook(pack, hook string, build func(L *lua.LState) []lua.LValue) (lua.LValue, error)
}

// scoreEpsilon is the margin within which two move scores count as tied.
const scoreEpsilon = 1e-9

// Planner picks one action per turn for a CPU-controlled side.
//
// Invariant: profile, roller, and logger are never nil; caller may be nil,
// in which case the heuristic always decides.
type Planner struct {
	profile *Profile
	caller  ScriptCaller
	pack    string
	roller  *rng.Roller
	logger  *zap.Logger
}

// NewPlanner constructs a Planner.
//
// Precondition: profile, roller, and logger must not be nil.
func NewPlanner(profile *Profile, roller *rng.Roller, logger *zap.Logger) *Planner {
	if profile == nil {
		panic("ai.NewPlanner: profile must not be nil")
	}
	if roller == nil {
		panic("ai.NewPlanner: roller must not be nil")
	}
	if logger == nil {
		panic("ai.NewPlanner: logger must not be nil")
	}
	return &Planner{profile: profile, roller: roller, logger: logger}
}

// WithScripts attaches a script caller so the profile's Hook can override
// the heuristic. Returns the planner for chaining.
func (p *Planner) WithScripts(caller ScriptCaller, pack string) *Planner {
	p.caller = caller
	p.pack = pack
	return p
}

// Decide returns side's action for the current turn.
//
// Precondition: st must not be nil and the battle must not be finished.
// Postcondition: the returned action passes the engine's validation, except
// when the side has no usable move and no legal switch, in which case a
// forfeit is returned.
func (p *Planner) Decide(st *battle.State, side battle.SideID) battle.Action {
	snap := BuildSnapshot(st, side)

	if id, ok := p.scriptedChoice(snap); ok {
		p.logger.Debug("scripted move choice",
			zap.String("profile", p.profile.ID),
			zap.String("move", id),
		)
		return battle.Action{Side: side, Kind: battle.ActionMove, MoveID: id}
	}

	if p.shouldSwitch(snap) {
		if idx, ok := p.bestBench(st, side, snap); ok {
			return battle.Action{Side: side, Kind: battle.ActionSwitch, SwitchTo: idx}
		}
	}

	if id, ok := p.bestMove(snap); ok {
		return battle.Action{Side: side, Kind: battle.ActionMove, MoveID: id}
	}

	// Nothing usable and nowhere to go.
	if idx, ok := p.bestBench(st, side, snap); ok && snap.CanSwitch {
		return battle.Action{Side: side, Kind: battle.ActionSwitch, SwitchTo: idx}
	}
	p.logger.Warn("no legal action, forfeiting",
		zap.String("profile", p.profile.ID),
		zap.Stringer("side", side),
	)
	return battle.Action{Side: side, Kind: battle.ActionForfeit}
}

// ChooseReplacement picks the bench index to send in after a faint.
//
// Precondition: st.AwaitingReplacement(side).
func (p *Planner) ChooseReplacement(st *battle.State, side battle.SideID) (int, bool) {
	snap := BuildSnapshot(st, side)
	return p.bestBench(st, side, snap)
}

// scriptedChoice asks the profile's Lua hook for a move ID and accepts it
// only when the snapshot lists it as usable.
func (p *Planner) scriptedChoice(snap *Snapshot) (string, bool) {
	if p.caller == nil || p.profile.Hook == "" {
		return "", false
	}
	val, err := p.caller.CallHook(p.pack, p.profile.Hook, func(L *lua.LState) []lua.LValue {
		return []lua.LValue{snap.ToLua(L)}
	})
	if err != nil || val == lua.LNil {
		return "", false
	}
	id, ok := val.(lua.LString)
	if !ok {
		return "", false
	}
	for _, mv := range snap.Self.Moves {
		if mv.ID == string(id) && mv.Usable {
			return mv.ID, true
		}
	}
	p.logger.Warn("script hook returned an unusable move",
		zap.String("hook", p.profile.Hook),
		zap.String("move", string(id)),
	)
	return "", false
}

// shouldSwitch reports whether the active combatant is hurt enough that the
// profile prefers a switch over attacking.
func (p *Planner) shouldSwitch(snap *Snapshot) bool {
	return p.profile.SwitchThreshold > 0 &&
		snap.CanSwitch &&
		snap.Self.HPPercent() < p.profile.SwitchThreshold
}

// bestBench returns the healthy bench index with the highest HP percentage.
func (p *Planner) bestBench(st *battle.State, side battle.SideID, snap *Snapshot) (int, bool) {
	roster := st.Sides[side].Roster
	best, bestPct := -1, -1.0
	for _, idx := range snap.Bench {
		c := roster[idx]
		pct := float64(c.CurrentHP) / float64(c.MaxHP)
		if pct > bestPct {
			best, bestPct = idx, pct
		}
	}
	return best, best >= 0
}

// bestMove scores every usable move and picks the highest, breaking ties
// with a random draw.
func (p *Planner) bestMove(snap *Snapshot) (string, bool) {
	var (
		tied []string
		best = -1.0
	)
	for _, mv := range snap.Self.Moves {
		if !mv.Usable {
			continue
		}
		score := p.scoreMove(snap, mv)
		p.logger.Debug("scored move",
			zap.String("move", mv.ID),
			zap.Float64("score", score),
		)
		switch {
		case score > best+scoreEpsilon:
			best = score
			tied = tied[:0]
			tied = append(tied, mv.ID)
		case score > best-scoreEpsilon:
			tied = append(tied, mv.ID)
		}
	}
	if len(tied) == 0 {
		return "", false
	}
	if len(tied) == 1 {
		return tied[0], true
	}
	return tied[p.roller.Intn(len(tied))], true
}

// scoreMove rates one move against the current matchup. Damaging moves score
// on power, effectiveness, same-type bonus, and accuracy, each blended by
// the profile's weight. Status moves score a flat value that collapses when
// the foe is already statused.
func (p *Planner) scoreMove(snap *Snapshot, mv MoveView) float64 {
	w := p.profile.Weights

	if mv.Category == content.CategoryStatus {
		if snap.Foe.Status != condition.StatusNone {
			return w.Status * 0.25
		}
		return w.Status
	}

	eff := content.Effectiveness(mv.Type, snap.Foe.PrimaryType, snap.Foe.SecondaryType)
	if eff == 0 {
		return 0
	}
	stab := 1.0
	if mv.Type != content.TypeNone && (mv.Type == snap.Self.PrimaryType || mv.Type == snap.Self.SecondaryType) {
		stab = 1.5
	}
	acc := 1.0
	if mv.Accuracy > 0 {
		acc = float64(mv.Accuracy) / 100
	}

	score := float64(mv.Power) * w.Power
	score *= 1 + (eff-1)*w.Effectiveness
	score *= 1 + (stab-1)*w.Stab
	score *= 1 - (1-acc)*w.Accuracy
	return score
}
