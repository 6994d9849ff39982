package battle

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/condition"
	"github.com/cory-johannsen/arena/internal/game/content"
	"github.com/cory-johannsen/arena/internal/game/monster"
)

const (
	thawChance          = 20
	fullParalysisChance = 25
	confusionHitChance  = 33
	confusionHitPower   = 40
)

// ExecuteTurn resolves one full turn from the two submitted actions and
// returns the ordered battle log. The phase sequence is fixed: validation,
// turn start, the weather tick, ordered action resolution, end-of-turn
// residuals, faint replacement flagging, and the win check.
//
// Precondition: exactly one action per side; no replacement pending.
// Postcondition: On success the state reflects every event in the result,
// in order. On error the state is unchanged.
func (s *State) ExecuteTurn(actions []Action) (*TurnResult, error) {
	if s.finished {
		return nil, ErrBattleFinished
	}
	if s.awaitingReplacement[SideA] || s.awaitingReplacement[SideB] {
		return nil, ErrReplacementRequired
	}
	if len(actions) != 2 || actions[0].Side == actions[1].Side {
		return nil, fmt.Errorf("%w: exactly one action per side is required", ErrInvalidTarget)
	}
	for _, a := range actions {
		if err := s.validate(a); err != nil {
			return nil, err
		}
	}

	s.Turn++
	s.movedThisTurn = [2]bool{}
	s.faintedThisTurn = nil
	var log eventLog
	log.addf(EventTurnStart, "Turn %d begins.", s.Turn)
	s.logger.Debug("turn start")

	// Weather chips and counts down before anyone acts; a combatant it
	// knocks out loses its queued action.
	s.tickWeather(&log, s.speedOrderedSides())
	s.checkForWinner(&log)

	if !s.finished {
		for _, side := range [2]SideID{SideA, SideB} {
			actor := s.active(side)
			if actor.Fainted() {
				continue
			}
			// Protection from last turn has lapsed.
			actor.Conditions.ClearVolatile(condition.VolatileProtect)
			s.hooks.OnTurnStart(s, side, actor, &log)
		}

		for _, o := range s.orderActions(actions) {
			if s.finished {
				break
			}
			s.resolveAction(&log, o.action)
		}
	}

	if !s.finished {
		s.endOfTurn(&log)
	}
	s.flagReplacements()

	return &TurnResult{
		Turn:                s.Turn,
		Events:              log.events,
		Fainted:             s.faintedThisTurn,
		Finished:            s.finished,
		Winner:              s.winner,
		Draw:                s.drawn,
		AwaitingReplacement: s.awaitingReplacement,
	}, nil
}

// resolveAction dispatches one ordered action.
func (s *State) resolveAction(log *eventLog, a Action) {
	actor := s.active(a.Side)
	if actor.Fainted() {
		return
	}
	switch a.Kind {
	case ActionForfeit:
		log.addf(EventForfeit, "%s forfeited the battle.", a.Side)
		s.decide(a.Side.Opponent())
		log.addf(EventBattleEnd, "%s wins.", a.Side.Opponent())
	case ActionSwitch:
		if s.escapePrevented(actor) {
			log.addf(EventMoveFailed, "%s can't escape!", actor.Name())
			return
		}
		log.addf(EventSwitch, "%s was withdrawn.", actor.Name())
		s.switchOut(log, a.Side, a.SwitchTo, true)
	case ActionMove:
		s.executeMove(log, a.Side, a.MoveID)
	}
}

// escapePrevented reports whether trapping blocks a voluntary switch.
// Ghost types slip any trap.
func (s *State) escapePrevented(actor *monster.Combatant) bool {
	if actor.HasType(content.TypeGhost) {
		return false
	}
	return actor.Conditions.HasVolatile(condition.VolatilePreventEscape) ||
		actor.Conditions.HasVolatile(condition.VolatileTrap)
}

// switchOut replaces side's active with the roster member at idx. Voluntary
// switches fire the switch-out hook; forced drags do not.
func (s *State) switchOut(log *eventLog, side SideID, idx int, voluntary bool) {
	actor := s.active(side)
	if voluntary {
		s.hooks.OnSwitchOut(s, side, actor, log)
	}
	actor.LeaveField()
	s.bringIn(log, side, idx)
}

// bringIn activates the roster member at idx, applies entry hazards, and
// fires the switch-in hook.
func (s *State) bringIn(log *eventLog, side SideID, idx int) {
	sd := s.side(side)
	sd.Active = idx
	incoming := sd.ActiveCombatant()
	log.addf(EventSwitch, "%s was sent out!", incoming.Name())
	s.applyEntryHazards(log, side, incoming)
	if !incoming.Fainted() {
		s.hooks.OnSwitchIn(s, side, incoming, log)
	}
}

// applyEntryHazards runs the hazards on side against an entering combatant:
// Stealth Rock scaled by rock effectiveness, then grounded hazards (spikes,
// toxic spikes, sticky web), which airborne combatants skip.
func (s *State) applyEntryHazards(log *eventLog, side SideID, c *monster.Combatant) {
	sd := s.side(side)
	if sd.StealthRock {
		t1, t2 := c.Types()
		eff := content.Effectiveness(content.TypeRock, t1, t2)
		dmg := int(float64(c.MaxHP) * eff / 8)
		if dmg < 1 {
			dmg = 1
		}
		dealt := c.ApplyDamage(dmg)
		log.addf(EventDamage, "Pointed stones dug into %s for %d damage!", c.Name(), dealt)
		if s.recordFaint(log, side) {
			return
		}
	}

	grounded := !c.HasType(content.TypeFlying)
	if !grounded {
		return
	}
	if sd.SpikesLayers > 0 {
		dmg := c.MaxHP * sd.SpikesLayers / 8
		if dmg < 1 {
			dmg = 1
		}
		dealt := c.ApplyDamage(dmg)
		log.addf(EventDamage, "%s was hurt by spikes for %d damage!", c.Name(), dealt)
		if s.recordFaint(log, side) {
			return
		}
	}
	if sd.ToxicSpikesLayers > 0 {
		if c.HasType(content.TypePoison) {
			sd.ToxicSpikesLayers = 0
			log.addf(EventField, "%s absorbed the toxic spikes!", c.Name())
		} else if !statusTypeImmune(c, content.StatusPoison) {
			st := condition.StatusPoison
			if sd.ToxicSpikesLayers >= 2 {
				st = condition.StatusBadlyPoison
			}
			if err := c.Conditions.ApplyStatus(st, 0); err == nil {
				log.addf(EventStatus, "%s %s!", c.Name(), statusDisplay(st))
			}
		}
	}
	if sd.StickyWeb {
		if c.ModifyStage(content.StatSpeed, -1) != 0 {
			log.addf(EventStatChange, "%s was caught in a sticky web! Its Speed fell!", c.Name())
		}
	}
}

// canAct runs the pre-move gate chain in its fixed order: recharge, sleep,
// freeze, flinch, confusion, paralysis. It returns false when the actor
// loses its action, having already logged why.
func (s *State) canAct(log *eventLog, side SideID) bool {
	actor := s.active(side)

	if actor.Conditions.HasVolatile(condition.VolatileRecharge) {
		actor.Conditions.ClearVolatile(condition.VolatileRecharge)
		log.addf(EventInfo, "%s must recharge!", actor.Name())
		return false
	}

	if actor.Conditions.Status() == condition.StatusSleep {
		if actor.Conditions.DecrementSleep() {
			log.addf(EventStatus, "%s woke up!", actor.Name())
		} else {
			log.addf(EventInfo, "%s is fast asleep.", actor.Name())
			return false
		}
	}

	if actor.Conditions.Status() == condition.StatusFreeze {
		if s.roller.Percent(thawChance) {
			actor.Conditions.CureStatus()
			log.addf(EventStatus, "%s thawed out!", actor.Name())
		} else {
			log.addf(EventInfo, "%s is frozen solid!", actor.Name())
			return false
		}
	}

	if actor.Conditions.HasVolatile(condition.VolatileFlinch) {
		actor.Conditions.ClearVolatile(condition.VolatileFlinch)
		log.addf(EventInfo, "%s flinched and couldn't move!", actor.Name())
		return false
	}

	if actor.Conditions.HasVolatile(condition.VolatileConfusion) {
		if actor.Conditions.DecrementVolatile(condition.VolatileConfusion) {
			log.addf(EventStatus, "%s snapped out of its confusion!", actor.Name())
		} else {
			log.addf(EventInfo, "%s is confused!", actor.Name())
			if s.roller.Percent(confusionHitChance) {
				dmg := s.confusionSelfHit(actor)
				dealt := actor.ApplyDamage(dmg)
				log.addf(EventDamage, "%s hurt itself in its confusion for %d damage!", actor.Name(), dealt)
				s.recordFaint(log, side)
				return false
			}
		}
	}

	if actor.Conditions.Status() == condition.StatusParalysis && s.roller.Percent(fullParalysisChance) {
		log.addf(EventInfo, "%s is fully paralyzed and can't move!", actor.Name())
		return false
	}

	return true
}

// confusionSelfHit computes the typeless physical self-hit: the standard
// formula at power 40 against the actor's own Defense, with no STAB, type,
// crit, or random spread.
func (s *State) confusionSelfHit(actor *monster.Combatant) int {
	atk := actor.EffectiveStat(content.StatAttack)
	def := actor.EffectiveStat(content.StatDefense)
	dmg := float64((2*actor.Level/5+2)*confusionHitPower) * float64(atk) / float64(def)
	out := int(dmg/50 + 2)
	if out < 1 {
		out = 1
	}
	return out
}

// targetsOpponent reports whether the move interacts with the opposing
// active combatant at all.
func targetsOpponent(mv content.Move) bool {
	if mv.IsDamaging() {
		return true
	}
	for _, eff := range mv.Effects {
		if eff.Target == content.SelectTarget || eff.Target == content.SelectTargetSide {
			return true
		}
	}
	return false
}

// accuracyCheck rolls whether the move lands.
func (s *State) accuracyCheck(userSide SideID, mv content.Move) bool {
	user := s.active(userSide)
	target := s.active(userSide.Opponent())

	if mv.HasOther(content.OtherOHKO) {
		if target.Level > user.Level {
			return false
		}
		return s.roller.Percent(30 + user.Level - target.Level)
	}
	if mv.NeverMisses() {
		return true
	}
	if user.Conditions.HasVolatile(condition.VolatileLockOn) {
		user.Conditions.ClearVolatile(condition.VolatileLockOn)
		return true
	}

	diff := user.Stages[content.StatAccuracy] - target.Stages[content.StatEvasion]
	acc := float64(mv.Accuracy) * monster.AccuracyStageRatio(diff)
	acc = s.hooks.ModifyAccuracy(s, user, target, mv, acc)
	if acc > 100 {
		acc = 100
	}
	if acc < 0 {
		acc = 0
	}
	return s.roller.Percent(int(acc))
}

// multiHitCount rolls the number of hits for multi-hit moves: 2-5 at
// 35/35/15/15, or the fixed counts.
func (s *State) multiHitCount(mv content.Move) int {
	switch {
	case mv.HasOther(content.OtherMultiHit2):
		return 2
	case mv.HasOther(content.OtherMultiHit3):
		return 3
	case mv.HasOther(content.OtherMultiHit2to5):
		roll := s.roller.Intn(100)
		switch {
		case roll < 35:
			return 2
		case roll < 70:
			return 3
		case roll < 85:
			return 4
		default:
			return 5
		}
	}
	return 1
}

// executeMove runs one move action end to end: gates, declaration, target
// checks, accuracy, the damage loop, effect dispatch, and reaction hooks.
func (s *State) executeMove(log *eventLog, side SideID, moveID string) {
	actor := s.active(side)
	defenderSide := side.Opponent()
	defender := s.active(defenderSide)

	targetMoved := s.movedThisTurn[defenderSide]
	s.movedThisTurn[side] = true

	if !s.canAct(log, side) {
		return
	}

	slot, ok := actor.MoveSlotByID(moveID)
	if !ok {
		// Transform mid-turn can drop the chosen move.
		log.addf(EventMoveFailed, "%s no longer knows that move!", actor.Name())
		return
	}
	mv := slot.Move

	// The usability gate runs here, not at submission: exhausted PP or a
	// taunt landed earlier this turn costs the action instead of the turn.
	if err := actor.CanUseMove(mv.ID); err != nil {
		s.logger.Debug("move unusable", zap.Error(err))
		log.addf(EventMoveFailed, "%s tried to use %s, but it failed!", actor.Name(), mv.Name)
		return
	}

	actor.RecordMoveUse(mv.ID)
	if !mv.HasOther(content.OtherProtect) {
		actor.ProtectStreak = 0
	}
	log.addf(EventMoveUsed, "%s used %s!", actor.Name(), mv.Name)

	ctx := &effectContext{userSide: side, mv: mv, log: log}

	if targetsOpponent(mv) {
		if defender.Fainted() {
			log.add(EventMoveFailed, "But there was no target!")
			return
		}
		if defender.Conditions.HasVolatile(condition.VolatileProtect) {
			log.addf(EventMoveFailed, "%s protected itself!", defender.Name())
			return
		}
		if !s.hooks.IgnoresDefenderAbility(s, actor) && s.hooks.BlocksMove(s, actor, defender, mv) {
			log.addf(EventMoveFailed, "It doesn't affect %s.", defender.Name())
			return
		}
		if !s.accuracyCheck(side, mv) {
			log.addf(EventMoveMissed, "%s's attack missed!", actor.Name())
			ctx.missed = true
			s.applyEffects(ctx)
			s.recordFaint(log, side)
			return
		}
	}

	if mv.IsDamaging() {
		s.resolveDamagingHit(log, ctx, side, mv, targetMoved)
	} else {
		ctx.hit = true
		s.applyEffects(ctx)
	}

	if mv.HasOther(content.OtherSelfDestruct) && !actor.Fainted() {
		actor.ApplyDamage(actor.CurrentHP)
		log.addf(EventInfo, "%s blew itself up!", actor.Name())
		s.recordFaint(log, side)
	}

	s.checkForWinner(log)
}

// resolveDamagingHit runs the damage loop and its follow-ups for one
// already-accurate damaging move.
func (s *State) resolveDamagingHit(log *eventLog, ctx *effectContext, side SideID, mv content.Move, targetMoved bool) {
	actor := s.active(side)
	defenderSide := side.Opponent()
	defender := s.active(defenderSide)

	t1, t2 := defender.Types()
	if content.Effectiveness(mv.Type, t1, t2) == 0 {
		log.addf(EventMoveFailed, "It doesn't affect %s.", defender.Name())
		return
	}
	// HP-difference moves have nothing to deal against a healthier target.
	if mv.HasModifier(content.ModifierFixedHPDifference) && actor.CurrentHP >= defender.CurrentHP {
		log.add(EventMoveFailed, "But it failed!")
		return
	}

	hits := s.multiHitCount(mv)
	total := 0
	crit := false
	landed := 0
	for i := 0; i < hits && !defender.Fainted(); i++ {
		res := s.computeDamage(side, mv, targetMoved)
		if res.Crit {
			crit = true
		}
		ctx.effectiveness = res.Effectiveness
		dmg := res.Damage
		if defender.HasSubstitute() {
			absorbed, broke := defender.DamageSubstitute(dmg)
			total += absorbed
			if broke {
				log.addf(EventDamage, "%s's substitute took the hit and faded!", defender.Name())
			} else {
				log.addf(EventDamage, "%s's substitute took %d damage.", defender.Name(), absorbed)
			}
		} else {
			if dmg >= defender.CurrentHP && defender.CurrentHP == defender.MaxHP &&
				!s.hooks.IgnoresDefenderAbility(s, actor) && s.hooks.SurvivesKO(s, defender, dmg) {
				dmg = defender.CurrentHP - 1
				log.addf(EventInfo, "%s held on!", defender.Name())
			}
			dealt := defender.ApplyDamage(dmg)
			total += dealt
			log.addf(EventDamage, "%s took %d damage.", defender.Name(), dealt)
		}
		landed++
	}
	if hits > 1 {
		log.addf(EventInfo, "Hit %d time(s)!", landed)
	}
	if crit {
		log.add(EventInfo, "A critical hit!")
	}
	if n := effectivenessNarrative(ctx.effectiveness); n != "" {
		log.add(EventInfo, n)
	}

	ctx.hit = true
	ctx.crit = crit
	ctx.damageDealt = total
	s.applyEffects(ctx)

	if mv.MakesContact && total > 0 && !actor.Fainted() {
		s.hooks.OnContact(s, actor, defender, log)
		s.recordFaint(log, side)
	}
	if crit && !defender.Fainted() {
		s.hooks.OnCritReceived(s, defender, log)
	}
	if defender.Fainted() {
		s.recordFaint(log, defenderSide)
		s.hooks.OnKO(s, actor, defender, log)
	}
}

// recordFaint logs a faint for side's active combatant once, returning
// whether it is down.
func (s *State) recordFaint(log *eventLog, side SideID) bool {
	c := s.active(side)
	if !c.Fainted() {
		return false
	}
	if s.faintLogged == nil {
		s.faintLogged = make(map[uuid.UUID]bool)
	}
	if !s.faintLogged[c.UID] {
		s.faintLogged[c.UID] = true
		s.faintedThisTurn = append(s.faintedThisTurn, c.Name())
		log.addf(EventFaint, "%s fainted!", c.Name())
	}
	return true
}

// endOfTurn runs the residual phase: per-side turn-end hooks, the condition
// ticks, and field countdowns, each in speed order where order matters.
// Weather ticks at the start of the turn, not here.
func (s *State) endOfTurn(log *eventLog) {
	order := s.speedOrderedSides()

	for _, side := range order {
		actor := s.active(side)
		if !actor.Fainted() {
			s.hooks.OnTurnEnd(s, side, actor, log)
		}
	}
	// Turn-end hooks can knock out either active (Bad Dreams, residual
	// ability damage).
	for _, side := range order {
		s.recordFaint(log, side)
	}

	for _, side := range order {
		s.tickConditions(log, side)
		if s.finished {
			return
		}
	}

	for _, side := range order {
		s.tickSideConditions(log, side)
	}
	if s.TrickRoomTurns > 0 {
		s.TrickRoomTurns--
		if s.TrickRoomTurns == 0 {
			log.add(EventField, "The twisted dimensions returned to normal.")
		}
	}
	if s.GravityTurns > 0 {
		s.GravityTurns--
		if s.GravityTurns == 0 {
			log.add(EventField, "Gravity returned to normal.")
		}
	}

	s.checkForWinner(log)
}

// speedOrderedSides returns both sides, faster active first, honoring Trick
// Room. Ties go to side A.
func (s *State) speedOrderedSides() [2]SideID {
	a := s.effectiveSpeed(SideA)
	b := s.effectiveSpeed(SideB)
	slower := a < b
	if s.TrickRoomTurns > 0 {
		slower = !slower
	}
	if slower {
		return [2]SideID{SideB, SideA}
	}
	return [2]SideID{SideA, SideB}
}

// weatherImmune reports whether typing shields the combatant from chip
// damage of the active weather.
func weatherImmune(weather content.WeatherKind, c *monster.Combatant) bool {
	switch weather {
	case content.WeatherSandstorm:
		return c.HasType(content.TypeRock) || c.HasType(content.TypeGround) || c.HasType(content.TypeSteel)
	case content.WeatherHail:
		return c.HasType(content.TypeIce)
	}
	return true
}

func (s *State) tickWeather(log *eventLog, order [2]SideID) {
	if s.Weather == content.WeatherNone {
		return
	}
	if s.Weather == content.WeatherSandstorm || s.Weather == content.WeatherHail {
		for _, side := range order {
			c := s.active(side)
			if c.Fainted() || weatherImmune(s.Weather, c) {
				continue
			}
			dmg := c.MaxHP / 16
			if dmg < 1 {
				dmg = 1
			}
			dealt := c.ApplyDamage(dmg)
			log.addf(EventDamage, "%s is buffeted by the %s for %d damage!", c.Name(), s.Weather, dealt)
			s.recordFaint(log, side)
		}
	}
	s.WeatherTurns--
	if s.WeatherTurns <= 0 {
		log.addf(EventWeather, "The %s subsided.", s.Weather)
		s.Weather = content.WeatherNone
		s.WeatherTurns = 0
	}
}

// tickConditions applies one side's residual condition events and routes
// leech seed drain to the opposing active.
func (s *State) tickConditions(log *eventLog, side SideID) {
	c := s.active(side)
	if c.Fainted() {
		return
	}
	for _, ev := range c.Conditions.Tick(c.MaxHP) {
		switch ev.Kind {
		case condition.TickIngrainHeal:
			if healed := c.Heal(ev.Heal); healed > 0 {
				log.addf(EventHeal, "%s absorbed nutrients with its roots and recovered %d HP.", c.Name(), healed)
			}
		case condition.TickAquaRingHeal:
			if healed := c.Heal(ev.Heal); healed > 0 {
				log.addf(EventHeal, "%s's veil of water restored %d HP.", c.Name(), healed)
			}
		case condition.TickLeechSeed:
			dealt := c.ApplyDamage(ev.Damage)
			log.addf(EventDamage, "%s's health is sapped by leech seed for %d damage!", c.Name(), dealt)
			drinker := s.active(side.Opponent())
			if !drinker.Fainted() && dealt > 0 {
				if healed := drinker.Heal(dealt); healed > 0 {
					log.addf(EventHeal, "%s recovered %d HP.", drinker.Name(), healed)
				}
			}
			s.recordFaint(log, side)
		case condition.TickBurn:
			dealt := c.ApplyDamage(ev.Damage)
			log.addf(EventDamage, "%s is hurt by its burn for %d damage!", c.Name(), dealt)
			s.recordFaint(log, side)
		case condition.TickPoison:
			dealt := c.ApplyDamage(ev.Damage)
			log.addf(EventDamage, "%s is hurt by poison for %d damage!", c.Name(), dealt)
			s.recordFaint(log, side)
		case condition.TickToxic:
			dealt := c.ApplyDamage(ev.Damage)
			log.addf(EventDamage, "%s is hurt by the worsening poison for %d damage!", c.Name(), dealt)
			s.recordFaint(log, side)
		case condition.TickCurse:
			dealt := c.ApplyDamage(ev.Damage)
			log.addf(EventDamage, "%s is afflicted by the curse for %d damage!", c.Name(), dealt)
			s.recordFaint(log, side)
		case condition.TickTrap:
			dealt := c.ApplyDamage(ev.Damage)
			log.addf(EventDamage, "%s is hurt by the trap for %d damage!", c.Name(), dealt)
			s.recordFaint(log, side)
		case condition.TickVolatileExpired:
			s.handleVolatileExpiry(log, side, ev.Expired)
		}
		if c.Fainted() {
			return
		}
	}
}

// handleVolatileExpiry narrates countdown expirations and converts Yawn
// into sleep.
func (s *State) handleVolatileExpiry(log *eventLog, side SideID, v condition.Volatile) {
	c := s.active(side)
	switch v {
	case condition.VolatileYawn:
		if c.Conditions.Status() != condition.StatusNone {
			return
		}
		if s.hooks.BlocksStatus(s, c, condition.StatusSleep) {
			return
		}
		if err := c.Conditions.ApplyStatus(condition.StatusSleep, s.roller.Between(1, 3)); err == nil {
			log.addf(EventStatus, "%s fell asleep!", c.Name())
		}
	case condition.VolatileTrap:
		c.Conditions.ClearVolatile(condition.VolatilePreventEscape)
		log.addf(EventVolatile, "%s was freed from the trap!", c.Name())
	case condition.VolatileTaunt:
		log.addf(EventVolatile, "%s's taunt wore off.", c.Name())
	case condition.VolatileEncore:
		log.addf(EventVolatile, "%s's encore ended.", c.Name())
	case condition.VolatileDisable:
		log.addf(EventVolatile, "%s is no longer disabled.", c.Name())
	case condition.VolatileEmbargo:
		log.addf(EventVolatile, "%s can use items again.", c.Name())
	case condition.VolatileHealBlock:
		log.addf(EventVolatile, "%s's heal block wore off.", c.Name())
	}
}

// tickSideConditions counts down one side's timed field conditions.
func (s *State) tickSideConditions(log *eventLog, side SideID) {
	sd := s.side(side)
	countdown := func(turns *int, narrative string) {
		if *turns == 0 {
			return
		}
		*turns--
		if *turns == 0 {
			log.addf(EventField, narrative, side)
		}
	}
	countdown(&sd.ReflectTurns, "%s's Reflect wore off.")
	countdown(&sd.LightScreenTurns, "%s's Light Screen wore off.")
	countdown(&sd.AuroraVeilTurns, "%s's Aurora Veil faded.")
	countdown(&sd.TailwindTurns, "%s's tailwind petered out.")
	countdown(&sd.SafeguardTurns, "%s is no longer protected by Safeguard.")
	countdown(&sd.MistTurns, "%s's mist faded.")
}

// flagReplacements marks sides whose active fainted but whose bench can
// still fight.
func (s *State) flagReplacements() {
	if s.finished {
		return
	}
	for _, side := range [2]SideID{SideA, SideB} {
		sd := s.side(side)
		if sd.ActiveCombatant().Fainted() && !sd.Defeated() {
			s.awaitingReplacement[side] = true
		}
	}
}
