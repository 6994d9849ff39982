package battle

import (
	"github.com/cory-johannsen/arena/internal/game/condition"
	"github.com/cory-johannsen/arena/internal/game/content"
)

const (
	tauntDuration     = 3
	encoreDuration    = 3
	disableDuration   = 4
	embargoDuration   = 5
	healBlockDuration = 5
	yawnDuration      = 2
)

// otherHandlers routes the discrete mechanic catalog. Multi-hit, OHKO, and
// self-destruct entries resolve inside the move pipeline; their handlers
// here are intentionally absent and the dispatcher skips them.
var otherHandlers = map[content.OtherKind]effectHandler{
	content.OtherFlinch:            (*State).applyFlinch,
	content.OtherProtect:           (*State).applyProtect,
	content.OtherRecharge:          (*State).applyRecharge,
	content.OtherTrap:              (*State).applyTrap,
	content.OtherTrapLong:          (*State).applyTrap,
	content.OtherForceSwitchTarget: (*State).applyForceSwitch,
	content.OtherSwitchOutUser:     (*State).applySwitchOutUser,
	content.OtherSubstitute:        (*State).applySubstituteEffect,
	content.OtherTransform:         (*State).applyTransform,
	content.OtherTaunt:             (*State).applyTaunt,
	content.OtherEncore:            (*State).applyEncore,
	content.OtherDisable:           (*State).applyDisable,
	content.OtherTorment:           (*State).applyTorment,
	content.OtherEmbargo:           (*State).applyEmbargo,
	content.OtherHealBlock:         (*State).applyHealBlock,
	content.OtherYawn:              (*State).applyYawn,
	content.OtherGhostCurse:        (*State).applyGhostCurse,
	content.OtherIngrain:           (*State).applyIngrain,
	content.OtherAquaRing:          (*State).applyAquaRing,
	content.OtherLeechSeed:         (*State).applyLeechSeed,
	content.OtherBellyDrum:         (*State).applyBellyDrum,
	content.OtherFocusEnergy:       (*State).applyFocusEnergy,
	content.OtherLockOn:            (*State).applyLockOn,
	content.OtherHaze:              (*State).applyHaze,
	content.OtherBreakScreens:      (*State).applyBreakScreens,
	content.OtherPreventEscape:     (*State).applyPreventEscape,
	content.OtherSplash:            (*State).applySplash,
	content.OtherPayDay:            (*State).applyPayDay,
}

func (s *State) applyOther(ctx *effectContext, eff content.EffectInstance) {
	handler, ok := otherHandlers[eff.Other]
	if !ok {
		return
	}
	handler(s, ctx, eff)
}

// hostileVolatileBlocked applies the shared substitute gate for volatiles
// inflicted on the opponent.
func (s *State) hostileVolatileBlocked(ctx *effectContext, eff content.EffectInstance) bool {
	if !hostile(ctx, eff.Target) {
		return false
	}
	target, _ := s.recipient(ctx, eff.Target)
	if target.HasSubstitute() {
		if failLoudly(ctx, eff) {
			ctx.log.addf(EventMoveFailed, "%s's substitute blocked the effect.", target.Name())
		}
		return true
	}
	return false
}

func (s *State) applyFlinch(ctx *effectContext, eff content.EffectInstance) {
	if s.hostileVolatileBlocked(ctx, eff) {
		return
	}
	target, targetSide := s.recipient(ctx, eff.Target)
	// Flinch only matters if the target has yet to act this turn.
	if s.movedThisTurn[targetSide] || target.Fainted() {
		return
	}
	target.Conditions.ApplyVolatile(condition.VolatileFlinch, 1)
}

func (s *State) applyProtect(ctx *effectContext, _ content.EffectInstance) {
	user := s.active(ctx.userSide)
	// Consecutive uses succeed at 1/2^streak.
	denom := 1 << user.ProtectStreak
	if denom > 1 && s.roller.Intn(denom) != 0 {
		user.ProtectStreak = 0
		ctx.log.addf(EventMoveFailed, "%s braced itself, but it failed!", user.Name())
		return
	}
	user.ProtectStreak++
	user.Conditions.ApplyVolatile(condition.VolatileProtect, 1)
	ctx.log.addf(EventVolatile, "%s protected itself!", user.Name())
}

func (s *State) applyRecharge(ctx *effectContext, _ content.EffectInstance) {
	if ctx.damageDealt <= 0 {
		return
	}
	user := s.active(ctx.userSide)
	user.Conditions.ApplyVolatile(condition.VolatileRecharge, 1)
}

func (s *State) applyTrap(ctx *effectContext, eff content.EffectInstance) {
	if s.hostileVolatileBlocked(ctx, eff) {
		return
	}
	target, _ := s.recipient(ctx, eff.Target)
	if target.Fainted() || target.Conditions.HasVolatile(condition.VolatileTrap) {
		return
	}
	turns := s.roller.Between(4, 5)
	if eff.Other == content.OtherTrapLong {
		turns = s.roller.Between(5, 6)
	}
	target.Conditions.ApplyVolatile(condition.VolatileTrap, turns)
	target.Conditions.ApplyVolatile(condition.VolatilePreventEscape, condition.Indefinite)
	ctx.log.addf(EventVolatile, "%s was trapped!", target.Name())
}

func (s *State) applyForceSwitch(ctx *effectContext, eff content.EffectInstance) {
	target, targetSide := s.recipient(ctx, eff.Target)
	if target.Conditions.HasVolatile(condition.VolatileIngrain) {
		ctx.log.addf(EventMoveFailed, "%s anchored itself with its roots!", target.Name())
		return
	}
	sd := s.side(targetSide)
	var bench []int
	for i, c := range sd.Roster {
		if i != sd.Active && !c.Fainted() {
			bench = append(bench, i)
		}
	}
	if len(bench) == 0 {
		ctx.log.add(EventMoveFailed, "But it failed!")
		return
	}
	idx := bench[s.roller.Intn(len(bench))]
	ctx.log.addf(EventSwitch, "%s was dragged out!", target.Name())
	s.switchOut(ctx.log, targetSide, idx, false)
}

func (s *State) applySwitchOutUser(ctx *effectContext, _ content.EffectInstance) {
	sd := s.side(ctx.userSide)
	if !sd.HasBench() {
		return
	}
	// Bring in the first healthy bench member.
	for i, c := range sd.Roster {
		if i != sd.Active && !c.Fainted() {
			ctx.log.addf(EventSwitch, "%s went back to its trainer!", sd.ActiveCombatant().Name())
			s.switchOut(ctx.log, ctx.userSide, i, true)
			return
		}
	}
}

func (s *State) applySubstituteEffect(ctx *effectContext, _ content.EffectInstance) {
	user := s.active(ctx.userSide)
	if user.HasSubstitute() {
		ctx.log.addf(EventMoveFailed, "%s already has a substitute!", user.Name())
		return
	}
	cost := user.MaxHP / 4
	if user.CurrentHP <= cost {
		ctx.log.addf(EventMoveFailed, "%s is too weak to make a substitute!", user.Name())
		return
	}
	user.ApplyDamage(cost)
	user.SetSubstitute(cost)
	ctx.log.addf(EventVolatile, "%s put up a substitute!", user.Name())
}

func (s *State) applyTransform(ctx *effectContext, eff content.EffectInstance) {
	user := s.active(ctx.userSide)
	target, _ := s.recipient(ctx, eff.Target)
	user.Transform(target)
	ctx.log.addf(EventVolatile, "%s transformed into %s!", user.Name(), target.Name())
}

func (s *State) applyTimedVolatile(ctx *effectContext, eff content.EffectInstance, v condition.Volatile, turns int, narrative string) {
	if s.hostileVolatileBlocked(ctx, eff) {
		return
	}
	target, _ := s.recipient(ctx, eff.Target)
	if target.Fainted() {
		return
	}
	if target.Conditions.HasVolatile(v) {
		if failLoudly(ctx, eff) {
			ctx.log.add(EventMoveFailed, "But it failed!")
		}
		return
	}
	target.Conditions.ApplyVolatile(v, turns)
	ctx.log.addf(EventVolatile, narrative, target.Name())
}

func (s *State) applyTaunt(ctx *effectContext, eff content.EffectInstance) {
	s.applyTimedVolatile(ctx, eff, condition.VolatileTaunt, tauntDuration, "%s fell for the taunt!")
}

func (s *State) applyEncore(ctx *effectContext, eff content.EffectInstance) {
	target, _ := s.recipient(ctx, eff.Target)
	if target.LastMoveID == "" {
		ctx.log.add(EventMoveFailed, "But it failed!")
		return
	}
	s.applyTimedVolatile(ctx, eff, condition.VolatileEncore, encoreDuration, "%s received an encore!")
}

func (s *State) applyDisable(ctx *effectContext, eff content.EffectInstance) {
	target, _ := s.recipient(ctx, eff.Target)
	if target.LastMoveID == "" {
		ctx.log.add(EventMoveFailed, "But it failed!")
		return
	}
	s.applyTimedVolatile(ctx, eff, condition.VolatileDisable, disableDuration, "%s's move was disabled!")
}

func (s *State) applyTorment(ctx *effectContext, eff content.EffectInstance) {
	s.applyTimedVolatile(ctx, eff, condition.VolatileTorment, condition.Indefinite, "%s was subjected to torment!")
}

func (s *State) applyEmbargo(ctx *effectContext, eff content.EffectInstance) {
	s.applyTimedVolatile(ctx, eff, condition.VolatileEmbargo, embargoDuration, "%s can't use items anymore!")
}

func (s *State) applyHealBlock(ctx *effectContext, eff content.EffectInstance) {
	s.applyTimedVolatile(ctx, eff, condition.VolatileHealBlock, healBlockDuration, "%s was prevented from healing!")
}

func (s *State) applyYawn(ctx *effectContext, eff content.EffectInstance) {
	target, _ := s.recipient(ctx, eff.Target)
	if target.Conditions.Status() != condition.StatusNone {
		ctx.log.add(EventMoveFailed, "But it failed!")
		return
	}
	s.applyTimedVolatile(ctx, eff, condition.VolatileYawn, yawnDuration, "%s grew drowsy!")
}

func (s *State) applyGhostCurse(ctx *effectContext, eff content.EffectInstance) {
	if s.hostileVolatileBlocked(ctx, eff) {
		return
	}
	user := s.active(ctx.userSide)
	target, _ := s.recipient(ctx, eff.Target)
	if target.Conditions.HasVolatile(condition.VolatileCurse) {
		ctx.log.add(EventMoveFailed, "But it failed!")
		return
	}
	cost := user.MaxHP / 2
	user.ApplyDamage(cost)
	target.Conditions.ApplyVolatile(condition.VolatileCurse, condition.Indefinite)
	ctx.log.addf(EventVolatile, "%s cut its own HP and laid a curse on %s!", user.Name(), target.Name())
	s.recordFaint(ctx.log, ctx.userSide)
}

func (s *State) applyIngrain(ctx *effectContext, eff content.EffectInstance) {
	s.applyTimedVolatile(ctx, eff, condition.VolatileIngrain, condition.Indefinite, "%s planted its roots!")
}

func (s *State) applyAquaRing(ctx *effectContext, eff content.EffectInstance) {
	s.applyTimedVolatile(ctx, eff, condition.VolatileAquaRing, condition.Indefinite, "%s surrounded itself with a veil of water!")
}

func (s *State) applyLeechSeed(ctx *effectContext, eff content.EffectInstance) {
	target, _ := s.recipient(ctx, eff.Target)
	if target.HasType(content.TypeGrass) {
		ctx.log.addf(EventMoveFailed, "It doesn't affect %s.", target.Name())
		return
	}
	s.applyTimedVolatile(ctx, eff, condition.VolatileLeechSeed, condition.Indefinite, "%s was seeded!")
}

func (s *State) applyBellyDrum(ctx *effectContext, _ content.EffectInstance) {
	user := s.active(ctx.userSide)
	cost := user.MaxHP / 2
	if user.CurrentHP <= cost {
		ctx.log.add(EventMoveFailed, "But it failed!")
		return
	}
	user.ApplyDamage(cost)
	user.ModifyStage(content.StatAttack, 12)
	ctx.log.addf(EventStatChange, "%s cut its own HP and maximized its Attack!", user.Name())
}

func (s *State) applyFocusEnergy(ctx *effectContext, eff content.EffectInstance) {
	user := s.active(ctx.userSide)
	if user.Conditions.HasVolatile(condition.VolatileFocusEnergy) {
		ctx.log.add(EventMoveFailed, "But it failed!")
		return
	}
	user.Conditions.ApplyVolatile(condition.VolatileFocusEnergy, condition.Indefinite)
	ctx.log.addf(EventVolatile, "%s is getting pumped!", user.Name())
}

func (s *State) applyLockOn(ctx *effectContext, _ content.EffectInstance) {
	user := s.active(ctx.userSide)
	user.Conditions.ApplyVolatile(condition.VolatileLockOn, 2)
	ctx.log.addf(EventVolatile, "%s took aim at its foe!", user.Name())
}

func (s *State) applyHaze(ctx *effectContext, _ content.EffectInstance) {
	s.active(SideA).ResetStages()
	s.active(SideB).ResetStages()
	ctx.log.add(EventField, "All stat changes were eliminated!")
}

func (s *State) applyBreakScreens(ctx *effectContext, eff content.EffectInstance) {
	_, sideID := s.recipient(ctx, eff.Target)
	sd := s.side(sideID)
	if sd.ReflectTurns == 0 && sd.LightScreenTurns == 0 && sd.AuroraVeilTurns == 0 {
		return
	}
	sd.ReflectTurns = 0
	sd.LightScreenTurns = 0
	sd.AuroraVeilTurns = 0
	ctx.log.addf(EventField, "%s's protective barriers shattered!", sideID)
}

func (s *State) applyPreventEscape(ctx *effectContext, eff content.EffectInstance) {
	s.applyTimedVolatile(ctx, eff, condition.VolatilePreventEscape, condition.Indefinite, "%s can no longer escape!")
}

func (s *State) applySplash(ctx *effectContext, _ content.EffectInstance) {
	ctx.log.add(EventInfo, "But nothing happened!")
}

func (s *State) applyPayDay(ctx *effectContext, _ content.EffectInstance) {
	ctx.log.add(EventInfo, "Coins were scattered everywhere!")
}
