package battle

import (
	"github.com/cory-johannsen/arena/internal/game/condition"
	"github.com/cory-johannsen/arena/internal/game/content"
	"github.com/cory-johannsen/arena/internal/game/monster"
)

const speedStat = content.StatSpeed

// critDenominators is the critical-hit ladder: the chance at crit stage n
// is 1/critDenominators[n], with stage 3 and above guaranteed.
var critDenominators = [3]int{24, 8, 2}

// damageResult reports one computed hit.
type damageResult struct {
	Damage        int
	Crit          bool
	Effectiveness float64
}

// rollCrit determines whether the hit is critical. The stage starts at zero,
// gains one for a HighCrit move, two for Focus Energy, and passes through
// the crit-stage hook. AlwaysCrit moves skip the ladder.
func (s *State) rollCrit(user *monster.Combatant, mv content.Move) bool {
	if mv.HasModifier(content.ModifierAlwaysCrit) {
		return true
	}
	stage := 0
	if mv.HasModifier(content.ModifierHighCrit) {
		stage++
	}
	if user.Conditions.HasVolatile(condition.VolatileFocusEnergy) {
		stage += 2
	}
	stage = s.hooks.ModifyCritStage(s, user, stage)
	if stage < 0 {
		stage = 0
	}
	if stage >= len(critDenominators) {
		return true
	}
	return s.roller.Intn(critDenominators[stage]) == 0
}

// movePower returns the move's effective base power after power-altering
// modifiers.
func (s *State) movePower(user, target *monster.Combatant, mv content.Move, targetMoved bool) int {
	power := mv.Power
	switch {
	case mv.HasModifier(content.ModifierSpeedRatio):
		// Slower attackers hit harder: 25 * target speed / user speed,
		// capped at 150.
		us := user.EffectiveStat(speedStat)
		ts := target.EffectiveStat(speedStat)
		power = 1 + 25*ts/us
		if power > 150 {
			power = 150
		}
	case mv.HasModifier(content.ModifierHPScaling):
		// Full-HP attackers hit hardest.
		power = power * user.CurrentHP / user.MaxHP
		if power < 1 {
			power = 1
		}
	case mv.HasModifier(content.ModifierStatBoostScaling):
		boosts := 0
		for st := content.StatAttack; st <= content.StatEvasion; st++ {
			if target.Stages[st] > 0 {
				boosts += target.Stages[st]
			}
		}
		power += 20 * boosts
		if power > 200 {
			power = 200
		}
	case mv.HasModifier(content.ModifierConsecutiveScaling):
		uses := user.ConsecutiveUses
		if uses < 1 {
			uses = 1
		}
		for i := 1; i < uses && power < 160; i++ {
			power *= 2
		}
		if power > 160 {
			power = 160
		}
	}
	if mv.HasModifier(content.ModifierDoubleIfTargetStatused) &&
		target.Conditions.Status() != condition.StatusNone {
		power *= 2
	}
	if mv.HasModifier(content.ModifierDoubleIfTargetNotMoved) && !targetMoved {
		power *= 2
	}
	return power
}

// fixedDamage returns the damage for fixed-damage moves, or (0, false) when
// the move uses the standard formula.
func fixedDamage(user, target *monster.Combatant, mv content.Move) (int, bool) {
	switch {
	case mv.HasOther(content.OtherOHKO):
		return target.CurrentHP, true
	case mv.HasModifier(content.ModifierFixedLevel):
		return user.Level, true
	case mv.HasModifier(content.ModifierFixedHalfHP):
		dmg := target.CurrentHP / 2
		if dmg < 1 {
			dmg = 1
		}
		return dmg, true
	case mv.HasModifier(content.ModifierFixedHPDifference):
		diff := target.CurrentHP - user.CurrentHP
		if diff < 1 {
			diff = 0
		}
		return diff, true
	case mv.HasModifier(content.ModifierFixedAmount):
		return mv.ModifierAmount(content.ModifierFixedAmount), true
	}
	return 0, false
}

// attackAndDefense picks the stats the hit reads, honoring category,
// stat-redirection modifiers, and the crit stage-floor rules.
func attackAndDefense(user, target *monster.Combatant, mv content.Move, crit bool) (atk, def int) {
	atkStat := content.StatAttack
	defStat := content.StatDefense
	if mv.Category == content.CategorySpecial {
		atkStat = content.StatSpAttack
		defStat = content.StatSpDefense
	}
	if mv.HasModifier(content.ModifierTargetPhysicalDefense) {
		defStat = content.StatDefense
	}

	atkSource := user
	if mv.HasModifier(content.ModifierUseTargetAttack) {
		atkSource = target
	}

	if crit {
		return atkSource.OffensiveStatForCrit(atkStat), target.DefensiveStatForCrit(defStat)
	}
	return atkSource.EffectiveStat(atkStat), target.EffectiveStat(defStat)
}

// weatherMultiplier returns the weather's damage multiplier for the move's
// type.
func weatherMultiplier(weather content.WeatherKind, moveType content.Type) float64 {
	switch weather {
	case content.WeatherRain:
		if moveType == content.TypeWater {
			return 1.5
		}
		if moveType == content.TypeFire {
			return 0.5
		}
	case content.WeatherSun:
		if moveType == content.TypeFire {
			return 1.5
		}
		if moveType == content.TypeWater {
			return 0.5
		}
	}
	return 1
}

// screenMultiplier halves damage through an intact screen. Critical hits
// punch through.
func screenMultiplier(targetSide *Side, mv content.Move, crit bool) float64 {
	if crit {
		return 1
	}
	if targetSide.AuroraVeilTurns > 0 {
		return 0.5
	}
	if mv.Category == content.CategoryPhysical && targetSide.ReflectTurns > 0 {
		return 0.5
	}
	if mv.Category == content.CategorySpecial && targetSide.LightScreenTurns > 0 {
		return 0.5
	}
	return 1
}

// computeDamage runs the full damage pipeline for one hit of mv from the
// attacker on userSide against the opposing active combatant.
//
// Postcondition: Damage >= 1 for any hit that is not nullified by type
// immunity; Effectiveness carries the combined type multiplier.
func (s *State) computeDamage(userSide SideID, mv content.Move, targetMoved bool) damageResult {
	user := s.active(userSide)
	targetSideState := s.side(userSide.Opponent())
	target := targetSideState.ActiveCombatant()

	t1, t2 := target.Types()
	eff := content.Effectiveness(mv.Type, t1, t2)
	if eff == 0 {
		return damageResult{Effectiveness: 0}
	}

	crit := s.rollCrit(user, mv)

	if dmg, ok := fixedDamage(user, target, mv); ok {
		// Fixed damage ignores stats, STAB, and weather, but not immunity.
		dmg = s.hooks.ModifyOutgoingDamage(s, user, target, mv, dmg)
		if !s.hooks.IgnoresDefenderAbility(s, user) {
			dmg = s.hooks.ModifyIncomingDamage(s, user, target, mv, dmg)
		}
		return damageResult{Damage: dmg, Crit: false, Effectiveness: eff}
	}

	power := s.movePower(user, target, mv, targetMoved)
	atk, def := attackAndDefense(user, target, mv, crit)

	base := float64((2*user.Level/5+2)*power) * float64(atk) / float64(def)
	dmg := base/50 + 2

	if crit {
		dmg *= 1.5
	}

	stab := 1.0
	if user.HasType(mv.Type) {
		stab = 1.5
	}
	stab = s.hooks.ModifySTAB(s, user, mv, stab)
	dmg *= stab

	dmg *= eff
	dmg *= weatherMultiplier(s.Weather, mv.Type)
	dmg *= screenMultiplier(targetSideState, mv, crit)

	// Random spread 85-100%.
	dmg *= float64(s.roller.Between(85, 100)) / 100

	out := int(dmg)
	if out < 1 {
		out = 1
	}
	out = s.hooks.ModifyOutgoingDamage(s, user, target, mv, out)
	if !s.hooks.IgnoresDefenderAbility(s, user) {
		out = s.hooks.ModifyIncomingDamage(s, user, target, mv, out)
	}
	if out < 0 {
		out = 0
	}
	return damageResult{Damage: out, Crit: crit, Effectiveness: eff}
}

// effectivenessNarrative returns the flavor line for a non-neutral type
// multiplier, or "".
func effectivenessNarrative(eff float64) string {
	switch {
	case eff == 0:
		return "It had no effect."
	case eff > 1:
		return "It's super effective!"
	case eff < 1:
		return "It's not very effective."
	}
	return ""
}
