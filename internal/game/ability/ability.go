// Package ability implements the built-in ability set as a battle.Hooks
// plug-in. Each hook dispatches on the acting combatant's ability name;
// unknown names fall through to the identity behavior, so script-provided
// abilities can layer on top without colliding.
package ability

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/arena/internal/game/battle"
	"github.com/cory-johannsen/arena/internal/game/condition"
	"github.com/cory-johannsen/arena/internal/game/content"
	"github.com/cory-johannsen/arena/internal/game/monster"
)

// Ability names recognized by the built-in set.
const (
	Adaptability = "adaptability"
	Aftermath    = "aftermath"
	AngerPoint   = "anger-point"
	BadDreams    = "bad-dreams"
	Chlorophyll  = "chlorophyll"
	ClearBody    = "clear-body"
	CompoundEyes = "compound-eyes"
	Contrary     = "contrary"
	Drizzle      = "drizzle"
	Drought      = "drought"
	Filter       = "filter"
	FlameBody    = "flame-body"
	FlashFire    = "flash-fire"
	Guts         = "guts"
	HugePower    = "huge-power"
	Hustle       = "hustle"
	Hydration    = "hydration"
	IceBody      = "ice-body"
	Immunity     = "immunity"
	Insomnia     = "insomnia"
	Intimidate   = "intimidate"
	IronBarbs    = "iron-barbs"
	Levitate     = "levitate"
	Limber       = "limber"
	MagmaArmor   = "magma-armor"
	MoldBreaker  = "mold-breaker"
	Moxie        = "moxie"
	NoGuard      = "no-guard"
	PoisonPoint  = "poison-point"
	QuickFeet    = "quick-feet"
	RainDish     = "rain-dish"
	RoughSkin    = "rough-skin"
	SandRush     = "sand-rush"
	SandStream   = "sand-stream"
	ShedSkin     = "shed-skin"
	Simple       = "simple"
	SnowWarning  = "snow-warning"
	SpeedBoost   = "speed-boost"
	Static       = "static"
	Sturdy       = "sturdy"
	SuperLuck    = "super-luck"
	SwiftSwim    = "swift-swim"
	Technician   = "technician"
	ThickFat     = "thick-fat"
	VoltAbsorb   = "volt-absorb"
	WaterAbsorb  = "water-absorb"
	WaterVeil    = "water-veil"
)

const contactEffectChance = 30

// Set is the built-in ability implementation of battle.Hooks.
type Set struct {
	battle.NopHooks
	logger *zap.Logger
}

// NewSet creates the built-in ability hook set.
//
// Precondition: logger must be non-nil.
func NewSet(logger *zap.Logger) *Set {
	return &Set{logger: logger}
}

// ModifyAccuracy applies compound eyes, hustle, and no guard.
func (s *Set) ModifyAccuracy(_ *battle.State, user, target *monster.Combatant, mv content.Move, accuracy float64) float64 {
	if user.Ability == NoGuard || target.Ability == NoGuard {
		return 100
	}
	if user.Ability == CompoundEyes {
		accuracy *= 1.3
	}
	if user.Ability == Hustle && mv.Category == content.CategoryPhysical {
		accuracy *= 0.8
	}
	return accuracy
}

// ModifySpeed applies the weather-speed abilities and quick feet.
func (s *Set) ModifySpeed(st *battle.State, c *monster.Combatant, speed int) int {
	switch c.Ability {
	case SwiftSwim:
		if st.Weather == content.WeatherRain {
			return speed * 2
		}
	case Chlorophyll:
		if st.Weather == content.WeatherSun {
			return speed * 2
		}
	case SandRush:
		if st.Weather == content.WeatherSandstorm {
			return speed * 2
		}
	case QuickFeet:
		if c.Conditions.Status() != condition.StatusNone {
			return speed * 3 / 2
		}
	}
	return speed
}

// ModifyCritStage applies super luck.
func (s *Set) ModifyCritStage(_ *battle.State, user *monster.Combatant, stage int) int {
	if user.Ability == SuperLuck {
		return stage + 1
	}
	return stage
}

// ModifySTAB upgrades the same-type bonus to 2x for adaptability.
func (s *Set) ModifySTAB(_ *battle.State, user *monster.Combatant, _ content.Move, stab float64) float64 {
	if user.Ability == Adaptability && stab > 1 {
		return 2.0
	}
	return stab
}

// ModifyOutgoingDamage applies guts, huge power, hustle, and technician.
func (s *Set) ModifyOutgoingDamage(_ *battle.State, user, _ *monster.Combatant, mv content.Move, dmg int) int {
	switch user.Ability {
	case Guts:
		if user.Conditions.Status() != condition.StatusNone {
			dmg = dmg * 3 / 2
		}
	case HugePower:
		if mv.Category == content.CategoryPhysical {
			dmg *= 2
		}
	case Hustle:
		if mv.Category == content.CategoryPhysical {
			dmg = dmg * 3 / 2
		}
	case Technician:
		if mv.Power > 0 && mv.Power <= 60 {
			dmg = dmg * 3 / 2
		}
	}
	return dmg
}

// ModifyIncomingDamage applies thick fat and filter.
func (s *Set) ModifyIncomingDamage(_ *battle.State, _, target *monster.Combatant, mv content.Move, dmg int) int {
	switch target.Ability {
	case ThickFat:
		if mv.Type == content.TypeFire || mv.Type == content.TypeIce {
			dmg /= 2
		}
	case Filter:
		t1, t2 := target.Types()
		if content.Effectiveness(mv.Type, t1, t2) > 1 {
			dmg = dmg * 3 / 4
		}
	}
	return dmg
}

// ModifyStatChange applies clear body, contrary, and simple. Clear body only
// refuses drops inflicted by another combatant; self-inflicted drops such as
// recoil stat costs go through.
func (s *Set) ModifyStatChange(_ *battle.State, target *monster.Combatant, _ content.Stat, stages int, hostile bool) int {
	switch target.Ability {
	case ClearBody:
		if hostile && stages < 0 {
			return 0
		}
	case Contrary:
		return -stages
	case Simple:
		return stages * 2
	}
	return stages
}

// BlocksStatus applies the status-immunity abilities.
func (s *Set) BlocksStatus(_ *battle.State, target *monster.Combatant, status condition.Status) bool {
	switch target.Ability {
	case Immunity:
		return status == condition.StatusPoison || status == condition.StatusBadlyPoison
	case Limber:
		return status == condition.StatusParalysis
	case Insomnia:
		return status == condition.StatusSleep
	case WaterVeil:
		return status == condition.StatusBurn
	case MagmaArmor:
		return status == condition.StatusFreeze
	}
	return false
}

// BlocksMove grants full immunity for levitate and the absorbing abilities.
// Absorbers recover a quarter of their max HP when they soak a hit.
func (s *Set) BlocksMove(_ *battle.State, _, target *monster.Combatant, mv content.Move) bool {
	switch target.Ability {
	case Levitate:
		return mv.Type == content.TypeGround
	case FlashFire:
		return mv.Type == content.TypeFire
	case VoltAbsorb:
		if mv.Type == content.TypeElectric {
			target.Heal(target.MaxHP / 4)
			return true
		}
	case WaterAbsorb:
		if mv.Type == content.TypeWater {
			target.Heal(target.MaxHP / 4)
			return true
		}
	}
	return false
}

// SurvivesKO implements sturdy's full-HP endure.
func (s *Set) SurvivesKO(_ *battle.State, target *monster.Combatant, _ int) bool {
	return target.Ability == Sturdy
}

// IgnoresDefenderAbility implements mold breaker.
func (s *Set) IgnoresDefenderAbility(_ *battle.State, user *monster.Combatant) bool {
	return user.Ability == MoldBreaker
}

// statusTypeBlocked mirrors the engine's typing immunities so contact
// abilities do not afflict targets their typing protects.
func statusTypeBlocked(target *monster.Combatant, st condition.Status) bool {
	switch st {
	case condition.StatusBurn:
		return target.HasType(content.TypeFire)
	case condition.StatusParalysis:
		return target.HasType(content.TypeElectric)
	case condition.StatusPoison, condition.StatusBadlyPoison:
		return target.HasType(content.TypePoison) || target.HasType(content.TypeSteel)
	}
	return false
}

// contactStatus rolls the 30% contact afflictions shared by static, flame
// body, and poison point.
func (s *Set) contactStatus(st *battle.State, attacker *monster.Combatant, status condition.Status, narrative string, log battle.EventSink) {
	if attacker.Fainted() || statusTypeBlocked(attacker, status) {
		return
	}
	if s.BlocksStatus(st, attacker, status) {
		return
	}
	if !st.Roller().Percent(contactEffectChance) {
		return
	}
	if err := attacker.Conditions.ApplyStatus(status, 0); err != nil {
		return
	}
	log.Add(battle.EventStatus, narrative)
}

// OnContact applies static, flame body, poison point, rough skin, and iron
// barbs against the attacker.
func (s *Set) OnContact(st *battle.State, attacker, defender *monster.Combatant, log battle.EventSink) {
	switch defender.Ability {
	case Static:
		s.contactStatus(st, attacker, condition.StatusParalysis,
			attacker.Name()+" was paralyzed by static electricity!", log)
	case FlameBody:
		s.contactStatus(st, attacker, condition.StatusBurn,
			attacker.Name()+" was burned by the contact!", log)
	case PoisonPoint:
		s.contactStatus(st, attacker, condition.StatusPoison,
			attacker.Name()+" was poisoned by the contact!", log)
	case RoughSkin, IronBarbs:
		dmg := attacker.MaxHP / 8
		if dmg < 1 {
			dmg = 1
		}
		dealt := attacker.ApplyDamage(dmg)
		log.Add(battle.EventDamage, attacker.Name()+" was hurt by the rough contact!")
		s.logger.Debug("contact recoil", zap.Int("damage", dealt))
	}
}

// OnCritReceived implements anger point: a received crit maximizes Attack.
func (s *Set) OnCritReceived(_ *battle.State, defender *monster.Combatant, log battle.EventSink) {
	if defender.Ability != AngerPoint || defender.Fainted() {
		return
	}
	if defender.ModifyStage(content.StatAttack, 12) != 0 {
		log.Add(battle.EventStatChange, defender.Name()+" maxed its Attack in a fit of rage!")
	}
}

// OnKO applies moxie to the attacker and aftermath against it.
func (s *Set) OnKO(_ *battle.State, attacker, defender *monster.Combatant, log battle.EventSink) {
	if attacker.Ability == Moxie && !attacker.Fainted() {
		if attacker.ModifyStage(content.StatAttack, 1) != 0 {
			log.Add(battle.EventStatChange, attacker.Name()+"'s Attack rose!")
		}
	}
	if defender.Ability == Aftermath && !attacker.Fainted() {
		dmg := attacker.MaxHP / 4
		if dmg < 1 {
			dmg = 1
		}
		attacker.ApplyDamage(dmg)
		log.Add(battle.EventDamage, attacker.Name()+" was caught in the aftermath!")
	}
}

// OnSwitchIn applies intimidate and the weather-setting abilities.
func (s *Set) OnSwitchIn(st *battle.State, side battle.SideID, c *monster.Combatant, log battle.EventSink) {
	switch c.Ability {
	case Intimidate:
		foe := st.Sides[side.Opponent()].ActiveCombatant()
		if !foe.Fainted() && !foe.HasSubstitute() {
			delta := s.ModifyStatChange(st, foe, content.StatAttack, -1, true)
			if delta == 0 {
				log.Add(battle.EventStatChange, foe.Name()+"'s ability kept its Attack from falling!")
				break
			}
			switch applied := foe.ModifyStage(content.StatAttack, delta); {
			case applied < 0:
				log.Add(battle.EventStatChange, foe.Name()+"'s Attack fell under the intimidation!")
			case applied > 0:
				log.Add(battle.EventStatChange, foe.Name()+"'s Attack rose in defiance of the intimidation!")
			}
		}
	case Drizzle:
		s.setWeather(st, content.WeatherRain, "It started to rain!", log)
	case Drought:
		s.setWeather(st, content.WeatherSun, "The sunlight turned harsh!", log)
	case SandStream:
		s.setWeather(st, content.WeatherSandstorm, "A sandstorm kicked up!", log)
	case SnowWarning:
		s.setWeather(st, content.WeatherHail, "It started to hail!", log)
	}
}

func (s *Set) setWeather(st *battle.State, w content.WeatherKind, narrative string, log battle.EventSink) {
	if st.Weather == w {
		return
	}
	st.Weather = w
	st.WeatherTurns = 5
	log.Add(battle.EventWeather, narrative)
}

// shedSkinChance is the per-turn cure probability for Shed Skin.
const shedSkinChance = 33

// OnTurnEnd applies speed boost, status-curing, and the weather abilities.
func (s *Set) OnTurnEnd(st *battle.State, side battle.SideID, c *monster.Combatant, log battle.EventSink) {
	switch c.Ability {
	case SpeedBoost:
		if c.ModifyStage(content.StatSpeed, 1) != 0 {
			log.Add(battle.EventStatChange, c.Name()+"'s Speed rose!")
		}
	case RainDish:
		if st.Weather == content.WeatherRain {
			if healed := c.Heal(c.MaxHP / 16); healed > 0 {
				log.Add(battle.EventHeal, c.Name()+" soaked up the rain and recovered.")
			}
		}
	case IceBody:
		if st.Weather == content.WeatherHail {
			if healed := c.Heal(c.MaxHP / 16); healed > 0 {
				log.Add(battle.EventHeal, c.Name()+" absorbed the hail and recovered.")
			}
		}
	case ShedSkin:
		if c.Conditions.Status() != condition.StatusNone && st.Roller().Percent(shedSkinChance) {
			c.Conditions.CureStatus()
			log.Add(battle.EventStatus, c.Name()+" shed its skin and recovered!")
		}
	case Hydration:
		if c.Conditions.Status() != condition.StatusNone && st.Weather == content.WeatherRain {
			c.Conditions.CureStatus()
			log.Add(battle.EventStatus, c.Name()+" was cured by the rain!")
		}
	case BadDreams:
		foe := st.Sides[side.Opponent()].ActiveCombatant()
		if !foe.Fainted() && foe.Conditions.Status() == condition.StatusSleep {
			dmg := foe.MaxHP / 8
			if dmg < 1 {
				dmg = 1
			}
			foe.ApplyDamage(dmg)
			log.Add(battle.EventDamage, foe.Name()+" is tormented by bad dreams!")
		}
	}
}
