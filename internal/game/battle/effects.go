package battle

import (
	"github.com/cory-johannsen/arena/internal/game/condition"
	"github.com/cory-johannsen/arena/internal/game/content"
	"github.com/cory-johannsen/arena/internal/game/monster"
)

// effectContext carries the action outcome the dispatcher evaluates effect
// instances against.
type effectContext struct {
	userSide      SideID
	mv            content.Move
	hit           bool
	crit          bool
	missed        bool
	damageDealt   int
	effectiveness float64
	log           *eventLog
}

// effectHandler applies one effect instance that has already passed its
// trigger and probability gates.
type effectHandler func(s *State, ctx *effectContext, eff content.EffectInstance)

// effectHandlers routes effect categories to their handlers. OtherKind
// mechanics have a second-level table of their own.
var effectHandlers = map[content.EffectCategory]effectHandler{
	content.EffectStatus:         (*State).applyStatusEffect,
	content.EffectStatChange:     (*State).applyStatChange,
	content.EffectHeal:           (*State).applyHeal,
	content.EffectRecoil:         (*State).applyRecoil,
	content.EffectWeather:        (*State).applyWeatherEffect,
	content.EffectField:          (*State).applyFieldEffect,
	content.EffectDamageModifier: (*State).applyDamageModifier,
	content.EffectOther:          (*State).applyOther,
}

// applyEffects runs every effect instance on the move through its trigger
// gate, probability roll, and category handler.
func (s *State) applyEffects(ctx *effectContext) {
	for _, eff := range ctx.mv.Effects {
		if !triggerSatisfied(eff.Trigger, ctx) {
			continue
		}
		if !s.roller.Percent(eff.Probability) {
			continue
		}
		handler, ok := effectHandlers[eff.Category]
		if !ok {
			s.logger.Warn("no handler for effect category")
			continue
		}
		handler(s, ctx, eff)
	}
}

func triggerSatisfied(trigger content.Trigger, ctx *effectContext) bool {
	switch trigger {
	case content.TriggerAlways:
		return true
	case content.TriggerOnHit, content.TriggerIfSecondary:
		return ctx.hit
	case content.TriggerOnCrit:
		return ctx.crit
	case content.TriggerIfMiss:
		return ctx.missed
	}
	return false
}

// recipient resolves the combatant an effect instance lands on.
func (s *State) recipient(ctx *effectContext, sel content.Selector) (*monster.Combatant, SideID) {
	if sel == content.SelectUser || sel == content.SelectUserSide {
		return s.active(ctx.userSide), ctx.userSide
	}
	return s.active(ctx.userSide.Opponent()), ctx.userSide.Opponent()
}

// hostile reports whether the effect lands on the user's opponent, which is
// what substitute, Safeguard, and Mist protect against.
func hostile(ctx *effectContext, sel content.Selector) bool {
	return sel == content.SelectTarget || sel == content.SelectTargetSide
}

// statusTypeImmune reports whether the target's typing blocks the status.
func statusTypeImmune(target *monster.Combatant, status content.StatusKind) bool {
	switch status {
	case content.StatusBurn:
		return target.HasType(content.TypeFire)
	case content.StatusPoison, content.StatusBadlyPoison:
		return target.HasType(content.TypePoison) || target.HasType(content.TypeSteel)
	case content.StatusFreeze:
		return target.HasType(content.TypeIce)
	case content.StatusParalysis:
		return target.HasType(content.TypeElectric)
	}
	return false
}

func statusToCondition(status content.StatusKind) condition.Status {
	switch status {
	case content.StatusBurn:
		return condition.StatusBurn
	case content.StatusParalysis:
		return condition.StatusParalysis
	case content.StatusPoison:
		return condition.StatusPoison
	case content.StatusBadlyPoison:
		return condition.StatusBadlyPoison
	case content.StatusSleep:
		return condition.StatusSleep
	case content.StatusFreeze:
		return condition.StatusFreeze
	}
	return condition.StatusNone
}

// failLoudly reports whether a blocked effect should narrate its failure.
// Primary effects of status moves announce; probability-gated riders on
// damaging moves fail silently.
func failLoudly(ctx *effectContext, eff content.EffectInstance) bool {
	return ctx.mv.Category == content.CategoryStatus || eff.Trigger == content.TriggerAlways
}

func (s *State) applyStatusEffect(ctx *effectContext, eff content.EffectInstance) {
	target, targetSide := s.recipient(ctx, eff.Target)
	if target.Fainted() {
		return
	}
	if hostile(ctx, eff.Target) {
		if target.HasSubstitute() {
			if failLoudly(ctx, eff) {
				ctx.log.addf(EventMoveFailed, "%s's substitute blocked the effect.", target.Name())
			}
			return
		}
		if s.side(targetSide).SafeguardTurns > 0 {
			if failLoudly(ctx, eff) {
				ctx.log.addf(EventMoveFailed, "%s is protected by Safeguard.", target.Name())
			}
			return
		}
	}

	if eff.Status == content.StatusConfusion {
		if target.Conditions.HasVolatile(condition.VolatileConfusion) {
			if failLoudly(ctx, eff) {
				ctx.log.addf(EventMoveFailed, "%s is already confused.", target.Name())
			}
			return
		}
		turns := s.roller.Between(1, 4)
		target.Conditions.ApplyVolatile(condition.VolatileConfusion, turns)
		ctx.log.addf(EventStatus, "%s became confused!", target.Name())
		return
	}

	if statusTypeImmune(target, eff.Status) {
		if failLoudly(ctx, eff) {
			ctx.log.addf(EventMoveFailed, "It doesn't affect %s.", target.Name())
		}
		return
	}
	st := statusToCondition(eff.Status)
	user := s.active(ctx.userSide)
	if !s.hooks.IgnoresDefenderAbility(s, user) && s.hooks.BlocksStatus(s, target, st) {
		if failLoudly(ctx, eff) {
			ctx.log.addf(EventMoveFailed, "%s's ability protects it.", target.Name())
		}
		return
	}

	sleepTurns := 0
	if st == condition.StatusSleep {
		sleepTurns = s.roller.Between(1, 3)
	}
	if err := target.Conditions.ApplyStatus(st, sleepTurns); err != nil {
		if failLoudly(ctx, eff) {
			ctx.log.addf(EventMoveFailed, "%s is already afflicted. It failed.", target.Name())
		}
		return
	}
	ctx.log.addf(EventStatus, "%s %s!", target.Name(), statusDisplay(st))
}

// statChangeNarrative maps an applied delta to its narration suffix.
func statChangeNarrative(applied int) string {
	switch {
	case applied >= 3:
		return "rose drastically"
	case applied == 2:
		return "rose sharply"
	case applied == 1:
		return "rose"
	case applied == -1:
		return "fell"
	case applied == -2:
		return "fell harshly"
	case applied <= -3:
		return "fell severely"
	}
	return "won't go any further"
}

func (s *State) applyStatChange(ctx *effectContext, eff content.EffectInstance) {
	target, targetSide := s.recipient(ctx, eff.Target)
	if target.Fainted() {
		return
	}
	if hostile(ctx, eff.Target) && eff.Stages < 0 {
		if target.HasSubstitute() {
			if failLoudly(ctx, eff) {
				ctx.log.addf(EventMoveFailed, "%s's substitute blocked the effect.", target.Name())
			}
			return
		}
		if s.side(targetSide).MistTurns > 0 {
			if failLoudly(ctx, eff) {
				ctx.log.addf(EventMoveFailed, "%s is protected by the mist.", target.Name())
			}
			return
		}
	}

	stats := []content.Stat{eff.Stat}
	if eff.AllStats {
		stats = []content.Stat{
			content.StatAttack, content.StatDefense,
			content.StatSpAttack, content.StatSpDefense, content.StatSpeed,
		}
	}
	user := s.active(ctx.userSide)
	for _, st := range stats {
		delta := eff.Stages
		if !s.hooks.IgnoresDefenderAbility(s, user) || !hostile(ctx, eff.Target) {
			delta = s.hooks.ModifyStatChange(s, target, st, delta, hostile(ctx, eff.Target))
		}
		if delta == 0 && eff.Stages != 0 {
			ctx.log.addf(EventStatChange, "%s's ability protects its %s!", target.Name(), st.Display())
			continue
		}
		applied := target.ModifyStage(st, delta)
		if applied == 0 {
			ctx.log.addf(EventStatChange, "%s's %s won't go any further!", target.Name(), st.Display())
			continue
		}
		ctx.log.addf(EventStatChange, "%s's %s %s!", target.Name(), st.Display(), statChangeNarrative(applied))
	}
}

func (s *State) applyHeal(ctx *effectContext, eff content.EffectInstance) {
	target, _ := s.recipient(ctx, eff.Target)
	if target.Fainted() {
		return
	}
	if eff.CureStatus {
		if target.Conditions.Status() != condition.StatusNone {
			target.Conditions.CureStatus()
			ctx.log.addf(EventHeal, "%s's status was cured.", target.Name())
		}
		if eff.HealPercent == 0 && eff.HealFixed == 0 && !eff.Drain {
			return
		}
	}
	amount := eff.HealFixed
	switch {
	case eff.Drain:
		amount = ctx.damageDealt * eff.HealPercent / 100
		if ctx.damageDealt > 0 && amount < 1 {
			amount = 1
		}
	case eff.HealPercent > 0:
		amount = target.MaxHP * eff.HealPercent / 100
		if amount < 1 {
			amount = 1
		}
	}
	healed := target.Heal(amount)
	if healed > 0 {
		ctx.log.addf(EventHeal, "%s recovered %d HP.", target.Name(), healed)
	} else if amount > 0 && target.Conditions.HasVolatile(condition.VolatileHealBlock) {
		ctx.log.addf(EventMoveFailed, "%s is blocked from healing!", target.Name())
	}
}

func (s *State) applyRecoil(ctx *effectContext, eff content.EffectInstance) {
	user := s.active(ctx.userSide)
	// Crash damage on a miss scales off the user's own max HP; landed
	// recoil scales off the damage dealt.
	base := ctx.damageDealt
	if ctx.missed {
		base = user.MaxHP
	}
	if base <= 0 {
		return
	}
	recoil := base * eff.RecoilPercent / 100
	if recoil < 1 {
		recoil = 1
	}
	dealt := user.ApplyDamage(recoil)
	ctx.log.addf(EventDamage, "%s is hit with recoil for %d damage.", user.Name(), dealt)
	s.recordFaint(ctx.log, ctx.userSide)
}

const weatherDuration = 5

func (s *State) applyWeatherEffect(ctx *effectContext, eff content.EffectInstance) {
	if s.Weather == eff.Weather {
		if failLoudly(ctx, eff) {
			ctx.log.addf(EventMoveFailed, "The weather is already %s. It failed.", eff.Weather)
		}
		return
	}
	s.Weather = eff.Weather
	s.WeatherTurns = weatherDuration
	switch eff.Weather {
	case content.WeatherSun:
		ctx.log.add(EventWeather, "The sunlight turned harsh!")
	case content.WeatherRain:
		ctx.log.add(EventWeather, "It started to rain!")
	case content.WeatherSandstorm:
		ctx.log.add(EventWeather, "A sandstorm kicked up!")
	case content.WeatherHail:
		ctx.log.add(EventWeather, "It started to hail!")
	case content.WeatherNone:
		s.WeatherTurns = 0
		ctx.log.add(EventWeather, "The weather cleared.")
	}
}

const (
	screenDuration    = 5
	tailwindDuration  = 4
	safeguardDuration = 5
	mistDuration      = 5
	trickRoomDuration = 5
	gravityDuration   = 5
	maxSpikesLayers   = 3
	maxToxicLayers    = 2
)

func (s *State) applyFieldEffect(ctx *effectContext, eff content.EffectInstance) {
	_, sideID := s.recipient(ctx, eff.Target)
	sd := s.side(sideID)
	switch eff.Field {
	case content.FieldSpikes:
		if sd.SpikesLayers >= maxSpikesLayers {
			ctx.log.addf(EventMoveFailed, "Spikes around %s can pile no higher.", sideID)
			return
		}
		sd.SpikesLayers++
		ctx.log.addf(EventField, "Spikes were scattered around %s!", sideID)
	case content.FieldToxicSpikes:
		if sd.ToxicSpikesLayers >= maxToxicLayers {
			ctx.log.addf(EventMoveFailed, "Toxic spikes around %s can pile no higher.", sideID)
			return
		}
		sd.ToxicSpikesLayers++
		ctx.log.addf(EventField, "Toxic spikes were scattered around %s!", sideID)
	case content.FieldStealthRock:
		if sd.StealthRock {
			ctx.log.addf(EventMoveFailed, "Pointed stones already float around %s.", sideID)
			return
		}
		sd.StealthRock = true
		ctx.log.addf(EventField, "Pointed stones float in the air around %s!", sideID)
	case content.FieldStickyWeb:
		if sd.StickyWeb {
			ctx.log.addf(EventMoveFailed, "A sticky web already covers %s.", sideID)
			return
		}
		sd.StickyWeb = true
		ctx.log.addf(EventField, "A sticky web spreads out beneath %s!", sideID)
	case content.FieldReflect:
		sd.ReflectTurns = screenDuration
		ctx.log.addf(EventField, "Reflect raised %s's physical defense!", sideID)
	case content.FieldLightScreen:
		sd.LightScreenTurns = screenDuration
		ctx.log.addf(EventField, "Light Screen raised %s's special defense!", sideID)
	case content.FieldAuroraVeil:
		sd.AuroraVeilTurns = screenDuration
		ctx.log.addf(EventField, "Aurora Veil shrouds %s!", sideID)
	case content.FieldTailwind:
		sd.TailwindTurns = tailwindDuration
		ctx.log.addf(EventField, "A tailwind blew from behind %s!", sideID)
	case content.FieldSafeguard:
		sd.SafeguardTurns = safeguardDuration
		ctx.log.addf(EventField, "%s is cloaked in a mystical veil!", sideID)
	case content.FieldMist:
		sd.MistTurns = mistDuration
		ctx.log.addf(EventField, "%s became shrouded in mist!", sideID)
	case content.FieldTrickRoom:
		if s.TrickRoomTurns > 0 {
			s.TrickRoomTurns = 0
			ctx.log.add(EventField, "The twisted dimensions returned to normal.")
			return
		}
		s.TrickRoomTurns = trickRoomDuration
		ctx.log.add(EventField, "The dimensions were twisted!")
	case content.FieldGravity:
		s.GravityTurns = gravityDuration
		ctx.log.add(EventField, "Gravity intensified!")
	default:
		s.logger.Warn("unhandled field effect")
	}
}

// applyDamageModifier is a no-op at dispatch time: the damage calculator
// already consumed the modifier. Keeping the handler makes the dispatch
// table total over EffectCategory.
func (s *State) applyDamageModifier(_ *effectContext, _ content.EffectInstance) {}
