package monster

import (
	"github.com/cory-johannsen/arena/internal/game/condition"
	"github.com/cory-johannsen/arena/internal/game/content"
)

// IVs are per-stat individual values in [0, 31].
type IVs struct {
	HP        int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int
}

// EVs are per-stat effort values in [0, 252], totalling at most 510.
type EVs struct {
	HP        int
	Attack    int
	Defense   int
	SpAttack  int
	SpDefense int
	Speed     int
}

// Total returns the sum of all effort values.
func (e EVs) Total() int {
	return e.HP + e.Attack + e.Defense + e.SpAttack + e.SpDefense + e.Speed
}

// computeHP applies the HP stat formula.
func computeHP(base, iv, ev, level int) int {
	return (2*base+iv+ev/4)*level/100 + level + 10
}

// computeStat applies the non-HP stat formula.
func computeStat(base, iv, ev, level int) int {
	return (2*base+iv+ev/4)*level/100 + 5
}

// StageMultiplier returns the multiplier for a combat stat stage in [-6, 6]:
// (2+s)/2 for boosts, 2/(2-s) for drops.
func StageMultiplier(stage int) float64 {
	if stage >= 0 {
		return float64(2+stage) / 2
	}
	return 2 / float64(2-stage)
}

// AccuracyStageRatio returns the accuracy multiplier for the difference
// between the attacker's accuracy stage and the defender's evasion stage,
// clamped to [-6, 6]: (3+d)/3 for a positive difference, 3/(3-d) otherwise.
func AccuracyStageRatio(diff int) float64 {
	if diff > 6 {
		diff = 6
	}
	if diff < -6 {
		diff = -6
	}
	if diff >= 0 {
		return float64(3+diff) / 3
	}
	return 3 / float64(3-diff)
}

// BaseStat returns the computed stat value before stages and status.
//
// Precondition: stat is one of the five combat stats, not accuracy or
// evasion.
func (c *Combatant) BaseStat(stat content.Stat) int {
	switch stat {
	case content.StatAttack:
		return c.stats.Attack
	case content.StatDefense:
		return c.stats.Defense
	case content.StatSpAttack:
		return c.stats.SpAttack
	case content.StatSpDefense:
		return c.stats.SpDefense
	case content.StatSpeed:
		return c.stats.Speed
	}
	panic("monster: BaseStat called with non-combat stat " + stat.String())
}

// EffectiveStat returns a combat stat after stage multipliers and status
// penalties: burn halves Attack, paralysis halves Speed. The result is
// floored with a minimum of 1.
//
// Precondition: stat is one of the five combat stats.
func (c *Combatant) EffectiveStat(stat content.Stat) int {
	v := float64(c.BaseStat(stat)) * StageMultiplier(c.Stages[stat])
	switch {
	case stat == content.StatAttack && c.Conditions.Status() == condition.StatusBurn:
		v /= 2
	case stat == content.StatSpeed && c.Conditions.Status() == condition.StatusParalysis:
		v /= 2
	}
	result := int(v)
	if result < 1 {
		result = 1
	}
	return result
}

// statWithStageFloor returns a combat stat the way critical hits read it:
// with ignoreNegative the attacker's negative stages are dropped; without it
// the defender's positive stages are dropped.
func (c *Combatant) statWithStageFloor(stat content.Stat, ignoreNegative bool) int {
	stage := c.Stages[stat]
	if ignoreNegative && stage < 0 {
		stage = 0
	}
	if !ignoreNegative && stage > 0 {
		stage = 0
	}
	v := float64(c.BaseStat(stat)) * StageMultiplier(stage)
	switch {
	case stat == content.StatAttack && c.Conditions.Status() == condition.StatusBurn:
		v /= 2
	case stat == content.StatSpeed && c.Conditions.Status() == condition.StatusParalysis:
		v /= 2
	}
	result := int(v)
	if result < 1 {
		result = 1
	}
	return result
}

// OffensiveStatForCrit returns the attacker's stat ignoring its negative
// stages, as critical hits do.
func (c *Combatant) OffensiveStatForCrit(stat content.Stat) int {
	return c.statWithStageFloor(stat, true)
}

// DefensiveStatForCrit returns the defender's stat ignoring its positive
// stages, as critical hits do.
func (c *Combatant) DefensiveStatForCrit(stat content.Stat) int {
	return c.statWithStageFloor(stat, false)
}
