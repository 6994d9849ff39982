package content

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// EffectCategory is the closed set of secondary-effect categories a move may
// carry. The dispatcher matches on it exhaustively.
type EffectCategory int

const (
	EffectStatus EffectCategory = iota
	EffectStatChange
	EffectHeal
	EffectRecoil
	EffectWeather
	EffectField
	EffectDamageModifier
	EffectOther
)

var effectCategoryNames = map[EffectCategory]string{
	EffectStatus:         "Status",
	EffectStatChange:     "StatChange",
	EffectHeal:           "Heal",
	EffectRecoil:         "Recoil",
	EffectWeather:        "Weather",
	EffectField:          "FieldEffect",
	EffectDamageModifier: "DamageModifier",
	EffectOther:          "Other",
}

// Trigger describes when an effect instance is evaluated against the action
// outcome.
type Trigger int

const (
	TriggerAlways Trigger = iota
	TriggerOnHit
	TriggerOnCrit
	TriggerIfSecondary
	TriggerIfMiss
)

var triggerNames = map[Trigger]string{
	TriggerAlways:      "Always",
	TriggerOnHit:       "OnHit",
	TriggerOnCrit:      "OnCrit",
	TriggerIfSecondary: "IfSecondary",
	TriggerIfMiss:      "IfMiss",
}

// Selector names who an effect instance lands on.
type Selector int

const (
	SelectTarget Selector = iota
	SelectUser
	SelectUserSide
	SelectTargetSide
	SelectField
)

var selectorNames = map[Selector]string{
	SelectTarget:     "Target",
	SelectUser:       "User",
	SelectUserSide:   "UserSide",
	SelectTargetSide: "TargetSide",
	SelectField:      "Field",
}

// Stat identifies one of the seven stage-modifiable stats.
type Stat int

const (
	StatAttack Stat = iota
	StatDefense
	StatSpAttack
	StatSpDefense
	StatSpeed
	StatAccuracy
	StatEvasion
)

// NumStats is the number of stage-modifiable stats.
const NumStats = 7

var statNames = map[Stat]string{
	StatAttack:    "Attack",
	StatDefense:   "Defense",
	StatSpAttack:  "SpAttack",
	StatSpDefense: "SpDefense",
	StatSpeed:     "Speed",
	StatAccuracy:  "Accuracy",
	StatEvasion:   "Evasion",
}

// String returns the stat's catalog name.
func (s Stat) String() string {
	if n, ok := statNames[s]; ok {
		return n
	}
	return "Unknown"
}

// Display returns the stat's narration name ("Special Attack" over "SpAttack").
func (s Stat) Display() string {
	switch s {
	case StatSpAttack:
		return "Special Attack"
	case StatSpDefense:
		return "Special Defense"
	default:
		return s.String()
	}
}

// StatusKind names the status condition an EffectStatus instance inflicts.
// Confusion is volatile and does not compete with the major statuses.
type StatusKind int

const (
	StatusNone StatusKind = iota
	StatusBurn
	StatusParalysis
	StatusPoison
	StatusBadlyPoison
	StatusSleep
	StatusFreeze
	StatusConfusion
)

var statusKindNames = map[StatusKind]string{
	StatusNone:        "None",
	StatusBurn:        "Burn",
	StatusParalysis:   "Paralysis",
	StatusPoison:      "Poison",
	StatusBadlyPoison: "BadlyPoison",
	StatusSleep:       "Sleep",
	StatusFreeze:      "Freeze",
	StatusConfusion:   "Confusion",
}

// WeatherKind names a weather condition an EffectWeather instance sets.
type WeatherKind int

const (
	WeatherNone WeatherKind = iota
	WeatherSun
	WeatherRain
	WeatherSandstorm
	WeatherHail
)

var weatherNames = map[WeatherKind]string{
	WeatherNone:      "None",
	WeatherSun:       "Sun",
	WeatherRain:      "Rain",
	WeatherSandstorm: "Sandstorm",
	WeatherHail:      "Hail",
}

// String returns the weather's display name.
func (w WeatherKind) String() string {
	if n, ok := weatherNames[w]; ok {
		return n
	}
	return "Unknown"
}

// FieldKind names a side or field condition an EffectField instance sets.
type FieldKind int

const (
	FieldNone FieldKind = iota
	FieldSpikes
	FieldToxicSpikes
	FieldStealthRock
	FieldStickyWeb
	FieldReflect
	FieldLightScreen
	FieldAuroraVeil
	FieldTailwind
	FieldSafeguard
	FieldMist
	FieldTrickRoom
	FieldGravity
	FieldElectricTerrain
	FieldGrassyTerrain
	FieldMistyTerrain
	FieldPsychicTerrain
)

var fieldNames = map[FieldKind]string{
	FieldNone:            "None",
	FieldSpikes:          "Spikes",
	FieldToxicSpikes:     "ToxicSpikes",
	FieldStealthRock:     "StealthRock",
	FieldStickyWeb:       "StickyWeb",
	FieldReflect:         "Reflect",
	FieldLightScreen:     "LightScreen",
	FieldAuroraVeil:      "AuroraVeil",
	FieldTailwind:        "Tailwind",
	FieldSafeguard:       "Safeguard",
	FieldMist:            "Mist",
	FieldTrickRoom:       "TrickRoom",
	FieldGravity:         "Gravity",
	FieldElectricTerrain: "ElectricTerrain",
	FieldGrassyTerrain:   "GrassyTerrain",
	FieldMistyTerrain:    "MistyTerrain",
	FieldPsychicTerrain:  "PsychicTerrain",
}

// String returns the field condition's display name.
func (f FieldKind) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return "Unknown"
}

// OtherKind is the named catalog of discrete mechanics routed by the effect
// dispatcher. The dispatcher owns the routing; the mechanic list is owned
// here, by the catalog.
type OtherKind int

const (
	OtherNone OtherKind = iota
	OtherFlinch
	OtherProtect
	OtherMultiHit2to5
	OtherMultiHit2
	OtherMultiHit3
	OtherRecharge
	OtherTrap
	OtherTrapLong
	OtherForceSwitchTarget
	OtherSwitchOutUser
	OtherSubstitute
	OtherTransform
	OtherTaunt
	OtherEncore
	OtherDisable
	OtherTorment
	OtherEmbargo
	OtherHealBlock
	OtherYawn
	OtherGhostCurse
	OtherIngrain
	OtherAquaRing
	OtherLeechSeed
	OtherOHKO
	OtherBellyDrum
	OtherFocusEnergy
	OtherLockOn
	OtherSelfDestruct
	OtherHaze
	OtherBreakScreens
	OtherPreventEscape
	OtherSplash
	OtherPayDay
)

var otherNames = map[OtherKind]string{
	OtherNone:              "None",
	OtherFlinch:            "Flinch",
	OtherProtect:           "Protect",
	OtherMultiHit2to5:      "MultiHit2to5",
	OtherMultiHit2:         "MultiHit2",
	OtherMultiHit3:         "MultiHit3",
	OtherRecharge:          "Recharge",
	OtherTrap:              "Trap",
	OtherTrapLong:          "TrapLong",
	OtherForceSwitchTarget: "ForceSwitchTarget",
	OtherSwitchOutUser:     "SwitchOutUser",
	OtherSubstitute:        "Substitute",
	OtherTransform:         "Transform",
	OtherTaunt:             "Taunt",
	OtherEncore:            "Encore",
	OtherDisable:           "Disable",
	OtherTorment:           "Torment",
	OtherEmbargo:           "Embargo",
	OtherHealBlock:         "HealBlock",
	OtherYawn:              "Yawn",
	OtherGhostCurse:        "GhostCurse",
	OtherIngrain:           "Ingrain",
	OtherAquaRing:          "AquaRing",
	OtherLeechSeed:         "LeechSeed",
	OtherOHKO:              "OHKO",
	OtherBellyDrum:         "BellyDrum",
	OtherFocusEnergy:       "FocusEnergy",
	OtherLockOn:            "LockOn",
	OtherSelfDestruct:      "SelfDestruct",
	OtherHaze:              "Haze",
	OtherBreakScreens:      "BreakScreens",
	OtherPreventEscape:     "PreventEscape",
	OtherSplash:            "Splash",
	OtherPayDay:            "PayDay",
}

// ModifierKind names damage-calculation modifiers. These carry no runtime
// action of their own; the damage calculator consumes them.
type ModifierKind int

const (
	ModifierNone ModifierKind = iota
	ModifierFixedLevel
	ModifierFixedHalfHP
	ModifierFixedHPDifference
	ModifierFixedAmount
	ModifierHighCrit
	ModifierAlwaysCrit
	ModifierNeverMiss
	ModifierSpeedRatio
	ModifierHPScaling
	ModifierStatBoostScaling
	ModifierUseTargetAttack
	ModifierTargetPhysicalDefense
	ModifierDoubleIfTargetStatused
	ModifierDoubleIfTargetNotMoved
	ModifierConsecutiveScaling
)

var modifierNames = map[ModifierKind]string{
	ModifierNone:                   "None",
	ModifierFixedLevel:             "FixedLevel",
	ModifierFixedHalfHP:            "FixedHalfHP",
	ModifierFixedHPDifference:      "FixedHPDifference",
	ModifierFixedAmount:            "FixedAmount",
	ModifierHighCrit:               "HighCrit",
	ModifierAlwaysCrit:             "AlwaysCrit",
	ModifierNeverMiss:              "NeverMiss",
	ModifierSpeedRatio:             "SpeedRatio",
	ModifierHPScaling:              "HPScaling",
	ModifierStatBoostScaling:       "StatBoostScaling",
	ModifierUseTargetAttack:        "UseTargetAttack",
	ModifierTargetPhysicalDefense:  "TargetPhysicalDefense",
	ModifierDoubleIfTargetStatused: "DoubleIfTargetStatused",
	ModifierDoubleIfTargetNotMoved: "DoubleIfTargetNotMoved",
	ModifierConsecutiveScaling:     "ConsecutiveScaling",
}

// EffectInstance is one declared secondary behavior attached to a move. It is
// immutable once loaded; exactly one of the category-specific field groups is
// meaningful, selected by Category.
type EffectInstance struct {
	Name        string         `yaml:"name"`
	Category    EffectCategory `yaml:"category"`
	Trigger     Trigger        `yaml:"trigger"`
	Target      Selector       `yaml:"target"`
	Probability int            `yaml:"probability"` // 1–100

	// EffectStatus
	Status StatusKind `yaml:"status,omitempty"`

	// EffectStatChange
	Stat     Stat `yaml:"stat,omitempty"`
	Stages   int  `yaml:"stages,omitempty"`
	AllStats bool `yaml:"all_stats,omitempty"`

	// EffectHeal
	HealPercent int  `yaml:"heal_percent,omitempty"`
	HealFixed   int  `yaml:"heal_fixed,omitempty"`
	Drain       bool `yaml:"drain,omitempty"`
	CureStatus  bool `yaml:"cure_status,omitempty"`

	// EffectRecoil
	RecoilPercent int `yaml:"recoil_percent,omitempty"`

	// EffectWeather
	Weather WeatherKind `yaml:"weather,omitempty"`

	// EffectField
	Field FieldKind `yaml:"field,omitempty"`

	// EffectDamageModifier
	Modifier ModifierKind `yaml:"modifier,omitempty"`
	Amount   int          `yaml:"amount,omitempty"` // FixedAmount payload

	// EffectOther
	Other OtherKind `yaml:"other,omitempty"`
}

// enum YAML decoding: every enum above is written by name in catalog files.

func decodeEnum[E ~int](value *yaml.Node, names map[E]string, kind string) (E, error) {
	var s string
	if err := value.Decode(&s); err != nil {
		return 0, err
	}
	for v, n := range names {
		if n == s {
			return v, nil
		}
	}
	var zero E
	return zero, fmt.Errorf("content: unknown %s %q", kind, s)
}

// UnmarshalYAML decodes an effect category from its catalog name.
func (c *EffectCategory) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, effectCategoryNames, "effect category")
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// UnmarshalYAML decodes a trigger from its catalog name.
func (t *Trigger) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, triggerNames, "trigger")
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// UnmarshalYAML decodes a selector from its catalog name.
func (s *Selector) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, selectorNames, "selector")
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalYAML decodes a stat from its catalog name.
func (s *Stat) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, statNames, "stat")
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalYAML decodes a status kind from its catalog name.
func (s *StatusKind) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, statusKindNames, "status kind")
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UnmarshalYAML decodes a weather kind from its catalog name.
func (w *WeatherKind) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, weatherNames, "weather kind")
	if err != nil {
		return err
	}
	*w = v
	return nil
}

// UnmarshalYAML decodes a field kind from its catalog name.
func (f *FieldKind) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, fieldNames, "field kind")
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// UnmarshalYAML decodes an other-mechanic kind from its catalog name.
func (o *OtherKind) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, otherNames, "other kind")
	if err != nil {
		return err
	}
	*o = v
	return nil
}

// UnmarshalYAML decodes a damage-modifier kind from its catalog name.
func (m *ModifierKind) UnmarshalYAML(value *yaml.Node) error {
	v, err := decodeEnum(value, modifierNames, "modifier kind")
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// String returns the effect category's catalog name.
func (c EffectCategory) String() string {
	if n, ok := effectCategoryNames[c]; ok {
		return n
	}
	return "Unknown"
}

// String returns the status kind's catalog name.
func (s StatusKind) String() string {
	if n, ok := statusKindNames[s]; ok {
		return n
	}
	return "Unknown"
}

// String returns the other-mechanic kind's catalog name.
func (o OtherKind) String() string {
	if n, ok := otherNames[o]; ok {
		return n
	}
	return "Unknown"
}

// String returns the modifier kind's catalog name.
func (m ModifierKind) String() string {
	if n, ok := modifierNames[m]; ok {
		return n
	}
	return "Unknown"
}
