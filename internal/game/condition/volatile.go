package condition

// Volatile is a transient condition that coexists with the major status and
// clears when the combatant leaves the field.
type Volatile int

const (
	VolatileConfusion Volatile = iota
	VolatileFlinch
	VolatileProtect
	VolatileRecharge
	VolatileTrap
	VolatileLeechSeed
	VolatileTaunt
	VolatileEncore
	VolatileDisable
	VolatileTorment
	VolatileEmbargo
	VolatileHealBlock
	VolatileYawn
	VolatileCurse
	VolatileIngrain
	VolatileAquaRing
	VolatileFocusEnergy
	VolatileLockOn
	VolatilePreventEscape
	VolatileSubstitute
)

var volatileNames = map[Volatile]string{
	VolatileConfusion:     "Confusion",
	VolatileFlinch:        "Flinch",
	VolatileProtect:       "Protect",
	VolatileRecharge:      "Recharge",
	VolatileTrap:          "Trap",
	VolatileLeechSeed:     "LeechSeed",
	VolatileTaunt:         "Taunt",
	VolatileEncore:        "Encore",
	VolatileDisable:       "Disable",
	VolatileTorment:       "Torment",
	VolatileEmbargo:       "Embargo",
	VolatileHealBlock:     "HealBlock",
	VolatileYawn:          "Yawn",
	VolatileCurse:         "Curse",
	VolatileIngrain:       "Ingrain",
	VolatileAquaRing:      "AquaRing",
	VolatileFocusEnergy:   "FocusEnergy",
	VolatileLockOn:        "LockOn",
	VolatilePreventEscape: "PreventEscape",
	VolatileSubstitute:    "Substitute",
}

// String returns the volatile's display name.
func (v Volatile) String() string {
	if n, ok := volatileNames[v]; ok {
		return n
	}
	return "Unknown"
}

// Indefinite marks a volatile with no turn countdown; it lasts until cured or
// until the combatant leaves the field.
const Indefinite = -1
