package condition

// TickKind identifies one end-of-turn tick event.
type TickKind int

const (
	TickIngrainHeal TickKind = iota
	TickAquaRingHeal
	TickLeechSeed
	TickBurn
	TickPoison
	TickToxic
	TickCurse
	TickTrap
	TickVolatileExpired
)

// TickEvent is one end-of-turn occurrence produced by Set.Tick. Damage and
// Heal are amounts for the owning combatant; the caller applies them and
// handles cross-combatant transfers such as leech seed drain.
type TickEvent struct {
	Kind    TickKind
	Damage  int
	Heal    int
	Expired Volatile // set for TickVolatileExpired
}

// Set is the status and volatile state of one combatant. It is not safe for
// concurrent use; the engine serialises access per battle.
type Set struct {
	status     Status
	sleepTurns int
	toxicTurns int

	volatiles map[Volatile]int // remaining turns, Indefinite for no countdown
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{volatiles: make(map[Volatile]int)}
}

// Status returns the current major status.
func (s *Set) Status() Status {
	return s.status
}

// ApplyStatus sets the major status. Sleep requires the turn count the caller
// drew; other statuses ignore sleepTurns.
//
// Precondition: st != StatusNone; for StatusSleep, sleepTurns >= 1.
// Postcondition: On success Status() == st. Returns ErrAlreadyStatused, with
// the existing status kept, when a major status is already present.
func (s *Set) ApplyStatus(st Status, sleepTurns int) error {
	if s.status != StatusNone {
		return ErrAlreadyStatused
	}
	s.status = st
	switch st {
	case StatusSleep:
		s.sleepTurns = sleepTurns
	case StatusBadlyPoison:
		s.toxicTurns = 0
	}
	return nil
}

// CureStatus clears the major status and its counters.
//
// Postcondition: Status() == StatusNone.
func (s *Set) CureStatus() {
	s.status = StatusNone
	s.sleepTurns = 0
	s.toxicTurns = 0
}

// SleepTurns returns the remaining sleep turns.
func (s *Set) SleepTurns() int {
	return s.sleepTurns
}

// DecrementSleep consumes one sleep turn, waking the combatant when the
// counter reaches zero.
//
// Precondition: Status() == StatusSleep.
// Postcondition: Returns true if the combatant woke up.
func (s *Set) DecrementSleep() bool {
	if s.sleepTurns > 0 {
		s.sleepTurns--
	}
	if s.sleepTurns == 0 {
		s.CureStatus()
		return true
	}
	return false
}

// ApplyVolatile adds a volatile with the given remaining turns, or Indefinite
// for no countdown. Re-applying refreshes the countdown; it never stacks.
func (s *Set) ApplyVolatile(v Volatile, turns int) {
	s.volatiles[v] = turns
}

// HasVolatile reports whether v is active.
func (s *Set) HasVolatile(v Volatile) bool {
	_, ok := s.volatiles[v]
	return ok
}

// VolatileTurns returns the remaining turns for v, or 0 when absent.
// Indefinite volatiles report Indefinite.
func (s *Set) VolatileTurns(v Volatile) int {
	if t, ok := s.volatiles[v]; ok {
		return t
	}
	return 0
}

// ClearVolatile removes v. Absent volatiles are a no-op.
func (s *Set) ClearVolatile(v Volatile) {
	delete(s.volatiles, v)
}

// DecrementVolatile consumes one turn of v, clearing it at zero.
//
// Postcondition: Returns true if v expired and was removed.
func (s *Set) DecrementVolatile(v Volatile) bool {
	t, ok := s.volatiles[v]
	if !ok || t == Indefinite {
		return false
	}
	t--
	if t <= 0 {
		delete(s.volatiles, v)
		return true
	}
	s.volatiles[v] = t
	return false
}

// ResetVolatiles clears every volatile and resets the toxic counter to a
// fresh escalation, as happens when the combatant leaves the field. Badly
// poisoned combatants stay badly poisoned; the counter restarts.
func (s *Set) ResetVolatiles() {
	s.volatiles = make(map[Volatile]int)
	if s.status == StatusBadlyPoison {
		s.toxicTurns = 0
	}
}

// portion returns maxHP/den floored, with a minimum of 1.
func portion(maxHP, den int) int {
	v := maxHP / den
	if v < 1 {
		return 1
	}
	return v
}

// tickedVolatiles is the fixed countdown order for expiring volatiles during
// Tick. Map iteration order is not deterministic; this list is.
var tickedVolatiles = []Volatile{
	VolatileTaunt,
	VolatileEncore,
	VolatileDisable,
	VolatileEmbargo,
	VolatileHealBlock,
	VolatileYawn,
	VolatileTrap,
}

// Tick runs the end-of-turn residual effects for a combatant with the given
// maximum HP and returns the resulting events in their fixed order: major
// status damage (burn, poison, or toxic) first, then trap, curse, aqua ring
// heal, ingrain heal, leech seed drain, then volatile countdowns. Trap damage
// lands before the trap countdown, so a trap expiring this turn still deals
// its final tick.
//
// Postcondition: The toxic counter advances by one when badly poisoned; each
// counted volatile loses one turn and emits TickVolatileExpired at zero.
func (s *Set) Tick(maxHP int) []TickEvent {
	var events []TickEvent

	switch s.status {
	case StatusBurn:
		events = append(events, TickEvent{Kind: TickBurn, Damage: portion(maxHP, 16)})
	case StatusPoison:
		events = append(events, TickEvent{Kind: TickPoison, Damage: portion(maxHP, 8)})
	case StatusBadlyPoison:
		s.toxicTurns++
		dmg := maxHP * s.toxicTurns / 16
		if dmg < 1 {
			dmg = 1
		}
		events = append(events, TickEvent{Kind: TickToxic, Damage: dmg})
	}

	if s.HasVolatile(VolatileTrap) {
		events = append(events, TickEvent{Kind: TickTrap, Damage: portion(maxHP, 16)})
	}
	if s.HasVolatile(VolatileCurse) {
		events = append(events, TickEvent{Kind: TickCurse, Damage: portion(maxHP, 4)})
	}
	if s.HasVolatile(VolatileAquaRing) {
		events = append(events, TickEvent{Kind: TickAquaRingHeal, Heal: portion(maxHP, 16)})
	}
	if s.HasVolatile(VolatileIngrain) {
		events = append(events, TickEvent{Kind: TickIngrainHeal, Heal: portion(maxHP, 16)})
	}
	if s.HasVolatile(VolatileLeechSeed) {
		events = append(events, TickEvent{Kind: TickLeechSeed, Damage: portion(maxHP, 8)})
	}

	for _, v := range tickedVolatiles {
		t, ok := s.volatiles[v]
		if !ok || t == Indefinite {
			continue
		}
		t--
		if t <= 0 {
			delete(s.volatiles, v)
			events = append(events, TickEvent{Kind: TickVolatileExpired, Expired: v})
			continue
		}
		s.volatiles[v] = t
	}

	return events
}
