// Package condition tracks the major status and volatile conditions applied
// to one combatant, and runs their end-of-turn ticks in a fixed order. A
// combatant holds at most one major status; volatiles stack freely alongside
// it and clear when the combatant leaves the field.
package condition

import "fmt"

// Status is a major status condition. A combatant carries at most one.
type Status int

const (
	StatusNone Status = iota
	StatusBurn
	StatusParalysis
	StatusPoison
	StatusBadlyPoison
	StatusSleep
	StatusFreeze
)

var statusNames = map[Status]string{
	StatusNone:        "None",
	StatusBurn:        "Burn",
	StatusParalysis:   "Paralysis",
	StatusPoison:      "Poison",
	StatusBadlyPoison: "BadlyPoison",
	StatusSleep:       "Sleep",
	StatusFreeze:      "Freeze",
}

// String returns the status' display name.
func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "Unknown"
}

// ErrAlreadyStatused is returned when a major status is applied over an
// existing one. The existing status is kept.
var ErrAlreadyStatused = fmt.Errorf("condition: combatant already has a major status")
