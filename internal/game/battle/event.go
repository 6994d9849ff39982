package battle

import "fmt"

// EventKind classifies a battle log event.
type EventKind int

const (
	EventTurnStart EventKind = iota
	EventMoveUsed
	EventMoveMissed
	EventMoveFailed
	EventDamage
	EventHeal
	EventStatus
	EventStatChange
	EventVolatile
	EventWeather
	EventField
	EventSwitch
	EventFaint
	EventForfeit
	EventBattleEnd
	EventInfo
)

// Event is one entry in a turn's battle log: a structured kind plus the
// narration shown to players.
type Event struct {
	Kind      EventKind
	Narrative string
}

// TurnResult reports everything that happened during one executed turn.
type TurnResult struct {
	Turn   int
	Events []Event

	// Fainted lists the combatants that went down this turn, in faint order.
	Fainted []string

	Finished bool
	Winner   SideID

	// Draw is set when both sides were wiped out on the same turn; Winner
	// is meaningless when it is.
	Draw bool

	// AwaitingReplacement flags sides that must switch in a replacement
	// before the next turn may run.
	AwaitingReplacement [2]bool
}

// eventLog accumulates events during turn execution.
type eventLog struct {
	events []Event
}

func (l *eventLog) add(kind EventKind, narrative string) {
	l.events = append(l.events, Event{Kind: kind, Narrative: narrative})
}

func (l *eventLog) addf(kind EventKind, format string, args ...any) {
	l.add(kind, fmt.Sprintf(format, args...))
}
