// Package event lets formation runs report progress without depending on
// whoever is listening. The engine, the file watcher and the CLI's progress
// output communicate through a [Bus].
//
// Event types follow the pattern "category.action":
//   - formation.phase, formation.completed, formation.failed
//   - placement.rerouted, placement.failed
//   - roster.changed
package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a "category.action" identifier.
	EventType() string
	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypePhaseCompleted     = "formation.phase"
	TypeFormationCompleted = "formation.completed"
	TypeFormationFailed    = "formation.failed"
	TypePlacementRerouted  = "placement.rerouted"
	TypePlacementFailed    = "placement.failed"
	TypeRosterChanged      = "roster.changed"
)

type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

func newBaseEvent(eventType string) baseEvent {
	return baseEvent{eventType: eventType, timestamp: time.Now()}
}

// PhaseCompletedEvent is emitted after each phase of a formation pass.
type PhaseCompletedEvent struct {
	baseEvent
	RunID string
	Phase string
	Teams int // Accumulators (or completed teams after finalize)
	Pool  int // Unassigned pool size at the end of the phase
}

// NewPhaseCompletedEvent creates a PhaseCompletedEvent.
func NewPhaseCompletedEvent(runID, phase string, teams, pool int) PhaseCompletedEvent {
	return PhaseCompletedEvent{
		baseEvent: newBaseEvent(TypePhaseCompleted),
		RunID:     runID,
		Phase:     phase,
		Teams:     teams,
		Pool:      pool,
	}
}

// FormationCompletedEvent is emitted when a primary or leftover pass returns
// without error, including passes that formed no team.
type FormationCompletedEvent struct {
	baseEvent
	RunID      string
	Pass       string // "primary" or "leftover"
	Teams      int
	Unassigned int
	Skipped    string // Why no formation was attempted, if it wasn't
}

// NewFormationCompletedEvent creates a FormationCompletedEvent.
func NewFormationCompletedEvent(runID, pass string, teams, unassigned int, skipped string) FormationCompletedEvent {
	return FormationCompletedEvent{
		baseEvent:  newBaseEvent(TypeFormationCompleted),
		RunID:      runID,
		Pass:       pass,
		Teams:      teams,
		Unassigned: unassigned,
		Skipped:    skipped,
	}
}

// FormationFailedEvent is emitted when a pass aborts with a formation error.
type FormationFailedEvent struct {
	baseEvent
	RunID string
	Stage string
	Err   error
}

// NewFormationFailedEvent creates a FormationFailedEvent.
func NewFormationFailedEvent(runID, stage string, err error) FormationFailedEvent {
	return FormationFailedEvent{
		baseEvent: newBaseEvent(TypeFormationFailed),
		RunID:     runID,
		Stage:     stage,
		Err:       err,
	}
}

// PlacementReroutedEvent is emitted when a candidate's chosen team became
// ineligible before the append and the candidate went to the pool.
type PlacementReroutedEvent struct {
	baseEvent
	RunID         string
	ParticipantID string
	Team          int // Accumulator ordinal
	Reason        string
}

// NewPlacementReroutedEvent creates a PlacementReroutedEvent.
func NewPlacementReroutedEvent(runID, participantID string, team int, reason string) PlacementReroutedEvent {
	return PlacementReroutedEvent{
		baseEvent:     newBaseEvent(TypePlacementRerouted),
		RunID:         runID,
		ParticipantID: participantID,
		Team:          team,
		Reason:        reason,
	}
}

// PlacementFailedEvent is emitted when placing a single candidate faulted.
// The candidate went to the pool and the pass carried on.
type PlacementFailedEvent struct {
	baseEvent
	RunID         string
	ParticipantID string
	Phase         string
	Err           error
}

// NewPlacementFailedEvent creates a PlacementFailedEvent.
func NewPlacementFailedEvent(runID, participantID, phase string, err error) PlacementFailedEvent {
	return PlacementFailedEvent{
		baseEvent:     newBaseEvent(TypePlacementFailed),
		RunID:         runID,
		ParticipantID: participantID,
		Phase:         phase,
		Err:           err,
	}
}

// RosterChangedEvent is emitted when a watched participant file changes.
type RosterChangedEvent struct {
	baseEvent
	Path string
}

// NewRosterChangedEvent creates a RosterChangedEvent.
func NewRosterChangedEvent(path string) RosterChangedEvent {
	return RosterChangedEvent{
		baseEvent: newBaseEvent(TypeRosterChanged),
		Path:      path,
	}
}
