package domain

import "time"

// EventType represents the type of game event
type EventType string

const (
	EventMessageRecorded EventType = "MESSAGE_RECORDED"
	EventVoteCast        EventType = "VOTE_CAST"
	EventVoteIgnored     EventType = "VOTE_IGNORED"
	EventPhaseChanged    EventType = "PHASE_CHANGED"
	EventVoteResolved    EventType = "VOTE_RESOLVED"
	EventParticipantOut  EventType = "PARTICIPANT_ELIMINATED"
	EventGuessMade       EventType = "GUESS_MADE"
	EventGameEnded       EventType = "GAME_ENDED"
)

// GameEvent represents something that happened while the game handled a step
type GameEvent struct {
	Type      EventType   `json:"type"`
	Actor     string      `json:"actor,omitempty"` // Participant the event is about
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates a new game event
func NewEvent(eventType EventType, actor string, payload interface{}) *GameEvent {
	return &GameEvent{
		Type:      eventType,
		Actor:     actor,
		Payload:   payload,
		Timestamp: time.Now(),
	}
}

// Payload types for different events

// PhaseChangedPayload is attached when the game moves to another phase
type PhaseChangedPayload struct {
	From  Phase `json:"from"`
	To    Phase `json:"to"`
	Round int   `json:"round"`
}

// VoteResolvedPayload is attached when a voting round is tallied
type VoteResolvedPayload struct {
	Target    string       `json:"target"`
	Role      Role         `json:"role"`
	Votes     []VoteResult `json:"votes"`
	Consensus bool         `json:"consensus"` // false when no vote matched a candidate
}

// EliminatedPayload is attached when a participant leaves the alive roster
type EliminatedPayload struct {
	Role  Role     `json:"role"`
	Alive []string `json:"alive"`
}

// GuessPayload is attached when the blank participant guesses
type GuessPayload struct {
	Guess   string `json:"guess"`
	Correct bool   `json:"correct"`
}

// GameEndedPayload is attached when a faction wins
type GameEndedPayload struct {
	Winners []Role `json:"winners"`
}
