package domain

// Phase represents the current phase of a game
type Phase string

const (
	PhaseDescription Phase = "DESCRIPTION" // Everyone describes their word in turn
	PhaseDiscussion  Phase = "DISCUSSION"  // Everyone comments on the descriptions
	PhaseVoting      Phase = "VOTING"      // Everyone privately names a suspect
	PhaseGuessing    Phase = "GUESSING"    // The voted-out blank guesses the civilian word
)

// String returns the string representation of the phase
func (p Phase) String() string {
	return string(p)
}

// IsPublic returns true if actions in this phase are broadcast to every alive participant
func (p Phase) IsPublic() bool {
	return p == PhaseDescription || p == PhaseDiscussion
}

// Next returns the following phase in the linear round order.
// Voting and Guessing resolve to a branch decided by the game, so they have no linear successor.
func (p Phase) Next() (Phase, bool) {
	switch p {
	case PhaseDescription:
		return PhaseDiscussion, true
	case PhaseDiscussion:
		return PhaseVoting, true
	default:
		return "", false
	}
}

// CanTransitionTo checks if a transition from current phase to target phase is valid
func (p Phase) CanTransitionTo(target Phase) bool {
	validTransitions := map[Phase][]Phase{
		PhaseDescription: {PhaseDiscussion},
		PhaseDiscussion:  {PhaseVoting},
		PhaseVoting:      {PhaseGuessing, PhaseDescription},
		PhaseGuessing:    {PhaseDescription},
	}

	allowed, ok := validTransitions[p]
	if !ok {
		return false
	}

	for _, phase := range allowed {
		if phase == target {
			return true
		}
	}
	return false
}
