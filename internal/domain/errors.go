package domain

import "errors"

// Domain errors
var (
	ErrUnsupportedPartySize = errors.New("unsupported party size")
	ErrInvalidWordPair      = errors.New("word pair needs two distinct non-empty words")
	ErrUnknownParticipant   = errors.New("participant not in game")
	ErrReservedName         = errors.New("name is reserved for the moderator")
	ErrDuplicateName        = errors.New("name already taken")
	ErrNotYourTurn          = errors.New("not your turn to act")
	ErrInvalidPhase         = errors.New("invalid action for current phase")
	ErrInvalidTransition    = errors.New("invalid phase transition")
	ErrGameOver             = errors.New("game is over")
	ErrGameNotOver          = errors.New("game is not over yet")
)
