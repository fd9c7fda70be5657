// Package participant provides the players that decide what to say at each turn.
package participant

import (
	"context"

	"undercover/internal/domain"
)

// Participant produces a textual action from what a player can see so far
type Participant interface {
	Name() string
	Act(ctx context.Context, history []domain.Message, phase domain.Phase) (string, error)
}
