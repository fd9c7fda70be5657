package domain

// Outcome records which factions have won
type Outcome struct {
	Civilian bool `json:"civilian"`
	Minority bool `json:"minority"`
	Blank    bool `json:"blank"`
}

// EvaluateOutcome applies the win table to the alive count of each role
func EvaluateOutcome(alive map[Role]int) Outcome {
	civilians := alive[RoleCivilian]
	minority := alive[RoleMinority]
	blank := alive[RoleBlank]

	switch {
	case minority+blank == 0:
		return Outcome{Civilian: true}
	case civilians <= 1:
		return Outcome{Minority: minority > 0, Blank: blank > 0}
	default:
		return Outcome{}
	}
}

// Terminal returns true once any faction has won
func (o Outcome) Terminal() bool {
	return o.Civilian || o.Minority || o.Blank
}

// Winners returns the winning roles in evaluation order
func (o Outcome) Winners() []Role {
	winners := make([]Role, 0, len(Roles))
	if o.Civilian {
		winners = append(winners, RoleCivilian)
	}
	if o.Minority {
		winners = append(winners, RoleMinority)
	}
	if o.Blank {
		winners = append(winners, RoleBlank)
	}
	return winners
}
