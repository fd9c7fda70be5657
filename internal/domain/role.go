package domain

import (
	"fmt"
	"math/rand/v2"
)

// Role represents a participant's faction for the whole game
type Role string

const (
	RoleCivilian Role = "CIVILIAN"   // Holds the majority word
	RoleMinority Role = "UNDERCOVER" // Holds the related minority word
	RoleBlank    Role = "MR_WHITE"   // Holds no word
)

// Roles lists every role in evaluation order
var Roles = []Role{RoleCivilian, RoleMinority, RoleBlank}

// String returns the string representation of the role
func (r Role) String() string {
	return string(r)
}

// Composition holds how many participants receive each role
type Composition struct {
	Civilian int
	Minority int
	Blank    int
}

// Total returns the party size the composition covers
func (c Composition) Total() int {
	return c.Civilian + c.Minority + c.Blank
}

// RoleTable maps a party size to its role composition
type RoleTable map[int]Composition

// DefaultRoleTable is the composition used for every supported party size
func DefaultRoleTable() RoleTable {
	return RoleTable{
		3: {Civilian: 2, Minority: 1, Blank: 0},
		4: {Civilian: 3, Minority: 1, Blank: 0},
		5: {Civilian: 3, Minority: 1, Blank: 1},
		6: {Civilian: 4, Minority: 1, Blank: 1},
		7: {Civilian: 4, Minority: 2, Blank: 1},
	}
}

// Composition returns the role counts for a party of the given size
func (t RoleTable) Composition(size int) (Composition, error) {
	c, ok := t[size]
	if !ok || c.Total() != size {
		return Composition{}, fmt.Errorf("%w: %d", ErrUnsupportedPartySize, size)
	}
	return c, nil
}

// Assignment is the fixed participant -> role mapping of one game
type Assignment struct {
	byName map[string]Role
	byRole map[Role][]string
}

// AssignRoles shuffles the composition for len(names) and zips it against names in order
func AssignRoles(names []string, table RoleTable, rng *rand.Rand) (*Assignment, error) {
	comp, err := table.Composition(len(names))
	if err != nil {
		return nil, err
	}

	roles := make([]Role, 0, comp.Total())
	for i := 0; i < comp.Civilian; i++ {
		roles = append(roles, RoleCivilian)
	}
	for i := 0; i < comp.Minority; i++ {
		roles = append(roles, RoleMinority)
	}
	for i := 0; i < comp.Blank; i++ {
		roles = append(roles, RoleBlank)
	}

	rng.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})

	a := &Assignment{
		byName: make(map[string]Role, len(names)),
		byRole: make(map[Role][]string, len(Roles)),
	}
	for i, name := range names {
		a.byName[name] = roles[i]
		a.byRole[roles[i]] = append(a.byRole[roles[i]], name)
	}

	return a, nil
}

// RoleOf returns the role held by a participant
func (a *Assignment) RoleOf(name string) (Role, bool) {
	role, ok := a.byName[name]
	return role, ok
}

// Members returns the participants holding a role, in roster order
func (a *Assignment) Members(role Role) []string {
	members := a.byRole[role]
	out := make([]string, len(members))
	copy(out, members)
	return out
}

// Count returns how many of the given names hold each role
func (a *Assignment) Count(names []string) map[Role]int {
	counts := make(map[Role]int, len(Roles))
	for _, name := range names {
		if role, ok := a.byName[name]; ok {
			counts[role]++
		}
	}
	return counts
}
