package domain

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func TestDefaultRoleTableCompositions(t *testing.T) {
	tests := []struct {
		size int
		want Composition
	}{
		{size: 3, want: Composition{Civilian: 2, Minority: 1, Blank: 0}},
		{size: 4, want: Composition{Civilian: 3, Minority: 1, Blank: 0}},
		{size: 5, want: Composition{Civilian: 3, Minority: 1, Blank: 1}},
		{size: 6, want: Composition{Civilian: 4, Minority: 1, Blank: 1}},
		{size: 7, want: Composition{Civilian: 4, Minority: 2, Blank: 1}},
	}

	table := DefaultRoleTable()
	for _, tt := range tests {
		got, err := table.Composition(tt.size)
		if err != nil {
			t.Fatalf("Composition(%d) error = %v", tt.size, err)
		}
		if got != tt.want {
			t.Fatalf("Composition(%d) = %+v, want %+v", tt.size, got, tt.want)
		}
		if got.Total() != tt.size {
			t.Fatalf("Composition(%d).Total() = %d", tt.size, got.Total())
		}
	}
}

func TestRoleTableRejectsUnsupportedSizes(t *testing.T) {
	for _, size := range []int{0, 1, 2, 8, 12} {
		if _, err := DefaultRoleTable().Composition(size); !errors.Is(err, ErrUnsupportedPartySize) {
			t.Fatalf("Composition(%d) error = %v, want %v", size, err, ErrUnsupportedPartySize)
		}
	}
}

func TestRoleTableOverride(t *testing.T) {
	table := RoleTable{2: {Civilian: 1, Minority: 1}}
	a, err := AssignRoles([]string{"Alice", "Bob"}, table, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatalf("AssignRoles() error = %v", err)
	}
	counts := a.Count([]string{"Alice", "Bob"})
	if counts[RoleCivilian] != 1 || counts[RoleMinority] != 1 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestAssignRolesMatchesComposition(t *testing.T) {
	names := []string{"Alice", "Bob", "Charlie", "David", "Eve", "Frank", "Grace"}
	for size := 3; size <= 7; size++ {
		roster := names[:size]
		a, err := AssignRoles(roster, DefaultRoleTable(), rand.New(rand.NewPCG(uint64(size), 7)))
		if err != nil {
			t.Fatalf("AssignRoles(%d) error = %v", size, err)
		}
		want, _ := DefaultRoleTable().Composition(size)
		counts := a.Count(roster)
		if counts[RoleCivilian] != want.Civilian || counts[RoleMinority] != want.Minority || counts[RoleBlank] != want.Blank {
			t.Fatalf("size %d counts = %v, want %+v", size, counts, want)
		}

		total := 0
		for _, role := range Roles {
			for _, m := range a.Members(role) {
				got, ok := a.RoleOf(m)
				if !ok || got != role {
					t.Fatalf("RoleOf(%q) = %v, %v; want %v", m, got, ok, role)
				}
				total++
			}
		}
		if total != size {
			t.Fatalf("members total = %d, want %d", total, size)
		}
	}
}

func TestAssignRolesIsDeterministicForSeed(t *testing.T) {
	names := []string{"Alice", "Bob", "Charlie", "David", "Eve"}
	first, err := AssignRoles(names, DefaultRoleTable(), rand.New(rand.NewPCG(42, 42)))
	if err != nil {
		t.Fatalf("AssignRoles() error = %v", err)
	}
	second, err := AssignRoles(names, DefaultRoleTable(), rand.New(rand.NewPCG(42, 42)))
	if err != nil {
		t.Fatalf("AssignRoles() error = %v", err)
	}
	for _, name := range names {
		a, _ := first.RoleOf(name)
		b, _ := second.RoleOf(name)
		if a != b {
			t.Fatalf("RoleOf(%q) = %v then %v with the same seed", name, a, b)
		}
	}
}

func TestAssignRolesIsUniform(t *testing.T) {
	names := []string{"Alice", "Bob", "Charlie", "David", "Eve"}
	const trials = 10000
	rng := rand.New(rand.NewPCG(2024, 10))

	counts := make(map[string]map[Role]int, len(names))
	for _, name := range names {
		counts[name] = make(map[Role]int)
	}
	for i := 0; i < trials; i++ {
		a, err := AssignRoles(names, DefaultRoleTable(), rng)
		if err != nil {
			t.Fatalf("AssignRoles() error = %v", err)
		}
		for _, name := range names {
			role, _ := a.RoleOf(name)
			counts[name][role]++
		}
	}

	expected := map[Role]float64{RoleCivilian: 0.6, RoleMinority: 0.2, RoleBlank: 0.2}
	for _, name := range names {
		for role, p := range expected {
			got := float64(counts[name][role]) / trials
			if got < p-0.03 || got > p+0.03 {
				t.Fatalf("%s held %s with frequency %.3f, want about %.2f", name, role, got, p)
			}
		}
	}
}
