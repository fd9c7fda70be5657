package domain

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)
)

// NormalizeName trims a free-text name and capitalizes it: first letter upper, the rest lower
func NormalizeName(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s)
	return upper.String(s[:size]) + lower.String(s[size:])
}

// NormalizeWord trims and lower-cases a word for comparison
func NormalizeWord(raw string) string {
	return lower.String(strings.TrimSpace(raw))
}

// Ballot tallies one round of elimination votes
type Ballot struct {
	order  []string          // normalized candidate keys in roster order
	names  map[string]string // normalized key -> roster name
	counts map[string]int
	cast   int
}

// NewBallot creates a ballot with every candidate at zero votes
func NewBallot(candidates []string) *Ballot {
	b := &Ballot{
		order:  make([]string, 0, len(candidates)),
		names:  make(map[string]string, len(candidates)),
		counts: make(map[string]int, len(candidates)),
	}
	for _, name := range candidates {
		key := NormalizeName(name)
		if _, dup := b.names[key]; dup {
			continue
		}
		b.order = append(b.order, key)
		b.names[key] = name
		b.counts[key] = 0
	}
	return b
}

// Submit counts a vote for the named candidate.
// Names that do not match a candidate are dropped and Submit returns false.
func (b *Ballot) Submit(raw string) bool {
	key := NormalizeName(raw)
	if _, ok := b.counts[key]; !ok {
		return false
	}
	b.counts[key]++
	b.cast++
	return true
}

// Resolve returns the candidate with the most votes.
// Ties go to the earliest candidate in roster order. With no counted votes
// the first candidate is returned and ok is false.
func (b *Ballot) Resolve() (name string, ok bool) {
	if len(b.order) == 0 {
		return "", false
	}

	best := b.order[0]
	for _, key := range b.order[1:] {
		if b.counts[key] > b.counts[best] {
			best = key
		}
	}

	return b.names[best], b.cast > 0
}

// Count returns the votes a candidate has received
func (b *Ballot) Count(raw string) int {
	return b.counts[NormalizeName(raw)]
}

// Cast returns the number of counted votes
func (b *Ballot) Cast() int {
	return b.cast
}

// Tally returns the vote count per candidate in roster order
func (b *Ballot) Tally() []VoteResult {
	results := make([]VoteResult, 0, len(b.order))
	for _, key := range b.order {
		results = append(results, VoteResult{
			Name:      b.names[key],
			VoteCount: b.counts[key],
		})
	}
	return results
}

// VoteResult represents the votes one candidate received
type VoteResult struct {
	Name      string `json:"name"`
	VoteCount int    `json:"voteCount"`
}
