package participant

import (
	"context"
	"sync"

	"undercover/internal/domain"
)

// DefaultFallback is said by a scripted participant that has run out of lines
const DefaultFallback = "I have nothing to say."

// Scripted replays fixed lines per phase, in order.
// It is the deterministic stand-in for a real player in tests and dry runs.
type Scripted struct {
	name     string
	mu       sync.Mutex
	lines    map[domain.Phase][]string
	fallback string
	seen     []int // history length observed on each call
}

// NewScripted creates a scripted participant with no lines
func NewScripted(name string) *Scripted {
	return &Scripted{
		name:     name,
		lines:    make(map[domain.Phase][]string),
		fallback: DefaultFallback,
	}
}

// Say queues lines to be returned, one per call, while the game is in the given phase
func (s *Scripted) Say(phase domain.Phase, lines ...string) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines[phase] = append(s.lines[phase], lines...)
	return s
}

// WithFallback sets the line used once a phase's queue is empty
func (s *Scripted) WithFallback(line string) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fallback = line
	return s
}

// Name returns the participant name
func (s *Scripted) Name() string {
	return s.name
}

// Act pops the next line queued for the phase
func (s *Scripted) Act(ctx context.Context, history []domain.Message, phase domain.Phase) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seen = append(s.seen, len(history))

	queue := s.lines[phase]
	if len(queue) == 0 {
		return s.fallback, nil
	}
	s.lines[phase] = queue[1:]
	return queue[0], nil
}

// Calls returns how many times Act was called
func (s *Scripted) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// HistorySizes returns the history length passed to each Act call
func (s *Scripted) HistorySizes() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]int, len(s.seen))
	copy(out, s.seen)
	return out
}
