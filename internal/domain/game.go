package domain

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// WordPair holds the two related secret words of a game
type WordPair struct {
	Civilian string `json:"civilian" yaml:"civilian"`
	Minority string `json:"minority" yaml:"minority"`
}

// Validate checks that both words are present and differ
func (w WordPair) Validate() error {
	civilian := NormalizeWord(w.Civilian)
	minority := NormalizeWord(w.Minority)
	if civilian == "" || minority == "" || civilian == minority {
		return ErrInvalidWordPair
	}
	return nil
}

// WordFor returns the secret word held by a role, empty for the blank role
func (w WordPair) WordFor(role Role) string {
	switch role {
	case RoleCivilian:
		return w.Civilian
	case RoleMinority:
		return w.Minority
	default:
		return ""
	}
}

// GameOptions overrides the defaults of a new game
type GameOptions struct {
	RoleTable RoleTable  // Defaults to DefaultRoleTable
	Rand      *rand.Rand // Source used to shuffle roles; random when nil
}

// Game is the orchestrator of one Undercover match.
// It is not safe for concurrent use; callers drive it one step at a time.
type Game struct {
	roster     []string
	alive      []string
	words      WordPair
	table      RoleTable
	rng        *rand.Rand
	assignment *Assignment
	ledger     *Ledger
	ballot     *Ballot

	phase    Phase
	round    int
	turn     int    // Index in alive of the next actor
	pending  string // Actor handed out by NextActor and not yet stepped
	guesser  string
	outcome  Outcome
	terminal bool
}

// ValidateRoster rejects the moderator's name and names that collide once normalized.
// Ballots key candidates by normalized name, so "alice" and "Alice" cannot share a game.
func ValidateRoster(names []string) error {
	reserved := NormalizeName(ModeratorName)
	seen := make(map[string]string, len(names))
	for _, name := range names {
		key := NormalizeName(name)
		if key == reserved {
			return fmt.Errorf("%w: %q", ErrReservedName, name)
		}
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("%w: %q and %q", ErrDuplicateName, prev, name)
		}
		seen[key] = name
	}
	return nil
}

// NewGame creates a game for the given ordered roster and deals roles
func NewGame(names []string, words WordPair, opts GameOptions) (*Game, error) {
	if opts.RoleTable == nil {
		opts.RoleTable = DefaultRoleTable()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	if _, err := opts.RoleTable.Composition(len(names)); err != nil {
		return nil, err
	}
	if err := ValidateRoster(names); err != nil {
		return nil, err
	}
	if err := words.Validate(); err != nil {
		return nil, err
	}

	roster := make([]string, len(names))
	copy(roster, names)

	g := &Game{
		roster: roster,
		words:  words,
		table:  opts.RoleTable,
		rng:    opts.Rand,
	}
	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// Reset deals new roles, clears the ledger and ballot and starts over in the description phase
func (g *Game) Reset() error {
	alive := make([]string, len(g.roster))
	copy(alive, g.roster)

	assignment, err := AssignRoles(alive, g.table, g.rng)
	if err != nil {
		return err
	}

	g.alive = alive
	g.assignment = assignment
	g.ledger = NewLedger()
	g.ballot = NewBallot(alive)
	g.phase = PhaseDescription
	g.round = 1
	g.turn = 0
	g.pending = ""
	g.guesser = ""
	g.outcome = Outcome{}
	g.terminal = false

	g.announce(rulesAnnouncement, g.alive...)
	for _, name := range g.alive {
		role, _ := g.assignment.RoleOf(name)
		g.announce(wordNotice(role, g.words.WordFor(role)), name)
	}
	g.announce(phaseAnnouncement(g.phase, g.round, g.alive), g.alive...)

	return nil
}

// NextActor returns the participant who must act next.
// Outside guessing it hands out the alive roster round-robin; while guessing it is
// always the voted-out blank. Asking again before Step returns the same actor.
func (g *Game) NextActor() (string, error) {
	if g.terminal {
		return "", ErrGameOver
	}
	if g.pending != "" {
		return g.pending, nil
	}

	if g.phase == PhaseGuessing {
		g.pending = g.guesser
		return g.pending, nil
	}

	g.pending = g.alive[g.turn]
	g.turn = (g.turn + 1) % len(g.alive)
	return g.pending, nil
}

// Step consumes the action of the actor last returned by NextActor
func (g *Game) Step(actor, action string) ([]*GameEvent, error) {
	if g.terminal {
		return nil, ErrGameOver
	}
	if g.pending == "" || actor != g.pending {
		return nil, fmt.Errorf("%w: expected %q, got %q", ErrNotYourTurn, g.pending, actor)
	}
	g.pending = ""

	var events []*GameEvent
	var err error

	switch {
	case g.phase.IsPublic():
		g.ledger.Record(actor, action, g.alive)
		events = append(events, NewEvent(EventMessageRecorded, actor, nil))
		if g.turn == 0 {
			next, _ := g.phase.Next()
			events, err = g.advance(events, next)
		}
	case g.phase == PhaseVoting:
		g.ledger.Record(actor, action, []string{actor})
		if g.ballot.Submit(action) {
			events = append(events, NewEvent(EventVoteCast, actor, nil))
		} else {
			events = append(events, NewEvent(EventVoteIgnored, actor, nil))
		}
		if g.turn == 0 {
			events, err = g.resolveVote(events)
		}
	case g.phase == PhaseGuessing:
		g.ledger.Record(actor, action, []string{actor})
		events, err = g.resolveGuess(events, actor, action)
	default:
		return nil, fmt.Errorf("%w: %s", ErrInvalidPhase, g.phase)
	}

	return events, err
}

// resolveVote tallies the ballot and eliminates its target
func (g *Game) resolveVote(events []*GameEvent) ([]*GameEvent, error) {
	target, consensus := g.ballot.Resolve()
	role, _ := g.assignment.RoleOf(target)

	events = append(events, NewEvent(EventVoteResolved, target, &VoteResolvedPayload{
		Target:    target,
		Role:      role,
		Votes:     g.ballot.Tally(),
		Consensus: consensus,
	}))

	if role == RoleBlank {
		g.guesser = target
		return g.advance(events, PhaseGuessing)
	}

	g.announce(eliminationAnnouncement(target), g.alive...)
	events = g.eliminate(events, target)
	return g.endRound(events)
}

// resolveGuess checks the blank's guess against the civilian word
func (g *Game) resolveGuess(events []*GameEvent, actor, guess string) ([]*GameEvent, error) {
	correct := NormalizeWord(guess) == NormalizeWord(g.words.Civilian)
	events = append(events, NewEvent(EventGuessMade, actor, &GuessPayload{
		Guess:   guess,
		Correct: correct,
	}))
	g.guesser = ""

	if correct {
		g.announce(correctGuessAnnouncement(actor), g.alive...)
		return g.finish(events, Outcome{Blank: true}), nil
	}

	g.announce(wrongGuessAnnouncement(actor), g.alive...)
	g.announce(eliminationAnnouncement(actor), g.alive...)
	events = g.eliminate(events, actor)
	return g.endRound(events)
}

// endRound either finishes the game or starts the next description round
func (g *Game) endRound(events []*GameEvent) ([]*GameEvent, error) {
	outcome := EvaluateOutcome(g.assignment.Count(g.alive))
	if outcome.Terminal() {
		return g.finish(events, outcome), nil
	}

	g.announce(continueAnnouncement, g.alive...)
	g.ballot = NewBallot(g.alive)
	g.turn = 0
	g.round++
	return g.advance(events, PhaseDescription)
}

// eliminate removes a participant from the alive roster, keeping its role
func (g *Game) eliminate(events []*GameEvent, name string) []*GameEvent {
	alive := make([]string, 0, len(g.alive))
	for _, n := range g.alive {
		if n != name {
			alive = append(alive, n)
		}
	}
	g.alive = alive
	if g.turn >= len(g.alive) {
		g.turn = 0
	}

	role, _ := g.assignment.RoleOf(name)
	return append(events, NewEvent(EventParticipantOut, name, &EliminatedPayload{
		Role:  role,
		Alive: g.Alive(),
	}))
}

// finish marks the game terminal and announces the winners
func (g *Game) finish(events []*GameEvent, outcome Outcome) []*GameEvent {
	g.outcome = outcome
	g.terminal = true
	g.announce(g.winnerAnnouncement(), g.alive...)
	return append(events, NewEvent(EventGameEnded, "", &GameEndedPayload{
		Winners: outcome.Winners(),
	}))
}

// advance moves to the target phase and posts its instructions
func (g *Game) advance(events []*GameEvent, to Phase) ([]*GameEvent, error) {
	from := g.phase
	if !from.CanTransitionTo(to) {
		return events, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	g.phase = to

	if to == PhaseGuessing {
		g.announce(guessingPrompt, g.guesser)
	} else {
		g.announce(phaseAnnouncement(to, g.round, g.alive), g.alive...)
	}

	return append(events, NewEvent(EventPhaseChanged, "", &PhaseChangedPayload{
		From:  from,
		To:    to,
		Round: g.round,
	})), nil
}

// announce records a moderator message for the given recipients
func (g *Game) announce(content string, recipients ...string) {
	g.ledger.Record(ModeratorName, content, recipients)
}

// winnerAnnouncement names the winning factions and their members.
// It must only be called on a terminal outcome.
func (g *Game) winnerAnnouncement() string {
	winners := g.outcome.Winners()
	if len(winners) == 0 {
		panic("undercover: winner announcement requested for a game without winners")
	}

	factions := make([]string, 0, len(winners))
	members := make([]string, 0, len(g.roster))
	for _, role := range winners {
		factions = append(factions, factionName(role))
		members = append(members, g.assignment.Members(role)...)
	}

	return fmt.Sprintf("Game over: victory for %s (%s).", strings.Join(factions, " and "), strings.Join(members, ", "))
}

// Phase returns the active phase
func (g *Game) Phase() Phase {
	return g.phase
}

// Round returns the 1-based description round number
func (g *Game) Round() int {
	return g.round
}

// Terminal returns true once a faction has won
func (g *Game) Terminal() bool {
	return g.terminal
}

// Outcome returns the per-faction result; it is all false until the game ends
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Winners returns the winning roles of a finished game
func (g *Game) Winners() ([]Role, error) {
	if !g.terminal {
		return nil, ErrGameNotOver
	}
	return g.outcome.Winners(), nil
}

// Roster returns the initial participant list
func (g *Game) Roster() []string {
	out := make([]string, len(g.roster))
	copy(out, g.roster)
	return out
}

// Alive returns the participants still in play, in turn order
func (g *Game) Alive() []string {
	out := make([]string, len(g.alive))
	copy(out, g.alive)
	return out
}

// IsAlive reports whether a participant is still in play
func (g *Game) IsAlive(name string) bool {
	for _, n := range g.alive {
		if n == name {
			return true
		}
	}
	return false
}

// RoleOf returns the role dealt to a participant, alive or not
func (g *Game) RoleOf(name string) (Role, error) {
	role, ok := g.assignment.RoleOf(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownParticipant, name)
	}
	return role, nil
}

// Members returns every participant dealt the given role, in roster order
func (g *Game) Members(role Role) []string {
	return g.assignment.Members(role)
}

// Words returns the secret word pair
func (g *Game) Words() WordPair {
	return g.words
}

// History returns the messages visible to a participant; an empty name returns all of them
func (g *Game) History(name string) []Message {
	return g.ledger.History(name)
}
