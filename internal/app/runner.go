package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"

	"undercover/internal/domain"
	"undercover/internal/participant"
	"undercover/internal/transcript"
)

const (
	// DefaultMaxSteps bounds a match so a game that never ends still stops
	DefaultMaxSteps = 65

	// DefaultActRetries is how many times a failing participant is asked again
	DefaultActRetries = 3
)

// RunnerOptions configures a match runner
type RunnerOptions struct {
	MaxSteps      int             // 0 uses DefaultMaxSteps, negative means unbounded
	StepDelay     time.Duration   // Pause between steps
	TranscriptDir string          // Empty disables the transcript export
	ActRetries    uint            // 0 uses DefaultActRetries
	RetryBackOff  backoff.BackOff // Defaults to exponential backoff
}

// Result summarizes a finished run
type Result struct {
	MatchID        string
	Steps          int
	Terminal       bool
	Winners        []domain.Role
	TranscriptPath string
}

// Runner drives a game by asking each participant for its action in turn
type Runner struct {
	matchID string
	game    *domain.Game
	players map[string]participant.Participant
	opts    RunnerOptions
	logger  *slog.Logger
}

// NewRunner creates a runner; every participant in the game roster needs a player
func NewRunner(game *domain.Game, players []participant.Participant, opts RunnerOptions, logger *slog.Logger) (*Runner, error) {
	byName := make(map[string]participant.Participant, len(players))
	for _, p := range players {
		byName[p.Name()] = p
	}
	for _, name := range game.Roster() {
		if _, ok := byName[name]; !ok {
			return nil, fmt.Errorf("no player for %q: %w", name, domain.ErrUnknownParticipant)
		}
	}

	if opts.MaxSteps == 0 {
		opts.MaxSteps = DefaultMaxSteps
	}
	if opts.ActRetries == 0 {
		opts.ActRetries = DefaultActRetries
	}
	if opts.RetryBackOff == nil {
		opts.RetryBackOff = backoff.NewExponentialBackOff()
	}

	matchID := uuid.New().String()
	return &Runner{
		matchID: matchID,
		game:    game,
		players: byName,
		opts:    opts,
		logger:  logger.With("matchID", matchID),
	}, nil
}

// MatchID returns the identifier used for logs and the transcript file
func (r *Runner) MatchID() string {
	return r.matchID
}

// TranscriptPath returns where the transcript is exported, empty when disabled
func (r *Runner) TranscriptPath() string {
	if r.opts.TranscriptDir == "" {
		return ""
	}
	return filepath.Join(r.opts.TranscriptDir, r.matchID+".txt")
}

// Run plays until a faction wins, the step limit is hit or ctx is done
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := &Result{MatchID: r.matchID, TranscriptPath: r.TranscriptPath()}

	r.logger.Info("match started",
		"players", r.game.Roster(),
		"maxSteps", r.opts.MaxSteps,
	)

	for r.opts.MaxSteps < 0 || result.Steps < r.opts.MaxSteps {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		if err := r.step(ctx); err != nil {
			return result, err
		}
		result.Steps++

		if err := r.export(); err != nil {
			return result, err
		}

		if r.game.Terminal() {
			break
		}

		if r.opts.StepDelay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(r.opts.StepDelay):
			}
		}
	}

	result.Terminal = r.game.Terminal()
	if winners, err := r.game.Winners(); err == nil {
		result.Winners = winners
		r.logger.Info("match ended", "winners", winners, "steps", result.Steps)
	} else {
		r.logger.Warn("match stopped before a winner", "steps", result.Steps, "phase", r.game.Phase())
	}

	return result, nil
}

// step asks the next actor for an action and feeds it to the game
func (r *Runner) step(ctx context.Context) error {
	actor, err := r.game.NextActor()
	if err != nil {
		return err
	}
	phase := r.game.Phase()

	action, err := r.act(ctx, r.players[actor], phase)
	if err != nil {
		return fmt.Errorf("%s failed to act in %s: %w", actor, phase, err)
	}

	r.logger.Debug("participant acted", "participant", actor, "phase", phase, "action", action)

	events, err := r.game.Step(actor, action)
	if err != nil {
		return fmt.Errorf("step %s: %w", actor, err)
	}
	for _, event := range events {
		r.logEvent(event)
	}
	return nil
}

// act calls the participant, retrying failures that may be transient
func (r *Runner) act(ctx context.Context, p participant.Participant, phase domain.Phase) (string, error) {
	history := r.game.History(p.Name())
	r.opts.RetryBackOff.Reset()

	return backoff.Retry(ctx, func() (string, error) {
		action, err := p.Act(ctx, history, phase)
		if err != nil && !isRetryable(err) {
			return "", backoff.Permanent(err)
		}
		return action, err
	},
		backoff.WithBackOff(r.opts.RetryBackOff),
		backoff.WithMaxTries(r.opts.ActRetries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			r.logger.Warn("participant failed, retrying", "participant", p.Name(), "error", err, "wait", wait)
		}),
	)
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *participant.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}

func (r *Runner) export() error {
	path := r.TranscriptPath()
	if path == "" {
		return nil
	}
	if err := transcript.WriteFile(path, transcript.FromGame(r.matchID, r.game)); err != nil {
		return fmt.Errorf("export transcript: %w", err)
	}
	return nil
}

func (r *Runner) logEvent(event *domain.GameEvent) {
	switch payload := event.Payload.(type) {
	case *domain.PhaseChangedPayload:
		r.logger.Info("phase changed", "from", payload.From, "to", payload.To, "round", payload.Round)
	case *domain.VoteResolvedPayload:
		r.logger.Info("votes counted", "target", payload.Target, "votes", payload.Votes, "consensus", payload.Consensus)
	case *domain.EliminatedPayload:
		r.logger.Info("participant eliminated", "participant", event.Actor, "role", payload.Role, "alive", payload.Alive)
	case *domain.GuessPayload:
		r.logger.Info("guess made", "participant", event.Actor, "correct", payload.Correct)
	case *domain.GameEndedPayload:
		r.logger.Info("game ended", "winners", payload.Winners)
	default:
		if event.Type == domain.EventVoteIgnored {
			r.logger.Debug("vote ignored", "participant", event.Actor)
		}
	}
}
