package main

import (
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"undercover/internal/app"
	"undercover/internal/config"
	"undercover/internal/domain"
	"undercover/internal/participant"
)

func main() {
	// Load configuration
	cfg, match, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Set up logger
	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	if err := run(cfg, match, logger); err != nil {
		logger.Error("match failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, match *config.MatchFile, logger *slog.Logger) error {
	seed := cfg.Match.Seed
	if seed == 0 {
		s, err := newSeed()
		if err != nil {
			return err
		}
		seed = s
	}
	rng := rand.New(rand.NewPCG(seed, seed))

	roster, err := cfg.Roster(match)
	if err != nil {
		return err
	}

	words, ok, err := cfg.WordPair(match)
	if err != nil {
		return err
	}
	if !ok {
		words = app.RandomWordPair(rng)
	}

	names := make([]string, 0, len(roster))
	players := make([]participant.Participant, 0, len(roster))
	for _, spec := range roster {
		names = append(names, spec.Name)
		players = append(players, newParticipant(spec, cfg.LLM, logger))
	}

	game, err := domain.NewGame(names, words, domain.GameOptions{Rand: rng})
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	runner, err := app.NewRunner(game, players, app.RunnerOptions{
		MaxSteps:      cfg.Match.MaxSteps,
		StepDelay:     cfg.Match.StepDelay,
		TranscriptDir: cfg.Match.TranscriptDir,
		ActRetries:    cfg.Match.ActRetries,
	}, logger)
	if err != nil {
		return err
	}

	logger.Info("starting undercover match",
		"matchID", runner.MatchID(),
		"seed", seed,
		"players", len(names),
		"transcript", runner.TranscriptPath(),
	)

	// Stop issuing steps on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := runner.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info("match interrupted", "steps", result.Steps)
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("match finished",
		"terminal", result.Terminal,
		"winners", result.Winners,
		"steps", result.Steps,
	)
	return nil
}

func newParticipant(spec config.PlayerSpec, llm config.LLMConfig, logger *slog.Logger) participant.Participant {
	if spec.Kind == config.KindLLM {
		model := llm.Model
		if spec.Model != "" {
			model = spec.Model
		}
		return participant.NewLLM(spec.Name, participant.LLMConfig{
			BaseURL:     llm.BaseURL,
			APIKey:      llm.APIKey,
			Model:       model,
			MaxTokens:   llm.MaxTokens,
			Temperature: llm.Temperature,
			Logger:      logger,
		})
	}

	p := participant.NewScripted(spec.Name)
	for _, phase := range []domain.Phase{domain.PhaseDescription, domain.PhaseDiscussion, domain.PhaseVoting, domain.PhaseGuessing} {
		p.Say(phase, spec.Lines(phase)...)
	}
	if spec.Fallback != "" {
		p.WithFallback(spec.Fallback)
	}
	return p
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	logOpts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Level),
	}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, logOpts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, logOpts))
}

// newSeed reads a role-shuffling seed from crypto/rand
func newSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
