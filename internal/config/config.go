package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"undercover/internal/domain"
)

// Participant kinds
const (
	KindScripted = "scripted"
	KindLLM      = "llm"
)

// Config holds all application configuration
type Config struct {
	Match   MatchConfig
	LLM     LLMConfig
	Logging LoggingConfig
}

// MatchConfig holds match-related configuration
type MatchConfig struct {
	File          string        `env:"MATCH_FILE"`
	Players       []string      `env:"PLAYERS" envSeparator:"," envDefault:"Alice,Bob,Charlie,David,Eve"`
	CivilianWord  string        `env:"CIVILIAN_WORD"`
	MinorityWord  string        `env:"MINORITY_WORD"`
	Seed          uint64        `env:"SEED"` // 0 picks a random seed
	MaxSteps      int           `env:"MAX_STEPS" envDefault:"65"`
	StepDelay     time.Duration `env:"STEP_DELAY" envDefault:"0s"`
	TranscriptDir string        `env:"TRANSCRIPT_DIR" envDefault:"logs"`
	ActRetries    uint          `env:"ACT_RETRIES" envDefault:"3"`
}

// LLMConfig holds the chat completion backend configuration
type LLMConfig struct {
	BaseURL     string  `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	APIKey      string  `env:"LLM_API_KEY"`
	Model       string  `env:"LLM_MODEL" envDefault:"gpt-4"`
	MaxTokens   int     `env:"LLM_MAX_TOKENS" envDefault:"50"`
	Temperature float64 `env:"LLM_TEMPERATURE" envDefault:"1"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"` // "json" or "text"
}

// Load reads an optional .env file, then the environment, then the optional match file
func Load() (*Config, *MatchFile, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, nil, fmt.Errorf("parse env: %w", err)
	}

	var match *MatchFile
	if cfg.Match.File != "" {
		m, err := LoadMatchFile(cfg.Match.File)
		if err != nil {
			return nil, nil, err
		}
		match = m
	}

	return &cfg, match, nil
}

// Roster returns the participants to seat, from the match file when present
func (c *Config) Roster(match *MatchFile) ([]PlayerSpec, error) {
	var specs []PlayerSpec
	if match != nil && len(match.Players) > 0 {
		specs = match.Players
	} else {
		kind := KindScripted
		if c.HasLLM() {
			kind = KindLLM
		}
		for _, name := range c.Match.Players {
			specs = append(specs, PlayerSpec{Name: strings.TrimSpace(name), Kind: kind})
		}
	}

	names := make([]string, 0, len(specs))
	for i, spec := range specs {
		if spec.Name == "" {
			return nil, fmt.Errorf("player %d has no name", i+1)
		}
		names = append(names, spec.Name)

		switch spec.Kind {
		case KindScripted:
		case KindLLM:
			if !c.HasLLM() {
				return nil, fmt.Errorf("player %q needs LLM_API_KEY", spec.Name)
			}
		default:
			return nil, fmt.Errorf("player %q has unknown kind %q", spec.Name, spec.Kind)
		}
	}
	if err := domain.ValidateRoster(names); err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}

	return specs, nil
}

// WordPair returns the configured secret words; ok is false when none are set
func (c *Config) WordPair(match *MatchFile) (pair domain.WordPair, ok bool, err error) {
	pair = domain.WordPair{Civilian: c.Match.CivilianWord, Minority: c.Match.MinorityWord}
	if match != nil && (match.Words.Civilian != "" || match.Words.Minority != "") {
		pair = match.Words
	}

	if pair.Civilian == "" && pair.Minority == "" {
		return domain.WordPair{}, false, nil
	}
	if err := pair.Validate(); err != nil {
		return domain.WordPair{}, false, err
	}
	return pair, true, nil
}

// HasLLM returns true when a chat completion backend is configured
func (c *Config) HasLLM() bool {
	return strings.TrimSpace(c.LLM.APIKey) != ""
}
