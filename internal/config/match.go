package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"undercover/internal/domain"
)

// PlayerSpec declares one seat of a match file
type PlayerSpec struct {
	Name     string              `yaml:"name"`
	Kind     string              `yaml:"kind"`
	Model    string              `yaml:"model,omitempty"` // Overrides LLM_MODEL for this player
	Script   map[string][]string `yaml:"script,omitempty"`
	Fallback string              `yaml:"fallback,omitempty"`
}

// Lines returns the scripted lines for a phase
func (p PlayerSpec) Lines(phase domain.Phase) []string {
	return p.Script[phase.String()]
}

// MatchFile models the optional YAML match description
type MatchFile struct {
	Words   domain.WordPair `yaml:"words"`
	Players []PlayerSpec    `yaml:"players"`
}

// LoadMatchFile reads and decodes a match file
func LoadMatchFile(path string) (*MatchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read match file: %w", err)
	}

	var m MatchFile
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse match file %s: %w", path, err)
	}

	for i := range m.Players {
		if m.Players[i].Kind == "" {
			m.Players[i].Kind = KindScripted
		}
		for phase := range m.Players[i].Script {
			switch domain.Phase(phase) {
			case domain.PhaseDescription, domain.PhaseDiscussion, domain.PhaseVoting, domain.PhaseGuessing:
			default:
				return nil, fmt.Errorf("player %q scripts unknown phase %q", m.Players[i].Name, phase)
			}
		}
	}

	return &m, nil
}
