// Package transcript writes the human-readable record of a match.
package transcript

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"undercover/internal/domain"
)

// Transcript is the exported view of a game
type Transcript struct {
	MatchID  string
	Roster   []string
	Roles    map[string]domain.Role
	Words    domain.WordPair
	Winners  []domain.Role
	Finished bool
	Messages []domain.Message
}

// FromGame captures the current state of a game
func FromGame(matchID string, g *domain.Game) Transcript {
	roster := g.Roster()
	roles := make(map[string]domain.Role, len(roster))
	for _, name := range roster {
		if role, err := g.RoleOf(name); err == nil {
			roles[name] = role
		}
	}

	winners, err := g.Winners()
	return Transcript{
		MatchID:  matchID,
		Roster:   roster,
		Roles:    roles,
		Words:    g.Words(),
		Winners:  winners,
		Finished: err == nil,
		Messages: g.History(""),
	}
}

// Write renders the transcript
func Write(w io.Writer, t Transcript) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "Match: %s\n", t.MatchID)
	fmt.Fprintf(bw, "Participants: %s\n", strings.Join(t.Roster, ", "))
	fmt.Fprintln(bw, "Roles:")
	for _, name := range t.Roster {
		fmt.Fprintf(bw, "  %s: %s\n", name, t.Roles[name])
	}
	fmt.Fprintf(bw, "Civilian word: %s\n", t.Words.Civilian)
	fmt.Fprintf(bw, "Undercover word: %s\n", t.Words.Minority)
	if t.Finished {
		winners := make([]string, 0, len(t.Winners))
		for _, r := range t.Winners {
			winners = append(winners, r.String())
		}
		fmt.Fprintf(bw, "Winners: %s\n", strings.Join(winners, ", "))
	} else {
		fmt.Fprintln(bw, "Winners: game in progress")
	}

	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "Conversation:")
	for _, m := range t.Messages {
		fmt.Fprintln(bw, m.TranscriptLine())
	}

	return bw.Flush()
}

// WriteFile replaces the file at path with the rendered transcript
func WriteFile(path string, t Transcript) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create transcript dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".transcript-*")
	if err != nil {
		return fmt.Errorf("create transcript: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, t); err != nil {
		tmp.Close()
		return fmt.Errorf("write transcript: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close transcript: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace transcript: %w", err)
	}
	return nil
}
