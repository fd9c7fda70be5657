package transcript

import (
	"bytes"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"undercover/internal/domain"
)

func newGame(t *testing.T) *domain.Game {
	t.Helper()
	g, err := domain.NewGame(
		[]string{"Alice", "Bob", "Charlie"},
		domain.WordPair{Civilian: "openai", Minority: "chatgpt"},
		domain.GameOptions{Rand: rand.New(rand.NewPCG(1, 1))},
	)
	if err != nil {
		t.Fatalf("NewGame() error = %v", err)
	}
	return g
}

func TestWriteIncludesSetupAndEveryMessage(t *testing.T) {
	g := newGame(t)
	actor, _ := g.NextActor()
	if _, err := g.Step(actor, "It answers questions."); err != nil {
		t.Fatalf("Step() error = %v", err)
	}

	tr := FromGame("match-1", g)
	var buf bytes.Buffer
	if err := Write(&buf, tr); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"Match: match-1",
		"Participants: Alice, Bob, Charlie",
		"Civilian word: openai",
		"Undercover word: chatgpt",
		"Winners: game in progress",
		"Alice -> Alice, Bob, Charlie: It answers questions.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("transcript missing %q:\n%s", want, out)
		}
	}
	for _, name := range g.Roster() {
		role, _ := g.RoleOf(name)
		if !strings.Contains(out, "  "+name+": "+role.String()) {
			t.Fatalf("transcript missing role of %s:\n%s", name, out)
		}
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	messages := g.History("")
	tail := lines[len(lines)-len(messages):]
	for i, m := range messages {
		if tail[i] != m.TranscriptLine() {
			t.Fatalf("line %d = %q, want %q", i, tail[i], m.TranscriptLine())
		}
	}
}

func TestWriteFileReplacesPreviousExport(t *testing.T) {
	g := newGame(t)
	path := filepath.Join(t.TempDir(), "logs", "match.txt")

	if err := WriteFile(path, FromGame("m", g)); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	actor, _ := g.NextActor()
	g.Step(actor, "more")
	if err := WriteFile(path, FromGame("m", g)); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(second) <= len(first) || !strings.Contains(string(second), ": more") {
		t.Fatalf("second export did not replace the first:\n%s", second)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("dir has %d entries, want 1", len(entries))
	}
}
