package domain

import "testing"

func TestLedgerHistoryVisibility(t *testing.T) {
	l := NewLedger()
	everyone := []string{"Alice", "Bob", "Charlie"}
	l.Record("Alice", "it is round", everyone)
	l.Record("Bob", "Alice", []string{"Bob"})
	l.Record(ModeratorName, "secret for Charlie", []string{"Charlie"})

	tests := []struct {
		name string
		want []string
	}{
		{name: "Alice", want: []string{"it is round"}},
		{name: "Bob", want: []string{"it is round", "Alice"}},
		{name: "Charlie", want: []string{"it is round", "secret for Charlie"}},
		{name: "Dave", want: nil},
		{name: "", want: []string{"it is round", "Alice", "secret for Charlie"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.History(tt.name)
			if len(got) != len(tt.want) {
				t.Fatalf("History(%q) len = %d, want %d", tt.name, len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Content != tt.want[i] {
					t.Fatalf("History(%q)[%d] = %q, want %q", tt.name, i, got[i].Content, tt.want[i])
				}
			}
		})
	}
}

func TestLedgerHistoryIsACopy(t *testing.T) {
	l := NewLedger()
	recipients := []string{"Alice", "Bob"}
	l.Record("Alice", "hello", recipients)
	recipients[1] = "Mallory"

	got := l.History("")
	got[0].Recipients[0] = "Eve"
	got[0].Content = "changed"

	again := l.History("")
	if again[0].Content != "hello" || again[0].Recipients[0] != "Alice" || again[0].Recipients[1] != "Bob" {
		t.Fatalf("ledger mutated through a returned message: %+v", again[0])
	}
	if n := len(l.History("")); n != 1 {
		t.Fatalf("len(History) = %d, want 1", n)
	}
}

func TestMessageFormatting(t *testing.T) {
	m := NewMessage("Alice", "hi", []string{"Alice", "Bob"})
	if got := m.String(); got != "Alice: hi" {
		t.Fatalf("String() = %q", got)
	}
	if got := m.TranscriptLine(); got != "Alice -> Alice, Bob: hi" {
		t.Fatalf("TranscriptLine() = %q", got)
	}
}
