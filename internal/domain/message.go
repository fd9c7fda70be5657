package domain

import "strings"

// ModeratorName is the sender used for every announcement made by the game itself
const ModeratorName = "Moderator"

// Message is one immutable entry of the communication ledger
type Message struct {
	Sender     string   `json:"sender"`
	Content    string   `json:"content"`
	Recipients []string `json:"recipients"`
}

// NewMessage creates a message, copying recipients so later roster changes do not leak in
func NewMessage(sender, content string, recipients []string) Message {
	r := make([]string, len(recipients))
	copy(r, recipients)
	return Message{
		Sender:     sender,
		Content:    content,
		Recipients: r,
	}
}

// VisibleTo reports whether a participant may see the message
func (m Message) VisibleTo(name string) bool {
	if m.Sender == name {
		return true
	}
	for _, r := range m.Recipients {
		if r == name {
			return true
		}
	}
	return false
}

// String renders the message the way participants read it
func (m Message) String() string {
	return m.Sender + ": " + m.Content
}

// TranscriptLine renders the message with its visibility for exports
func (m Message) TranscriptLine() string {
	return m.Sender + " -> " + strings.Join(m.Recipients, ", ") + ": " + m.Content
}

// Ledger is the append-only store of every message exchanged in a game
type Ledger struct {
	messages []Message
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{messages: make([]Message, 0)}
}

// Record appends a message
func (l *Ledger) Record(sender, content string, recipients []string) Message {
	msg := NewMessage(sender, content, recipients)
	l.messages = append(l.messages, msg)
	return msg
}

// History returns, in insertion order, every message the participant sent or received.
// An empty name returns the whole ledger.
func (l *Ledger) History(name string) []Message {
	out := make([]Message, 0, len(l.messages))
	for _, msg := range l.messages {
		if name == "" || msg.VisibleTo(name) {
			out = append(out, NewMessage(msg.Sender, msg.Content, msg.Recipients))
		}
	}
	return out
}
