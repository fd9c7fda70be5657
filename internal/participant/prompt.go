package participant

import (
	"fmt"
	"strings"
	"text/template"

	"golang.org/x/net/html"

	"undercover/internal/domain"
)

// messageTag wraps the part of a completion the player actually says
const messageTag = "message"

var promptTemplate = template.Must(template.New("prompt").Parse(
	`You are {{.Name}} who is playing a social deduction game with your friends.
Your task is to continue the conversation as {{.Name}} and remember to follow the guide of the moderator.
This is what has transpired in the conversation so far:
{{range .History}}
{{.}}{{end}}

{{.Instruction}}

{{.Name}}:`))

type promptData struct {
	Name        string
	History     []string
	Instruction string
}

// BuildPrompt renders the completion prompt for a player at the given phase
func BuildPrompt(name string, history []domain.Message, phase domain.Phase) (string, error) {
	lines := make([]string, 0, len(history))
	for _, m := range history {
		lines = append(lines, m.String())
	}

	var b strings.Builder
	err := promptTemplate.Execute(&b, promptData{
		Name:        name,
		History:     lines,
		Instruction: instruction(phase),
	})
	if err != nil {
		return "", fmt.Errorf("render prompt: %w", err)
	}
	return b.String(), nil
}

func instruction(phase domain.Phase) string {
	switch phase {
	case domain.PhaseVoting:
		return "Note: Put the name of the player you want to vote for in the xml tag <message></message>. For example, <message>Alice</message>."
	case domain.PhaseGuessing:
		return "Note: Put the keyword you want to guess in the xml tag <message></message>. For example, <message>keyword</message>."
	default:
		return "Note: Wrap your message to the group with xml tag like this <message>your message</message>."
	}
}

// ExtractMessage returns the text inside the first <message> element of a completion.
// It reports false when there is no such element or it holds no text.
func ExtractMessage(raw string) (string, bool) {
	z := html.NewTokenizer(strings.NewReader(raw))

	depth := 0
	var text strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			// Unterminated element: keep whatever text was collected.
			return finishMessage(text.String(), depth > 0)
		case html.StartTagToken:
			if tok := z.Token(); tok.Data == messageTag {
				depth++
			}
		case html.EndTagToken:
			if tok := z.Token(); tok.Data == messageTag && depth > 0 {
				depth--
				if depth == 0 {
					return finishMessage(text.String(), true)
				}
			}
		case html.TextToken:
			if depth > 0 {
				text.WriteString(z.Token().Data)
			}
		}
	}
}

func finishMessage(text string, found bool) (string, bool) {
	text = strings.TrimSpace(text)
	if !found || text == "" {
		return "", false
	}
	return text, true
}
