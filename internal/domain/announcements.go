package domain

import (
	"fmt"
	"strings"
)

const (
	rulesAnnouncement = "Welcome to Undercover. Most of you share one secret word, the undercover players hold a " +
		"different but related word, and Mr. White holds no word at all. Each round you describe your word without " +
		"saying it, discuss, and then vote to eliminate a suspect."
	continueAnnouncement = "The game continues."
	guessingPrompt       = "You have been voted out, Mr. White. Guess the civilians' secret word to win."
)

// factionName is the display name of the faction holding a role
func factionName(role Role) string {
	switch role {
	case RoleCivilian:
		return "Civilians"
	case RoleMinority:
		return "Undercover"
	case RoleBlank:
		return "Mr. White"
	default:
		return string(role)
	}
}

func wordNotice(role Role, word string) string {
	if role == RoleBlank {
		return "You are Mr. White: you have no secret word. Blend in, and if you are voted out you may guess the civilians' word."
	}
	return fmt.Sprintf("Your secret word is %q.", word)
}

func phaseAnnouncement(phase Phase, round int, alive []string) string {
	switch phase {
	case PhaseDescription:
		return fmt.Sprintf("Round %d, description phase: in turn, describe your secret word in one sentence without saying it.", round)
	case PhaseDiscussion:
		return "Discussion phase: in turn, say who you find suspicious and why."
	case PhaseVoting:
		return "Voting phase: in turn, name the player you want to eliminate. Votes are private. Candidates: " +
			strings.Join(alive, ", ") + "."
	default:
		return ""
	}
}

func eliminationAnnouncement(name string) string {
	return fmt.Sprintf("%s has been eliminated.", name)
}

func correctGuessAnnouncement(name string) string {
	return fmt.Sprintf("%s guessed the civilians' word correctly and wins as Mr. White!", name)
}

func wrongGuessAnnouncement(name string) string {
	return fmt.Sprintf("%s did not guess the civilians' word.", name)
}
