package app

import (
	"math/rand/v2"

	"undercover/internal/domain"
)

// WordPairs is a curated list of related words that work well for the game.
// The first word goes to the civilians, the second to the undercover players.
var WordPairs = []domain.WordPair{
	// Tech
	{Civilian: "openai", Minority: "chatgpt"},
	{Civilian: "keyboard", Minority: "piano"},
	{Civilian: "laptop", Minority: "tablet"},
	{Civilian: "robot", Minority: "android"},
	{Civilian: "satellite", Minority: "rocket"},
	{Civilian: "email", Minority: "letter"},

	// Animals
	{Civilian: "tiger", Minority: "lion"},
	{Civilian: "dolphin", Minority: "shark"},
	{Civilian: "wolf", Minority: "dog"},
	{Civilian: "butterfly", Minority: "moth"},
	{Civilian: "crocodile", Minority: "alligator"},

	// Places
	{Civilian: "library", Minority: "bookstore"},
	{Civilian: "beach", Minority: "desert"},
	{Civilian: "hospital", Minority: "pharmacy"},
	{Civilian: "stadium", Minority: "arena"},
	{Civilian: "subway", Minority: "train"},

	// Food & Drinks
	{Civilian: "coffee", Minority: "tea"},
	{Civilian: "pizza", Minority: "pie"},
	{Civilian: "sushi", Minority: "sashimi"},
	{Civilian: "butter", Minority: "cheese"},
	{Civilian: "honey", Minority: "syrup"},
	{Civilian: "wine", Minority: "beer"},

	// Objects
	{Civilian: "mirror", Minority: "window"},
	{Civilian: "umbrella", Minority: "raincoat"},
	{Civilian: "compass", Minority: "map"},
	{Civilian: "lantern", Minority: "candle"},
	{Civilian: "hammer", Minority: "axe"},

	// Nature
	{Civilian: "thunder", Minority: "lightning"},
	{Civilian: "volcano", Minority: "mountain"},
	{Civilian: "glacier", Minority: "iceberg"},
	{Civilian: "river", Minority: "lake"},

	// Music / Art
	{Civilian: "guitar", Minority: "violin"},
	{Civilian: "painting", Minority: "photograph"},
	{Civilian: "tattoo", Minority: "sticker"},
}

// RandomWordPair returns a random pair from the catalog
func RandomWordPair(rng *rand.Rand) domain.WordPair {
	return WordPairs[rng.IntN(len(WordPairs))]
}
