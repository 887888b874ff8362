package domain

import "github.com/google/uuid"

// Difficulty is a word list tier
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists all tiers from easiest to hardest
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether the tier is known
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// WordEntry is a curated word with its definition
type WordEntry struct {
	Word       string `yaml:"word"`
	Definition string `yaml:"definition"`
}

// Letter is a rack tile. The ID tells duplicate letters apart.
type Letter struct {
	ID   uuid.UUID
	Char rune
}

// NewLetter creates a tile with a fresh identity
func NewLetter(ch rune) Letter {
	return Letter{ID: uuid.New(), Char: ch}
}

// GameStats holds the persisted Word Builder records
type GameStats struct {
	HighScore  int
	BestStreak int
}
