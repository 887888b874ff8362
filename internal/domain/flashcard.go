package domain

import (
	"time"

	"github.com/google/uuid"
)

// MasteryLevel describes how well a card is known
type MasteryLevel string

const (
	MasteryNew      MasteryLevel = "new"
	MasteryLearning MasteryLevel = "learning"
	MasteryMastered MasteryLevel = "mastered"
)

// MasteryLevels lists all levels in progression order
var MasteryLevels = []MasteryLevel{MasteryNew, MasteryLearning, MasteryMastered}

// Valid reports whether the level is one of the known levels
func (m MasteryLevel) Valid() bool {
	switch m {
	case MasteryNew, MasteryLearning, MasteryMastered:
		return true
	}
	return false
}

// Promote returns the next level, staying at mastered
func (m MasteryLevel) Promote() MasteryLevel {
	switch m {
	case MasteryNew:
		return MasteryLearning
	default:
		return MasteryMastered
	}
}

// Flashcard is a single front/back card owned by a deck
type Flashcard struct {
	ID      uuid.UUID
	Front   string
	Back    string
	Mastery MasteryLevel
}

// NewFlashcard creates a card with a fresh identity and mastery "new"
func NewFlashcard(front, back string) Flashcard {
	return Flashcard{
		ID:      uuid.New(),
		Front:   front,
		Back:    back,
		Mastery: MasteryNew,
	}
}

// Deck is an ordered collection of flashcards
type Deck struct {
	ID        uuid.UUID
	UserID    int64
	Title     string
	Cards     []Flashcard
	UpdatedAt time.Time
}

// DeckSummary is a lightweight deck row for listings
type DeckSummary struct {
	ID        uuid.UUID
	Title     string
	CardCount int
	UpdatedAt time.Time
}

// Len returns the number of cards
func (d *Deck) Len() int {
	return len(d.Cards)
}

// IsEmpty reports whether the deck has no cards
func (d *Deck) IsEmpty() bool {
	return len(d.Cards) == 0
}

// CountByMastery returns how many cards are at the given level
func (d *Deck) CountByMastery(level MasteryLevel) int {
	count := 0
	for _, c := range d.Cards {
		if c.Mastery == level {
			count++
		}
	}
	return count
}

// MasteryPercentage returns the share of mastered cards in [0, 100]
func (d *Deck) MasteryPercentage() float64 {
	if len(d.Cards) == 0 {
		return 0
	}
	return float64(d.CountByMastery(MasteryMastered)) / float64(len(d.Cards)) * 100
}

// IndexOf returns the position of the card with the given ID, or -1
func (d *Deck) IndexOf(id uuid.UUID) int {
	for i, c := range d.Cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Card returns the card with the given ID
func (d *Deck) Card(id uuid.UUID) (Flashcard, bool) {
	if i := d.IndexOf(id); i >= 0 {
		return d.Cards[i], true
	}
	return Flashcard{}, false
}

// StudyMode selects how a deck is studied
type StudyMode string

const (
	StudyClassic StudyMode = "classic"
	StudyQuiz    StudyMode = "quiz"
	StudyMatch   StudyMode = "match"
)

// Valid reports whether the mode is known
func (m StudyMode) Valid() bool {
	switch m {
	case StudyClassic, StudyQuiz, StudyMatch:
		return true
	}
	return false
}
