// Package study runs the classic, quiz and match study modes over a deck
// snapshot. Sessions collect mastery changes; the caller applies them.
package study

import (
	"errors"
	"math/rand/v2"

	"lexideck/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrFinished      = errors.New("study session finished")
	ErrNotRevealed   = errors.New("card must be flipped before rating")
	ErrInvalidChoice = errors.New("invalid choice")
	ErrNoSelection   = errors.New("select a front first")
	ErrUnknownTile   = errors.New("unknown tile")
	ErrNoCards       = errors.New("no cards to study")
	ErrUnknownMode   = errors.New("unknown study mode")
)

// Session is the part every study mode shares
type Session interface {
	Mode() domain.StudyMode
	Done() bool
	Updates() map[uuid.UUID]domain.MasteryLevel
}

// New starts a session of the given mode
func New(mode domain.StudyMode, cards []domain.Flashcard, rng *rand.Rand) (Session, error) {
	if len(cards) == 0 {
		return nil, ErrNoCards
	}
	switch mode {
	case domain.StudyClassic:
		return NewClassic(cards, rng), nil
	case domain.StudyQuiz:
		return NewQuiz(cards, rng), nil
	case domain.StudyMatch:
		return NewMatch(cards, rng), nil
	}
	return nil, ErrUnknownMode
}

func shuffled(cards []domain.Flashcard, rng *rand.Rand) []domain.Flashcard {
	out := append([]domain.Flashcard(nil), cards...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

type tracker struct {
	updates map[uuid.UUID]domain.MasteryLevel
}

func (t *tracker) set(id uuid.UUID, level domain.MasteryLevel) {
	if t.updates == nil {
		t.updates = make(map[uuid.UUID]domain.MasteryLevel)
	}
	t.updates[id] = level
}

// Updates returns the mastery changes recorded so far
func (t *tracker) Updates() map[uuid.UUID]domain.MasteryLevel {
	out := make(map[uuid.UUID]domain.MasteryLevel, len(t.updates))
	for id, level := range t.updates {
		out[id] = level
	}
	return out
}
