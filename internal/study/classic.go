package study

import (
	"math/rand/v2"

	"lexideck/internal/domain"
)

// Classic shows one card at a time; the learner flips it and rates it
type Classic struct {
	tracker
	queue   []domain.Flashcard
	pos     int
	flipped bool
}

func NewClassic(cards []domain.Flashcard, rng *rand.Rand) *Classic {
	return &Classic{queue: shuffled(cards, rng)}
}

func (c *Classic) Mode() domain.StudyMode { return domain.StudyClassic }

func (c *Classic) Done() bool { return c.pos >= len(c.queue) }

// Progress returns the current position (1-based) and the total
func (c *Classic) Progress() (int, int) {
	return min(c.pos+1, len(c.queue)), len(c.queue)
}

// Current returns the card being studied
func (c *Classic) Current() (domain.Flashcard, bool) {
	if c.Done() {
		return domain.Flashcard{}, false
	}
	return c.queue[c.pos], true
}

func (c *Classic) Flipped() bool { return c.flipped }

// Flip turns the current card over
func (c *Classic) Flip() error {
	if c.Done() {
		return ErrFinished
	}
	c.flipped = !c.flipped
	return nil
}

// Rate records the learner's assessment and moves to the next card
func (c *Classic) Rate(level domain.MasteryLevel) error {
	if c.Done() {
		return ErrFinished
	}
	if !c.flipped {
		return ErrNotRevealed
	}
	if !level.Valid() {
		return ErrInvalidChoice
	}

	c.set(c.queue[c.pos].ID, level)
	c.pos++
	c.flipped = false
	return nil
}
