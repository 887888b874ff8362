package testutil

import (
	"time"

	"lexideck/internal/domain"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestUser creates a test user
func NewTestUser(userID int64, authorized bool) *domain.User {
	return &domain.User{
		UserID:     userID,
		Authorized: authorized,
		CreatedAt:  time.Now(),
		LastSeenAt: time.Now(),
	}
}

// NewTestDeck creates a deck with one card per front/back pair
func NewTestDeck(userID int64, title string, pairs ...string) *domain.Deck {
	deck := &domain.Deck{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		UpdatedAt: time.Now(),
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		deck.Cards = append(deck.Cards, domain.NewFlashcard(pairs[i], pairs[i+1]))
	}
	return deck
}

// NewTestSummary creates a deck list row
func NewTestSummary(title string, cards int) domain.DeckSummary {
	return domain.DeckSummary{
		ID:        uuid.New(),
		Title:     title,
		CardCount: cards,
		UpdatedAt: time.Now(),
	}
}
