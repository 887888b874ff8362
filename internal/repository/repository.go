package repository

import (
	"github.com/google/uuid"

	"lexideck/internal/domain"
)

// UserRepository defines user data operations
type UserRepository interface {
	Ensure(userID int64) (*domain.User, error)
	Authorize(userID int64) error
}

// DeckRepository defines deck and card data operations
type DeckRepository interface {
	CreateDeck(deck *domain.Deck) error
	ListDecks(userID int64) ([]domain.DeckSummary, error)
	GetDeck(userID int64, deckID uuid.UUID) (*domain.Deck, error)
	SaveDeck(deck *domain.Deck) error
	DeleteDeck(userID int64, deckID uuid.UUID) error
}

// SettingsRepository is a per-user integer key-value store
type SettingsRepository interface {
	GetInt(userID int64, key string) (int, error)
	SetInt(userID int64, key string, value int) error
}
