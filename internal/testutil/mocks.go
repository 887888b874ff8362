package testutil

import (
	"lexideck/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Ensure(userID int64) (*domain.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Authorize(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockDeckRepository is a mock for DeckRepository
type MockDeckRepository struct {
	mock.Mock
}

func (m *MockDeckRepository) CreateDeck(deck *domain.Deck) error {
	args := m.Called(deck)
	return args.Error(0)
}

func (m *MockDeckRepository) ListDecks(userID int64) ([]domain.DeckSummary, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeckSummary), args.Error(1)
}

func (m *MockDeckRepository) GetDeck(userID int64, deckID uuid.UUID) (*domain.Deck, error) {
	args := m.Called(userID, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *MockDeckRepository) SaveDeck(deck *domain.Deck) error {
	args := m.Called(deck)
	return args.Error(0)
}

func (m *MockDeckRepository) DeleteDeck(userID int64, deckID uuid.UUID) error {
	args := m.Called(userID, deckID)
	return args.Error(0)
}

// MockSettingsRepository is a mock for SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetInt(userID int64, key string) (int, error) {
	args := m.Called(userID, key)
	return args.Int(0), args.Error(1)
}

func (m *MockSettingsRepository) SetInt(userID int64, key string, value int) error {
	args := m.Called(userID, key, value)
	return args.Error(0)
}
