package service

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"lexideck/internal/deckscreen"
	"lexideck/internal/domain"
	"lexideck/internal/repository"
)

const maxDeckTitleLength = 64

var (
	ErrDeckNotFound = errors.New("deck not found")
	ErrInvalidTitle = errors.New("deck title must be 1-64 characters")
)

// DeckService is the deck store collaborator of the deck screen
type DeckService struct {
	deckRepo repository.DeckRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewDeckService creates a new deck service
func NewDeckService(deckRepo repository.DeckRepository, logger *zap.Logger) *DeckService {
	return &DeckService{
		deckRepo: deckRepo,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateDeck stores a new empty deck
func (s *DeckService) CreateDeck(userID int64, title string) (*domain.Deck, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > maxDeckTitleLength {
		return nil, ErrInvalidTitle
	}

	deck := &domain.Deck{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		UpdatedAt: s.now(),
	}
	if err := s.deckRepo.CreateDeck(deck); err != nil {
		return nil, fmt.Errorf("failed to create deck: %w", err)
	}

	s.logger.Info("Deck created",
		zap.Int64("user_id", userID),
		zap.String("deck_id", deck.ID.String()),
	)
	return deck, nil
}

// ListDecks returns the user's decks
func (s *DeckService) ListDecks(userID int64) ([]domain.DeckSummary, error) {
	return s.deckRepo.ListDecks(userID)
}

// OpenDeck loads a deck and binds a screen to it. The screen's callbacks
// write through to the repository.
func (s *DeckService) OpenDeck(userID int64, deckID uuid.UUID) (*deckscreen.Screen, error) {
	deck, err := s.deckRepo.GetDeck(userID, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck: %w", err)
	}
	if deck == nil {
		return nil, ErrDeckNotFound
	}

	return deckscreen.New(deck, s.save, s.delete).WithClock(s.now), nil
}

func (s *DeckService) save(deck *domain.Deck) error {
	if err := s.deckRepo.SaveDeck(deck); err != nil {
		s.logger.Error("Failed to save deck",
			zap.Error(err),
			zap.String("deck_id", deck.ID.String()),
		)
		return err
	}

	s.logger.Debug("Deck saved",
		zap.String("deck_id", deck.ID.String()),
		zap.Int("cards", deck.Len()),
	)
	return nil
}

func (s *DeckService) delete(deck *domain.Deck) error {
	if err := s.deckRepo.DeleteDeck(deck.UserID, deck.ID); err != nil {
		s.logger.Error("Failed to delete deck",
			zap.Error(err),
			zap.String("deck_id", deck.ID.String()),
		)
		return err
	}

	s.logger.Info("Deck deleted",
		zap.Int64("user_id", deck.UserID),
		zap.String("deck_id", deck.ID.String()),
	)
	return nil
}
