// Package deckscreen is the deck detail controller: card editing, deck
// deletion and the study mode launcher over a single deck.
package deckscreen

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lexideck/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrEmptyDeck      = errors.New("deck has no cards")
	ErrEmptyCardSide  = errors.New("card front and back cannot be empty")
	ErrCardNotFound   = errors.New("card not found")
	ErrSheetActive    = errors.New("another sheet is already presented")
	ErrUnknownMode    = errors.New("unknown study mode")
	ErrUnknownMastery = errors.New("unknown mastery level")
)

// SheetKind identifies the presented modal
type SheetKind string

const (
	SheetNone          SheetKind = "none"
	SheetAddCard       SheetKind = "add_card"
	SheetEditCard      SheetKind = "edit_card"
	SheetStudy         SheetKind = "study"
	SheetDeleteConfirm SheetKind = "delete_confirm"
)

// Sheet is the single presented modal. CardID is set for SheetEditCard,
// Mode for SheetStudy.
type Sheet struct {
	Kind   SheetKind
	CardID uuid.UUID
	Mode   domain.StudyMode
}

// SaveFunc persists the deck after a change
type SaveFunc func(deck *domain.Deck) error

// DeleteFunc removes the deck
type DeleteFunc func(deck *domain.Deck) error

// Screen mutates a bound deck and reports changes through callbacks
type Screen struct {
	deck     *domain.Deck
	onSave   SaveFunc
	onDelete DeleteFunc
	now      func() time.Time
	sheet    Sheet
}

// New binds a screen to a deck
func New(deck *domain.Deck, onSave SaveFunc, onDelete DeleteFunc) *Screen {
	return &Screen{
		deck:     deck,
		onSave:   onSave,
		onDelete: onDelete,
		now:      time.Now,
		sheet:    Sheet{Kind: SheetNone},
	}
}

// WithClock replaces the timestamp source
func (s *Screen) WithClock(now func() time.Time) *Screen {
	s.now = now
	return s
}

// Deck returns the bound deck
func (s *Screen) Deck() *domain.Deck {
	return s.deck
}

// Sheet returns the presented modal
func (s *Screen) Sheet() Sheet {
	return s.sheet
}

func (s *Screen) present(sheet Sheet) error {
	if s.sheet.Kind != SheetNone {
		return ErrSheetActive
	}
	s.sheet = sheet
	return nil
}

// Dismiss closes whatever is presented
func (s *Screen) Dismiss() {
	s.sheet = Sheet{Kind: SheetNone}
}

// PresentAddCard opens the add card sheet
func (s *Screen) PresentAddCard() error {
	return s.present(Sheet{Kind: SheetAddCard})
}

// PresentEditCard opens the edit sheet for a card
func (s *Screen) PresentEditCard(id uuid.UUID) error {
	if s.deck.IndexOf(id) < 0 {
		return ErrCardNotFound
	}
	return s.present(Sheet{Kind: SheetEditCard, CardID: id})
}

// PresentDeleteConfirm asks for deck deletion confirmation
func (s *Screen) PresentDeleteConfirm() error {
	return s.present(Sheet{Kind: SheetDeleteConfirm})
}

// LaunchStudy presents a study mode. The deck must have cards.
func (s *Screen) LaunchStudy(mode domain.StudyMode) error {
	if !mode.Valid() {
		return ErrUnknownMode
	}
	if s.deck.IsEmpty() {
		return ErrEmptyDeck
	}
	return s.present(Sheet{Kind: SheetStudy, Mode: mode})
}

// AddCard appends a new card and saves the deck
func (s *Screen) AddCard(front, back string) (domain.Flashcard, error) {
	front, back = strings.TrimSpace(front), strings.TrimSpace(back)
	if front == "" || back == "" {
		return domain.Flashcard{}, ErrEmptyCardSide
	}

	prev := s.checkpoint()
	card := domain.NewFlashcard(front, back)
	s.deck.Cards = append(s.deck.Cards, card)
	if err := s.save(prev); err != nil {
		return domain.Flashcard{}, err
	}

	if s.sheet.Kind == SheetAddCard {
		s.Dismiss()
	}
	return card, nil
}

// EditCard replaces the card with the same ID and saves the deck
func (s *Screen) EditCard(card domain.Flashcard) error {
	card.Front, card.Back = strings.TrimSpace(card.Front), strings.TrimSpace(card.Back)
	if card.Front == "" || card.Back == "" {
		return ErrEmptyCardSide
	}
	if !card.Mastery.Valid() {
		return ErrUnknownMastery
	}

	i := s.deck.IndexOf(card.ID)
	if i < 0 {
		return ErrCardNotFound
	}

	prev := s.checkpoint()
	s.deck.Cards[i] = card
	if err := s.save(prev); err != nil {
		return err
	}

	if s.sheet.Kind == SheetEditCard && s.sheet.CardID == card.ID {
		s.Dismiss()
	}
	return nil
}

// SetMastery changes one card's mastery level
func (s *Screen) SetMastery(id uuid.UUID, level domain.MasteryLevel) error {
	card, ok := s.deck.Card(id)
	if !ok {
		return ErrCardNotFound
	}
	card.Mastery = level
	return s.EditCard(card)
}

// ApplyMastery sets several mastery levels and saves once
func (s *Screen) ApplyMastery(updates map[uuid.UUID]domain.MasteryLevel) error {
	if len(updates) == 0 {
		return nil
	}
	for _, level := range updates {
		if !level.Valid() {
			return ErrUnknownMastery
		}
	}

	prev := s.checkpoint()
	for id, level := range updates {
		if i := s.deck.IndexOf(id); i >= 0 {
			s.deck.Cards[i].Mastery = level
		}
	}
	return s.save(prev)
}

// DeleteCard removes a card and saves the deck
func (s *Screen) DeleteCard(id uuid.UUID) error {
	i := s.deck.IndexOf(id)
	if i < 0 {
		return ErrCardNotFound
	}

	prev := s.checkpoint()
	s.deck.Cards = append(s.deck.Cards[:i], s.deck.Cards[i+1:]...)
	return s.save(prev)
}

// DeleteDeck hands the deck to the delete callback
func (s *Screen) DeleteDeck() error {
	s.Dismiss()
	if s.onDelete == nil {
		return nil
	}
	if err := s.onDelete(s.deck); err != nil {
		return fmt.Errorf("failed to delete deck: %w", err)
	}
	return nil
}

// savePoint is the deck content a failed save rolls back to
type savePoint struct {
	cards     []domain.Flashcard
	updatedAt time.Time
}

func (s *Screen) checkpoint() savePoint {
	return savePoint{
		cards:     append([]domain.Flashcard(nil), s.deck.Cards...),
		updatedAt: s.deck.UpdatedAt,
	}
}

// save stamps and persists the deck. On failure the deck is restored to prev.
func (s *Screen) save(prev savePoint) error {
	s.deck.UpdatedAt = s.now()
	if s.onSave == nil {
		return nil
	}
	if err := s.onSave(s.deck); err != nil {
		s.deck.Cards = prev.cards
		s.deck.UpdatedAt = prev.updatedAt
		return fmt.Errorf("failed to save deck: %w", err)
	}
	return nil
}
