package postgres

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"lexideck/internal/domain"
)

// DeckRepo implements repository.DeckRepository
type DeckRepo struct {
	db *sql.DB
}

// NewDeckRepo creates a new deck repository
func NewDeckRepo(db *sql.DB) *DeckRepo {
	return &DeckRepo{db: db}
}

// CreateDeck inserts an empty deck
func (r *DeckRepo) CreateDeck(deck *domain.Deck) error {
	query := `
		INSERT INTO decks (id, user_id, title, updated_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(query, deck.ID, deck.UserID, deck.Title, deck.UpdatedAt)
	return err
}

// ListDecks returns the user's decks with card counts, most recently changed first
func (r *DeckRepo) ListDecks(userID int64) ([]domain.DeckSummary, error) {
	query := `
		SELECT d.id, d.title, COUNT(c.id), d.updated_at
		FROM decks d
		LEFT JOIN flashcards c ON c.deck_id = d.id
		WHERE d.user_id = $1
		GROUP BY d.id, d.title, d.updated_at
		ORDER BY d.updated_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decks []domain.DeckSummary
	for rows.Next() {
		var d domain.DeckSummary
		if err := rows.Scan(&d.ID, &d.Title, &d.CardCount, &d.UpdatedAt); err != nil {
			return nil, err
		}
		decks = append(decks, d)
	}

	return decks, rows.Err()
}

// GetDeck returns a deck with its cards in order, or nil if the user has no such deck
func (r *DeckRepo) GetDeck(userID int64, deckID uuid.UUID) (*domain.Deck, error) {
	deck := domain.Deck{}
	query := `
		SELECT id, user_id, title, updated_at
		FROM decks
		WHERE id = $1 AND user_id = $2
	`
	err := r.db.QueryRow(query, deckID, userID).Scan(&deck.ID, &deck.UserID, &deck.Title, &deck.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	cardsQuery := `
		SELECT id, front, back, mastery
		FROM flashcards
		WHERE deck_id = $1
		ORDER BY position
	`
	rows, err := r.db.Query(cardsQuery, deckID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c domain.Flashcard
		var mastery string
		if err := rows.Scan(&c.ID, &c.Front, &c.Back, &mastery); err != nil {
			return nil, err
		}
		c.Mastery = domain.MasteryLevel(mastery)
		deck.Cards = append(deck.Cards, c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &deck, nil
}

// SaveDeck writes the deck row and replaces its cards in one transaction
func (r *DeckRepo) SaveDeck(deck *domain.Deck) (err error) {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	res, err := tx.Exec(`
		UPDATE decks
		SET title = $1, updated_at = $2
		WHERE id = $3 AND user_id = $4
	`, deck.Title, deck.UpdatedAt, deck.ID, deck.UserID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("deck %s not found", deck.ID)
	}

	if _, err = tx.Exec(`DELETE FROM flashcards WHERE deck_id = $1`, deck.ID); err != nil {
		return err
	}

	for i, c := range deck.Cards {
		_, err = tx.Exec(`
			INSERT INTO flashcards (id, deck_id, position, front, back, mastery)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, c.ID, deck.ID, i, c.Front, c.Back, string(c.Mastery))
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteDeck removes a deck; its cards go with it
func (r *DeckRepo) DeleteDeck(userID int64, deckID uuid.UUID) error {
	query := `
		DELETE FROM decks
		WHERE id = $1 AND user_id = $2
	`
	_, err := r.db.Exec(query, deckID, userID)
	return err
}
