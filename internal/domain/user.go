package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents a bot user
type User struct {
	UserID     int64
	Authorized bool
	CreatedAt  time.Time
	LastSeenAt time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle             UserState = "idle"
	StateWaitingDeckTitle UserState = "waiting_deck_title"
	StateWaitingCardFront UserState = "waiting_card_front"
	StateWaitingCardBack  UserState = "waiting_card_back"
	StateWaitingEditFront UserState = "waiting_edit_front"
	StateWaitingEditBack  UserState = "waiting_edit_back"
	StateWaitingPassword  UserState = "waiting_password"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State  UserState
	DeckID uuid.UUID
	CardID uuid.UUID
	Front  string // front text entered before the back
}
