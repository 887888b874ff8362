package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"lexideck/internal/deckscreen"
	"lexideck/internal/domain"
	"lexideck/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgDeckClosed  = "This deck is no longer open."
	msgCardMissing = "This card no longer exists."
	msgNoDecks     = "📚 You have no decks yet. Create one to start adding cards."
)

// handleDecks shows the user's decks
func (h *Handler) handleDecks(c tele.Context) error {
	userID := c.Sender().ID

	h.ResetState(userID)
	h.closeDeck(userID)

	decks, err := h.deckService.ListDecks(userID)
	if err != nil {
		h.logger.Error("Failed to list decks", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, msgError)
	}

	if len(decks) == 0 {
		return h.show(c, msgNoDecks, deckListMarkup(nil))
	}
	return h.show(c, deckListText(decks, h.now()), deckListMarkup(decks))
}

// handleNewDeck asks for the title of a new deck
func (h *Handler) handleNewDeck(c tele.Context) error {
	h.SetState(c.Sender().ID, &domain.StateData{State: domain.StateWaitingDeckTitle})
	return h.show(c, "📝 Send the title of the new deck:", cancelMarkup(btnCancel))
}

// handleOpenDeck opens a deck from the list
func (h *Handler) handleOpenDeck(c tele.Context, data string) error {
	deckID, err := parseID(data, prefixDeck)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown deck"})
	}
	return h.openDeck(c, deckID)
}

func (h *Handler) openDeck(c tele.Context, deckID uuid.UUID) error {
	userID := c.Sender().ID

	screen, err := h.deckService.OpenDeck(userID, deckID)
	if errors.Is(err, service.ErrDeckNotFound) {
		return alert(c, "This deck no longer exists.")
	}
	if err != nil {
		h.logger.Error("Failed to open deck", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, msgError)
	}

	h.setScreen(userID, screen)
	return h.showDeck(c, screen, 0)
}

// handleDeckView returns to the open deck, closing any sheet
func (h *Handler) handleDeckView(c tele.Context) error {
	userID := c.Sender().ID
	h.ResetState(userID)

	screen := h.screen(userID)
	if screen == nil {
		return h.show(c, msgDeckClosed+"\n\n"+msgMainMenu, mainMenuMarkup())
	}

	screen.Dismiss()
	h.setStudySession(userID, nil)
	return h.showDeck(c, screen, 0)
}

// handleDeckPage pages through the card list
func (h *Handler) handleDeckPage(c tele.Context, data string) error {
	page, err := strconv.Atoi(strings.TrimPrefix(data, prefixDeckPage))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid page"})
	}

	screen := h.screen(c.Sender().ID)
	if screen == nil {
		return alert(c, msgDeckClosed)
	}
	return h.showDeck(c, screen, page)
}

func (h *Handler) showDeck(c tele.Context, screen *deckscreen.Screen, page int) error {
	deck := screen.Deck()
	return h.show(c, deckDetailText(deck, h.now()), deckMarkup(deck, page))
}

// sendDeck always sends the deck as a new message, used after text input
func (h *Handler) sendDeck(c tele.Context, screen *deckscreen.Screen) error {
	deck := screen.Deck()
	return c.Send(deckDetailText(deck, h.now()), deckMarkup(deck, 0))
}

// handleAddCard starts the add card flow
func (h *Handler) handleAddCard(c tele.Context) error {
	userID := c.Sender().ID

	screen := h.screen(userID)
	if screen == nil {
		return alert(c, msgDeckClosed)
	}

	screen.Dismiss()
	if err := screen.PresentAddCard(); err != nil {
		h.logger.Error("Failed to present add card", zap.Error(err))
		return alert(c, msgError)
	}

	h.SetState(userID, &domain.StateData{State: domain.StateWaitingCardFront, DeckID: screen.Deck().ID})
	return h.show(c, "➕ New card\n\nSend the front of the card:", cancelMarkup(btnCancelSheet))
}

// handleCardView shows a single card with its actions
func (h *Handler) handleCardView(c tele.Context, data string) error {
	screen, card, err := h.cardFromData(c, data, prefixCard)
	if err != nil || screen == nil {
		return err
	}
	return h.show(c, cardText(card), cardMarkup(card))
}

// handleEditCard starts the edit flow for a card
func (h *Handler) handleEditCard(c tele.Context, data string) error {
	screen, card, err := h.cardFromData(c, data, prefixCardEdit)
	if err != nil || screen == nil {
		return err
	}

	screen.Dismiss()
	if err := screen.PresentEditCard(card.ID); err != nil {
		return alert(c, msgCardMissing)
	}

	h.SetState(c.Sender().ID, &domain.StateData{
		State:  domain.StateWaitingEditFront,
		DeckID: screen.Deck().ID,
		CardID: card.ID,
	})
	return h.show(c,
		fmt.Sprintf("✏️ Editing card\n\nSend the new front (or %s to keep \"%s\")", keepValue, card.Front),
		cancelMarkup(btnCancelSheet),
	)
}

// handleDeleteCard removes a card and shows the deck
func (h *Handler) handleDeleteCard(c tele.Context, data string) error {
	screen, card, err := h.cardFromData(c, data, prefixCardDelete)
	if err != nil || screen == nil {
		return err
	}

	if err := screen.DeleteCard(card.ID); err != nil {
		h.logger.Error("Failed to delete card", zap.Error(err), zap.String("card_id", card.ID.String()))
		return alert(c, msgError)
	}

	deck := screen.Deck()
	return h.showToast(c, deckDetailText(deck, h.now()), deckMarkup(deck, 0), "🗑 Card deleted")
}

// handleSetMastery changes the mastery of a card by hand
func (h *Handler) handleSetMastery(c tele.Context, data string) error {
	// cm_<level>_<id>
	rest := strings.TrimPrefix(data, prefixMastery)
	level, idStr, ok := strings.Cut(rest, "_")
	if !ok || !domain.MasteryLevel(level).Valid() {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown mastery level"})
	}

	screen, card, err := h.cardFromData(c, idStr, "")
	if err != nil || screen == nil {
		return err
	}

	if err := screen.SetMastery(card.ID, domain.MasteryLevel(level)); err != nil {
		h.logger.Error("Failed to set mastery", zap.Error(err), zap.String("card_id", card.ID.String()))
		return alert(c, msgError)
	}

	card, _ = screen.Deck().Card(card.ID)
	return h.show(c, cardText(card), cardMarkup(card))
}

// cardFromData resolves the open deck and the card referenced by data.
// A nil screen means the callback was already answered.
func (h *Handler) cardFromData(c tele.Context, data, prefix string) (*deckscreen.Screen, domain.Flashcard, error) {
	screen := h.screen(c.Sender().ID)
	if screen == nil {
		return nil, domain.Flashcard{}, alert(c, msgDeckClosed)
	}

	cardID, err := parseID(data, prefix)
	if err != nil {
		return nil, domain.Flashcard{}, c.Respond(&tele.CallbackResponse{Text: "Unknown card"})
	}

	card, ok := screen.Deck().Card(cardID)
	if !ok {
		return nil, domain.Flashcard{}, alert(c, msgCardMissing)
	}
	return screen, card, nil
}

// handleDeleteDeck asks for confirmation
func (h *Handler) handleDeleteDeck(c tele.Context) error {
	screen := h.screen(c.Sender().ID)
	if screen == nil {
		return alert(c, msgDeckClosed)
	}

	screen.Dismiss()
	if err := screen.PresentDeleteConfirm(); err != nil {
		return alert(c, msgError)
	}

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnConfirmDelete, btnCancelSheet))
	return h.show(c,
		fmt.Sprintf("🗑 Delete \"%s\" and its %d cards? This cannot be undone.", screen.Deck().Title, screen.Deck().Len()),
		markup,
	)
}

// handleConfirmDeleteDeck deletes the open deck and returns to the list
func (h *Handler) handleConfirmDeleteDeck(c tele.Context) error {
	userID := c.Sender().ID

	screen := h.screen(userID)
	if screen == nil || screen.Sheet().Kind != deckscreen.SheetDeleteConfirm {
		return alert(c, msgDeckClosed)
	}

	if err := screen.DeleteDeck(); err != nil {
		h.logger.Error("Failed to delete deck", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, msgError)
	}

	return h.handleDecks(c)
}
