package handler

import (
	"errors"
	"fmt"
	"strings"

	"lexideck/internal/deckscreen"
	"lexideck/internal/domain"
	"lexideck/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// keepValue keeps the current card side while editing
const keepValue = "-"

// handleText handles all text messages based on state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	// Ignore commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	user, err := h.currentUser(c)
	if err != nil {
		h.logger.Error("Failed to load user", zap.Error(err))
		return c.Send(msgError)
	}
	if !user.Authorized {
		return h.handlePassword(c, text)
	}

	unlock := h.lockUser(userID)
	defer unlock()

	state := h.GetState(userID)

	switch state.State {
	case domain.StateWaitingDeckTitle:
		return h.createDeck(c, text)

	case domain.StateWaitingCardFront:
		h.SetState(userID, &domain.StateData{
			State:  domain.StateWaitingCardBack,
			DeckID: state.DeckID,
			Front:  text,
		})
		return c.Send("Now send the back of the card", cancelMarkup(btnCancelSheet))

	case domain.StateWaitingCardBack:
		return h.saveNewCard(c, state.Front, text)

	case domain.StateWaitingEditFront:
		h.SetState(userID, &domain.StateData{
			State:  domain.StateWaitingEditBack,
			DeckID: state.DeckID,
			CardID: state.CardID,
			Front:  text,
		})
		return h.askEditBack(c, state)

	case domain.StateWaitingEditBack:
		return h.saveEditedCard(c, state, text)

	default:
		return c.Send(msgMainMenu, mainMenuMarkup())
	}
}

func (h *Handler) createDeck(c tele.Context, title string) error {
	userID := c.Sender().ID

	deck, err := h.deckService.CreateDeck(userID, title)
	if errors.Is(err, service.ErrInvalidTitle) {
		return c.Send("A deck title must be 1 to 64 characters. Try again:", cancelMarkup(btnCancel))
	}
	if err != nil {
		h.logger.Error("Failed to create deck", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgError)
	}

	h.ResetState(userID)
	return h.openDeck(c, deck.ID)
}

func (h *Handler) saveNewCard(c tele.Context, front, back string) error {
	userID := c.Sender().ID

	screen := h.screen(userID)
	if screen == nil {
		h.ResetState(userID)
		return c.Send(msgDeckClosed, mainMenuMarkup())
	}

	card, err := screen.AddCard(front, back)
	switch {
	case errors.Is(err, deckscreen.ErrEmptyCardSide):
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingCardFront, DeckID: screen.Deck().ID})
		return c.Send("Both sides need text. Send the front again:", cancelMarkup(btnCancelSheet))
	case err != nil:
		h.logger.Error("Failed to add card", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgError)
	}

	h.logger.Info("Card added",
		zap.Int64("user_id", userID),
		zap.String("deck_id", screen.Deck().ID.String()),
		zap.String("card_id", card.ID.String()),
	)

	// Stay in the add flow so cards can be entered in a row
	if err := screen.PresentAddCard(); err != nil {
		h.ResetState(userID)
		return h.sendDeck(c, screen)
	}
	h.SetState(userID, &domain.StateData{State: domain.StateWaitingCardFront, DeckID: screen.Deck().ID})

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnBackToDeck))
	return c.Send(fmt.Sprintf("✅ Saved: %s → %s\n\nSend the next front, or go back to the deck.", card.Front, card.Back), markup)
}

func (h *Handler) askEditBack(c tele.Context, state *domain.StateData) error {
	screen := h.screen(c.Sender().ID)
	if screen == nil {
		h.ResetState(c.Sender().ID)
		return c.Send(msgDeckClosed, mainMenuMarkup())
	}

	card, ok := screen.Deck().Card(state.CardID)
	if !ok {
		return c.Send(msgCardMissing, mainMenuMarkup())
	}
	return c.Send(
		fmt.Sprintf("Send the new back (or %s to keep \"%s\")", keepValue, card.Back),
		cancelMarkup(btnCancelSheet),
	)
}

func (h *Handler) saveEditedCard(c tele.Context, state *domain.StateData, back string) error {
	userID := c.Sender().ID

	screen := h.screen(userID)
	if screen == nil {
		h.ResetState(userID)
		return c.Send(msgDeckClosed, mainMenuMarkup())
	}

	card, ok := screen.Deck().Card(state.CardID)
	if !ok {
		h.ResetState(userID)
		screen.Dismiss()
		return h.sendDeck(c, screen)
	}

	if state.Front != keepValue {
		card.Front = state.Front
	}
	if back != keepValue {
		card.Back = back
	}

	h.ResetState(userID)
	err := screen.EditCard(card)
	switch {
	case errors.Is(err, deckscreen.ErrEmptyCardSide):
		screen.Dismiss()
		return c.Send("Both sides need text. The card was not changed.", cancelMarkup(btnBackToDeck))
	case err != nil:
		h.logger.Error("Failed to edit card", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(msgError)
	}

	return h.sendDeck(c, screen)
}
