package handler

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Dynamic callback data prefixes
const (
	prefixDeck       = "deck_"
	prefixDeckPage   = "dpage_"
	prefixCard       = "card_"
	prefixCardEdit   = "card_edit_"
	prefixCardDelete = "card_del_"
	prefixMastery    = "cm_"
	prefixStudyMode  = "mode_"
	prefixRate       = "rate_"
	prefixQuiz       = "quiz_"
	prefixMatchFront = "mf_"
	prefixMatchBack  = "mb_"
	prefixPlace      = "wb_p_"
	prefixUnplace    = "wb_u_"
	prefixDifficulty = "wb_diff_"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// parseID extracts the uuid following prefix
func parseID(data, prefix string) (uuid.UUID, error) {
	return uuid.Parse(strings.TrimPrefix(data, prefix))
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	// If message is not modified, it means it was already edited by another callback
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	// Always acknowledge callback before sending new message
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// show edits the message if this is a callback, sends a new one otherwise
func (h *Handler) show(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	return h.showToast(c, text, markup, "")
}

// showToast is show with a short notification on the callback
func (h *Handler) showToast(c tele.Context, text string, markup *tele.ReplyMarkup, toast string) error {
	if c.Callback() == nil {
		return c.Send(text, markup)
	}

	if err := c.Edit(text, markup); err != nil {
		if handleErr := h.handleEditError(err, c, c.Sender().ID); handleErr == nil {
			return nil // Message was already modified, just acknowledged
		}
		return c.Send(text, markup)
	}

	if toast == "" {
		return c.Respond()
	}
	return c.Respond(&tele.CallbackResponse{Text: toast})
}

// alert answers a callback with a popup, or sends a message otherwise
func alert(c tele.Context, text string) error {
	if c.Callback() == nil {
		return c.Send(text)
	}
	return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	data := cleanCallbackData(callback.Data)
	if callback.Unique != "" {
		data = callback.Unique
	}
	userID := c.Sender().ID

	h.logger.Debug("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.Int64("user_id", userID),
	)

	unlock := h.lockUser(userID)
	defer unlock()

	switch data {
	case "main_menu":
		return h.handleStart(c)
	case "cancel":
		return h.handleCancel(c)
	case "decks":
		return h.handleDecks(c)
	case "new_deck":
		return h.handleNewDeck(c)
	case "deck_view", "sheet_cancel":
		return h.handleDeckView(c)
	case "add_card":
		return h.handleAddCard(c)
	case "study":
		return h.handleStudyPicker(c)
	case "delete_deck":
		return h.handleDeleteDeck(c)
	case "delete_deck_yes":
		return h.handleConfirmDeleteDeck(c)
	case "study_flip":
		return h.handleFlip(c)
	case "study_end":
		return h.handleEndStudy(c)
	case "word_builder":
		return h.handleWordBuilder(c)
	case "wb_shuffle", "wb_clear", "wb_hint_letter", "wb_hint_def", "wb_check",
		"wb_next", "wb_challenge", "wb_new":
		return h.handleGameAction(c, data)
	case "wb_difficulty":
		return h.handleDifficultyPicker(c)
	}

	// Handle by Data prefix (dynamic buttons)
	switch {
	case strings.HasPrefix(data, prefixDeckPage):
		return h.handleDeckPage(c, data)
	case strings.HasPrefix(data, prefixDeck):
		return h.handleOpenDeck(c, data)
	case strings.HasPrefix(data, prefixCardEdit):
		return h.handleEditCard(c, data)
	case strings.HasPrefix(data, prefixCardDelete):
		return h.handleDeleteCard(c, data)
	case strings.HasPrefix(data, prefixCard):
		return h.handleCardView(c, data)
	case strings.HasPrefix(data, prefixMastery):
		return h.handleSetMastery(c, data)
	case strings.HasPrefix(data, prefixStudyMode):
		return h.handleLaunchStudy(c, data)
	case strings.HasPrefix(data, prefixRate):
		return h.handleRate(c, data)
	case strings.HasPrefix(data, prefixQuiz):
		return h.handleQuizAnswer(c, data)
	case strings.HasPrefix(data, prefixMatchFront), strings.HasPrefix(data, prefixMatchBack):
		return h.handleMatchSelect(c, data)
	case strings.HasPrefix(data, prefixPlace), strings.HasPrefix(data, prefixUnplace):
		return h.handleLetter(c, data)
	case strings.HasPrefix(data, prefixDifficulty):
		return h.handleSetDifficulty(c, data)
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}

// handleCancel cancels current text input and returns to the main menu
func (h *Handler) handleCancel(c tele.Context) error {
	h.ResetState(c.Sender().ID)
	return h.show(c, msgMainMenu, mainMenuMarkup())
}
