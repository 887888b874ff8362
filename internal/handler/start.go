package handler

import (
	"lexideck/internal/domain"
	"lexideck/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	msgError         = middleware.MsgError
	msgMainMenu      = "🏠 Main menu\n\nChoose what to do:"
	msgAskPassword   = middleware.MsgAskPassword
	msgWrongPassword = "Wrong password"
	msgAuthorized    = "✅ Access granted!\n\n" + msgMainMenu
)

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	user, err := h.currentUser(c)
	if err != nil {
		h.logger.Error("Failed to load user", zap.Error(err))
		return c.Send(msgError)
	}

	if !user.Authorized {
		h.SetState(userID, &domain.StateData{State: domain.StateWaitingPassword})
		return c.Send(msgAskPassword)
	}

	h.ResetState(userID)
	h.closeDeck(userID)
	h.gameService.End(userID)
	return h.show(c, msgMainMenu, mainMenuMarkup())
}

// currentUser returns the user loaded by the auth middleware, falling back
// to the repository
func (h *Handler) currentUser(c tele.Context) (*domain.User, error) {
	if user, ok := c.Get(middleware.UserKey).(*domain.User); ok && user != nil {
		return user, nil
	}
	return h.authService.Ensure(c.Sender().ID)
}

// handlePassword authorizes the user when the text matches the bot password
func (h *Handler) handlePassword(c tele.Context, text string) error {
	userID := c.Sender().ID

	if !h.authService.CheckPassword(text) {
		return c.Send(msgWrongPassword)
	}

	if err := h.authService.Authorize(userID); err != nil {
		h.logger.Error("Failed to authorize user", zap.Error(err))
		return c.Send(msgError)
	}

	h.logger.Info("User authorized", zap.Int64("user_id", userID))
	h.ResetState(userID)
	return c.Send(msgAuthorized, mainMenuMarkup())
}
