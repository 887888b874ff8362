package middleware

import (
	"lexideck/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// UserKey is the context key holding the *domain.User loaded by AuthMiddleware
const UserKey = "user"

// Messages shared with the handlers
const (
	MsgError       = "Something went wrong. Please try again later."
	MsgAskPassword = "Hi! This bot is private. Send the password to continue:"
)

// AuthMiddleware lets authorized users through. Unauthorized users may
// only send /start or plain text, which the text handler treats as a
// password attempt.
func AuthMiddleware(authService *service.AuthService, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender() == nil {
				return nil
			}
			userID := c.Sender().ID

			user, err := authService.Ensure(userID)
			if err != nil {
				logger.Error("Failed to ensure user exists in middleware", zap.Error(err))
				return c.Send(MsgError)
			}

			c.Set(UserKey, user)

			if user.Authorized || c.Text() == "/start" || isPasswordAttempt(c) {
				return next(c)
			}

			if c.Callback() != nil {
				return c.Respond(&tele.CallbackResponse{Text: MsgAskPassword, ShowAlert: true})
			}
			return c.Send(MsgAskPassword)
		}
	}
}

// isPasswordAttempt reports whether the update is a plain text message
func isPasswordAttempt(c tele.Context) bool {
	return c.Callback() == nil && c.Message() != nil && c.Text() != "" && c.Text()[0] != '/'
}
