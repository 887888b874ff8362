package handler

import (
	"errors"
	"strings"

	"lexideck/internal/domain"
	"lexideck/internal/wordbuilder"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleWordBuilder shows the user's Word Builder board
func (h *Handler) handleWordBuilder(c tele.Context) error {
	userID := c.Sender().ID
	h.ResetState(userID)

	snap, err := h.gameService.Snapshot(userID)
	if err != nil {
		h.logger.Error("Failed to load game", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, msgError)
	}
	return h.show(c, boardText(snap), boardMarkup(snap))
}

// handleLetter moves a letter between the rack and the slots
func (h *Handler) handleLetter(c tele.Context, data string) error {
	place := strings.HasPrefix(data, prefixPlace)
	prefix := prefixUnplace
	if place {
		prefix = prefixPlace
	}

	id, err := parseID(data, prefix)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown letter"})
	}

	return h.playGame(c, func(g *wordbuilder.Game) (string, error) {
		if place {
			return "", g.Place(id)
		}
		return "", g.Unplace(id)
	})
}

// handleGameAction runs one of the board buttons
func (h *Handler) handleGameAction(c tele.Context, action string) error {
	return h.playGame(c, func(g *wordbuilder.Game) (string, error) {
		switch action {
		case "wb_shuffle":
			return "", g.Shuffle()
		case "wb_clear":
			return "", g.Clear()
		case "wb_hint_letter":
			return "💡 First letter placed", g.HintFirstLetter()
		case "wb_hint_def":
			_, err := g.HintDefinition()
			return "", err
		case "wb_check":
			res, err := g.Check()
			if err != nil {
				return "", err
			}
			return resultText(res), nil
		case "wb_next":
			return "", g.NextRound()
		case "wb_challenge":
			g.SetChallenge(!g.Challenge())
			if g.Challenge() {
				return "⏱ Challenge on, the clock is running", nil
			}
			return "Challenge off", nil
		case "wb_new":
			g.Reset()
			return "🔄 New game", nil
		}
		return "", nil
	})
}

// handleDifficultyPicker shows the difficulty choice
func (h *Handler) handleDifficultyPicker(c tele.Context) error {
	snap, err := h.gameService.Snapshot(c.Sender().ID)
	if err != nil {
		h.logger.Error("Failed to load game", zap.Error(err))
		return alert(c, msgError)
	}
	return h.show(c, "🎚 Choose a difficulty. This starts a new game.", difficultyMarkup(snap.Difficulty))
}

// handleSetDifficulty switches tier and starts over
func (h *Handler) handleSetDifficulty(c tele.Context, data string) error {
	d := domain.Difficulty(strings.TrimPrefix(data, prefixDifficulty))
	return h.playGame(c, func(g *wordbuilder.Game) (string, error) {
		return "", g.SetDifficulty(d)
	})
}

// playGame runs an action on the user's game and renders the board.
// The action returns an optional toast.
func (h *Handler) playGame(c tele.Context, action func(g *wordbuilder.Game) (string, error)) error {
	userID := c.Sender().ID

	var toast string
	snap, err := h.gameService.Do(userID, func(g *wordbuilder.Game) error {
		var actionErr error
		toast, actionErr = action(g)
		return actionErr
	})
	if err != nil {
		if msg, ok := gameErrorText(err); ok {
			if !errors.Is(err, wordbuilder.ErrGameOver) {
				return c.Respond(&tele.CallbackResponse{Text: msg})
			}
			toast = msg
		} else {
			h.logger.Error("Game action failed", zap.Error(err), zap.Int64("user_id", userID))
			return alert(c, msgError)
		}
	}

	return h.showToast(c, boardText(snap), boardMarkup(snap), toast)
}

// notifyTimeUp sends the final board when a challenge runs out
func (h *Handler) notifyTimeUp(userID int64, snap wordbuilder.Snapshot) {
	if _, err := h.bot.Send(&tele.User{ID: userID}, boardText(snap), boardMarkup(snap)); err != nil {
		h.logger.Warn("Failed to send time up message",
			zap.Error(err),
			zap.Int64("user_id", userID),
		)
	}
}

// gameErrorText maps engine errors to a player facing message
func gameErrorText(err error) (string, bool) {
	switch {
	case errors.Is(err, wordbuilder.ErrGameOver):
		return "⌛ Time's up! Start a new game.", true
	case errors.Is(err, wordbuilder.ErrRoundResolved):
		return "Already solved, go to the next word", true
	case errors.Is(err, wordbuilder.ErrLetterNotFound):
		return "That letter has moved", true
	case errors.Is(err, wordbuilder.ErrHintUnavailable):
		return "Hint not available now", true
	case errors.Is(err, wordbuilder.ErrIncomplete):
		return "Place all the letters first", true
	case errors.Is(err, wordbuilder.ErrUnknownTier):
		return "Unknown difficulty", true
	}
	return "", false
}
