package handler

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"strings"

	"lexideck/internal/deckscreen"
	"lexideck/internal/domain"
	"lexideck/internal/study"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const msgNoStudy = "This study session has ended."

// handleStudyPicker shows the study mode choice
func (h *Handler) handleStudyPicker(c tele.Context) error {
	screen := h.screen(c.Sender().ID)
	if screen == nil {
		return alert(c, msgDeckClosed)
	}
	if screen.Deck().IsEmpty() {
		return alert(c, "Add some cards before studying.")
	}
	return h.show(c, "🎓 "+screen.Deck().Title+"\n\nChoose a study mode:", studyPickerMarkup())
}

// handleLaunchStudy starts a study session on the open deck
func (h *Handler) handleLaunchStudy(c tele.Context, data string) error {
	userID := c.Sender().ID
	mode := domain.StudyMode(strings.TrimPrefix(data, prefixStudyMode))

	screen := h.screen(userID)
	if screen == nil {
		return alert(c, msgDeckClosed)
	}

	screen.Dismiss()
	err := screen.LaunchStudy(mode)
	switch {
	case errors.Is(err, deckscreen.ErrEmptyDeck):
		return alert(c, "Add some cards before studying.")
	case err != nil:
		return c.Respond(&tele.CallbackResponse{Text: "Unknown study mode"})
	}

	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	session, err := study.New(mode, screen.Deck().Cards, rng)
	if err != nil {
		screen.Dismiss()
		h.logger.Error("Failed to start study session", zap.Error(err))
		return alert(c, msgError)
	}

	h.setStudySession(userID, session)
	h.logger.Info("Study session started",
		zap.Int64("user_id", userID),
		zap.String("deck_id", screen.Deck().ID.String()),
		zap.String("mode", string(mode)),
	)
	return h.showStudy(c, session, "")
}

// showStudy renders the session, or its summary once done
func (h *Handler) showStudy(c tele.Context, session study.Session, toast string) error {
	if session.Done() {
		return h.finishStudy(c, session, toast)
	}

	var text string
	var markup *tele.ReplyMarkup
	switch s := session.(type) {
	case *study.Classic:
		text, markup = classicText(s), classicMarkup(s)
	case *study.Quiz:
		text, markup = quizText(s), quizMarkup(s)
	case *study.Match:
		text, markup = matchText(s), matchMarkup(s)
	}
	return h.showToast(c, text, markup, toast)
}

// finishStudy applies the recorded mastery changes and closes the session
func (h *Handler) finishStudy(c tele.Context, session study.Session, toast string) error {
	userID := c.Sender().ID
	h.setStudySession(userID, nil)

	screen := h.screen(userID)
	if screen == nil {
		return alert(c, msgDeckClosed)
	}

	updates := session.Updates()
	if err := screen.ApplyMastery(updates); err != nil {
		h.logger.Error("Failed to apply study results", zap.Error(err), zap.Int64("user_id", userID))
		return alert(c, msgError)
	}
	screen.Dismiss()

	h.logger.Info("Study session finished",
		zap.Int64("user_id", userID),
		zap.String("deck_id", screen.Deck().ID.String()),
		zap.Int("updated", len(updates)),
	)

	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(btnStudy, btnBackToDeck))
	return h.showToast(c, studySummaryText(session, screen.Deck()), markup, toast)
}

// handleEndStudy finishes the session early, keeping the progress made
func (h *Handler) handleEndStudy(c tele.Context) error {
	session := h.studySession(c.Sender().ID)
	if session == nil {
		return h.handleDeckView(c)
	}
	return h.finishStudy(c, session, "")
}

// handleFlip turns the classic card over
func (h *Handler) handleFlip(c tele.Context) error {
	classic, ok := h.studySession(c.Sender().ID).(*study.Classic)
	if !ok {
		return alert(c, msgNoStudy)
	}
	if err := classic.Flip(); err != nil {
		return alert(c, msgNoStudy)
	}
	return h.showStudy(c, classic, "")
}

// handleRate records the learner's rating of the classic card
func (h *Handler) handleRate(c tele.Context, data string) error {
	classic, ok := h.studySession(c.Sender().ID).(*study.Classic)
	if !ok {
		return alert(c, msgNoStudy)
	}

	level := domain.MasteryLevel(strings.TrimPrefix(data, prefixRate))
	err := classic.Rate(level)
	switch {
	case errors.Is(err, study.ErrNotRevealed):
		return c.Respond(&tele.CallbackResponse{Text: "Flip the card first"})
	case err != nil:
		return alert(c, msgNoStudy)
	}
	return h.showStudy(c, classic, "")
}

// handleQuizAnswer checks a quiz choice
func (h *Handler) handleQuizAnswer(c tele.Context, data string) error {
	quiz, ok := h.studySession(c.Sender().ID).(*study.Quiz)
	if !ok {
		return alert(c, msgNoStudy)
	}

	choice, err := strconv.Atoi(strings.TrimPrefix(data, prefixQuiz))
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Invalid choice"})
	}

	correct, answer, err := quiz.Answer(choice)
	if err != nil {
		return alert(c, msgNoStudy)
	}

	toast := "✅ Correct!"
	if !correct {
		toast = "❌ It was: " + answer
	}
	return h.showStudy(c, quiz, toast)
}

// handleMatchSelect selects a front or tries a back on the match board
func (h *Handler) handleMatchSelect(c tele.Context, data string) error {
	match, ok := h.studySession(c.Sender().ID).(*study.Match)
	if !ok {
		return alert(c, msgNoStudy)
	}

	if strings.HasPrefix(data, prefixMatchFront) {
		id, err := parseID(data, prefixMatchFront)
		if err != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Unknown tile"})
		}
		if err := match.SelectFront(id); err != nil {
			return c.Respond(&tele.CallbackResponse{Text: "Pick another word"})
		}
		return h.showStudy(c, match, "")
	}

	id, err := parseID(data, prefixMatchBack)
	if err != nil {
		return c.Respond(&tele.CallbackResponse{Text: "Unknown tile"})
	}
	matched, err := match.SelectBack(id)
	switch {
	case errors.Is(err, study.ErrNoSelection):
		return c.Respond(&tele.CallbackResponse{Text: "Pick a word first"})
	case err != nil:
		return c.Respond(&tele.CallbackResponse{Text: "Pick another meaning"})
	}

	toast := "✅ Match!"
	if !matched {
		toast = "❌ Not a pair"
	}
	return h.showStudy(c, match, toast)
}
