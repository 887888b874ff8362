package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"lexideck/internal/domain"
	"lexideck/internal/study"
	"lexideck/internal/wordbuilder"

	tele "gopkg.in/telebot.v3"
)

const (
	cardsPerPage   = 8
	lettersPerRow  = 5
	buttonTextSize = 32
)

var masteryIcons = map[domain.MasteryLevel]string{
	domain.MasteryNew:      "🆕",
	domain.MasteryLearning: "📖",
	domain.MasteryMastered: "✅",
}

var difficultyLabels = map[domain.Difficulty]string{
	domain.DifficultyEasy:   "Easy",
	domain.DifficultyMedium: "Medium",
	domain.DifficultyHard:   "Hard",
}

func masteryIcon(level domain.MasteryLevel) string {
	if icon, ok := masteryIcons[level]; ok {
		return icon
	}
	return "❔"
}

// truncate shortens s to n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func chunk(btns []tele.Btn, size int) []tele.Row {
	var rows []tele.Row
	for len(btns) > 0 {
		n := min(size, len(btns))
		rows = append(rows, tele.Row(btns[:n]))
		btns = btns[n:]
	}
	return rows
}

// Decks

func deckListText(decks []domain.DeckSummary, now time.Time) string {
	var b strings.Builder
	b.WriteString("📚 Your decks:\n\n")
	for _, d := range decks {
		fmt.Fprintf(&b, "• %s (%d cards, updated %s)\n", d.Title, d.CardCount, domain.RelativeDay(d.UpdatedAt, now))
	}
	return b.String()
}

func deckListMarkup(decks []domain.DeckSummary) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}
	for _, d := range decks {
		label := fmt.Sprintf("%s (%d)", truncate(d.Title, buttonTextSize), d.CardCount)
		rows = append(rows, markup.Row(markup.Data(label, prefixDeck+d.ID.String())))
	}
	rows = append(rows, markup.Row(btnNewDeck), markup.Row(btnMainMenu))
	markup.Inline(rows...)
	return markup
}

func deckDetailText(deck *domain.Deck, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📚 %s\n\n", deck.Title)
	fmt.Fprintf(&b, "Cards: %d · Mastery: %.0f%%\n", deck.Len(), deck.MasteryPercentage())
	fmt.Fprintf(&b, "%s New: %d · %s Learning: %d · %s Mastered: %d\n",
		masteryIcon(domain.MasteryNew), deck.CountByMastery(domain.MasteryNew),
		masteryIcon(domain.MasteryLearning), deck.CountByMastery(domain.MasteryLearning),
		masteryIcon(domain.MasteryMastered), deck.CountByMastery(domain.MasteryMastered),
	)
	fmt.Fprintf(&b, "Updated: %s", domain.RelativeDay(deck.UpdatedAt, now))

	if deck.IsEmpty() {
		b.WriteString("\n\nNo cards yet. Add your first card to start studying.")
	}
	return b.String()
}

// deckMarkup lists one page of cards and the deck actions
func deckMarkup(deck *domain.Deck, page int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	rows := []tele.Row{}

	totalPages := (deck.Len() + cardsPerPage - 1) / cardsPerPage
	page = max(0, min(page, totalPages-1))

	start := page * cardsPerPage
	end := min(start+cardsPerPage, deck.Len())
	for _, card := range deck.Cards[start:end] {
		label := fmt.Sprintf("%s %s · %s", masteryIcon(card.Mastery), truncate(card.Front, buttonTextSize/2), truncate(card.Back, buttonTextSize/2))
		rows = append(rows, markup.Row(markup.Data(label, prefixCard+card.ID.String())))
	}

	if totalPages > 1 {
		navRow := tele.Row{}
		if page > 0 {
			navRow = append(navRow, markup.Data("⬅️", prefixDeckPage+strconv.Itoa(page-1)))
		}
		if page < totalPages-1 {
			navRow = append(navRow, markup.Data("➡️", prefixDeckPage+strconv.Itoa(page+1)))
		}
		rows = append(rows, navRow)
	}

	rows = append(rows,
		markup.Row(btnAddCard, btnStudy),
		markup.Row(btnDeleteDeck),
		markup.Row(btnDecks, btnMainMenu),
	)
	markup.Inline(rows...)
	return markup
}

func cardText(card domain.Flashcard) string {
	return fmt.Sprintf("🃏 %s\n\n%s\n\n%s %s", card.Front, card.Back, masteryIcon(card.Mastery), card.Mastery)
}

func cardMarkup(card domain.Flashcard) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	id := card.ID.String()

	levels := tele.Row{}
	for _, level := range domain.MasteryLevels {
		if level == card.Mastery {
			continue
		}
		levels = append(levels, markup.Data(masteryIcon(level)+" "+string(level), prefixMastery+string(level)+"_"+id))
	}

	markup.Inline(
		markup.Row(markup.Data("✏️ Edit", prefixCardEdit+id), markup.Data("🗑 Delete", prefixCardDelete+id)),
		levels,
		markup.Row(btnBackToDeck),
	)
	return markup
}

// Study

func studyPickerMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("🃏 Classic", prefixStudyMode+string(domain.StudyClassic))),
		markup.Row(markup.Data("❓ Quiz", prefixStudyMode+string(domain.StudyQuiz))),
		markup.Row(markup.Data("🧩 Match", prefixStudyMode+string(domain.StudyMatch))),
		markup.Row(btnBackToDeck),
	)
	return markup
}

func classicText(c *study.Classic) string {
	card, _ := c.Current()
	pos, total := c.Progress()

	text := fmt.Sprintf("🃏 Classic · %d/%d\n\n%s", pos, total, card.Front)
	if c.Flipped() {
		text += "\n\n" + card.Back + "\n\nHow well did you know it?"
	}
	return text
}

func classicMarkup(c *study.Classic) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	if !c.Flipped() {
		markup.Inline(markup.Row(btnFlip), markup.Row(btnEndStudy))
		return markup
	}

	markup.Inline(
		markup.Row(
			markup.Data("🆕 Again", prefixRate+string(domain.MasteryNew)),
			markup.Data("📖 Almost", prefixRate+string(domain.MasteryLearning)),
			markup.Data("✅ Knew it", prefixRate+string(domain.MasteryMastered)),
		),
		markup.Row(btnEndStudy),
	)
	return markup
}

func quizText(q *study.Quiz) string {
	front, _, _ := q.Question()
	correct, asked := q.Score()
	return fmt.Sprintf("❓ Quiz · %d/%d · Score: %d\n\n%s\n\nPick the matching answer:", asked+1, q.Total(), correct, front)
}

func quizMarkup(q *study.Quiz) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	_, choices, _ := q.Question()

	rows := make([]tele.Row, 0, len(choices)+1)
	for i, choice := range choices {
		rows = append(rows, markup.Row(markup.Data(truncate(choice, buttonTextSize), prefixQuiz+strconv.Itoa(i))))
	}
	rows = append(rows, markup.Row(btnEndStudy))
	markup.Inline(rows...)
	return markup
}

func matchText(m *study.Match) string {
	return fmt.Sprintf("🧩 Match · Mistakes: %d\n\nPick a word on the left, then its meaning on the right.", m.Mistakes())
}

// matchMarkup lays fronts and backs out as two columns
func matchMarkup(m *study.Match) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	fronts, backs := m.Fronts(), m.Backs()

	rows := make([]tele.Row, 0, len(fronts)+1)
	for i := range fronts {
		rows = append(rows, markup.Row(
			markup.Data(tileLabel(fronts[i], fronts[i].CardID == m.Selected()), prefixMatchFront+fronts[i].CardID.String()),
			markup.Data(tileLabel(backs[i], false), prefixMatchBack+backs[i].CardID.String()),
		))
	}
	rows = append(rows, markup.Row(btnEndStudy))
	markup.Inline(rows...)
	return markup
}

func tileLabel(t study.Tile, selected bool) string {
	switch {
	case t.Matched:
		return "✓"
	case selected:
		return "▶ " + truncate(t.Text, buttonTextSize/2)
	}
	return truncate(t.Text, buttonTextSize/2)
}

func studySummaryText(session study.Session, deck *domain.Deck) string {
	var result string
	switch s := session.(type) {
	case *study.Classic:
		_, total := s.Progress()
		result = fmt.Sprintf("Cards rated: %d of %d", len(s.Updates()), total)
	case *study.Quiz:
		correct, asked := s.Score()
		result = fmt.Sprintf("Score: %d/%d", correct, asked)
	case *study.Match:
		result = fmt.Sprintf("Mistakes: %d", s.Mistakes())
	}
	return fmt.Sprintf("🏁 Study finished\n\n%s\nDeck mastery: %.0f%%", result, deck.MasteryPercentage())
}

// Word Builder

func difficultyLabel(d domain.Difficulty) string {
	if label, ok := difficultyLabels[d]; ok {
		return label
	}
	return string(d)
}

func letterLabel(l domain.Letter) string {
	return string(unicode.ToUpper(l.Char))
}

func boardText(snap wordbuilder.Snapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧩 Word Builder · %s\n", difficultyLabel(snap.Difficulty))
	fmt.Fprintf(&b, "Score: %d · Streak: %d · Words: %d\n", snap.Score, snap.Streak, snap.WordsCompleted)
	fmt.Fprintf(&b, "🏆 High score: %d · Best streak: %d\n", snap.Stats.HighScore, snap.Stats.BestStreak)
	if snap.Challenge {
		fmt.Fprintf(&b, "⏱ %ds left\n", snap.Remaining)
	}

	if snap.Phase == wordbuilder.PhaseGameOver {
		fmt.Fprintf(&b, "\n⌛ Time's up! Final score: %d, words solved: %d", snap.Score, snap.WordsCompleted)
		return b.String()
	}

	slots := make([]string, 0, snap.Slots)
	for _, l := range snap.Placed {
		slots = append(slots, letterLabel(l))
	}
	for len(slots) < snap.Slots {
		slots = append(slots, "_")
	}
	fmt.Fprintf(&b, "\n%s\n", strings.Join(slots, " "))

	if snap.Definition != "" {
		fmt.Fprintf(&b, "\n💡 %s\n", snap.Definition)
	}

	switch snap.Phase {
	case wordbuilder.PhaseCorrect:
		b.WriteString("\n✅ Correct!")
	case wordbuilder.PhaseIncorrect:
		b.WriteString("\n❌ Not quite. Rearrange the letters and try again.")
	}
	return strings.TrimRight(b.String(), "\n")
}

// boardMarkup renders the slots and the rack as letter buttons and the
// game controls below them
func boardMarkup(snap wordbuilder.Snapshot) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	if snap.Phase == wordbuilder.PhaseGameOver {
		markup.Inline(
			markup.Row(markup.Data("🔄 New game", "wb_new")),
			markup.Row(btnMainMenu),
		)
		return markup
	}

	rows := []tele.Row{}

	placed := make([]tele.Btn, 0, len(snap.Placed))
	for _, l := range snap.Placed {
		placed = append(placed, markup.Data(letterLabel(l), prefixUnplace+l.ID.String()))
	}
	rows = append(rows, chunk(placed, lettersPerRow)...)

	rack := make([]tele.Btn, 0, len(snap.Rack))
	for _, l := range snap.Rack {
		rack = append(rack, markup.Data(letterLabel(l), prefixPlace+l.ID.String()))
	}
	rows = append(rows, chunk(rack, lettersPerRow)...)

	if snap.Phase == wordbuilder.PhaseCorrect {
		rows = append(rows, markup.Row(markup.Data("➡️ Next word", "wb_next")))
	} else {
		rows = append(rows, markup.Row(markup.Data("🔀 Shuffle", "wb_shuffle"), markup.Data("↩️ Clear", "wb_clear")))

		hints := tele.Row{}
		if snap.CanHintFirst {
			hints = append(hints, markup.Data("🔤 First letter", "wb_hint_letter"))
		}
		if snap.CanHintDef {
			hints = append(hints, markup.Data("📖 Definition", "wb_hint_def"))
		}
		if len(hints) > 0 {
			rows = append(rows, hints)
		}

		play := tele.Row{}
		if snap.CanCheck {
			play = append(play, markup.Data("✔️ Check", "wb_check"))
		}
		play = append(play, markup.Data("⏭ Skip", "wb_next"))
		rows = append(rows, play)
	}

	challenge := "⏱ Challenge: off"
	if snap.Challenge {
		challenge = "⏱ Challenge: on"
	}
	rows = append(rows,
		markup.Row(markup.Data(challenge, "wb_challenge"), markup.Data("🎚 "+difficultyLabel(snap.Difficulty), "wb_difficulty")),
		markup.Row(markup.Data("🔄 New game", "wb_new"), btnMainMenu),
	)
	markup.Inline(rows...)
	return markup
}

func difficultyMarkup(current domain.Difficulty) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	row := tele.Row{}
	for _, d := range domain.Difficulties {
		label := difficultyLabel(d)
		if d == current {
			label = "• " + label
		}
		row = append(row, markup.Data(label, prefixDifficulty+string(d)))
	}
	markup.Inline(row, markup.Row(btnWordBuilder))
	return markup
}

// resultText is the toast shown after a check
func resultText(res wordbuilder.Result) string {
	if !res.Correct {
		if res.Distance <= 2 {
			return "❌ So close! Not quite."
		}
		return "❌ Not quite, try again"
	}

	text := fmt.Sprintf("✅ +%d points", res.Points)
	if res.NewHighScore {
		text += " · New high score!"
	} else if res.NewBestStreak {
		text += " · New best streak!"
	}
	return text
}
