package wordbuilder

import "lexideck/internal/domain"

// Snapshot is a read-only copy of the game for rendering
type Snapshot struct {
	Difficulty     domain.Difficulty
	Phase          Phase
	Slots          int
	Rack           []domain.Letter
	Placed         []domain.Letter
	Definition     string // empty until revealed
	HintUsed       bool
	CanHintFirst   bool
	CanHintDef     bool
	CanCheck       bool
	Score          int
	Streak         int
	WordsCompleted int
	Stats          domain.GameStats
	Challenge      bool
	Remaining      int
}

// Snapshot copies the current state
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Difficulty:     g.difficulty,
		Phase:          g.phase,
		Slots:          g.Slots(),
		Rack:           g.Rack(),
		Placed:         g.Placed(),
		HintUsed:       g.hintUsed,
		CanHintFirst:   g.editablePhase() && len(g.placed) == 0,
		CanHintDef:     g.editablePhase() && !g.definitionShown,
		CanCheck:       g.CanCheck(),
		Score:          g.score,
		Streak:         g.streak,
		WordsCompleted: g.wordsCompleted,
		Stats:          g.stats,
		Challenge:      g.challenge,
		Remaining:      g.remaining,
	}
	if g.definitionShown {
		s.Definition = g.entry.Definition
	}
	return s
}

func (g *Game) editablePhase() bool {
	return g.phase == PhaseInProgress || g.phase == PhaseIncorrect
}

// Phase returns the round state
func (g *Game) Phase() Phase { return g.phase }

// Entry returns the current word and its definition
func (g *Game) Entry() domain.WordEntry { return g.entry }

// Difficulty returns the active tier
func (g *Game) Difficulty() domain.Difficulty { return g.difficulty }

// Slots returns the number of placement slots, one per letter
func (g *Game) Slots() int { return len([]rune(g.entry.Word)) }

// Rack returns a copy of the unplaced letters
func (g *Game) Rack() []domain.Letter { return append([]domain.Letter(nil), g.rack...) }

// Placed returns a copy of the placed letters in slot order
func (g *Game) Placed() []domain.Letter { return append([]domain.Letter(nil), g.placed...) }

// HintUsed reports whether a hint was taken this round
func (g *Game) HintUsed() bool { return g.hintUsed }

// Score returns the points earned in the current game
func (g *Game) Score() int { return g.score }

// Streak returns the number of consecutive correct words
func (g *Game) Streak() int { return g.streak }

// WordsCompleted returns the words solved in the current game
func (g *Game) WordsCompleted() int { return g.wordsCompleted }

// Stats returns the high score and best streak
func (g *Game) Stats() domain.GameStats { return g.stats }

// Challenge reports whether the challenge clock is on
func (g *Game) Challenge() bool { return g.challenge }

// Remaining returns the challenge seconds left
func (g *Game) Remaining() int { return g.remaining }
