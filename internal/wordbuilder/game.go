package wordbuilder

import (
	"errors"
	"math/rand/v2"
	"strings"
	"unicode"

	"lexideck/internal/domain"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
)

// DefaultChallengeSeconds is the challenge mode session length
const DefaultChallengeSeconds = 60

var (
	ErrGameOver        = errors.New("game is over")
	ErrRoundResolved   = errors.New("round already solved")
	ErrLetterNotFound  = errors.New("letter not found")
	ErrHintUnavailable = errors.New("hint unavailable")
	ErrIncomplete      = errors.New("not all letters are placed")
	ErrUnknownTier     = errors.New("unknown difficulty")
)

// Phase is the round state
type Phase string

const (
	PhaseLoading    Phase = "loading"
	PhaseInProgress Phase = "in_progress"
	PhaseCorrect    Phase = "correct"
	PhaseIncorrect  Phase = "incorrect"
	PhaseGameOver   Phase = "game_over"
)

// WordSource provides the curated words per difficulty
type WordSource interface {
	Len(d domain.Difficulty) int
	Entry(d domain.Difficulty, i int) domain.WordEntry
}

// Result describes the outcome of a Check
type Result struct {
	Correct       bool
	Guess         string
	Word          string
	Points        int
	Distance      int
	Shake         bool
	NewHighScore  bool
	NewBestStreak bool
}

// Game is a Word Builder session
type Game struct {
	words            WordSource
	rng              *rand.Rand
	challengeSeconds int

	difficulty      domain.Difficulty
	phase           Phase
	index           int
	entry           domain.WordEntry
	rack            []domain.Letter
	placed          []domain.Letter
	hintUsed        bool
	definitionShown bool

	score          int
	streak         int
	wordsCompleted int
	stats          domain.GameStats

	challenge bool
	remaining int

	used map[int]struct{}
}

// Option configures a Game
type Option func(*Game)

// WithRand sets the random source used for word picks and shuffles
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// WithChallengeSeconds overrides the challenge countdown length
func WithChallengeSeconds(seconds int) Option {
	return func(g *Game) {
		if seconds > 0 {
			g.challengeSeconds = seconds
		}
	}
}

// WithStats seeds the persisted records
func WithStats(stats domain.GameStats) Option {
	return func(g *Game) { g.stats = stats }
}

// WithDifficulty sets the starting tier
func WithDifficulty(d domain.Difficulty) Option {
	return func(g *Game) {
		if d.Valid() {
			g.difficulty = d
		}
	}
}

// New creates a game and loads its first round
func New(words WordSource, opts ...Option) *Game {
	g := &Game{
		words:            words,
		challengeSeconds: DefaultChallengeSeconds,
		difficulty:       domain.DifficultyEasy,
		phase:            PhaseLoading,
		used:             make(map[int]struct{}),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	g.startRound()
	return g
}

// startRound picks an unused word and scrambles it into the rack
func (g *Game) startRound() {
	g.phase = PhaseLoading
	g.index = g.pickIndex()
	g.entry = g.words.Entry(g.difficulty, g.index)
	g.used[g.index] = struct{}{}

	g.placed = g.placed[:0]
	g.rack = g.rack[:0]
	for _, ch := range g.entry.Word {
		g.rack = append(g.rack, domain.NewLetter(ch))
	}
	g.shuffleRack()
	if rackString(g.rack) == g.entry.Word {
		// single retry; repeated letters can still land in order
		g.shuffleRack()
	}

	g.hintUsed = false
	g.definitionShown = false
	g.phase = PhaseInProgress
}

func (g *Game) pickIndex() int {
	n := g.words.Len(g.difficulty)
	if len(g.used) >= n {
		clear(g.used)
	}

	candidates := make([]int, 0, n-len(g.used))
	for i := 0; i < n; i++ {
		if _, ok := g.used[i]; !ok {
			candidates = append(candidates, i)
		}
	}
	return candidates[g.rng.IntN(len(candidates))]
}

func (g *Game) shuffleRack() {
	g.rng.Shuffle(len(g.rack), func(i, j int) {
		g.rack[i], g.rack[j] = g.rack[j], g.rack[i]
	})
}

func rackString(letters []domain.Letter) string {
	var b strings.Builder
	for _, l := range letters {
		b.WriteRune(l.Char)
	}
	return b.String()
}

// editable checks that the board may change and leaves a failed check
func (g *Game) editable() error {
	switch g.phase {
	case PhaseGameOver:
		return ErrGameOver
	case PhaseCorrect:
		return ErrRoundResolved
	case PhaseIncorrect:
		g.phase = PhaseInProgress
	}
	return nil
}

// Place moves a rack letter into the next open slot
func (g *Game) Place(id uuid.UUID) error {
	i := indexOf(g.rack, id)
	if i < 0 {
		return ErrLetterNotFound
	}
	if err := g.editable(); err != nil {
		return err
	}

	letter := g.rack[i]
	g.rack = append(g.rack[:i], g.rack[i+1:]...)
	g.placed = append(g.placed, letter)
	return nil
}

// Unplace returns a placed letter to the rack
func (g *Game) Unplace(id uuid.UUID) error {
	i := indexOf(g.placed, id)
	if i < 0 {
		return ErrLetterNotFound
	}
	if err := g.editable(); err != nil {
		return err
	}

	letter := g.placed[i]
	g.placed = append(g.placed[:i], g.placed[i+1:]...)
	g.rack = append(g.rack, letter)
	return nil
}

// Shuffle re-randomizes the rack; placed letters stay
func (g *Game) Shuffle() error {
	if err := g.editable(); err != nil {
		return err
	}
	g.shuffleRack()
	return nil
}

// Clear returns every placed letter to the rack and reshuffles
func (g *Game) Clear() error {
	if err := g.editable(); err != nil {
		return err
	}
	g.clearBoard()
	g.shuffleRack()
	return nil
}

func (g *Game) clearBoard() {
	g.rack = append(g.rack, g.placed...)
	g.placed = g.placed[:0]
}

// HintFirstLetter puts the word's first letter into the first slot.
// Only available while no letter is placed.
func (g *Game) HintFirstLetter() error {
	if len(g.placed) > 0 {
		return ErrHintUnavailable
	}
	if err := g.editable(); err != nil {
		return err
	}

	g.clearBoard()
	first := unicode.ToLower([]rune(g.entry.Word)[0])
	for i, l := range g.rack {
		if unicode.ToLower(l.Char) == first {
			g.rack = append(g.rack[:i], g.rack[i+1:]...)
			g.placed = append(g.placed, l)
			g.hintUsed = true
			return nil
		}
	}
	return ErrHintUnavailable
}

// HintDefinition reveals the definition, once per round
func (g *Game) HintDefinition() (string, error) {
	if g.definitionShown {
		return "", ErrHintUnavailable
	}
	if err := g.editable(); err != nil {
		return "", err
	}

	g.definitionShown = true
	g.hintUsed = true
	return g.entry.Definition, nil
}

// CanCheck reports whether every slot is filled
func (g *Game) CanCheck() bool {
	return g.phase == PhaseInProgress && len(g.placed) == g.Slots()
}

// Check compares the placed letters with the word and scores the round
func (g *Game) Check() (Result, error) {
	if g.phase == PhaseGameOver {
		return Result{}, ErrGameOver
	}
	if g.phase == PhaseCorrect {
		return Result{}, ErrRoundResolved
	}
	if len(g.placed) != g.Slots() {
		return Result{}, ErrIncomplete
	}

	guess := strings.ToLower(rackString(g.placed))
	word := strings.ToLower(g.entry.Word)
	res := Result{
		Guess: guess,
		Word:  g.entry.Word,
	}

	if guess != word {
		g.streak = 0
		g.phase = PhaseIncorrect
		res.Shake = true
		res.Distance = levenshtein.ComputeDistance(guess, word)
		return res, nil
	}

	res.Correct = true
	res.Points = Points(g.Slots(), g.challenge, g.remaining, g.hintUsed, g.streak)
	g.score += res.Points
	g.streak++
	g.wordsCompleted++
	g.phase = PhaseCorrect

	if g.streak > g.stats.BestStreak {
		g.stats.BestStreak = g.streak
		res.NewBestStreak = true
	}
	if g.score > g.stats.HighScore {
		g.stats.HighScore = g.score
		res.NewHighScore = true
	}
	return res, nil
}

// NextRound loads a new word. Skipping an unsolved round breaks the streak.
func (g *Game) NextRound() error {
	if g.phase == PhaseGameOver {
		return ErrGameOver
	}
	if g.phase != PhaseCorrect {
		g.streak = 0
	}
	g.startRound()
	return nil
}

// Tick advances the challenge countdown by one second.
// It returns true when this tick ended the game.
func (g *Game) Tick() bool {
	if !g.challenge || g.phase == PhaseGameOver {
		return false
	}

	g.remaining--
	if g.remaining <= 0 {
		g.remaining = 0
		g.phase = PhaseGameOver
		return true
	}
	return false
}

// SetChallenge toggles challenge mode and starts a fresh session
func (g *Game) SetChallenge(on bool) {
	g.challenge = on
	g.Reset()
}

// SetDifficulty switches tier and starts a fresh session
func (g *Game) SetDifficulty(d domain.Difficulty) error {
	if !d.Valid() {
		return ErrUnknownTier
	}
	g.difficulty = d
	g.Reset()
	return nil
}

// Reset zeroes the session and loads a new round
func (g *Game) Reset() {
	g.score = 0
	g.streak = 0
	g.wordsCompleted = 0
	clear(g.used)
	g.remaining = 0
	if g.challenge {
		g.remaining = g.challengeSeconds
	}
	g.startRound()
}

func indexOf(letters []domain.Letter, id uuid.UUID) int {
	for i, l := range letters {
		if l.ID == id {
			return i
		}
	}
	return -1
}
