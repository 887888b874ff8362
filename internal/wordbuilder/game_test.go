package wordbuilder

import (
	"math/rand/v2"
	"sort"
	"testing"

	"lexideck/internal/domain"
	"lexideck/internal/wordlist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedWords map[domain.Difficulty][]domain.WordEntry

func (f fixedWords) Len(d domain.Difficulty) int { return len(f[d]) }

func (f fixedWords) Entry(d domain.Difficulty, i int) domain.WordEntry { return f[d][i] }

func singleWord(word string) fixedWords {
	entries := []domain.WordEntry{{Word: word, Definition: "definition of " + word}}
	return fixedWords{
		domain.DifficultyEasy:   entries,
		domain.DifficultyMedium: entries,
		domain.DifficultyHard:   entries,
	}
}

func newTestGame(words WordSource, opts ...Option) *Game {
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(7, 11)))}, opts...)
	return New(words, opts...)
}

// placeWord places rack letters so the slots spell word
func placeWord(t *testing.T, g *Game, word string) {
	t.Helper()
	for _, ch := range word {
		found := false
		for _, l := range g.Rack() {
			if l.Char == ch {
				require.NoError(t, g.Place(l.ID))
				found = true
				break
			}
		}
		require.True(t, found, "letter %q not on rack", ch)
	}
}

func sortedChars(letters []domain.Letter) string {
	runes := make([]rune, 0, len(letters))
	for _, l := range letters {
		runes = append(runes, l.Char)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}

func sortedWord(word string) string {
	runes := []rune(word)
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}

func TestGame_EveryWordOncePerCycle(t *testing.T) {
	list, err := wordlist.Default()
	require.NoError(t, err)

	for _, d := range domain.Difficulties {
		t.Run(string(d), func(t *testing.T) {
			g := newTestGame(list, WithDifficulty(d))
			n := list.Len(d)

			for cycle := 0; cycle < 3; cycle++ {
				seen := make(map[string]int)
				for i := 0; i < n; i++ {
					if cycle > 0 || i > 0 {
						require.NoError(t, g.NextRound())
					}
					seen[g.Entry().Word]++
				}

				assert.Len(t, seen, n, "cycle %d", cycle)
				for word, count := range seen {
					assert.Equal(t, 1, count, "word %s in cycle %d", word, cycle)
				}
			}
		})
	}
}

func TestGame_RackHoldsWordLetters(t *testing.T) {
	g := newTestGame(singleWord("banana"))

	assert.Equal(t, PhaseInProgress, g.Phase())
	assert.Equal(t, sortedWord("banana"), sortedChars(g.Rack()))
	assert.Empty(t, g.Placed())

	rack := g.Rack()
	require.NoError(t, g.Place(rack[0].ID))
	require.NoError(t, g.Place(rack[3].ID))

	assert.Len(t, g.Placed(), 2)
	assert.Len(t, g.Rack(), 4)
	assert.Equal(t, sortedWord("banana"), sortedChars(append(g.Rack(), g.Placed()...)))

	require.NoError(t, g.Shuffle())
	assert.Len(t, g.Placed(), 2)
	assert.Equal(t, sortedWord("banana"), sortedChars(append(g.Rack(), g.Placed()...)))
}

func TestGame_PlaceIsFIFO(t *testing.T) {
	g := newTestGame(singleWord("planet"))
	rack := g.Rack()

	require.NoError(t, g.Place(rack[2].ID))
	require.NoError(t, g.Place(rack[0].ID))
	require.NoError(t, g.Place(rack[5].ID))

	placed := g.Placed()
	require.Len(t, placed, 3)
	assert.Equal(t, rack[2].ID, placed[0].ID)
	assert.Equal(t, rack[0].ID, placed[1].ID)
	assert.Equal(t, rack[5].ID, placed[2].ID)
}

func TestGame_UnplaceAndClear(t *testing.T) {
	g := newTestGame(singleWord("planet"))
	rack := g.Rack()

	require.NoError(t, g.Place(rack[0].ID))
	require.NoError(t, g.Place(rack[1].ID))
	require.NoError(t, g.Unplace(rack[0].ID))

	assert.Len(t, g.Placed(), 1)
	assert.Equal(t, rack[1].ID, g.Placed()[0].ID)
	assert.Equal(t, ErrLetterNotFound, g.Unplace(rack[0].ID))

	require.NoError(t, g.Clear())
	assert.Empty(t, g.Placed())
	assert.Len(t, g.Rack(), 6)
	assert.Equal(t, sortedWord("planet"), sortedChars(g.Rack()))
}

func TestGame_DuplicateLettersHaveDistinctIDs(t *testing.T) {
	g := newTestGame(singleWord("letter"))

	ids := make(map[string]bool)
	for _, l := range g.Rack() {
		ids[l.ID.String()] = true
	}
	assert.Len(t, ids, 6)
}

func TestGame_ScrambleRarelyMatchesWord(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		g := New(singleWord("abcdef"), WithRand(rand.New(rand.NewPCG(seed, seed))))
		assert.NotEqual(t, "abcdef", rackString(g.Rack()), "seed %d", seed)
	}
}

func TestGame_CorrectScore(t *testing.T) {
	g := newTestGame(singleWord("planet"))

	placeWord(t, g, "planet")
	require.True(t, g.CanCheck())

	res, err := g.Check()
	require.NoError(t, err)

	assert.True(t, res.Correct)
	assert.Equal(t, 60, res.Points)
	assert.Equal(t, 60, g.Score())
	assert.Equal(t, 1, g.Streak())
	assert.Equal(t, 1, g.WordsCompleted())
	assert.Equal(t, PhaseCorrect, g.Phase())
}

func TestGame_StreakBonus(t *testing.T) {
	g := newTestGame(singleWord("planet"))

	expected := []int{60, 65, 70}
	total := 0
	for i, points := range expected {
		if i > 0 {
			require.NoError(t, g.NextRound())
		}
		placeWord(t, g, "planet")
		res, err := g.Check()
		require.NoError(t, err)
		assert.Equal(t, points, res.Points)
		total += points
	}

	assert.Equal(t, total, g.Score())
	assert.Equal(t, 3, g.Streak())
}

func TestGame_CheckIsCaseInsensitive(t *testing.T) {
	words := singleWord("Planet")
	g := newTestGame(words)

	placeWord(t, g, "Planet")
	res, err := g.Check()
	require.NoError(t, err)
	assert.True(t, res.Correct)
}

func TestGame_CheckRequiresFullBoard(t *testing.T) {
	g := newTestGame(singleWord("planet"))

	assert.False(t, g.CanCheck())
	_, err := g.Check()
	assert.ErrorIs(t, err, ErrIncomplete)

	placeWord(t, g, "plane")
	assert.False(t, g.CanCheck())
	_, err = g.Check()
	assert.ErrorIs(t, err, ErrIncomplete)
}

func TestGame_IncorrectResetsStreak(t *testing.T) {
	g := newTestGame(singleWord("planet"))

	placeWord(t, g, "planet")
	_, err := g.Check()
	require.NoError(t, err)
	require.NoError(t, g.NextRound())
	scoreBefore := g.Score()
	require.Equal(t, 1, g.Streak())

	placeWord(t, g, "tenalp")
	res, err := g.Check()
	require.NoError(t, err)

	assert.False(t, res.Correct)
	assert.True(t, res.Shake)
	assert.Equal(t, 0, res.Points)
	assert.Equal(t, "tenalp", res.Guess)
	assert.Positive(t, res.Distance)
	assert.Equal(t, 0, g.Streak())
	assert.Equal(t, scoreBefore, g.Score())
	assert.Equal(t, PhaseIncorrect, g.Phase())
}

func TestGame_RetryAfterIncorrect(t *testing.T) {
	g := newTestGame(singleWord("planet"))

	placeWord(t, g, "tenalp")
	_, err := g.Check()
	require.NoError(t, err)
	assert.False(t, g.CanCheck())

	require.NoError(t, g.Clear())
	assert.Equal(t, PhaseInProgress, g.Phase())

	placeWord(t, g, "planet")
	res, err := g.Check()
	require.NoError(t, err)
	assert.True(t, res.Correct)
}

func TestGame_SolvedRoundIsLocked(t *testing.T) {
	g := newTestGame(singleWord("planet"))
	placeWord(t, g, "planet")
	_, err := g.Check()
	require.NoError(t, err)

	assert.ErrorIs(t, g.Shuffle(), ErrRoundResolved)
	assert.ErrorIs(t, g.Unplace(g.Placed()[0].ID), ErrRoundResolved)
	_, err = g.Check()
	assert.ErrorIs(t, err, ErrRoundResolved)
}

func TestGame_SkipBreaksStreak(t *testing.T) {
	g := newTestGame(singleWord("planet"))
	placeWord(t, g, "planet")
	_, err := g.Check()
	require.NoError(t, err)
	require.NoError(t, g.NextRound())
	require.Equal(t, 1, g.Streak())

	require.NoError(t, g.NextRound())
	assert.Equal(t, 0, g.Streak())
}

func TestGame_HintFirstLetter(t *testing.T) {
	g := newTestGame(singleWord("planet"))

	require.NoError(t, g.HintFirstLetter())

	assert.True(t, g.HintUsed())
	placed := g.Placed()
	require.Len(t, placed, 1)
	assert.Equal(t, 'p', placed[0].Char)
	assert.Len(t, g.Rack(), 5)
}

func TestGame_HintFirstLetterNeedsEmptyBoard(t *testing.T) {
	g := newTestGame(singleWord("planet"))
	rack := g.Rack()
	require.NoError(t, g.Place(rack[0].ID))

	err := g.HintFirstLetter()

	assert.ErrorIs(t, err, ErrHintUnavailable)
	assert.False(t, g.HintUsed())
	assert.Len(t, g.Placed(), 1)
	assert.Equal(t, rack[0].ID, g.Placed()[0].ID)
}

func TestGame_HintPenalty(t *testing.T) {
	g := newTestGame(singleWord("planet"))

	require.NoError(t, g.HintFirstLetter())
	placeWord(t, g, "lanet")

	res, err := g.Check()
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 45, res.Points)
}

func TestGame_HintDefinition(t *testing.T) {
	g := newTestGame(singleWord("planet"))
	assert.Empty(t, g.Snapshot().Definition)

	def, err := g.HintDefinition()
	require.NoError(t, err)
	assert.Equal(t, "definition of planet", def)
	assert.True(t, g.HintUsed())
	assert.Equal(t, def, g.Snapshot().Definition)

	_, err = g.HintDefinition()
	assert.ErrorIs(t, err, ErrHintUnavailable)

	// the first letter hint stays independent
	assert.NoError(t, g.HintFirstLetter())

	require.NoError(t, g.NextRound())
	assert.False(t, g.HintUsed())
	assert.Empty(t, g.Snapshot().Definition)
}

func TestGame_ChallengeCountdown(t *testing.T) {
	g := newTestGame(singleWord("planet"), WithChallengeSeconds(3))
	g.SetChallenge(true)
	assert.Equal(t, 3, g.Remaining())

	assert.False(t, g.Tick())
	assert.False(t, g.Tick())
	assert.Equal(t, PhaseInProgress, g.Phase())

	assert.True(t, g.Tick())
	assert.Equal(t, PhaseGameOver, g.Phase())
	assert.Equal(t, 0, g.Remaining())

	assert.False(t, g.Tick())
	assert.ErrorIs(t, g.Shuffle(), ErrGameOver)
	assert.ErrorIs(t, g.NextRound(), ErrGameOver)
	_, err := g.Check()
	assert.ErrorIs(t, err, ErrGameOver)
}

func TestGame_GameOverIgnoresRoundState(t *testing.T) {
	g := newTestGame(singleWord("planet"), WithChallengeSeconds(1))
	g.SetChallenge(true)
	placeWord(t, g, "pla")

	assert.True(t, g.Tick())
	assert.Equal(t, PhaseGameOver, g.Phase())
}

func TestGame_NoGameOverWithoutChallenge(t *testing.T) {
	g := newTestGame(singleWord("planet"))

	for i := 0; i < 500; i++ {
		assert.False(t, g.Tick())
	}
	assert.Equal(t, PhaseInProgress, g.Phase())
}

func TestGame_ChallengeOffStopsCountdown(t *testing.T) {
	g := newTestGame(singleWord("planet"), WithChallengeSeconds(2))
	g.SetChallenge(true)
	g.Tick()
	g.SetChallenge(false)

	for i := 0; i < 10; i++ {
		assert.False(t, g.Tick())
	}
	assert.NotEqual(t, PhaseGameOver, g.Phase())
}

func TestGame_ChallengeSpeedBonus(t *testing.T) {
	g := newTestGame(singleWord("planet"), WithChallengeSeconds(60))
	g.SetChallenge(true)

	placeWord(t, g, "planet")
	res, err := g.Check()
	require.NoError(t, err)
	assert.Equal(t, 80, res.Points)

	require.NoError(t, g.NextRound())
	for g.Remaining() > 30 {
		g.Tick()
	}
	placeWord(t, g, "planet")
	res, err = g.Check()
	require.NoError(t, err)
	assert.Equal(t, 75, res.Points)
}

func TestGame_Reset(t *testing.T) {
	g := newTestGame(singleWord("planet"), WithChallengeSeconds(5))
	g.SetChallenge(true)
	placeWord(t, g, "planet")
	_, err := g.Check()
	require.NoError(t, err)
	g.Tick()
	g.Tick()

	g.Reset()

	assert.Equal(t, 0, g.Score())
	assert.Equal(t, 0, g.Streak())
	assert.Equal(t, 0, g.WordsCompleted())
	assert.Equal(t, 5, g.Remaining())
	assert.Equal(t, PhaseInProgress, g.Phase())
	assert.Equal(t, Points(6, true, 5, false, 0), g.Stats().HighScore)
}

func TestGame_ResetAfterGameOver(t *testing.T) {
	g := newTestGame(singleWord("planet"), WithChallengeSeconds(1))
	g.SetChallenge(true)
	require.True(t, g.Tick())

	g.Reset()

	assert.Equal(t, PhaseInProgress, g.Phase())
	assert.Equal(t, 1, g.Remaining())
}

func TestGame_SetDifficulty(t *testing.T) {
	words := fixedWords{
		domain.DifficultyEasy:   {{Word: "cat", Definition: "pet"}},
		domain.DifficultyMedium: {{Word: "planet", Definition: "world"}},
		domain.DifficultyHard:   {{Word: "elephant", Definition: "animal"}},
	}
	g := newTestGame(words)
	assert.Equal(t, "cat", g.Entry().Word)

	require.NoError(t, g.SetDifficulty(domain.DifficultyHard))
	assert.Equal(t, domain.DifficultyHard, g.Difficulty())
	assert.Equal(t, "elephant", g.Entry().Word)
	assert.Equal(t, 8, g.Slots())

	assert.ErrorIs(t, g.SetDifficulty("insane"), ErrUnknownTier)
}

func TestGame_Records(t *testing.T) {
	g := newTestGame(singleWord("planet"), WithStats(domain.GameStats{HighScore: 100, BestStreak: 1}))

	placeWord(t, g, "planet")
	res, err := g.Check()
	require.NoError(t, err)
	assert.False(t, res.NewHighScore)
	assert.False(t, res.NewBestStreak)

	require.NoError(t, g.NextRound())
	placeWord(t, g, "planet")
	res, err = g.Check()
	require.NoError(t, err)

	assert.True(t, res.NewHighScore)
	assert.True(t, res.NewBestStreak)
	assert.Equal(t, domain.GameStats{HighScore: 125, BestStreak: 2}, g.Stats())
}

func TestGame_Snapshot(t *testing.T) {
	g := newTestGame(singleWord("planet"))

	s := g.Snapshot()
	assert.Equal(t, 6, s.Slots)
	assert.True(t, s.CanHintFirst)
	assert.True(t, s.CanHintDef)
	assert.False(t, s.CanCheck)

	placeWord(t, g, "p")
	s = g.Snapshot()
	assert.False(t, s.CanHintFirst)
	assert.Len(t, s.Placed, 1)

	// snapshot slices are copies
	s.Rack[0].Char = 'z'
	assert.NotEqual(t, 'z', g.Rack()[0].Char)
}
