package study

import (
	"math/rand/v2"

	"lexideck/internal/domain"

	"github.com/google/uuid"
)

const maxPairs = 6

// Tile is one side of a card on the match board
type Tile struct {
	CardID  uuid.UUID
	Text    string
	Matched bool
}

// Match pairs fronts with backs
type Match struct {
	tracker
	cards    map[uuid.UUID]domain.Flashcard
	fronts   []Tile
	backs    []Tile
	selected uuid.UUID
	missed   map[uuid.UUID]bool
	left     int
	mistakes int
}

func NewMatch(cards []domain.Flashcard, rng *rand.Rand) *Match {
	picked := shuffled(cards, rng)
	if len(picked) > maxPairs {
		picked = picked[:maxPairs]
	}

	m := &Match{
		cards:  make(map[uuid.UUID]domain.Flashcard, len(picked)),
		missed: make(map[uuid.UUID]bool),
		left:   len(picked),
	}
	for _, c := range picked {
		m.cards[c.ID] = c
		m.fronts = append(m.fronts, Tile{CardID: c.ID, Text: c.Front})
		m.backs = append(m.backs, Tile{CardID: c.ID, Text: c.Back})
	}
	rng.Shuffle(len(m.backs), func(i, j int) { m.backs[i], m.backs[j] = m.backs[j], m.backs[i] })
	return m
}

func (m *Match) Mode() domain.StudyMode { return domain.StudyMatch }

func (m *Match) Done() bool { return m.left == 0 }

func (m *Match) Mistakes() int { return m.mistakes }

func (m *Match) Fronts() []Tile { return append([]Tile(nil), m.fronts...) }

func (m *Match) Backs() []Tile { return append([]Tile(nil), m.backs...) }

// Selected returns the selected front, or uuid.Nil
func (m *Match) Selected() uuid.UUID { return m.selected }

// SelectFront picks the front to be matched next
func (m *Match) SelectFront(id uuid.UUID) error {
	if m.Done() {
		return ErrFinished
	}
	i := tileIndex(m.fronts, id)
	if i < 0 || m.fronts[i].Matched {
		return ErrUnknownTile
	}
	m.selected = id
	return nil
}

// SelectBack tries to pair the selected front with a back
func (m *Match) SelectBack(id uuid.UUID) (bool, error) {
	if m.Done() {
		return false, ErrFinished
	}
	if m.selected == uuid.Nil {
		return false, ErrNoSelection
	}
	bi := tileIndex(m.backs, id)
	if bi < 0 || m.backs[bi].Matched {
		return false, ErrUnknownTile
	}

	front := m.selected
	m.selected = uuid.Nil
	if id != front {
		m.mistakes++
		m.missed[front] = true
		m.set(front, domain.MasteryLearning)
		return false, nil
	}

	m.fronts[tileIndex(m.fronts, front)].Matched = true
	m.backs[bi].Matched = true
	m.left--
	if !m.missed[front] {
		m.set(front, m.cards[front].Mastery.Promote())
	}
	return true, nil
}

func tileIndex(tiles []Tile, id uuid.UUID) int {
	for i, t := range tiles {
		if t.CardID == id {
			return i
		}
	}
	return -1
}
