package study

import (
	"math/rand/v2"

	"lexideck/internal/domain"
)

const maxChoices = 4

// Quiz asks for the back of each card among several choices
type Quiz struct {
	tracker
	rng     *rand.Rand
	all     []domain.Flashcard
	queue   []domain.Flashcard
	pos     int
	choices []string
	answer  int
	correct int
}

func NewQuiz(cards []domain.Flashcard, rng *rand.Rand) *Quiz {
	q := &Quiz{rng: rng, all: append([]domain.Flashcard(nil), cards...), queue: shuffled(cards, rng)}
	q.prepare()
	return q
}

func (q *Quiz) Mode() domain.StudyMode { return domain.StudyQuiz }

func (q *Quiz) Done() bool { return q.pos >= len(q.queue) }

// Score returns correct answers and questions asked so far
func (q *Quiz) Score() (int, int) { return q.correct, q.pos }

func (q *Quiz) Total() int { return len(q.queue) }

// prepare builds the choices for the current card: its back plus
// distinct backs of other cards
func (q *Quiz) prepare() {
	if q.Done() {
		q.choices = nil
		return
	}

	card := q.queue[q.pos]
	seen := map[string]bool{card.Back: true}
	choices := []string{card.Back}
	for _, other := range shuffled(q.all, q.rng) {
		if len(choices) == maxChoices {
			break
		}
		if seen[other.Back] {
			continue
		}
		seen[other.Back] = true
		choices = append(choices, other.Back)
	}

	q.rng.Shuffle(len(choices), func(i, j int) { choices[i], choices[j] = choices[j], choices[i] })
	for i, c := range choices {
		if c == card.Back {
			q.answer = i
		}
	}
	q.choices = choices
}

// Question returns the current front and its choices
func (q *Quiz) Question() (string, []string, bool) {
	if q.Done() {
		return "", nil, false
	}
	return q.queue[q.pos].Front, append([]string(nil), q.choices...), true
}

// Answer submits a choice and advances. It returns whether the choice was
// right and the correct back.
func (q *Quiz) Answer(choice int) (bool, string, error) {
	if q.Done() {
		return false, "", ErrFinished
	}
	if choice < 0 || choice >= len(q.choices) {
		return false, "", ErrInvalidChoice
	}

	card := q.queue[q.pos]
	ok := choice == q.answer
	if ok {
		q.correct++
		q.set(card.ID, card.Mastery.Promote())
	} else {
		q.set(card.ID, domain.MasteryLearning)
	}

	q.pos++
	q.prepare()
	return ok, card.Back, nil
}
