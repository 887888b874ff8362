// Package wordlist loads the curated Word Builder word list.
package wordlist

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"lexideck/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed words.yaml
var defaultWords []byte

const minWordLength = 3

var (
	ErrEmptyTier   = errors.New("word list tier is empty")
	ErrInvalidWord = errors.New("invalid word")
	ErrUnknownTier = errors.New("unknown difficulty tier")
)

// List is an immutable word list partitioned by difficulty
type List struct {
	tiers map[domain.Difficulty][]domain.WordEntry
}

// Default returns the embedded word list
func Default() (*List, error) {
	return Parse(defaultWords)
}

// Parse decodes and validates a YAML word list
func Parse(data []byte) (*List, error) {
	raw := make(map[string][]domain.WordEntry)
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode word list: %w", err)
	}

	list := &List{tiers: make(map[domain.Difficulty][]domain.WordEntry, len(domain.Difficulties))}
	for name, entries := range raw {
		d := domain.Difficulty(name)
		if !d.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTier, name)
		}

		normalized := make([]domain.WordEntry, 0, len(entries))
		for _, e := range entries {
			word := strings.ToLower(strings.TrimSpace(e.Word))
			if err := validateWord(word); err != nil {
				return nil, fmt.Errorf("tier %s: %w", d, err)
			}
			normalized = append(normalized, domain.WordEntry{
				Word:       word,
				Definition: strings.TrimSpace(e.Definition),
			})
		}
		list.tiers[d] = normalized
	}

	for _, d := range domain.Difficulties {
		if len(list.tiers[d]) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyTier, d)
		}
	}

	return list, nil
}

func validateWord(word string) error {
	if len([]rune(word)) < minWordLength {
		return fmt.Errorf("%w: %q is shorter than %d letters", ErrInvalidWord, word, minWordLength)
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidWord, word, r)
		}
	}
	return nil
}

// Len returns the number of words in a tier
func (l *List) Len(d domain.Difficulty) int {
	return len(l.tiers[d])
}

// Entry returns the i-th word of a tier
func (l *List) Entry(d domain.Difficulty, i int) domain.WordEntry {
	return l.tiers[d][i]
}

// Entries returns a copy of a tier's words
func (l *List) Entries(d domain.Difficulty) []domain.WordEntry {
	out := make([]domain.WordEntry, len(l.tiers[d]))
	copy(out, l.tiers[d])
	return out
}
