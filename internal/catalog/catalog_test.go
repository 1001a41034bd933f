package catalog

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
weeks:
  - number: 2
    theme: Loops
  - number: 1
    theme: Variables
    summary: Names and values
cards:
  - id: w1-var
    question: What is a variable?
    answer: A named value.
    week: 1
    tags: [basics]
    difficulty: easy
  - id: w2-for
    question: What does for do?
    answer: Repeats a block.
    week: 2
  - id: w1-const
    question: What is a constant?
    answer: A value that never changes.
    week: 1
`

func mustParse(t *testing.T, src string) *Catalog {
	t.Helper()
	c, err := Parse([]byte(src))
	require.NoError(t, err)
	return c
}

func TestParseYAML(t *testing.T) {
	c := mustParse(t, sampleYAML)

	assert.Equal(t, 3, c.Len())
	weeks := c.Weeks()
	require.Len(t, weeks, 2)
	assert.Equal(t, 1, weeks[0].Number)
	assert.Equal(t, "Names and values", weeks[0].Summary)

	card, ok := c.Lookup("w1-var")
	require.True(t, ok)
	assert.Equal(t, "A named value.", card.Answer)
	assert.Equal(t, []string{"basics"}, card.Tags)
	assert.Equal(t, "easy", card.Difficulty)

	_, ok = c.Lookup("missing")
	assert.False(t, ok)
}

func TestParseJSON(t *testing.T) {
	src := `{"cards":[{"id":"c1","question":"q","answer":"a","week":3}]}`
	c := mustParse(t, src)
	card, ok := c.Lookup("c1")
	require.True(t, ok)
	assert.Equal(t, 3, card.Week)
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"not yaml", "cards: [unterminated"},
		{"no cards key", "weeks: []"},
		{"missing answer", "cards:\n  - {id: a, question: q, week: 1}"},
		{"week zero", "cards:\n  - {id: a, question: q, answer: x, week: 0}"},
		{"week not int", "cards:\n  - {id: a, question: q, answer: x, week: two}"},
		{"id with space", "cards:\n  - {id: a b, question: q, answer: x, week: 1}"},
		{"unknown difficulty", "cards:\n  - {id: a, question: q, answer: x, week: 1, difficulty: brutal}"},
		{"unknown field", "cards:\n  - {id: a, question: q, answer: x, week: 1, hint: h}"},
		{"duplicate id", "cards:\n  - {id: a, question: q, answer: x, week: 1}\n  - {id: a, question: r, answer: y, week: 2}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog), "got %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestByWeek(t *testing.T) {
	c := mustParse(t, sampleYAML)

	week1 := c.ByWeek(1)
	require.Len(t, week1, 2)
	assert.Equal(t, "w1-var", week1[0].ID)
	assert.Equal(t, "w1-const", week1[1].ID)
	assert.Empty(t, c.ByWeek(9))
}

func TestDeck(t *testing.T) {
	c := mustParse(t, sampleYAML)

	t.Run("unfiltered is ordered by week and limited", func(t *testing.T) {
		deck := c.Deck(DeckOptions{Limit: 2})
		require.Len(t, deck, 2)
		assert.Equal(t, "w1-var", deck[0].ID)
		assert.Equal(t, "w1-const", deck[1].ID)
	})

	t.Run("week filter ignores limit", func(t *testing.T) {
		deck := c.Deck(DeckOptions{Week: 1, Limit: 1})
		assert.Len(t, deck, 2)
	})

	t.Run("seeded shuffle is reproducible", func(t *testing.T) {
		a := c.Deck(DeckOptions{Rand: rand.New(rand.NewPCG(7, 7))})
		b := c.Deck(DeckOptions{Rand: rand.New(rand.NewPCG(7, 7))})
		assert.Equal(t, a, b)
		assert.ElementsMatch(t, c.Cards(), a)
	})

	t.Run("deck is a copy", func(t *testing.T) {
		deck := c.Deck(DeckOptions{})
		deck[0].ID = "mutated"
		_, ok := c.Lookup("mutated")
		assert.False(t, ok)
	})
}

func TestNewRejectsEmptyID(t *testing.T) {
	_, err := New(nil, []Card{{Question: "q", Answer: "a", Week: 1}})
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestOverview(t *testing.T) {
	c := mustParse(t, sampleYAML+`  - id: w1-scope
    question: What is scope?
    answer: Where a name is visible.
    week: 1
    difficulty: hard
  - id: w3-map
    question: What is a map?
    answer: Keys to values.
    week: 3
    difficulty: medium
`)

	ov := c.Overview()
	require.Len(t, ov, 3)

	assert.Equal(t, 1, ov[0].Number)
	assert.Equal(t, "Variables", ov[0].Theme)
	assert.Equal(t, "Names and values", ov[0].Summary)
	assert.Equal(t, 3, ov[0].Cards)
	assert.Equal(t, map[string]int{"easy": 1, "hard": 1}, ov[0].Difficulty)

	assert.Equal(t, "Loops", ov[1].Theme)
	assert.Equal(t, 1, ov[1].Cards)
	assert.Nil(t, ov[1].Difficulty)

	assert.Equal(t, 3, ov[2].Number)
	assert.Empty(t, ov[2].Theme, "undeclared week has no theme")
	assert.Equal(t, map[string]int{"medium": 1}, ov[2].Difficulty)

	w, ok := c.Week(2)
	require.True(t, ok)
	assert.Equal(t, "Loops", w.Theme)
	_, ok = c.Week(3)
	assert.False(t, ok)
}
