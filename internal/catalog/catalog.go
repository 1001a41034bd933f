// Package catalog loads the read-only flashcard catalog: the curriculum
// weeks and the cards that belong to them.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCatalog is returned when a catalog file fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Week is one curriculum week.
type Week struct {
	Number  int    `yaml:"number" json:"number"`
	Theme   string `yaml:"theme" json:"theme,omitempty"`
	Summary string `yaml:"summary" json:"summary,omitempty"`
}

// Card is a single flashcard. Only ID and Week matter to scheduling.
type Card struct {
	ID         string   `yaml:"id" json:"id"`
	Question   string   `yaml:"question" json:"question"`
	Answer     string   `yaml:"answer" json:"answer"`
	Week       int      `yaml:"week" json:"week"`
	Tags       []string `yaml:"tags" json:"tags,omitempty"`
	Difficulty string   `yaml:"difficulty" json:"difficulty,omitempty"`
}

type catalogFile struct {
	Weeks []Week `yaml:"weeks"`
	Cards []Card `yaml:"cards"`
}

// Catalog is an immutable, validated set of cards.
type Catalog struct {
	weeks []Week
	cards []Card
	byID  map[string]int
}

// Load reads and validates a YAML or JSON catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse validates raw YAML or JSON against the catalog schema and builds
// the catalog. Card IDs must be unique.
func Parse(data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return New(f.Weeks, f.Cards)
}

// New builds a catalog from already-decoded weeks and cards.
func New(weeks []Week, cards []Card) (*Catalog, error) {
	c := &Catalog{
		weeks: append([]Week(nil), weeks...),
		cards: append([]Card(nil), cards...),
		byID:  make(map[string]int, len(cards)),
	}
	for i, card := range c.cards {
		if card.ID == "" {
			return nil, fmt.Errorf("%w: card %d has no id", ErrInvalidCatalog, i)
		}
		if _, dup := c.byID[card.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate card id %q", ErrInvalidCatalog, card.ID)
		}
		c.byID[card.ID] = i
	}
	sort.SliceStable(c.weeks, func(i, j int) bool { return c.weeks[i].Number < c.weeks[j].Number })
	return c, nil
}

// validate checks a decoded YAML document against the catalog schema.
// The document round-trips through JSON so the validator sees JSON types.
func validate(raw any) error {
	b, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	sch, err := getCompiledSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	return nil
}

// Len returns the number of cards.
func (c *Catalog) Len() int { return len(c.cards) }

// Cards returns all cards in file order.
func (c *Catalog) Cards() []Card {
	return append([]Card(nil), c.cards...)
}

// Weeks returns the curriculum weeks sorted by number.
func (c *Catalog) Weeks() []Week {
	return append([]Week(nil), c.weeks...)
}

// Week returns the declared week with number n.
func (c *Catalog) Week(n int) (Week, bool) {
	for _, w := range c.weeks {
		if w.Number == n {
			return w, true
		}
	}
	return Week{}, false
}

// WeekOverview summarizes one curriculum week.
type WeekOverview struct {
	Week
	Cards int `json:"cards"`
	// Difficulty counts the week's cards by difficulty label. Cards without
	// one are not counted.
	Difficulty map[string]int `json:"difficulty,omitempty"`
}

// Overview returns one entry per week that is declared or has cards,
// sorted by week number. Undeclared weeks carry no theme.
func (c *Catalog) Overview() []WeekOverview {
	idx := make(map[int]int)
	var out []WeekOverview
	entry := func(n int) *WeekOverview {
		i, ok := idx[n]
		if !ok {
			w, _ := c.Week(n)
			w.Number = n
			i = len(out)
			idx[n] = i
			out = append(out, WeekOverview{Week: w})
		}
		return &out[i]
	}

	for _, w := range c.weeks {
		entry(w.Number)
	}
	for _, card := range c.cards {
		ov := entry(card.Week)
		ov.Cards++
		if card.Difficulty == "" {
			continue
		}
		if ov.Difficulty == nil {
			ov.Difficulty = make(map[string]int)
		}
		ov.Difficulty[card.Difficulty]++
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// Lookup returns the card with the given id.
func (c *Catalog) Lookup(id string) (Card, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// ByWeek returns the cards of one week in file order.
func (c *Catalog) ByWeek(week int) []Card {
	var out []Card
	for _, card := range c.cards {
		if card.Week == week {
			out = append(out, card)
		}
	}
	return out
}

// DeckOptions selects the cards of a review session.
type DeckOptions struct {
	// Week restricts the deck to one week. Zero means all weeks.
	Week int
	// Limit caps an unfiltered deck. A week deck is never capped.
	Limit int
	// Rand shuffles the deck. Nil leaves it in week order.
	Rand *rand.Rand
}

// Deck returns the cards for a review session: either every card of one
// week, or the first Limit cards ordered by week, then shuffled.
func (c *Catalog) Deck(opts DeckOptions) []Card {
	var deck []Card
	if opts.Week > 0 {
		deck = c.ByWeek(opts.Week)
	} else {
		deck = c.Cards()
		sort.SliceStable(deck, func(i, j int) bool { return deck[i].Week < deck[j].Week })
		if opts.Limit > 0 && len(deck) > opts.Limit {
			deck = deck[:opts.Limit]
		}
	}
	if opts.Rand != nil {
		opts.Rand.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
	}
	return deck
}
