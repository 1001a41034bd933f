// Package review persists per-card scheduling state and runs rating
// sessions on top of the scheduler.
package review

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/gilead/flashcards/internal/metrics"
	"github.com/gilead/flashcards/internal/spacedrep"
	"github.com/gilead/flashcards/internal/store"
	"github.com/gilead/flashcards/pkg/logger"
)

const (
	cardKeyPrefix = "card."
	progressKey   = "progress"
)

// CardKey returns the storage key for a card's scheduling state.
func CardKey(cardID string) string {
	return cardKeyPrefix + cardID
}

// Progress counts ratings per curriculum week. Counts only grow.
type Progress map[int]int

// Clone returns an independent copy.
func (p Progress) Clone() Progress {
	out := make(Progress, len(p))
	for w, n := range p {
		out[w] = n
	}
	return out
}

// Weeks returns the weeks with at least one rating, ascending.
func (p Progress) Weeks() []int {
	weeks := make([]int, 0, len(p))
	for w := range p {
		weeks = append(weeks, w)
	}
	sort.Ints(weeks)
	return weeks
}

// StateRepo reads and writes card states over an opaque KV. Read failures
// of any kind surface as "never rated" so scheduling can always proceed.
type StateRepo struct {
	kv      store.KV
	log     logger.Logger
	metrics *metrics.Recorder
}

// NewStateRepo creates a repo. A nil log discards output; a nil recorder
// records nothing.
func NewStateRepo(kv store.KV, log logger.Logger, rec *metrics.Recorder) *StateRepo {
	if log == nil {
		log = logger.Nop()
	}
	return &StateRepo{kv: kv, log: log, metrics: rec}
}

// Get returns the stored state for cardID. The bool is false when the card
// was never rated, the store is unavailable, or the stored text is corrupt.
func (r *StateRepo) Get(ctx context.Context, cardID string) (spacedrep.CardState, bool) {
	text, err := r.kv.Get(ctx, CardKey(cardID))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			r.log.Warn(ctx, "card state read failed",
				logger.String("card_id", cardID), logger.Error(err))
			r.metrics.StoreFailure("get")
		}
		return spacedrep.CardState{}, false
	}

	cs, err := spacedrep.DecodeState(text)
	if err != nil {
		r.log.Warn(ctx, "discarding malformed card state",
			logger.String("card_id", cardID), logger.Error(err))
		r.metrics.StoreFailure("decode")
		return spacedrep.CardState{}, false
	}
	return cs, true
}

// GetOrDefault returns the stored state or the default state for unseen cards.
func (r *StateRepo) GetOrDefault(ctx context.Context, cardID string) (spacedrep.CardState, bool) {
	if cs, ok := r.Get(ctx, cardID); ok {
		return cs, true
	}
	return spacedrep.DefaultState(), false
}

// Put overwrites the stored state for cardID.
func (r *StateRepo) Put(ctx context.Context, cardID string, cs spacedrep.CardState) error {
	text, err := spacedrep.EncodeState(cs)
	if err != nil {
		return err
	}
	if err := r.kv.Put(ctx, CardKey(cardID), text); err != nil {
		r.log.Warn(ctx, "card state write failed",
			logger.String("card_id", cardID), logger.Error(err))
		r.metrics.StoreFailure("put")
		return fmt.Errorf("put card %s: %w", cardID, err)
	}
	return nil
}

// RatedCards returns the IDs of every card with a stored state.
func (r *StateRepo) RatedCards(ctx context.Context) ([]string, error) {
	keys, err := r.kv.Keys(ctx, cardKeyPrefix)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, strings.TrimPrefix(k, cardKeyPrefix))
	}
	return ids, nil
}

// LoadProgress returns the persisted progress map. Missing, unreadable or
// corrupt progress loads as empty.
func (r *StateRepo) LoadProgress(ctx context.Context) Progress {
	p := make(Progress)
	text, err := r.kv.Get(ctx, progressKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			r.log.Warn(ctx, "progress read failed", logger.Error(err))
			r.metrics.StoreFailure("get")
		}
		return p
	}
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		r.log.Warn(ctx, "discarding malformed progress", logger.Error(err))
		r.metrics.StoreFailure("decode")
		return make(Progress)
	}
	for w, n := range p {
		if n < 0 {
			delete(p, w)
		}
	}
	return p
}

// SaveProgress overwrites the persisted progress map.
func (r *StateRepo) SaveProgress(ctx context.Context, p Progress) error {
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := r.kv.Put(ctx, progressKey, string(b)); err != nil {
		r.log.Warn(ctx, "progress write failed", logger.Error(err))
		r.metrics.StoreFailure("put")
		return fmt.Errorf("put progress: %w", err)
	}
	return nil
}
