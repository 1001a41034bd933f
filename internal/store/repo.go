package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by KV.Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// ErrUnavailable wraps failures of the underlying storage medium.
var ErrUnavailable = errors.New("storage unavailable")

// KV is opaque key/value text storage. Put is a full overwrite with
// last-write-wins semantics; there is no compare-and-swap.
type KV interface {
	// Get returns the value stored at key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Put stores value at key, replacing any previous value.
	Put(ctx context.Context, key, value string) error

	// Keys returns all keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)

	// Close releases the underlying connection.
	Close() error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// RatingEventData captures a single rating for the review history log.
type RatingEventData struct {
	SessionID    string
	CardID       string
	Week         int
	Quality      int
	Repetition   int
	Interval     int
	EaseFactor   float64
	NextReviewAt time.Time
}

// RatingEventRecord is a persisted rating event.
type RatingEventRecord struct {
	Sequence  int64
	Timestamp time.Time
	RatingEventData
}

// EventRepo provides append and query access to the review history.
type EventRepo interface {
	// AppendRatingEvent records a rating event.
	AppendRatingEvent(ctx context.Context, data RatingEventData) error

	// QueryRatingEvents returns rating events, newest first.
	QueryRatingEvents(ctx context.Context, opts QueryOpts) ([]RatingEventRecord, error)
}
