package review

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gilead/flashcards/internal/catalog"
	"github.com/gilead/flashcards/internal/metrics"
	"github.com/gilead/flashcards/internal/spacedrep"
	"github.com/gilead/flashcards/internal/store"
	"github.com/gilead/flashcards/pkg/logger"
)

// Stats counts the ratings of one session by button.
type Stats struct {
	Again int `json:"again"`
	Good  int `json:"good"`
	Easy  int `json:"easy"`
}

// Total returns the number of ratings.
func (s Stats) Total() int {
	return s.Again + s.Good + s.Easy
}

func (s *Stats) record(q spacedrep.Quality) {
	switch q.Label() {
	case "again":
		s.Again++
	case "easy":
		s.Easy++
	default:
		s.Good++
	}
}

// Outcome is the result of rating one card.
type Outcome struct {
	CardID  string
	Quality spacedrep.Quality
	// Seen is false when Prior is the default state of an unseen card.
	Seen  bool
	Prior spacedrep.CardState
	Next  spacedrep.CardState
	// Persisted is false when the new state could not be written. The
	// rating still counts.
	Persisted bool
	// WeekCount is the week's progress count after this rating.
	WeekCount int
}

// Summary describes a session for display at its end.
type Summary struct {
	SessionID string        `json:"session_id"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
	Stats     Stats         `json:"stats"`
}

// Option configures a Session.
type Option func(*Session)

// WithClock injects the clock used for scheduling and timestamps.
func WithClock(clock spacedrep.Clock) Option {
	return func(s *Session) {
		s.sched = spacedrep.NewScheduler(clock)
	}
}

// WithLogger sets the session logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(s *Session) {
		s.metrics = rec
	}
}

// WithEventRepo records every rating to a history log.
func WithEventRepo(repo store.EventRepo) Option {
	return func(s *Session) {
		s.events = repo
	}
}

// Session serializes ratings against one store. A Session is safe for
// concurrent use; Rate calls run one at a time.
type Session struct {
	id        string
	startedAt time.Time

	sched   *spacedrep.Scheduler
	log     logger.Logger
	metrics *metrics.Recorder
	events  store.EventRepo
	repo    *StateRepo

	mu       sync.Mutex
	progress Progress
	stats    Stats
}

// NewSession starts a session over kv and loads the persisted progress.
//
// The progress map is read once here and written back whole after every
// rating, so a session assumes it is the only writer. Two sessions on the
// same store, such as a running serve and a rate from the CLI, overwrite
// each other's week counts.
func NewSession(ctx context.Context, kv store.KV, opts ...Option) *Session {
	s := &Session{
		id:    uuid.NewString(),
		sched: spacedrep.NewScheduler(nil),
		log:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.Named("review")
	s.startedAt = s.sched.Now()
	s.repo = NewStateRepo(kv, s.log, s.metrics)
	s.progress = s.repo.LoadProgress(ctx)

	s.log.Debug(ctx, "session started",
		logger.String("session_id", s.id),
		logger.Int("weeks_with_progress", len(s.progress)))
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Now returns the session clock's current time.
func (s *Session) Now() time.Time { return s.sched.Now() }

// Repo returns the session's state repository.
func (s *Session) Repo() *StateRepo { return s.repo }

// Rate records a recall rating for card. An invalid quality is rejected
// before any state changes. Storage failures after validation are logged
// and reflected in Outcome.Persisted, never returned.
func (s *Session) Rate(ctx context.Context, card catalog.Card, q spacedrep.Quality) (Outcome, error) {
	if err := q.Validate(); err != nil {
		return Outcome{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.sched.Now()
	prior, seen := s.repo.GetOrDefault(ctx, card.ID)

	next, err := spacedrep.Schedule(q, prior, now)
	if err != nil {
		return Outcome{}, err
	}
	next.LastReviewed = now

	out := Outcome{
		CardID:  card.ID,
		Quality: q,
		Seen:    seen,
		Prior:   prior,
		Next:    next,
	}
	out.Persisted = s.repo.Put(ctx, card.ID, next) == nil

	s.progress[card.Week]++
	out.WeekCount = s.progress[card.Week]
	_ = s.repo.SaveProgress(ctx, s.progress)

	s.stats.record(q)
	s.metrics.ObserveRating(q.Label(), next.Interval)
	s.appendEvent(ctx, card, q, next)

	s.log.Debug(ctx, "card rated",
		logger.String("session_id", s.id),
		logger.String("card_id", card.ID),
		logger.Int("quality", int(q)),
		logger.Int("interval", next.Interval),
		logger.Float64("ease_factor", next.EaseFactor),
		logger.Any("persisted", out.Persisted))
	return out, nil
}

func (s *Session) appendEvent(ctx context.Context, card catalog.Card, q spacedrep.Quality, next spacedrep.CardState) {
	if s.events == nil {
		return
	}
	err := s.events.AppendRatingEvent(ctx, store.RatingEventData{
		SessionID:    s.id,
		CardID:       card.ID,
		Week:         card.Week,
		Quality:      int(q),
		Repetition:   next.Repetition,
		Interval:     next.Interval,
		EaseFactor:   next.EaseFactor,
		NextReviewAt: next.NextReviewAt,
	})
	if err != nil {
		s.log.Warn(ctx, "rating event not recorded",
			logger.String("card_id", card.ID), logger.Error(err))
		s.metrics.StoreFailure("event")
	}
}

// State returns the stored state of a card, or the default for unseen cards.
func (s *Session) State(ctx context.Context, cardID string) (spacedrep.CardState, bool) {
	return s.repo.GetOrDefault(ctx, cardID)
}

// Preview returns the interval each review button would produce for a card.
func (s *Session) Preview(ctx context.Context, cardID string) map[string]int {
	cs, _ := s.repo.GetOrDefault(ctx, cardID)
	return s.sched.Preview(cs)
}

// Progress returns a copy of the per-week rating counts.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress.Clone()
}

// Stats returns the session's rating counts so far.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Summary returns the session summary as of now.
func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		SessionID: s.id,
		StartedAt: s.startedAt,
		Duration:  s.sched.Now().Sub(s.startedAt),
		Stats:     s.stats,
	}
}
