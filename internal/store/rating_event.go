package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/gilead/flashcards/internal/spacedrep"
)

// timestampLayout is fixed width so stored timestamps compare lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

const ratingEventsTable = "rating_events"

var ratingEventColumns = []string{
	"sequence", "timestamp", "session_id", "card_id", "week", "quality",
	"repetition", "interval", "ease_factor", "next_review_at",
}

// eventRepo implements EventRepo on the store's SQLite database. Sequence
// numbers come from the table's AUTOINCREMENT key, so they survive restarts
// and are never reused.
type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendRatingEvent(ctx context.Context, data RatingEventData) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(ratingEventsTable).
		Columns(ratingEventColumns[1:]...).
		Values(
			time.Now().UTC().Format(timestampLayout),
			data.SessionID,
			data.CardID,
			data.Week,
			data.Quality,
			data.Repetition,
			data.Interval,
			data.EaseFactor,
			spacedrep.FormatTime(data.NextReviewAt),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save rating event: %w", err)
	}
	return nil
}

// ratingEventsQuery builds the history SELECT for opts, newest first.
func ratingEventsQuery(opts QueryOpts) (string, []any) {
	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC().Format(timestampLayout)))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC().Format(timestampLayout)))
	}

	sel := entsql.Dialect(dialect.SQLite).
		Select(ratingEventColumns...).
		From(entsql.Table(ratingEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	return sel.Query()
}

func (r *eventRepo) QueryRatingEvents(ctx context.Context, opts QueryOpts) ([]RatingEventRecord, error) {
	query, args := ratingEventsQuery(opts)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query rating events: %w", err)
	}
	defer rows.Close()

	var records []RatingEventRecord
	for rows.Next() {
		var (
			rec        RatingEventRecord
			ts, nextAt string
		)
		if err := rows.Scan(
			&rec.Sequence, &ts, &rec.SessionID, &rec.CardID, &rec.Week, &rec.Quality,
			&rec.Repetition, &rec.Interval, &rec.EaseFactor, &nextAt,
		); err != nil {
			return nil, fmt.Errorf("scan rating event: %w", err)
		}
		if rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parse timestamp: %w", err)
		}
		if rec.NextReviewAt, err = spacedrep.ParseTime(nextAt); err != nil {
			return nil, fmt.Errorf("parse next_review_at: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
