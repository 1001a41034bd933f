package spacedrep

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the ISO-8601 layout used for persisted timestamps:
// UTC with millisecond precision, e.g. 2025-01-02T03:04:05.678Z.
const TimeLayout = "2006-01-02T15:04:05.000Z07:00"

// expandedTail is TimeLayout without the year. Years outside 0000..9999 are
// written as a sign and at least six digits, e.g. +024775-05-07T12:00:00.000Z,
// the same form a browser's Date.toISOString produces.
const expandedTail = "-01-02T15:04:05.000Z07:00"

// stateRecord is the persisted text form of a CardState.
// Required numeric fields are pointers so missing keys can be detected.
type stateRecord struct {
	Repetition   *int     `json:"repetition"`
	Interval     *int     `json:"interval"`
	EaseFactor   *float64 `json:"easeFactor"`
	NextReviewAt string   `json:"nextReviewAt,omitempty"`
	LastReviewed string   `json:"lastReviewed,omitempty"`
}

// FormatTime renders t in TimeLayout. The zero time renders as "".
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	t = t.UTC()
	year := t.Year()
	if year >= 0 && year <= 9999 {
		return t.Format(TimeLayout)
	}
	sign := '+'
	if year < 0 {
		sign, year = '-', -year
	}
	return fmt.Sprintf("%c%06d%s", sign, year, t.Format(expandedTail))
}

// EncodeState serializes a card state to its persisted JSON text.
// Floats use the shortest representation that parses back to the same
// value, so the ease factor survives a round trip bit-for-bit.
func EncodeState(cs CardState) (string, error) {
	rec := stateRecord{
		Repetition:   &cs.Repetition,
		Interval:     &cs.Interval,
		EaseFactor:   &cs.EaseFactor,
		NextReviewAt: FormatTime(cs.NextReviewAt),
		LastReviewed: FormatTime(cs.LastReviewed),
	}
	b, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal card state: %w", err)
	}
	return string(b), nil
}

// DecodeState parses persisted JSON text. Any parse failure, missing field or
// invariant violation returns an error wrapping ErrMalformedState.
func DecodeState(text string) (CardState, error) {
	var rec stateRecord
	if err := json.Unmarshal([]byte(text), &rec); err != nil {
		return CardState{}, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if rec.Repetition == nil || rec.Interval == nil || rec.EaseFactor == nil {
		return CardState{}, fmt.Errorf("%w: missing required field", ErrMalformedState)
	}

	cs := CardState{
		Repetition: *rec.Repetition,
		Interval:   *rec.Interval,
		EaseFactor: *rec.EaseFactor,
	}
	if !cs.Valid() {
		return CardState{}, fmt.Errorf("%w: repetition=%d interval=%d easeFactor=%v",
			ErrMalformedState, cs.Repetition, cs.Interval, cs.EaseFactor)
	}

	var err error
	if cs.NextReviewAt, err = ParseTime(rec.NextReviewAt); err != nil {
		return CardState{}, fmt.Errorf("%w: nextReviewAt: %v", ErrMalformedState, err)
	}
	if cs.LastReviewed, err = ParseTime(rec.LastReviewed); err != nil {
		return CardState{}, fmt.Errorf("%w: lastReviewed: %v", ErrMalformedState, err)
	}
	return cs, nil
}

// ParseTime parses a timestamp written by FormatTime or any RFC 3339 text.
// "" parses as the zero time.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if s[0] != '+' && s[0] != '-' {
		return time.Parse(time.RFC3339Nano, s)
	}

	end := strings.IndexByte(s[1:], '-') + 1
	if end < 7 {
		return time.Time{}, fmt.Errorf("expanded year in %q needs at least six digits", s)
	}
	year, err := strconv.Atoi(s[1:end])
	if err != nil {
		return time.Time{}, fmt.Errorf("expanded year in %q: %w", s, err)
	}
	if s[0] == '-' {
		year = -year
	}
	// 2000 is a leap year, so any valid month and day parse.
	rest, err := time.Parse(time.RFC3339Nano, "2000"+s[end:])
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(year, rest.Month(), rest.Day(),
		rest.Hour(), rest.Minute(), rest.Second(), rest.Nanosecond(), rest.Location()), nil
}
