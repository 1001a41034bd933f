package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"kv", "rating_events"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}
}

func TestKVGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "card.nope")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get missing = %v, want ErrNotFound", err)
	}
}

func TestKVPutOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Put(ctx, "card.a", `{"v":1}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := s.Put(ctx, "card.a", `{"v":2}`); err != nil {
		t.Fatalf("put again: %v", err)
	}
	got, err := s.Get(ctx, "card.a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `{"v":2}` {
		t.Errorf("Get = %q, want last write", got)
	}
}

func TestKVSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Put(ctx, "progress", `{"1":3}`); err != nil {
		t.Fatalf("put: %v", err)
	}
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	got, err := s.Get(ctx, "progress")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != `{"1":3}` {
		t.Errorf("Get = %q", got)
	}
}

func TestKVKeysByPrefix(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	for _, k := range []string{"card.b", "progress", "card.a"} {
		if err := s.Put(ctx, k, "x"); err != nil {
			t.Fatalf("put %s: %v", k, err)
		}
	}
	keys, err := s.Keys(ctx, "card.")
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "card.a" || keys[1] != "card.b" {
		t.Errorf("Keys = %v, want [card.a card.b]", keys)
	}
}

func TestKVClosedIsUnavailable(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "closed.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	s.Close()

	if _, err := s.Get(context.Background(), "card.a"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Get on closed store = %v, want ErrUnavailable", err)
	}
	if err := s.Put(context.Background(), "card.a", "x"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Put on closed store = %v, want ErrUnavailable", err)
	}
}

func TestRatingEvents_SequenceSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.db")
	ctx := context.Background()

	for round := 1; round <= 2; round++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open round %d: %v", round, err)
		}
		if err := s.EventRepo().AppendRatingEvent(ctx, RatingEventData{CardID: "c1", Quality: 3, Interval: 1, EaseFactor: 2.5}); err != nil {
			t.Fatalf("append round %d: %v", round, err)
		}
		got, err := s.EventRepo().QueryRatingEvents(ctx, QueryOpts{Limit: 1})
		s.Close()
		if err != nil {
			t.Fatalf("query round %d: %v", round, err)
		}
		if len(got) != 1 || got[0].Sequence != int64(round) {
			t.Fatalf("round %d: newest = %+v, want sequence %d", round, got, round)
		}
	}
}

func TestRatingEventsQuery_Filters(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	query, args := ratingEventsQuery(QueryOpts{After: 1, Before: 9, From: from, Limit: 5})

	for _, want := range []string{"FROM `rating_events`", "`sequence` > ?", "`sequence` < ?", "`timestamp` >= ?", "ORDER BY `sequence` DESC", "LIMIT 5"} {
		if !strings.Contains(query, want) {
			t.Errorf("query %q missing %q", query, want)
		}
	}
	wantArgs := []any{int64(1), int64(9), from.Format(timestampLayout)}
	if !reflect.DeepEqual(args, wantArgs) {
		t.Errorf("args = %#v, want %#v", args, wantArgs)
	}

	query, args = ratingEventsQuery(QueryOpts{})
	if strings.Contains(query, "WHERE") || strings.Contains(query, "LIMIT") || len(args) != 0 {
		t.Errorf("unfiltered query = %q %v", query, args)
	}
}

func TestRatingEvents_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	due := time.Date(2025, 1, 7, 12, 0, 0, 0, time.UTC)
	for i, card := range []string{"c1", "c2", "c3"} {
		err := repo.AppendRatingEvent(ctx, RatingEventData{
			SessionID:    "sess-1",
			CardID:       card,
			Week:         i + 1,
			Quality:      5,
			Repetition:   1,
			Interval:     6,
			EaseFactor:   2.6,
			NextReviewAt: due,
		})
		if err != nil {
			t.Fatalf("append %s: %v", card, err)
		}
	}

	all, err := repo.QueryRatingEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].CardID != "c3" || all[0].Sequence != 3 {
		t.Errorf("newest = %+v, want c3 with sequence 3", all[0])
	}
	if all[0].EaseFactor != 2.6 || !all[0].NextReviewAt.Equal(due) {
		t.Errorf("round trip = %+v", all[0])
	}

	limited, err := repo.QueryRatingEvents(ctx, QueryOpts{Limit: 1, Before: 3})
	if err != nil {
		t.Fatalf("query limited: %v", err)
	}
	if len(limited) != 1 || limited[0].CardID != "c2" {
		t.Errorf("limited = %+v, want [c2]", limited)
	}

	after, err := repo.QueryRatingEvents(ctx, QueryOpts{After: 1})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 2 {
		t.Errorf("after = %d events, want 2", len(after))
	}

	farDue := time.Date(24775, 5, 7, 12, 0, 0, 0, time.UTC)
	if err := repo.AppendRatingEvent(ctx, RatingEventData{CardID: "c4", Quality: 5, Interval: 8309392, EaseFactor: 3.9, NextReviewAt: farDue}); err != nil {
		t.Fatalf("append far due: %v", err)
	}
	newest, err := repo.QueryRatingEvents(ctx, QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query far due: %v", err)
	}
	if len(newest) != 1 || !newest[0].NextReviewAt.Equal(farDue) {
		t.Errorf("far due round trip = %+v, want %v", newest, farDue)
	}

	future, err := repo.QueryRatingEvents(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	if err != nil {
		t.Fatalf("query from: %v", err)
	}
	if len(future) != 0 {
		t.Errorf("future = %d events, want 0", len(future))
	}
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "x.db")
	t.Setenv("GILEAD_DB", p)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != p {
		t.Errorf("DefaultDBPath = %q, want %q", got, p)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GILEAD_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	want := filepath.Join(dir, "gilead", "gilead.db")
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}
