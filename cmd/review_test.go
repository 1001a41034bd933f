package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gilead/flashcards/internal/catalog"
	"github.com/gilead/flashcards/internal/review"
	"github.com/gilead/flashcards/internal/store"
)

var reviewDeck = []catalog.Card{
	{ID: "c1", Question: "What is 2+2?", Answer: "4", Week: 1},
	{ID: "c2", Question: "Capital of France?", Answer: "Paris", Week: 1},
	{ID: "c3", Question: "Largest planet?", Answer: "Jupiter", Week: 2},
}

func newReviewSession(t *testing.T) (*review.Session, *store.MemoryKV) {
	t.Helper()
	kv := store.NewMemoryKV()
	now := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	return review.NewSession(context.Background(), kv, review.WithClock(func() time.Time { return now })), kv
}

func TestRunReview_RatesEveryCard(t *testing.T) {
	sess, _ := newReviewSession(t)
	in := strings.NewReader("\nagain\n\n3\n\neasy\n")
	var out bytes.Buffer

	require.NoError(t, runReview(context.Background(), in, &out, sess, reviewDeck))

	assert.Equal(t, review.Stats{Again: 1, Good: 1, Easy: 1}, sess.Stats())
	assert.Equal(t, review.Progress{1: 2, 2: 1}, sess.Progress())
	assert.Contains(t, out.String(), "Paris")
	assert.Contains(t, out.String(), "Session complete")
}

func TestRunReview_RepromptsOnInvalidRating(t *testing.T) {
	sess, kv := newReviewSession(t)
	in := strings.NewReader("\n7\nmaybe\ngood\n")
	var out bytes.Buffer

	require.NoError(t, runReview(context.Background(), in, &out, sess, reviewDeck[:1]))

	assert.Equal(t, 1, sess.Stats().Good)
	assert.Equal(t, 2, kv.Puts(), "state and progress written once")
	assert.Contains(t, out.String(), "outside [0, 5]")
}

func TestRunReview_QuitEarly(t *testing.T) {
	sess, _ := newReviewSession(t)
	in := strings.NewReader("\n5\nq\n")
	var out bytes.Buffer

	require.NoError(t, runReview(context.Background(), in, &out, sess, reviewDeck))

	assert.Equal(t, 1, sess.Stats().Total())
	assert.Contains(t, out.String(), "Session complete")
}

func TestRunReview_EOFEndsSession(t *testing.T) {
	sess, _ := newReviewSession(t)
	var out bytes.Buffer

	require.NoError(t, runReview(context.Background(), strings.NewReader(""), &out, sess, reviewDeck))
	assert.Zero(t, sess.Stats().Total())
}

func TestFormatDays(t *testing.T) {
	assert.Equal(t, "1 day", formatDays(1))
	assert.Equal(t, "6 days", formatDays(6))
}

func TestRenderPreview(t *testing.T) {
	out := renderPreview(map[string]int{"again": 1, "good": 6, "easy": 15})
	for _, want := range []string{"again", "1 day", "good", "6 days", "easy", "15 days"} {
		assert.Contains(t, out, want)
	}
}
