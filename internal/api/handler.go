// Package api serves the review session over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/gilead/flashcards/internal/catalog"
	"github.com/gilead/flashcards/internal/metrics"
	"github.com/gilead/flashcards/internal/review"
	"github.com/gilead/flashcards/internal/spacedrep"
	"github.com/gilead/flashcards/pkg/logger"
)

// StateView is the JSON form of a card's scheduling state.
type StateView struct {
	CardID       string         `json:"card_id"`
	Status       string         `json:"status"`
	Repetition   int            `json:"repetition"`
	Interval     int            `json:"interval"`
	EaseFactor   float64        `json:"ease_factor"`
	NextReviewAt string         `json:"next_review_at,omitempty"`
	LastReviewed string         `json:"last_reviewed,omitempty"`
	Preview      map[string]int `json:"preview,omitempty"`
}

// CardView is a catalog card with its review status.
type CardView struct {
	catalog.Card
	Status string `json:"status"`
}

// RatingRequest is the body of POST /cards/{id}/ratings.
type RatingRequest struct {
	Quality *int `json:"quality"`
}

// RatingResponse reports the state produced by a rating.
type RatingResponse struct {
	State     StateView `json:"state"`
	Persisted bool      `json:"persisted"`
	WeekCount int       `json:"week_count"`
}

// ProgressResponse is the body of GET /progress.
type ProgressResponse struct {
	Weeks   review.Progress `json:"weeks"`
	Session review.Summary  `json:"session"`
}

// WeekView is one entry of GET /weeks.
type WeekView struct {
	catalog.WeekOverview
	Ratings int               `json:"ratings"`
	Status  review.DeckStatus `json:"status"`
}

// Handler serves review endpoints for one session.
type Handler struct {
	cards   *catalog.Catalog
	session *review.Session
	metrics *metrics.Recorder
	log     logger.Logger
}

// NewHandler creates a handler. rec may be nil, in which case /metrics is
// not mounted.
func NewHandler(cards *catalog.Catalog, session *review.Session, rec *metrics.Recorder, log logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{cards: cards, session: session, metrics: rec, log: log}
}

// Router returns a chi router with every route mounted.
func (h *Handler) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(RequestLogger(h.log))
	r.Use(LimitBody)

	r.Get("/healthz", h.Health)
	r.Get("/cards", h.ListCards)
	r.Get("/cards/{id}/state", h.GetState)
	r.Post("/cards/{id}/ratings", h.Rate)
	r.Get("/progress", h.Progress)
	r.Get("/weeks", h.ListWeeks)
	if h.metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.metrics.Handler())
	}
	return r
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]string{
		"status":     "ok",
		"session_id": h.session.ID(),
	})
}

// ListCards handles GET /cards with an optional week query parameter.
func (h *Handler) ListCards(w http.ResponseWriter, r *http.Request) {
	var cards []catalog.Card
	if raw := r.URL.Query().Get("week"); raw != "" {
		week, err := strconv.Atoi(raw)
		if err != nil || week < 1 {
			WriteError(w, http.StatusBadRequest, "invalid_argument", "week must be a positive integer")
			return
		}
		cards = h.cards.ByWeek(week)
	} else {
		cards = h.cards.Cards()
	}

	now := h.session.Now()
	out := make([]CardView, 0, len(cards))
	for _, c := range cards {
		cs, seen := h.session.State(r.Context(), c.ID)
		out = append(out, CardView{Card: c, Status: string(cs.Status(now, seen))})
	}
	WriteJSON(w, http.StatusOK, out)
}

// GetState handles GET /cards/{id}/state.
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := h.cards.Lookup(id); !ok {
		WriteError(w, http.StatusNotFound, "not_found", "unknown card "+id)
		return
	}
	cs, seen := h.session.State(r.Context(), id)
	view := h.stateView(id, cs, seen)
	view.Preview = h.session.Preview(r.Context(), id)
	WriteJSON(w, http.StatusOK, view)
}

// Rate handles POST /cards/{id}/ratings.
func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	card, ok := h.cards.Lookup(id)
	if !ok {
		WriteError(w, http.StatusNotFound, "not_found", "unknown card "+id)
		return
	}

	var req RatingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Quality == nil {
		WriteError(w, http.StatusBadRequest, "invalid_argument", "quality is required")
		return
	}

	out, err := h.session.Rate(r.Context(), card, spacedrep.Quality(*req.Quality))
	if err != nil {
		if errors.Is(err, spacedrep.ErrInvalidArgument) {
			WriteError(w, http.StatusBadRequest, "invalid_argument", err.Error())
			return
		}
		h.log.Error(r.Context(), "rating failed", logger.String("card_id", id), logger.Error(err))
		WriteError(w, http.StatusInternalServerError, "internal", "rating failed")
		return
	}

	WriteJSON(w, http.StatusOK, RatingResponse{
		State:     h.stateView(id, out.Next, true),
		Persisted: out.Persisted,
		WeekCount: out.WeekCount,
	})
}

// Progress handles GET /progress.
func (h *Handler) Progress(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, ProgressResponse{
		Weeks:   h.session.Progress(),
		Session: h.session.Summary(),
	})
}

// ListWeeks handles GET /weeks.
func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	progress := h.session.Progress()
	overview := h.cards.Overview()
	out := make([]WeekView, 0, len(overview))
	for _, ov := range overview {
		out = append(out, WeekView{
			WeekOverview: ov,
			Ratings:      progress[ov.Number],
			Status:       h.session.Status(r.Context(), h.cards.ByWeek(ov.Number)),
		})
	}
	WriteJSON(w, http.StatusOK, out)
}

func (h *Handler) stateView(id string, cs spacedrep.CardState, seen bool) StateView {
	return StateView{
		CardID:       id,
		Status:       string(cs.Status(h.session.Now(), seen)),
		Repetition:   cs.Repetition,
		Interval:     cs.Interval,
		EaseFactor:   cs.EaseFactor,
		NextReviewAt: spacedrep.FormatTime(cs.NextReviewAt),
		LastReviewed: spacedrep.FormatTime(cs.LastReviewed),
	}
}
