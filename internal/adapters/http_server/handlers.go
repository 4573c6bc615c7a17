package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"smart_travel/internal/app"
	"smart_travel/internal/catalog"
	"smart_travel/internal/domain"
	"smart_travel/internal/validation"
)

const maxBodyBytes = 1 << 20

type Handlers struct{ S *app.SearchService }

type problem struct {
	Type   string                  `json:"type"`
	Title  string                  `json:"title"`
	Status int                     `json:"status"`
	Detail string                  `json:"detail,omitempty"`
	Errors []validation.FieldError `json:"errors,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/destinations", h.listDestinations)
	s.mux.Get("/v1/airports", h.listAirports)

	s.mux.Group(func(g chi.Router) {
		g.Use(SearchRateLimit(s.opts.SearchRatePerMinute))
		g.Post("/v1/search", h.search)
		g.Post("/v1/users/{userID}/search", h.searchForUser)
	})

	s.mux.Get("/v1/recommendations/{id}", h.getRecommendationSet)
	s.mux.Get("/v1/users/{userID}/recommendations", h.listHistory)
	s.mux.Get("/v1/users/{userID}/preferences", h.getPreferences)
	s.mux.Put("/v1/users/{userID}/preferences", h.putPreferences)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *validation.RequestValidationError
	switch {
	case errors.As(err, &verr):
		writeProblemBody(w, problem{Type: "about:blank", Title: "Invalid search criteria", Status: http.StatusBadRequest, Detail: verr.Error(), Errors: verr.Fields})
	case errors.Is(err, domain.ErrInvalidCriteria):
		writeProblem(w, http.StatusBadRequest, "Invalid search criteria", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resource not found")
	case errors.Is(err, domain.ErrCandidateSourceUnavailable), errors.Is(err, context.DeadlineExceeded):
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("inventory unavailable")
		writeProblem(w, http.StatusServiceUnavailable, "Inventory Unavailable", "travel inventory is temporarily unavailable, retry later")
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

// writeCacheable answers 304 when the client already holds this version.
func writeCacheable(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write cacheable body")
	}
}

func userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || id <= 0 {
		writeProblem(w, http.StatusBadRequest, "Invalid user ID", "userID must be a positive integer")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", err.Error())
		return false
	}
	return true
}

// ---- catalog ----

type destinationView struct {
	Name    string `json:"name"`
	Airport string `json:"airport"`
	Country string `json:"country"`
	Image   string `json:"image,omitempty"`
}

func (h *Handlers) listDestinations(w http.ResponseWriter, r *http.Request) {
	title := cases.Title(language.Und)
	ds := catalog.Destinations()
	out := make([]destinationView, 0, len(ds))
	for _, d := range ds {
		out = append(out, destinationView{Name: title.String(d.Name), Airport: d.Airport, Country: d.Country, Image: d.ImageURL})
	}
	writeCacheable(w, r, map[string]any{"destinations": out})
}

func (h *Handlers) listAirports(w http.ResponseWriter, r *http.Request) {
	writeCacheable(w, r, map[string]any{"airports": catalog.Airports()})
}

// ---- search ----

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	set, err := h.S.Search(r.Context(), req.criteria())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (h *Handlers) searchForUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}
	set, err := h.S.SearchForUser(r.Context(), userID, req.criteriaForUser())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (h *Handlers) getRecommendationSet(w http.ResponseWriter, r *http.Request) {
	set, err := h.S.GetRecommendationSet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, set)
}

func (h *Handlers) listHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 50 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 50")
			return
		}
		limit = l
	}
	sets, err := h.S.History(r.Context(), userID, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, map[string]any{"recommendation_sets": sets})
}

// ---- preferences ----

func (h *Handlers) getPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	p, err := h.S.GetPreferences(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeCacheable(w, r, p)
}

func (h *Handlers) putPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	var p domain.PreferenceOverlay
	if !decodeBody(w, r, &p) {
		return
	}
	if err := h.S.SavePreferences(r.Context(), userID, p); err != nil {
		writeError(w, r, err)
		return
	}
	saved, err := h.S.GetPreferences(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
