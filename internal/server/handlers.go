package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"gig-discovery/internal/common/errors"
	"gig-discovery/internal/common/validation"
	"gig-discovery/internal/models"
	"gig-discovery/internal/ranking"
)

type searchResponse struct {
	Query   string              `json:"query"`
	Count   int                 `json:"count"`
	Results []ranking.ScoredGig `json:"results"`
}

type gigListResponse struct {
	Count int                `json:"count"`
	Gigs  []models.GigRecord `json:"gigs"`
}

type suggestionsResponse struct {
	Prefix      string   `json:"prefix"`
	Suggestions []string `json:"suggestions"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")
	limit := parseLimit(r, 0)

	if s.obs != nil {
		start := time.Now()
		s.obs.RecordQuery(ctx, "search")
		defer func() { s.obs.RecordQueryDuration(ctx, time.Since(start), "search") }()
	}

	cacheKey := "search:" + query
	if limit == 0 {
		var cached searchResponse
		if s.cache.Get(ctx, cacheKey, &cached) {
			s.respondJSON(w, http.StatusOK, cached)
			return
		}
	}

	candidates, err := s.store.ActiveGigs(ctx)
	if err != nil {
		s.respondError(w, err)
		return
	}

	results := s.ranker.RankScored(query, candidates)
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}

	resp := searchResponse{Query: query, Count: len(results), Results: results}
	if limit == 0 {
		s.cache.Set(ctx, cacheKey, resp)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

// handleRecommended serves the shuffled slate. It is deliberately not
// cached: repeated calls must keep producing fresh orderings.
func (s *Server) handleRecommended(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	gigs := s.index.RecommendForUser(userID)
	s.respondJSON(w, http.StatusOK, gigListResponse{Count: len(gigs), Gigs: gigs})
}

func (s *Server) handleRanked(w http.ResponseWriter, r *http.Request) {
	gigs := s.index.RankedGigs()
	s.respondJSON(w, http.StatusOK, gigListResponse{Count: len(gigs), Gigs: gigs})
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, s.disc.TrendingLimit)
	gigs := s.index.TrendingTop(limit)
	s.respondJSON(w, http.StatusOK, gigListResponse{Count: len(gigs), Gigs: gigs})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	suggestions := s.index.SearchPrefix(prefix)
	s.respondJSON(w, http.StatusOK, suggestionsResponse{Prefix: prefix, Suggestions: suggestions})
}

func (s *Server) handleSimilarUsers(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"userId":  userID,
		"similar": s.index.SimilarUsers(userID),
	})
}

func (s *Server) handleImpression(w http.ResponseWriter, r *http.Request) {
	gigID := mux.Vars(r)["gigID"]
	if err := s.store.IncrementImpressions(r.Context(), gigID); err != nil {
		s.respondError(w, err)
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

// handleClick bumps the click counter and, when the caller identifies the
// user, feeds the interaction into the similarity graph.
func (s *Server) handleClick(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	gigID := mux.Vars(r)["gigID"]

	if err := s.store.IncrementClicks(ctx, gigID); err != nil {
		s.respondError(w, err)
		return
	}

	if userID := r.URL.Query().Get("userId"); userID != "" {
		gig, err := s.store.GigByID(ctx, gigID)
		if err != nil {
			s.log.Warn("click recorded but interaction lookup failed", map[string]interface{}{
				"gig_id":  gigID,
				"user_id": userID,
				"error":   err.Error(),
			})
		} else {
			s.index.RecordInteraction(models.UserInteraction{
				UserID:     userID,
				GigID:      gig.ID,
				Category:   gig.Category,
				SellerID:   gig.SellerID,
				OccurredAt: time.Now(),
			})
		}
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

// handleRebuild rebuilds the index from a posted snapshot, or from the
// catalog when the body is empty.
func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		s.respondError(w, errors.NewSnapshotInvalidError(err.Error()))
		return
	}

	var gigs []models.GigRecord
	if len(body) == 0 {
		gigs, err = s.store.Snapshot(ctx)
		if err != nil {
			s.respondError(w, err)
			return
		}
	} else {
		var doc interface{}
		if err := json.Unmarshal(body, &doc); err != nil {
			s.respondError(w, errors.NewSnapshotInvalidError(err.Error()))
			return
		}
		if err := validation.ValidateSnapshot(doc); err != nil {
			s.respondError(w, errors.NewSnapshotInvalidError(err.Error()))
			return
		}
		if err := json.Unmarshal(body, &gigs); err != nil {
			s.respondError(w, errors.NewSnapshotInvalidError(err.Error()))
			return
		}
	}

	s.index.Rebuild(gigs)
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"indexed": len(s.index.RankedGigs()),
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"reason": "catalog unreachable",
		})
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil || status == http.StatusNoContent {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.log.Error("response encoding failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func (s *Server) respondError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)

	code := "INTERNAL_ERROR"
	message := err.Error()
	if stdErr, ok := err.(*errors.StandardError); ok {
		code = string(stdErr.Code)
		message = stdErr.Message
	}

	if status >= http.StatusInternalServerError {
		s.log.Error("request failed", map[string]interface{}{
			"code":  code,
			"error": err.Error(),
		})
	}

	s.respondJSON(w, status, map[string]interface{}{
		"error": map[string]string{"code": code, "message": message},
	})
}

func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return fallback
	}
	return limit
}
