// Package server exposes the discovery engine over HTTP: relevance-ranked
// search, recommendation slates, trending and ranked views, prefix
// suggestions, interaction tracking, and the index rebuild trigger.
package server

import (
	"context"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gig-discovery/internal/catalog"
	"gig-discovery/internal/common/config"
	"gig-discovery/internal/common/logger"
	"gig-discovery/internal/common/observability"
	"gig-discovery/internal/models"
	"gig-discovery/internal/ranking"
	"gig-discovery/internal/recommend"
)

// GigStore is the catalog surface the handlers need.
type GigStore interface {
	ActiveGigs(ctx context.Context) ([]models.GigRecord, error)
	Snapshot(ctx context.Context) ([]models.GigRecord, error)
	GigByID(ctx context.Context, gigID string) (models.GigRecord, error)
	IncrementImpressions(ctx context.Context, gigID string) error
	IncrementClicks(ctx context.Context, gigID string) error
	Ping(ctx context.Context) error
}

// Server wires the ranker, the recommendation index and the catalog store
// behind the HTTP API.
type Server struct {
	cfg    config.ServerConfig
	disc   config.DiscoveryConfig
	log    logger.Logger
	store  GigStore
	cache  *catalog.ResultCache
	index  *recommend.Index
	ranker *ranking.Ranker
	obs    *observability.Observability

	router *mux.Router
	http   *http.Server
}

// New builds a fully routed server. cache and obs may be nil; the
// corresponding features are skipped.
func New(
	cfg config.ServerConfig,
	disc config.DiscoveryConfig,
	log logger.Logger,
	store GigStore,
	cache *catalog.ResultCache,
	idx *recommend.Index,
	ranker *ranking.Ranker,
	obs *observability.Observability,
) *Server {
	s := &Server{
		cfg:    cfg,
		disc:   disc,
		log:    log,
		store:  store,
		cache:  cache,
		index:  idx,
		ranker: ranker,
		obs:    obs,
	}
	s.router = s.routes()
	s.http = &http.Server{
		Addr:         cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Second,
	}
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogging)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/gigs/search", s.handleSearch).Methods(http.MethodGet)
	api.HandleFunc("/gigs/recommended", s.handleRecommended).Methods(http.MethodGet)
	api.HandleFunc("/gigs/ranked", s.handleRanked).Methods(http.MethodGet)
	api.HandleFunc("/gigs/trending", s.handleTrending).Methods(http.MethodGet)
	api.HandleFunc("/search/suggestions", s.handleSuggestions).Methods(http.MethodGet)
	api.HandleFunc("/users/{userID}/similar", s.handleSimilarUsers).Methods(http.MethodGet)
	api.HandleFunc("/gigs/{gigID}/impression", s.handleImpression).Methods(http.MethodPost)
	api.HandleFunc("/gigs/{gigID}/click", s.handleClick).Methods(http.MethodPost)

	r.HandleFunc("/internal/index/rebuild", s.handleRebuild).Methods(http.MethodPost)
	r.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	debug := r.PathPrefix("/debug/pprof").Subrouter()
	debug.HandleFunc("", pprof.Index)
	debug.HandleFunc("/cmdline", pprof.Cmdline)
	debug.HandleFunc("/profile", pprof.Profile)
	debug.HandleFunc("/symbol", pprof.Symbol)
	debug.HandleFunc("/trace", pprof.Trace)

	return r
}

// Router returns the routed handler, used by tests and by main.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown or a listener error.
func (s *Server) Start() error {
	s.log.Info("http server listening", map[string]interface{}{
		"address": s.http.Addr,
	})
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) requestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("request handled", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}
