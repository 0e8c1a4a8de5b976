// Package server exposes the tracker over a JSON HTTP API, the surface
// the browser extension talks to.
package server

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/clearfeed/mediascope/internal/tracker"
	"github.com/clearfeed/mediascope/internal/utils"
	"github.com/clearfeed/mediascope/pkg/fetch"
)

const (
	rateLimitRequests = 60
	rateLimitWindow   = 60 * time.Second
)

type Server struct {
	Tracker  *tracker.Tracker
	Fetcher  *fetch.Client
	Username string
	Password string

	limiter *rateLimiter
	log     *logrus.Logger
}

func New(t *tracker.Tracker, user, pass string) *Server {
	return &Server{
		Tracker:  t,
		Fetcher:  fetch.NewClient(),
		Username: user,
		Password: pass,
		limiter:  newRateLimiter(rateLimitRequests, rateLimitWindow, nil),
		log:      utils.Log,
	}
}

// Handler builds the full route table. Split from Start so tests can
// drive it through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/tracking", s.wrap(s.handleTracking))
	mux.HandleFunc("POST /api/tracking/toggle", s.wrap(s.handleTrackingToggle))
	mux.HandleFunc("GET /api/state", s.wrap(s.handleState))
	mux.HandleFunc("GET /api/scores", s.wrap(s.handleScores))
	mux.HandleFunc("GET /api/week", s.wrap(s.handleWeek))

	mux.HandleFunc("GET /api/echo/analysis", s.wrap(s.handleEchoAnalysis))
	mux.HandleFunc("GET /api/echo/breaker", s.wrap(s.handleEchoBreaker))
	mux.HandleFunc("POST /api/echo/debt/clear", s.wrap(s.handleDebtClear))

	mux.HandleFunc("GET /api/settings", s.wrap(s.handleSettingsGet))
	mux.HandleFunc("POST /api/settings", s.wrap(s.handleSettingsUpdate))
	mux.HandleFunc("GET /api/goals", s.wrap(s.handleGoalsGet))
	mux.HandleFunc("POST /api/goals", s.wrap(s.handleGoalsUpdate))

	mux.HandleFunc("POST /api/visit", s.wrap(s.handleVisit))
	mux.HandleFunc("POST /api/visit/duration", s.wrap(s.handleVisitDuration))
	mux.HandleFunc("POST /api/analyze", s.wrap(s.handleAnalyze))
	mux.HandleFunc("GET /api/alternatives", s.wrap(s.handleAlternatives))
	mux.HandleFunc("GET /api/report", s.wrap(s.handleReport))
	mux.HandleFunc("POST /api/import", s.wrap(s.handleImport))

	mux.HandleFunc("POST /api/clear", s.wrap(s.handleClear))
	mux.HandleFunc("POST /api/encryption/enable", s.wrap(s.handleEncryptionEnable))
	mux.HandleFunc("POST /api/encryption/disable", s.wrap(s.handleEncryptionDisable))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return mux
}

func (s *Server) Start(addr string) error {
	s.log.Infof("listening on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// wrap applies basic auth, the rate limit and a panic guard to one
// handler.
func (s *Server) wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Username != "" || s.Password != "" {
			user, pass, ok := r.BasicAuth()
			if !ok || user != s.Username || pass != s.Password {
				w.Header().Set("WWW-Authenticate", `Basic realm="Restricted"`)
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
		}
		if !s.limiter.allow(callerKey(r)) {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		defer func() {
			if rec := recover(); rec != nil {
				s.log.Errorf("panic in %s %s: %v", r.Method, r.URL.Path, rec)
				writeError(w, http.StatusInternalServerError, "internal error")
			}
		}()
		next(w, r)
	}
}
