package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/clearfeed/mediascope/internal/tracker"
	"github.com/clearfeed/mediascope/pkg/classifier"
	"github.com/clearfeed/mediascope/pkg/history"
	"github.com/clearfeed/mediascope/pkg/sources"
	"github.com/clearfeed/mediascope/pkg/storage"
)

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleTracking(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]bool{"isTracking": s.Tracker.IsTracking()})
}

func (s *Server) handleTrackingToggle(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]bool{"isTracking": s.Tracker.ToggleTracking(r.Context())})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Tracker.Snapshot())
}

func (s *Server) handleScores(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Tracker.CurrentScores())
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Tracker.CurrentWeek())
}

func (s *Server) handleEchoAnalysis(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Tracker.AnalyzeEchoChamber(r.URL.Query().Get("week")))
}

func (s *Server) handleEchoBreaker(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Tracker.BreakerStatusFor(r.Context(), r.URL.Query().Get("domain")))
}

func (s *Server) handleDebtClear(w http.ResponseWriter, r *http.Request) {
	s.Tracker.ClearDebt(r.Context())
	writeJSON(w, map[string]bool{"cleared": true})
}

func (s *Server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Tracker.Settings())
}

func (s *Server) handleSettingsUpdate(w http.ResponseWriter, r *http.Request) {
	var patch tracker.SettingsPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	writeJSON(w, s.Tracker.UpdateSettings(r.Context(), patch))
}

func (s *Server) handleGoalsGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Tracker.GoalsProgress())
}

func (s *Server) handleGoalsUpdate(w http.ResponseWriter, r *http.Request) {
	var patch tracker.GoalsPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	writeJSON(w, s.Tracker.UpdateGoals(r.Context(), patch))
}

func (s *Server) handleVisit(w http.ResponseWriter, r *http.Request) {
	var p tracker.PageInfo
	if !decodeBody(w, r, &p) {
		return
	}
	res, err := s.Tracker.RecordVisit(r.Context(), p)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, res)
}

type durationRequest struct {
	Domain  string  `json:"domain"`
	Minutes float64 `json:"minutes"`
}

func (s *Server) handleVisitDuration(w http.ResponseWriter, r *http.Request) {
	var req durationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Domain == "" || req.Minutes <= 0 {
		writeError(w, http.StatusBadRequest, "domain and positive minutes required")
		return
	}
	added := s.Tracker.AddActiveTime(r.Context(), req.Domain, req.Minutes)
	writeJSON(w, map[string]bool{"added": added})
}

type analyzeRequest struct {
	URL    string `json:"url"`
	Record bool   `json:"record"`
}

type analyzeResponse struct {
	Domain         string               `json:"domain"`
	Path           string               `json:"path"`
	Title          string               `json:"title"`
	Classification classifier.Result    `json:"classification"`
	Visit          *tracker.VisitResult `json:"visit,omitempty"`
}

// handleAnalyze fetches a live page, classifies it and optionally records
// it as a visit.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url required")
		return
	}

	page, err := s.Fetcher.Page(req.URL)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	resp := analyzeResponse{
		Domain:         page.Domain,
		Path:           page.Path,
		Title:          page.Title,
		Classification: classifier.Classify(page.Domain, page.Path, page.Title, page.Text),
	}
	if req.Record {
		res, err := s.Tracker.RecordVisit(r.Context(), tracker.PageInfo{
			Domain:  page.Domain,
			Path:    page.Path,
			Title:   page.Title,
			Content: page.Text,
		})
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp.Visit = &res
	}
	writeJSON(w, resp)
}

func (s *Server) handleAlternatives(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	alts := s.Tracker.Alternatives(sources.Bias(q.Get("bias")), sources.Category(q.Get("category")))
	writeJSON(w, map[string]interface{}{"alternatives": alts})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Tracker.Report(r.URL.Query().Get("week")))
}

type importRequest struct {
	Browser string `json:"browser"`
	Path    string `json:"path"`
	Days    int    `json:"days"`
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path required")
		return
	}
	if req.Days <= 0 {
		req.Days = 30
	}

	var (
		entries []history.Entry
		err     error
	)
	switch req.Browser {
	case "chrome":
		entries, err = history.ReadChrome(r.Context(), req.Path, req.Days, time.Now())
	case "firefox":
		entries, err = history.ReadFirefox(r.Context(), req.Path, req.Days, time.Now())
	default:
		writeError(w, http.StatusBadRequest, "browser must be chrome or firefox")
		return
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, s.Tracker.ImportEntries(r.Context(), entries))
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.Tracker.ClearAll(r.Context())
	writeJSON(w, map[string]bool{"cleared": true})
}

type encryptionRequest struct {
	Password string `json:"password"`
}

func (s *Server) handleEncryptionEnable(w http.ResponseWriter, r *http.Request) {
	var req encryptionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.Tracker.EnableEncryption(r.Context(), req.Password); err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, storage.ErrPasswordTooShort) {
			code = http.StatusBadRequest
		}
		writeError(w, code, err.Error())
		return
	}
	writeJSON(w, map[string]bool{"encryptionEnabled": true})
}

func (s *Server) handleEncryptionDisable(w http.ResponseWriter, r *http.Request) {
	if err := s.Tracker.DisableEncryption(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, map[string]bool{"encryptionEnabled": false})
}
