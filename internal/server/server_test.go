package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/clearfeed/mediascope/internal/tracker"
)

func newTestRequest(method, target string, body io.Reader) *http.Request {
	return httptest.NewRequest(method, target, body)
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	clock := time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)
	tr := tracker.New(tracker.Options{Clock: func() time.Time { return clock }})
	return New(tr, "", "")
}

func doJSON(t *testing.T, h http.Handler, method, target string, body string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	var rdr io.Reader
	if body != "" {
		rdr = bytes.NewBufferString(body)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, newTestRequest(method, target, rdr))

	out := map[string]json.RawMessage{}
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("%s %s: non-JSON body %q", method, target, rec.Body.String())
		}
	}
	return rec, out
}

func TestTrackingToggleRoundTrip(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, out := doJSON(t, h, "GET", "/api/tracking", "")
	if rec.Code != http.StatusOK || string(out["isTracking"]) != "true" {
		t.Fatalf("GET tracking: %d %s", rec.Code, rec.Body.String())
	}

	rec, out = doJSON(t, h, "POST", "/api/tracking/toggle", "")
	if rec.Code != http.StatusOK || string(out["isTracking"]) != "false" {
		t.Fatalf("toggle: %d %s", rec.Code, rec.Body.String())
	}
}

func TestVisitIntake(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, out := doJSON(t, h, "POST", "/api/visit", `{"domain":"reuters.com","path":"/world","title":"Headline"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("visit: %d %s", rec.Code, rec.Body.String())
	}
	if string(out["recorded"]) != "true" {
		t.Fatalf("visit not recorded: %s", rec.Body.String())
	}

	rec, _ = doJSON(t, h, "GET", "/api/scores", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "overallHealth") {
		t.Fatalf("scores: %d %s", rec.Code, rec.Body.String())
	}
}

func TestVisitValidation(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, _ := doJSON(t, h, "POST", "/api/visit", `{"domain":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty domain: %d", rec.Code)
	}
	rec, _ = doJSON(t, h, "POST", "/api/visit", `not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("garbage body: %d", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	h := newTestServer(t).Handler()
	rec, out := doJSON(t, h, "GET", "/api/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d", rec.Code)
	}
	if _, ok := out["error"]; !ok {
		t.Fatalf("404 without JSON error: %s", rec.Body.String())
	}
}

func TestBasicAuth(t *testing.T) {
	s := newTestServer(t)
	s.Username, s.Password = "user", "secret"
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, newTestRequest("GET", "/api/tracking", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no credentials: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := newTestRequest("GET", "/api/tracking", nil)
	req.SetBasicAuth("user", "secret")
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("valid credentials: %d", rec.Code)
	}
}

func TestRateLimitRejects(t *testing.T) {
	s := newTestServer(t)
	s.limiter = newRateLimiter(2, time.Minute, nil)
	h := s.Handler()

	for i := 0; i < 2; i++ {
		rec, _ := doJSON(t, h, "GET", "/api/tracking", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: %d", i+1, rec.Code)
		}
	}
	rec, _ := doJSON(t, h, "GET", "/api/tracking", "")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("over limit: %d", rec.Code)
	}
}

func TestSettingsUpdateDropsUnknownKeys(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, _ := doJSON(t, h, "POST", "/api/settings", `{"echoChamberThreshold":3,"totallyUnknown":true}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("settings: %d %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"echoChamberThreshold":3`) {
		t.Fatalf("threshold not applied: %s", rec.Body.String())
	}
}

func TestBreakerEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()
	rec, out := doJSON(t, h, "GET", "/api/echo/breaker", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("breaker: %d", rec.Code)
	}
	if string(out["inDebt"]) != "false" {
		t.Fatalf("fresh tracker in debt: %s", rec.Body.String())
	}
}

func TestImportValidation(t *testing.T) {
	h := newTestServer(t).Handler()

	rec, _ := doJSON(t, h, "POST", "/api/import", `{"browser":"safari","path":"/tmp/x"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad browser: %d", rec.Code)
	}
	rec, _ = doJSON(t, h, "POST", "/api/import", `{"browser":"chrome"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing path: %d", rec.Code)
	}
}

func TestAlternativesEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()
	rec, out := doJSON(t, h, "GET", "/api/alternatives?bias=right", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("alternatives: %d", rec.Code)
	}
	var alts []map[string]interface{}
	if err := json.Unmarshal(out["alternatives"], &alts); err != nil || len(alts) == 0 {
		t.Fatalf("alternatives body: %s", rec.Body.String())
	}
}
