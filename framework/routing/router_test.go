package routing_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/km-arc/go-nutrition/framework/routing"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func do(t *testing.T, router *routing.Router, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

// ── routes ───────────────────────────────────────────────────────────────────

func TestRouter_Form(t *testing.T) {
	r := routing.New(zerolog.Nop())
	r.Form("/register", okHandler, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	if rr := do(t, r, http.MethodGet, "/register"); rr.Code != http.StatusOK {
		t.Errorf("GET /register: got %d want 200", rr.Code)
	}
	if rr := do(t, r, http.MethodPost, "/register"); rr.Code != http.StatusCreated {
		t.Errorf("POST /register: got %d want 201", rr.Code)
	}
	if rr := do(t, r, http.MethodPut, "/register"); rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("PUT /register: got %d want 405", rr.Code)
	}
}

func TestRouter_NotFound(t *testing.T) {
	r := routing.New(zerolog.Nop())
	if rr := do(t, r, http.MethodGet, "/missing"); rr.Code != http.StatusNotFound {
		t.Errorf("GET /missing: got %d want 404", rr.Code)
	}
}

func TestRouter_PrefixAndParam(t *testing.T) {
	r := routing.New(zerolog.Nop())
	r.Prefix("/api/activity", func(api *routing.Router) {
		api.Get("/{range}", func(w http.ResponseWriter, req *http.Request) {
			_, _ = w.Write([]byte(routing.Param(req, "range")))
		})
	})

	rr := do(t, r, http.MethodGet, "/api/activity/weekly")
	if rr.Body.String() != "weekly" {
		t.Errorf("param: got %q want weekly", rr.Body.String())
	}
}

func TestRouter_GroupMiddleware(t *testing.T) {
	r := routing.New(zerolog.Nop())
	r.Group(func(g *routing.Router) {
		g.Middleware(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("X-Guarded", "1")
				next.ServeHTTP(w, req)
			})
		})
		g.Get("/dashboard", okHandler)
	})
	r.Get("/health", okHandler)

	if rr := do(t, r, http.MethodGet, "/dashboard"); rr.Header().Get("X-Guarded") != "1" {
		t.Error("group middleware should apply inside the group")
	}
	if rr := do(t, r, http.MethodGet, "/health"); rr.Header().Get("X-Guarded") != "" {
		t.Error("group middleware should not leak outside the group")
	}
}

// ── logging & recovery ───────────────────────────────────────────────────────

func TestRouter_AccessLogAndRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	r := routing.New(zerolog.New(&buf))
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		hlog.FromRequest(req).Info().Msg("inside")
		okHandler(w, req)
	})

	rr := do(t, r, http.MethodGet, "/health")
	if rr.Header().Get("X-Request-Id") == "" {
		t.Error("X-Request-Id header should be set")
	}

	logs := buf.String()
	for _, want := range []string{`"message":"inside"`, `"path":"/health"`, `"status":200`, `"req_id"`} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %s:\n%s", want, logs)
		}
	}
}

func TestRouter_RecoversPanics(t *testing.T) {
	r := routing.New(zerolog.Nop())
	r.Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	if rr := do(t, r, http.MethodGet, "/boom"); rr.Code != http.StatusInternalServerError {
		t.Errorf("panic: got %d want 500", rr.Code)
	}
}
