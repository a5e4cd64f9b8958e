package http_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-nutrition/framework/gate"
	gohttp "github.com/km-arc/go-nutrition/framework/http"
)

// ── helpers ──────────────────────────────────────────────────────────────────

func newJSONRequest(t *testing.T, body string) *gohttp.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return gohttp.NewRequest(req)
}

func newFormRequest(t *testing.T, values url.Values) *gohttp.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return gohttp.NewRequest(req)
}

var loginForm = gate.Form{Name: "login", Fields: []gate.Field{{Name: "username"}, {Name: "password"}}}

// ── FormValues ───────────────────────────────────────────────────────────────

func TestRequest_FormValues_Form(t *testing.T) {
	req := newFormRequest(t, url.Values{"username": {"alice"}, "password": {"pw"}, "extra": {"x"}})

	values, err := req.FormValues(loginForm)
	if err != nil {
		t.Fatalf("FormValues error: %v", err)
	}
	if values["username"] != "alice" || values["password"] != "pw" {
		t.Errorf("values: got %v", values)
	}
	if _, ok := values["extra"]; ok {
		t.Error("fields outside the form should be ignored")
	}
}

func TestRequest_FormValues_JSON(t *testing.T) {
	req := newJSONRequest(t, `{"username":"alice","password":12345}`)

	values, err := req.FormValues(loginForm)
	if err != nil {
		t.Fatalf("FormValues error: %v", err)
	}
	if values["username"] != "alice" {
		t.Errorf("username: got %q", values["username"])
	}
	if values["password"] != "12345" {
		t.Errorf("numbers should be stringified, got %q", values["password"])
	}
}

func TestRequest_FormValues_MissingFieldsEmpty(t *testing.T) {
	values, err := newJSONRequest(t, `{}`).FormValues(loginForm)
	if err != nil {
		t.Fatalf("FormValues error: %v", err)
	}
	if v, ok := values["password"]; !ok || v != "" {
		t.Errorf("missing field: got %q, %v", v, ok)
	}
}

func TestRequest_FormValues_InvalidJSON(t *testing.T) {
	if _, err := newJSONRequest(t, `{bad json}`).FormValues(loginForm); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestRequest_FormValues_Multipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("username", "bob")
	_ = mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	values, err := gohttp.NewRequest(r).FormValues(loginForm)
	if err != nil {
		t.Fatalf("FormValues error: %v", err)
	}
	if values["username"] != "bob" {
		t.Errorf("username: got %q", values["username"])
	}
}

// ── Bind & input ─────────────────────────────────────────────────────────────

func TestRequest_BindAfterFormValues(t *testing.T) {
	req := newJSONRequest(t, `{"username":"alice"}`)
	if _, err := req.FormValues(loginForm); err != nil {
		t.Fatal(err)
	}

	var body struct {
		Username string `json:"username"`
	}
	if err := req.Bind(&body); err != nil {
		t.Fatalf("Bind error: %v", err)
	}
	if body.Username != "alice" {
		t.Errorf("body is read once and cached, got %q", body.Username)
	}
}

func TestRequest_Bind_EmptyBody(t *testing.T) {
	var v any
	if err := newJSONRequest(t, "").Bind(&v); err == nil {
		t.Error("expected error for empty body, got nil")
	}
}

func TestRequest_InputAndQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?q=oats", nil)
	req := gohttp.NewRequest(r)

	if got := req.Input("q"); got != "oats" {
		t.Errorf("Input: got %q", got)
	}
	if got := req.Query("page", "1"); got != "1" {
		t.Errorf("Query fallback: got %q", got)
	}
	if !req.Has("q") || req.Has("page") {
		t.Error("Has: wrong presence")
	}
}

func TestRequest_IsJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Accept", "application/json")
	if !gohttp.NewRequest(r).IsJSON() {
		t.Error("Accept: application/json should be JSON")
	}
	if newFormRequest(t, url.Values{}).IsJSON() {
		t.Error("urlencoded request should not be JSON")
	}
}

// ── raw access ───────────────────────────────────────────────────────────────

func TestRequest_Raw(t *testing.T) {
	raw := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := gohttp.NewRequest(raw).Raw(); got != raw {
		t.Error("Raw should return the wrapped request")
	}
}

func TestRequest_RouteParam(t *testing.T) {
	var got, missing string
	r := chi.NewRouter()
	r.Get("/meals/{id}", func(w http.ResponseWriter, raw *http.Request) {
		req := gohttp.NewRequest(raw)
		got, missing = req.RouteParam("id"), req.RouteParam("day")
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/meals/42", nil))

	if got != "42" {
		t.Errorf("RouteParam(id): got %q want 42", got)
	}
	if missing != "" {
		t.Errorf("RouteParam(day): got %q want empty", missing)
	}
}
