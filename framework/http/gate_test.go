package http_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-nutrition/framework/gate"
	gohttp "github.com/km-arc/go-nutrition/framework/http"
	"github.com/km-arc/go-nutrition/framework/http/validation"
)

var registerViews = fstest.MapFS{
	"layout.html": {Data: []byte(`<!doctype html><html><body>{{template "content" .}}</body></html>`)},
	"register.html": {Data: []byte(`{{define "content"}}<form name="register" novalidate>
<input type="text" name="username">
<input type="email" name="email">
<input type="password" name="password">
<input type="password" name="password2">
</form>{{end}}`)},
}

func registerGate() *gate.Gate {
	return gate.New(gate.Form{Name: "register", Fields: []gate.Field{
		{Name: "username", Kind: validation.KindUsername, Constraints: "required"},
		{Name: "email", Kind: validation.KindEmail, Constraints: "required|email"},
		{Name: "password", Kind: validation.KindPassword, Constraints: "required"},
		{Name: "password2", Kind: validation.KindPassword, Constraints: "required|same:password"},
	}}, validation.MustRules(validation.DefaultConfig()))
}

func registerValues() url.Values {
	return url.Values{
		"username":  {"alice"},
		"email":     {"Alice@Example.com"},
		"password":  {"Str0ng!Pass"},
		"password2": {"Str0ng!Pass"},
	}
}

func gated(t *testing.T, next http.Handler) http.Handler {
	t.Helper()
	views, err := gohttp.NewViewEngine(registerViews, "layout.html")
	require.NoError(t, err)
	return gohttp.Gate(registerGate(), next, gohttp.RenderPage(views, "register", nil))
}

func postForm(h http.Handler, values url.Values) *httptest.ResponseRecorder {
	r := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)
	return rr
}

func unreachable(t *testing.T) http.Handler {
	return http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("rejected submit reached the handler")
	})
}

// ── accepted ─────────────────────────────────────────────────────────────────

func TestGate_AcceptedReachesHandlerSanitized(t *testing.T) {
	var got gate.Values
	h := gated(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = gohttp.Submitted(r)
		w.WriteHeader(http.StatusCreated)
	}))

	rr := postForm(h, registerValues())

	assert.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, got)
	assert.Equal(t, "alice@example.com", got["email"])
	assert.Equal(t, "alice", got["username"])
}

// ── rejected ─────────────────────────────────────────────────────────────────

func TestGate_RejectedJSONGetsErrorBag(t *testing.T) {
	h := gated(t, unreachable(t))

	r := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"username":"ab","email":"alice@example.com","password":"Str0ng!Pass","password2":"Str0ng!Pass"}`))
	r.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	body := decodeJSON(t, rr)
	bag, _ := body["errors"].(map[string]any)
	assert.Contains(t, bag, "username")
	assert.NotContains(t, bag, "email")
}

func TestGate_RejectedHTMLRerendersWithFeedback(t *testing.T) {
	h := gated(t, unreachable(t))
	values := registerValues()
	values.Set("password2", "Str0ng!Pasz")

	rr := postForm(h, values)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")

	body := rr.Body.String()
	assert.Contains(t, body, "was-validated")
	assert.Contains(t, body, "Passwords do not match.")
	assert.Contains(t, body, `value="alice@example.com"`, "typed values come back sanitized")
	assert.NotContains(t, body, "Str0ng!Pas", "passwords are never echoed")
	assert.Contains(t, body, "is-invalid")
}

func TestGate_WithoutViewFallsBackToJSON(t *testing.T) {
	h := gohttp.Gate(registerGate(), unreachable(t))
	rr := postForm(h, url.Values{"username": {"ab"}})

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
}

func TestGate_MalformedJSON(t *testing.T) {
	h := gated(t, unreachable(t))
	r := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(`{nope`))
	r.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, r)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
