package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/km-arc/go-nutrition/framework/gate"
)

const maxBody = 1 << 20 // 1 MB

// Request wraps *http.Request with Laravel-style helpers.
type Request struct {
	raw  *http.Request
	body []byte // cached JSON body
	read bool
}

// NewRequest wraps a standard *http.Request.
func NewRequest(r *http.Request) *Request {
	return &Request{raw: r}
}

// Raw returns the underlying *http.Request.
func (req *Request) Raw() *http.Request { return req.raw }

// ── Binding ──────────────────────────────────────────────────────────────────

// Bind decodes a JSON body into v.
func (req *Request) Bind(v any) error {
	body, err := req.jsonBody()
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return errors.New("empty request body")
	}
	return json.Unmarshal(body, v)
}

// jsonBody reads the body once; later calls return the cached bytes.
func (req *Request) jsonBody() ([]byte, error) {
	if req.read {
		return req.body, nil
	}
	req.read = true
	if req.raw.Body == nil {
		return nil, nil
	}
	defer req.raw.Body.Close()
	body, err := io.ReadAll(io.LimitReader(req.raw.Body, maxBody))
	if err != nil {
		return nil, err
	}
	req.body = body
	req.raw.Body = io.NopCloser(bytes.NewReader(body))
	return body, nil
}

// FormValues collects the submitted value of every field of form, from a
// JSON object or a urlencoded/multipart body. Missing fields are "". JSON
// numbers and booleans are stringified.
//
//	values, err := gohttp.NewRequest(r).FormValues(forms.Register())
func (req *Request) FormValues(form gate.Form) (gate.Values, error) {
	values := make(gate.Values, len(form.Fields))

	if req.sendsJSON() {
		body, err := req.jsonBody()
		if err != nil {
			return nil, err
		}
		raw := map[string]any{}
		if len(bytes.TrimSpace(body)) > 0 {
			if err := json.Unmarshal(body, &raw); err != nil {
				return nil, fmt.Errorf("invalid JSON body: %w", err)
			}
		}
		for _, f := range form.Fields {
			values[f.Name] = stringify(raw[f.Name])
		}
		return values, nil
	}

	if err := req.parseForm(); err != nil {
		return nil, err
	}
	for _, f := range form.Fields {
		values[f.Name] = req.raw.PostForm.Get(f.Name)
	}
	return values, nil
}

func (req *Request) parseForm() error {
	if strings.Contains(req.ContentType(), "multipart/form-data") {
		return req.raw.ParseMultipartForm(maxBody)
	}
	return req.raw.ParseForm()
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		b, _ := json.Marshal(x)
		return string(b)
	}
}

// ── Input helpers ────────────────────────────────────────────────────────────

// Input returns a single input value (query string OR post body).
func (req *Request) Input(key string, fallback ...string) string {
	_ = req.parseForm()
	v := req.raw.FormValue(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Query returns a query-string value.
func (req *Request) Query(key string, fallback ...string) string {
	v := req.raw.URL.Query().Get(key)
	if v == "" && len(fallback) > 0 {
		return fallback[0]
	}
	return v
}

// Has returns true if the key is present and non-empty.
func (req *Request) Has(key string) bool {
	return req.Input(key) != ""
}

// RouteParam returns a URL route parameter (chi).
func (req *Request) RouteParam(key string) string {
	return chi.URLParam(req.raw, key)
}

// Header returns a request header value.
func (req *Request) Header(key string) string {
	return req.raw.Header.Get(key)
}

// Method returns the HTTP method.
func (req *Request) Method() string { return req.raw.Method }

// Path returns the URL path.
func (req *Request) Path() string { return req.raw.URL.Path }

// ContentType returns the Content-Type header value.
func (req *Request) ContentType() string {
	return req.raw.Header.Get("Content-Type")
}

func (req *Request) sendsJSON() bool {
	return strings.Contains(req.ContentType(), "application/json")
}

// IsJSON returns true when the request expects a JSON response.
func (req *Request) IsJSON() bool {
	return strings.Contains(req.raw.Header.Get("Accept"), "application/json") || req.sendsJSON()
}
