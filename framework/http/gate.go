package http

import (
	"context"
	"net/http"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/km-arc/go-nutrition/framework/dom"
	"github.com/km-arc/go-nutrition/framework/gate"
	"github.com/km-arc/go-nutrition/framework/http/validation"
	"github.com/km-arc/go-nutrition/framework/metrics"
)

type submittedKey struct{}

// Submitted returns the sanitized values of a submit that passed the gate.
func Submitted(r *http.Request) gate.Values {
	v, _ := r.Context().Value(submittedKey{}).(gate.Values)
	return v
}

// WithSubmitted attaches values to ctx the way Gate does.
func WithSubmitted(ctx context.Context, values gate.Values) context.Context {
	return context.WithValue(ctx, submittedKey{}, values)
}

// ── Gate middleware ──────────────────────────────────────────────────────────

// GateOption configures the Gate middleware.
type GateOption func(*gateHandler)

// RenderPage re-renders page with the gate's feedback when an HTML submit
// is rejected. data builds the template data for the request.
func RenderPage(views *ViewEngine, page string, data func(*http.Request) any) GateOption {
	return func(h *gateHandler) {
		h.views, h.page, h.data = views, page, data
	}
}

type gateHandler struct {
	gate  *gate.Gate
	next  http.Handler
	views *ViewEngine
	page  string
	data  func(*http.Request) any
}

// Gate runs every submit through g before next. A rejected submit never
// reaches next: JSON clients get 422 with the error bag, HTML clients get
// the page back at 422 with feedback rendered and the values they typed
// (passwords excepted). An accepted submit reaches next with the sanitized
// values available from Submitted.
//
//	r.Post("/register", gohttp.Gate(registerGate, auth.Register,
//	    gohttp.RenderPage(views, "register", registerData)))
func Gate(g *gate.Gate, next http.Handler, opts ...GateOption) http.Handler {
	h := &gateHandler{gate: g, next: next}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *gateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	req := NewRequest(r)
	res := NewResponse(w)
	form := h.gate.Form()
	log := hlog.FromRequest(r).With().Str("form", form.Name).Logger()

	values, err := req.FormValues(form)
	if err != nil {
		log.Debug().Err(err).Msg("unreadable submit")
		res.Error(http.StatusBadRequest, "Malformed form submission.")
		return
	}

	state, effects := h.gate.Step(gate.NewState(), gate.SubmitEvent{Values: values})
	if !gate.Cancelled(effects) {
		metrics.RecordSubmission(form.Name, true, nil)
		log.Debug().Msg("submit accepted")
		h.next.ServeHTTP(w, r.WithContext(WithSubmitted(r.Context(), state.Values)))
		return
	}

	errs := state.Errors()
	invalid := fieldNames(errs)
	metrics.RecordSubmission(form.Name, false, invalid)
	log.Info().Strs("fields", invalid).Msg("submit rejected")

	if req.IsJSON() || h.views == nil {
		res.ValidationError(errs)
		return
	}
	h.rerender(w, r, log, state, effects, errs)
}

// rerender renders the page, restores the typed values and applies the
// gate's effects to the form markup.
func (h *gateHandler) rerender(w http.ResponseWriter, r *http.Request, log zerolog.Logger,
	state gate.State, effects []gate.Effect, errs *validation.Errors) {

	var data any
	if h.data != nil {
		data = h.data(r)
	}
	page, err := h.views.Render(h.page, data)
	if err == nil {
		page, err = applyToPage(page, h.gate.Form(), state, effects)
	}
	if err != nil {
		log.Error().Err(err).Str("page", h.page).Msg("failed to render rejected submit")
		NewResponse(w).ValidationError(errs)
		return
	}
	NewResponse(w).HTML(http.StatusUnprocessableEntity, page)
}

func applyToPage(page string, spec gate.Form, state gate.State, effects []gate.Effect) (string, error) {
	doc, err := dom.ParseString(page)
	if err != nil {
		return "", err
	}
	form, ok := doc.Form(spec.Name)
	if !ok {
		return page, nil
	}
	for _, in := range form.Inputs() {
		if v, ok := state.Values[in.Name()]; ok {
			in.SetValue(v)
		}
	}
	dom.Apply(form, effects)
	for _, in := range form.Inputs() {
		if in.Type() == "password" {
			in.SetValue("")
		}
	}
	return doc.String(), nil
}

func fieldNames(errs *validation.Errors) []string {
	names := make([]string, 0, len(errs.Bag))
	for name := range errs.Bag {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
