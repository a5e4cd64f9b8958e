package gate

import (
	"github.com/km-arc/go-nutrition/framework/http/validation"
)

// ── State ────────────────────────────────────────────────────────────────────

// Phase is the submit state of a form. It only moves forward.
type Phase uint8

const (
	// Clean means no submit has been attempted.
	Clean Phase = iota
	// Validated means a submit was attempted and the form carries was-validated.
	Validated
)

func (p Phase) String() string {
	if p == Validated {
		return "validated"
	}
	return "clean"
}

// Feedback is the validity indicator and message shown next to one input.
type Feedback struct {
	Valid   bool
	Message string
}

// State is the per-form gate state. Feedback entries appear on a field's
// first validation and are replaced, never removed.
type State struct {
	Phase    Phase
	Values   Values
	Feedback map[string]Feedback
}

// NewState returns a Clean state with no feedback.
func NewState() State {
	return State{Phase: Clean, Values: Values{}, Feedback: map[string]Feedback{}}
}

func (s State) clone() State {
	out := State{Phase: s.Phase, Values: s.Values.clone(), Feedback: make(map[string]Feedback, len(s.Feedback))}
	for k, f := range s.Feedback {
		out.Feedback[k] = f
	}
	return out
}

// Errors collects the messages of every invalid field.
func (s State) Errors() *validation.Errors {
	e := &validation.Errors{}
	for name, fb := range s.Feedback {
		if !fb.Valid {
			e.Add(name, fb.Message)
		}
	}
	return e
}

// ── Events & effects ─────────────────────────────────────────────────────────

// Event is an input or submit event delivered to Step.
type Event interface{ event() }

// InputEvent is a keystroke-level change of one field.
type InputEvent struct {
	Field string
	Value string
}

// SubmitEvent is a submit attempt carrying every field's current value.
type SubmitEvent struct {
	Values Values
}

func (InputEvent) event()  {}
func (SubmitEvent) event() {}

// Effect is an instruction for the adapter that owns the real form.
type Effect interface{ effect() }

// SetValue replaces the displayed value of a field.
type SetValue struct {
	Field string
	Value string
}

// RenderFeedback shows feedback next to a field.
type RenderFeedback struct {
	Field string
	Feedback
}

// MarkValidated applies the was-validated marker to the form.
type MarkValidated struct{}

// CancelSubmit prevents the form's default submit action.
type CancelSubmit struct{}

func (SetValue) effect()       {}
func (RenderFeedback) effect() {}
func (MarkValidated) effect()  {}
func (CancelSubmit) effect()   {}

// Cancelled reports whether effects contain a CancelSubmit.
func Cancelled(effects []Effect) bool {
	for _, e := range effects {
		if _, ok := e.(CancelSubmit); ok {
			return true
		}
	}
	return false
}

// ── Gate ─────────────────────────────────────────────────────────────────────

// Gate is the submission gate for one form. It holds no mutable state and
// is safe for concurrent use; all state travels through Step.
type Gate struct {
	form        Form
	rules       *validation.Rules
	validator   *validation.ConstraintValidator
	constraints map[string]validation.Constraints
	mechanisms  Mechanism
}

// Option configures a Gate.
type Option func(*Gate)

// WithMechanisms selects the gates to run. The default is BothGates.
func WithMechanisms(m Mechanism) Option {
	return func(g *Gate) { g.mechanisms = m }
}

// New builds a gate for form using rules.
func New(form Form, rules *validation.Rules, opts ...Option) *Gate {
	g := &Gate{
		form:        form,
		rules:       rules,
		validator:   validation.NewConstraintValidator(rules.MismatchMessage()),
		constraints: make(map[string]validation.Constraints, len(form.Fields)),
		mechanisms:  BothGates,
	}
	for _, f := range form.Fields {
		if cs := validation.ParseConstraints(f.Constraints); len(cs) > 0 {
			g.constraints[f.Name] = cs
		}
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Form returns the form the gate guards.
func (g *Gate) Form() Form { return g.form }

// Rules returns the rule table the gate validates with.
func (g *Gate) Rules() *validation.Rules { return g.rules }

// Step applies one event to s and returns the next state plus the effects
// the adapter must perform, in order. s is not modified.
func (g *Gate) Step(s State, e Event) (State, []Effect) {
	next := s.clone()

	switch ev := e.(type) {
	case InputEvent:
		return next, g.input(&next, ev)
	case SubmitEvent:
		return next, g.submit(&next, ev)
	}
	return next, nil
}

func (g *Gate) input(s *State, ev InputEvent) []Effect {
	f, ok := g.form.Field(ev.Field)
	if !ok || f.Kind == "" || g.mechanisms&PatternGate == 0 {
		s.Values[ev.Field] = ev.Value
		return nil
	}

	clean, res := g.rules.Check(f.Kind, ev.Value)
	s.Values[f.Name] = clean

	var effects []Effect
	if clean != ev.Value {
		effects = append(effects, SetValue{Field: f.Name, Value: clean})
	}
	fb := g.feedback(res.Valid, res.Message())
	s.Feedback[f.Name] = fb
	return append(effects, RenderFeedback{Field: f.Name, Feedback: fb})
}

func (g *Gate) submit(s *State, ev SubmitEvent) []Effect {
	result := g.ValidateForm(ev.Values)

	var effects []Effect
	for _, fr := range result.Fields {
		s.Values[fr.Name] = fr.Value
		if fr.Value != ev.Values[fr.Name] {
			effects = append(effects, SetValue{Field: fr.Name, Value: fr.Value})
		}
		if !fr.Checked {
			continue
		}
		fb := g.feedback(fr.Valid, fr.Message())
		s.Feedback[fr.Name] = fb
		effects = append(effects, RenderFeedback{Field: fr.Name, Feedback: fb})
	}

	s.Phase = Validated
	effects = append(effects, MarkValidated{})
	if !result.Valid {
		effects = append(effects, CancelSubmit{})
	}
	return effects
}

func (g *Gate) feedback(valid bool, msg string) Feedback {
	if valid {
		return Feedback{Valid: true, Message: g.rules.ValidMessage()}
	}
	return Feedback{Valid: false, Message: msg}
}
