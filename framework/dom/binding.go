package dom

import (
	"github.com/km-arc/go-nutrition/framework/gate"
	"github.com/km-arc/go-nutrition/framework/http/validation"
)

// Binding connects a gate to one form element. It is the event-loop side of
// the gate and must be driven from a single goroutine.
type Binding struct {
	form  *Form
	gate  *gate.Gate
	state gate.State
}

// Bind attaches g to form.
func Bind(form *Form, g *gate.Gate) *Binding {
	return &Binding{form: form, gate: g, state: gate.NewState()}
}

// BindForm derives the gate from the form's own markup.
func BindForm(form *Form, rules *validation.Rules, opts ...gate.Option) *Binding {
	return Bind(form, gate.New(form.Spec(), rules, opts...))
}

// State returns the current gate state.
func (b *Binding) State() gate.State { return b.state }

// Input simulates the user changing a field to value.
func (b *Binding) Input(name, value string) {
	if in, ok := b.form.Input(name); ok {
		in.SetValue(value)
	}
	var effects []gate.Effect
	b.state, effects = b.gate.Step(b.state, gate.InputEvent{Field: name, Value: value})
	Apply(b.form, effects)
}

// Submit dispatches a submit event and reports whether the default action
// was prevented.
func (b *Binding) Submit() (prevented bool) {
	var effects []gate.Effect
	b.state, effects = b.gate.Step(b.state, gate.SubmitEvent{Values: b.form.Values()})
	return Apply(b.form, effects)
}

// Apply carries out effects on form and reports whether one of them
// cancelled the submit. Effects naming unknown inputs are skipped.
func Apply(form *Form, effects []gate.Effect) (prevented bool) {
	for _, e := range effects {
		switch ef := e.(type) {
		case gate.SetValue:
			if in, ok := form.Input(ef.Field); ok {
				in.SetValue(ef.Value)
			}
		case gate.RenderFeedback:
			if in, ok := form.Input(ef.Field); ok {
				RenderFeedback(in, ef.Valid, ef.Message)
			}
		case gate.MarkValidated:
			form.MarkValidated()
		case gate.CancelSubmit:
			prevented = true
		}
	}
	return prevented
}
