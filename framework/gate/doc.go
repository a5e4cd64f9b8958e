// Package gate decides whether a form submission may proceed.
//
// A Gate is built once per form and is a pure state machine:
//
//	g := gate.New(form, rules)
//	state := gate.NewState()
//
//	state, effects := g.Step(state, gate.InputEvent{Field: "username", Value: " ab "})
//	// effects: SetValue{"username", "ab"}, RenderFeedback{"username", invalid, "..."}
//
//	state, effects = g.Step(state, gate.SubmitEvent{Values: values})
//	if gate.Cancelled(effects) {
//	    // keep the user on the form
//	}
//
// Adapters (the DOM binding in package dom, the HTTP middleware in package
// http) translate real events into Step calls and carry out the effects.
//
// Two mechanisms gate a submit. The pattern gate runs the field rules from
// package validation and compares password with its confirmation. The
// constraint gate runs the constraints declared on each Field, the way a
// browser's checkValidity does. ValidateForm merges both into one
// FormResult; either one rejecting is enough to cancel.
package gate
