package gate

import (
	"github.com/km-arc/go-nutrition/framework/http/validation"
)

// Mechanism selects which submission gates a Gate runs.
type Mechanism uint8

const (
	// PatternGate runs the field rules and the password match check.
	PatternGate Mechanism = 1 << iota
	// ConstraintGate runs the declared constraints, like a browser's
	// checkValidity with setCustomValidity on the confirmation.
	ConstraintGate

	BothGates = PatternGate | ConstraintGate
)

// FieldResult is the merged verdict for one field.
type FieldResult struct {
	Name     string
	Kind     validation.Kind
	Value    string
	Valid    bool
	Messages []string
	Mismatch bool
	// Checked is false for fields neither gate has a rule for.
	Checked bool
}

// Message joins Messages into one feedback line.
func (r FieldResult) Message() string {
	return validation.Result{Valid: r.Valid, Messages: r.Messages}.Message()
}

// FormResult is the outcome of ValidateForm, fields in form order.
type FormResult struct {
	Valid  bool
	Fields []FieldResult
}

// Field returns the result for name.
func (r FormResult) Field(name string) (FieldResult, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return FieldResult{}, false
}

// Values returns the sanitized values of every field.
func (r FormResult) Values() Values {
	out := make(Values, len(r.Fields))
	for _, f := range r.Fields {
		out[f.Name] = f.Value
	}
	return out
}

// Errors collects the messages of invalid fields.
func (r FormResult) Errors() *validation.Errors {
	e := &validation.Errors{}
	for _, f := range r.Fields {
		if f.Checked && !f.Valid {
			e.Add(f.Name, f.Messages...)
		}
	}
	return e
}

// ValidateForm sanitizes and validates every field of the form with each
// enabled mechanism. A field is invalid when any mechanism rejects it; a
// confirmation mismatch replaces every other message on that field.
func (g *Gate) ValidateForm(values Values) FormResult {
	clean := make(Values, len(g.form.Fields))
	for _, f := range g.form.Fields {
		raw := values[f.Name]
		if f.Kind != "" {
			raw = g.rules.Normalize(f.Kind, raw)
		}
		clean[f.Name] = raw
	}

	mismatchOn := ""
	if g.mechanisms&PatternGate != 0 {
		if pw, confirm, ok := g.form.confirmation(); ok && clean[pw] != clean[confirm] {
			mismatchOn = confirm
		}
	}

	result := FormResult{Valid: true}
	for _, f := range g.form.Fields {
		fr := FieldResult{Name: f.Name, Kind: f.Kind, Value: clean[f.Name], Valid: true}

		var pattern, constraint validation.Result
		pattern.Valid, constraint.Valid = true, true

		if g.mechanisms&PatternGate != 0 && f.Kind != "" {
			_, pattern = g.rules.Check(f.Kind, fr.Value)
			fr.Checked = true
		}
		if cs := g.constraints[f.Name]; g.mechanisms&ConstraintGate != 0 && len(cs) > 0 {
			out := g.validator.Check(f.Name, cs, clean)
			constraint = out.Result
			fr.Mismatch = out.Mismatch
			fr.Checked = true
		}
		if f.Name == mismatchOn {
			fr.Mismatch = true
			fr.Checked = true
		}

		switch {
		case fr.Mismatch:
			fr.Valid, fr.Messages = false, []string{g.rules.MismatchMessage()}
		case !pattern.Valid:
			fr.Valid, fr.Messages = false, pattern.Messages
		case !constraint.Valid:
			fr.Valid, fr.Messages = false, constraint.Messages
		}

		if !fr.Valid {
			result.Valid = false
		}
		result.Fields = append(result.Fields, fr)
	}
	return result
}
