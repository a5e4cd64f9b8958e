package validation

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ── Constraints ──────────────────────────────────────────────────────────────

// Constraint is one parsed rule: min:3 → {Name: "min", Param: "3"}.
type Constraint struct {
	Name  string
	Param string
}

// Constraints is a pipe-separated rule list such as "required|min:8|same:password".
type Constraints []Constraint

// ParseConstraints splits a rule string. Blank segments are dropped.
func ParseConstraints(s string) Constraints {
	var out Constraints
	for _, rule := range strings.Split(s, "|") {
		rule = strings.TrimSpace(rule)
		if rule == "" {
			continue
		}
		name, param, _ := strings.Cut(rule, ":")
		out = append(out, Constraint{Name: name, Param: param})
	}
	return out
}

// Has reports whether the list contains a rule named name.
func (cs Constraints) Has(name string) bool {
	for _, c := range cs {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Param returns the parameter of the first rule named name.
func (cs Constraints) Param(name string) (string, bool) {
	for _, c := range cs {
		if c.Name == name {
			return c.Param, true
		}
	}
	return "", false
}

// isCount guards the validator, which panics on malformed tag parameters.
func isCount(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0
}

// String joins the list back into pipe syntax.
func (cs Constraints) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		if c.Param == "" {
			parts[i] = c.Name
		} else {
			parts[i] = c.Name + ":" + c.Param
		}
	}
	return strings.Join(parts, "|")
}

// ── ConstraintValidator ──────────────────────────────────────────────────────

// ConstraintValidator evaluates Constraints with go-playground/validator.
// It stops at the first failing rule of a field.
type ConstraintValidator struct {
	v        *validator.Validate
	mismatch string
}

var (
	sharedOnce sync.Once
	shared     *validator.Validate
)

// engine returns the process-wide validator; it caches struct metadata and is
// safe for concurrent use.
func engine() *validator.Validate {
	sharedOnce.Do(func() {
		shared = validator.New(validator.WithRequiredStructEnabled())
	})
	return shared
}

// NewConstraintValidator creates a validator whose same:/different: failures
// on password confirmations report mismatch.
func NewConstraintValidator(mismatch string) *ConstraintValidator {
	return &ConstraintValidator{v: engine(), mismatch: mismatch}
}

// Check validates data[field] against cs. A failing same: rule sets
// Mismatch on the returned Outcome.
func (cv *ConstraintValidator) Check(field string, cs Constraints, data map[string]string) Outcome {
	value := data[field]

	if value == "" && !cs.Has("required") {
		return Outcome{Result: passed()}
	}

	for _, c := range cs {
		if msg, mismatch := cv.apply(field, value, c, data); msg != "" {
			return Outcome{Result: failed(msg), Mismatch: mismatch}
		}
	}
	return Outcome{Result: passed()}
}

// Outcome is a constraint Result plus whether it failed on a confirmation.
type Outcome struct {
	Result
	Mismatch bool
}

// apply returns a failure message, or "" when the rule passes.
func (cv *ConstraintValidator) apply(field, value string, c Constraint, data map[string]string) (string, bool) {
	switch c.Name {
	case "required":
		if cv.v.Var(strings.TrimSpace(value), "required") != nil {
			return fmt.Sprintf("The %s field is required.", field), false
		}

	case "min":
		if !isCount(c.Param) {
			break
		}
		if cv.v.Var(value, "min="+c.Param) != nil {
			return fmt.Sprintf("The %s must be at least %s characters.", field, c.Param), false
		}

	case "max":
		if !isCount(c.Param) {
			break
		}
		if cv.v.Var(value, "max="+c.Param) != nil {
			return fmt.Sprintf("The %s may not be greater than %s characters.", field, c.Param), false
		}

	case "between":
		lo, hi, ok := strings.Cut(c.Param, ",")
		if !ok {
			break
		}
		lo, hi = strings.TrimSpace(lo), strings.TrimSpace(hi)
		if !isCount(lo) || !isCount(hi) {
			break
		}
		if cv.v.Var(value, "min="+lo+",max="+hi) != nil {
			return fmt.Sprintf("The %s must be between %s and %s characters.", field, lo, hi), false
		}

	case "email":
		if cv.v.Var(value, "email") != nil {
			return fmt.Sprintf("The %s must be a valid email address.", field), false
		}

	case "url":
		if cv.v.Var(value, "url") != nil {
			return fmt.Sprintf("The %s must be a valid URL.", field), false
		}

	case "numeric":
		if cv.v.Var(value, "numeric") != nil {
			return fmt.Sprintf("The %s must be a number.", field), false
		}

	case "in":
		opts := strings.Fields(strings.ReplaceAll(c.Param, ",", " "))
		if len(opts) == 0 {
			break
		}
		if cv.v.Var(value, "oneof="+strings.Join(opts, " ")) != nil {
			return fmt.Sprintf("The selected %s is invalid.", field), false
		}

	case "same":
		if cv.v.VarWithValue(value, data[c.Param], "eqcsfield") != nil {
			return cv.mismatch, true
		}

	case "different":
		if cv.v.VarWithValue(value, data[c.Param], "necsfield") != nil {
			return fmt.Sprintf("The %s and %s must be different.", field, c.Param), false
		}
	}

	return "", false
}
