package gate

import (
	"github.com/km-arc/go-nutrition/framework/http/validation"
)

// Field describes one input of a form.
//
// Kind selects the pattern rule; an empty Kind leaves the field to the
// constraint gate alone. Constraints uses pipe syntax ("required|min:3").
type Field struct {
	Name        string
	Kind        validation.Kind
	Constraints string
}

// Form is the ordered field list of one HTML form.
type Form struct {
	Name   string
	Fields []Field
}

// Field looks a field up by name.
func (f Form) Field(name string) (Field, bool) {
	for _, fl := range f.Fields {
		if fl.Name == name {
			return fl, true
		}
	}
	return Field{}, false
}

// confirmation returns the password field and its confirmation when the form
// has both.
func (f Form) confirmation() (password, confirm string, ok bool) {
	if _, has := f.Field("password"); !has {
		return "", "", false
	}
	for _, fl := range f.Fields {
		if IsConfirmation(fl.Name) {
			return "password", fl.Name, true
		}
	}
	return "", "", false
}

// Values maps field names to submitted values.
type Values map[string]string

func (v Values) clone() Values {
	out := make(Values, len(v))
	for k, s := range v {
		out[k] = s
	}
	return out
}

// IsConfirmation reports whether name is a confirm-password input.
func IsConfirmation(name string) bool {
	return name == "password2" || name == "confirm_password"
}

// Classify picks the pattern kind for an input from its name and type
// attributes. hint is the data-validate attribute used by text and search inputs.
func Classify(name, inputType, hint string) validation.Kind {
	switch {
	case name == "username":
		return validation.KindUsername
	case name == "email":
		return validation.KindEmail
	case inputType == "password", name == "password", IsConfirmation(name):
		return validation.KindPassword
	}
	switch validation.Kind(hint) {
	case validation.KindText, validation.KindSearch:
		return validation.Kind(hint)
	}
	return ""
}
