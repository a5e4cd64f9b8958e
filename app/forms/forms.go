// Package forms declares the application's forms as the submission gate
// sees them. The markup in resources/views carries the same names.
package forms

import (
	"github.com/km-arc/go-nutrition/framework/gate"
	"github.com/km-arc/go-nutrition/framework/http/validation"
)

// Register is the sign-up form.
func Register() gate.Form {
	return gate.Form{Name: "register", Fields: []gate.Field{
		{Name: "username", Kind: validation.KindUsername, Constraints: "required|min:3|max:64"},
		{Name: "email", Kind: validation.KindEmail, Constraints: "required|email|max:120"},
		{Name: "password", Kind: validation.KindPassword, Constraints: "required|min:8|max:128"},
		{Name: "password2", Kind: validation.KindPassword, Constraints: "required|same:password"},
	}}
}

// Login is the sign-in form. The password is only checked for presence so
// accounts created under an older policy can still sign in.
func Login() gate.Form {
	return gate.Form{Name: "login", Fields: []gate.Field{
		{Name: "username", Kind: validation.KindUsername, Constraints: "required"},
		{Name: "password", Constraints: "required"},
	}}
}
