// Package validation sanitizes and validates form input.
//
// # Sanitizing
//
// Sanitize removes markup, drops everything outside printable ASCII and trims
// the result. It is idempotent:
//
//	validation.Sanitize("  <b>hi</b>\x00 ") // "hi"
//
// # Field rules
//
// Rules is the immutable rule table for the field kinds the gate knows about.
// Build it once at startup and share it:
//
//	rules := validation.MustRules(validation.DefaultConfig())
//
//	rules.Username("ab")          // Result{Valid: false, Messages: [...]}
//	rules.Email("A@B.COM")        // validated as "a@b.com"
//	rules.Password("Str0ng!Pass") // Result{Valid: true}
//
//	clean, res := rules.Check(validation.KindEmail, raw)
//
// Username, email, text and search stop at the first failing check and report
// one message. Password accumulates every violation in a fixed order:
// length-min, length-max, uppercase, lowercase, digit, special character,
// common pattern.
//
// # Constraints
//
// Constraints mirror the browser's native constraint validation and are
// written in pipe syntax:
//
//	cv := validation.NewConstraintValidator("Passwords do not match.")
//	res := cv.Check("password2", validation.ParseConstraints("required|same:password"), data)
//
// Supported constraints:
//   - required        : value must be non-empty
//   - min:n / max:n   : length bounds in characters
//   - between:a,b     : length between a and b
//   - email / url     : format checks
//   - numeric         : parseable number
//   - in:a,b,c        : one of the listed values
//   - same:other      : must equal data[other]
//   - different:other : must differ from data[other]
//
// Empty values that are not required skip the remaining constraints, the same
// way a browser ignores minlength on an empty input.
//
// # Error Bag
//
// Errors serialises to the usual error envelope:
//
//	{
//	  "errors": {
//	    "username": ["Username must be 3-64 characters: letters, numbers, underscores or hyphens."]
//	  }
//	}
package validation
