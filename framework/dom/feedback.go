package dom

import (
	"golang.org/x/net/html/atom"
)

// Bootstrap validation classes.
const (
	ClassValid           = "is-valid"
	ClassInvalid         = "is-invalid"
	ClassValidFeedback   = "valid-feedback"
	ClassInvalidFeedback = "invalid-feedback"
	ClassWasValidated    = "was-validated"
)

// RenderFeedback marks input valid or invalid and writes message into the
// feedback element right after it. The feedback element is created on first
// use; its class reflects the validity at creation and is left alone after.
func RenderFeedback(input *Element, valid bool, message string) *Element {
	if valid {
		input.RemoveClass(ClassInvalid)
		input.AddClass(ClassValid)
	} else {
		input.RemoveClass(ClassValid)
		input.AddClass(ClassInvalid)
	}

	fb := input.NextElementSibling()
	if fb == nil || !(fb.HasClass(ClassValidFeedback) || fb.HasClass(ClassInvalidFeedback)) {
		fb = input.insertAfter(atom.Div)
		if valid {
			fb.AddClass(ClassValidFeedback)
		} else {
			fb.AddClass(ClassInvalidFeedback)
		}
	}
	fb.SetText(message)
	return fb
}

// MarkValidated adds the was-validated marker to the form.
func (f *Form) MarkValidated() { f.el.AddClass(ClassWasValidated) }

// Validated reports whether the form carries the was-validated marker.
func (f *Form) Validated() bool { return f.el.HasClass(ClassWasValidated) }
