// Package dom is a small HTML document model over golang.org/x/net/html,
// enough to bind the submission gate to real form markup: find forms and
// inputs, read and write values and classes, and insert feedback elements.
package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/km-arc/go-nutrition/framework/gate"
)

// ── Document ─────────────────────────────────────────────────────────────────

// Document is a parsed HTML page.
type Document struct {
	root *html.Node
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{root: root}, nil
}

// ParseString is Parse over a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Render writes the document back out as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the document, or "" if rendering fails.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Forms returns every <form> in document order.
func (d *Document) Forms() []*Form {
	var out []*Form
	walk(d.root, func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Form {
			out = append(out, &Form{el: &Element{node: n}})
		}
	})
	return out
}

// Form finds a form by its name or id attribute.
func (d *Document) Form(name string) (*Form, bool) {
	for _, f := range d.Forms() {
		if f.Name() == name {
			return f, true
		}
		if id, _ := f.el.Attr("id"); id == name {
			return f, true
		}
	}
	return nil, false
}

// ── Form ─────────────────────────────────────────────────────────────────────

// Form is a <form> element.
type Form struct {
	el *Element
}

// Element returns the underlying form element.
func (f *Form) Element() *Element { return f.el }

// Name returns the form's name attribute.
func (f *Form) Name() string {
	v, _ := f.el.Attr("name")
	return v
}

// Inputs returns the form's named <input> elements in document order.
// Submit buttons are skipped.
func (f *Form) Inputs() []*Element {
	var out []*Element
	walk(f.el.node, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Input {
			return
		}
		el := &Element{node: n}
		if el.Name() == "" {
			return
		}
		switch el.Type() {
		case "submit", "button", "reset", "image":
			return
		}
		out = append(out, el)
	})
	return out
}

// Input finds an input by name.
func (f *Form) Input(name string) (*Element, bool) {
	for _, in := range f.Inputs() {
		if in.Name() == name {
			return in, true
		}
	}
	return nil, false
}

// Values returns the current value of every input.
func (f *Form) Values() gate.Values {
	out := gate.Values{}
	for _, in := range f.Inputs() {
		out[in.Name()] = in.Value()
	}
	return out
}

// Spec derives the gate description of the form from its markup: kinds come
// from name/type/data-validate, constraints from the native validation
// attributes (required, minlength, maxlength, type=email, data-match). A
// confirmation input without data-match is paired with the password input.
func (f *Form) Spec() gate.Form {
	spec := gate.Form{Name: f.Name()}
	_, hasPassword := f.Input("password")
	for _, in := range f.Inputs() {
		hint, _ := in.Attr("data-validate")
		spec.Fields = append(spec.Fields, gate.Field{
			Name:        in.Name(),
			Kind:        gate.Classify(in.Name(), in.Type(), hint),
			Constraints: nativeConstraints(in, hasPassword),
		})
	}
	return spec
}

func nativeConstraints(in *Element, hasPassword bool) string {
	var rules []string
	if _, ok := in.Attr("required"); ok {
		rules = append(rules, "required")
	}
	if v, ok := in.Attr("minlength"); ok && v != "" {
		rules = append(rules, "min:"+v)
	}
	if v, ok := in.Attr("maxlength"); ok && v != "" {
		rules = append(rules, "max:"+v)
	}
	switch in.Type() {
	case "email":
		rules = append(rules, "email")
	case "url":
		rules = append(rules, "url")
	case "number":
		rules = append(rules, "numeric")
	}
	if v, ok := in.Attr("data-match"); ok && v != "" {
		rules = append(rules, "same:"+v)
	} else if hasPassword && gate.IsConfirmation(in.Name()) {
		rules = append(rules, "same:password")
	}
	return strings.Join(rules, "|")
}

// ── Element ──────────────────────────────────────────────────────────────────

// Element wraps an element node.
type Element struct {
	node *html.Node
}

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.node.Data }

// Attr returns an attribute value and whether it is present.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets or adds an attribute.
func (e *Element) SetAttr(key, val string) {
	for i, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			e.node.Attr[i].Val = val
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(key string) {
	attrs := e.node.Attr[:0]
	for _, a := range e.node.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	e.node.Attr = attrs
}

// Name is the name attribute.
func (e *Element) Name() string {
	v, _ := e.Attr("name")
	return v
}

// Type is the lower-cased type attribute, "text" when absent.
func (e *Element) Type() string {
	v, ok := e.Attr("type")
	if !ok || v == "" {
		return "text"
	}
	return strings.ToLower(v)
}

// Value is the value attribute.
func (e *Element) Value() string {
	v, _ := e.Attr("value")
	return v
}

// SetValue replaces the value attribute.
func (e *Element) SetValue(v string) { e.SetAttr("value", v) }

// Classes returns the class list.
func (e *Element) Classes() []string {
	v, _ := e.Attr("class")
	return strings.Fields(v)
}

// HasClass reports whether the class list contains c.
func (e *Element) HasClass(c string) bool {
	for _, have := range e.Classes() {
		if have == c {
			return true
		}
	}
	return false
}

// AddClass appends c unless present.
func (e *Element) AddClass(c string) {
	if e.HasClass(c) {
		return
	}
	e.SetAttr("class", strings.Join(append(e.Classes(), c), " "))
}

// RemoveClass drops c from the class list.
func (e *Element) RemoveClass(c string) {
	if !e.HasClass(c) {
		return
	}
	var keep []string
	for _, have := range e.Classes() {
		if have != c {
			keep = append(keep, have)
		}
	}
	if len(keep) == 0 {
		e.RemoveAttr("class")
		return
	}
	e.SetAttr("class", strings.Join(keep, " "))
}

// Text returns the concatenated text content.
func (e *Element) Text() string {
	var b strings.Builder
	walk(e.node, func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
	})
	return b.String()
}

// SetText replaces all children with a single text node.
func (e *Element) SetText(s string) {
	for c := e.node.FirstChild; c != nil; {
		next := c.NextSibling
		e.node.RemoveChild(c)
		c = next
	}
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: s})
}

// NextElementSibling skips text and comment nodes, like the DOM property.
func (e *Element) NextElementSibling() *Element {
	for n := e.node.NextSibling; n != nil; n = n.NextSibling {
		if n.Type == html.ElementNode {
			return &Element{node: n}
		}
	}
	return nil
}

// insertAfter places a new element immediately after e.
func (e *Element) insertAfter(tag atom.Atom) *Element {
	n := &html.Node{Type: html.ElementNode, DataAtom: tag, Data: tag.String()}
	e.node.Parent.InsertBefore(n, e.node.NextSibling)
	return &Element{node: n}
}

// walk visits n and its descendants depth-first.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, fn)
	}
}
