// Package controllers holds the HTTP handlers of the nutrition app.
package controllers

import (
	"net/http"

	"github.com/km-arc/go-nutrition/framework/activity"
	gohttp "github.com/km-arc/go-nutrition/framework/http"
)

// Page is the data every view is rendered with.
type Page struct {
	App      string
	Title    string
	Error    string
	Activity activity.View
}

// PageData returns a gohttp.RenderPage data callback for a static page.
func PageData(app, title string) func(*http.Request) any {
	return func(*http.Request) any { return Page{App: app, Title: title} }
}

// show renders name with page. A non-empty page.Error shows as a banner.
func show(w http.ResponseWriter, views *gohttp.ViewEngine, status int, name string, page Page) {
	views.View(w, status, name, page)
}
