package controllers

import (
	"net/http"

	"github.com/km-arc/go-nutrition/framework/activity"
	"github.com/km-arc/go-nutrition/framework/app"
	gohttp "github.com/km-arc/go-nutrition/framework/http"
)

const msgNoActivity = "Activity data is not available yet."

// ActivityController serves the activity widget.
type ActivityController struct {
	app.Controller
	App    string
	Widget *activity.Widget
	Views  *gohttp.ViewEngine
}

// Dashboard handles GET /dashboard. Every page load refetches the activity
// data; a failed fetch leaves the previous values on screen.
func (c *ActivityController) Dashboard(w http.ResponseWriter, r *http.Request) {
	c.Widget.Load(r.Context())
	show(w, c.Views, http.StatusOK, "dashboard", Page{App: c.App, Title: "Dashboard", Activity: c.Widget.View()})
}

// Today handles GET /api/activity/today.
func (c *ActivityController) Today(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	today, ok := c.Widget.Today()
	if !ok {
		res.Error(http.StatusServiceUnavailable, msgNoActivity)
		return
	}
	res.Success(today)
}

// Weekly handles GET /api/activity/weekly.
func (c *ActivityController) Weekly(w http.ResponseWriter, r *http.Request) {
	res := c.Response(w)
	weekly, ok := c.Widget.Weekly()
	if !ok {
		res.Error(http.StatusServiceUnavailable, msgNoActivity)
		return
	}
	res.Success(map[string]any{"points": weekly.Points()})
}

// View handles GET /api/activity/widget with the formatted values the
// dashboard shows.
func (c *ActivityController) View(w http.ResponseWriter, r *http.Request) {
	c.Response(w).Success(c.Widget.View())
}
