// Package routes maps URLs to the app's controllers.
package routes

import (
	"net/http"

	"github.com/km-arc/go-nutrition/app/http/controllers"
	"github.com/km-arc/go-nutrition/framework/accounts"
	"github.com/km-arc/go-nutrition/framework/activity"
	"github.com/km-arc/go-nutrition/framework/app"
	"github.com/km-arc/go-nutrition/framework/container"
	"github.com/km-arc/go-nutrition/framework/gate"
	gohttp "github.com/km-arc/go-nutrition/framework/http"
	"github.com/km-arc/go-nutrition/framework/metrics"
	"github.com/km-arc/go-nutrition/framework/routing"
)

// Register wires every route onto the application's router.
func Register(a *app.Application) {
	r := a.Router()
	name := a.Config().App.Name
	views := a.Views()
	store := container.Resolve[*accounts.Store](a.Container, "accounts")
	widget := container.Resolve[*activity.Widget](a.Container, "activity")

	auth := &controllers.AuthController{App: name, Accounts: store, Views: views}
	act := &controllers.ActivityController{App: name, Widget: widget, Views: views}

	// ── Pages ────────────────────────────────────────────────────────────────

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		gohttp.NewResponse(w).RedirectTo("/dashboard")
	})

	r.Form("/register", auth.ShowRegister, gohttp.Gate(
		container.Resolve[*gate.Gate](a.Container, "gate.register"),
		http.HandlerFunc(auth.Register),
		gohttp.RenderPage(views, "register", controllers.PageData(name, "Register")),
	))
	r.Form("/login", auth.ShowLogin, gohttp.Gate(
		container.Resolve[*gate.Gate](a.Container, "gate.login"),
		http.HandlerFunc(auth.Login),
		gohttp.RenderPage(views, "login", controllers.PageData(name, "Log in")),
	))

	r.Get("/dashboard", act.Dashboard)

	// ── API ──────────────────────────────────────────────────────────────────

	r.Prefix("/api/activity", func(api *routing.Router) {
		api.Get("/today", act.Today)
		api.Get("/weekly", act.Weekly)
		api.Get("/widget", act.View)
	})

	// ── Operations ───────────────────────────────────────────────────────────

	r.Get("/health", controllers.Health(store))
	r.Handle("/metrics", metrics.Handler())
}
