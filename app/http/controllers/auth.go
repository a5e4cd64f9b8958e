package controllers

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"

	"github.com/km-arc/go-nutrition/framework/accounts"
	"github.com/km-arc/go-nutrition/framework/app"
	gohttp "github.com/km-arc/go-nutrition/framework/http"
	"github.com/km-arc/go-nutrition/framework/metrics"
)

const (
	msgTaken       = "Username or email is already registered."
	msgBadLogin    = "Invalid username or password."
	msgServerError = "Something went wrong. Please try again."
)

// AuthController registers and signs in users. Its submit handlers run behind
// the gate, so they only ever see sanitized, valid values.
type AuthController struct {
	app.Controller
	App      string
	Accounts *accounts.Store
	Views    *gohttp.ViewEngine
}

// ShowRegister handles GET /register.
func (c *AuthController) ShowRegister(w http.ResponseWriter, r *http.Request) {
	show(w, c.Views, http.StatusOK, "register", Page{App: c.App, Title: "Register"})
}

// Register handles POST /register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)
	v := gohttp.Submitted(r)
	log := hlog.FromRequest(r)

	user, err := c.Accounts.Register(r.Context(), v["username"], v["email"], v["password"])
	switch {
	case errors.Is(err, accounts.ErrExists):
		log.Info().Str("username", v["username"]).Msg("registration conflict")
		if req.IsJSON() {
			res.Conflict(msgTaken)
			return
		}
		show(w, c.Views, http.StatusConflict, "register", Page{App: c.App, Title: "Register", Error: msgTaken})
		return
	case err != nil:
		log.Error().Err(err).Msg("registration failed")
		res.ServerError(msgServerError)
		return
	}

	metrics.Registrations.Inc()
	log.Info().Str("user_id", user.ID).Msg("registered")
	if req.IsJSON() {
		res.Created(userJSON(user))
		return
	}
	res.RedirectTo("/login")
}

// ShowLogin handles GET /login.
func (c *AuthController) ShowLogin(w http.ResponseWriter, r *http.Request) {
	show(w, c.Views, http.StatusOK, "login", Page{App: c.App, Title: "Log in"})
}

// Login handles POST /login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	req, res := c.Request(r), c.Response(w)
	v := gohttp.Submitted(r)
	log := hlog.FromRequest(r)

	user, err := c.Accounts.Authenticate(r.Context(), v["username"], v["password"])
	switch {
	case errors.Is(err, accounts.ErrInvalidCredentials):
		metrics.RecordLogin(false)
		log.Info().Str("username", v["username"]).Msg("login rejected")
		if req.IsJSON() {
			res.Unauthorized(msgBadLogin)
			return
		}
		show(w, c.Views, http.StatusUnauthorized, "login", Page{App: c.App, Title: "Log in", Error: msgBadLogin})
		return
	case err != nil:
		log.Error().Err(err).Msg("login failed")
		res.ServerError(msgServerError)
		return
	}

	metrics.RecordLogin(true)
	if req.IsJSON() {
		res.Success(userJSON(user))
		return
	}
	res.RedirectTo("/dashboard")
}

func userJSON(u *accounts.User) map[string]any {
	out := map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"created_at": u.CreatedAt,
	}
	if !u.LastLoginAt.IsZero() {
		out["last_login_at"] = u.LastLoginAt
	}
	return out
}
