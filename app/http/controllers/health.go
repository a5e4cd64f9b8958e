package controllers

import (
	"net/http"

	"github.com/km-arc/go-nutrition/framework/accounts"
	"github.com/km-arc/go-nutrition/framework/app"
	gohttp "github.com/km-arc/go-nutrition/framework/http"
)

// Health handles GET /health. The account store is pinged through Count.
func Health(store *accounts.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res := gohttp.NewResponse(w)
		if _, err := store.Count(r.Context()); err != nil {
			res.Error(http.StatusServiceUnavailable, "database unavailable")
			return
		}
		res.Success(map[string]any{"status": "ok", "version": app.Version})
	}
}
