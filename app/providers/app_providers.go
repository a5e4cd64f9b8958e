// Package providers registers the nutrition app's services: the account
// store, the activity widget and the submission gates.
package providers

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-nutrition/app/forms"
	"github.com/km-arc/go-nutrition/framework/accounts"
	"github.com/km-arc/go-nutrition/framework/activity"
	"github.com/km-arc/go-nutrition/framework/app"
	"github.com/km-arc/go-nutrition/framework/config"
	"github.com/km-arc/go-nutrition/framework/container"
	"github.com/km-arc/go-nutrition/framework/gate"
	"github.com/km-arc/go-nutrition/framework/http/validation"
	"github.com/km-arc/go-nutrition/framework/logging"
)

// ── AccountServiceProvider ────────────────────────────────────────────────────

// AccountServiceProvider opens the sqlite account store the first time it
// is resolved, and closes it when the application terminates.
//
// Bound abstracts:
//   - "accounts"  → *accounts.Store
type AccountServiceProvider struct {
	container.BaseProvider
}

func (p *AccountServiceProvider) Register(c *container.Container) {
	c.Singleton("accounts", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		var opts []accounts.Option
		if cfg.Auth.BcryptCost > 0 {
			opts = append(opts, accounts.WithCost(cfg.Auth.BcryptCost))
		}
		store, err := accounts.Open(context.Background(), cfg.DB.Path, opts...)
		if err != nil {
			panic(fmt.Sprintf("accounts: %v", err))
		}
		if a, err := container.TryResolve[*app.Application](c, "app"); err == nil {
			a.Terminating(store.Close)
		}
		return store
	})
}

func (p *AccountServiceProvider) IsDeferred() bool   { return true }
func (p *AccountServiceProvider) Provides() []string { return []string{"accounts"} }

// ── ActivityServiceProvider ───────────────────────────────────────────────────

// ActivityServiceProvider builds the activity widget. Without ACTIVITY_URL
// the widget shows placeholders only.
//
// Bound abstracts:
//   - "activity"  → *activity.Widget
type ActivityServiceProvider struct {
	container.BaseProvider
}

func (p *ActivityServiceProvider) Register(c *container.Container) {
	c.Singleton("activity", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		log := logging.Component(container.Resolve[zerolog.Logger](c, "log"), "activity")

		var src activity.Source
		if cfg.Activity.URL != "" {
			src = activity.NewClient(cfg.Activity.URL, cfg.Activity.Timeout)
		}
		return activity.NewWidget(src, log)
	})
}

// RunActivity loads the widget once and then keeps its placeholder values
// moving until ctx is done.
func RunActivity(ctx context.Context, c *container.Container) {
	cfg := container.Resolve[*config.Config](c, "config")
	widget := container.Resolve[*activity.Widget](c, "activity")
	widget.Load(ctx)
	widget.Refresh(ctx, cfg.Activity.Refresh)
}

// ── GateServiceProvider ───────────────────────────────────────────────────────

// GateServiceProvider builds one submission gate per form.
//
// Bound abstracts:
//   - "gate.register"  → *gate.Gate
//   - "gate.login"     → *gate.Gate
type GateServiceProvider struct {
	container.BaseProvider
}

func (p *GateServiceProvider) Register(c *container.Container) {
	for name, form := range map[string]func() gate.Form{
		"gate.register": forms.Register,
		"gate.login":    forms.Login,
	} {
		c.Singleton(name, func(c *container.Container) any {
			return gate.New(form(), container.Resolve[*validation.Rules](c, "rules"))
		})
	}
}
