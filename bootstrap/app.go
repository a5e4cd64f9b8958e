// Package bootstrap assembles the nutrition application: framework core,
// app providers and routes.
package bootstrap

import (
	appproviders "github.com/km-arc/go-nutrition/app/providers"
	"github.com/km-arc/go-nutrition/framework/app"
	"github.com/km-arc/go-nutrition/resources"
	"github.com/km-arc/go-nutrition/routes"
)

// New builds and boots the application with its routes registered.
//
//	application := bootstrap.New(app.WithEnvFiles(".env"))
//	application.Serve(ctx)
func New(opts ...app.Option) *app.Application {
	opts = append([]app.Option{app.WithViews(resources.Views, resources.Layout)}, opts...)
	a := app.New(opts...)

	a.Register(&appproviders.AccountServiceProvider{})
	a.Register(&appproviders.ActivityServiceProvider{})
	a.Register(&appproviders.GateServiceProvider{})
	a.Boot()

	routes.Register(a)
	return a
}
