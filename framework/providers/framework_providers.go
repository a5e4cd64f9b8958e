package providers

import (
	"io"
	"io/fs"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-nutrition/framework/config"
	"github.com/km-arc/go-nutrition/framework/container"
	gohttp "github.com/km-arc/go-nutrition/framework/http"
	"github.com/km-arc/go-nutrition/framework/http/validation"
	"github.com/km-arc/go-nutrition/framework/logging"
	"github.com/km-arc/go-nutrition/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env and
// the validation rules from the optional rules file.
//
// Bound abstracts:
//   - "config"  → *config.Config
//   - "rules"   → *validation.Rules  (alias "validation")
//
// Laravel equivalent:
//
//	// Illuminate\Foundation\Bootstrap\LoadConfiguration
//	$app->singleton('config', fn() => new Repository($items));
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string

	// Config, when set, is used instead of reading the environment.
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(app *container.Container) {
	if p.Config != nil {
		app.Instance("config", p.Config)
	} else {
		envFiles := p.EnvFiles
		app.Singleton("config", func(c *container.Container) any {
			return config.Load(envFiles...)
		})
	}

	app.Singleton("rules", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return config.MustLoadRules(cfg.RulesFile)
	})
	app.Alias("rules", "validation")
}

// Boot resolves the rules so a broken rules file fails at startup rather
// than on the first submit.
func (p *ConfigServiceProvider) Boot(app *container.Container) {
	_ = container.Resolve[*validation.Rules](app, "rules")
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider builds the root zerolog logger from config.Log.
//
// Bound abstracts:
//   - "log"  → zerolog.Logger
type LoggingServiceProvider struct {
	container.BaseProvider
	Output io.Writer // default os.Stderr
}

func (p *LoggingServiceProvider) Register(app *container.Container) {
	out := p.Output
	app.Singleton("log", func(c *container.Container) any {
		cfg := container.Resolve[*config.Config](c, "config")
		return logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: out})
	})
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound abstracts:
//   - "router"  → *routing.Router
//
// Laravel equivalent:
//
//	// Illuminate\Routing\RoutingServiceProvider
//	$app->singleton('router', fn($app) => new Router($app['events'], $app));
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(app *container.Container) {
	app.Singleton("router", func(c *container.Container) any {
		log := container.Resolve[zerolog.Logger](c, "log")
		return routing.New(logging.Component(log, "http"))
	})
}

// ── ViewServiceProvider ───────────────────────────────────────────────────────

// ViewServiceProvider registers the template engine over an embedded or
// on-disk template filesystem.
//
// Bound abstracts:
//   - "view"   → *gohttp.ViewEngine
//
// Laravel equivalent:
//
//	// Illuminate\View\ViewServiceProvider
//	$app->singleton('view', fn($app) => new Factory(...));
type ViewServiceProvider struct {
	container.BaseProvider
	FS     fs.FS
	Layout string // default: "layout.html"
}

func (p *ViewServiceProvider) Register(app *container.Container) {
	fsys := p.FS
	layout := p.Layout
	if layout == "" {
		layout = "layout.html"
	}

	app.Singleton("view", func(c *container.Container) any {
		views, err := gohttp.NewViewEngine(fsys, layout)
		if err != nil {
			panic("views: " + err.Error())
		}
		return views
	})
}
