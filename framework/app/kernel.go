package app

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/km-arc/go-nutrition/framework/config"
	"github.com/km-arc/go-nutrition/framework/container"
	gohttp "github.com/km-arc/go-nutrition/framework/http"
	"github.com/km-arc/go-nutrition/framework/http/validation"
	"github.com/km-arc/go-nutrition/framework/providers"
	"github.com/km-arc/go-nutrition/framework/routing"
)

// Version is reported by the CLI and the health endpoint.
const Version = "0.1.0"

// ShutdownTimeout bounds how long Serve waits for in-flight requests.
const ShutdownTimeout = 10 * time.Second

// Application is the top-level application container.
// It embeds the IoC Container and ProviderRegistry so user code can
// call app.Bind(), app.Singleton(), app.Register() directly,
// exactly like $app in Laravel's bootstrap/app.php.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry

	mu          sync.Mutex
	terminating []func() error
}

// Option configures New.
type Option func(*options)

type options struct {
	envFiles  []string
	cfg       *config.Config
	logOutput io.Writer
	views     fs.FS
	layout    string
}

// WithEnvFiles reads these files instead of .env.
func WithEnvFiles(files ...string) Option {
	return func(o *options) { o.envFiles = files }
}

// WithConfig skips the environment entirely.
func WithConfig(cfg *config.Config) Option {
	return func(o *options) { o.cfg = cfg }
}

// WithLogOutput redirects the root logger.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// WithViews registers the template filesystem with its layout file.
func WithViews(fsys fs.FS, layout string) Option {
	return func(o *options) { o.views, o.layout = fsys, layout }
}

// New creates the application and registers the framework core providers.
func New(opts ...Option) *Application {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	c := container.New()
	registry := container.NewProviderRegistry(c)

	app := &Application{
		Container: c,
		Providers: registry,
	}
	c.Instance("app", app)

	// Register framework core providers (same order as Laravel)
	registry.Register(&providers.ConfigServiceProvider{EnvFiles: o.envFiles, Config: o.cfg})
	registry.Register(&providers.LoggingServiceProvider{Output: o.logOutput})
	registry.Register(&providers.RoutingServiceProvider{})
	if o.views != nil {
		registry.Register(&providers.ViewServiceProvider{FS: o.views, Layout: o.layout})
	}

	return app
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) {
	a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all providers.
func (a *Application) Boot() {
	a.Providers.Boot()
}

// Terminating registers fn to run after the server has shut down, in
// reverse registration order.
func (a *Application) Terminating(fn func() error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.terminating = append(a.terminating, fn)
}

// Terminate runs the terminating callbacks and joins their errors.
func (a *Application) Terminate() error {
	a.mu.Lock()
	fns := a.terminating
	a.terminating = nil
	a.mu.Unlock()

	var errs []error
	for i := len(fns) - 1; i >= 0; i-- {
		if err := fns[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ── Accessors ─────────────────────────────────────────────────────────────────

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.Resolve[*config.Config](a.Container, "config")
}

// Log resolves the root logger.
func (a *Application) Log() zerolog.Logger {
	return container.Resolve[zerolog.Logger](a.Container, "log")
}

// Rules resolves the compiled validation rules.
func (a *Application) Rules() *validation.Rules {
	return container.Resolve[*validation.Rules](a.Container, "rules")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.Resolve[*routing.Router](a.Container, "router")
}

// Views resolves *gohttp.ViewEngine from the container.
func (a *Application) Views() *gohttp.ViewEngine {
	return container.Resolve[*gohttp.ViewEngine](a.Container, "view")
}

// ── Serve ─────────────────────────────────────────────────────────────────────

// Serve boots the application (if needed) and serves HTTP on App.Port until
// ctx is cancelled.
func (a *Application) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", ":"+a.Config().App.Port)
	if err != nil {
		return err
	}
	return a.ServeListener(ctx, ln)
}

// ServeListener is Serve on an existing listener. On cancellation it stops
// accepting, waits up to ShutdownTimeout for in-flight requests and then
// runs the terminating callbacks.
func (a *Application) ServeListener(ctx context.Context, ln net.Listener) error {
	if !a.Providers.Booted() {
		a.Boot()
	}
	cfg := a.Config()
	log := a.Log()

	srv := &http.Server{
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	log.Info().
		Str("app", cfg.App.Name).
		Str("env", cfg.App.Env).
		Str("addr", ln.Addr().String()).
		Msg("listening")

	var serveErr error
	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		serveErr = srv.Shutdown(shutdownCtx)
	}

	return errors.Join(serveErr, a.Terminate())
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Config().IsProduction() }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }

// Controller is an embeddable base for HTTP controllers.
type Controller struct{}

func (c *Controller) Request(r *http.Request) *gohttp.Request {
	return gohttp.NewRequest(r)
}
func (c *Controller) Response(w http.ResponseWriter) *gohttp.Response {
	return gohttp.NewResponse(w)
}
