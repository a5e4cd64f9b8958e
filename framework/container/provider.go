package container

import "sync"

// ── ServiceProvider ───────────────────────────────────────────────────────────

// ServiceProvider registers a group of related services.
//
// Register only binds; Boot runs after every eager provider is registered
// and may resolve anything.
//
//	type ActivityProvider struct{ container.BaseProvider }
//
//	func (p *ActivityProvider) Register(app *container.Container) {
//	    app.Singleton("activity", func(c *container.Container) any {
//	        return activity.NewWidget(...)
//	    })
//	}
type ServiceProvider interface {
	Register(app *Container)
	Boot(app *Container)

	// Provides lists the abstracts a deferred provider binds.
	Provides() []string

	// IsDeferred delays Register until one of Provides is first resolved.
	IsDeferred() bool
}

// BaseProvider supplies no-op Boot, Provides and IsDeferred.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container)  {}
func (p *BaseProvider) Provides() []string { return nil }
func (p *BaseProvider) IsDeferred() bool   { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers and boots providers in order.
type ProviderRegistry struct {
	app        *Container
	mu         sync.Mutex
	eager      []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{app: app, registered: make(map[ServiceProvider]bool)}
}

// Register adds a provider. Eager providers register immediately and boot
// immediately when the registry is already booted. Registering the same
// provider twice is a no-op.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	r.mu.Lock()
	if r.registered[provider] {
		r.mu.Unlock()
		return
	}
	r.registered[provider] = true
	booted := r.booted
	if !provider.IsDeferred() {
		r.eager = append(r.eager, provider)
	}
	r.mu.Unlock()

	if provider.IsDeferred() {
		r.deferUntilResolved(provider)
		return
	}
	provider.Register(r.app)
	if booted {
		provider.Boot(r.app)
	}
}

// deferUntilResolved binds each provided abstract to a loader that registers the
// provider for real on first use, then resolves the real binding.
func (r *ProviderRegistry) deferUntilResolved(provider ServiceProvider) {
	var once sync.Once
	load := func(c *Container) {
		once.Do(func() {
			provider.Register(c)
			if r.Booted() {
				provider.Boot(c)
			}
		})
	}
	for _, abstract := range provider.Provides() {
		abs := abstract
		r.app.Bind(abs, func(c *Container) any {
			load(c)
			return c.Make(abs)
		})
	}
}

// Boot boots every eager provider once.
func (r *ProviderRegistry) Boot() {
	r.mu.Lock()
	if r.booted {
		r.mu.Unlock()
		return
	}
	r.booted = true
	eager := append([]ServiceProvider(nil), r.eager...)
	r.mu.Unlock()

	for _, provider := range eager {
		provider.Boot(r.app)
	}
}

// Booted reports whether Boot has run.
func (r *ProviderRegistry) Booted() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.booted
}

// Providers returns the eager providers in registration order.
func (r *ProviderRegistry) Providers() []ServiceProvider {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ServiceProvider(nil), r.eager...)
}
