package container

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotBound is returned by TryMake when no binding or instance exists.
var ErrNotBound = errors.New("container: not bound")

// Factory builds a service from the container.
type Factory func(c *Container) any

type binding struct {
	factory   Factory
	singleton bool
	once      *sync.Once
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container holds the application's services: config, rules, logger,
// router, views, account store and activity widget.
//
// Singletons are built at most once even under concurrent Make calls.
// Factories may resolve other services; a factory that resolves itself
// deadlocks.
type Container struct {
	mu        sync.RWMutex
	bindings  map[string]*binding
	instances map[string]any
	aliases   map[string]string
}

// New creates an empty container bound to itself as "container".
func New() *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		instances: make(map[string]any),
		aliases:   make(map[string]string),
	}
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a factory that runs on every Make.
//
//	c.Bind("gate.register", func(c *container.Container) any {
//	    return gate.New(forms.Register(), container.Resolve[*validation.Rules](c, "rules"))
//	})
func (c *Container) Bind(abstract string, factory Factory) {
	c.register(abstract, &binding{factory: factory})
}

// Singleton registers a factory whose result is cached after the first Make.
//
//	c.Singleton("activity", func(c *container.Container) any {
//	    return activity.NewWidget(nil, zerolog.Nop())
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	c.register(abstract, &binding{factory: factory, singleton: true, once: new(sync.Once)})
}

func (c *Container) register(abstract string, b *binding) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.instances, key)
	c.bindings[key] = b
}

// Instance registers an already built value.
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := c.canonical(abstract)
	delete(c.bindings, key)
	c.instances[key] = instance
}

// Alias makes alias resolve to abstract.
func (c *Container) Alias(abstract, alias string) {
	if abstract == alias {
		panic(fmt.Sprintf("container: [%s] is aliased to itself", abstract))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aliases[alias] = c.canonical(abstract)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves abstract and panics when nothing is bound. Bootstrapping code
// uses it; request paths resolve their dependencies once at startup.
func (c *Container) Make(abstract string) any {
	v, err := c.TryMake(abstract)
	if err != nil {
		panic(err.Error())
	}
	return v
}

// TryMake resolves abstract, returning ErrNotBound when nothing is registered.
func (c *Container) TryMake(abstract string) (any, error) {
	c.mu.RLock()
	key := c.canonical(abstract)
	if inst, ok := c.instances[key]; ok {
		c.mu.RUnlock()
		return inst, nil
	}
	b, ok := c.bindings[key]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: [%s]", ErrNotBound, abstract)
	}

	if !b.singleton {
		return b.factory(c), nil
	}

	b.once.Do(func() {
		inst := b.factory(c)
		c.mu.Lock()
		if c.bindings[key] == b {
			c.instances[key] = inst
		}
		c.mu.Unlock()
	})

	c.mu.RLock()
	defer c.mu.RUnlock()
	if inst, ok := c.instances[key]; ok {
		return inst, nil
	}
	// Rebound while building; resolve against the new binding.
	return nil, fmt.Errorf("%w: [%s] was rebound during resolution", ErrNotBound, abstract)
}

// Bound reports whether abstract has a binding or instance.
func (c *Container) Bound(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	key := c.canonical(abstract)
	_, hasBinding := c.bindings[key]
	_, hasInstance := c.instances[key]
	return hasBinding || hasInstance
}

// Resolved reports whether abstract has a cached instance.
func (c *Container) Resolved(abstract string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.instances[c.canonical(abstract)]
	return ok
}

// canonical follows an alias. Callers hold mu.
func (c *Container) canonical(abstract string) string {
	if target, ok := c.aliases[abstract]; ok {
		return target
	}
	return abstract
}

// ── Generics ──────────────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result.
//
//	rules := container.Resolve[*validation.Rules](c, "rules")
func Resolve[T any](c *Container, abstract string) T {
	instance := c.Make(abstract)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), abstract, instance))
	}
	return typed
}

// TryResolve is Resolve without panics.
func TryResolve[T any](c *Container, abstract string) (T, error) {
	var zero T
	instance, err := c.TryMake(abstract)
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, fmt.Errorf("container: [%s] resolved to %T, not %T", abstract, instance, zero)
	}
	return typed, nil
}
