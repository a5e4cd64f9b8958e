// Package container is the application's service container and provider
// registry, modelled on Laravel's: services are bound by name with explicit
// factory functions and resolved with the generic Resolve helper.
//
// # Lifecycle
//
//  1. c := container.New()
//  2. registry.Register(&ConfigServiceProvider{}) for each provider
//  3. registry.Boot()
//  4. serve
//
// # Bindings
//
//	c.Instance("config", cfg)
//	c.Singleton("rules", func(c *container.Container) any {
//	    return config.MustLoadRules(container.Resolve[*config.Config](c, "config").RulesFile)
//	})
//	c.Alias("rules", "validation")
//
//	rules := container.Resolve[*validation.Rules](c, "rules")
//
// # Deferred providers
//
// A provider whose IsDeferred returns true is registered the first time one
// of its Provides abstracts is resolved. The account store is loaded this
// way so commands that never touch the database never open it.
package container
