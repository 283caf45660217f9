package container

import "fmt"

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider groups the types a module contributes to a context.
//
// Register is called before the context starts and may only add types.
// Boot is called once the context is Ready, making it safe to look beans up.
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(types *container.TypeRegistry) {
//	    types.Register("services.MailService", container.Constructor[services.MailService]())
//	}
//
//	func (p *AppServiceProvider) Boot(ctx *container.Context) error {
//	    mail, err := container.GetByType[*services.MailService](ctx)
//	    ...
//	}
type ServiceProvider interface {
	// Register binds types into the registry.
	// Do NOT look beans up here; use Boot() for that.
	Register(types *TypeRegistry)

	// Boot is called after the context has started.
	Boot(ctx *Context) error
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with a no-op Boot.
//
//	type MyProvider struct{ container.BaseProvider }
//	func (p *MyProvider) Register(types *container.TypeRegistry) { ... }
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Context) error { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry registers providers into a type registry and boots them
// against a started context.
type ProviderRegistry struct {
	types      *TypeRegistry
	providers  []ServiceProvider
	registered map[ServiceProvider]bool
	booted     bool
}

// NewProviderRegistry creates a registry bound to types.
func NewProviderRegistry(types *TypeRegistry) *ProviderRegistry {
	return &ProviderRegistry{
		types:      types,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method. Registering the
// same provider twice is a no-op. Registering after Boot panics, since the
// context it would contribute to has already started.
func (r *ProviderRegistry) Register(provider ServiceProvider) {
	if r.registered[provider] {
		return
	}
	if r.booted {
		panic(fmt.Sprintf("container: provider %T registered after boot", provider))
	}
	r.registered[provider] = true

	provider.Register(r.types)
	r.providers = append(r.providers, provider)
}

// Boot calls Boot() on every provider in registration order. ctx must be
// Ready. Subsequent calls are no-ops.
func (r *ProviderRegistry) Boot(ctx *Context) error {
	if r.booted {
		return nil
	}
	if ctx.State() != Ready {
		return ErrNotReady
	}
	r.booted = true
	for _, provider := range r.providers {
		if err := provider.Boot(ctx); err != nil {
			return fmt.Errorf("booting %T: %w", provider, err)
		}
	}
	return nil
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all registered providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
