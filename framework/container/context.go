package container

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/beans"
)

// ── Options ───────────────────────────────────────────────────────────────────

// Option configures a Context at construction.
type Option func(*Context)

// WithLogger sets the logger used for startup diagnostics. The default
// discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(c *Context) {
		if log != nil {
			c.log = log
		}
	}
}

// WithSource sets the definition source. Equivalent to calling
// SetDefinitionSource before Start.
func WithSource(src beans.Source) Option {
	return func(c *Context) { c.source = src }
}

// ── Context ───────────────────────────────────────────────────────────────────

// Context is the application context: it owns the bean registry built from
// a definition source and serves lookups against it.
//
// It is created by the caller and passed to whatever needs beans; there is
// no process-wide instance.
//
//	ctx := container.NewContext(types, container.WithSource(src))
//	if err := ctx.Start(); err != nil { ... }
//	svc, err := container.GetByType[*PaymentService](ctx)
type Context struct {
	mu sync.RWMutex

	id     string
	types  *TypeRegistry
	source beans.Source
	log    *zap.Logger

	state State

	// definitions in source order, frozen after post-processing
	definitions []beans.Definition

	// id → bean
	registry map[string]beans.Bean

	// processor id → instance configured during post-processing
	processors map[string]any

	started  time.Time
	duration time.Duration
}

// NewContext creates an uninitialized context resolving types through types.
func NewContext(types *TypeRegistry, opts ...Option) *Context {
	if types == nil {
		types = NewTypeRegistry()
	}
	c := &Context{
		id:    uuid.NewString(),
		types: types,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("context", c.id))
	return c
}

// ID returns the unique id of this context instance.
func (c *Context) ID() string { return c.id }

// State returns the current lifecycle state.
func (c *Context) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// StartupDuration returns how long Start took. Zero until Ready.
func (c *Context) StartupDuration() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.duration
}

// Types returns the type registry the context resolves against.
func (c *Context) Types() *TypeRegistry { return c.types }

// SetDefinitionSource sets the source read by Start. It fails with
// ErrAlreadyStarted once startup has begun.
func (c *Context) SetDefinitionSource(src beans.Source) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Uninitialized {
		return ErrAlreadyStarted
	}
	c.source = src
	return nil
}

// ── Startup ───────────────────────────────────────────────────────────────────

// Start runs the whole startup pipeline: read definitions, post-process,
// instantiate, inject scalars, inject references. Any failure aborts the
// pipeline, moves the context to Failed and leaves nothing observable.
func (c *Context) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Uninitialized {
		return ErrAlreadyStarted
	}
	if c.source == nil {
		return ErrNoDefinitionSource
	}

	c.started = time.Now()
	if err := c.startLocked(); err != nil {
		c.state = Failed
		c.registry = nil
		c.processors = nil
		c.log.Error("context startup failed", zap.Error(err))
		return err
	}

	c.duration = time.Since(c.started)
	c.processors = nil
	c.log.Info("context ready",
		zap.Int("beans", len(c.registry)),
		zap.Duration("took", c.duration),
	)
	return nil
}

func (c *Context) startLocked() error {
	phases := []struct {
		next State
		run  func() error
	}{
		{DefinitionsLoaded, c.loadDefinitions},
		{PostProcessed, c.postProcess},
		{Instantiated, c.instantiate},
		{ScalarsInjected, c.injectScalars},
		{Ready, c.injectRefs},
	}

	for _, phase := range phases {
		if err := phase.run(); err != nil {
			return err
		}
		c.state = phase.next
		c.log.Debug("context phase complete", zap.Stringer("state", c.state))
	}
	return nil
}

func (c *Context) loadDefinitions() error {
	defs, err := c.source.Definitions()
	if err != nil {
		return errors.Join(ErrDefinitionSource, err)
	}

	c.definitions = make([]beans.Definition, len(defs))
	seen := make(map[string]struct{}, len(defs))
	for i, def := range defs {
		if _, dup := seen[def.ID]; dup {
			return fmt.Errorf("%w: duplicate bean id %q", ErrDefinitionSource, def.ID)
		}
		seen[def.ID] = struct{}{}
		c.definitions[i] = def.Clone()
	}
	c.log.Debug("definitions loaded", zap.Int("count", len(defs)))
	return nil
}

// ── Snapshots ─────────────────────────────────────────────────────────────────

// Definitions returns copies of the post-processed definitions, in source
// order. Empty until Ready.
func (c *Context) Definitions() []beans.Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != Ready {
		return nil
	}
	out := make([]beans.Definition, len(c.definitions))
	for i, def := range c.definitions {
		out[i] = def.Clone()
	}
	return out
}

// Beans returns every bean in definition order. Empty until Ready.
func (c *Context) Beans() []beans.Bean {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != Ready {
		return nil
	}
	out := make([]beans.Bean, 0, len(c.definitions))
	for _, def := range c.definitions {
		out = append(out, c.registry[def.ID])
	}
	return out
}
