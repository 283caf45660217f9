package container

import (
	"fmt"
	"reflect"
)

// ── Lookup ────────────────────────────────────────────────────────────────────

// Bean returns the instance registered under id.
func (c *Context) Bean(id string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != Ready {
		return nil, ErrNotReady
	}
	b, ok := c.registry[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %q", ErrNotFound, id)
	}
	return b.Instance, nil
}

// BeanOfType returns the only instance whose runtime type is exactly t.
func (c *Context) BeanOfType(t reflect.Type) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != Ready {
		return nil, ErrNotReady
	}

	var (
		match any
		ids   []string
	)
	for _, def := range c.definitions {
		b := c.registry[def.ID]
		if reflect.TypeOf(b.Instance) == t {
			match = b.Instance
			ids = append(ids, def.ID)
		}
	}

	switch len(ids) {
	case 0:
		return nil, fmt.Errorf("%w: type %s", ErrNotFound, t)
	case 1:
		return match, nil
	default:
		return nil, fmt.Errorf("%w: type %s: %v", ErrAmbiguousMatch, t, ids)
	}
}

// BeanNamedOfType returns the instance registered under id if its runtime
// type is exactly t.
func (c *Context) BeanNamedOfType(id string, t reflect.Type) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.state != Ready {
		return nil, ErrNotReady
	}
	b, ok := c.registry[id]
	if !ok || reflect.TypeOf(b.Instance) != t {
		return nil, fmt.Errorf("%w: id %q with type %s", ErrNotFound, id, t)
	}
	return b.Instance, nil
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// GetByType returns the only bean whose runtime type is exactly T.
//
//	svc, err := container.GetByType[*PaymentService](ctx)
func GetByType[T any](c *Context) (T, error) {
	var zero T
	v, err := c.BeanOfType(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// GetByName returns the bean registered under id, asserted to T. A bean of
// another type is reported as ErrNotFound.
func GetByName[T any](c *Context, id string) (T, error) {
	var zero T
	v, err := c.Bean(id)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: id %q is %T, not %s", ErrNotFound, id, v, reflect.TypeOf((*T)(nil)).Elem())
	}
	return typed, nil
}

// GetByNameAndType returns the bean registered under id whose runtime type is
// exactly T.
//
//	mail, err := container.GetByNameAndType[*MailService](ctx, "mailService")
func GetByNameAndType[T any](c *Context, id string) (T, error) {
	var zero T
	v, err := c.BeanNamedOfType(id, reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// MustGetByType is like GetByType but panics on error. Meant for wiring code
// that runs after a successful Start.
func MustGetByType[T any](c *Context) T {
	v, err := GetByType[T](c)
	if err != nil {
		panic(fmt.Sprintf("container: MustGetByType[%s]: %v", reflect.TypeOf((*T)(nil)).Elem(), err))
	}
	return v
}
