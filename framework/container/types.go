package container

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/coerce"
)

// ── Factories & properties ────────────────────────────────────────────────────

// Factory builds a fresh, unconfigured instance of a registered type.
// Factories and setters run under the context's startup lock and must not
// call back into the Context.
type Factory func() (any, error)

// Constructor returns a Factory that allocates a zero T and returns *T.
//
//	types.Register("services.MailService", container.Constructor[services.MailService]())
func Constructor[T any]() Factory {
	return func() (any, error) { return new(T), nil }
}

type propertyKind int

const (
	scalarProperty propertyKind = iota
	refProperty
)

func (k propertyKind) String() string {
	if k == refProperty {
		return "reference"
	}
	return "scalar"
}

// Property is a typed setter bound to a property name by TypeBuilder.Property.
// Build one with Scalar or Ref.
type Property struct {
	kind   propertyKind
	scalar coerce.Kind
	target reflect.Type
	set    func(instance, value any) error
}

// Scalar binds a setter whose parameter is a coercible scalar. The literal
// from the definition is coerced to V before set is called.
//
//	container.Scalar((*PaymentService).SetMaxAmount) // func(*PaymentService, int)
func Scalar[B any, V coerce.Scalar](set func(B, V)) Property {
	return Property{
		kind:   scalarProperty,
		scalar: coerce.KindFor[V](),
		target: reflect.TypeOf((*V)(nil)).Elem(),
		set: func(instance, value any) error {
			b, ok := instance.(B)
			if !ok {
				return fmt.Errorf("setter expects %s, instance is %T", reflect.TypeOf((*B)(nil)).Elem(), instance)
			}
			v, ok := value.(V)
			if !ok {
				return fmt.Errorf("setter expects %s, value is %T", reflect.TypeOf((*V)(nil)).Elem(), value)
			}
			set(b, v)
			return nil
		},
	}
}

// Ref binds a setter that receives another bean. The referenced instance
// must be assignable to V.
//
//	container.Ref((*PaymentService).SetMailService) // func(*PaymentService, *MailService)
func Ref[B any, V any](set func(B, V)) Property {
	return Property{
		kind:   refProperty,
		target: reflect.TypeOf((*V)(nil)).Elem(),
		set: func(instance, value any) error {
			b, ok := instance.(B)
			if !ok {
				return fmt.Errorf("setter expects %s, instance is %T", reflect.TypeOf((*B)(nil)).Elem(), instance)
			}
			v, ok := value.(V)
			if !ok {
				return fmt.Errorf("setter expects %s, bean is %T", reflect.TypeOf((*V)(nil)).Elem(), value)
			}
			set(b, v)
			return nil
		},
	}
}

// apply calls the setter, turning a panic inside user code into an error.
func (p Property) apply(instance, value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return p.set(instance, value)
}

// ── TypeRegistry ──────────────────────────────────────────────────────────────

// typeSpec is everything the context knows about one creatable type.
type typeSpec struct {
	name       string
	factory    Factory
	properties map[string]Property
}

// TypeRegistry is the startup-time table that maps a definition's type name
// to a factory and its named setters. It replaces resolving types and
// setters by reflection.
type TypeRegistry struct {
	mu    sync.RWMutex
	types map[string]*typeSpec
}

// NewTypeRegistry creates an empty registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{types: make(map[string]*typeSpec)}
}

// Register adds a creatable type and returns a builder for its properties.
// Registering the same name twice panics.
//
//	types.Register("services.PaymentService", container.Constructor[services.PaymentService]()).
//	    Property("maxAmount", container.Scalar((*services.PaymentService).SetMaxAmount)).
//	    Property("mailService", container.Ref((*services.PaymentService).SetMailService))
func (r *TypeRegistry) Register(name string, factory Factory) *TypeBuilder {
	if name == "" {
		panic("container: type name cannot be empty")
	}
	if factory == nil {
		panic(fmt.Sprintf("container: type [%s] registered with a nil factory", name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.types[name]; exists {
		panic(fmt.Sprintf("container: type [%s] is already registered", name))
	}
	spec := &typeSpec{name: name, factory: factory, properties: make(map[string]Property)}
	r.types[name] = spec
	return &TypeBuilder{registry: r, spec: spec}
}

// Has reports whether name is registered.
func (r *TypeRegistry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.types[name]
	return ok
}

// Names returns the registered type names, sorted.
func (r *TypeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.types))
	for name := range r.types {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *TypeRegistry) lookup(name string) (*typeSpec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	spec, ok := r.types[name]
	return spec, ok
}

// ── TypeBuilder ───────────────────────────────────────────────────────────────

// TypeBuilder is the fluent API returned by TypeRegistry.Register.
type TypeBuilder struct {
	registry *TypeRegistry
	spec     *typeSpec
}

// Property binds a setter to a property name. Binding the same name twice
// panics.
func (b *TypeBuilder) Property(name string, p Property) *TypeBuilder {
	if p.set == nil {
		panic(fmt.Sprintf("container: [%s.%s] bound to an empty Property", b.spec.name, name))
	}

	b.registry.mu.Lock()
	defer b.registry.mu.Unlock()
	if _, exists := b.spec.properties[name]; exists {
		panic(fmt.Sprintf("container: property [%s.%s] is already bound", b.spec.name, name))
	}
	b.spec.properties[name] = p
	return b
}

// ── Construction ──────────────────────────────────────────────────────────────

// construct resolves def's type and runs its factory.
func (r *TypeRegistry) construct(def beans.Definition) (instance any, err error) {
	spec, ok := r.lookup(def.Type)
	if !ok {
		return nil, fmt.Errorf("unknown type %q", def.Type)
	}

	defer func() {
		if p := recover(); p != nil {
			instance, err = nil, recovered(p)
		}
	}()
	instance, err = spec.factory()
	if err != nil {
		return nil, err
	}
	if instance == nil {
		return nil, fmt.Errorf("factory for %q returned nil", def.Type)
	}
	return instance, nil
}

// property returns the setter bound to name on typeName, checking its kind.
func (r *TypeRegistry) property(typeName, name string, kind propertyKind) (Property, error) {
	spec, ok := r.lookup(typeName)
	if !ok {
		return Property{}, fmt.Errorf("unknown type %q", typeName)
	}
	r.mu.RLock()
	p, ok := spec.properties[name]
	r.mu.RUnlock()
	if !ok {
		return Property{}, fmt.Errorf("type %q has no setter for %q", typeName, name)
	}
	if p.kind != kind {
		return Property{}, fmt.Errorf("%s.%s is a %s property, declared as %s", typeName, name, p.kind, kind)
	}
	return p, nil
}
