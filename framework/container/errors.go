package container

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a lookup by id, type or both has no match.
	ErrNotFound = errors.New("bean not found")

	// ErrAmbiguousMatch is returned when a type lookup matches more than one bean.
	ErrAmbiguousMatch = errors.New("more than one bean matches")

	// ErrInstantiation marks a failure to resolve, construct or run a bean
	// or post-processor.
	ErrInstantiation = errors.New("bean instantiation failed")

	// ErrPropertyBinding marks a failure to resolve a setter, coerce a value
	// or resolve a reference.
	ErrPropertyBinding = errors.New("property binding failed")

	// ErrNotReady is returned by lookups on a context that has not started
	// successfully.
	ErrNotReady = errors.New("context not ready")

	// ErrAlreadyStarted is returned by Start and SetDefinitionSource once
	// startup has begun.
	ErrAlreadyStarted = errors.New("context already started")

	// ErrNoDefinitionSource is returned by Start when no source was set.
	ErrNoDefinitionSource = errors.New("no definition source")

	// ErrDefinitionSource wraps errors raised by the definition source.
	ErrDefinitionSource = errors.New("definition source failed")
)

// BeanError reports a startup failure for a single definition.
type BeanError struct {
	ID    string
	Phase State
	Kind  error
	Err   error
}

func (e *BeanError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("bean %q: %s: %v", e.ID, e.Phase, e.Kind)
	}
	return fmt.Sprintf("bean %q: %s: %v: %v", e.ID, e.Phase, e.Kind, e.Err)
}

// Unwrap exposes both the taxonomy sentinel and the cause.
func (e *BeanError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func instantiationError(id string, phase State, err error) *BeanError {
	return &BeanError{ID: id, Phase: phase, Kind: ErrInstantiation, Err: err}
}

func bindingError(id string, phase State, err error) *BeanError {
	return &BeanError{ID: id, Phase: phase, Kind: ErrPropertyBinding, Err: err}
}

// recovered converts a panic value raised by user code into an error.
func recovered(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", v)
}
