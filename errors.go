package bal

import (
	"errors"
	"fmt"
)

var (
	// ErrUnregistered indicates that neither the requested interface nor
	// any of its declared ancestors has a registered implementation.
	ErrUnregistered = errors.New("bal: no implementation registered")

	// ErrMalformedData indicates that a serializer rejected bytes as
	// structurally invalid.
	ErrMalformedData = errors.New("bal: malformed data")

	// ErrTypeMismatch indicates that a serializer was handed a model of
	// the wrong declared interface.
	ErrTypeMismatch = errors.New("bal: model type mismatch")

	// ErrInvalidNodeState indicates a framework invariant violation: a
	// node with neither cached bytes nor a model. Unreachable through
	// the package constructors.
	ErrInvalidNodeState = errors.New("bal: invalid node state")

	// ErrAlreadyRegistered indicates a duplicate key registration on a
	// Manager.
	ErrAlreadyRegistered = errors.New("bal: already registered")
)

// UnregisteredInterfaceError reports a failed registry resolution. It
// carries the interface that was requested and the capability kind
// (serializer, analyzer, or mutator) that was missing.
type UnregisteredInterfaceError struct {
	Interface *Interface
	Kind      string
}

func (e *UnregisteredInterfaceError) Error() string {
	return fmt.Sprintf("bal: no %s registered for interface %s or its ancestors", e.Kind, e.Interface.Name())
}

func (e *UnregisteredInterfaceError) Is(target error) bool { return target == ErrUnregistered }

// MalformedDataError reports a deserialize failure. Err holds the
// serializer-specific diagnostic.
type MalformedDataError struct {
	Interface *Interface
	Err       error
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("bal: malformed %s data: %v", e.Interface.Name(), e.Err)
}

func (e *MalformedDataError) Unwrap() error { return e.Err }

func (e *MalformedDataError) Is(target error) bool { return target == ErrMalformedData }

// TypeMismatchError reports a serializer invoked with a model whose
// declared interface it does not handle.
type TypeMismatchError struct {
	Want *Interface
	Got  *Interface
}

func (e *TypeMismatchError) Error() string {
	got := "<nil>"
	if e.Got != nil {
		got = e.Got.Name()
	}
	return fmt.Sprintf("bal: serializer for %s given model of type %s", e.Want.Name(), got)
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// InvalidNodeStateError reports an operation on a node holding neither
// bytes nor a model.
type InvalidNodeStateError struct {
	Interface *Interface
}

func (e *InvalidNodeStateError) Error() string {
	name := "<unknown>"
	if e.Interface != nil {
		name = e.Interface.Name()
	}
	return fmt.Sprintf("bal: node %s has neither bytes nor a model", name)
}

func (e *InvalidNodeStateError) Is(target error) bool { return target == ErrInvalidNodeState }
