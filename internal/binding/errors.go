package binding

import "errors"

var (
	// ErrUnknownObject is returned when a request names an object the engine does not hold.
	ErrUnknownObject = errors.New("unknown object")

	// ErrUnknownMethod is returned when a slot is not defined on the object.
	ErrUnknownMethod = errors.New("unknown method")

	// ErrUnknownProperty is returned when a property is not defined on the object.
	ErrUnknownProperty = errors.New("unknown property")

	// ErrReadOnlyProperty is returned when setting a property without a setter.
	ErrReadOnlyProperty = errors.New("property is read-only")

	// ErrUnknownType is returned when creating a type that was never registered.
	ErrUnknownType = errors.New("unknown type")

	// ErrBadArguments is returned when slot or property arguments cannot be decoded.
	ErrBadArguments = errors.New("bad arguments")

	// ErrEngineStopped is returned when work is posted after the loop exited.
	ErrEngineStopped = errors.New("engine stopped")

	// ErrViewNotFound is returned by Load when the view document does not exist.
	ErrViewNotFound = errors.New("view not found")
)
