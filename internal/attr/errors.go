package attr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the configuration error family. All of them abort
// plan construction for the whole type; none can occur while processing
// live data. Use errors.Is to classify, errors.As to recover context.
var (
	// ErrUnrecognizedKey indicates an attribute key unknown in its scope.
	ErrUnrecognizedKey = errors.New("unrecognized attribute")

	// ErrWrongValueClass indicates an attribute value of the wrong class.
	ErrWrongValueClass = errors.New("wrong attribute value class")

	// ErrProhibitedKey indicates a key that must not appear in its scope.
	ErrProhibitedKey = errors.New("prohibited attribute present")

	// ErrMutuallyExclusive indicates two markers that cannot coexist in
	// one resolved scope.
	ErrMutuallyExclusive = errors.New("mutually exclusive attributes")
)

// KeyError reports a validation failure for a single attribute key,
// identifying the offending key and the scope it was declared in.
type KeyError struct {
	Err   error // one of ErrUnrecognizedKey, ErrWrongValueClass, ErrProhibitedKey
	Key   string
	Scope string
	Want  Class // expected class, meaningful for ErrWrongValueClass
	Got   Class // actual class, meaningful for ErrWrongValueClass
}

func (e *KeyError) Error() string {
	if errors.Is(e.Err, ErrWrongValueClass) {
		return fmt.Sprintf("%s %q in %s scope: want %s, got %s", e.Err, e.Key, e.Scope, e.Want, e.Got)
	}
	return fmt.Sprintf("%s %q in %s scope", e.Err, e.Key, e.Scope)
}

func (e *KeyError) Unwrap() error { return e.Err }

// ExclusionError reports two attribute keys present together in one
// resolved scope when at most one is allowed.
type ExclusionError struct {
	KeyA  string
	KeyB  string
	Scope string
}

func (e *ExclusionError) Error() string {
	return fmt.Sprintf("%s: %q and %q in %s scope", ErrMutuallyExclusive, e.KeyA, e.KeyB, e.Scope)
}

func (e *ExclusionError) Unwrap() error { return ErrMutuallyExclusive }
