package exec

import (
	"errors"
	"fmt"
)

// Codec-family sentinel errors: these occur only while processing live
// data, are recoverable by the caller, and carry enough context to
// localize the fault.
var (
	// ErrUnknownVariant indicates a decoded discriminant matching no
	// dispatchable variant.
	ErrUnknownVariant = errors.New("unknown variant discriminant")

	// ErrNoSuchVariant indicates an encode request naming a variant the
	// plan cannot dispatch: undefined, or excluded by a skip marker.
	ErrNoSuchVariant = errors.New("variant not encodable")

	// ErrMissingField indicates an encode request lacking a value for an
	// active field.
	ErrMissingField = errors.New("missing field value")
)

// UnknownVariantError carries the enum type name and the raw discriminant
// read from the stream. No variant is partially constructed when it is
// returned.
type UnknownVariantError struct {
	TypeName string
	Raw      uint64
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("%s: enum %s, raw value %d", ErrUnknownVariant, e.TypeName, e.Raw)
}

func (e *UnknownVariantError) Unwrap() error { return ErrUnknownVariant }

// VariantNameError reports an encode request for a variant name outside
// the plan's dispatch table.
type VariantNameError struct {
	TypeName string
	Variant  string
}

func (e *VariantNameError) Error() string {
	return fmt.Sprintf("%s: enum %s, variant %q", ErrNoSuchVariant, e.TypeName, e.Variant)
}

func (e *VariantNameError) Unwrap() error { return ErrNoSuchVariant }

// MissingFieldError reports an encode request with no value for a field
// the plan requires.
type MissingFieldError struct {
	TypeName string
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: type %s, field %q", ErrMissingField, e.TypeName, e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }
