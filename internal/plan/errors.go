package plan

import (
	"errors"
	"fmt"

	"github.com/youkchan/strict-encoding-derive/internal/policy"
)

// Derivation-time sentinel errors. Like the attribute errors these belong
// to the configuration family: they abort plan construction and never
// surface while processing live data.
var (
	// ErrUnknownNamespace indicates a crate attribute naming a codec
	// namespace nothing has registered.
	ErrUnknownNamespace = errors.New("unknown codec namespace")

	// ErrUnboundType indicates a member value type with no codec bound in
	// the selected namespace.
	ErrUnboundType = errors.New("no codec bound for value type")

	// ErrNoDefault indicates a skip-marked member whose codec supplies no
	// default value.
	ErrNoDefault = errors.New("skip-marked member has no default value")

	// ErrDuplicateDiscriminant indicates two variants resolving to the
	// same discriminant.
	ErrDuplicateDiscriminant = errors.New("duplicate discriminant")

	// ErrDiscriminantOverflow indicates a discriminant that does not fit
	// the resolved repr width.
	ErrDiscriminantOverflow = errors.New("discriminant exceeds repr range")
)

// NamespaceError reports an unresolvable codec namespace.
type NamespaceError struct {
	TypeName  string
	Namespace string
}

func (e *NamespaceError) Error() string {
	return fmt.Sprintf("%s %q for type %s", ErrUnknownNamespace, e.Namespace, e.TypeName)
}

func (e *NamespaceError) Unwrap() error { return ErrUnknownNamespace }

// BindingError reports a member whose value type cannot be bound to a
// conforming codec, or whose codec lacks a required capability.
type BindingError struct {
	Err       error // ErrUnboundType or ErrNoDefault
	TypeName  string
	Member    string // field path, e.g. "field" or "Variant.field"
	ValueType string
	Namespace string
}

func (e *BindingError) Error() string {
	return fmt.Sprintf("%s: type %s, member %s, value type %q in namespace %q",
		e.Err, e.TypeName, e.Member, e.ValueType, e.Namespace)
}

func (e *BindingError) Unwrap() error { return e.Err }

// DiscriminantError reports an invalid discriminant assignment detected
// by the post-derivation validation pass.
type DiscriminantError struct {
	Err      error // ErrDuplicateDiscriminant or ErrDiscriminantOverflow
	TypeName string
	Variant  string
	// Prior names the earlier variant holding the same discriminant; set
	// only for duplicates.
	Prior string
	Value uint64
	Repr  policy.Repr
}

func (e *DiscriminantError) Error() string {
	if errors.Is(e.Err, ErrDuplicateDiscriminant) {
		return fmt.Sprintf("%s %d in enum %s: variants %s and %s", e.Err, e.Value, e.TypeName, e.Prior, e.Variant)
	}
	return fmt.Sprintf("%s: enum %s variant %s: %d does not fit %s", e.Err, e.TypeName, e.Variant, e.Value, e.Repr)
}

func (e *DiscriminantError) Unwrap() error { return e.Err }
