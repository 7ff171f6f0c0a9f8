// Package policy resolves the layered declarative configuration of a type
// into immutable encoding policies: codec namespace, discriminant width and
// mode, and skip handling. Resolution is a pure transformation; a Policy is
// derived once per scope and never mutated.
package policy

import "fmt"

// Recognized attribute keys.
const (
	KeyCrate   = "crate"    // codec namespace, type-global only
	KeyRepr    = "repr"     // discriminant width, enum-global only
	KeySkip    = "skip"     // exclude member from the wire form
	KeyValue   = "value"    // explicit discriminant, enum-variant only
	KeyByOrder = "by_order" // discriminant = declaration order (the default)
	KeyByValue = "by_value" // discriminant = native ordinal
)

// DefaultNamespace is the codec namespace members bind to when the type
// carries no crate attribute.
const DefaultNamespace = "strict"

// Repr is the fixed-width unsigned integer kind used for an enum's
// discriminant on the wire.
type Repr uint8

const (
	ReprU8 Repr = iota
	ReprU16
	ReprU32
	ReprU64
)

// Width returns the encoded size of the repr in bytes.
func (r Repr) Width() int {
	switch r {
	case ReprU8:
		return 1
	case ReprU16:
		return 2
	case ReprU32:
		return 4
	case ReprU64:
		return 8
	default:
		return 0
	}
}

// Max returns the largest discriminant value the repr can carry.
func (r Repr) Max() uint64 {
	if r == ReprU64 {
		return ^uint64(0)
	}
	return 1<<(uint(r.Width())*8) - 1
}

func (r Repr) String() string {
	switch r {
	case ReprU8:
		return "u8"
	case ReprU16:
		return "u16"
	case ReprU32:
		return "u32"
	case ReprU64:
		return "u64"
	default:
		return fmt.Sprintf("repr(%d)", uint8(r))
	}
}

// ReprFromIdent maps a repr identifier to its Repr. Anything other than
// the four fixed-width unsigned kinds fails with an InvalidReprError.
func ReprFromIdent(ident string) (Repr, error) {
	switch ident {
	case "u8":
		return ReprU8, nil
	case "u16":
		return ReprU16, nil
	case "u32":
		return ReprU32, nil
	case "u64":
		return ReprU64, nil
	default:
		return 0, &InvalidReprError{Ident: ident}
	}
}

// Mode selects how an enum variant's discriminant is assigned.
type Mode int

const (
	// ByDeclarationOrder assigns the variant's zero-based declaration index.
	ByDeclarationOrder Mode = iota
	// ExplicitValue uses the variant's own value attribute.
	ExplicitValue
	// ByNativeOrdinal uses the variant's intrinsic ordinal.
	ByNativeOrdinal
)

func (m Mode) String() string {
	switch m {
	case ByDeclarationOrder:
		return "by_order"
	case ExplicitValue:
		return "value"
	case ByNativeOrdinal:
		return "by_value"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Policy is the resolved, conflict-free set of encoding decisions for one
// scope. Namespace and Repr are meaningful only on type-global policies;
// Explicit only when Mode == ExplicitValue.
type Policy struct {
	Namespace string
	Skip      bool
	Repr      Repr
	Mode      Mode
	Explicit  uint64
}
