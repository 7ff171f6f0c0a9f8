package policy

import (
	"fmt"

	"github.com/youkchan/strict-encoding-derive/internal/attr"
)

// Context names the scope a set of attributes is resolved in. The
// requirement table differs per context; crate and repr are recognized
// only at type-global contexts, skip only at member contexts.
type Context int

const (
	// StructGlobal is the type-level scope of a struct.
	StructGlobal Context = iota
	// StructField is the scope of a single struct field.
	StructField
	// EnumGlobal is the type-level scope of an enum.
	EnumGlobal
	// EnumVariant is the scope of a single enum variant, and of the
	// fields captured by a variant.
	EnumVariant
)

func (c Context) String() string {
	switch c {
	case StructGlobal:
		return "struct"
	case StructField:
		return "struct field"
	case EnumGlobal:
		return "enum"
	case EnumVariant:
		return "enum variant"
	default:
		return fmt.Sprintf("context(%d)", int(c))
	}
}

// Global reports whether the context is a type-level scope.
func (c Context) Global() bool {
	return c == StructGlobal || c == EnumGlobal
}

// table returns the requirement table for the context. Keys absent from
// the table are unrecognized in that context.
func (c Context) table() attr.Table {
	switch c {
	case StructGlobal:
		return attr.Table{
			KeyCrate: attr.RequiredWithDefault(attr.Ident(DefaultNamespace)),
			KeySkip:  attr.Prohibited(),
		}
	case EnumGlobal:
		return attr.Table{
			KeyCrate:   attr.RequiredWithDefault(attr.Ident(DefaultNamespace)),
			KeyRepr:    attr.RequiredWithDefault(attr.Ident("u8")),
			KeySkip:    attr.Prohibited(),
			KeyByOrder: attr.Optional(attr.ClassFlag),
			KeyByValue: attr.Optional(attr.ClassFlag),
		}
	case StructField:
		return attr.Table{
			KeySkip:  attr.Optional(attr.ClassFlag),
			KeyCrate: attr.Prohibited(),
			KeyRepr:  attr.Prohibited(),
		}
	case EnumVariant:
		return attr.Table{
			KeySkip:    attr.Optional(attr.ClassFlag),
			KeyValue:   attr.Optional(attr.ClassInt),
			KeyByOrder: attr.Optional(attr.ClassFlag),
			KeyByValue: attr.Optional(attr.ClassFlag),
			KeyCrate:   attr.Prohibited(),
			KeyRepr:    attr.Prohibited(),
		}
	default:
		return attr.Table{}
	}
}
