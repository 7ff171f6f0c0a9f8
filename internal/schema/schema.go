// Package schema holds the structured type definitions the derivers
// consume: ordered fields or variants with their per-scope attribute sets.
// A TypeSpec is built once from an external source and read-only after
// that; declaration order is stored as an explicit index so discriminant
// and encode-order semantics never depend on container iteration.
package schema

import (
	"fmt"

	"github.com/youkchan/strict-encoding-derive/internal/attr"
)

// Kind discriminates between the two supported type shapes.
type Kind int

const (
	KindStruct Kind = iota
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// FieldSpec is one named or positional member of a struct or variant.
type FieldSpec struct {
	// Name is the field name, or the decimal declaration index for
	// positional (tuple-style) fields.
	Name string
	// Index is the zero-based declaration index.
	Index int
	// Type names the value codec the field binds to within the type's
	// codec namespace, e.g. "u32" or "str".
	Type string
	// Attrs holds the field-local attribute requests.
	Attrs attr.Set
}

// VariantSpec is one variant of an enum: a name, an intrinsic ordinal,
// and an ordered field list shaped like a struct body.
type VariantSpec struct {
	Name string
	// Index is the zero-based declaration index.
	Index int
	// Ordinal is the variant's intrinsic ordinal, used when discriminants
	// are assigned by native value rather than declaration order.
	Ordinal uint64
	Fields  []FieldSpec
	Attrs   attr.Set
}

// TypeSpec is a complete type definition: kind, type-global attributes,
// and the ordered member list matching the kind.
type TypeSpec struct {
	Name     string
	Kind     Kind
	Attrs    attr.Set
	Fields   []FieldSpec   // populated when Kind == KindStruct
	Variants []VariantSpec // populated when Kind == KindEnum
}

// Validate checks the structural well-formedness of the spec: a non-empty
// name, members matching the kind, contiguous declaration indices, and
// unique member names. Attribute validation belongs to resolution, not
// here.
func (s *TypeSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema: type with empty name")
	}
	switch s.Kind {
	case KindStruct:
		if len(s.Variants) != 0 {
			return fmt.Errorf("schema: struct %s carries variants", s.Name)
		}
		return validateFields(s.Name, s.Fields)
	case KindEnum:
		if len(s.Fields) != 0 {
			return fmt.Errorf("schema: enum %s carries top-level fields", s.Name)
		}
		seen := make(map[string]bool, len(s.Variants))
		for i, v := range s.Variants {
			if v.Name == "" {
				return fmt.Errorf("schema: enum %s: variant %d has empty name", s.Name, i)
			}
			if v.Index != i {
				return fmt.Errorf("schema: enum %s: variant %s has index %d, want %d", s.Name, v.Name, v.Index, i)
			}
			if seen[v.Name] {
				return fmt.Errorf("schema: enum %s: duplicate variant %s", s.Name, v.Name)
			}
			seen[v.Name] = true
			if err := validateFields(s.Name+"."+v.Name, v.Fields); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("schema: type %s has unknown kind %d", s.Name, int(s.Kind))
	}
}

func validateFields(owner string, fields []FieldSpec) error {
	seen := make(map[string]bool, len(fields))
	for i, f := range fields {
		if f.Name == "" {
			return fmt.Errorf("schema: %s: field %d has empty name", owner, i)
		}
		if f.Index != i {
			return fmt.Errorf("schema: %s: field %s has index %d, want %d", owner, f.Name, f.Index, i)
		}
		if f.Type == "" {
			return fmt.Errorf("schema: %s: field %s has empty type", owner, f.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("schema: %s: duplicate field %s", owner, f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}
