package plan

import (
	"fmt"

	"github.com/youkchan/strict-encoding-derive/internal/attr"
	"github.com/youkchan/strict-encoding-derive/internal/codec"
	"github.com/youkchan/strict-encoding-derive/internal/policy"
	"github.com/youkchan/strict-encoding-derive/internal/schema"
)

// Derive builds the codec plan for a type specification, dispatching on
// its kind.
func Derive(spec *schema.TypeSpec) (Plan, error) {
	switch spec.Kind {
	case schema.KindStruct:
		return DeriveStruct(spec)
	case schema.KindEnum:
		return DeriveEnum(spec)
	default:
		return nil, fmt.Errorf("plan: type %s has unknown kind %d", spec.Name, int(spec.Kind))
	}
}

// DeriveStruct derives the encode/decode plan of a struct: every field in
// declaration order, each bound to its value codec, skip-marked fields
// carried along for default handling. Any resolution or binding error
// aborts the whole plan.
func DeriveStruct(spec *schema.TypeSpec) (*StructPlan, error) {
	if spec.Kind != schema.KindStruct {
		return nil, fmt.Errorf("plan: %s is not a struct", spec.Name)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	global, err := policy.ResolveGlobal(spec.Attrs, policy.StructGlobal)
	if err != nil {
		return nil, err
	}
	reg, ok := codec.Namespace(global.Namespace)
	if !ok {
		return nil, &NamespaceError{TypeName: spec.Name, Namespace: global.Namespace}
	}

	fields, err := deriveFields(spec.Name, "", spec.Attrs, spec.Fields, policy.StructField, reg)
	if err != nil {
		return nil, err
	}

	return &StructPlan{
		TypeName:  spec.Name,
		Namespace: global.Namespace,
		Fields:    fields,
	}, nil
}

// DeriveEnum derives the discriminant assignment and dispatch plan of an
// enum. Assignment walks variants in declaration order: an explicit value
// attribute wins, by_value selects the variant's native ordinal, and the
// default is the declaration index. Skip-marked variants are excluded
// from dispatch entirely. The finished plan is rejected when two variants
// share a discriminant or a discriminant does not fit the repr.
func DeriveEnum(spec *schema.TypeSpec) (*EnumPlan, error) {
	if spec.Kind != schema.KindEnum {
		return nil, fmt.Errorf("plan: %s is not an enum", spec.Name)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	global, err := policy.ResolveGlobal(spec.Attrs, policy.EnumGlobal)
	if err != nil {
		return nil, err
	}
	reg, ok := codec.Namespace(global.Namespace)
	if !ok {
		return nil, &NamespaceError{TypeName: spec.Name, Namespace: global.Namespace}
	}

	variants := make([]VariantPlan, 0, len(spec.Variants))
	for _, v := range spec.Variants {
		member, err := policy.ResolveMember(spec.Attrs, v.Attrs, policy.EnumVariant)
		if err != nil {
			return nil, err
		}
		if member.Skip {
			continue
		}

		var discriminant uint64
		switch member.Mode {
		case policy.ExplicitValue:
			discriminant = member.Explicit
		case policy.ByNativeOrdinal:
			discriminant = v.Ordinal
		default:
			discriminant = uint64(v.Index)
		}

		// Variant fields inherit from the variant's scope, not the
		// type-global one.
		fields, err := deriveFields(spec.Name, v.Name+".", v.Attrs, v.Fields, policy.EnumVariant, reg)
		if err != nil {
			return nil, err
		}

		variants = append(variants, VariantPlan{
			Name:         v.Name,
			Index:        v.Index,
			Discriminant: discriminant,
			Fields:       fields,
		})
	}

	p := &EnumPlan{
		TypeName:  spec.Name,
		Namespace: global.Namespace,
		Repr:      global.Repr,
		Variants:  variants,
	}
	if err := p.validateDiscriminants(); err != nil {
		return nil, err
	}
	return p, nil
}

// deriveFields resolves each field's policy against its outer scope and
// binds it to a codec. Skip-marked fields additionally require the codec
// to supply a default value; that capability is checked here, at
// derivation time, never during decode.
func deriveFields(typeName, memberPrefix string, outer attr.Set, fields []schema.FieldSpec, ctx policy.Context, reg *codec.Registry) ([]FieldPlan, error) {
	out := make([]FieldPlan, 0, len(fields))
	for _, f := range fields {
		member, err := policy.ResolveMember(outer, f.Attrs, ctx)
		if err != nil {
			return nil, err
		}

		c, ok := reg.Lookup(f.Type)
		if !ok {
			return nil, &BindingError{
				Err:       ErrUnboundType,
				TypeName:  typeName,
				Member:    memberPrefix + f.Name,
				ValueType: f.Type,
				Namespace: reg.Name(),
			}
		}
		if member.Skip {
			if _, ok := c.(codec.Defaulter); !ok {
				return nil, &BindingError{
					Err:       ErrNoDefault,
					TypeName:  typeName,
					Member:    memberPrefix + f.Name,
					ValueType: f.Type,
					Namespace: reg.Name(),
				}
			}
		}

		out = append(out, FieldPlan{
			Name:  f.Name,
			Index: f.Index,
			Type:  f.Type,
			Skip:  member.Skip,
		})
	}
	return out, nil
}
