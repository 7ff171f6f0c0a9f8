// Package plan derives codec plans from type specifications: the abstract,
// language-neutral description of a type's encode/decode procedure that an
// external code emitter consumes. Derivation is pure; a plan, once
// returned, is never mutated.
package plan

import (
	"github.com/youkchan/strict-encoding-derive/internal/policy"
)

// Plan is either a StructPlan or an EnumPlan.
type Plan interface {
	// Name returns the planned type's name.
	Name() string
	// Digest returns the plan's stable fingerprint.
	Digest() [32]byte
}

// FieldPlan is the derived encode/decode rule for one member field.
// Skip-marked fields stay in the plan: they contribute zero wire bytes
// and decode to their codec's default value.
type FieldPlan struct {
	Name  string `json:"name" cbor:"name"`
	Index int    `json:"index" cbor:"index"`
	Type  string `json:"type" cbor:"type"`
	Skip  bool   `json:"skip,omitempty" cbor:"skip,omitempty"`
}

// StructPlan describes a struct's wire form: the concatenation of its
// active fields' encodings in declaration order, no padding, no prefix.
type StructPlan struct {
	TypeName  string      `json:"name" cbor:"name"`
	Namespace string      `json:"namespace" cbor:"namespace"`
	Fields    []FieldPlan `json:"fields" cbor:"fields"`
}

func (p *StructPlan) Name() string { return p.TypeName }

// VariantPlan is one dispatchable enum variant with its assigned
// discriminant. Skip-marked variants never appear here.
type VariantPlan struct {
	Name         string      `json:"name" cbor:"name"`
	Index        int         `json:"index" cbor:"index"`
	Discriminant uint64      `json:"discriminant" cbor:"discriminant"`
	Fields       []FieldPlan `json:"fields" cbor:"fields"`
}

// EnumPlan describes an enum's wire form: a fixed-width discriminant of
// Repr bytes followed by the selected variant's field encodings.
type EnumPlan struct {
	TypeName  string        `json:"name" cbor:"name"`
	Namespace string        `json:"namespace" cbor:"namespace"`
	Repr      policy.Repr   `json:"repr" cbor:"repr"`
	Variants  []VariantPlan `json:"variants" cbor:"variants"`
}

func (p *EnumPlan) Name() string { return p.TypeName }

// Variant returns the dispatchable variant with the given discriminant.
func (p *EnumPlan) Variant(discriminant uint64) (*VariantPlan, bool) {
	for i := range p.Variants {
		if p.Variants[i].Discriminant == discriminant {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// VariantByName returns the dispatchable variant with the given name.
func (p *EnumPlan) VariantByName(name string) (*VariantPlan, bool) {
	for i := range p.Variants {
		if p.Variants[i].Name == name {
			return &p.Variants[i], true
		}
	}
	return nil, false
}
