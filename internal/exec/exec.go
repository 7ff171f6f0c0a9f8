// Package exec runs derived codec plans over live values: the canonical
// encode and decode algorithms the plans describe. Execution is
// synchronous and streaming; encode emits each active field exactly once
// in declaration order, decode consumes the input strictly in order and
// fails fast on the first error with no resynchronization.
package exec

import (
	"io"

	"github.com/youkchan/strict-encoding-derive/internal/codec"
	"github.com/youkchan/strict-encoding-derive/internal/plan"
	"github.com/youkchan/strict-encoding-derive/internal/wire"
)

// EnumValue is a live enum instance: the variant name plus its captured
// field values keyed by field name.
type EnumValue struct {
	Variant string
	Fields  map[string]any
}

// EncodeStruct writes the struct value to the sink per the plan and
// returns the byte count. Field values are keyed by field name; skip-
// marked fields need no value and contribute zero bytes. A zero-field
// struct encodes to zero bytes.
func EncodeStruct(p *plan.StructPlan, fields map[string]any, sink io.Writer) (int, error) {
	reg, err := namespace(p.TypeName, p.Namespace)
	if err != nil {
		return 0, err
	}
	w := wire.NewWriter(sink)
	if err := encodeFields(w, reg, p.TypeName, p.Fields, fields); err != nil {
		return w.BytesWritten(), err
	}
	return w.BytesWritten(), nil
}

// DecodeStruct reads one struct value from the source per the plan.
// Skip-marked fields consume no input and come back as their codec's
// default. On error no partial value is returned.
func DecodeStruct(p *plan.StructPlan, src io.Reader) (map[string]any, error) {
	reg, err := namespace(p.TypeName, p.Namespace)
	if err != nil {
		return nil, err
	}
	r := wire.NewReader(src)
	return decodeFields(r, reg, p.TypeName, p.Fields)
}

// EncodeEnum writes the enum value to the sink per the plan: the variant's
// discriminant as a fixed-width integer of the plan's repr, then the
// captured fields in declaration order. Skip-excluded variants cannot be
// produced and fail with ErrNoSuchVariant.
func EncodeEnum(p *plan.EnumPlan, v EnumValue, sink io.Writer) (int, error) {
	reg, err := namespace(p.TypeName, p.Namespace)
	if err != nil {
		return 0, err
	}
	vp, ok := p.VariantByName(v.Variant)
	if !ok {
		return 0, &VariantNameError{TypeName: p.TypeName, Variant: v.Variant}
	}

	w := wire.NewWriter(sink)
	w.WriteUintN(p.Repr.Width(), vp.Discriminant)
	if err := w.Error(); err != nil {
		return w.BytesWritten(), err
	}
	if err := encodeFields(w, reg, p.TypeName, vp.Fields, v.Fields); err != nil {
		return w.BytesWritten(), err
	}
	return w.BytesWritten(), nil
}

// DecodeEnum reads one enum value from the source per the plan: one
// repr-width discriminant, then the matching variant's fields. A
// discriminant matching no variant fails with UnknownVariantError
// carrying the raw value; nothing is partially constructed.
func DecodeEnum(p *plan.EnumPlan, src io.Reader) (EnumValue, error) {
	reg, err := namespace(p.TypeName, p.Namespace)
	if err != nil {
		return EnumValue{}, err
	}
	r := wire.NewReader(src)

	raw, err := r.ReadUintN(p.Repr.Width())
	if err != nil {
		return EnumValue{}, err
	}
	vp, ok := p.Variant(raw)
	if !ok {
		return EnumValue{}, &UnknownVariantError{TypeName: p.TypeName, Raw: raw}
	}

	fields, err := decodeFields(r, reg, p.TypeName, vp.Fields)
	if err != nil {
		return EnumValue{}, err
	}
	return EnumValue{Variant: vp.Name, Fields: fields}, nil
}

func namespace(typeName, name string) (*codec.Registry, error) {
	reg, ok := codec.Namespace(name)
	if !ok {
		return nil, &plan.NamespaceError{TypeName: typeName, Namespace: name}
	}
	return reg, nil
}

func encodeFields(w *wire.Writer, reg *codec.Registry, typeName string, plans []plan.FieldPlan, values map[string]any) error {
	for _, f := range plans {
		if f.Skip {
			continue
		}
		c, err := bound(reg, typeName, f)
		if err != nil {
			return err
		}
		v, ok := values[f.Name]
		if !ok {
			return &MissingFieldError{TypeName: typeName, Field: f.Name}
		}
		if _, err := c.Encode(w, v); err != nil {
			return err
		}
	}
	return w.Error()
}

func decodeFields(r *wire.Reader, reg *codec.Registry, typeName string, plans []plan.FieldPlan) (map[string]any, error) {
	out := make(map[string]any, len(plans))
	for _, f := range plans {
		c, err := bound(reg, typeName, f)
		if err != nil {
			return nil, err
		}
		if f.Skip {
			// Derivation guarantees the capability; see plan.ErrNoDefault.
			out[f.Name] = c.(codec.Defaulter).Default()
			continue
		}
		v, err := c.Decode(r)
		if err != nil {
			return nil, err
		}
		out[f.Name] = v
	}
	return out, nil
}

func bound(reg *codec.Registry, typeName string, f plan.FieldPlan) (codec.Codec, error) {
	c, ok := reg.Lookup(f.Type)
	if !ok {
		return nil, &plan.BindingError{
			Err:       plan.ErrUnboundType,
			TypeName:  typeName,
			Member:    f.Name,
			ValueType: f.Type,
			Namespace: reg.Name(),
		}
	}
	return c, nil
}
