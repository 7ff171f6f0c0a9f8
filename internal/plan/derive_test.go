package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youkchan/strict-encoding-derive/internal/attr"
	"github.com/youkchan/strict-encoding-derive/internal/codec"
	"github.com/youkchan/strict-encoding-derive/internal/policy"
	"github.com/youkchan/strict-encoding-derive/internal/schema"
	"github.com/youkchan/strict-encoding-derive/internal/wire"
)

func structSpec(name string, attrs attr.Set, fields ...schema.FieldSpec) *schema.TypeSpec {
	for i := range fields {
		fields[i].Index = i
	}
	return &schema.TypeSpec{Name: name, Kind: schema.KindStruct, Attrs: attrs, Fields: fields}
}

func enumSpec(name string, attrs attr.Set, variants ...schema.VariantSpec) *schema.TypeSpec {
	for i := range variants {
		variants[i].Index = i
	}
	return &schema.TypeSpec{Name: name, Kind: schema.KindEnum, Attrs: attrs, Variants: variants}
}

func field(name, typ string, attrs attr.Set) schema.FieldSpec {
	return schema.FieldSpec{Name: name, Type: typ, Attrs: attrs}
}

func variant(name string, ordinal uint64, attrs attr.Set, fields ...schema.FieldSpec) schema.VariantSpec {
	for i := range fields {
		fields[i].Index = i
	}
	return schema.VariantSpec{Name: name, Ordinal: ordinal, Fields: fields, Attrs: attrs}
}

func TestDeriveStruct(t *testing.T) {
	spec := structSpec("Frame", nil,
		field("id", "u32", nil),
		field("secret", "str", attr.Set{"skip": attr.Flag()}),
		field("body", "bytes", nil),
	)

	p, err := DeriveStruct(spec)
	require.NoError(t, err)
	assert.Equal(t, "Frame", p.TypeName)
	assert.Equal(t, policy.DefaultNamespace, p.Namespace)
	require.Len(t, p.Fields, 3)

	assert.Equal(t, FieldPlan{Name: "id", Index: 0, Type: "u32"}, p.Fields[0])
	assert.Equal(t, FieldPlan{Name: "secret", Index: 1, Type: "str", Skip: true}, p.Fields[1])
	assert.Equal(t, FieldPlan{Name: "body", Index: 2, Type: "bytes"}, p.Fields[2])
}

func TestDeriveStructEmpty(t *testing.T) {
	p, err := DeriveStruct(structSpec("Unit", nil))
	require.NoError(t, err)
	assert.Empty(t, p.Fields)
}

func TestDeriveEnumDeclarationOrder(t *testing.T) {
	spec := enumSpec("Color", nil,
		variant("Red", 0, nil),
		variant("Green", 0, nil),
		variant("Blue", 0, nil),
	)

	p, err := DeriveEnum(spec)
	require.NoError(t, err)
	assert.Equal(t, policy.ReprU8, p.Repr)
	require.Len(t, p.Variants, 3)
	for i, want := range []uint64{0, 1, 2} {
		assert.Equal(t, want, p.Variants[i].Discriminant)
	}
}

func TestDeriveEnumExplicitValue(t *testing.T) {
	// An explicit value wins irrespective of declaration position.
	spec := enumSpec("Status", nil,
		variant("Ok", 0, nil),
		variant("Custom", 0, attr.Set{"value": attr.Int(200)}),
		variant("Gone", 0, nil),
	)

	p, err := DeriveEnum(spec)
	require.NoError(t, err)
	require.Len(t, p.Variants, 3)
	assert.Equal(t, uint64(0), p.Variants[0].Discriminant)
	assert.Equal(t, uint64(200), p.Variants[1].Discriminant)
	assert.Equal(t, uint64(2), p.Variants[2].Discriminant)
}

func TestDeriveEnumByNativeOrdinal(t *testing.T) {
	spec := enumSpec("Opcode", attr.Set{"by_value": attr.Flag()},
		variant("Connect", 10, nil),
		variant("Publish", 30, nil),
	)

	p, err := DeriveEnum(spec)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), p.Variants[0].Discriminant)
	assert.Equal(t, uint64(30), p.Variants[1].Discriminant)
}

func TestDeriveEnumSkipVariantExcluded(t *testing.T) {
	spec := enumSpec("Msg", nil,
		variant("A", 0, nil),
		variant("Internal", 0, attr.Set{"skip": attr.Flag()}),
		variant("B", 0, nil),
	)

	p, err := DeriveEnum(spec)
	require.NoError(t, err)
	require.Len(t, p.Variants, 2)
	assert.Equal(t, "A", p.Variants[0].Name)
	assert.Equal(t, "B", p.Variants[1].Name)
	// The skipped variant's declaration index still counts for the
	// others' discriminants.
	assert.Equal(t, uint64(0), p.Variants[0].Discriminant)
	assert.Equal(t, uint64(2), p.Variants[1].Discriminant)

	_, ok := p.VariantByName("Internal")
	assert.False(t, ok)
}

func TestDeriveEnumDuplicateDiscriminant(t *testing.T) {
	spec := enumSpec("Bad", nil,
		variant("A", 0, nil),
		variant("B", 0, attr.Set{"value": attr.Int(0)}),
	)

	_, err := DeriveEnum(spec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateDiscriminant)

	var discErr *DiscriminantError
	require.ErrorAs(t, err, &discErr)
	assert.Equal(t, uint64(0), discErr.Value)
	assert.Equal(t, "A", discErr.Prior)
	assert.Equal(t, "B", discErr.Variant)
}

func TestDeriveEnumDiscriminantOverflow(t *testing.T) {
	spec := enumSpec("Wide", nil,
		variant("Big", 0, attr.Set{"value": attr.Int(300)}),
	)

	_, err := DeriveEnum(spec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDiscriminantOverflow)

	// The same value fits once the repr is widened.
	spec = enumSpec("Wide", attr.Set{"repr": attr.Ident("u16")},
		variant("Big", 0, attr.Set{"value": attr.Int(300)}),
	)
	p, err := DeriveEnum(spec)
	require.NoError(t, err)
	assert.Equal(t, policy.ReprU16, p.Repr)
	assert.Equal(t, uint64(300), p.Variants[0].Discriminant)
}

func TestDeriveEnumMutualExclusionDetected(t *testing.T) {
	spec := enumSpec("Conflicted", attr.Set{"by_value": attr.Flag()},
		variant("A", 0, attr.Set{"by_order": attr.Flag()}),
	)
	_, err := DeriveEnum(spec)
	require.Error(t, err)
	assert.ErrorIs(t, err, attr.ErrMutuallyExclusive)
}

func TestDeriveUnknownNamespace(t *testing.T) {
	spec := structSpec("Lost", attr.Set{"crate": attr.Ident("nowhere")},
		field("id", "u32", nil),
	)
	_, err := DeriveStruct(spec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownNamespace)

	var nsErr *NamespaceError
	require.ErrorAs(t, err, &nsErr)
	assert.Equal(t, "nowhere", nsErr.Namespace)
}

func TestDeriveUnboundValueType(t *testing.T) {
	spec := structSpec("Odd", nil, field("x", "quaternion", nil))
	_, err := DeriveStruct(spec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnboundType)

	var bindErr *BindingError
	require.ErrorAs(t, err, &bindErr)
	assert.Equal(t, "quaternion", bindErr.ValueType)
	assert.Equal(t, "x", bindErr.Member)
}

// defaultless is a codec with no Default, for skip capability tests.
type defaultless struct{}

func (defaultless) Encode(w *wire.Writer, v any) (int, error) { return 0, nil }
func (defaultless) Decode(r *wire.Reader) (any, error)        { return nil, nil }

func TestDeriveSkipRequiresDefault(t *testing.T) {
	reg := codec.NewRegistry("no-defaults")
	reg.MustRegister("opaque", defaultless{})
	require.NoError(t, codec.RegisterNamespace(reg))

	spec := structSpec("Guarded", attr.Set{"crate": attr.Ident("no-defaults")},
		field("blob", "opaque", attr.Set{"skip": attr.Flag()}),
	)
	_, err := DeriveStruct(spec)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoDefault)

	// Without the skip marker the same binding is fine.
	spec = structSpec("Guarded", attr.Set{"crate": attr.Ident("no-defaults")},
		field("blob", "opaque", nil),
	)
	_, err = DeriveStruct(spec)
	require.NoError(t, err)
}

func TestDeriveKindMismatch(t *testing.T) {
	s := structSpec("S", nil)
	e := enumSpec("E", nil, variant("A", 0, nil))
	_, err := DeriveStruct(e)
	assert.Error(t, err)
	_, err = DeriveEnum(s)
	assert.Error(t, err)
}

func TestDigestStability(t *testing.T) {
	spec := enumSpec("Color", nil,
		variant("Red", 0, nil),
		variant("Green", 0, nil),
	)
	p1, err := DeriveEnum(spec)
	require.NoError(t, err)
	p2, err := DeriveEnum(spec)
	require.NoError(t, err)
	assert.Equal(t, p1.Digest(), p2.Digest(), "same plan, same digest")

	changed := enumSpec("Color", attr.Set{"repr": attr.Ident("u16")},
		variant("Red", 0, nil),
		variant("Green", 0, nil),
	)
	p3, err := DeriveEnum(changed)
	require.NoError(t, err)
	assert.NotEqual(t, p1.Digest(), p3.Digest(), "repr change must change the digest")
}
