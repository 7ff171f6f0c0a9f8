package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/youkchan/strict-encoding-derive/internal/attr"
)

func TestResolveGlobalDefaults(t *testing.T) {
	p, err := ResolveGlobal(attr.Set{}, EnumGlobal)
	require.NoError(t, err)
	assert.Equal(t, DefaultNamespace, p.Namespace)
	assert.Equal(t, ReprU8, p.Repr)
	assert.Equal(t, ByDeclarationOrder, p.Mode)
	assert.False(t, p.Skip)
}

func TestResolveGlobalOverrides(t *testing.T) {
	p, err := ResolveGlobal(attr.Set{
		KeyCrate:   attr.Ident("custom"),
		KeyRepr:    attr.Ident("u16"),
		KeyByValue: attr.Flag(),
	}, EnumGlobal)
	require.NoError(t, err)
	assert.Equal(t, "custom", p.Namespace)
	assert.Equal(t, ReprU16, p.Repr)
	assert.Equal(t, ByNativeOrdinal, p.Mode)
}

func TestResolveGlobalSkipProhibited(t *testing.T) {
	for _, ctx := range []Context{StructGlobal, EnumGlobal} {
		t.Run(ctx.String(), func(t *testing.T) {
			_, err := ResolveGlobal(attr.Set{KeySkip: attr.Flag()}, ctx)
			require.Error(t, err)
			assert.ErrorIs(t, err, attr.ErrProhibitedKey)
		})
	}
}

func TestResolveGlobalInvalidRepr(t *testing.T) {
	// Wrongly named repr fails even though no variant would overflow.
	for _, ident := range []string{"i32", "u128", "usize", "byte"} {
		_, err := ResolveGlobal(attr.Set{KeyRepr: attr.Ident(ident)}, EnumGlobal)
		require.Error(t, err, "repr %q", ident)
		assert.ErrorIs(t, err, ErrInvalidRepr)
	}
}

func TestResolveGlobalReprNotRecognizedOnStruct(t *testing.T) {
	_, err := ResolveGlobal(attr.Set{KeyRepr: attr.Ident("u8")}, StructGlobal)
	require.Error(t, err)
	assert.ErrorIs(t, err, attr.ErrUnrecognizedKey)
}

func TestResolveMemberSkip(t *testing.T) {
	p, err := ResolveMember(attr.Set{}, attr.Set{KeySkip: attr.Flag()}, StructField)
	require.NoError(t, err)
	assert.True(t, p.Skip)

	p, err = ResolveMember(attr.Set{}, attr.Set{}, StructField)
	require.NoError(t, err)
	assert.False(t, p.Skip)
}

func TestResolveMemberGlobalOnlyKeysStripped(t *testing.T) {
	// crate and repr from the type scope must not leak into member
	// validation, which prohibits them.
	outer := attr.Set{KeyCrate: attr.Ident("custom"), KeyRepr: attr.Ident("u32")}
	p, err := ResolveMember(outer, attr.Set{}, EnumVariant)
	require.NoError(t, err)
	assert.Equal(t, ByDeclarationOrder, p.Mode)
}

func TestResolveMemberLocalCrateProhibited(t *testing.T) {
	_, err := ResolveMember(attr.Set{}, attr.Set{KeyCrate: attr.Ident("x")}, StructField)
	require.Error(t, err)
	assert.ErrorIs(t, err, attr.ErrProhibitedKey)
}

func TestResolveMemberExplicitValue(t *testing.T) {
	p, err := ResolveMember(attr.Set{}, attr.Set{KeyValue: attr.Int(200)}, EnumVariant)
	require.NoError(t, err)
	assert.Equal(t, ExplicitValue, p.Mode)
	assert.Equal(t, uint64(200), p.Explicit)
}

func TestResolveMemberExplicitValueOverridesInheritedMode(t *testing.T) {
	// Type-global by_value inherits into the variant, but an explicit
	// value attribute wins over both modes.
	outer := attr.Set{KeyByValue: attr.Flag()}
	p, err := ResolveMember(outer, attr.Set{KeyValue: attr.Int(9)}, EnumVariant)
	require.NoError(t, err)
	assert.Equal(t, ExplicitValue, p.Mode)
	assert.Equal(t, uint64(9), p.Explicit)
}

func TestResolveMemberInheritedConflict(t *testing.T) {
	// Neither scope conflicts alone; the merge introduces the conflict.
	outer := attr.Set{KeyByValue: attr.Flag()}
	local := attr.Set{KeyByOrder: attr.Flag()}
	_, err := ResolveMember(outer, local, EnumVariant)
	require.Error(t, err)
	assert.ErrorIs(t, err, attr.ErrMutuallyExclusive)
}

func TestResolveMemberBothMarkersLocal(t *testing.T) {
	local := attr.Set{KeyByValue: attr.Flag(), KeyByOrder: attr.Flag()}
	_, err := ResolveMember(attr.Set{}, local, EnumVariant)
	require.Error(t, err)
	assert.ErrorIs(t, err, attr.ErrMutuallyExclusive)
}

func TestResolveMemberValueNotRecognizedOnStructField(t *testing.T) {
	_, err := ResolveMember(attr.Set{}, attr.Set{KeyValue: attr.Int(1)}, StructField)
	require.Error(t, err)
	assert.ErrorIs(t, err, attr.ErrUnrecognizedKey)
}

func TestResolveContextMisuse(t *testing.T) {
	_, err := ResolveGlobal(attr.Set{}, StructField)
	require.Error(t, err)
	_, err = ResolveMember(attr.Set{}, attr.Set{}, EnumGlobal)
	require.Error(t, err)
}

func TestReprWidths(t *testing.T) {
	tests := []struct {
		repr  Repr
		width int
		max   uint64
	}{
		{ReprU8, 1, 0xFF},
		{ReprU16, 2, 0xFFFF},
		{ReprU32, 4, 0xFFFFFFFF},
		{ReprU64, 8, ^uint64(0)},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.width, tt.repr.Width(), tt.repr.String())
		assert.Equal(t, tt.max, tt.repr.Max(), tt.repr.String())
	}
}
