package policy

import (
	"fmt"

	"github.com/youkchan/strict-encoding-derive/internal/attr"
)

// ResolveGlobal resolves a type-global attribute set into the type-level
// policy. The context must be StructGlobal or EnumGlobal. Any validation
// failure aborts immediately; no partial policy is returned.
func ResolveGlobal(attrs attr.Set, ctx Context) (Policy, error) {
	if !ctx.Global() {
		return Policy{}, fmt.Errorf("policy: ResolveGlobal called with member context %s", ctx)
	}
	if err := attrs.Check(ctx.table(), ctx.String()); err != nil {
		return Policy{}, err
	}
	if err := attrs.CheckExclusive(KeyByValue, KeyByOrder, ctx.String()); err != nil {
		return Policy{}, err
	}
	return extract(attrs)
}

// ResolveMember resolves one member scope (a struct field, an enum
// variant, or a field captured by a variant) by merging the outer scope's
// attributes into the member's own. The pipeline is:
//
//  1. validate the local set alone against the context table;
//  2. merge outer into local, local wins on collision;
//  3. strip the type-global-only keys so children consume them once;
//  4. re-validate the merged set;
//  5. extract the policy, with the mutual-exclusion check on the merged
//     set since inheritance can introduce a conflict.
func ResolveMember(outer, local attr.Set, ctx Context) (Policy, error) {
	if ctx.Global() {
		return Policy{}, fmt.Errorf("policy: ResolveMember called with global context %s", ctx)
	}
	if err := local.Check(ctx.table(), ctx.String()); err != nil {
		return Policy{}, err
	}
	merged := attr.Merge(outer, local).Without(KeyCrate, KeyRepr)
	if err := merged.Check(ctx.table(), ctx.String()); err != nil {
		return Policy{}, err
	}
	if err := merged.CheckExclusive(KeyByValue, KeyByOrder, ctx.String()); err != nil {
		return Policy{}, err
	}
	return extract(merged)
}

// extract reads the policy fields out of a validated set. Defaults from
// the requirement table are applied here, never written back into a set.
func extract(attrs attr.Set) (Policy, error) {
	p := Policy{Namespace: DefaultNamespace, Repr: ReprU8}

	if v, ok := attrs[KeyCrate]; ok {
		p.Namespace = v.Ident
	}
	if v, ok := attrs[KeyRepr]; ok {
		repr, err := ReprFromIdent(v.Ident)
		if err != nil {
			return Policy{}, err
		}
		p.Repr = repr
	}

	p.Skip = attrs.Has(KeySkip)

	switch {
	case attrs.Has(KeyValue):
		p.Mode = ExplicitValue
		p.Explicit = attrs[KeyValue].Int
	case attrs.Has(KeyByValue):
		p.Mode = ByNativeOrdinal
	default:
		p.Mode = ByDeclarationOrder
	}

	return p, nil
}
