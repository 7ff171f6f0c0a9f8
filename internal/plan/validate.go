package plan

// validateDiscriminants rejects a derived enum plan whose dispatch table
// is ambiguous or unrepresentable: two variants sharing a discriminant,
// or a discriminant outside the repr's range. The derivation algorithm
// itself cannot produce a safe plan in either case, so both fail rather
// than letting first-match-wins decide.
func (p *EnumPlan) validateDiscriminants() error {
	seen := make(map[uint64]string, len(p.Variants))
	for _, v := range p.Variants {
		if v.Discriminant > p.Repr.Max() {
			return &DiscriminantError{
				Err:      ErrDiscriminantOverflow,
				TypeName: p.TypeName,
				Variant:  v.Name,
				Value:    v.Discriminant,
				Repr:     p.Repr,
			}
		}
		if prior, dup := seen[v.Discriminant]; dup {
			return &DiscriminantError{
				Err:      ErrDuplicateDiscriminant,
				TypeName: p.TypeName,
				Variant:  v.Name,
				Prior:    prior,
				Value:    v.Discriminant,
				Repr:     p.Repr,
			}
		}
		seen[v.Discriminant] = v.Name
	}
	return nil
}
