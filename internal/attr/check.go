package attr

import "sort"

type reqKind int

const (
	reqOptional reqKind = iota
	reqDefault
	reqProhibited
)

// Req describes the requirement placed on one recognized attribute key
// within a scope's requirement table.
type Req struct {
	kind reqKind
	// Default is the value substituted at extraction time when the key is
	// absent. Only set for RequiredWithDefault requirements.
	Default Value
	// Class is the value class the key must carry when present.
	Class Class
}

// Optional recognizes a key that may be absent; when present its value
// must belong to the given class.
func Optional(c Class) Req { return Req{kind: reqOptional, Class: c} }

// RequiredWithDefault recognizes a key that is always resolvable: when
// absent the given default stands in at extraction time.
func RequiredWithDefault(def Value) Req {
	return Req{kind: reqDefault, Default: def, Class: def.Class}
}

// Prohibited recognizes a key whose presence in this scope is an error.
func Prohibited() Req { return Req{kind: reqProhibited} }

// Prohibited reports whether the requirement forbids the key entirely.
func (r Req) Prohibited() bool { return r.kind == reqProhibited }

// HasDefault reports whether the requirement supplies a fallback value.
func (r Req) HasDefault() bool { return r.kind == reqDefault }

// Table is the per-scope requirement table: the full list of recognized
// keys and the constraint on each. Keys not in the table are unrecognized.
type Table map[string]Req

// Check validates the set against the table. It rejects unrecognized
// keys, prohibited-but-present keys and wrong value classes, naming the
// offending key and scope. The set itself is never modified; defaults
// are applied later, at policy extraction.
func (s Set) Check(tbl Table, scope string) error {
	// Deterministic error selection regardless of map iteration order.
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		req, ok := tbl[k]
		if !ok {
			return &KeyError{Err: ErrUnrecognizedKey, Key: k, Scope: scope}
		}
		if req.Prohibited() {
			return &KeyError{Err: ErrProhibitedKey, Key: k, Scope: scope}
		}
		if v := s[k]; v.Class != req.Class {
			return &KeyError{Err: ErrWrongValueClass, Key: k, Scope: scope, Want: req.Class, Got: v.Class}
		}
	}
	return nil
}

// CheckExclusive fails when both keys are present in the set. It runs on
// merged sets: inheritance can introduce a conflict that neither scope
// had on its own.
func (s Set) CheckExclusive(keyA, keyB, scope string) error {
	if s.Has(keyA) && s.Has(keyB) {
		return &ExclusionError{KeyA: keyA, KeyB: keyB, Scope: scope}
	}
	return nil
}
