// Package attr models the raw declarative attributes attached to a type,
// field or variant: a set of key/value requests plus the requirement tables
// they are validated against. Values are already tokenized; this package
// never sees attribute source text.
package attr

import "fmt"

// Class identifies the value class an attribute key carries.
type Class int

const (
	// ClassFlag marks a bare key with no value (presence only).
	ClassFlag Class = iota
	// ClassIdent marks an identifier or identifier-path value.
	ClassIdent
	// ClassInt marks an unsigned integer literal value.
	ClassInt
)

func (c Class) String() string {
	switch c {
	case ClassFlag:
		return "flag"
	case ClassIdent:
		return "identifier"
	case ClassInt:
		return "integer"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Value is a single tokenized attribute value.
type Value struct {
	Class Class
	Ident string // set when Class == ClassIdent
	Int   uint64 // set when Class == ClassInt
}

// Flag returns the value of a bare marker attribute.
func Flag() Value { return Value{Class: ClassFlag} }

// Ident returns an identifier-valued attribute value.
func Ident(s string) Value { return Value{Class: ClassIdent, Ident: s} }

// Int returns an integer-valued attribute value.
func Int(v uint64) Value { return Value{Class: ClassInt, Int: v} }

// Set holds one scope's attribute requests, keyed by attribute name.
// Sets are treated as immutable once built: Merge and Without return
// fresh sets and never mutate their receivers or arguments.
type Set map[string]Value

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Has reports whether the key is present in the set.
func (s Set) Has(key string) bool {
	_, ok := s[key]
	return ok
}

// Without returns a copy of the set with the given keys removed.
func (s Set) Without(keys ...string) Set {
	out := s.Clone()
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// Merge combines an outer scope's attributes with an inner scope's.
// Inner keys shadow same-named outer keys. Neither argument is mutated.
func Merge(outer, inner Set) Set {
	out := make(Set, len(outer)+len(inner))
	for k, v := range outer {
		out[k] = v
	}
	for k, v := range inner {
		out[k] = v
	}
	return out
}
