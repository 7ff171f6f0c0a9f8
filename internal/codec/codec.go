// Package codec defines the value-codec contract every struct field and
// variant field binds to, and the named codec namespaces a type's crate
// attribute selects from. Namespace selection happens at derivation time;
// at encode/decode time a plan only ever sees concrete Codec values.
package codec

import (
	"github.com/youkchan/strict-encoding-derive/internal/wire"
)

// Codec is the recursive base case of the strict format: one value type's
// own encode and decode routines. Encode reports the byte count it wrote
// so composite encoders can accumulate totals; Decode consumes exactly the
// bytes the value needs, in order, with no look-ahead.
type Codec interface {
	Encode(w *wire.Writer, v any) (int, error)
	Decode(r *wire.Reader) (any, error)
}

// Defaulter is the optional capability a codec must provide before its
// type may appear in a skip-marked position: the value a skipped member
// is repopulated with on decode. Checked at derivation time, not
// discovered mid-stream.
type Defaulter interface {
	Default() any
}
