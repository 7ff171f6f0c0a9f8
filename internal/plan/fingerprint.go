package plan

import (
	"bytes"

	"github.com/zeebo/blake3"

	"github.com/youkchan/strict-encoding-derive/internal/wire"
)

// Plan fingerprints give emitters and caches a stable identity for a
// derived plan: two plans with the same digest imply the same wire form.
// The digest is a blake3 hash over a canonical binary rendering of the
// plan, built with the same wire primitives the format itself uses.

const (
	fpStruct = 0x01
	fpEnum   = 0x02
)

// Digest returns the struct plan's fingerprint.
func (p *StructPlan) Digest() [32]byte {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	w.WriteU8(fpStruct)
	w.WriteString(p.TypeName)
	w.WriteString(p.Namespace)
	writeFieldPlans(w, p.Fields)
	return blake3.Sum256(buf.Bytes())
}

// Digest returns the enum plan's fingerprint.
func (p *EnumPlan) Digest() [32]byte {
	var buf bytes.Buffer
	w := wire.NewWriter(&buf)
	w.WriteU8(fpEnum)
	w.WriteString(p.TypeName)
	w.WriteString(p.Namespace)
	w.WriteU8(uint8(p.Repr.Width()))
	w.WriteU32(uint32(len(p.Variants)))
	for _, v := range p.Variants {
		w.WriteString(v.Name)
		w.WriteU32(uint32(v.Index))
		w.WriteU64(v.Discriminant)
		writeFieldPlans(w, v.Fields)
	}
	return blake3.Sum256(buf.Bytes())
}

func writeFieldPlans(w *wire.Writer, fields []FieldPlan) {
	w.WriteU32(uint32(len(fields)))
	for _, f := range fields {
		w.WriteString(f.Name)
		w.WriteU32(uint32(f.Index))
		w.WriteString(f.Type)
		w.WriteBool(f.Skip)
	}
}
