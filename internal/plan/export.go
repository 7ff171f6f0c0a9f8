package plan

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// File is the serialized handoff artifact for external code emitters: all
// plans derived from one definition source, grouped by kind.
type File struct {
	Structs []*StructPlan `json:"structs,omitempty" cbor:"structs,omitempty"`
	Enums   []*EnumPlan   `json:"enums,omitempty" cbor:"enums,omitempty"`
}

// NewFile groups plans into a File, preserving their order within each
// kind.
func NewFile(plans []Plan) (*File, error) {
	f := &File{}
	for _, p := range plans {
		switch p := p.(type) {
		case *StructPlan:
			f.Structs = append(f.Structs, p)
		case *EnumPlan:
			f.Enums = append(f.Enums, p)
		default:
			return nil, fmt.Errorf("plan: unknown plan type %T", p)
		}
	}
	return f, nil
}

// EncodeJSON writes the file as indented JSON.
func (f *File) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// EncodeCBOR writes the file in canonical CBOR, byte-identical for equal
// plan sets.
func (f *File) EncodeCBOR(w io.Writer) error {
	opts := cbor.CanonicalEncOptions()
	em, err := opts.EncMode()
	if err != nil {
		return err
	}
	return em.NewEncoder(w).Encode(f)
}
