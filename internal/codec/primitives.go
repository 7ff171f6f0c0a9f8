package codec

import (
	"errors"
	"fmt"

	"github.com/youkchan/strict-encoding-derive/internal/wire"
)

// ErrValueType indicates a value handed to a codec whose Go type does not
// match the codec's wire type.
var ErrValueType = errors.New("codec: value has wrong type")

func typeErr(want string, got any) error {
	return fmt.Errorf("%w: want %s, got %T", ErrValueType, want, got)
}

// The default namespace every type binds to unless its crate attribute
// says otherwise. Name must match policy.DefaultNamespace.
const defaultNamespace = "strict"

func init() {
	r := NewRegistry(defaultNamespace)
	r.MustRegister("bool", BoolCodec{})
	r.MustRegister("u8", U8Codec{})
	r.MustRegister("u16", U16Codec{})
	r.MustRegister("u32", U32Codec{})
	r.MustRegister("u64", U64Codec{})
	r.MustRegister("i8", I8Codec{})
	r.MustRegister("i16", I16Codec{})
	r.MustRegister("i32", I32Codec{})
	r.MustRegister("i64", I64Codec{})
	r.MustRegister("str", StringCodec{})
	r.MustRegister("bytes", BytesCodec{})
	if err := RegisterNamespace(r); err != nil {
		panic(err)
	}
}

// countWrite runs fn against the writer and returns the byte delta.
func countWrite(w *wire.Writer, fn func()) (int, error) {
	before := w.BytesWritten()
	fn()
	if err := w.Error(); err != nil {
		return 0, err
	}
	return w.BytesWritten() - before, nil
}

// BoolCodec encodes bool as a single 0x00/0x01 byte.
type BoolCodec struct{}

func (BoolCodec) Encode(w *wire.Writer, v any) (int, error) {
	b, ok := v.(bool)
	if !ok {
		return 0, typeErr("bool", v)
	}
	return countWrite(w, func() { w.WriteBool(b) })
}

func (BoolCodec) Decode(r *wire.Reader) (any, error) { return r.ReadBool() }
func (BoolCodec) Default() any                       { return false }

// U8Codec encodes uint8 as one byte.
type U8Codec struct{}

func (U8Codec) Encode(w *wire.Writer, v any) (int, error) {
	n, ok := v.(uint8)
	if !ok {
		return 0, typeErr("uint8", v)
	}
	return countWrite(w, func() { w.WriteU8(n) })
}

func (U8Codec) Decode(r *wire.Reader) (any, error) { return r.ReadU8() }
func (U8Codec) Default() any                       { return uint8(0) }

// U16Codec encodes uint16 as two little-endian bytes.
type U16Codec struct{}

func (U16Codec) Encode(w *wire.Writer, v any) (int, error) {
	n, ok := v.(uint16)
	if !ok {
		return 0, typeErr("uint16", v)
	}
	return countWrite(w, func() { w.WriteU16(n) })
}

func (U16Codec) Decode(r *wire.Reader) (any, error) { return r.ReadU16() }
func (U16Codec) Default() any                       { return uint16(0) }

// U32Codec encodes uint32 as four little-endian bytes.
type U32Codec struct{}

func (U32Codec) Encode(w *wire.Writer, v any) (int, error) {
	n, ok := v.(uint32)
	if !ok {
		return 0, typeErr("uint32", v)
	}
	return countWrite(w, func() { w.WriteU32(n) })
}

func (U32Codec) Decode(r *wire.Reader) (any, error) { return r.ReadU32() }
func (U32Codec) Default() any                       { return uint32(0) }

// U64Codec encodes uint64 as eight little-endian bytes.
type U64Codec struct{}

func (U64Codec) Encode(w *wire.Writer, v any) (int, error) {
	n, ok := v.(uint64)
	if !ok {
		return 0, typeErr("uint64", v)
	}
	return countWrite(w, func() { w.WriteU64(n) })
}

func (U64Codec) Decode(r *wire.Reader) (any, error) { return r.ReadU64() }
func (U64Codec) Default() any                       { return uint64(0) }

// I8Codec encodes int8 as one two's-complement byte.
type I8Codec struct{}

func (I8Codec) Encode(w *wire.Writer, v any) (int, error) {
	n, ok := v.(int8)
	if !ok {
		return 0, typeErr("int8", v)
	}
	return countWrite(w, func() { w.WriteU8(uint8(n)) })
}

func (I8Codec) Decode(r *wire.Reader) (any, error) {
	v, err := r.ReadU8()
	return int8(v), err
}
func (I8Codec) Default() any { return int8(0) }

// I16Codec encodes int16 as two little-endian two's-complement bytes.
type I16Codec struct{}

func (I16Codec) Encode(w *wire.Writer, v any) (int, error) {
	n, ok := v.(int16)
	if !ok {
		return 0, typeErr("int16", v)
	}
	return countWrite(w, func() { w.WriteU16(uint16(n)) })
}

func (I16Codec) Decode(r *wire.Reader) (any, error) {
	v, err := r.ReadU16()
	return int16(v), err
}
func (I16Codec) Default() any { return int16(0) }

// I32Codec encodes int32 as four little-endian two's-complement bytes.
type I32Codec struct{}

func (I32Codec) Encode(w *wire.Writer, v any) (int, error) {
	n, ok := v.(int32)
	if !ok {
		return 0, typeErr("int32", v)
	}
	return countWrite(w, func() { w.WriteU32(uint32(n)) })
}

func (I32Codec) Decode(r *wire.Reader) (any, error) {
	v, err := r.ReadU32()
	return int32(v), err
}
func (I32Codec) Default() any { return int32(0) }

// I64Codec encodes int64 as eight little-endian two's-complement bytes.
type I64Codec struct{}

func (I64Codec) Encode(w *wire.Writer, v any) (int, error) {
	n, ok := v.(int64)
	if !ok {
		return 0, typeErr("int64", v)
	}
	return countWrite(w, func() { w.WriteU64(uint64(n)) })
}

func (I64Codec) Decode(r *wire.Reader) (any, error) {
	v, err := r.ReadU64()
	return int64(v), err
}
func (I64Codec) Default() any { return int64(0) }

// StringCodec encodes string with a u16 length prefix.
type StringCodec struct{}

func (StringCodec) Encode(w *wire.Writer, v any) (int, error) {
	s, ok := v.(string)
	if !ok {
		return 0, typeErr("string", v)
	}
	return countWrite(w, func() { w.WriteString(s) })
}

func (StringCodec) Decode(r *wire.Reader) (any, error) { return r.ReadString() }
func (StringCodec) Default() any                       { return "" }

// BytesCodec encodes []byte with a u16 length prefix.
type BytesCodec struct{}

func (BytesCodec) Encode(w *wire.Writer, v any) (int, error) {
	b, ok := v.([]byte)
	if !ok {
		return 0, typeErr("[]byte", v)
	}
	return countWrite(w, func() { w.WriteBytes(b) })
}

func (BytesCodec) Decode(r *wire.Reader) (any, error) { return r.ReadBytes() }
func (BytesCodec) Default() any                       { return []byte{} }
