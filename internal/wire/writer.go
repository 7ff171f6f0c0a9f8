// Package wire implements the byte-level primitives of the strict binary
// format: fixed-width little-endian integers, u16-length-prefixed strings
// and byte slices, no tags, no padding, no alignment. Composite encodings
// are the plain concatenation of member encodings.
package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"unicode/utf8"
)

// MaxPayloadLen caps strings and byte slices; the length prefix is a u16.
const MaxPayloadLen = 1<<16 - 1

// Writer encodes strict-format primitives into an io.Writer. It records
// the first error encountered and turns every later call into a no-op, so
// call sites can chain writes and check Error once. Sink errors propagate
// unwrapped.
type Writer struct {
	w   io.Writer
	err error
	n   int
}

// NewWriter returns a Writer over w. A *bytes.Buffer is the common sink.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Error returns the first error recorded during writing, if any.
func (w *Writer) Error() error { return w.err }

// BytesWritten returns the number of bytes successfully written so far.
func (w *Writer) BytesWritten() int { return w.n }

// Bytes returns the accumulated output when the sink is a *bytes.Buffer,
// nil otherwise or after an error.
func (w *Writer) Bytes() []byte {
	if w.err != nil {
		return nil
	}
	if bb, ok := w.w.(*bytes.Buffer); ok {
		return bb.Bytes()
	}
	return nil
}

func (w *Writer) recordError(err error) {
	if w.err == nil && err != nil {
		w.err = err
	}
}

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	w.n += n
	w.recordError(err)
}

// WriteU8 writes a single byte.
func (w *Writer) WriteU8(v uint8) {
	w.write([]byte{v})
}

// WriteU16 writes a uint16 in little-endian order.
func (w *Writer) WriteU16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	w.write(buf[:])
}

// WriteU32 writes a uint32 in little-endian order.
func (w *Writer) WriteU32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	w.write(buf[:])
}

// WriteU64 writes a uint64 in little-endian order.
func (w *Writer) WriteU64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	w.write(buf[:])
}

// WriteUintN writes v as a little-endian unsigned integer of the given
// width in bytes (1, 2, 4 or 8). Values that do not fit the width fail
// with ErrOverflow; this is how enum discriminants reach the wire.
func (w *Writer) WriteUintN(width int, v uint64) {
	if w.err != nil {
		return
	}
	switch width {
	case 1:
		if v > 0xFF {
			w.recordError(ErrOverflow)
			return
		}
		w.WriteU8(uint8(v))
	case 2:
		if v > 0xFFFF {
			w.recordError(ErrOverflow)
			return
		}
		w.WriteU16(uint16(v))
	case 4:
		if v > 0xFFFFFFFF {
			w.recordError(ErrOverflow)
			return
		}
		w.WriteU32(uint32(v))
	case 8:
		w.WriteU64(v)
	default:
		w.recordError(ErrWidth)
	}
}

// WriteBool writes a boolean as a single 0x00 or 0x01 byte.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

// WriteString writes a u16 length prefix followed by the UTF-8 bytes.
func (w *Writer) WriteString(v string) {
	if w.err != nil {
		return
	}
	if !utf8.ValidString(v) {
		w.recordError(ErrInvalidUTF8)
		return
	}
	if len(v) > MaxPayloadLen {
		w.recordError(ErrTooLarge)
		return
	}
	w.WriteU16(uint16(len(v)))
	w.write([]byte(v))
}

// WriteBytes writes a u16 length prefix followed by the raw bytes.
func (w *Writer) WriteBytes(v []byte) {
	if w.err != nil {
		return
	}
	if len(v) > MaxPayloadLen {
		w.recordError(ErrTooLarge)
		return
	}
	w.WriteU16(uint16(len(v)))
	w.write(v)
}
