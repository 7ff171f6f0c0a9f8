package wire

import (
	"encoding/binary"
	"io"
	"unicode/utf8"
)

// Reader decodes strict-format primitives from an io.Reader, consuming
// the input strictly in order with no look-ahead. Like Writer it is
// sticky on the first error: every later call returns that error.
type Reader struct {
	r   io.Reader
	err error
	n   int
}

// NewReader returns a Reader over r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Error returns the first error recorded during reading, if any.
func (r *Reader) Error() error { return r.err }

// BytesRead returns the number of bytes successfully consumed so far.
func (r *Reader) BytesRead() int { return r.n }

func (r *Reader) recordError(err error) {
	if r.err == nil && err != nil {
		r.err = err
	}
}

func (r *Reader) read(p []byte) error {
	if r.err != nil {
		return r.err
	}
	n, err := io.ReadFull(r.r, p)
	r.n += n
	if err != nil {
		// A short read mid-value is truncated input, not a clean end.
		if err == io.EOF && n > 0 {
			err = io.ErrUnexpectedEOF
		}
		r.recordError(err)
		return err
	}
	return nil
}

// ReadU8 reads a single byte.
func (r *Reader) ReadU8() (uint8, error) {
	var buf [1]byte
	if err := r.read(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// ReadU16 reads a little-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	var buf [2]byte
	if err := r.read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	var buf [4]byte
	if err := r.read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadU64 reads a little-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	var buf [8]byte
	if err := r.read(buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

// ReadUintN reads a little-endian unsigned integer of the given width in
// bytes (1, 2, 4 or 8), widened to uint64.
func (r *Reader) ReadUintN(width int) (uint64, error) {
	if r.err != nil {
		return 0, r.err
	}
	switch width {
	case 1:
		v, err := r.ReadU8()
		return uint64(v), err
	case 2:
		v, err := r.ReadU16()
		return uint64(v), err
	case 4:
		v, err := r.ReadU32()
		return uint64(v), err
	case 8:
		return r.ReadU64()
	default:
		r.recordError(ErrWidth)
		return 0, r.err
	}
}

// ReadBool reads a boolean byte, rejecting anything but 0x00 and 0x01.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadU8()
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		r.recordError(ErrInvalidBool)
		return false, r.err
	}
}

// ReadString reads a u16 length prefix and that many UTF-8 bytes.
func (r *Reader) ReadString() (string, error) {
	size, err := r.ReadU16()
	if err != nil {
		return "", err
	}
	if size == 0 {
		return "", nil
	}
	buf := make([]byte, size)
	if err := r.read(buf); err != nil {
		return "", err
	}
	if !utf8.Valid(buf) {
		r.recordError(ErrInvalidUTF8)
		return "", r.err
	}
	return string(buf), nil
}

// ReadBytes reads a u16 length prefix and that many raw bytes.
func (r *Reader) ReadBytes() ([]byte, error) {
	size, err := r.ReadU16()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, size)
	if size == 0 {
		return buf, nil
	}
	if err := r.read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}
