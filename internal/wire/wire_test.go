package wire

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLittleEndian(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteU16(0x1234)
	w.WriteU32(0xAABBCCDD)
	require.NoError(t, w.Error())
	assert.Equal(t, []byte{0x34, 0x12, 0xDD, 0xCC, 0xBB, 0xAA}, buf.Bytes())
	assert.Equal(t, 6, w.BytesWritten())
}

func TestWriteUintN(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		v       uint64
		want    []byte
		wantErr error
	}{
		{name: "u8", width: 1, v: 200, want: []byte{200}},
		{name: "u16", width: 2, v: 0x0102, want: []byte{0x02, 0x01}},
		{name: "u32", width: 4, v: 1, want: []byte{1, 0, 0, 0}},
		{name: "u64", width: 8, v: 1, want: []byte{1, 0, 0, 0, 0, 0, 0, 0}},
		{name: "u8 overflow", width: 1, v: 256, wantErr: ErrOverflow},
		{name: "u16 overflow", width: 2, v: 1 << 16, wantErr: ErrOverflow},
		{name: "u32 overflow", width: 4, v: 1 << 32, wantErr: ErrOverflow},
		{name: "bad width", width: 3, v: 1, wantErr: ErrWidth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf)
			w.WriteUintN(tt.width, tt.v)
			if tt.wantErr != nil {
				assert.ErrorIs(t, w.Error(), tt.wantErr)
				return
			}
			require.NoError(t, w.Error())
			assert.Equal(t, tt.want, buf.Bytes())
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.WriteString("héllo")
	w.WriteString("")
	require.NoError(t, w.Error())

	r := NewReader(&buf)
	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "héllo", s)
	s, err = r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "", s)
}

func TestWriteStringInvalidUTF8(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})
	w.WriteString(string([]byte{0xFF, 0xFE}))
	assert.ErrorIs(t, w.Error(), ErrInvalidUTF8)
}

func TestReadBoolInvalid(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x02}))
	_, err := r.ReadBool()
	assert.ErrorIs(t, err, ErrInvalidBool)
}

func TestReaderTruncated(t *testing.T) {
	// Mid-value truncation must surface as unexpected EOF, clean end as
	// EOF.
	r := NewReader(bytes.NewReader([]byte{0x01}))
	_, err := r.ReadU32()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	r = NewReader(bytes.NewReader(nil))
	_, err = r.ReadU8()
	assert.ErrorIs(t, err, io.EOF)
}

func TestStickyErrors(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x05}))
	_, err := r.ReadU16()
	require.Error(t, err)
	// Later reads keep failing with the first error.
	_, err2 := r.ReadU8()
	assert.Equal(t, err, err2)

	w := NewWriter(&bytes.Buffer{})
	w.WriteUintN(1, 300)
	require.ErrorIs(t, w.Error(), ErrOverflow)
	w.WriteU8(1)
	assert.ErrorIs(t, w.Error(), ErrOverflow)
}

func TestBytesRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	w.WriteBytes(payload)
	require.NoError(t, w.Error())
	// u16 length prefix then raw bytes.
	assert.Equal(t, []byte{0x04, 0x00, 0xDE, 0xAD, 0xBE, 0xEF}, buf.Bytes())

	r := NewReader(&buf)
	got, err := r.ReadBytes()
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, 6, r.BytesRead())
}
