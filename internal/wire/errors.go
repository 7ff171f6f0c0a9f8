package wire

import "errors"

var (
	// ErrOverflow indicates a value that does not fit the requested
	// fixed-width representation.
	ErrOverflow = errors.New("wire: integer overflow")

	// ErrInvalidBool indicates a boolean byte other than 0x00 or 0x01.
	ErrInvalidBool = errors.New("wire: invalid boolean byte")

	// ErrInvalidUTF8 indicates string bytes that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("wire: invalid utf8 string")

	// ErrTooLarge indicates a string or byte payload beyond the length
	// prefix range.
	ErrTooLarge = errors.New("wire: payload too large")

	// ErrWidth indicates an unsupported fixed-integer width.
	ErrWidth = errors.New("wire: unsupported integer width")
)
