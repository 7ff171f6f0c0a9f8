package policy

import (
	"errors"
	"fmt"
)

// ErrInvalidRepr indicates a repr attribute naming anything other than
// the four fixed-width unsigned integer kinds.
var ErrInvalidRepr = errors.New("invalid repr kind")

// InvalidReprError carries the rejected repr identifier.
type InvalidReprError struct {
	Ident string
}

func (e *InvalidReprError) Error() string {
	return fmt.Sprintf("%s %q: must be one of u8, u16, u32, u64", ErrInvalidRepr, e.Ident)
}

func (e *InvalidReprError) Unwrap() error { return ErrInvalidRepr }
