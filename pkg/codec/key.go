package codec

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

const (
	nibbleLimit    = 16
	maxHeaderValue = 255
)

// FieldHeader is the (type code, field code) pair preceding a serialized field.
type FieldHeader struct {
	TypeCode  int32
	FieldCode int32
}

// Ordinal returns the canonical sort key of the field.
func (h FieldHeader) Ordinal() int32 {
	return h.TypeCode<<16 | h.FieldCode
}

func (h FieldHeader) String() string {
	return fmt.Sprintf("(type=%d, field=%d)", h.TypeCode, h.FieldCode)
}

// EncodeFieldHeader returns the 1 to 3 byte nibble packed header.
// Both codes must be within [1, 255].
func EncodeFieldHeader(h FieldHeader) ([]byte, error) {
	t, f := h.TypeCode, h.FieldCode
	if t < 1 || t > maxHeaderValue || f < 1 || f > maxHeaderValue {
		return nil, errors.Wrapf(ErrOutOfRange, "field header %s", h)
	}
	switch {
	case t < nibbleLimit && f < nibbleLimit:
		return []byte{byte(t<<4 | f)}, nil
	case t < nibbleLimit:
		return []byte{byte(t << 4), byte(f)}, nil
	case f < nibbleLimit:
		return []byte{byte(f), byte(t)}, nil
	default:
		return []byte{0, byte(t), byte(f)}, nil
	}
}

// readFieldHeader reads combined byte, then the type extension if its nibble was zero,
// then the field extension if its nibble was zero.
func readFieldHeader(r *Reader) (FieldHeader, error) {
	first, err := r.ReadByte()
	if err != nil {
		return FieldHeader{}, err
	}
	t := int32(first >> 4)
	f := int32(first & 0x0f)
	if t == 0 {
		ext, err := r.ReadByte()
		if err != nil {
			return FieldHeader{}, err
		}
		if ext < nibbleLimit {
			return FieldHeader{}, errors.Wrapf(ErrMalformedInput, "type code %d must be packed in a nibble", ext)
		}
		t = int32(ext)
	}
	if f == 0 {
		ext, err := r.ReadByte()
		if err != nil {
			return FieldHeader{}, err
		}
		if ext < nibbleLimit {
			return FieldHeader{}, errors.Wrapf(ErrMalformedInput, "field code %d must be packed in a nibble", ext)
		}
		f = int32(ext)
	}
	return FieldHeader{TypeCode: t, FieldCode: f}, nil
}
