package codec

import "github.com/cockroachdb/errors"

const (
	maxSingleByteLength = 192
	maxDoubleByteLength = 12480
	// MaxVariableLength is the largest length a variable length prefix can describe.
	MaxVariableLength = 918744

	doubleByteBase = 193
	tripleByteBase = 12481
	tripleByteLead = 241
	maxLeadByte    = 254
)

// EncodeVariableLength returns the 1, 2 or 3 byte length prefix for length.
func EncodeVariableLength(length int) ([]byte, error) {
	switch {
	case length < 0:
		return nil, errors.Wrapf(ErrOutOfRange, "negative length %d", length)
	case length <= maxSingleByteLength:
		return []byte{byte(length)}, nil
	case length <= maxDoubleByteLength:
		v := length - doubleByteBase
		return []byte{byte(doubleByteBase + (v >> 8)), byte(v & 0xff)}, nil
	case length <= MaxVariableLength:
		v := length - tripleByteBase
		return []byte{byte(tripleByteLead + (v >> 16)), byte((v >> 8) & 0xff), byte(v & 0xff)}, nil
	default:
		return nil, errors.Wrapf(ErrOutOfRange, "length %d exceeds %d", length, MaxVariableLength)
	}
}

func readVariableLength(r *Reader) (int, error) {
	b1, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	switch {
	case b1 <= maxSingleByteLength:
		return int(b1), nil
	case b1 < tripleByteLead:
		b2, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		return doubleByteBase + (int(b1)-doubleByteBase)<<8 + int(b2), nil
	case b1 <= maxLeadByte:
		rest, err := r.ReadBytes(2)
		if err != nil {
			return 0, err
		}
		length := tripleByteBase + (int(b1)-tripleByteLead)<<16 + int(rest[0])<<8 + int(rest[1])
		if length > MaxVariableLength {
			return 0, errors.Wrapf(ErrOutOfRange, "length %d exceeds %d", length, MaxVariableLength)
		}
		return length, nil
	default:
		return 0, errors.Wrapf(ErrMalformedInput, "invalid variable length lead byte %#x", b1)
	}
}
