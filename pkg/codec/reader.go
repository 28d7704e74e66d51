package codec

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/cockroachdb/errors"
)

// Reader is a bounded, position tracked cursor over serialized bytes.
// Reads never return partial data.
type Reader struct {
	index int
	end   int
	data  []byte
}

// NewReader returns reader with the data given.
func NewReader(data []byte) *Reader {
	return &Reader{
		data:  data,
		index: 0,
		end:   len(data),
	}
}

// NewReaderFromHex returns reader over the bytes of a hex string.
func NewReaderFromHex(value string) (*Reader, error) {
	data, err := DecodeHex(value)
	if err != nil {
		return nil, err
	}
	return NewReader(data), nil
}

// PeekByte returns the next byte without consuming it.
func (r *Reader) PeekByte() (byte, error) {
	if r.index >= r.end {
		return 0, errors.Wrapf(ErrTruncatedInput, "peek at offset %d", r.index)
	}
	return r.data[r.index], nil
}

// ReadByte consumes a single byte.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.PeekByte()
	if err != nil {
		return 0, err
	}
	r.index++
	return b, nil
}

// ReadBytes consumes n bytes and returns a copy of them.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, errors.Wrapf(ErrTruncatedInput, "read %d bytes at offset %d with %d remaining", n, r.index, r.Remaining())
	}
	result := make([]byte, n)
	copy(result, r.data[r.index:r.index+n])
	r.index += n
	return result, nil
}

// ReadUInt reads a big endian unsigned integer of width 1, 2, 4 or 8 bytes.
func (r *Reader) ReadUInt(width int) (uint64, error) {
	switch width {
	case 1, 2, 4, 8:
	default:
		return 0, errors.Wrapf(ErrUnsupportedType, "integer width %d", width)
	}
	b, err := r.ReadBytes(width)
	if err != nil {
		return 0, err
	}
	switch width {
	case 1:
		return uint64(b[0]), nil
	case 2:
		return uint64(binary.BigEndian.Uint16(b)), nil
	case 4:
		return uint64(binary.BigEndian.Uint32(b)), nil
	default:
		return binary.BigEndian.Uint64(b), nil
	}
}

// ReadFieldHeader reads the next field header.
func (r *Reader) ReadFieldHeader() (FieldHeader, error) {
	return readFieldHeader(r)
}

// ReadVariableLength reads a length prefix and checks that the declared number of bytes is available.
func (r *Reader) ReadVariableLength() (int, error) {
	length, err := readVariableLength(r)
	if err != nil {
		return 0, err
	}
	if length > r.Remaining() {
		return 0, errors.Wrapf(ErrTruncatedInput, "declared length %d exceeds %d remaining bytes", length, r.Remaining())
	}
	return length, nil
}

// Sub consumes n bytes and returns a reader bounded to them.
func (r *Reader) Sub(n int) (*Reader, error) {
	if n < 0 || n > r.Remaining() {
		return nil, errors.Wrapf(ErrTruncatedInput, "sub reader of %d bytes at offset %d with %d remaining", n, r.index, r.Remaining())
	}
	sub := &Reader{
		data:  r.data,
		index: r.index,
		end:   r.index + n,
	}
	r.index += n
	return sub, nil
}

// HasRemaining returns true if unread bytes exist.
func (r *Reader) HasRemaining() bool {
	return r.index < r.end
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return r.end - r.index
}

// Offset returns the current read position.
func (r *Reader) Offset() int {
	return r.index
}

// DecodeHex converts a hex string into bytes. Both upper and lower case digits are accepted.
func DecodeHex(value string) ([]byte, error) {
	if len(value)%2 != 0 {
		return nil, errors.Wrapf(ErrMalformedInput, "odd length hex string of %d characters", len(value))
	}
	data, err := hex.DecodeString(value)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "invalid hex string"), ErrMalformedInput)
	}
	return data, nil
}
