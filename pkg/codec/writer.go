package codec

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// Writer is an append-only byte accumulator.
type Writer struct {
	result []byte
}

// NewWriter returns a new instances of a writer.
func NewWriter() *Writer {
	return &Writer{
		result: []byte{},
	}
}

// WriteByte appends a single byte.
func (w *Writer) WriteByte(b byte) error {
	w.result = append(w.result, b)
	return nil
}

// WriteBytes appends data as is.
func (w *Writer) WriteBytes(data []byte) {
	w.result = append(w.result, data...)
}

// WriteUInt appends value as a big endian integer of width 1, 2, 4 or 8 bytes.
func (w *Writer) WriteUInt(value uint64, width int) error {
	if width < 8 && value>>(uint(width)*8) != 0 {
		return errors.Wrapf(ErrOutOfRange, "value %d does not fit in %d bytes", value, width)
	}
	switch width {
	case 1:
		w.result = append(w.result, byte(value))
	case 2:
		w.result = binary.BigEndian.AppendUint16(w.result, uint16(value))
	case 4:
		w.result = binary.BigEndian.AppendUint32(w.result, uint32(value))
	case 8:
		w.result = binary.BigEndian.AppendUint64(w.result, value)
	default:
		return errors.Wrapf(ErrUnsupportedType, "integer width %d", width)
	}
	return nil
}

// WriteFieldHeader appends the encoded header.
func (w *Writer) WriteFieldHeader(h FieldHeader) error {
	header, err := EncodeFieldHeader(h)
	if err != nil {
		return err
	}
	w.result = append(w.result, header...)
	return nil
}

// WriteVariableLength appends data prefixed with its length.
func (w *Writer) WriteVariableLength(data []byte) error {
	prefix, err := EncodeVariableLength(len(data))
	if err != nil {
		return err
	}
	w.result = append(w.result, prefix...)
	w.result = append(w.result, data...)
	return nil
}

// Result returns the written bytes.
func (w *Writer) Result() []byte {
	return w.result
}

// Size returns written size.
func (w *Writer) Size() int {
	return len(w.result)
}

// Hex returns the written bytes as upper case hex.
func (w *Writer) Hex() string {
	return EncodeHex(w.result)
}
