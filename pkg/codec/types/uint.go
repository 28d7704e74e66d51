package types

import (
	"fmt"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/xrplkit/ledger-codec/pkg/codec"
	"github.com/xrplkit/ledger-codec/pkg/codec/definitions"
)

const uint64HexDigits = 16

// uintType covers UInt8, UInt16, UInt32 and UInt64.
// UInt64 uses hex strings in JSON, the narrower widths use numbers.
type uintType struct {
	width int
}

func (t uintType) max() uint64 {
	if t.width == 8 {
		return ^uint64(0)
	}
	return 1<<(uint(t.width)*8) - 1
}

func (t uintType) fromJSON(c *Context, field definitions.FieldInstance, value any) ([]byte, error) {
	var (
		result uint64
		err    error
	)
	if enum := c.enumOf(field); enum != nil {
		if name, ok := value.(string); ok {
			code, exist := enum.Code(name)
			if !exist {
				return nil, errors.Wrapf(codec.ErrMalformedInput, "unknown %s %q", field.Name, name)
			}
			if code < 0 || uint64(code) > t.max() {
				return nil, errors.Wrapf(codec.ErrOutOfRange, "%s %s has code %d", field.Name, name, code)
			}
			value = uint64(code)
		}
	}
	if str, ok := value.(string); ok && t.width == 8 {
		result, err = parseUint64Hex(str)
	} else {
		result, err = toUint64(value, t.max())
	}
	if err != nil {
		return nil, errors.Wrapf(err, "field %s", field.Name)
	}
	w := codec.NewWriter()
	if err := w.WriteUInt(result, t.width); err != nil {
		return nil, err
	}
	return w.Result(), nil
}

func (t uintType) toJSON(c *Context, field definitions.FieldInstance, r *codec.Reader, hint int) (any, error) {
	value, err := r.ReadUInt(t.width)
	if err != nil {
		return nil, errors.Wrapf(err, "field %s", field.Name)
	}
	if enum := c.enumOf(field); enum != nil {
		if name, ok := enum.Name(int32(value)); ok {
			return name, nil
		}
	}
	switch t.width {
	case 1:
		return uint8(value), nil
	case 2:
		return uint16(value), nil
	case 4:
		return uint32(value), nil
	default:
		return fmt.Sprintf("%016X", value), nil
	}
}

func parseUint64Hex(value string) (uint64, error) {
	if len(value) == 0 || len(value) > uint64HexDigits {
		return 0, errors.Wrapf(codec.ErrOutOfRange, "UInt64 hex string must have 1 to %d digits but received %q", uint64HexDigits, value)
	}
	result, err := strconv.ParseUint(value, 16, 64)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "UInt64 %q", value), codec.ErrMalformedInput)
	}
	return result, nil
}

func (c *Context) enumOf(field definitions.FieldInstance) *definitions.Enum {
	if c.Definitions == nil {
		return nil
	}
	switch field.Name {
	case "TransactionType":
		return c.Definitions.TransactionTypes()
	case "LedgerEntryType":
		return c.Definitions.LedgerEntryTypes()
	case "TransactionResult":
		return c.Definitions.TransactionResults()
	}
	return nil
}
