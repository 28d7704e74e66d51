package codec

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// UInt64Str is a uint64 rendered as a decimal JSON string, since drop totals exceed 2^53.
// Unmarshal also accepts a bare JSON number.
type UInt64Str uint64

func (i UInt64Str) MarshalJSON() ([]byte, error) {
	return strconv.AppendQuote(nil, strconv.FormatUint(uint64(i), 10)), nil
}

func (i *UInt64Str) UnmarshalJSON(b []byte) error {
	str := string(b)
	if unquoted, err := strconv.Unquote(str); err == nil {
		str = unquoted
	}
	value, err := strconv.ParseUint(str, 10, 64)
	if err != nil {
		return errors.Mark(errors.Wrapf(err, "uint64 %s", b), ErrMalformedInput)
	}
	*i = UInt64Str(value)
	return nil
}
