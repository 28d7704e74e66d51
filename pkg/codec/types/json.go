package types

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/cockroachdb/errors"

	"github.com/xrplkit/ledger-codec/pkg/codec"
)

// toUint64 coerces integers, json.Number and decimal strings to uint64 bounded by max.
func toUint64(value any, max uint64) (uint64, error) {
	var result uint64
	switch v := value.(type) {
	case uint8:
		result = uint64(v)
	case uint16:
		result = uint64(v)
	case uint32:
		result = uint64(v)
	case uint64:
		result = v
	case uint:
		result = uint64(v)
	case int8, int16, int32, int64, int:
		signed := toInt64(v)
		if signed < 0 {
			return 0, errors.Wrapf(codec.ErrOutOfRange, "negative value %d", signed)
		}
		result = uint64(signed)
	case float64:
		if v < 0 || v != math.Trunc(v) || v >= 1<<64 {
			return 0, errors.Wrapf(codec.ErrOutOfRange, "value %v is not an unsigned integer", v)
		}
		result = uint64(v)
	case json.Number:
		return toUint64(string(v), max)
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return 0, errors.Wrapf(codec.ErrOutOfRange, "value %q", v)
			}
			return 0, errors.Mark(errors.Wrapf(err, "value %q", v), codec.ErrMalformedInput)
		}
		result = parsed
	default:
		return 0, errors.Wrapf(codec.ErrMalformedInput, "expected unsigned integer but received %T", value)
	}
	if result > max {
		return 0, errors.Wrapf(codec.ErrOutOfRange, "value %d exceeds %d", result, max)
	}
	return result, nil
}

func toInt64(value any) int64 {
	switch v := value.(type) {
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

func toString(value any, what string) (string, error) {
	str, ok := value.(string)
	if !ok {
		return "", errors.Wrapf(codec.ErrMalformedInput, "%s must be a string but received %T", what, value)
	}
	return str, nil
}

func toMap(value any, what string) (map[string]any, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, errors.Wrapf(codec.ErrMalformedInput, "%s must be an object but received %T", what, value)
	}
	return m, nil
}

func toSlice(value any, what string) ([]any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case []map[string]any:
		result := make([]any, len(v))
		for i, m := range v {
			result[i] = m
		}
		return result, nil
	case []string:
		result := make([]any, len(v))
		for i, s := range v {
			result[i] = s
		}
		return result, nil
	default:
		return nil, errors.Wrapf(codec.ErrMalformedInput, "%s must be an array but received %T", what, value)
	}
}
