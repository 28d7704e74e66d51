package codec

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadUInt(t *testing.T) {
	cases := []struct {
		input  string
		width  int
		result uint64
		err    error
	}{
		{input: "01", width: 1, result: 1},
		{input: "ff", width: 1, result: 255},
		{input: "0102", width: 2, result: 258},
		{input: "80000000", width: 4, result: 2147483648},
		{input: "416345785d8a0000", width: 8, result: 0x416345785D8A0000},
		{input: "0102", width: 4, err: ErrTruncatedInput},
		{input: "010203", width: 3, err: ErrUnsupportedType},
	}
	for _, c := range cases {
		reader := NewReader(mustDecodeHex(c.input))
		result, err := reader.ReadUInt(c.width)
		if c.err != nil {
			assert.True(t, errors.Is(err, c.err), c.input)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, c.result, result)
		assert.False(t, reader.HasRemaining())
	}
}

func TestReadBytesNeverPartial(t *testing.T) {
	reader := NewReader(mustDecodeHex("aabbcc"))
	_, err := reader.ReadBytes(4)
	assert.True(t, errors.Is(err, ErrTruncatedInput))
	assert.Equal(t, 0, reader.Offset())
	assert.Equal(t, 3, reader.Remaining())

	result, err := reader.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, mustDecodeHex("aabb"), result)

	next, err := reader.PeekByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xcc), next)
	assert.Equal(t, 1, reader.Remaining())

	_, err = reader.ReadByte()
	require.NoError(t, err)
	_, err = reader.PeekByte()
	assert.True(t, errors.Is(err, ErrTruncatedInput))
}

func TestReadBytesCopies(t *testing.T) {
	data := mustDecodeHex("0102")
	reader := NewReader(data)
	result, err := reader.ReadBytes(2)
	require.NoError(t, err)
	result[0] = 0xff
	assert.Equal(t, byte(0x01), data[0])
}

func TestSubReader(t *testing.T) {
	reader := NewReader(mustDecodeHex("0102030405"))
	sub, err := reader.Sub(3)
	require.NoError(t, err)
	assert.Equal(t, 3, sub.Remaining())
	assert.Equal(t, 2, reader.Remaining())

	_, err = sub.ReadBytes(4)
	assert.True(t, errors.Is(err, ErrTruncatedInput))
	val, err := sub.ReadUInt(2)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102), val)

	_, err = reader.Sub(3)
	assert.True(t, errors.Is(err, ErrTruncatedInput))
}

func TestNewReaderFromHex(t *testing.T) {
	reader, err := NewReaderFromHex("E1F1")
	require.NoError(t, err)
	assert.Equal(t, 2, reader.Remaining())

	_, err = NewReaderFromHex("E1F")
	assert.True(t, errors.Is(err, ErrMalformedInput))

	_, err = NewReaderFromHex("XY")
	assert.True(t, errors.Is(err, ErrMalformedInput))
}

func TestReadVariableLength(t *testing.T) {
	cases := []struct {
		input  string
		result int
		err    error
	}{
		{input: "00", result: 0},
		{input: "c0", result: 192},
		{input: "c100", result: 193},
		{input: "f0ff", result: 12480},
		{input: "f10000", result: 12481},
		{input: "f130e7", result: 25000},
		{input: "fed417", result: 918744},
		{input: "fed418", err: ErrOutOfRange},
		{input: "ff", err: ErrMalformedInput},
		{input: "c1", err: ErrTruncatedInput},
	}
	for _, c := range cases {
		reader := NewReader(mustDecodeHex(c.input))
		result, err := readVariableLength(reader)
		if c.err != nil {
			assert.True(t, errors.Is(err, c.err), c.input)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, c.result, result, c.input)
	}
}

func TestReadVariableLengthExceedsRemaining(t *testing.T) {
	reader := NewReader(mustDecodeHex("03aabb"))
	_, err := reader.ReadVariableLength()
	assert.True(t, errors.Is(err, ErrTruncatedInput))

	reader = NewReader(mustDecodeHex("02aabb"))
	length, err := reader.ReadVariableLength()
	assert.NoError(t, err)
	assert.Equal(t, 2, length)
}

func TestReadFieldHeader(t *testing.T) {
	cases := []struct {
		input  string
		result FieldHeader
		err    error
	}{
		{input: "11", result: FieldHeader{TypeCode: 1, FieldCode: 1}},
		{input: "ff", result: FieldHeader{TypeCode: 15, FieldCode: 15}},
		{input: "0110", result: FieldHeader{TypeCode: 16, FieldCode: 1}},
		{input: "1010", result: FieldHeader{TypeCode: 1, FieldCode: 16}},
		{input: "001010", result: FieldHeader{TypeCode: 16, FieldCode: 16}},
		{input: "00ffff", result: FieldHeader{TypeCode: 255, FieldCode: 255}},
		{input: "000f10", err: ErrMalformedInput},
		{input: "00100f", err: ErrMalformedInput},
		{input: "100f", err: ErrMalformedInput},
		{input: "0010", err: ErrTruncatedInput},
	}
	for _, c := range cases {
		reader := NewReader(mustDecodeHex(c.input))
		result, err := reader.ReadFieldHeader()
		if c.err != nil {
			assert.True(t, errors.Is(err, c.err), c.input)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, c.result, result)
		assert.False(t, reader.HasRemaining())
	}
}
