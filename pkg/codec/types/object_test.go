package types

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrplkit/ledger-codec/pkg/codec"
	"github.com/xrplkit/ledger-codec/pkg/log"
)

const (
	testPubKey     = "ED5F5AC8B98974A3CA843326D9B88CEBD0560177B973EE0B149F782CFAA06DC66A"
	paymentHex     = "120000228000000024000000016140000000000003E868400000000000000C7321" + testPubKey + "7404DEADBEEF8114" + testAccountHex + "83140000000000000000000000000000000000000001F9EA7C07687474703A2F2F7D0472656E74E1F1"
	paymentSignHex = "120000228000000024000000016140000000000003E868400000000000000C7321" + testPubKey + "8114" + testAccountHex + "83140000000000000000000000000000000000000001F9EA7C07687474703A2F2F7D0472656E74E1F1"
	trustSetHex    = "12001424000000056393C5543DF729C000" + usdCurrencyHex + testAccountHex + "68400000000000000A73008114" + testAccountHex
)

func testPayment() map[string]any {
	return map[string]any{
		"TransactionType": "Payment",
		"Account":         testAccount,
		"Destination":     testAccountOne,
		"Amount":          "1000",
		"Fee":             "12",
		"Sequence":        1,
		"Flags":           2147483648,
		"SigningPubKey":   testPubKey,
		"TxnSignature":    "DEADBEEF",
		"Memos": []any{
			map[string]any{"Memo": map[string]any{"MemoType": "687474703A2F2F", "MemoData": "72656E74"}},
		},
	}
}

func encodeObjectHex(t *testing.T, c *Context, doc map[string]any, opts ObjectOptions) string {
	t.Helper()
	w := codec.NewWriter()
	require.NoError(t, c.EncodeObject(w, doc, opts))
	return w.Hex()
}

func decodeObjectHex(t *testing.T, c *Context, value string) map[string]any {
	t.Helper()
	r, err := codec.NewReaderFromHex(value)
	require.NoError(t, err)
	fields, err := c.DecodeObject(r, false)
	require.NoError(t, err)
	return ToMap(fields)
}

func TestEncodeObject(t *testing.T) {
	c := newTestContext(t)

	assert.Equal(t, paymentHex, encodeObjectHex(t, c, testPayment(), ObjectOptions{}))
	assert.Equal(t, paymentSignHex, encodeObjectHex(t, c, testPayment(), ObjectOptions{SigningFieldsOnly: true}))

	trustSet := map[string]any{
		"TransactionType": "TrustSet",
		"Account":         testAccount,
		"LimitAmount":     map[string]any{"currency": "USD", "value": "-1.5e-3", "issuer": testAccount},
		"Fee":             "10",
		"Sequence":        5,
		"SigningPubKey":   "",
	}
	assert.Equal(t, trustSetHex, encodeObjectHex(t, c, trustSet, ObjectOptions{}))
}

func TestEncodeObjectNested(t *testing.T) {
	c := newTestContext(t)

	inner := map[string]any{"CloseResolution": 1, "Method": 2}
	assert.Equal(t, "011001021002", encodeObjectHex(t, c, inner, ObjectOptions{}))
	assert.Equal(t, "011001021002E1", encodeObjectHex(t, c, inner, ObjectOptions{Nested: true}))

	doc := map[string]any{"Memo": map[string]any{"Memo": inner}}
	assert.Equal(t, "EAEA011001021002E1E1", encodeObjectHex(t, c, doc, ObjectOptions{}))
	assert.Equal(t, map[string]any{
		"Memo": map[string]any{
			"Memo": map[string]any{"CloseResolution": uint8(1), "Method": uint8(2)},
		},
	}, decodeObjectHex(t, c, "EAEA011001021002E1E1"))
}

func TestEncodeObjectOrderIndependent(t *testing.T) {
	c := newTestContext(t)

	expected := encodeObjectHex(t, c, testPayment(), ObjectOptions{})
	for i := 0; i < 20; i++ {
		doc := map[string]any{}
		for _, key := range lo.Shuffle(lo.Keys(testPayment())) {
			doc[key] = testPayment()[key]
		}
		assert.Equal(t, expected, encodeObjectHex(t, c, doc, ObjectOptions{}))
	}
}

func TestEncodeObjectSkipsFields(t *testing.T) {
	c := newTestContext(t)

	doc := testPayment()
	doc["hash"] = testHash256
	doc["NotAField"] = "value"
	assert.Equal(t, paymentHex, encodeObjectHex(t, c, doc, ObjectOptions{}))

	strict := &Context{Definitions: c.Definitions, Strict: true, Logger: log.NewNopLogger()}
	err := strict.EncodeObject(codec.NewWriter(), doc, ObjectOptions{})
	assert.True(t, errors.Is(err, codec.ErrUnknownField))

	for _, marker := range []string{"ObjectEndMarker", "ArrayEndMarker"} {
		err := c.EncodeObject(codec.NewWriter(), map[string]any{marker: map[string]any{}}, ObjectOptions{})
		assert.True(t, errors.Is(err, codec.ErrInvalidStructure), marker)
	}
}

func TestEncodeObjectInvalidValue(t *testing.T) {
	c := newTestContext(t)

	doc := testPayment()
	doc["Sequence"] = "abc"
	err := c.EncodeObject(codec.NewWriter(), doc, ObjectOptions{})
	assert.True(t, errors.Is(err, codec.ErrMalformedInput))
	assert.Contains(t, err.Error(), "Sequence")

	doc = testPayment()
	doc["Memo"] = "not an object"
	err = c.EncodeObject(codec.NewWriter(), doc, ObjectOptions{})
	assert.True(t, errors.Is(err, codec.ErrMalformedInput))
}

func TestDecodeObject(t *testing.T) {
	c := newTestContext(t)

	assert.Equal(t, map[string]any{
		"TransactionType": "Payment",
		"Account":         testAccount,
		"Destination":     testAccountOne,
		"Amount":          "1000",
		"Fee":             "12",
		"Sequence":        uint32(1),
		"Flags":           uint32(2147483648),
		"SigningPubKey":   testPubKey,
		"TxnSignature":    "DEADBEEF",
		"Memos": []any{
			map[string]any{"Memo": map[string]any{"MemoType": "687474703A2F2F", "MemoData": "72656E74"}},
		},
	}, decodeObjectHex(t, c, paymentHex))

	r, err := codec.NewReaderFromHex(paymentHex)
	require.NoError(t, err)
	fields, err := c.DecodeObject(r, false)
	require.NoError(t, err)
	names := lo.Map(fields, func(f DecodedField, _ int) string { return f.Field.Name })
	assert.Equal(t, []string{
		"TransactionType", "Flags", "Sequence", "Amount", "Fee",
		"SigningPubKey", "TxnSignature", "Account", "Destination", "Memos",
	}, names)

	assert.Equal(t, map[string]any{}, decodeObjectHex(t, c, ""))
}

func TestDecodeObjectInvalid(t *testing.T) {
	c := newTestContext(t)

	cases := []struct {
		desc  string
		input string
		err   error
	}{
		{desc: "unknown header", input: "20C800000001", err: codec.ErrUnknownField},
		{desc: "object end at top level", input: "E1", err: codec.ErrInvalidStructure},
		{desc: "array end at top level", input: "F1", err: codec.ErrInvalidStructure},
		{desc: "unterminated object", input: "EA011001", err: codec.ErrInvalidStructure},
		{desc: "unterminated array", input: "F9EA7D0100E1", err: codec.ErrInvalidStructure},
		{desc: "out of order", input: "021002011001", err: codec.ErrInvalidStructure},
		{desc: "duplicate field", input: "011001011001", err: codec.ErrInvalidStructure},
		{desc: "truncated value", input: "2400", err: codec.ErrTruncatedInput},
		{desc: "declared length exceeds input", input: "7304AB", err: codec.ErrTruncatedInput},
		{desc: "account length", input: "8115" + testAccountHex + "00", err: codec.ErrMalformedInput},
	}
	for _, tc := range cases {
		r, err := codec.NewReaderFromHex(tc.input)
		require.NoError(t, err)
		_, err = c.DecodeObject(r, false)
		assert.True(t, errors.Is(err, tc.err), "%s: %v", tc.desc, err)
	}
}

func TestArray(t *testing.T) {
	c := newTestContext(t)

	memos := []any{
		map[string]any{"Memo": map[string]any{"MemoData": "01"}},
		map[string]any{"Memo": map[string]any{"MemoType": "02"}},
	}
	result := "EA7D0101E1EA7C0102E1F1"
	assert.Equal(t, result, encodeHex(t, c, TypeSTArray, memos))
	assert.Equal(t, memos, decodeHex(t, c, TypeSTArray, result, noHint))

	assert.Equal(t, "F1", encodeHex(t, c, TypeSTArray, []any{}))
	assert.Equal(t, []any{}, decodeHex(t, c, TypeSTArray, "F1", noHint))

	_, err := c.EncodeValue(TypeSTArray, []any{map[string]any{"Memo": map[string]any{}, "Signer": map[string]any{}}})
	assert.True(t, errors.Is(err, codec.ErrInvalidStructure))
	_, err = c.EncodeValue(TypeSTArray, []any{map[string]any{"NotAField": map[string]any{}}})
	assert.True(t, errors.Is(err, codec.ErrUnknownField))
	_, err = c.EncodeValue(TypeSTArray, []any{"Memo"})
	assert.True(t, errors.Is(err, codec.ErrMalformedInput))
}
