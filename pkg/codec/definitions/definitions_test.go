package definitions

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xrplkit/ledger-codec/pkg/codec"
)

func TestDefault(t *testing.T) {
	defs, err := Default()
	require.NoError(t, err)

	cases := []struct {
		name       string
		typeName   string
		header     codec.FieldHeader
		vlEncoded  bool
		signing    bool
		serialized bool
	}{
		{name: "CloseResolution", typeName: "UInt8", header: codec.FieldHeader{TypeCode: 16, FieldCode: 1}, signing: true, serialized: true},
		{name: "TransactionType", typeName: "UInt16", header: codec.FieldHeader{TypeCode: 1, FieldCode: 2}, signing: true, serialized: true},
		{name: "Account", typeName: "AccountID", header: codec.FieldHeader{TypeCode: 8, FieldCode: 1}, vlEncoded: true, signing: true, serialized: true},
		{name: "TxnSignature", typeName: "Blob", header: codec.FieldHeader{TypeCode: 7, FieldCode: 4}, vlEncoded: true, serialized: true},
		{name: "Memo", typeName: "STObject", header: codec.FieldHeader{TypeCode: 14, FieldCode: 10}, signing: true, serialized: true},
		{name: "Signers", typeName: "STArray", header: codec.FieldHeader{TypeCode: 15, FieldCode: 3}, serialized: true},
		{name: "hash", typeName: "Hash256", header: codec.FieldHeader{TypeCode: 5, FieldCode: 257}},
	}
	for _, c := range cases {
		field, ok := defs.FieldByName(c.name)
		require.True(t, ok, c.name)
		assert.Equal(t, c.typeName, field.TypeName, c.name)
		assert.Equal(t, c.header, field.Header, c.name)
		assert.Equal(t, c.vlEncoded, field.IsVLEncoded, c.name)
		assert.Equal(t, c.signing, field.IsSigningField, c.name)
		assert.Equal(t, c.serialized, field.IsSerialized, c.name)
		if c.serialized {
			name, ok := defs.FieldNameByHeader(c.header)
			assert.True(t, ok)
			assert.Equal(t, c.name, name)
		}
	}

	_, ok := defs.FieldByName("NotAField")
	assert.False(t, ok)
	_, ok = defs.FieldByHeader(codec.FieldHeader{TypeCode: 16, FieldCode: 99})
	assert.False(t, ok)
	_, ok = defs.FieldNameByHeader(codec.FieldHeader{TypeCode: 5, FieldCode: 257})
	assert.False(t, ok, "non serialized fields have no header entry")

	code, ok := defs.TypeCode("Amount")
	assert.True(t, ok)
	assert.Equal(t, int32(6), code)
	_, ok = defs.TypeCode("Nothing")
	assert.False(t, ok)
}

func TestDefaultIsBuiltOnce(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]*Definitions, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = MustDefault()
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}

func TestSerializedFieldsOrdered(t *testing.T) {
	fields := MustDefault().SerializedFields()
	require.NotEmpty(t, fields)
	for i := 1; i < len(fields); i++ {
		assert.Less(t, fields[i-1].Ordinal(), fields[i].Ordinal())
	}
}

func TestEnums(t *testing.T) {
	defs := MustDefault()

	code, ok := defs.TransactionTypes().Code("Payment")
	assert.True(t, ok)
	assert.Equal(t, int32(0), code)
	name, ok := defs.TransactionTypes().Name(20)
	assert.True(t, ok)
	assert.Equal(t, "TrustSet", name)

	code, ok = defs.LedgerEntryTypes().Code("AccountRoot")
	assert.True(t, ok)
	assert.Equal(t, int32(0x61), code)

	name, ok = defs.TransactionResults().Name(0)
	assert.True(t, ok)
	assert.Equal(t, "tesSUCCESS", name)

	names := defs.TransactionTypes().Names()
	assert.Equal(t, "Invalid", names[0])
	assert.Equal(t, "Payment", names[1])
}

func TestLoadInvalid(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{
			name:  "not json",
			input: `{"TYPES":`,
		},
		{
			name:  "no types",
			input: `{"FIELDS":[]}`,
		},
		{
			name:  "missing type reference",
			input: `{"TYPES":{"UInt8":16},"FIELDS":[["A",{"nth":1,"isVLEncoded":false,"isSerialized":true,"isSigningField":true,"type":"UInt9"}]]}`,
		},
		{
			name: "duplicate header",
			input: `{"TYPES":{"UInt8":16},"FIELDS":[
				["A",{"nth":1,"isVLEncoded":false,"isSerialized":true,"isSigningField":true,"type":"UInt8"}],
				["B",{"nth":1,"isVLEncoded":false,"isSerialized":true,"isSigningField":true,"type":"UInt8"}]]}`,
		},
		{
			name: "duplicate name",
			input: `{"TYPES":{"UInt8":16},"FIELDS":[
				["A",{"nth":1,"isVLEncoded":false,"isSerialized":true,"isSigningField":true,"type":"UInt8"}],
				["A",{"nth":2,"isVLEncoded":false,"isSerialized":true,"isSigningField":true,"type":"UInt8"}]]}`,
		},
		{
			name:  "malformed pair",
			input: `{"TYPES":{"UInt8":16},"FIELDS":[["A"]]}`,
		},
		{
			name:  "header out of range",
			input: `{"TYPES":{"UInt8":16},"FIELDS":[["A",{"nth":300,"isVLEncoded":false,"isSerialized":true,"isSigningField":true,"type":"UInt8"}]]}`,
		},
		{
			name:  "duplicate transaction type code",
			input: `{"TYPES":{"UInt8":16},"FIELDS":[],"TRANSACTION_TYPES":{"A":1,"B":1}}`,
		},
	}
	for _, c := range cases {
		_, err := Load([]byte(c.input))
		assert.True(t, errors.Is(err, codec.ErrInvalidDefinitions), c.name)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "definitions.json")
	require.NoError(t, os.WriteFile(path, embeddedDefinitions, 0o600))
	defs, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, len(MustDefault().SerializedFields()), len(defs.SerializedFields()))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
