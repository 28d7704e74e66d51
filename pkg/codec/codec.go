// Package codec implements the low level pieces of the ledger binary format:
// the bounded byte cursor (Reader), the append-only sink (Writer), field headers
// and variable-length prefixes.
//
// Higher level encoding of typed values lives in [types], and the public
// encode/decode entry points live in package binarycodec.
//
// [types]: https://pkg.go.dev/github.com/xrplkit/ledger-codec/pkg/codec/types
package codec

const (
	// ObjectEndMarker terminates a nested object. It is never preceded by a field header.
	ObjectEndMarker byte = 0xE1
	// ArrayEndMarker terminates an array. It is never preceded by a field header.
	ArrayEndMarker byte = 0xF1
)

// Encodable is implemented by fixed layout records written outside the field
// table, such as the ledger header.
type Encodable interface {
	// Bytes returns the canonical encoding of the value, without field header or length prefix.
	Bytes() []byte
}

// Decodable is the read counterpart of Encodable.
// hint is the declared byte length for variable length fields and -1 otherwise.
type Decodable interface {
	DecodeFromReader(r *Reader, hint int) error
}
