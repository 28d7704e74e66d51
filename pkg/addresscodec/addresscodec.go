// Package addresscodec converts 20 byte account identifiers to and from their
// Base58Check classic address form.
package addresscodec

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/mr-tron/base58"

	"github.com/xrplkit/ledger-codec/pkg/crypto"
)

const (
	alphabetChars = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"
	checksumSize  = crypto.ChecksumLength
	// AccountIDLength is the payload size of a classic address.
	AccountIDLength = 20
	// AccountIDPrefix is the version byte of a classic address.
	AccountIDPrefix byte = 0x00
)

var alphabet = base58.NewAlphabet(alphabetChars)

var (
	// ErrInvalidEncoding represents characters outside the alphabet.
	ErrInvalidEncoding = errors.New("invalid base58 encoding")
	// ErrInvalidChecksum represents a checksum mismatch.
	ErrInvalidChecksum = errors.New("invalid checksum")
	// ErrInvalidVersion represents an unexpected version prefix.
	ErrInvalidVersion = errors.New("invalid version prefix")
	// ErrInvalidLength represents a payload of unexpected size.
	ErrInvalidLength = errors.New("invalid payload length")
)

// Encode returns the Base58Check string of version followed by payload.
func Encode(payload []byte, version []byte) string {
	data := make([]byte, 0, len(version)+len(payload)+checksumSize)
	data = append(data, version...)
	data = append(data, payload...)
	data = append(data, checksum(data)...)
	return base58.EncodeAlphabet(data, alphabet)
}

// Decode verifies the checksum and version of value and returns the payload.
func Decode(value string, version []byte) ([]byte, error) {
	data, err := base58.DecodeAlphabet(value, alphabet)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "decode %q", value), ErrInvalidEncoding)
	}
	if len(data) < len(version)+checksumSize {
		return nil, errors.Wrapf(ErrInvalidLength, "decoded %d bytes", len(data))
	}
	body, sum := data[:len(data)-checksumSize], data[len(data)-checksumSize:]
	if !bytes.Equal(checksum(body), sum) {
		return nil, errors.Wrapf(ErrInvalidChecksum, "address %q", value)
	}
	if !bytes.HasPrefix(body, version) {
		return nil, errors.Wrapf(ErrInvalidVersion, "address %q", value)
	}
	return body[len(version):], nil
}

// EncodeAccountID returns the classic address of a 20 byte account identifier.
func EncodeAccountID(accountID []byte) (string, error) {
	if len(accountID) != AccountIDLength {
		return "", errors.Wrapf(ErrInvalidLength, "account id must be %d bytes but received %d", AccountIDLength, len(accountID))
	}
	return Encode(accountID, []byte{AccountIDPrefix}), nil
}

// DecodeAccountID returns the 20 byte account identifier of a classic address.
func DecodeAccountID(address string) ([]byte, error) {
	payload, err := Decode(address, []byte{AccountIDPrefix})
	if err != nil {
		return nil, err
	}
	if len(payload) != AccountIDLength {
		return nil, errors.Wrapf(ErrInvalidLength, "account id must be %d bytes but received %d", AccountIDLength, len(payload))
	}
	return payload, nil
}

// IsValidClassicAddress returns true if address decodes to an account identifier.
func IsValidClassicAddress(address string) bool {
	_, err := DecodeAccountID(address)
	return err == nil
}

func checksum(data []byte) []byte {
	return crypto.Checksum(data)
}
