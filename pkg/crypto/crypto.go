// Package crypto provides the hash functions used by the ledger formats.
package crypto

import (
	"crypto/sha512"

	"github.com/minio/sha256-simd"
)

const (
	// HashLength is the size of Sha256 and Sha512Half digests.
	HashLength = 32
	// ChecksumLength is the size of a Base58Check checksum.
	ChecksumLength = 4
)

// Hash returns the sha256 digest of data.
func Hash(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// Checksum returns the first 4 bytes of the double sha256 digest of data.
func Checksum(data []byte) []byte {
	return Hash(Hash(data))[:ChecksumLength]
}

// Sha512Half returns the first half of the sha512 digest of the concatenated inputs.
func Sha512Half(data ...[]byte) []byte {
	hasher := sha512.New()
	for _, d := range data {
		hasher.Write(d)
	}
	return hasher.Sum(nil)[:HashLength]
}
