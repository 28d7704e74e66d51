// Package binarycodec encodes ledger transactions and objects to their canonical binary form
// and decodes them back.
//
// Documents are map[string]any values as produced by a JSON decoder configured with UseNumber,
// or built in Go. Binary values are upper case hex strings; lower case input is accepted.
package binarycodec

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/xrplkit/ledger-codec/pkg/codec"
	"github.com/xrplkit/ledger-codec/pkg/codec/definitions"
	"github.com/xrplkit/ledger-codec/pkg/codec/types"
	"github.com/xrplkit/ledger-codec/pkg/crypto"
	"github.com/xrplkit/ledger-codec/pkg/log"
)

var (
	// SigningPrefix precedes single signing data.
	SigningPrefix = []byte{0x53, 0x54, 0x58, 0x00}
	// MultiSigningPrefix precedes multi signing data.
	MultiSigningPrefix = []byte{0x53, 0x4D, 0x54, 0x00}
	// ClaimPrefix precedes payment channel claim signing data.
	ClaimPrefix = []byte{0x43, 0x4C, 0x4D, 0x00}
	// TransactionIDPrefix precedes a signed transaction when hashing its identifier.
	TransactionIDPrefix = []byte{0x54, 0x58, 0x4E, 0x00}
)

const signingPubKeyField = "SigningPubKey"

var (
	defaultOnce  sync.Once
	defaultCodec *Codec
	defaultErr   error
)

// Options configures a Codec. Zero values select the embedded definitions and a no-op logger.
type Options struct {
	Definitions *definitions.Definitions
	Logger      log.Logger
	// Strict rejects unknown field names during encode.
	Strict bool
}

// Codec binds the field registry, logger and options used by every operation.
// It holds no mutable state and is safe for concurrent use.
type Codec struct {
	ctx    *types.Context
	logger log.Logger
}

// New returns a codec with opts.
func New(opts Options) (*Codec, error) {
	defs := opts.Definitions
	if defs == nil {
		var err error
		if defs, err = definitions.Default(); err != nil {
			return nil, err
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Codec{
		ctx: &types.Context{
			Definitions: defs,
			Strict:      opts.Strict,
			Logger:      logger,
		},
		logger: logger,
	}, nil
}

// Default returns the shared codec over the embedded definitions. It is built exactly once.
func Default() (*Codec, error) {
	defaultOnce.Do(func() {
		defaultCodec, defaultErr = New(Options{})
	})
	return defaultCodec, defaultErr
}

// Definitions returns the registry the codec uses.
func (c *Codec) Definitions() *definitions.Definitions {
	return c.ctx.Definitions
}

// Encode returns the canonical encoding of doc.
func (c *Codec) Encode(doc map[string]any) (string, error) {
	w := codec.NewWriter()
	if err := c.ctx.EncodeObject(w, doc, types.ObjectOptions{}); err != nil {
		return "", err
	}
	return w.Hex(), nil
}

// Decode is the inverse of Encode.
func (c *Codec) Decode(value string) (map[string]any, error) {
	r, err := codec.NewReaderFromHex(value)
	if err != nil {
		return nil, err
	}
	fields, err := c.ctx.DecodeObject(r, false)
	if err != nil {
		c.logger.Debugf("Failed to decode %d bytes: %v", len(value)/2, err)
		return nil, err
	}
	return types.ToMap(fields), nil
}

// EncodeForSigning returns the data a single signature covers: the signing prefix
// followed by the signing fields of doc.
func (c *Codec) EncodeForSigning(doc map[string]any) (string, error) {
	w := codec.NewWriter()
	w.WriteBytes(SigningPrefix)
	if err := c.ctx.EncodeObject(w, doc, types.ObjectOptions{SigningFieldsOnly: true}); err != nil {
		return "", err
	}
	return w.Hex(), nil
}

// EncodeForMultiSigning returns the data signer signs in a multi signed transaction.
// SigningPubKey is encoded empty and the signer account ID is appended without a header.
func (c *Codec) EncodeForMultiSigning(doc map[string]any, signer string) (string, error) {
	accountID, err := c.ctx.EncodeValue(types.TypeAccountID, signer)
	if err != nil {
		return "", errors.Wrap(err, "signer")
	}
	signing := make(map[string]any, len(doc)+1)
	for k, v := range doc {
		signing[k] = v
	}
	signing[signingPubKeyField] = ""

	w := codec.NewWriter()
	w.WriteBytes(MultiSigningPrefix)
	if err := c.ctx.EncodeObject(w, signing, types.ObjectOptions{SigningFieldsOnly: true}); err != nil {
		return "", err
	}
	w.WriteBytes(accountID)
	return w.Hex(), nil
}

// EncodeForSigningClaim returns the data signed to authorize a payment channel claim.
// claim must hold exactly "channel" (32 byte hash) and "amount" (drops).
func (c *Codec) EncodeForSigningClaim(claim map[string]any) (string, error) {
	channel, ok := claim["channel"]
	if !ok {
		return "", errors.Wrap(codec.ErrInvalidStructure, "claim is missing channel")
	}
	amount, ok := claim["amount"]
	if !ok {
		return "", errors.Wrap(codec.ErrInvalidStructure, "claim is missing amount")
	}
	if len(claim) != 2 {
		return "", errors.Wrapf(codec.ErrInvalidStructure, "claim must hold only channel and amount but has %d fields", len(claim))
	}
	channelID, err := c.ctx.EncodeValue(types.TypeHash256, channel)
	if err != nil {
		return "", errors.Wrap(err, "channel")
	}
	drops, err := types.ParseDrops(amount)
	if err != nil {
		return "", errors.Wrap(err, "amount")
	}

	w := codec.NewWriter()
	w.WriteBytes(ClaimPrefix)
	w.WriteBytes(channelID)
	if err := w.WriteUInt(drops, 8); err != nil {
		return "", err
	}
	return w.Hex(), nil
}

// TransactionID returns the identifying hash of a signed transaction.
func (c *Codec) TransactionID(doc map[string]any) (string, error) {
	w := codec.NewWriter()
	if err := c.ctx.EncodeObject(w, doc, types.ObjectOptions{}); err != nil {
		return "", err
	}
	return codec.EncodeHex(crypto.Sha512Half(TransactionIDPrefix, w.Result())), nil
}

// Encode encodes doc with the default codec.
func Encode(doc map[string]any) (string, error) {
	c, err := Default()
	if err != nil {
		return "", err
	}
	return c.Encode(doc)
}

// Decode decodes value with the default codec.
func Decode(value string) (map[string]any, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}
	return c.Decode(value)
}

// EncodeForSigning encodes doc for single signing with the default codec.
func EncodeForSigning(doc map[string]any) (string, error) {
	c, err := Default()
	if err != nil {
		return "", err
	}
	return c.EncodeForSigning(doc)
}

// EncodeForMultiSigning encodes doc for multi signing by signer with the default codec.
func EncodeForMultiSigning(doc map[string]any, signer string) (string, error) {
	c, err := Default()
	if err != nil {
		return "", err
	}
	return c.EncodeForMultiSigning(doc, signer)
}

// EncodeForSigningClaim encodes a payment channel claim with the default codec.
func EncodeForSigningClaim(claim map[string]any) (string, error) {
	c, err := Default()
	if err != nil {
		return "", err
	}
	return c.EncodeForSigningClaim(claim)
}

// TransactionID hashes doc with the default codec.
func TransactionID(doc map[string]any) (string, error) {
	c, err := Default()
	if err != nil {
		return "", err
	}
	return c.TransactionID(doc)
}

// EncodeQuality encodes a book quality.
func EncodeQuality(value string) (string, error) {
	data, err := types.EncodeQuality(value)
	if err != nil {
		return "", err
	}
	return codec.EncodeHex(data), nil
}

// DecodeQuality decodes a book quality.
func DecodeQuality(value string) (string, error) {
	data, err := codec.DecodeHex(value)
	if err != nil {
		return "", err
	}
	return types.DecodeQuality(data)
}
