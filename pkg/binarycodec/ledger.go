package binarycodec

import (
	"github.com/cockroachdb/errors"

	"github.com/xrplkit/ledger-codec/pkg/codec"
)

const (
	ledgerHashLength = 32
	// LedgerHeaderLength is the size of an encoded ledger header.
	LedgerHeaderLength = 4 + 8 + 3*ledgerHashLength + 4 + 4 + 1 + 1
)

var (
	_ codec.Encodable = (*LedgerHeader)(nil)
	_ codec.Decodable = (*LedgerHeader)(nil)
)

// LedgerHeader is the fixed layout header of a closed ledger.
type LedgerHeader struct {
	LedgerIndex         uint32          `json:"ledger_index"`
	TotalCoins          codec.UInt64Str `json:"total_coins"`
	ParentHash          codec.Hex       `json:"parent_hash"`
	TransactionHash     codec.Hex       `json:"transaction_hash"`
	AccountHash         codec.Hex       `json:"account_hash"`
	ParentCloseTime     uint32          `json:"parent_close_time"`
	CloseTime           uint32          `json:"close_time"`
	CloseTimeResolution uint8           `json:"close_time_resolution"`
	CloseFlags          uint8           `json:"close_flags"`
}

// DecodeFromReader reads the header fields in order. hint is ignored since the layout is fixed.
func (h *LedgerHeader) DecodeFromReader(r *codec.Reader, hint int) error {
	var err error
	if h.LedgerIndex, err = readUint32(r); err != nil {
		return errors.Wrap(err, "ledger_index")
	}
	coins, err := r.ReadUInt(8)
	if err != nil {
		return errors.Wrap(err, "total_coins")
	}
	h.TotalCoins = codec.UInt64Str(coins)
	for _, target := range []struct {
		name string
		dst  *codec.Hex
	}{
		{name: "parent_hash", dst: &h.ParentHash},
		{name: "transaction_hash", dst: &h.TransactionHash},
		{name: "account_hash", dst: &h.AccountHash},
	} {
		data, err := r.ReadBytes(ledgerHashLength)
		if err != nil {
			return errors.Wrap(err, target.name)
		}
		*target.dst = data
	}
	if h.ParentCloseTime, err = readUint32(r); err != nil {
		return errors.Wrap(err, "parent_close_time")
	}
	if h.CloseTime, err = readUint32(r); err != nil {
		return errors.Wrap(err, "close_time")
	}
	resolution, err := r.ReadByte()
	if err != nil {
		return errors.Wrap(err, "close_time_resolution")
	}
	flags, err := r.ReadByte()
	if err != nil {
		return errors.Wrap(err, "close_flags")
	}
	h.CloseTimeResolution = resolution
	h.CloseFlags = flags
	return nil
}

// Bytes returns the encoded header. Hashes shorter than 32 bytes are rejected by Encode.
func (h *LedgerHeader) Bytes() []byte {
	w := codec.NewWriter()
	_ = w.WriteUInt(uint64(h.LedgerIndex), 4)
	_ = w.WriteUInt(uint64(h.TotalCoins), 8)
	w.WriteBytes(h.ParentHash)
	w.WriteBytes(h.TransactionHash)
	w.WriteBytes(h.AccountHash)
	_ = w.WriteUInt(uint64(h.ParentCloseTime), 4)
	_ = w.WriteUInt(uint64(h.CloseTime), 4)
	_ = w.WriteByte(h.CloseTimeResolution)
	_ = w.WriteByte(h.CloseFlags)
	return w.Result()
}

// Encode validates the hash sizes and returns the header as hex.
func (h *LedgerHeader) Encode() (string, error) {
	for name, hash := range map[string]codec.Hex{
		"parent_hash":      h.ParentHash,
		"transaction_hash": h.TransactionHash,
		"account_hash":     h.AccountHash,
	} {
		if len(hash) != ledgerHashLength {
			return "", errors.Wrapf(codec.ErrOutOfRange, "%s must be %d bytes but is %d", name, ledgerHashLength, len(hash))
		}
	}
	return codec.EncodeHex(h.Bytes()), nil
}

// DecodeLedgerData decodes a ledger header.
func DecodeLedgerData(value string) (*LedgerHeader, error) {
	r, err := codec.NewReaderFromHex(value)
	if err != nil {
		return nil, err
	}
	header := &LedgerHeader{}
	if err := header.DecodeFromReader(r, LedgerHeaderLength); err != nil {
		return nil, err
	}
	if r.HasRemaining() {
		return nil, errors.Wrapf(codec.ErrMalformedInput, "%d bytes after ledger header", r.Remaining())
	}
	return header, nil
}

func readUint32(r *codec.Reader) (uint32, error) {
	v, err := r.ReadUInt(4)
	return uint32(v), err
}
