package codec

import (
	"encoding/hex"
	"encoding/json"
	"strings"
)

// Hex holds bytes rendered as upper case hex in JSON.
type Hex []byte

// EncodeHex renders data as upper case hex without separators.
func EncodeHex(data []byte) string {
	return strings.ToUpper(hex.EncodeToString(data))
}

func (h *Hex) UnmarshalJSON(b []byte) error {
	str := ""
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	res, err := DecodeHex(str)
	if err != nil {
		return err
	}
	*h = res
	return nil
}

func (h Hex) String() string {
	return EncodeHex(h)
}

func (h Hex) MarshalJSON() ([]byte, error) {
	return json.Marshal(EncodeHex(h))
}
