package types

import (
	"github.com/cockroachdb/errors"

	"github.com/xrplkit/ledger-codec/pkg/codec"
	"github.com/xrplkit/ledger-codec/pkg/codec/definitions"
)

const (
	pathSetEnd    byte = 0x00
	pathSeparator byte = 0xFF

	stepAccount  byte = 0x01
	stepCurrency byte = 0x10
	stepIssuer   byte = 0x20
	stepMask          = stepAccount | stepCurrency | stepIssuer
)

// pathSetType is a list of paths, each a list of steps. Paths are separated by 0xFF and
// the set ends with 0x00.
type pathSetType struct{}

func (pathSetType) fromJSON(c *Context, field definitions.FieldInstance, value any) ([]byte, error) {
	paths, err := toSlice(value, field.Name)
	if err != nil {
		return nil, err
	}
	w := codec.NewWriter()
	for i, path := range paths {
		if i > 0 {
			_ = w.WriteByte(pathSeparator)
		}
		steps, err := toSlice(path, "path")
		if err != nil {
			return nil, err
		}
		if len(steps) == 0 {
			return nil, errors.Wrapf(codec.ErrInvalidStructure, "path %d has no steps", i)
		}
		for j, step := range steps {
			hop, err := toMap(step, "path step")
			if err != nil {
				return nil, err
			}
			if err := writePathStep(w, hop); err != nil {
				return nil, errors.Wrapf(err, "path %d step %d", i, j)
			}
		}
	}
	_ = w.WriteByte(pathSetEnd)
	return w.Result(), nil
}

func writePathStep(w *codec.Writer, hop map[string]any) error {
	var (
		kind   byte
		fields [][]byte
	)
	if account, ok := hop["account"]; ok {
		str, err := toString(account, "account")
		if err != nil {
			return err
		}
		data, err := parseAccountID(str)
		if err != nil {
			return err
		}
		kind |= stepAccount
		fields = append(fields, data)
	}
	if currency, ok := hop["currency"]; ok {
		str, err := toString(currency, "currency")
		if err != nil {
			return err
		}
		data, err := parseCurrency(str)
		if err != nil {
			return err
		}
		kind |= stepCurrency
		fields = append(fields, data)
	}
	if issuer, ok := hop["issuer"]; ok {
		str, err := toString(issuer, "issuer")
		if err != nil {
			return err
		}
		data, err := parseAccountID(str)
		if err != nil {
			return err
		}
		kind |= stepIssuer
		fields = append(fields, data)
	}
	if kind == 0 {
		return errors.Wrap(codec.ErrInvalidStructure, "path step has no account, currency or issuer")
	}
	_ = w.WriteByte(kind)
	for _, f := range fields {
		w.WriteBytes(f)
	}
	return nil
}

func (pathSetType) toJSON(c *Context, field definitions.FieldInstance, r *codec.Reader, hint int) (any, error) {
	paths := []any{}
	path := []any{}
	for {
		kind, err := r.ReadByte()
		if err != nil {
			return nil, errors.Mark(errors.Wrap(err, "path set is not terminated"), codec.ErrInvalidStructure)
		}
		switch kind {
		case pathSetEnd, pathSeparator:
			if kind == pathSetEnd && len(paths) == 0 && len(path) == 0 {
				return paths, nil
			}
			if len(path) == 0 {
				return nil, errors.Wrap(codec.ErrInvalidStructure, "empty path")
			}
			paths = append(paths, path)
			if kind == pathSetEnd {
				return paths, nil
			}
			path = []any{}
			continue
		}
		if kind&^stepMask != 0 {
			return nil, errors.Wrapf(codec.ErrMalformedInput, "invalid path step type %#x", kind)
		}
		hop := map[string]any{}
		if kind&stepAccount != 0 {
			if hop["account"], err = readAccountID(r); err != nil {
				return nil, err
			}
		}
		if kind&stepCurrency != 0 {
			if hop["currency"], err = readCurrency(r); err != nil {
				return nil, err
			}
		}
		if kind&stepIssuer != 0 {
			if hop["issuer"], err = readAccountID(r); err != nil {
				return nil, err
			}
		}
		path = append(path, hop)
	}
}
