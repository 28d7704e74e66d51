package types

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slices"

	"github.com/xrplkit/ledger-codec/pkg/codec"
	"github.com/xrplkit/ledger-codec/pkg/codec/definitions"
)

const (
	objectEndMarkerName = "ObjectEndMarker"
	arrayEndMarkerName  = "ArrayEndMarker"
)

// FieldWithValue pairs a field with the canonical bytes of its value.
type FieldWithValue struct {
	Field definitions.FieldInstance
	Value []byte
}

// DecodedField pairs a field with its decoded value.
type DecodedField struct {
	Field definitions.FieldInstance
	Value any
}

// ObjectOptions controls how an object is encoded.
type ObjectOptions struct {
	// SigningFieldsOnly keeps only fields marked as signing fields.
	SigningFieldsOnly bool
	// Nested appends the object end marker.
	Nested bool
}

// ObjectFields resolves, filters and encodes the fields of doc and returns them in
// ascending ordinal order.
func (c *Context) ObjectFields(doc map[string]any, signingFieldsOnly bool) ([]FieldWithValue, error) {
	fields := make([]FieldWithValue, 0, len(doc))
	for name, value := range doc {
		field, ok := c.Definitions.FieldByName(name)
		if !ok {
			if c.Strict {
				return nil, errors.Wrapf(codec.ErrUnknownField, "field %q", name)
			}
			c.Logger.Debugf("Skipping unknown field %s", name)
			continue
		}
		if name == objectEndMarkerName || name == arrayEndMarkerName {
			return nil, errors.Wrapf(codec.ErrInvalidStructure, "%s cannot be set explicitly", name)
		}
		if !field.IsSerialized {
			c.Logger.Debugf("Skipping non serialized field %s", name)
			continue
		}
		if signingFieldsOnly && !field.IsSigningField {
			continue
		}
		encoded, err := c.encodeValue(field, value)
		if err != nil {
			return nil, errors.Wrapf(err, "encode %s", name)
		}
		fields = append(fields, FieldWithValue{Field: field, Value: encoded})
	}
	slices.SortFunc(fields, func(a, b FieldWithValue) bool {
		return a.Field.Ordinal() < b.Field.Ordinal()
	})
	return fields, nil
}

// EncodeObject writes doc in canonical field order.
func (c *Context) EncodeObject(w *codec.Writer, doc map[string]any, opts ObjectOptions) error {
	fields, err := c.ObjectFields(doc, opts.SigningFieldsOnly)
	if err != nil {
		return err
	}
	for _, f := range fields {
		if err := writeField(w, f); err != nil {
			return err
		}
	}
	if opts.Nested {
		return w.WriteByte(codec.ObjectEndMarker)
	}
	return nil
}

// DecodeObject reads fields until the reader is exhausted, or for a nested object until
// the object end marker. Fields are returned in the order read.
func (c *Context) DecodeObject(r *codec.Reader, nested bool) ([]DecodedField, error) {
	result := []DecodedField{}
	lastOrdinal := int32(-1)
	for {
		if !r.HasRemaining() {
			if nested {
				return nil, errors.Wrapf(codec.ErrInvalidStructure, "object is not terminated at offset %d", r.Offset())
			}
			return result, nil
		}
		if next, _ := r.PeekByte(); nested && next == codec.ObjectEndMarker {
			_, _ = r.ReadByte()
			return result, nil
		}
		field, value, err := c.readField(r)
		if err != nil {
			return nil, err
		}
		if field.Ordinal() <= lastOrdinal {
			return nil, errors.Wrapf(codec.ErrInvalidStructure, "field %s is out of canonical order", field.Name)
		}
		lastOrdinal = field.Ordinal()
		result = append(result, DecodedField{Field: field, Value: value})
	}
}

// ToMap converts decoded fields into a document.
func ToMap(fields []DecodedField) map[string]any {
	result := make(map[string]any, len(fields))
	for _, f := range fields {
		result[f.Field.Name] = f.Value
	}
	return result
}

func (c *Context) readField(r *codec.Reader) (definitions.FieldInstance, any, error) {
	offset := r.Offset()
	header, err := r.ReadFieldHeader()
	if err != nil {
		return definitions.FieldInstance{}, nil, err
	}
	field, ok := c.Definitions.FieldByHeader(header)
	if !ok {
		return definitions.FieldInstance{}, nil, errors.Wrapf(codec.ErrUnknownField, "header %s at offset %d", header, offset)
	}
	if field.Name == objectEndMarkerName || field.Name == arrayEndMarkerName {
		return definitions.FieldInstance{}, nil, errors.Wrapf(codec.ErrInvalidStructure, "unexpected %s at offset %d", field.Name, offset)
	}
	hint := noHint
	if field.IsVLEncoded {
		if hint, err = r.ReadVariableLength(); err != nil {
			return definitions.FieldInstance{}, nil, errors.Wrapf(err, "length of %s", field.Name)
		}
	}
	value, err := c.decodeValue(field, r, hint)
	if err != nil {
		return definitions.FieldInstance{}, nil, errors.Wrapf(err, "decode %s", field.Name)
	}
	return field, value, nil
}

func writeField(w *codec.Writer, f FieldWithValue) error {
	if err := w.WriteFieldHeader(f.Field.Header); err != nil {
		return err
	}
	if f.Field.IsVLEncoded {
		return w.WriteVariableLength(f.Value)
	}
	w.WriteBytes(f.Value)
	return nil
}

// objectType is a nested object terminated by the object end marker.
type objectType struct{}

func (objectType) fromJSON(c *Context, field definitions.FieldInstance, value any) ([]byte, error) {
	doc, err := toMap(value, field.Name)
	if err != nil {
		return nil, err
	}
	w := codec.NewWriter()
	if err := c.EncodeObject(w, doc, ObjectOptions{Nested: true}); err != nil {
		return nil, err
	}
	return w.Result(), nil
}

func (objectType) toJSON(c *Context, field definitions.FieldInstance, r *codec.Reader, hint int) (any, error) {
	fields, err := c.DecodeObject(r, true)
	if err != nil {
		return nil, err
	}
	return ToMap(fields), nil
}

// arrayType is a list of single field entries in caller order, terminated by the array end marker.
type arrayType struct{}

func (arrayType) fromJSON(c *Context, field definitions.FieldInstance, value any) ([]byte, error) {
	items, err := toSlice(value, field.Name)
	if err != nil {
		return nil, err
	}
	w := codec.NewWriter()
	for i, item := range items {
		entry, err := toMap(item, field.Name)
		if err != nil {
			return nil, err
		}
		if len(entry) != 1 {
			return nil, errors.Wrapf(codec.ErrInvalidStructure, "%s[%d] must have exactly one field but has %d", field.Name, i, len(entry))
		}
		for name, v := range entry {
			inner, ok := c.Definitions.FieldByName(name)
			if !ok {
				return nil, errors.Wrapf(codec.ErrUnknownField, "%s[%d] field %q", field.Name, i, name)
			}
			if !inner.IsSerialized || name == objectEndMarkerName || name == arrayEndMarkerName {
				return nil, errors.Wrapf(codec.ErrInvalidStructure, "%s[%d] field %s cannot be serialized", field.Name, i, name)
			}
			encoded, err := c.encodeValue(inner, v)
			if err != nil {
				return nil, errors.Wrapf(err, "%s[%d]", field.Name, i)
			}
			if err := writeField(w, FieldWithValue{Field: inner, Value: encoded}); err != nil {
				return nil, err
			}
		}
	}
	if err := w.WriteByte(codec.ArrayEndMarker); err != nil {
		return nil, err
	}
	return w.Result(), nil
}

func (arrayType) toJSON(c *Context, field definitions.FieldInstance, r *codec.Reader, hint int) (any, error) {
	result := []any{}
	for {
		if !r.HasRemaining() {
			return nil, errors.Wrapf(codec.ErrInvalidStructure, "array %s is not terminated at offset %d", field.Name, r.Offset())
		}
		if next, _ := r.PeekByte(); next == codec.ArrayEndMarker {
			_, _ = r.ReadByte()
			return result, nil
		}
		inner, value, err := c.readField(r)
		if err != nil {
			return nil, err
		}
		result = append(result, map[string]any{inner.Name: value})
	}
}
