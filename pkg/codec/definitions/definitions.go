// Package definitions indexes the protocol field definition table.
//
// The table (definitions.json) is owned by the protocol and versioned with it. A Definitions
// value is built once, is never mutated afterwards and may be shared between goroutines.
package definitions

import (
	_ "embed"
	"os"
	"sync"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"golang.org/x/exp/slices"

	"github.com/xrplkit/ledger-codec/pkg/codec"
)

//go:embed definitions.json
var embeddedDefinitions []byte

var (
	defaultOnce        sync.Once
	defaultDefinitions *Definitions
	defaultErr         error
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// FieldInstance describes a single known field.
type FieldInstance struct {
	Name           string
	TypeName       string
	Nth            int32
	IsSerialized   bool
	IsSigningField bool
	IsVLEncoded    bool
	Header         codec.FieldHeader
}

// Ordinal returns the canonical sort key of the field.
func (f FieldInstance) Ordinal() int32 {
	return f.Header.Ordinal()
}

type fieldInfo struct {
	Nth            int32  `json:"nth"`
	IsVLEncoded    bool   `json:"isVLEncoded"`
	IsSerialized   bool   `json:"isSerialized"`
	IsSigningField bool   `json:"isSigningField"`
	Type           string `json:"type"`
}

type table struct {
	Types              map[string]int32        `json:"TYPES"`
	LedgerEntryTypes   map[string]int32        `json:"LEDGER_ENTRY_TYPES"`
	Fields             [][]jsoniter.RawMessage `json:"FIELDS"`
	TransactionResults map[string]int32        `json:"TRANSACTION_RESULTS"`
	TransactionTypes   map[string]int32        `json:"TRANSACTION_TYPES"`
}

// Definitions is the immutable field registry.
type Definitions struct {
	types              map[string]int32
	fieldsByName       map[string]FieldInstance
	fieldsByHeader     map[codec.FieldHeader]FieldInstance
	transactionTypes   *Enum
	ledgerEntryTypes   *Enum
	transactionResults *Enum
}

// Default returns the registry built from the embedded table. It is built exactly once.
func Default() (*Definitions, error) {
	defaultOnce.Do(func() {
		defaultDefinitions, defaultErr = Load(embeddedDefinitions)
	})
	return defaultDefinitions, defaultErr
}

// MustDefault is like Default but panics if the embedded table is malformed.
func MustDefault() *Definitions {
	defs, err := Default()
	if err != nil {
		panic(err)
	}
	return defs
}

// LoadFile builds a registry from a definitions.json file.
func LoadFile(path string) (*Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read definitions %s", path)
	}
	return Load(data)
}

// Load builds a registry from the JSON table. Any inconsistency in the table fails construction.
func Load(data []byte) (*Definitions, error) {
	raw := &table{}
	if err := json.Unmarshal(data, raw); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse definitions"), codec.ErrInvalidDefinitions)
	}
	if len(raw.Types) == 0 {
		return nil, errors.Wrap(codec.ErrInvalidDefinitions, "TYPES table is empty")
	}
	d := &Definitions{
		types:          raw.Types,
		fieldsByName:   make(map[string]FieldInstance, len(raw.Fields)),
		fieldsByHeader: make(map[codec.FieldHeader]FieldInstance, len(raw.Fields)),
	}
	for i, pair := range raw.Fields {
		field, err := parseField(pair, raw.Types)
		if err != nil {
			return nil, errors.Wrapf(err, "field entry %d", i)
		}
		if _, exist := d.fieldsByName[field.Name]; exist {
			return nil, errors.Wrapf(codec.ErrInvalidDefinitions, "duplicate field name %s", field.Name)
		}
		d.fieldsByName[field.Name] = field
		if !field.IsSerialized {
			continue
		}
		if prev, exist := d.fieldsByHeader[field.Header]; exist {
			return nil, errors.Wrapf(codec.ErrInvalidDefinitions, "fields %s and %s share header %s", prev.Name, field.Name, field.Header)
		}
		d.fieldsByHeader[field.Header] = field
	}
	var err error
	if d.transactionTypes, err = newEnum("TRANSACTION_TYPES", raw.TransactionTypes); err != nil {
		return nil, err
	}
	if d.ledgerEntryTypes, err = newEnum("LEDGER_ENTRY_TYPES", raw.LedgerEntryTypes); err != nil {
		return nil, err
	}
	if d.transactionResults, err = newEnum("TRANSACTION_RESULTS", raw.TransactionResults); err != nil {
		return nil, err
	}
	return d, nil
}

func parseField(pair []jsoniter.RawMessage, types map[string]int32) (FieldInstance, error) {
	if len(pair) != 2 {
		return FieldInstance{}, errors.Wrapf(codec.ErrInvalidDefinitions, "expected [name, info] pair but received %d elements", len(pair))
	}
	name := ""
	if err := json.Unmarshal(pair[0], &name); err != nil {
		return FieldInstance{}, errors.Mark(errors.Wrap(err, "field name"), codec.ErrInvalidDefinitions)
	}
	if name == "" {
		return FieldInstance{}, errors.Wrap(codec.ErrInvalidDefinitions, "empty field name")
	}
	info := &fieldInfo{}
	if err := json.Unmarshal(pair[1], info); err != nil {
		return FieldInstance{}, errors.Mark(errors.Wrapf(err, "field %s", name), codec.ErrInvalidDefinitions)
	}
	typeCode, ok := types[info.Type]
	if !ok {
		return FieldInstance{}, errors.Wrapf(codec.ErrInvalidDefinitions, "field %s references unknown type %q", name, info.Type)
	}
	field := FieldInstance{
		Name:           name,
		TypeName:       info.Type,
		Nth:            info.Nth,
		IsSerialized:   info.IsSerialized,
		IsSigningField: info.IsSigningField,
		IsVLEncoded:    info.IsVLEncoded,
		Header:         codec.FieldHeader{TypeCode: typeCode, FieldCode: info.Nth},
	}
	if field.IsSerialized {
		if _, err := codec.EncodeFieldHeader(field.Header); err != nil {
			return FieldInstance{}, errors.Mark(errors.Wrapf(err, "field %s", name), codec.ErrInvalidDefinitions)
		}
	}
	return field, nil
}

// FieldByName returns the field definition for name.
func (d *Definitions) FieldByName(name string) (FieldInstance, bool) {
	field, ok := d.fieldsByName[name]
	return field, ok
}

// FieldByHeader returns the serialized field definition for header.
func (d *Definitions) FieldByHeader(header codec.FieldHeader) (FieldInstance, bool) {
	field, ok := d.fieldsByHeader[header]
	return field, ok
}

// FieldNameByHeader returns the name of the serialized field with header.
func (d *Definitions) FieldNameByHeader(header codec.FieldHeader) (string, bool) {
	field, ok := d.fieldsByHeader[header]
	return field.Name, ok
}

// TypeCode returns the numeric code of a type name.
func (d *Definitions) TypeCode(typeName string) (int32, bool) {
	code, ok := d.types[typeName]
	return code, ok
}

// SerializedFields returns every serialized field in ascending ordinal order.
func (d *Definitions) SerializedFields() []FieldInstance {
	result := make([]FieldInstance, 0, len(d.fieldsByHeader))
	for _, field := range d.fieldsByHeader {
		result = append(result, field)
	}
	slices.SortFunc(result, func(a, b FieldInstance) bool {
		return a.Ordinal() < b.Ordinal()
	})
	return result
}

// TransactionTypes returns the TransactionType name table.
func (d *Definitions) TransactionTypes() *Enum {
	return d.transactionTypes
}

// LedgerEntryTypes returns the LedgerEntryType name table.
func (d *Definitions) LedgerEntryTypes() *Enum {
	return d.ledgerEntryTypes
}

// TransactionResults returns the TransactionResult name table.
func (d *Definitions) TransactionResults() *Enum {
	return d.transactionResults
}
