package definitions

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"

	"github.com/xrplkit/ledger-codec/pkg/codec"
)

// Enum is a bidirectional name table such as TRANSACTION_TYPES.
type Enum struct {
	table  string
	byName map[string]int32
	byCode map[int32]string
}

func newEnum(table string, values map[string]int32) (*Enum, error) {
	e := &Enum{
		table:  table,
		byName: make(map[string]int32, len(values)),
		byCode: make(map[int32]string, len(values)),
	}
	for name, code := range values {
		if prev, exist := e.byCode[code]; exist {
			return nil, errors.Wrapf(codec.ErrInvalidDefinitions, "%s: %s and %s share code %d", table, prev, name, code)
		}
		e.byName[name] = code
		e.byCode[code] = name
	}
	return e, nil
}

// Code returns the numeric value of name.
func (e *Enum) Code(name string) (int32, bool) {
	code, ok := e.byName[name]
	return code, ok
}

// Name returns the name of code.
func (e *Enum) Name(code int32) (string, bool) {
	name, ok := e.byCode[code]
	return name, ok
}

// Names returns all names ordered by their code.
func (e *Enum) Names() []string {
	codes := lo.Keys(e.byCode)
	slices.Sort(codes)
	return lo.Map(codes, func(code int32, _ int) string {
		return e.byCode[code]
	})
}

func (e *Enum) String() string {
	return e.table
}
