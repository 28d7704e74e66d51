package client

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/xrplkit/ledger-codec/pkg/codec"
	"github.com/xrplkit/ledger-codec/pkg/codec/definitions"
)

type fieldInfo struct {
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	Nth            int32     `json:"nth"`
	Header         codec.Hex `json:"header"`
	IsSigningField bool      `json:"isSigningField"`
	IsVLEncoded    bool      `json:"isVLEncoded"`
}

func GetFieldsCommand() *cli.Command {
	return &cli.Command{
		Name:  "fields",
		Usage: "List serialized fields in canonical order",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "type",
				Usage: "Only list fields of this type",
			},
		},
		Action: func(c *cli.Context) error {
			s, err := setup(c)
			if err != nil {
				return err
			}
			fields := s.codec.Definitions().SerializedFields()
			if typeName := c.String("type"); typeName != "" {
				fields = lo.Filter(fields, func(f definitions.FieldInstance, _ int) bool {
					return f.TypeName == typeName
				})
			}
			for _, f := range fields {
				header, err := codec.EncodeFieldHeader(f.Header)
				if err != nil {
					return err
				}
				if err := writeJSON(c, fieldInfo{
					Name:           f.Name,
					Type:           f.TypeName,
					Nth:            f.Nth,
					Header:         header,
					IsSigningField: f.IsSigningField,
					IsVLEncoded:    f.IsVLEncoded,
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func GetEnumCommand() *cli.Command {
	return &cli.Command{
		Name:      "enum",
		Usage:     "List the names of transaction-types, ledger-entry-types or transaction-results",
		ArgsUsage: "<table>",
		Action: func(c *cli.Context) error {
			s, err := setup(c)
			if err != nil {
				return err
			}
			defs := s.codec.Definitions()
			tables := map[string]*definitions.Enum{
				"transaction-types":   defs.TransactionTypes(),
				"ledger-entry-types":  defs.LedgerEntryTypes(),
				"transaction-results": defs.TransactionResults(),
			}
			enum, ok := tables[c.Args().First()]
			if !ok {
				return errors.Newf("unknown table %q, expected one of %v", c.Args().First(), lo.Keys(tables))
			}
			for _, name := range enum.Names() {
				code, _ := enum.Code(name)
				if err := writeJSON(c, map[string]any{"name": name, "code": code}); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
