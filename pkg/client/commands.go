package client

import (
	"github.com/urfave/cli/v2"

	"github.com/xrplkit/ledger-codec/pkg/binarycodec"
)

// documentCommand builds a command that reads a JSON document and prints the result of op.
func documentCommand(name, usage string, op func(s *session, doc map[string]any) (string, error)) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "[JSON document or - for stdin]",
		Action: func(c *cli.Context) error {
			s, err := setup(c)
			if err != nil {
				return err
			}
			doc, err := readDocument(c)
			if err != nil {
				return err
			}
			result, err := op(s, doc)
			if err != nil {
				return err
			}
			return writeLine(c, result)
		},
	}
}

func GetEncodeCommand() *cli.Command {
	return documentCommand("encode", "Encode a JSON document to hex", func(s *session, doc map[string]any) (string, error) {
		return s.codec.Encode(doc)
	})
}

func GetTransactionIDCommand() *cli.Command {
	return documentCommand("transaction-id", "Hash a signed transaction to its identifier", func(s *session, doc map[string]any) (string, error) {
		return s.codec.TransactionID(doc)
	})
}

func GetEncodeForSigningCommand() *cli.Command {
	return documentCommand("encode-for-signing", "Encode the single signing data of a transaction", func(s *session, doc map[string]any) (string, error) {
		return s.codec.EncodeForSigning(doc)
	})
}

func GetEncodeForSigningClaimCommand() *cli.Command {
	return documentCommand("encode-for-signing-claim", "Encode the signing data of a payment channel claim", func(s *session, doc map[string]any) (string, error) {
		return s.codec.EncodeForSigningClaim(doc)
	})
}

func GetEncodeForMultiSigningCommand() *cli.Command {
	cmd := documentCommand("encode-for-multisigning", "Encode the multi signing data of a transaction for a signer", nil)
	cmd.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:     "signer",
			Aliases:  []string{"s"},
			Usage:    "Classic address of the signer",
			Required: true,
		},
	}
	cmd.Action = func(c *cli.Context) error {
		s, err := setup(c)
		if err != nil {
			return err
		}
		doc, err := readDocument(c)
		if err != nil {
			return err
		}
		result, err := s.codec.EncodeForMultiSigning(doc, c.String("signer"))
		if err != nil {
			return err
		}
		return writeLine(c, result)
	}
	return cmd
}

func GetDecodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Decode hex to a JSON document",
		ArgsUsage: "[hex or - for stdin]",
		Action: func(c *cli.Context) error {
			s, err := setup(c)
			if err != nil {
				return err
			}
			input, err := readInput(c)
			if err != nil {
				return err
			}
			doc, err := s.codec.Decode(input)
			if err != nil {
				return err
			}
			return writeJSON(c, doc)
		},
	}
}

func GetEncodeQualityCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode-quality",
		Usage:     "Encode a decimal book quality",
		ArgsUsage: "[decimal or - for stdin]",
		Action: func(c *cli.Context) error {
			input, err := readInput(c)
			if err != nil {
				return err
			}
			result, err := binarycodec.EncodeQuality(input)
			if err != nil {
				return err
			}
			return writeLine(c, result)
		},
	}
}

func GetDecodeQualityCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode-quality",
		Usage:     "Decode a book quality or book directory index",
		ArgsUsage: "[hex or - for stdin]",
		Action: func(c *cli.Context) error {
			input, err := readInput(c)
			if err != nil {
				return err
			}
			result, err := binarycodec.DecodeQuality(input)
			if err != nil {
				return err
			}
			return writeLine(c, result)
		},
	}
}

func GetDecodeLedgerDataCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode-ledger-data",
		Usage:     "Decode a ledger header",
		ArgsUsage: "[hex or - for stdin]",
		Action: func(c *cli.Context) error {
			input, err := readInput(c)
			if err != nil {
				return err
			}
			header, err := binarycodec.DecodeLedgerData(input)
			if err != nil {
				return err
			}
			return writeJSON(c, header)
		},
	}
}
