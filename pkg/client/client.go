// Package client implements the commands of the ledgercodec tool.
package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/urfave/cli/v2"

	"github.com/xrplkit/ledger-codec/pkg/binarycodec"
	"github.com/xrplkit/ledger-codec/pkg/codec/definitions"
	"github.com/xrplkit/ledger-codec/pkg/config"
	"github.com/xrplkit/ledger-codec/pkg/log"
)

const (
	flagConfig      = "config"
	flagDefinitions = "definitions"
	flagLogLevel    = "log-level"
	flagStrict      = "strict"
	flagLogJSON     = "log-json"
	flagWorkers     = "workers"
)

var json = jsoniter.Config{
	UseNumber:   true,
	EscapeHTML:  false,
	SortMapKeys: true,
}.Froze()

// NewApp returns the ledgercodec application with every command registered.
func NewApp() *cli.App {
	return &cli.App{
		Name:  "ledgercodec",
		Usage: "Encode and decode ledger transactions and objects",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "Path to YAML config",
			},
			&cli.StringFlag{
				Name:  flagDefinitions,
				Usage: "Path to definitions.json, the embedded table is used if empty",
			},
			&cli.StringFlag{
				Name:  flagLogLevel,
				Usage: "Log level, one of " + strings.Join(log.Levels, ", "),
			},
			&cli.BoolFlag{
				Name:  flagLogJSON,
				Usage: "Write logs as JSON lines",
			},
			&cli.BoolFlag{
				Name:  flagStrict,
				Usage: "Reject unknown field names instead of skipping them",
			},
			&cli.IntFlag{
				Name:  flagWorkers,
				Usage: "Number of concurrent decoders for batch-decode",
			},
		},
		Commands: []*cli.Command{
			GetEncodeCommand(),
			GetDecodeCommand(),
			GetTransactionIDCommand(),
			GetEncodeForSigningCommand(),
			GetEncodeForMultiSigningCommand(),
			GetEncodeForSigningClaimCommand(),
			GetEncodeQualityCommand(),
			GetDecodeQualityCommand(),
			GetDecodeLedgerDataCommand(),
			GetFieldsCommand(),
			GetEnumCommand(),
			GetBatchDecodeCommand(),
		},
	}
}

type session struct {
	config *config.Config
	logger log.Logger
	codec  *binarycodec.Codec
}

func setup(c *cli.Context) (*session, error) {
	cfg := config.Default()
	if path := c.String(flagConfig); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.Merge(&config.Config{
		Definitions: c.String(flagDefinitions),
		LogLevel:    c.String(flagLogLevel),
		LogJSON:     c.Bool(flagLogJSON),
		Strict:      c.Bool(flagStrict),
		Workers:     c.Int(flagWorkers),
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := log.NewLogger(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		return nil, err
	}
	opts := binarycodec.Options{
		Logger: logger,
		Strict: cfg.Strict,
	}
	if cfg.Definitions != "" {
		defs, err := definitions.LoadFile(cfg.Definitions)
		if err != nil {
			return nil, err
		}
		logger.Debugf("Loaded definitions from %s", cfg.Definitions)
		opts.Definitions = defs
	}
	bc, err := binarycodec.New(opts)
	if err != nil {
		return nil, err
	}
	return &session{
		config: cfg,
		logger: logger,
		codec:  bc,
	}, nil
}

// readInput returns the first argument, or stdin when it is absent or "-".
func readInput(c *cli.Context) (string, error) {
	if c.Args().Len() > 0 && c.Args().First() != "-" {
		return strings.TrimSpace(c.Args().First()), nil
	}
	data, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return "", errors.Wrap(err, "read stdin")
	}
	return strings.TrimSpace(string(data)), nil
}

func readDocument(c *cli.Context) (map[string]any, error) {
	input, err := readInput(c)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{}
	if err := json.UnmarshalFromString(input, &doc); err != nil {
		return nil, errors.Wrap(err, "parse JSON document")
	}
	return doc, nil
}

func writeJSON(c *cli.Context, v any) error {
	out, err := json.MarshalToString(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, out)
	return err
}

func writeLine(c *cli.Context, value string) error {
	_, err := fmt.Fprintln(c.App.Writer, value)
	return err
}
