package client

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

const maxLineSize = 4 * 1024 * 1024

func GetBatchDecodeCommand() *cli.Command {
	return &cli.Command{
		Name:  "batch-decode",
		Usage: "Decode newline separated hex blobs concurrently, printing one JSON document per line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Path to input file, stdin is used if empty",
			},
		},
		Action: func(c *cli.Context) error {
			s, err := setup(c)
			if err != nil {
				return err
			}
			var reader io.Reader = c.App.Reader
			if path := c.String("input"); path != "" {
				file, err := os.Open(path)
				if err != nil {
					return err
				}
				defer file.Close()
				reader = file
			}
			lines, err := readLines(reader)
			if err != nil {
				return err
			}

			results := make([]map[string]any, len(lines))
			g, ctx := errgroup.WithContext(c.Context)
			g.SetLimit(s.config.Workers)
			for i, line := range lines {
				i, line := i, line
				g.Go(func() error {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					doc, err := s.codec.Decode(line)
					if err != nil {
						return errors.Wrapf(err, "line %d", i+1)
					}
					results[i] = doc
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			s.logger.Infof("Decoded %d entries with %d workers", len(lines), s.config.Workers)
			for _, doc := range results {
				if err := writeJSON(c, doc); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func readLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lines := []string{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read input")
	}
	return lines, nil
}
