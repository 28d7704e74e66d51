// ledgercodec is a CLI which encodes and decodes ledger transactions and objects.
package main

import (
	"fmt"
	"os"

	"github.com/xrplkit/ledger-codec/pkg/client"
)

func main() {
	app := client.NewApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
