// Command splitbill splits a bill from the command line.
//
//	splitbill split --input bill.json
//	splitbill split --format json < bill.json
//	splitbill date 2024-03-05
//	splitbill tip --subtotal 120 --percent 10
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/mmynk/splitbill/pkg/logging"
)

func main() {
	logging.Setup()

	if err := newApp(os.Stdin, os.Stdout).Run(os.Args); err != nil {
		slog.Error("splitbill failed", "error", err)
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}
