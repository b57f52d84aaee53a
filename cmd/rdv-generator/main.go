// Package main provides the CLI entrypoint for rdv-generator.
//
// rdv-generator reads a mapping workbook (flow list and field details),
// validates it against the rules in generator.yaml and renders workflow,
// DDL and resource files for every flow that passes:
//   - generate: validate and write files
//   - validate: validate only
//   - version: print the build version
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)

	stop()

	if err != nil {
		if !errors.Is(err, errRunFailed) {
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}
