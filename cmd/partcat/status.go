package main

import (
	"fmt"

	"github.com/fwojciec/partcat"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	status, err := deps.Catalog.Status(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", partcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, partcat.FormatStatus(status))
	return nil
}
