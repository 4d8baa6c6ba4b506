package main

import (
	"fmt"

	"github.com/fwojciec/partcat"
)

// Run executes the details command.
func (c *DetailsCmd) Run(deps *Dependencies) error {
	if err := ensureStore(deps); err != nil {
		return err
	}

	result, err := deps.Searcher.Details(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", partcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, partcat.FormatDetails(result))
	return nil
}
