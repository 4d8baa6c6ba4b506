package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/partcat"
	"github.com/fwojciec/partcat/build"
)

// Run executes the refresh command.
func (c *RefreshCmd) Run(deps *Dependencies) error {
	return runBuild(deps)
}

// runBuild executes a full catalog rebuild with progress on stderr. It is
// shared between the refresh command and the implicit first-use build.
func runBuild(deps *Dependencies) error {
	fmt.Fprintln(deps.Stderr, "Downloading component catalog...")

	deps.Builder.Progress = func(e build.ProgressEvent) {
		if e.Err != nil {
			fmt.Fprintf(deps.Stderr, "  [%d/%d] %s: %s\n", e.Index, e.Total, e.Shard.SourceName, e.Err)
			return
		}
		fmt.Fprintf(deps.Stderr, "  [%d/%d] %s\n", e.Index, e.Total, e.Shard.SourceName)
	}

	result, err := deps.Builder.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", partcat.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stderr, "Built catalog with %d components in %d categories (%s)\n",
		result.Components, result.Categories, result.Duration.Round(time.Second))
	return nil
}

// ensureStore triggers an implicit first-use build when no catalog store
// has been promoted yet.
func ensureStore(deps *Dependencies) error {
	status, err := deps.Catalog.Status(deps.Ctx)
	if err != nil {
		return err
	}
	if status.HasStore {
		return nil
	}

	fmt.Fprintln(deps.Stderr, "No catalog store found. Building one now; this happens once.")
	return runBuild(deps)
}
