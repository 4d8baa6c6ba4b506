package main

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"
)

// Run executes the serve command, exposing the catalog as MCP tools over
// stdio until the client disconnects.
func (c *ServeCmd) Run(deps *Dependencies) error {
	if err := ensureStore(deps); err != nil {
		return err
	}

	s := newMCPServer(deps)

	fmt.Fprintln(deps.Stderr, "Serving MCP on stdio")
	return server.ServeStdio(s)
}
