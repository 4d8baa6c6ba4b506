package main

import (
	"context"
	"io"

	"github.com/fwojciec/partcat"
	"github.com/fwojciec/partcat/build"
	"github.com/fwojciec/partcat/search"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Catalog  partcat.CatalogService
	Searcher *search.Searcher
	Builder  *build.Builder
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB       string `help:"Catalog store path" env:"PARTCAT_DB"`
	IndexURL string `default:"${index_url}" help:"Bulk dataset base URL"`
	LiveURL  string `default:"${live_url}" help:"Live product detail endpoint"`
	Verbose  bool   `short:"v" help:"Log service calls to stderr"`

	Search  SearchCmd  `cmd:"" help:"Search the component catalog"`
	Details DetailsCmd `cmd:"" help:"Show details for a single component"`
	Status  StatusCmd  `cmd:"" help:"Show catalog store status"`
	Refresh RefreshCmd `cmd:"" help:"Download the dataset and rebuild the catalog store"`
	Serve   ServeCmd   `cmd:"" help:"Serve the catalog over MCP on stdio"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query       []string `arg:"" optional:"" help:"Search terms matched against part numbers and descriptions"`
	Category    string   `short:"c" help:"Filter by category or subcategory name"`
	Package     string   `short:"p" help:"Filter by package, e.g. 0805"`
	Basic       bool     `short:"b" help:"Only basic parts (no extended-part fee)"`
	MinStock    int      `help:"Minimum stock level"`
	Resistance  string   `help:"Resistance value, e.g. 10k, 4.7M, 100R"`
	Capacitance string   `help:"Capacitance value, e.g. 100nF, 4.7uF"`
	MinVoltage  string   `help:"Minimum voltage rating, e.g. 16V"`
	MinCurrent  string   `help:"Minimum output current rating, e.g. 500mA"`
	MinPower    string   `help:"Minimum power rating, e.g. 250mW"`
	Limit       int      `short:"n" default:"10" help:"Maximum number of results"`
}

// DetailsCmd is the "details" subcommand.
type DetailsCmd struct {
	ID string `arg:"" help:"Catalog ID, e.g. C17976"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct{}

// RefreshCmd is the "refresh" subcommand.
type RefreshCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct{}
