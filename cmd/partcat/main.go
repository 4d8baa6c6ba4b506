package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/partcat"
	"github.com/fwojciec/partcat/build"
	parthttp "github.com/fwojciec/partcat/http"
	"github.com/fwojciec/partcat/search"
	partslog "github.com/fwojciec/partcat/slog"
	"github.com/fwojciec/partcat/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Catalog store path. Set before calling Run().
	DBPath string

	// Handle to the active catalog store.
	Handle *sqlite.Handle
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Handle != nil {
		return m.Handle.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("partcat"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
		kong.Vars{
			"index_url": parthttp.DefaultIndexBaseURL,
			"live_url":  parthttp.DefaultLiveBaseURL,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'partcat --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	m.Handle = sqlite.NewHandle(m.DBPath)
	if err := m.Handle.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PARTCAT_DB to use a different store path\n")
		return fmt.Errorf("failed to open catalog store at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	logger := newLogger(stderr, cli.Verbose)

	var catalog partcat.CatalogService = sqlite.NewCatalogService(m.Handle)
	var live partcat.LiveClient = parthttp.NewLiveClient(parthttp.WithLiveBaseURL(cli.LiveURL))
	if cli.Verbose {
		catalog = partslog.NewLoggingCatalogService(catalog, logger)
		live = partslog.NewLoggingLiveClient(live, logger)
	}

	deps.Catalog = catalog
	deps.Searcher = &search.Searcher{Catalog: catalog, Live: live}
	deps.Builder = &build.Builder{
		Fetcher: parthttp.NewIndexFetcher(parthttp.WithIndexBaseURL(cli.IndexURL)),
		Handle:  m.Handle,
		Source:  cli.IndexURL,
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("PARTCAT_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "partcat.db"
	}
	dir := filepath.Join(home, ".partcat")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "partcat.db")
}
