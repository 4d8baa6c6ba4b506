// Package http provides HTTP-based implementations of partcat.IndexFetcher
// and partcat.LiveClient.
package http

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/partcat"
)

// DefaultIndexBaseURL is the static host serving the bulk dataset.
const DefaultIndexBaseURL = "https://yaqwsx.github.io/jlcparts/data"

// DefaultIndexTimeout is the default timeout for manifest and shard
// downloads. Shards run to a few megabytes, so this is more generous than
// the live-lookup timeout.
const DefaultIndexTimeout = 30 * time.Second

// Ensure IndexFetcher implements partcat.IndexFetcher at compile time.
var _ partcat.IndexFetcher = (*IndexFetcher)(nil)

// IndexFetcher retrieves the dataset manifest and gzipped shard payloads.
// It performs pure fetches: no retries (the builder retries) and no local
// state.
type IndexFetcher struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// IndexOption configures an IndexFetcher.
type IndexOption func(*IndexFetcher)

// WithIndexBaseURL overrides the dataset host. Used by tests.
func WithIndexBaseURL(url string) IndexOption {
	return func(f *IndexFetcher) {
		f.baseURL = url
	}
}

// WithIndexTimeout sets the timeout for index requests.
// Defaults to DefaultIndexTimeout if not specified.
func WithIndexTimeout(d time.Duration) IndexOption {
	return func(f *IndexFetcher) {
		f.timeout = d
	}
}

// NewIndexFetcher creates a new IndexFetcher.
func NewIndexFetcher(opts ...IndexOption) *IndexFetcher {
	f := &IndexFetcher{
		baseURL: DefaultIndexBaseURL,
		timeout: DefaultIndexTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// manifestDocument mirrors the remote index.json layout: categories keyed
// by main-category name, each holding subcategories keyed by name.
type manifestDocument struct {
	Categories map[string]map[string]struct {
		SourceName string `json:"sourcename"`
	} `json:"categories"`
}

// FetchManifest retrieves and parses the shard manifest. The shard order is
// made deterministic by sorting category and subcategory names.
func (f *IndexFetcher) FetchManifest(ctx context.Context) (*partcat.Manifest, error) {
	body, err := f.get(ctx, f.baseURL+"/index.json")
	if err != nil {
		return nil, err
	}

	var doc manifestDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, partcat.Errorf(partcat.EINVALID, "malformed manifest: %v", err)
	}

	manifest := &partcat.Manifest{
		Hash: fmt.Sprintf("%016x", xxhash.Sum64(body)),
	}

	categories := make([]string, 0, len(doc.Categories))
	for name := range doc.Categories {
		categories = append(categories, name)
	}
	sort.Strings(categories)

	for _, category := range categories {
		subs := doc.Categories[category]
		subNames := make([]string, 0, len(subs))
		for name := range subs {
			subNames = append(subNames, name)
		}
		sort.Strings(subNames)

		for _, sub := range subNames {
			manifest.Shards = append(manifest.Shards, partcat.ShardDescriptor{
				Category:    category,
				Subcategory: sub,
				SourceName:  subs[sub].SourceName,
			})
		}
	}

	return manifest, nil
}

// FetchShard retrieves one shard and returns its decompressed payload.
func (f *IndexFetcher) FetchShard(ctx context.Context, shard partcat.ShardDescriptor) ([]byte, error) {
	body, err := f.get(ctx, f.baseURL+"/"+shard.SourceName+".json.gz")
	if err != nil {
		return nil, err
	}

	gz, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, partcat.Errorf(partcat.EINVALID, "shard %s is not valid gzip: %v", shard.SourceName, err)
	}
	defer gz.Close()

	payload, err := io.ReadAll(gz)
	if err != nil {
		return nil, partcat.Errorf(partcat.EINVALID, "shard %s is truncated: %v", shard.SourceName, err)
	}

	return payload, nil
}

func (f *IndexFetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	return io.ReadAll(resp.Body)
}
