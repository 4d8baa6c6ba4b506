package partcat

import "context"

// ShardDescriptor identifies one downloadable shard of the remote dataset.
// Each shard holds the components of a single subcategory.
type ShardDescriptor struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	SourceName  string `json:"sourcename"`
}

// Manifest is the ordered list of shards advertised by the remote index.
type Manifest struct {
	Shards []ShardDescriptor `json:"shards"`

	// Hash is a fingerprint of the raw manifest document, recorded in the
	// build metadata so identical manifests can be recognized.
	Hash string `json:"hash"`
}

// IndexFetcher retrieves the dataset manifest and shard payloads from the
// remote static host. Implementations perform pure fetches: no retries and
// no local state. Retrying is the builder's responsibility.
type IndexFetcher interface {
	// FetchManifest retrieves and parses the shard manifest.
	// Returns EINVALID if the manifest cannot be parsed.
	FetchManifest(ctx context.Context) (*Manifest, error)

	// FetchShard retrieves one shard and returns its decompressed payload.
	// Returns EINVALID if the payload is not valid gzip.
	FetchShard(ctx context.Context, shard ShardDescriptor) ([]byte, error)
}
