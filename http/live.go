package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/partcat"
)

// DefaultLiveBaseURL is the supplier's product-detail endpoint.
const DefaultLiveBaseURL = "https://wmsc.lcsc.com/ftps/wm/product/detail"

// DefaultLiveTimeout bounds a single live lookup. Enrichment is best-effort,
// so a slow endpoint degrades results to database-only instead of stalling
// the search.
const DefaultLiveTimeout = 10 * time.Second

// Ensure LiveClient implements partcat.LiveClient at compile time.
var _ partcat.LiveClient = (*LiveClient)(nil)

// LiveClient fetches current stock, pricing and specification data for a
// single component. Every failure mode maps to EUNAVAILABLE; no retries and
// no caching.
type LiveClient struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// LiveOption configures a LiveClient.
type LiveOption func(*LiveClient)

// WithLiveBaseURL overrides the detail endpoint. Used by tests.
func WithLiveBaseURL(url string) LiveOption {
	return func(c *LiveClient) {
		c.baseURL = url
	}
}

// WithLiveTimeout sets the timeout for live lookups.
// Defaults to DefaultLiveTimeout if not specified.
func WithLiveTimeout(d time.Duration) LiveOption {
	return func(c *LiveClient) {
		c.timeout = d
	}
}

// NewLiveClient creates a new LiveClient.
func NewLiveClient(opts ...LiveOption) *LiveClient {
	c := &LiveClient{
		baseURL: DefaultLiveBaseURL,
		timeout: DefaultLiveTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// liveEnvelope mirrors the detail endpoint's response document.
type liveEnvelope struct {
	Code   int `json:"code"`
	Result struct {
		StockNumber      int `json:"stockNumber"`
		ProductPriceList []struct {
			Ladder   int     `json:"ladder"`
			USDPrice float64 `json:"usdPrice"`
		} `json:"productPriceList"`
		ParamVOList []struct {
			ParamNameEn  string `json:"paramNameEn"`
			ParamValueEn string `json:"paramValueEn"`
		} `json:"paramVOList"`
		PDFURL        string   `json:"pdfUrl"`
		ProductImages []string `json:"productImages"`
	} `json:"result"`
}

// FetchLive performs a single detail lookup. The endpoint expects a browser
// user agent and referer; requests without them are rejected.
func (c *LiveClient) FetchLive(ctx context.Context, catalogID string) (*partcat.LiveSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?productCode="+catalogID, nil)
	if err != nil {
		return nil, partcat.Errorf(partcat.EUNAVAILABLE, "live lookup for %s failed: %v", catalogID, err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Referer", "https://jlcpcb.com/")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, partcat.Errorf(partcat.EUNAVAILABLE, "live lookup for %s failed: %v", catalogID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, partcat.Errorf(partcat.EUNAVAILABLE, "live lookup for %s returned HTTP %d", catalogID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, partcat.Errorf(partcat.EUNAVAILABLE, "live lookup for %s failed: %v", catalogID, err)
	}

	var env liveEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, partcat.Errorf(partcat.EUNAVAILABLE, "live lookup for %s returned malformed body", catalogID)
	}
	if env.Code != http.StatusOK {
		return nil, partcat.Errorf(partcat.EUNAVAILABLE, "live lookup for %s returned code %d", catalogID, env.Code)
	}

	snapshot := &partcat.LiveSnapshot{
		CatalogID:    catalogID,
		Stock:        env.Result.StockNumber,
		DatasheetURL: env.Result.PDFURL,
		Images:       env.Result.ProductImages,
		FetchedAt:    time.Now().UTC(),
	}
	for _, tier := range env.Result.ProductPriceList {
		snapshot.Prices = append(snapshot.Prices, partcat.PriceTier{Qty: tier.Ladder, Price: tier.USDPrice})
	}
	for _, p := range env.Result.ParamVOList {
		snapshot.Params = append(snapshot.Params, partcat.LiveParam{Name: p.ParamNameEn, Value: p.ParamValueEn})
	}

	return snapshot, nil
}
