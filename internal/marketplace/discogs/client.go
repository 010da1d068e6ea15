package discogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"

	"github.com/valyala/fasthttp"

	"crateworth/internal/marketplace"
)

// errNotFound marks a 404: the release simply is not there. That is domain
// absence and is surfaced as a nil result, never mixed in with transport or
// server failures.
var errNotFound = errors.New("discogs: not found")

const (
	baseURL   = "https://api.discogs.com"
	userAgent = "crateworth/1.0 +https://github.com/crateworth"
)

type Client struct {
	token string
	cache *marketplace.Cache
}

// NewClient builds a Discogs client. cache may be nil.
func NewClient(token string, cache *marketplace.Cache) *Client {
	return &Client{token: token, cache: cache}
}

// SearchRelease looks up the Discogs release for an artist/title pair and
// returns the best match, or (0, nil) when nothing matched. Absence of a
// match is not an error.
func (c *Client) SearchRelease(ctx context.Context, artist, title string) (int64, error) {
	q := url.Values{}
	q.Set("type", "release")
	q.Set("artist", artist)
	q.Set("release_title", title)
	q.Set("per_page", "5")

	var resp SearchResponse
	if err := c.getJSON(ctx, baseURL+"/database/search?"+q.Encode(), &resp); err != nil {
		return 0, err
	}
	if len(resp.Results) == 0 {
		return 0, nil
	}
	return resp.Results[0].ID, nil
}

// Release fetches the release detail object. A nil result means the
// release does not exist.
func (c *Client) Release(ctx context.Context, releaseID int64) (*Release, error) {
	var rel Release
	err := c.getJSON(ctx, fmt.Sprintf("%s/releases/%d", baseURL, releaseID), &rel)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// MarketplaceStats fetches the release-level marketplace aggregate. A nil
// result means the release is unknown to the marketplace.
func (c *Client) MarketplaceStats(ctx context.Context, releaseID int64) (*Stats, error) {
	var st Stats
	err := c.getJSON(ctx, fmt.Sprintf("%s/marketplace/stats/%d", baseURL, releaseID), &st)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Listings fetches the live marketplace listings for a release. A nil
// result means the release has no listing page at all.
func (c *Client) Listings(ctx context.Context, releaseID int64) (*ListingsResponse, error) {
	var lr ListingsResponse
	u := fmt.Sprintf("%s/marketplace/listings?release_id=%d&per_page=100", baseURL, releaseID)
	err := c.getJSON(ctx, u, &lr)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func (c *Client) getJSON(ctx context.Context, u string, out any) error {
	body, err := c.get(ctx, u)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("discogs: decode %s: %w", u, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	if body, ok := c.cache.Get(ctx, u); ok {
		return body, nil
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(u)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Discogs token="+c.token)
	}

	if err := fasthttp.Do(req, resp); err != nil {
		return nil, fmt.Errorf("discogs: request %s: %w", u, err)
	}
	switch resp.StatusCode() {
	case fasthttp.StatusOK:
	case fasthttp.StatusNotFound:
		return nil, errNotFound
	default:
		return nil, fmt.Errorf("discogs: %s returned status %d", u, resp.StatusCode())
	}

	body := append([]byte(nil), resp.Body()...)
	c.cache.Set(ctx, u, body)
	return body, nil
}

// ListingPrices fetches the live listings tier for the fallback chain:
// usable prices plus the number of listings examined. An unknown release is
// an empty tier.
func (c *Client) ListingPrices(ctx context.Context, releaseID int64) ([]float64, int, error) {
	lr, err := c.Listings(ctx, releaseID)
	if err != nil {
		return nil, 0, err
	}
	if lr == nil {
		return nil, 0, nil
	}
	prices, sampleSize := lr.Prices()
	return prices, sampleSize, nil
}

// StatPrice fetches the release-stats tier: the single point estimate from
// marketplace stats, falling back to the release detail's lowest/estimated
// price. nil means this tier has nothing.
func (c *Client) StatPrice(ctx context.Context, releaseID int64) (*float64, error) {
	st, err := c.MarketplaceStats(ctx, releaseID)
	if err != nil {
		return nil, err
	}
	if p, ok := st.StatPrice(); ok {
		return &p, nil
	}
	rel, err := c.Release(ctx, releaseID)
	if err != nil {
		return nil, err
	}
	if p, ok := rel.StatPrice(); ok {
		return &p, nil
	}
	return nil, nil
}
