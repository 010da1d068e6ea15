package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/valyala/fasthttp"

	"crateworth/internal/marketplace"
	"crateworth/internal/pricing"
)

const (
	searchURL = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	// eBay category "Records"
	recordsCategoryID = "176985"
)

type Client struct {
	token string
	cache *marketplace.Cache
}

// NewClient builds an eBay Browse API client. cache may be nil.
func NewClient(token string, cache *marketplace.Cache) *Client {
	return &Client{token: token, cache: cache}
}

// Search runs an item-summary search in the records category.
func (c *Client) Search(ctx context.Context, query string) (*SearchResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("category_ids", recordsCategoryID)
	q.Set("limit", "50")
	u := searchURL + "?" + q.Encode()

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ebay: decode %s: %w", u, err)
	}
	return &resp, nil
}

// LowestListing searches and returns the cheapest usable listing's price
// and normalized shipping quote. ok is false when the search came back with
// nothing priceable — absence, not an error.
func (c *Client) LowestListing(ctx context.Context, query string) (price float64, ship pricing.ShippingQuote, ok bool, err error) {
	resp, err := c.Search(ctx, query)
	if err != nil {
		return 0, pricing.ShippingQuote{}, false, err
	}
	item, price, found := LowestPriced(resp.ItemSummaries)
	if !found {
		return 0, pricing.ShippingQuote{}, false, nil
	}
	return price, ExtractShipping(item), true, nil
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
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("X-EBAY-C-MARKETPLACE-ID", "EBAY_US")

	if err := fasthttp.Do(req, resp); err != nil {
		return nil, fmt.Errorf("ebay: request %s: %w", u, err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return nil, fmt.Errorf("ebay: %s returned status %d", u, resp.StatusCode())
	}

	body := append([]byte(nil), resp.Body()...)
	c.cache.Set(ctx, u, body)
	return body, nil
}
