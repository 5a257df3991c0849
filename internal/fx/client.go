// Package fx fetches the latest EUR-based exchange rate table from the
// rate provider. The provider is best-effort: a failed fetch falls back
// to the last cached table, and callers degrade to an empty table when
// even that is unavailable.
package fx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/itsmeERRORr/esportscalendar/pkg/logger"
)

// RateTable maps a currency code to foreign units per 1 EUR.
type RateTable map[string]float64

const cacheKey = "fx:rates:eur"

type Client struct {
	baseURL  string
	http     *http.Client
	cache    *redis.Client
	cacheTTL time.Duration
	log      *logger.Logger
}

// NewClient builds a rate provider client. cache may be nil, in which
// case the redis fallback layer is skipped.
func NewClient(baseURL string, timeout time.Duration, cache *redis.Client, cacheTTL time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		cache:    cache,
		cacheTTL: cacheTTL,
		log:      log,
	}
}

type latestResponse struct {
	Rates RateTable `json:"rates"`
}

// Latest returns the current rate table, base EUR. On provider failure
// it serves the last cached table if one exists.
func (c *Client) Latest(ctx context.Context) (RateTable, error) {
	rates, err := c.fetch(ctx)
	if err != nil {
		if cached, ok := c.fromCache(ctx); ok {
			c.log.WithField("error", err.Error()).Warn("rate fetch failed, serving cached table")
			return cached, nil
		}
		return nil, err
	}

	c.toCache(ctx, rates)
	return rates, nil
}

func (c *Client) fetch(ctx context.Context) (RateTable, error) {
	url := c.baseURL + "/latest?base=EUR&places=6&format=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build rates request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rate provider returned status %d", resp.StatusCode)
	}

	var body latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode rates response: %w", err)
	}
	if body.Rates == nil {
		return nil, fmt.Errorf("rate provider returned no rates")
	}

	return body.Rates, nil
}

func (c *Client) fromCache(ctx context.Context) (RateTable, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, cacheKey).Result()
	if err != nil {
		return nil, false
	}
	var rates RateTable
	if err := json.Unmarshal([]byte(raw), &rates); err != nil {
		return nil, false
	}
	return rates, true
}

func (c *Client) toCache(ctx context.Context, rates RateTable) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(rates)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey, raw, c.cacheTTL).Err(); err != nil {
		c.log.WithField("error", err.Error()).Warn("failed to cache rate table")
	}
}
