/**
 * @description
 * Client for Yahoo Finance public endpoints.
 * Supplies the news source (search API) and the market-data source (chart API)
 * the recommendation pipeline consumes.
 *
 * @dependencies
 * - net/http
 * - encoding/json
 * - backend/internal/config
 *
 * @notes
 * - Yahoo rejects requests without a browser-style User-Agent.
 * - All methods are ctx-aware and return bounded results.
 */

package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stocksense-project/backend/internal/config"
	"github.com/stocksense-project/backend/internal/logger"
)

const (
	requestTimeout = 15 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(cfg.Yahoo.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// SearchNews returns up to limit recent headlines for a symbol
func (c *Client) SearchNews(ctx context.Context, symbol string, limit int) ([]NewsItem, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}
	if limit <= 0 {
		limit = 5
	}

	endpoint := fmt.Sprintf("%s/v1/finance/search?q=%s&newsCount=%d",
		c.baseURL, url.QueryEscape(symbol), limit)

	var result searchResponse
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("news search for %s failed: %w", symbol, err)
	}

	items := make([]NewsItem, 0, limit)
	for _, article := range result.News {
		if len(items) >= limit {
			break
		}
		if article.Title == "" {
			continue
		}
		publisher := article.Publisher
		if publisher == "" {
			publisher = "Yahoo Finance"
		}
		publishedAt := time.Now().UTC()
		if article.ProviderPublishTime > 0 {
			publishedAt = time.Unix(article.ProviderPublishTime, 0).UTC()
		}
		items = append(items, NewsItem{
			Title:       article.Title,
			Publisher:   publisher,
			URL:         article.Link,
			PublishedAt: publishedAt,
		})
	}

	return items, nil
}

// Quote returns the current snapshot for a symbol via the chart API metadata
func (c *Client) Quote(ctx context.Context, symbol string) (*Quote, error) {
	result, err := c.chart(ctx, symbol, "5d")
	if err != nil {
		return nil, err
	}

	meta := result.Chart.Result[0].Meta
	name := meta.ShortName
	if name == "" {
		name = meta.LongName
	}
	if name == "" {
		name = meta.Symbol
	}

	previousClose := meta.PreviousClose
	if previousClose == 0 {
		previousClose = meta.ChartPreviousClose
	}

	return &Quote{
		Symbol:        meta.Symbol,
		Name:          name,
		CurrentPrice:  meta.RegularMarketPrice,
		PreviousClose: previousClose,
	}, nil
}

// History returns date-ordered daily bars for a symbol over a range such as "1mo"
func (c *Client) History(ctx context.Context, symbol, rng string) ([]Bar, error) {
	if rng == "" {
		rng = "1mo"
	}

	result, err := c.chart(ctx, symbol, rng)
	if err != nil {
		return nil, err
	}

	data := result.Chart.Result[0]
	if len(data.Indicators.Quote) == 0 {
		return nil, nil
	}
	quote := data.Indicators.Quote[0]

	bars := make([]Bar, 0, len(data.Timestamp))
	for i, ts := range data.Timestamp {
		if i >= len(quote.Close) {
			break
		}
		bar := Bar{Date: time.Unix(ts, 0).UTC()}
		bar.Close = quote.Close[i]
		if i < len(quote.Open) {
			bar.Open = quote.Open[i]
		}
		if i < len(quote.High) {
			bar.High = quote.High[i]
		}
		if i < len(quote.Low) {
			bar.Low = quote.Low[i]
		}
		if i < len(quote.Volume) {
			bar.Volume = quote.Volume[i]
		}
		bars = append(bars, bar)
	}

	return bars, nil
}

func (c *Client) chart(ctx context.Context, symbol, rng string) (*chartResponse, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, fmt.Errorf("symbol is required")
	}

	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=1d",
		c.baseURL, url.PathEscape(symbol), url.QueryEscape(rng))

	var result chartResponse
	if err := c.getJSON(ctx, endpoint, &result); err != nil {
		return nil, fmt.Errorf("chart lookup for %s failed: %w", symbol, err)
	}

	if result.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error for %s: %s", symbol, result.Chart.Error.Description)
	}
	if len(result.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}

	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		logger.Error("Yahoo API error: %d - %s", resp.StatusCode, string(respBody))
		return fmt.Errorf("yahoo api returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode yahoo response: %w", err)
	}

	return nil
}
