package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/mikey/leads-agent/internal/core"
)

const maxResultsPerQuery = 5

// DuckDuckGoClient is an implementation of the SearchClient interface
// against the DuckDuckGo HTML endpoint, which needs no API key.
type DuckDuckGoClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewDuckDuckGoClient creates a new DuckDuckGo search client
func NewDuckDuckGoClient(baseURL string, timeout time.Duration, logger *zap.Logger) *DuckDuckGoClient {
	return &DuckDuckGoClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Search runs a single query and returns result snippets
func (c *DuckDuckGoClient) Search(ctx context.Context, query string) ([]core.SearchResult, error) {
	endpoint := c.baseURL + "?q=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", "leads-agent/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", err)
	}

	results := parseResults(doc)
	c.logger.Debug("Search completed",
		zap.String("query", query),
		zap.Int("results", len(results)))
	return results, nil
}

// parseResults extracts title/URL/snippet triples from a DuckDuckGo HTML page
func parseResults(doc *goquery.Document) []core.SearchResult {
	var results []core.SearchResult

	doc.Find("div.result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		link := sel.Find("a.result__a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		snippet := strings.TrimSpace(sel.Find(".result__snippet").First().Text())

		if title == "" && snippet == "" {
			return true
		}
		results = append(results, core.SearchResult{
			Title:   title,
			URL:     cleanResultURL(href),
			Snippet: snippet,
		})
		return len(results) < maxResultsPerQuery
	})

	return results
}

// cleanResultURL unwraps DuckDuckGo's redirect links to the target URL
func cleanResultURL(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return href
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		return target
	}
	return href
}
