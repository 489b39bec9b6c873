package scraper

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gocolly/colly"
)

// Scraper fetches station web pages with browser-like request headers.
type Scraper struct {
	timeout time.Duration
}

func New() *Scraper {
	return &Scraper{timeout: 30 * time.Second}
}

// Fetch retrieves the page at url and returns its body text. A non-success
// status or an empty body is an error.
func (s *Scraper) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/45.0.2454.101 Safari/537.36")
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "zh-TW,zh;q=0.9,en-US;q=0.5")
		r.Headers.Set("Connection", "keep-alive")
		r.Headers.Set("Upgrade-Insecure-Requests", "1")
	})

	var body []byte
	c.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	var fetchErr error
	c.OnError(func(r *colly.Response, err error) {
		slog.Error("Request failed", "url", r.Request.URL, "status", r.StatusCode, "error", err)
		fetchErr = err
	})

	if err := c.Visit(url); err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if fetchErr != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, fetchErr)
	}
	if len(body) == 0 {
		return "", fmt.Errorf("empty response from %s", url)
	}

	return string(body), nil
}
