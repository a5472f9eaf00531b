package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"IssueRadar/internal/domain"
	"IssueRadar/internal/scanner"
)

const (
	googleNewsSearchURL = "https://news.google.com/rss/search"
	// maxFeedEntries bounds how many entries per fetch feed into aggregation.
	maxFeedEntries = 150
)

// GoogleNewsScanner pulls macro/market headlines from the Google News RSS
// search endpoint.
type GoogleNewsScanner struct {
	parser *gofeed.Parser
	loc    *time.Location
}

// NewGoogleNewsScanner wires an HTTP client; entries without a parseable
// publish time are stamped with the fetch time in loc.
func NewGoogleNewsScanner(client *http.Client, loc *time.Location) *GoogleNewsScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if loc == nil {
		loc = time.UTC
	}

	parser := gofeed.NewParser()
	parser.Client = client
	parser.UserAgent = "IssueRadar/1.0"

	return &GoogleNewsScanner{parser: parser, loc: loc}
}

// Name identifies the strategy inside the registry.
func (g *GoogleNewsScanner) Name() string {
	return "googlenews"
}

// Scan fetches the RSS search feed for the configured query and maps entries
// to articles.
func (g *GoogleNewsScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("no query provided for source %s", req.SourceName)
	}

	feedURL, err := buildFeedURL(req.URL, req.Query)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", req.SourceName, err)
	}

	parsed, err := g.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed for %s: %w", req.SourceName, err)
	}

	articles := make([]domain.Article, 0, len(parsed.Items))
	for i, item := range parsed.Items {
		if i >= maxFeedEntries {
			break
		}
		if item.Title == "" || item.Link == "" {
			continue
		}

		published := time.Now().In(g.loc)
		if item.PublishedParsed != nil {
			published = item.PublishedParsed.In(g.loc)
		}

		articles = append(articles, domain.Article{
			Title:       item.Title,
			Summary:     item.Description,
			Link:        item.Link,
			PublishedAt: published,
		})
	}

	return articles, nil
}

func buildFeedURL(base, query string) (string, error) {
	if base == "" {
		base = googleNewsSearchURL
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid feed url %s: %w", base, err)
	}

	q := parsed.Query()
	q.Set("q", query)
	q.Set("hl", "en-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:en")
	parsed.RawQuery = q.Encode()
	return parsed.String(), nil
}
