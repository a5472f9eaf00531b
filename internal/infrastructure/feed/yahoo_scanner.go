package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"IssueRadar/internal/domain"
	"IssueRadar/internal/scanner"
)

const yahooFinanceBaseURL = "https://finance.yahoo.com"

// YahooScanner scrapes headline streams from Yahoo Finance ticker news pages.
type YahooScanner struct {
	client *http.Client
	loc    *time.Location
}

// NewYahooScanner wires an HTTP client and the reference timezone.
func NewYahooScanner(client *http.Client, loc *time.Location) *YahooScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &YahooScanner{client: client, loc: loc}
}

// Name identifies the strategy inside the registry.
func (y *YahooScanner) Name() string {
	return "yahoo"
}

// Scan walks each ticker's news page and extracts headlines. Entries without
// a title or link are skipped; a missing timestamp falls back to fetch time.
func (y *YahooScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Article, error) {
	if len(req.Tickers) == 0 {
		return nil, fmt.Errorf("no tickers provided for source %s", req.SourceName)
	}

	results := make([]domain.Article, 0)
	seen := map[string]struct{}{}

	for _, ticker := range req.Tickers {
		pageURL, err := buildTickerURL(req.URL, ticker)
		if err != nil {
			return nil, fmt.Errorf("ticker %s: %w", ticker, err)
		}

		doc, err := y.fetchDocument(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("ticker %s: %w", ticker, err)
		}

		for _, article := range y.extractArticles(doc) {
			if _, ok := seen[article.Link]; ok {
				continue
			}
			seen[article.Link] = struct{}{}
			results = append(results, article)
		}
	}

	return results, nil
}

func (y *YahooScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "IssueRadar/1.0")

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func (y *YahooScanner) extractArticles(doc *goquery.Document) []domain.Article {
	var collected []domain.Article

	doc.Find("li.stream-item, li.js-stream-content").Each(func(i int, item *goquery.Selection) {
		link := item.Find("a[href]").First()
		href, _ := link.Attr("href")
		if href == "" {
			return
		}
		if !strings.HasPrefix(href, "http") {
			href = yahooFinanceBaseURL + href
		}

		title := strings.TrimSpace(item.Find("h3").First().Text())
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}
		if title == "" {
			return
		}

		published := time.Now().In(y.loc)
		if stamp, ok := item.Find("time").First().Attr("datetime"); ok {
			if parsed, err := time.Parse(time.RFC3339, stamp); err == nil {
				published = parsed.In(y.loc)
			}
		}

		publisher := strings.TrimSpace(item.Find(".publishing").First().Text())
		if idx := strings.Index(publisher, "•"); idx >= 0 {
			publisher = strings.TrimSpace(publisher[:idx])
		}
		source := "Yahoo"
		if publisher != "" {
			source = fmt.Sprintf("Yahoo (%s)", publisher)
		}

		collected = append(collected, domain.Article{
			Title:       title,
			Link:        href,
			PublishedAt: published,
			Source:      source,
		})
	})

	return collected
}

func buildTickerURL(base, ticker string) (string, error) {
	if base == "" {
		base = fmt.Sprintf("%s/quote/%s/news", yahooFinanceBaseURL, url.PathEscape(ticker))
	}

	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid page url %s: %w", base, err)
	}

	query := parsed.Query()
	query.Set("p", ticker)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
