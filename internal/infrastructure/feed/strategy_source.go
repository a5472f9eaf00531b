package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"IssueRadar/internal/config"
	"IssueRadar/internal/domain"
	"IssueRadar/internal/ports"
	"IssueRadar/internal/scanner"
)

// StrategySource implements ArticleSource via registered scanner strategies.
// Per-source fetch failures are logged and skipped; the remaining providers
// still contribute to the batch.
type StrategySource struct {
	registry *scanner.Registry
	sources  []config.SourceConfig
	logger   *slog.Logger
}

var _ ports.ArticleSource = (*StrategySource)(nil)

// NewStrategySource wires the scanner registry with config-defined sources.
func NewStrategySource(reg *scanner.Registry, sources []config.SourceConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sources:  sources,
		logger:   log,
	}
}

// FetchLatest executes every configured source, merges the results,
// de-duplicates by link, and sorts newest-first.
func (s *StrategySource) FetchLatest(ctx context.Context) ([]domain.Article, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	s.debug("fetch latest", "sources", len(s.sources))

	var merged []domain.Article
	for _, src := range s.sources {
		strategy, err := s.registry.Resolve(src.Scanner)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name, err)
		}

		req := scanner.Request{
			SourceName: src.Name,
			URL:        src.URL,
			Query:      src.Query,
			Tickers:    src.Tickers,
			Options:    src.Options,
		}

		results, err := strategy.Scan(ctx, req)
		if err != nil {
			s.warn("source fetch failed, skipping", "source", src.Name, "error", err)
			continue
		}

		for i := range results {
			if results[i].Source == "" {
				results[i].Source = src.Name
			}
		}
		s.debug("source produced articles", "source", src.Name, "count", len(results))
		merged = append(merged, results...)
	}

	deduped := dedupeByLink(merged)
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].PublishedAt.After(deduped[j].PublishedAt)
	})

	s.debug("strategy source done", "total_articles", len(deduped))
	return deduped, nil
}

func dedupeByLink(articles []domain.Article) []domain.Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]domain.Article, 0, len(articles))
	for _, art := range articles {
		if art.Link == "" {
			continue
		}
		if _, ok := seen[art.Link]; ok {
			continue
		}
		seen[art.Link] = struct{}{}
		unique = append(unique, art)
	}
	return unique
}

func (s *StrategySource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *StrategySource) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
