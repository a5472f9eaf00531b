package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"IssueRadar/internal/domain"
	"IssueRadar/internal/ports"
	"IssueRadar/internal/trend"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source     ports.ArticleSource
	Repository ports.WindowRepository
	Clock      *trend.Clock
	Aggregator *trend.Aggregator
	Ranker     *trend.Ranker
	Logger     *slog.Logger
	Now        func() time.Time
}

// Pipeline implements the fetch-classify-aggregate-store workflow plus the
// read-side operations exposed to the presentation layer.
type Pipeline struct {
	source     ports.ArticleSource
	repository ports.WindowRepository
	clock      *trend.Clock
	aggregator *trend.Aggregator
	ranker     *trend.Ranker
	logger     *slog.Logger
	now        func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &Pipeline{
		source:     deps.Source,
		repository: deps.Repository,
		clock:      deps.Clock,
		aggregator: deps.Aggregator,
		ranker:     deps.Ranker,
		logger:     deps.Logger,
		now:        now,
	}
}

// RunCurrentWindow executes one full cycle for the current window and returns
// its labels. A source failure degrades to an empty batch (zero-count rows
// are still written so history stays dense); a storage failure aborts the
// cycle — a partial upsert would leave issues without rows.
func (p *Pipeline) RunCurrentWindow(ctx context.Context) (string, string, error) {
	w := p.clock.CurrentWindow(p.now())

	articles, err := p.source.FetchLatest(ctx)
	if err != nil {
		p.warn("fetch failed, treating source as empty", "error", err)
		articles = nil
	}

	agg := p.aggregator.Aggregate(articles, w)

	if err := p.repository.UpsertWindowStats(ctx, w, agg.Counts, agg.TopTerms); err != nil {
		return "", "", fmt.Errorf("upsert window stats: %w", err)
	}
	if err := p.repository.ReplaceEvidence(ctx, w, agg.Evidence); err != nil {
		return "", "", fmt.Errorf("replace evidence: %w", err)
	}

	p.debug("window aggregated",
		"window_start", w.StartLabel(),
		"window_end", w.EndLabel(),
		"articles", len(articles))
	return w.StartLabel(), w.EndLabel(), nil
}

// ReadIssueWindows returns the most recent stored stat rows, newest-first.
func (p *Pipeline) ReadIssueWindows(ctx context.Context, limitWindows int) ([]domain.WindowIssueStat, error) {
	stats, err := p.repository.ReadWindows(ctx, limitWindows)
	if err != nil {
		return nil, fmt.Errorf("read windows: %w", err)
	}
	return stats, nil
}

// ReadIssueArticles returns the stored evidence for one window/issue pair.
func (p *Pipeline) ReadIssueArticles(ctx context.Context, windowStart, windowEnd, issue string) ([]domain.Evidence, error) {
	evidence, err := p.repository.ReadEvidence(ctx, windowStart, windowEnd, issue)
	if err != nil {
		return nil, fmt.Errorf("read evidence: %w", err)
	}
	return evidence, nil
}

// BuildIssueRank scores stored rows against the current window end.
func (p *Pipeline) BuildIssueRank(rows []domain.WindowIssueStat, currentEnd string, lookback int) []domain.IssueRank {
	return p.ranker.Rank(rows, currentEnd, lookback)
}

func (p *Pipeline) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}
