package ports

import (
	"context"
	"time"

	"IssueRadar/internal/domain"
)

// ArticleSource pulls the latest articles from upstream news providers.
// Best-effort: it may return zero results and may repeat links across calls.
type ArticleSource interface {
	FetchLatest(ctx context.Context) ([]domain.Article, error)
}

// WindowRepository persists window-level issue aggregates and their evidence.
// Storage errors always surface to the caller.
type WindowRepository interface {
	// UpsertWindowStats writes-or-replaces one stat row per taxonomy issue
	// for the window. Idempotent: repeating identical arguments leaves
	// identical state.
	UpsertWindowStats(ctx context.Context, w domain.Window, counts map[string]int, topTerms map[string]string) error

	// ReplaceEvidence swaps the window's evidence rows wholesale, keeping at
	// most 10 rows per issue.
	ReplaceEvidence(ctx context.Context, w domain.Window, evidence map[string][]domain.Evidence) error

	// ReadWindows returns the most recent limitWindows windows' stat rows,
	// newest-first by window end.
	ReadWindows(ctx context.Context, limitWindows int) ([]domain.WindowIssueStat, error)

	// ReadEvidence returns up to 20 evidence rows for the window/issue pair,
	// newest-first by publish time.
	ReadEvidence(ctx context.Context, windowStart, windowEnd, issue string) ([]domain.Evidence, error)
}

// Scheduler controls when aggregation cycles execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
