package trend

import (
	"testing"
	"time"

	"IssueRadar/internal/domain"
	"IssueRadar/internal/issue"
)

func testWindow(t *testing.T, loc *time.Location) domain.Window {
	t.Helper()
	start := time.Date(2024, time.January, 1, 10, 30, 0, 0, loc)
	return domain.Window{Start: start, End: start.Add(WindowWidth)}
}

func TestAggregateInitializesEveryIssue(t *testing.T) {
	t.Parallel()

	loc := seoul(t)
	taxonomy := issue.Default()
	agg := NewAggregator(taxonomy, loc).Aggregate(nil, testWindow(t, loc))

	if len(agg.Counts) != taxonomy.Len() {
		t.Fatalf("expected %d counts, got %d", taxonomy.Len(), len(agg.Counts))
	}
	for _, name := range taxonomy.Names() {
		if count, ok := agg.Counts[name]; !ok || count != 0 {
			t.Fatalf("expected zero-count entry for %s, got %d (present=%v)", name, count, ok)
		}
	}
}

func TestAggregateCountsAndEvidence(t *testing.T) {
	t.Parallel()

	loc := seoul(t)
	w := testWindow(t, loc)
	aggregator := NewAggregator(issue.Default(), loc)

	articles := []domain.Article{
		{
			Title:       "Fed signals rate hike amid inflation concerns",
			Link:        "https://example.com/a",
			PublishedAt: time.Date(2024, time.January, 1, 10, 45, 0, 0, loc),
			Source:      "Reuters",
		},
		{
			Title:       "Fed rate cut hopes fade quickly",
			Link:        "https://example.com/b",
			PublishedAt: time.Date(2024, time.January, 1, 10, 50, 0, 0, loc),
			Source:      "Bloomberg",
		},
	}

	agg := aggregator.Aggregate(articles, w)

	if agg.Counts["금리/연준"] != 2 {
		t.Fatalf("expected 2 mentions, got %d", agg.Counts["금리/연준"])
	}

	evidence := agg.Evidence["금리/연준"]
	if len(evidence) != 2 {
		t.Fatalf("expected 2 evidence rows, got %d", len(evidence))
	}
	if evidence[0].PublishedAt != "2024-01-01 10:45" {
		t.Fatalf("unexpected evidence timestamp: %s", evidence[0].PublishedAt)
	}
	if evidence[0].Source != "Reuters" {
		t.Fatalf("unexpected evidence source: %s", evidence[0].Source)
	}

	// fed and rate hit both titles, hike and cut one each; equal counts keep
	// keyword declaration order.
	if agg.TopTerms["금리/연준"] != "fed, rate, hike, cut" {
		t.Fatalf("unexpected top terms: %q", agg.TopTerms["금리/연준"])
	}
}

func TestAggregateDiscardsOutOfWindow(t *testing.T) {
	t.Parallel()

	loc := seoul(t)
	w := testWindow(t, loc)
	aggregator := NewAggregator(issue.Default(), loc)

	articles := []domain.Article{
		{
			Title:       "Fed signals rate hike amid inflation concerns",
			Link:        "https://example.com/early",
			PublishedAt: w.Start.Add(-time.Second),
		},
		{
			Title:       "Fed signals rate hike amid inflation concerns",
			Link:        "https://example.com/late",
			PublishedAt: w.End,
		},
	}

	agg := aggregator.Aggregate(articles, w)

	if agg.Counts["금리/연준"] != 0 {
		t.Fatalf("expected 0 mentions for out-of-window articles, got %d", agg.Counts["금리/연준"])
	}
	if len(agg.Evidence["금리/연준"]) != 0 {
		t.Fatalf("expected no evidence, got %d rows", len(agg.Evidence["금리/연준"]))
	}
}

func TestAggregateDeduplicatesByLink(t *testing.T) {
	t.Parallel()

	loc := seoul(t)
	w := testWindow(t, loc)
	aggregator := NewAggregator(issue.Default(), loc)

	article := domain.Article{
		Title:       "Fed signals rate hike amid inflation concerns",
		Link:        "https://example.com/a",
		PublishedAt: time.Date(2024, time.January, 1, 10, 45, 0, 0, loc),
	}

	agg := aggregator.Aggregate([]domain.Article{article, article}, w)

	if agg.Counts["금리/연준"] != 1 {
		t.Fatalf("duplicate link must count once, got %d", agg.Counts["금리/연준"])
	}
}

func TestAggregateConvertsOffsetTimestamps(t *testing.T) {
	t.Parallel()

	loc := seoul(t)
	w := testWindow(t, loc)
	aggregator := NewAggregator(issue.Default(), loc)

	// 01:45 UTC is 10:45 KST, inside the window.
	articles := []domain.Article{{
		Title:       "Fed signals rate hike amid inflation concerns",
		Link:        "https://example.com/utc",
		PublishedAt: time.Date(2024, time.January, 1, 1, 45, 0, 0, time.UTC),
	}}

	agg := aggregator.Aggregate(articles, w)

	if agg.Counts["금리/연준"] != 1 {
		t.Fatalf("expected offset timestamp to convert into the window, got %d", agg.Counts["금리/연준"])
	}
	if got := agg.Evidence["금리/연준"][0].PublishedAt; got != "2024-01-01 10:45" {
		t.Fatalf("expected local label, got %s", got)
	}
}
