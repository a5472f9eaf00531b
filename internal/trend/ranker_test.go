package trend

import (
	"testing"
	"time"

	"IssueRadar/internal/domain"
	"IssueRadar/internal/issue"
)

func rankTaxonomy() *issue.Taxonomy {
	return issue.NewTaxonomy([]issue.Issue{
		{Name: "rates", Keywords: []string{"fed", "rate"}},
		{Name: "oil", Keywords: []string{"oil", "opec"}},
	}, nil)
}

// statRow builds a row whose window ends the given number of half-hours
// before the current end 2024-01-01 11:00.
func statRow(t *testing.T, loc *time.Location, issueName string, windowsBack, count int) domain.WindowIssueStat {
	t.Helper()
	end := time.Date(2024, time.January, 1, 11, 0, 0, 0, loc).Add(-time.Duration(windowsBack) * WindowWidth)
	return domain.WindowIssueStat{
		WindowStart:  end.Add(-WindowWidth).Format(domain.TimeLabel),
		WindowEnd:    end.Format(domain.TimeLabel),
		Issue:        issueName,
		MentionCount: count,
	}
}

const currentEnd = "2024-01-01 11:00"

func TestRankRawDeviationWithSparseHistory(t *testing.T) {
	t.Parallel()

	loc := seoul(t)
	ranker := NewRanker(rankTaxonomy(), loc)

	rows := []domain.WindowIssueStat{
		statRow(t, loc, "rates", 0, 5),
		statRow(t, loc, "rates", 1, 1),
		statRow(t, loc, "rates", 2, 2),
		statRow(t, loc, "rates", 3, 3),
	}

	ranks := ranker.Rank(rows, currentEnd, 48)
	if len(ranks) != 2 {
		t.Fatalf("expected every taxonomy issue ranked, got %d", len(ranks))
	}

	top := ranks[0]
	if top.Issue != "rates" {
		t.Fatalf("expected rates on top, got %s", top.Issue)
	}
	if top.CurrentCount != 5 {
		t.Fatalf("unexpected current count: %d", top.CurrentCount)
	}
	if top.Mean != 2 {
		t.Fatalf("unexpected mean: %v", top.Mean)
	}
	if top.StdDev != 0.82 {
		t.Fatalf("unexpected stddev: %v", top.StdDev)
	}
	// Three historical points: raw deviation, no division.
	if top.SpikeZ != 3 {
		t.Fatalf("unexpected spike score: %v", top.SpikeZ)
	}
}

func TestRankStandardizedWithDenseHistory(t *testing.T) {
	t.Parallel()

	loc := seoul(t)
	ranker := NewRanker(rankTaxonomy(), loc)

	rows := []domain.WindowIssueStat{statRow(t, loc, "rates", 0, 4)}
	for i, count := range []int{1, 3, 1, 3, 1, 3} {
		rows = append(rows, statRow(t, loc, "rates", i+1, count))
	}

	ranks := ranker.Rank(rows, currentEnd, 48)
	top := ranks[0]

	if top.Mean != 2 || top.StdDev != 1 {
		t.Fatalf("unexpected stats: mean=%v stddev=%v", top.Mean, top.StdDev)
	}
	// Six historical points: (4-2)/(1+1e-6), rounded to 2 decimals.
	if top.SpikeZ != 2 {
		t.Fatalf("unexpected spike score: %v", top.SpikeZ)
	}
}

func TestRankEmptyWithoutCurrentWindow(t *testing.T) {
	t.Parallel()

	loc := seoul(t)
	ranker := NewRanker(rankTaxonomy(), loc)

	rows := []domain.WindowIssueStat{
		statRow(t, loc, "rates", 1, 3),
		statRow(t, loc, "oil", 2, 1),
	}

	if ranks := ranker.Rank(rows, currentEnd, 48); len(ranks) != 0 {
		t.Fatalf("expected empty ranking without a current-window row, got %d", len(ranks))
	}
}

func TestRankLookbackCutoff(t *testing.T) {
	t.Parallel()

	loc := seoul(t)
	ranker := NewRanker(rankTaxonomy(), loc)

	rows := []domain.WindowIssueStat{
		statRow(t, loc, "rates", 0, 1),
		statRow(t, loc, "rates", 1, 4),
		statRow(t, loc, "rates", 2, 2),
		// Outside a 2-window lookback; must not shift the mean.
		statRow(t, loc, "rates", 3, 100),
	}

	ranks := ranker.Rank(rows, currentEnd, 2)
	top := ranks[0]

	if top.Mean != 3 {
		t.Fatalf("expected mean over the 2 in-range windows, got %v", top.Mean)
	}
}

func TestRankOrdersBySpikeThenCount(t *testing.T) {
	t.Parallel()

	loc := seoul(t)
	ranker := NewRanker(rankTaxonomy(), loc)

	// No history anywhere: spike score equals the raw count.
	rows := []domain.WindowIssueStat{
		statRow(t, loc, "rates", 0, 1),
		statRow(t, loc, "oil", 0, 7),
	}

	ranks := ranker.Rank(rows, currentEnd, 48)
	if ranks[0].Issue != "oil" || ranks[1].Issue != "rates" {
		t.Fatalf("unexpected order: %s, %s", ranks[0].Issue, ranks[1].Issue)
	}
	if ranks[0].SpikeZ != 7 {
		t.Fatalf("unexpected spike score: %v", ranks[0].SpikeZ)
	}
}
