package trend

import (
	"math"
	"sort"
	"time"

	"IssueRadar/internal/domain"
	"IssueRadar/internal/issue"
)

const (
	// DefaultLookbackWindows is the trailing history depth for spike scoring.
	DefaultLookbackWindows = 48
	// minHistoryForZ: with this many historical points or fewer, the raw
	// deviation is reported instead of a standardized score.
	minHistoryForZ = 5
	// stddevEpsilon keeps a perfectly flat history from dividing by zero.
	stddevEpsilon = 1e-6
)

// Ranker scores the current window's per-issue counts against trailing
// historical windows.
type Ranker struct {
	taxonomy *issue.Taxonomy
	loc      *time.Location
}

// NewRanker builds a ranker; window labels are parsed in the reference zone.
func NewRanker(t *issue.Taxonomy, loc *time.Location) *Ranker {
	if loc == nil {
		loc = time.UTC
	}
	return &Ranker{taxonomy: t, loc: loc}
}

// Rank returns every taxonomy issue ordered by spike score (descending, raw
// count breaking ties). History is the up-to-lookback windows strictly before
// currentEnd. Returns nil when no row matches the current window at all.
func (r *Ranker) Rank(rows []domain.WindowIssueStat, currentEnd string, lookback int) []domain.IssueRank {
	if lookback <= 0 {
		lookback = DefaultLookbackWindows
	}

	curEnd, err := time.ParseInLocation(domain.TimeLabel, currentEnd, r.loc)
	if err != nil {
		return nil
	}
	cutoff := curEnd.Add(-time.Duration(lookback) * WindowWidth)

	hasCurrent := false
	for _, row := range rows {
		if row.WindowEnd == currentEnd {
			hasCurrent = true
			break
		}
	}
	if !hasCurrent {
		return nil
	}

	ranks := make([]domain.IssueRank, 0, r.taxonomy.Len())
	for _, name := range r.taxonomy.Names() {
		current := 0
		var history []float64

		for _, row := range rows {
			if row.Issue != name {
				continue
			}
			if row.WindowEnd == currentEnd {
				current += row.MentionCount
				continue
			}
			end, perr := time.ParseInLocation(domain.TimeLabel, row.WindowEnd, r.loc)
			if perr != nil {
				continue
			}
			if end.Before(curEnd) && !end.Before(cutoff) {
				history = append(history, float64(row.MentionCount))
			}
		}

		mean, stddev := populationStats(history)
		z := float64(current) - mean
		if len(history) > minHistoryForZ {
			z = (float64(current) - mean) / (stddev + stddevEpsilon)
		}

		ranks = append(ranks, domain.IssueRank{
			Issue:        name,
			CurrentCount: current,
			Mean:         mean,
			StdDev:       stddev,
			SpikeZ:       z,
		})
	}

	sort.SliceStable(ranks, func(i, j int) bool {
		if ranks[i].SpikeZ != ranks[j].SpikeZ {
			return ranks[i].SpikeZ > ranks[j].SpikeZ
		}
		return ranks[i].CurrentCount > ranks[j].CurrentCount
	})

	for i := range ranks {
		ranks[i].Mean = round2(ranks[i].Mean)
		ranks[i].StdDev = round2(ranks[i].StdDev)
		ranks[i].SpikeZ = round2(ranks[i].SpikeZ)
	}
	return ranks
}

// populationStats returns mean and population standard deviation (divide by
// N, not N-1); both zero for empty input.
func populationStats(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
