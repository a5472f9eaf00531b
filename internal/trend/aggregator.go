package trend

import (
	"sort"
	"strings"
	"time"

	"IssueRadar/internal/domain"
	"IssueRadar/internal/issue"
)

// topTermCount limits how many keyword terms are kept per issue per window.
const topTermCount = 5

// Aggregation is one window's per-issue output. Counts carries a value for
// every taxonomy issue, zero included; Evidence is unbounded here and
// truncated by the storage layer.
type Aggregation struct {
	Counts   map[string]int
	TopTerms map[string]string
	Evidence map[string][]domain.Evidence
}

// Aggregator buckets article batches into a window and tallies issue mentions.
type Aggregator struct {
	taxonomy   *issue.Taxonomy
	classifier *issue.Classifier
	loc        *time.Location
}

// NewAggregator builds an aggregator over the taxonomy, stamping evidence in
// the reference timezone.
func NewAggregator(t *issue.Taxonomy, loc *time.Location) *Aggregator {
	if loc == nil {
		loc = time.UTC
	}
	return &Aggregator{
		taxonomy:   t,
		classifier: issue.NewClassifier(t),
		loc:        loc,
	}
}

// Aggregate classifies every in-window article and produces per-issue counts,
// top keyword terms, and evidence lists. Duplicate links within one batch are
// counted once (first occurrence wins).
func (a *Aggregator) Aggregate(articles []domain.Article, w domain.Window) Aggregation {
	counts := make(map[string]int, a.taxonomy.Len())
	for _, name := range a.taxonomy.Names() {
		counts[name] = 0
	}

	termFreq := make(map[string]map[string]int)
	evidence := make(map[string][]domain.Evidence)
	seen := make(map[string]struct{}, len(articles))

	for _, art := range articles {
		if art.Link != "" {
			if _, dup := seen[art.Link]; dup {
				continue
			}
			seen[art.Link] = struct{}{}
		}

		local := art.PublishedAt.In(a.loc)
		if !w.Contains(local) {
			continue
		}

		name, _ := a.classifier.Classify(art.Title, art.Summary)
		if name == "" {
			continue
		}
		counts[name]++

		a.tallyTerms(termFreq, name, art.Title)

		evidence[name] = append(evidence[name], domain.Evidence{
			Title:       art.Title,
			Link:        art.Link,
			PublishedAt: local.Format(domain.TimeLabel),
			Source:      art.Source,
		})
	}

	topTerms := make(map[string]string, len(termFreq))
	for name, freq := range termFreq {
		topTerms[name] = a.joinTopTerms(name, freq)
	}

	return Aggregation{Counts: counts, TopTerms: topTerms, Evidence: evidence}
}

func (a *Aggregator) tallyTerms(termFreq map[string]map[string]int, name, title string) {
	is, ok := a.taxonomy.Get(name)
	if !ok {
		return
	}

	normalized := issue.Normalize(title)
	for _, kw := range is.Keywords {
		k := issue.Normalize(kw)
		if k == "" || a.taxonomy.IsStopword(k) {
			continue
		}
		if strings.Contains(normalized, k) {
			if termFreq[name] == nil {
				termFreq[name] = make(map[string]int)
			}
			termFreq[name][k]++
		}
	}
}

// joinTopTerms returns the issue's most frequent keywords, comma-joined.
// Equal counts keep keyword declaration order.
func (a *Aggregator) joinTopTerms(name string, freq map[string]int) string {
	is, ok := a.taxonomy.Get(name)
	if !ok {
		return ""
	}

	ordered := make([]string, 0, len(freq))
	added := make(map[string]struct{}, len(freq))
	for _, kw := range is.Keywords {
		k := issue.Normalize(kw)
		if _, hit := freq[k]; !hit {
			continue
		}
		if _, dup := added[k]; dup {
			continue
		}
		added[k] = struct{}{}
		ordered = append(ordered, k)
	}

	sort.SliceStable(ordered, func(i, j int) bool {
		return freq[ordered[i]] > freq[ordered[j]]
	})

	if len(ordered) > topTermCount {
		ordered = ordered[:topTermCount]
	}
	return strings.Join(ordered, ", ")
}
