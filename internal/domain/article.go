package domain

import "time"

// TimeLabel is the fixed-width local-time layout used for window boundaries
// and persisted timestamps. Lexicographic order on labels equals time order.
const TimeLabel = "2006-01-02 15:04"

// Article is a single news item as delivered by a provider. Ephemeral: it
// lives only through one fetch-classify-aggregate cycle.
type Article struct {
	Title       string
	Summary     string
	Link        string
	PublishedAt time.Time
	Source      string
}

// Window is a half-open 30-minute interval [Start, End) aligned to the
// half-hour in the reference timezone. Identified by its label pair.
type Window struct {
	Start time.Time
	End   time.Time
}

// StartLabel formats the window start as a storage key.
func (w Window) StartLabel() string {
	return w.Start.Format(TimeLabel)
}

// EndLabel formats the window end as a storage key.
func (w Window) EndLabel() string {
	return w.End.Format(TimeLabel)
}

// Contains reports whether t falls inside [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// WindowIssueStat is one persisted aggregate row, keyed by
// (WindowStart, WindowEnd, Issue). Every taxonomy issue has exactly one row
// per window, zero-count issues included.
type WindowIssueStat struct {
	WindowStart  string
	WindowEnd    string
	Issue        string
	MentionCount int
	TopTerms     string
}

// Evidence is a classified article retained as human-readable justification
// for a window/issue count. PublishedAt carries the local-time label.
type Evidence struct {
	Title       string
	Link        string
	PublishedAt string
	Source      string
}

// IssueRank is a derived spike score for one issue; never persisted.
type IssueRank struct {
	Issue        string
	CurrentCount int
	Mean         float64
	StdDev       float64
	SpikeZ       float64
}
