package issue

import (
	"strings"
	"unicode/utf8"
)

const (
	// minTextRunes rejects normalized texts too short to classify reliably.
	minTextRunes = 10
	// minScore is the minimum-evidence gate: a single incidental keyword hit
	// never assigns an issue.
	minScore = 2
)

// Classifier maps an article to at most one issue by keyword overlap.
type Classifier struct {
	taxonomy *Taxonomy
}

// NewClassifier builds a classifier over the given taxonomy.
func NewClassifier(t *Taxonomy) *Classifier {
	return &Classifier{taxonomy: t}
}

// Classify scores title+summary against every issue and returns the single
// strictly-highest scorer along with its score, or ("", score) when nothing
// clears the gate. Ties keep the earlier-declared issue.
func (c *Classifier) Classify(title, summary string) (string, int) {
	text := Normalize(title + " " + summary)
	if utf8.RuneCountInString(text) < minTextRunes {
		return "", 0
	}

	bestIssue := ""
	bestScore := 0
	for _, is := range c.taxonomy.Issues() {
		if score := c.Score(text, is); score > bestScore {
			bestScore = score
			bestIssue = is.Name
		}
	}

	if bestScore < minScore {
		return "", bestScore
	}
	return bestIssue, bestScore
}

// Score counts how many of the issue's keywords occur in the normalized text.
// Each matching keyword contributes 1 regardless of how often it appears;
// stop words never count.
func (c *Classifier) Score(normalized string, is Issue) int {
	score := 0
	for _, kw := range is.Keywords {
		k := Normalize(kw)
		if k == "" || c.taxonomy.IsStopword(k) {
			continue
		}
		if strings.Contains(normalized, k) {
			score++
		}
	}
	return score
}
