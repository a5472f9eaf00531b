package issue

import "testing"

func TestClassifyFedRateHike(t *testing.T) {
	t.Parallel()

	c := NewClassifier(Default())

	name, score := c.Classify("Fed signals rate hike amid inflation concerns", "")
	if name != "금리/연준" {
		t.Fatalf("expected 금리/연준, got %q", name)
	}
	if score != 3 {
		t.Fatalf("expected score 3 (fed, rate, hike), got %d", score)
	}
}

func TestClassifyMinimumEvidenceGate(t *testing.T) {
	t.Parallel()

	c := NewClassifier(Default())

	// A single keyword hit never assigns an issue.
	name, score := c.Classify("Inflation holds steady", "")
	if name != "" {
		t.Fatalf("expected no issue, got %q", name)
	}
	if score != 1 {
		t.Fatalf("expected best score 1, got %d", score)
	}
}

func TestClassifyShortText(t *testing.T) {
	t.Parallel()

	c := NewClassifier(Default())

	name, score := c.Classify("Fed", "")
	if name != "" || score != 0 {
		t.Fatalf("expected (\"\", 0) for short text, got (%q, %d)", name, score)
	}
}

func TestClassifyTieKeepsFirstDeclaredIssue(t *testing.T) {
	t.Parallel()

	c := NewClassifier(Default())

	// 물가/인플레 hits cpi+inflation, 금리/연준 hits fed+rate. The
	// earlier-declared issue wins the tie.
	name, score := c.Classify("CPI inflation and Fed rate decision", "")
	if name != "물가/인플레" {
		t.Fatalf("expected tie to keep 물가/인플레, got %q", name)
	}
	if score != 2 {
		t.Fatalf("expected score 2, got %d", score)
	}
}

func TestClassifyStopwordsNeverCount(t *testing.T) {
	t.Parallel()

	taxonomy := NewTaxonomy([]Issue{
		{Name: "crash-watch", Keywords: []string{"the", "selloff", "plunge"}},
	}, []string{"the"})
	c := NewClassifier(taxonomy)

	// "the" is present twice but must not contribute.
	name, score := c.Classify("the selloff deepens, the plunge continues", "")
	if name != "crash-watch" {
		t.Fatalf("expected crash-watch, got %q", name)
	}
	if score != 2 {
		t.Fatalf("expected score 2 (selloff, plunge), got %d", score)
	}
}

func TestClassifySummaryContributes(t *testing.T) {
	t.Parallel()

	c := NewClassifier(Default())

	name, score := c.Classify("Markets wobble", "OPEC weighs crude output after WTI slide")
	if name != "유가/에너지" {
		t.Fatalf("expected 유가/에너지, got %q", name)
	}
	if score < 2 {
		t.Fatalf("expected score >= 2, got %d", score)
	}
}
