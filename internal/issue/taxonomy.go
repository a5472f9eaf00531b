package issue

// Issue is one macro/market topic with its keyword set and the asset classes
// it usually moves.
type Issue struct {
	Name       string
	Keywords   []string
	AssetHints []string
}

// Taxonomy is an ordered, read-only issue registry. Declaration order is the
// classifier's tie-break and must stay stable.
type Taxonomy struct {
	issues []Issue
	byName map[string]Issue
	stop   map[string]struct{}
}

// NewTaxonomy builds a registry from issues in declaration order plus a
// stop-word set excluded from every keyword tally.
func NewTaxonomy(issues []Issue, stopwords []string) *Taxonomy {
	t := &Taxonomy{
		issues: issues,
		byName: make(map[string]Issue, len(issues)),
		stop:   make(map[string]struct{}, len(stopwords)),
	}
	for _, is := range issues {
		t.byName[is.Name] = is
	}
	for _, w := range stopwords {
		t.stop[w] = struct{}{}
	}
	return t
}

// Issues returns the registry in declaration order.
func (t *Taxonomy) Issues() []Issue {
	return t.issues
}

// Get looks an issue up by name.
func (t *Taxonomy) Get(name string) (Issue, bool) {
	is, ok := t.byName[name]
	return is, ok
}

// Len returns the number of registered issues.
func (t *Taxonomy) Len() int {
	return len(t.issues)
}

// Names returns issue names in declaration order.
func (t *Taxonomy) Names() []string {
	names := make([]string, 0, len(t.issues))
	for _, is := range t.issues {
		names = append(names, is.Name)
	}
	return names
}

// IsStopword reports whether the normalized term never counts as a keyword hit.
func (t *Taxonomy) IsStopword(term string) bool {
	_, ok := t.stop[term]
	return ok
}

// Default returns the asset-allocation issue set the engine ships with.
func Default() *Taxonomy {
	return NewTaxonomy(defaultIssues, defaultStopwords)
}

var defaultIssues = []Issue{
	{
		Name:       "물가/인플레",
		Keywords:   []string{"cpi", "pce", "inflation", "disinflation", "core", "headline", "prices", "물가", "인플레", "인플레이션", "근원"},
		AssetHints: []string{"채권", "환율", "주식"},
	},
	{
		Name:       "금리/연준",
		Keywords:   []string{"fed", "fomc", "powell", "rate", "rates", "hike", "cut", "hold", "dot plot", "연준", "파월", "기준금리", "금리인상", "금리인하", "동결"},
		AssetHints: []string{"채권", "주식", "환율"},
	},
	{
		Name:       "채권/수익률",
		Keywords:   []string{"treasury", "ust", "yield", "10y", "2y", "curve", "spread", "duration", "국채", "미국채", "수익률", "일드커브", "커브", "스프레드", "듀레이션"},
		AssetHints: []string{"채권"},
	},
	{
		Name:       "달러/환율",
		Keywords:   []string{"dollar", "dxy", "fx", "usd", "usdkrw", "eurusd", "yen", "yuan", "달러", "환율", "원달러", "외환", "강달러", "약달러"},
		AssetHints: []string{"환율"},
	},
	{
		Name:       "유가/에너지",
		Keywords:   []string{"oil", "wti", "brent", "crude", "opec", "gas", "lng", "유가", "원유", "오펙", "감산", "증산", "천연가스"},
		AssetHints: []string{"원자재", "인플레"},
	},
	{
		Name:       "원자재/금속",
		Keywords:   []string{"gold", "silver", "copper", "aluminum", "nickel", "lithium", "iron ore", "금", "은", "구리", "알루미늄", "니켈", "리튬", "철광석"},
		AssetHints: []string{"원자재"},
	},
	{
		Name:       "경기/성장",
		Keywords:   []string{"gdp", "growth", "recession", "soft landing", "hard landing", "pmi", "ism", "unemployment", "jobs", "고용", "실업", "경기침체", "성장률"},
		AssetHints: []string{"주식", "채권"},
	},
	{
		Name:       "실적/어닝",
		Keywords:   []string{"earnings", "guidance", "revenue", "margin", "eps", "beats", "miss", "실적", "어닝", "가이던스", "매출", "마진", "서프라이즈"},
		AssetHints: []string{"주식"},
	},
	{
		Name:       "AI/반도체",
		Keywords:   []string{"ai", "gpu", "semiconductor", "chip", "nvidia", "amd", "tsmc", "hbm", "반도체", "칩", "엔비디아"},
		AssetHints: []string{"주식"},
	},
	{
		Name:       "중국/신흥국",
		Keywords:   []string{"china", "beijing", "yuan", "emerging", "중국", "위안", "신흥국", "부동산", "헝다", "부채"},
		AssetHints: []string{"환율", "원자재", "주식"},
	},
	{
		Name:       "지정학/리스크",
		Keywords:   []string{"geopolitical", "sanction", "war", "conflict", "shipping", "strait", "iran", "israel", "ukraine", "지정학", "전쟁", "분쟁", "제재", "해운", "홍해"},
		AssetHints: []string{"원자재", "환율", "주식"},
	},
	{
		Name:       "정책/규제",
		Keywords:   []string{"policy", "regulation", "tariff", "ban", "stimulus", "fiscal", "정책", "규제", "관세", "부양", "재정"},
		AssetHints: []string{"주식", "환율", "채권"},
	},
}

var defaultStopwords = []string{
	"the", "a", "an", "and", "or", "to", "of", "in", "on", "for", "with", "as", "at", "by",
	"from", "after", "before", "today", "live", "update", "updates",
	"시장", "미국", "글로벌", "이번", "관련", "속보", "단독", "분석", "전망", "가능", "우려", "발표",
}
