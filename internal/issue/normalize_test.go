package issue

import "testing"

func TestNormalize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Fed Hikes RATES", "fed hikes rates"},
		{"strips tags", "<b>Fed</b> signals <a href=\"x\">cut</a>", "fed signals cut"},
		{"drops punctuation", "CPI: 3.2%!! (core)", "cpi 3.2% core"},
		{"keeps slash dot hyphen", "10y/2y curve re-steepens at 4.5%", "10y/2y curve re-steepens at 4.5%"},
		{"keeps hangul", "연준, 금리 동결!", "연준 금리 동결"},
		{"collapses whitespace", "  oil \t prices\n surge  ", "oil prices surge"},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Normalize(tc.in); got != tc.want {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
