package issue

import (
	"regexp"
	"strings"
)

var (
	tagExpr   = regexp.MustCompile(`<[^>]*>`)
	noiseExpr = regexp.MustCompile(`[^0-9a-zA-Z가-힣\s/\.%\-]`)
	spaceExpr = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, strips markup tags, replaces anything that is
// not alphanumeric, Hangul, %, /, ., - or whitespace with a space, and
// collapses whitespace runs. Pure; empty input yields "".
func Normalize(text string) string {
	t := strings.ToLower(text)
	t = tagExpr.ReplaceAllString(t, " ")
	t = noiseExpr.ReplaceAllString(t, " ")
	t = spaceExpr.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
