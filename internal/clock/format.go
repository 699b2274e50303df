package clock

import (
	"errors"
	"strings"
	"unicode"
)

// patternReplacer maps display-pattern tokens onto Go's reference time.
var patternReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// layoutFor translates a display pattern such as "HH:mm", "HH:mm:ss" or
// "YYYY-MM-DDTHH:mm:ss" into a Go layout. A literal 'T' separator is
// allowed; any other leftover alphabetic token is rejected.
func layoutFor(pattern string) (string, error) {
	if strings.TrimSpace(pattern) == "" {
		return "", newConfigErr("pattern", pattern, errors.New("empty pattern"))
	}
	layout := patternReplacer.Replace(pattern)
	for _, r := range layout {
		if r == 'T' {
			continue
		}
		if unicode.IsLetter(r) {
			return "", newConfigErr("pattern", pattern, errors.New("unsupported token "+string(r)))
		}
	}
	return layout, nil
}
