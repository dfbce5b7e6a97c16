package listing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ContainsFold reports a case-insensitive substring match. A blank needle matches everything.
func ContainsFold(needle string, haystack ...string) bool {
	needle = strings.ToLower(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, h := range haystack {
		if strings.Contains(strings.ToLower(h), needle) {
			return true
		}
	}
	return false
}

// Equal is an exact enum match. A blank want matches everything.
func Equal(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || want == got
}

// InRange checks v against inclusive bounds given as strings. Blank or
// unparsable bounds are ignored.
func InRange(v decimal.Decimal, lower, upper string) bool {
	if l, err := decimal.NewFromString(strings.TrimSpace(lower)); err == nil && v.LessThan(l) {
		return false
	}
	if u, err := decimal.NewFromString(strings.TrimSpace(upper)); err == nil && v.GreaterThan(u) {
		return false
	}
	return true
}
