package scenario

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// scenarios more similar than this ratio count as duplicates
var maxTextSim = .9

// isNearDuplicate reports whether two scenario texts are near-identical,
// ignoring case and surrounding whitespace.
func isNearDuplicate(text, existing string) bool {
	a := strings.ToLower(strings.TrimSpace(text))
	b := strings.ToLower(strings.TrimSpace(existing))
	if a == b {
		return true
	}
	return difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, "")).QuickRatio() >= maxTextSim
}
