package diagnostics

import "github.com/lithammer/fuzzysearch/fuzzy"

// alternatives is a fixed synonym table consulted before falling back to
// fuzzy ranking, so common renames always resolve to the right suggestion
// regardless of edit distance (e.g. "subtract" has no fuzzy match with
// "difference" at all, but the intent is unambiguous).
var alternatives = map[string]string{
	"box":      "cube",
	"rect":     "square",
	"subtract": "difference",
	"sub":      "difference",
	"merge":    "union",
	"colour":   "color",
	"centre":   "center",
	"grey":     "gray",
}

// Suggest returns the best "did you mean" candidate for name out of
// options, or "" if nothing is close enough to be useful. It first
// consults the fixed alternatives table, then falls back to fuzzy ranking
// (github.com/lithammer/fuzzysearch, the same library and RankMatchFold
// entry point the reference planner uses to suggest command names).
//
// A misspelling can either drop characters ("cub" for "cube") or add them
// ("cuube" for "cube"), so each candidate is checked as the fuzzy pattern
// against name *and* as the fuzzy haystack for name, keeping whichever
// direction matches with the lower edit distance — fuzzy.Match only
// succeeds when its pattern argument is no longer than its haystack
// argument, so a single fixed direction would miss one of the two cases.
func Suggest(name string, options []string) string {
	if alt, ok := alternatives[name]; ok {
		for _, o := range options {
			if o == alt {
				return alt
			}
		}
	}
	best := ""
	bestDist := -1
	for _, o := range options {
		d := fuzzy.RankMatchFold(o, name)
		if rd := fuzzy.RankMatchFold(name, o); rd >= 0 && (d < 0 || rd < d) {
			d = rd
		}
		if d < 0 {
			continue
		}
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = o
		}
	}
	return best
}
