// Package interpolation finds format placeholders in UI strings so a
// translation can be checked for dropped or invented ones.
package interpolation

import (
	"regexp"
	"sort"
)

// varMatch stores a detected interpolation variable position.
type varMatch struct {
	start, end int
	value      string
}

// patterns to detect interpolation variables in UI strings.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\{[a-zA-Z_][a-zA-Z0-9_]*\}`),         // ${value}
	regexp.MustCompile(`\{[0-9]+\}`),                           // {0}, {1}
	regexp.MustCompile(`%[-+0-9]*\.?[0-9]*[dsfieEgGxXoubcpq]`), // %d, %s, %f, %2d, etc.
	regexp.MustCompile(`%[0-9]+`),                              // %1, %2 positional
	regexp.MustCompile(`%%`),                                   // escaped percent literal
}

// Extract returns the placeholders in text, in order of appearance.
// Overlapping matches keep the earliest, longest one.
func Extract(text string) []string {
	var all []varMatch
	for _, p := range patterns {
		for _, loc := range p.FindAllStringIndex(text, -1) {
			all = append(all, varMatch{start: loc[0], end: loc[1], value: text[loc[0]:loc[1]]})
		}
	}
	if len(all) == 0 {
		return nil
	}

	// Sort by start, longer match first on ties.
	sort.Slice(all, func(i, j int) bool {
		if all[i].start != all[j].start {
			return all[i].start < all[j].start
		}
		return all[i].end-all[i].start > all[j].end-all[j].start
	})

	var out []string
	lastEnd := -1
	for _, m := range all {
		if m.start >= lastEnd {
			out = append(out, m.value)
			lastEnd = m.end
		}
	}
	return out
}

// Diff compares the placeholders of source and translated. Missing lists
// placeholders translated lost; extra lists ones it gained. Order is ignored.
func Diff(source, translated string) (missing, extra []string) {
	counts := make(map[string]int)
	for _, p := range Extract(source) {
		counts[p]++
	}
	for _, p := range Extract(translated) {
		if counts[p] > 0 {
			counts[p]--
			continue
		}
		extra = append(extra, p)
	}
	for _, p := range Extract(source) {
		if counts[p] > 0 {
			missing = append(missing, p)
			counts[p]--
		}
	}
	return missing, extra
}
