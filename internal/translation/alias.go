package translation

import (
	"sort"

	"langsync/internal/inifile"
)

// AliasMap pairs reference keys with the display text the reference uses as
// their value when the two differ. Such keys are legacy names kept so
// existing translations survive a wording change.
type AliasMap struct {
	forward map[string]string // key → alias
	inverse map[string]string // alias → key
}

// BuildAliasMap scans a reference section for lines whose value differs from
// their key.
func BuildAliasMap(ref *inifile.Section) *AliasMap {
	am := &AliasMap{
		forward: make(map[string]string),
		inverse: make(map[string]string),
	}
	if ref == nil {
		return am
	}
	for _, line := range ref.Lines {
		if inifile.IsComment(line) {
			continue
		}
		key, value, ok := inifile.SplitKeyValue(line)
		if !ok {
			continue
		}
		value = inifile.StripComment(value)
		if value == "" || value == key {
			continue
		}
		am.forward[key] = value
		am.inverse[value] = key
	}
	return am
}

// Alias returns the display alias of key, if any.
func (am *AliasMap) Alias(key string) (string, bool) {
	a, ok := am.forward[key]
	return a, ok
}

// Display returns the alias of key, or key itself.
func (am *AliasMap) Display(key string) string {
	if a, ok := am.forward[key]; ok {
		return a
	}
	return key
}

// Canonical maps an alias back to its key; other strings map to themselves.
func (am *AliasMap) Canonical(alias string) string {
	if k, ok := am.inverse[alias]; ok {
		return k
	}
	return alias
}

// Len returns the number of aliases.
func (am *AliasMap) Len() int {
	return len(am.forward)
}

// Pair is one key with its alias or value.
type Pair struct {
	Key   string
	Value string
}

// Pairs lists key → alias entries sorted by key.
func (am *AliasMap) Pairs() []Pair {
	out := make([]Pair, 0, len(am.forward))
	for k, v := range am.forward {
		out = append(out, Pair{Key: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
