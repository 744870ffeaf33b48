package inifile

import (
	"sort"
	"strings"
)

// Section is a named, ordered run of lines. Line order encodes an
// approximately alphabetical key order that edits extend rather than redo.
type Section struct {
	// Name is the text between the brackets of the header.
	Name string
	// TitleLine is the verbatim header, trailing comment included.
	TitleLine string
	// Lines are the member lines in file order, stored verbatim.
	Lines []string
}

// NewSection creates an empty section with a plain "[name]" header.
func NewSection(name string) *Section {
	return &Section{Name: name, TitleLine: "[" + name + "]"}
}

// Clone returns a deep copy of s.
func (s *Section) Clone() *Section {
	lines := make([]string, len(s.Lines))
	copy(lines, s.Lines)
	return &Section{Name: s.Name, TitleLine: s.TitleLine, Lines: lines}
}

// Find returns the index of the first line starting with prefix, or -1.
func (s *Section) Find(prefix string) int {
	for i, l := range s.Lines {
		if strings.HasPrefix(l, prefix) {
			return i
		}
	}
	return -1
}

// FindKey returns the index of the line holding key (exact match), or -1.
func (s *Section) FindKey(key string) int {
	return s.Find(PrefixFor(key))
}

// FindKeyFold is FindKey with a case-insensitive prefix comparison.
func (s *Section) FindKeyFold(key string) int {
	prefix := PrefixFor(key)
	for i, l := range s.Lines {
		if len(l) >= len(prefix) && strings.EqualFold(l[:len(prefix)], prefix) {
			return i
		}
	}
	return -1
}

// FindTrimmedKey returns the index of the first key-bearing line whose
// trimmed key equals key, or -1.
func (s *Section) FindTrimmedKey(key string) int {
	for i, l := range s.Lines {
		if k, _, ok := SplitKeyValue(l); ok && k == key {
			return i
		}
	}
	return -1
}

// Keys returns the keys of all key-bearing, non-comment lines in order.
func (s *Section) Keys() []string {
	var keys []string
	for _, l := range s.Lines {
		if IsComment(l) {
			continue
		}
		if k, _, ok := SplitKeyValue(l); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// HasPrefix reports whether any line starts with prefix.
func (s *Section) HasPrefix(prefix string) bool {
	return s.Find(prefix) >= 0
}

// InsertLine inserts line at index i, shifting later lines down.
func (s *Section) InsertLine(i int, line string) {
	s.Lines = append(s.Lines, "")
	copy(s.Lines[i+1:], s.Lines[i:])
	s.Lines[i] = line
}

// RemoveLine deletes the line at index i and returns it.
func (s *Section) RemoveLine(i int) string {
	line := s.Lines[i]
	s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
	return line
}

// InsertLineIfMissing adds line unless its key is already present. The line
// goes before the first key line that sorts after it (case-folded); failing
// that, after the last non-blank line so trailing separators stay last.
// Comments, non-key lines and the translators key are ignored.
func (s *Section) InsertLineIfMissing(line string) bool {
	key, _, ok := SplitKeyValue(line)
	if !ok || IsComment(line) || key == ReservedTranslatorsKey {
		return false
	}
	prefix := PrefixFor(key)
	if s.HasPrefix(prefix) {
		return false
	}

	folded := fold(prefix)
	for i, l := range s.Lines {
		if IsComment(l) {
			continue
		}
		p := KeyPrefix(l)
		if p == "" {
			continue
		}
		if fold(p) > folded {
			s.InsertLine(i, line)
			return true
		}
	}

	pos := len(s.Lines)
	for pos > 0 && IsBlank(s.Lines[pos-1]) {
		pos--
	}
	s.InsertLine(pos, line)
	return true
}

// Sort orders the section by case-folded key. Trailing blank lines stay at
// the end; lines without a key sort by their own text.
func (s *Section) Sort() {
	end := len(s.Lines)
	for end > 0 && IsBlank(s.Lines[end-1]) {
		end--
	}
	body := s.Lines[:end]
	sort.SliceStable(body, func(i, j int) bool {
		return sortKey(body[i]) < sortKey(body[j])
	})
}

func sortKey(line string) string {
	if p := KeyPrefix(line); p != "" {
		return fold(p)
	}
	return fold(line)
}
