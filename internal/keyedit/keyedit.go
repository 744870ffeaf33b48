// Package keyedit performs single-key structural edits on translation files.
//
// Lines are located by key prefix ("Key ="). A missing section or key is never
// an error: the editor emits a warning and the operation does nothing.
//
// Matching policy per operation:
//
//	RenameKey, DupeKey, MoveKey, CopyKey  exact prefix
//	ApplyRegex, SetValue, GetValue        exact prefix
//	RemoveKey                             case-insensitive prefix
//	RemoveLinebreaks                      exact trimmed key
package keyedit

import (
	"fmt"
	"regexp"
	"strings"

	"langsync/internal/events"
	"langsync/internal/inifile"
)

// Editor applies key edits and reports through a sink.
type Editor struct {
	sink events.Sink
}

// New creates an editor emitting into sink.
func New(sink events.Sink) *Editor {
	if sink == nil {
		sink = events.Discard
	}
	return &Editor{sink: sink}
}

// CompileRegex compiles a substitution pattern. The CLI compiles once per run
// and treats failure as fatal.
func CompileRegex(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return re, nil
}

func (e *Editor) section(f *inifile.File, name string) (*inifile.Section, events.Scope) {
	sc := events.For(e.sink, f.Name).InSection(name)
	sec := f.Section(name)
	if sec == nil {
		sc.Warn("", "Section not found")
	}
	return sec, sc
}

// renamed builds the line for newKey. A value still equal to the old key is
// an untranslated placeholder and follows the rename; anything else is a real
// translation and is kept.
func renamed(oldKey, newKey, value string) string {
	if value == oldKey {
		value = newKey
	}
	return inifile.FormatLine(newKey, value, "")
}

// RenameKey replaces oldKey with newKey in section. The renamed line is
// re-inserted by sort order, so it may move.
func (e *Editor) RenameKey(f *inifile.File, section, oldKey, newKey string) bool {
	sec, sc := e.section(f, section)
	if sec == nil {
		return false
	}
	i := sec.FindKey(oldKey)
	if i < 0 {
		sc.Warn(oldKey, "Key not found")
		return false
	}
	line := sec.RemoveLine(i)
	_, value, _ := inifile.SplitKeyValue(line)
	if !sec.InsertLineIfMissing(renamed(oldKey, newKey, value)) {
		sc.Warn(newKey, "Key already exists, old line dropped")
		return true
	}
	sc.Info(newKey, "Renamed key from "+oldKey)
	return true
}

// DupeKey adds newKey next to oldKey, carrying the same value logic as
// RenameKey. The original line stays.
func (e *Editor) DupeKey(f *inifile.File, section, oldKey, newKey string) bool {
	sec, sc := e.section(f, section)
	if sec == nil {
		return false
	}
	i := sec.FindKey(oldKey)
	if i < 0 {
		sc.Warn(oldKey, "Key not found")
		return false
	}
	_, value, _ := inifile.SplitKeyValue(sec.Lines[i])
	if !sec.InsertLineIfMissing(renamed(oldKey, newKey, value)) {
		sc.Warn(newKey, "Key already exists")
		return false
	}
	sc.Info(newKey, "Duplicated key from "+oldKey)
	return true
}

// MoveKey moves the line for key from one section to another.
func (e *Editor) MoveKey(f *inifile.File, fromSection, toSection, key string) bool {
	return e.transfer(f, fromSection, toSection, key, true)
}

// CopyKey copies the line for key into another section, leaving the source.
func (e *Editor) CopyKey(f *inifile.File, fromSection, toSection, key string) bool {
	return e.transfer(f, fromSection, toSection, key, false)
}

func (e *Editor) transfer(f *inifile.File, fromSection, toSection, key string, remove bool) bool {
	src, sc := e.section(f, fromSection)
	if src == nil {
		return false
	}
	dst, dsc := e.section(f, toSection)
	if dst == nil {
		return false
	}
	i := src.FindKey(key)
	if i < 0 {
		sc.Warn(key, "Key not found")
		return false
	}
	line := src.Lines[i]
	if remove {
		src.RemoveLine(i)
	}
	if !dst.InsertLineIfMissing(line) {
		dsc.Warn(key, "Key already exists in destination")
		return remove
	}
	if remove {
		dsc.Info(key, "Moved key from "+fromSection)
	} else {
		dsc.Info(key, "Copied key from "+fromSection)
	}
	return true
}

// RemoveKey deletes the first line whose key matches case-insensitively.
func (e *Editor) RemoveKey(f *inifile.File, section, key string) bool {
	sec, sc := e.section(f, section)
	if sec == nil {
		return false
	}
	i := sec.FindKeyFold(key)
	if i < 0 {
		sc.Warn(key, "Key not found")
		return false
	}
	sec.RemoveLine(i)
	sc.Info(key, "Removed key")
	return true
}

// ApplyRegex substitutes re with replacement in the value of every line
// holding key. The key text is untouched. It returns the number of lines that
// changed.
func (e *Editor) ApplyRegex(f *inifile.File, section, key string, re *regexp.Regexp, replacement string) int {
	sec, sc := e.section(f, section)
	if sec == nil {
		return 0
	}
	prefix := inifile.PrefixFor(key)
	found, changed := false, 0
	for i, line := range sec.Lines {
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		found = true
		head, value := splitRaw(line)
		replaced := re.ReplaceAllString(value, replacement)
		if replaced != value {
			sec.Lines[i] = head + " = " + replaced
			changed++
		}
	}
	if !found {
		sc.Warn(key, "Key not found")
		return 0
	}
	if changed > 0 {
		sc.Info(key, "Applied regex")
	}
	return changed
}

// RemoveLinebreaks replaces each literal \n token in the value of key with a
// single space.
func (e *Editor) RemoveLinebreaks(f *inifile.File, section, key string) bool {
	sec, sc := e.section(f, section)
	if sec == nil {
		return false
	}
	i := sec.FindTrimmedKey(key)
	if i < 0 {
		sc.Warn(key, "Key not found")
		return false
	}
	head, value := splitRaw(sec.Lines[i])
	if !strings.Contains(value, inifile.LineBreakToken) {
		sc.Debug(key, "No line breaks to remove")
		return false
	}
	sec.Lines[i] = head + " = " + strings.ReplaceAll(value, inifile.LineBreakToken, " ")
	sc.Info(key, "Removed line breaks")
	return true
}

// SetValue overwrites the line for key with "key = value", plus " # comment"
// when comment is set. It reports whether the key existed.
func (e *Editor) SetValue(f *inifile.File, section, key, value, comment string) bool {
	sec, sc := e.section(f, section)
	if sec == nil {
		return false
	}
	i := sec.FindKey(key)
	if i < 0 {
		sc.Warn(key, "Key not found")
		return false
	}
	sec.Lines[i] = inifile.FormatLine(key, value, comment)
	sc.Debug(key, "Set value")
	return true
}

// GetValue returns the value of key with any inline comment stripped.
func GetValue(f *inifile.File, section, key string) (string, bool) {
	sec := f.Section(section)
	if sec == nil {
		return "", false
	}
	i := sec.FindKey(key)
	if i < 0 {
		return "", false
	}
	_, value, _ := inifile.SplitKeyValue(sec.Lines[i])
	return inifile.StripComment(value), true
}

// AddKey inserts "key = value" in sort position. An empty value defaults to
// the key itself, the untranslated placeholder form.
func (e *Editor) AddKey(f *inifile.File, section, key, value string) bool {
	sec, sc := e.section(f, section)
	if sec == nil {
		return false
	}
	if value == "" {
		value = key
	}
	if !sec.InsertLineIfMissing(inifile.FormatLine(key, value, "")) {
		sc.Warn(key, "Key already exists")
		return false
	}
	sc.Info(key, "Added key")
	return true
}

// SortSection sorts the section by case-folded key.
func (e *Editor) SortSection(f *inifile.File, section string) bool {
	sec, sc := e.section(f, section)
	if sec == nil {
		return false
	}
	sec.Sort()
	sc.Info("", "Sorted section")
	return true
}

// splitRaw splits a key line into the text before the marker and the trimmed
// value after it.
func splitRaw(line string) (head, value string) {
	idx := strings.Index(line, inifile.KeyMarker)
	return line[:idx], strings.TrimSpace(line[idx+len(inifile.KeyMarker):])
}
