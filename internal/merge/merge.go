// Package merge reconciles a target translation file against the reference
// file: missing sections and lines are copied in, lines the reference no
// longer knows are commented out or removed.
package merge

import (
	"strings"

	"langsync/internal/events"
	"langsync/internal/inifile"
)

// Engine applies reference-driven merges and reports through a sink.
type Engine struct {
	sink events.Sink
}

// NewEngine creates an engine emitting into sink.
func NewEngine(sink events.Sink) *Engine {
	if sink == nil {
		sink = events.Discard
	}
	return &Engine{sink: sink}
}

// Stats counts what a CopyMissing pass inserted.
type Stats struct {
	SectionsAdded int
	LinesAdded    int
}

// Finding is one line reported by the list helpers.
type Finding struct {
	Section string
	Key     string
	Line    string
}

// CopyMissing brings target up to date with ref. Reference sections the target
// lacks are cloned in whole; for shared sections each missing reference line
// is inserted at its ordered position. Existing target lines are never
// changed.
func (e *Engine) CopyMissing(target, ref *inifile.File) Stats {
	scope := events.For(e.sink, target.Name)
	var stats Stats

	for _, rs := range ref.Sections {
		sc := scope.InSection(rs.Name)
		ts := target.Section(rs.Name)
		if ts == nil {
			if target.InsertSectionIfMissing(rs) {
				stats.SectionsAdded++
				sc.Info("", "Copied missing section")
			}
			continue
		}
		for _, line := range rs.Lines {
			if ts.InsertLineIfMissing(line) {
				stats.LinesAdded++
				sc.Debug(inifile.Key(line), "Inserted missing line")
			}
		}
	}

	if stats.LinesAdded > 0 || stats.SectionsAdded > 0 {
		scope.Info("", "Copied missing lines")
	}
	return stats
}

// CommentOutUnknown prefixes every unknown line with '#'. Already commented
// lines are not unknown, so repeated passes never stack markers.
func (e *Engine) CommentOutUnknown(target, ref *inifile.File) int {
	scope := events.For(e.sink, target.Name)
	count := 0

	for _, ts := range target.Sections {
		sc := scope.InSection(ts.Name)
		rs := ref.Section(ts.Name)
		if rs == nil {
			sc.Warn("", "Section not in reference, left unchanged")
			continue
		}
		for i, line := range ts.Lines {
			if !IsUnknown(line, rs) {
				continue
			}
			ts.Lines[i] = "#" + line
			count++
			sc.Info(inifile.Key(line), "Commented out unknown line")
		}
	}
	return count
}

// RemoveUnknown deletes every unknown line.
func (e *Engine) RemoveUnknown(target, ref *inifile.File) int {
	scope := events.For(e.sink, target.Name)
	count := 0

	for _, ts := range target.Sections {
		sc := scope.InSection(ts.Name)
		rs := ref.Section(ts.Name)
		if rs == nil {
			sc.Warn("", "Section not in reference, left unchanged")
			continue
		}
		kept := ts.Lines[:0]
		for _, line := range ts.Lines {
			if IsUnknown(line, rs) {
				count++
				sc.Info(inifile.Key(line), "Removed unknown line")
				continue
			}
			kept = append(kept, line)
		}
		ts.Lines = kept
	}
	return count
}

// IsUnknown reports whether line is a key line that no reference line starts
// with. Comments, Font* keys and keys containing "URL" are never unknown.
func IsUnknown(line string, ref *inifile.Section) bool {
	if inifile.IsComment(line) {
		return false
	}
	key, _, ok := inifile.SplitKeyValue(line)
	if !ok {
		return false
	}
	if strings.HasPrefix(key, "Font") || strings.Contains(key, "URL") {
		return false
	}
	return !ref.HasPrefix(inifile.PrefixFor(key))
}

// ListUnknown returns the lines CommentOutUnknown would touch. Sections the
// reference lacks report all of their key lines.
func ListUnknown(target, ref *inifile.File) []Finding {
	var out []Finding
	for _, ts := range target.Sections {
		rs := sectionOrEmpty(ref, ts.Name)
		for _, line := range ts.Lines {
			if IsUnknown(line, rs) {
				out = append(out, Finding{Section: ts.Name, Key: inifile.Key(line), Line: line})
			}
		}
	}
	return out
}

// ListNewKeys returns the bare keys of file that other does not have, using
// the same predicate as ListUnknown.
func ListNewKeys(file, other *inifile.File) []Finding {
	var out []Finding
	for _, fs := range file.Sections {
		cmp := sectionOrEmpty(other, fs.Name)
		for _, line := range fs.Lines {
			if IsUnknown(line, cmp) {
				out = append(out, Finding{Section: fs.Name, Key: inifile.Key(line)})
			}
		}
	}
	return out
}

// ListMissingSections names the reference sections target does not have.
func ListMissingSections(target, ref *inifile.File) []string {
	var out []string
	for _, rs := range ref.Sections {
		if target.SectionIndex(rs.Name) < 0 {
			out = append(out, rs.Name)
		}
	}
	return out
}

func sectionOrEmpty(f *inifile.File, name string) *inifile.Section {
	if s := f.Section(name); s != nil {
		return s
	}
	return inifile.NewSection(name)
}
