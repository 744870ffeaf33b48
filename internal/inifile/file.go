// Package inifile reads and writes the lexical key/value files used for UI
// translations.
//
// Grammar: "[Name]" opens a section (text after "]" is kept verbatim), other
// lines belong to the open section unchanged. A line is key-bearing when it
// contains " =". Nothing is validated, so blank lines, comments and malformed
// content round-trip untouched. A leading byte-order mark on the first line is
// stripped and restored on output.
package inifile

import (
	"fmt"
	"os"
	"strings"
)

// BOM is the UTF-8 byte-order mark.
const BOM = "\uFEFF"

// File is a parsed translation file.
type File struct {
	// Name identifies the source, usually its path.
	Name string
	// BOM records whether the first line carried a byte-order mark.
	BOM bool
	// Preamble holds the lines before the first section header.
	Preamble []string
	// Sections in file order. Names are unique.
	Sections []*Section
	// Truncated is set when a "[" without a closing "]" stopped parsing.
	Truncated bool
}

// ReadFile parses the file at path.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ini file: %w", err)
	}
	return Parse(path, string(data)), nil
}

// Parse splits text into preamble and sections. An unbalanced header ends the
// parse at that line; everything collected so far is kept.
func Parse(name, text string) *File {
	f := &File{Name: name}
	if text == "" {
		return f
	}

	lines := strings.Split(text, "\n")
	if strings.HasSuffix(text, "\n") {
		lines = lines[:len(lines)-1]
	}

	var current *Section
	for i, line := range lines {
		if i == 0 && strings.HasPrefix(line, BOM) {
			f.BOM = true
			line = line[len(BOM):]
		}

		if strings.HasPrefix(line, "[") {
			end := strings.IndexByte(line[1:], ']')
			if end < 0 {
				f.Truncated = true
				break
			}
			if current != nil {
				f.Sections = append(f.Sections, current)
			}
			current = &Section{Name: line[1 : end+1], TitleLine: line}
			continue
		}

		if current == nil {
			f.Preamble = append(f.Preamble, line)
		} else {
			current.Lines = append(current.Lines, line)
		}
	}
	if current != nil {
		f.Sections = append(f.Sections, current)
	}

	return f
}

// Serialize renders f back to text, every line newline-terminated.
func (f *File) Serialize() string {
	var sb strings.Builder
	if f.BOM {
		sb.WriteString(BOM)
	}
	for _, l := range f.Preamble {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	for _, s := range f.Sections {
		sb.WriteString(s.TitleLine)
		sb.WriteByte('\n')
		for _, l := range s.Lines {
			sb.WriteString(l)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// WriteFile rewrites path with the serialized file.
func (f *File) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(f.Serialize()), 0644); err != nil {
		return fmt.Errorf("write ini file: %w", err)
	}
	return nil
}

// SectionIndex returns the position of the named section, or -1.
func (f *File) SectionIndex(name string) int {
	for i, s := range f.Sections {
		if s.Name == name {
			return i
		}
	}
	return -1
}

// Section returns the named section, or nil.
func (f *File) Section(name string) *Section {
	if i := f.SectionIndex(name); i >= 0 {
		return f.Sections[i]
	}
	return nil
}

// InsertSectionIfMissing adds a clone of sec unless a section with its name
// exists. Sections are assumed to be ordered by name: the clone goes before
// the first one sorting after it, or at the end.
func (f *File) InsertSectionIfMissing(sec *Section) bool {
	if f.SectionIndex(sec.Name) >= 0 {
		return false
	}
	clone := sec.Clone()
	for i, s := range f.Sections {
		if s.Name > sec.Name {
			f.Sections = append(f.Sections, nil)
			copy(f.Sections[i+1:], f.Sections[i:])
			f.Sections[i] = clone
			return true
		}
	}
	f.Sections = append(f.Sections, clone)
	return true
}

// SectionNames lists section names in file order.
func (f *File) SectionNames() []string {
	names := make([]string, len(f.Sections))
	for i, s := range f.Sections {
		names[i] = s.Name
	}
	return names
}
