package inifile

import (
	"strings"

	"golang.org/x/text/cases"
)

// KeyMarker separates a key from its value. A line is key-bearing iff it
// contains the marker; keys that themselves contain " =" cannot be
// represented.
const KeyMarker = " ="

// LineBreakToken is the in-value escape for an intentional UI line break.
const LineBreakToken = `\n`

// ReservedTranslatorsKey is never copied between files.
const ReservedTranslatorsKey = "translators"

// IsKeyBearing reports whether line contains the key marker.
func IsKeyBearing(line string) bool {
	return strings.Contains(line, KeyMarker)
}

// IsComment reports whether line is a # comment.
func IsComment(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "#")
}

// IsBlank reports whether line holds only whitespace.
func IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// SplitKeyValue splits a key-bearing line at the first marker. Both parts are
// trimmed; an inline comment stays part of the value.
func SplitKeyValue(line string) (key, value string, ok bool) {
	idx := strings.Index(line, KeyMarker)
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+len(KeyMarker):])
	return key, value, true
}

// Key returns the trimmed key of line, or "" if it is not key-bearing.
func Key(line string) string {
	k, _, _ := SplitKeyValue(line)
	return k
}

// KeyPrefix returns key + " =", the form used for prefix matching, or "" for
// lines without a key.
func KeyPrefix(line string) string {
	k, _, ok := SplitKeyValue(line)
	if !ok {
		return ""
	}
	return PrefixFor(k)
}

// PrefixFor builds the match prefix for a bare key.
func PrefixFor(key string) string {
	return key + KeyMarker
}

// StripComment returns value up to its first '#', trimmed.
func StripComment(value string) string {
	if idx := strings.IndexByte(value, '#'); idx >= 0 {
		value = value[:idx]
	}
	return strings.TrimSpace(value)
}

// FormatLine renders "key = value", with " # comment" appended when comment
// is not empty.
func FormatLine(key, value, comment string) string {
	line := key + " = " + value
	if comment != "" {
		line += " # " + comment
	}
	return line
}

// fold case-folds s for ordering comparisons.
func fold(s string) string {
	return cases.Fold().String(s)
}
