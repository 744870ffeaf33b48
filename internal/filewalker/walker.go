package filewalker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// Extension of translation files.
const Extension = ".ini"

// Walker lists the target translation files of a language directory.
type Walker struct {
	reference string
	ignore    map[string]bool
}

// NewWalker creates a Walker that skips the reference file and every name in
// ignore.
func NewWalker(reference string, ignore []string) *Walker {
	w := &Walker{
		reference: filepath.Base(reference),
		ignore:    make(map[string]bool, len(ignore)),
	}
	for _, name := range ignore {
		w.ignore[name] = true
	}
	return w
}

// FileEntry represents a discovered target file.
type FileEntry struct {
	Path string
	// Code is the file name without extension, e.g. "de_DE".
	Code string
}

// Walk lists the target files directly under root, sorted by name. A
// non-empty only keeps the single file whose code matches.
func (w *Walker) Walk(root, only string) ([]FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	dirEntries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}

	var entries []FileEntry
	for _, de := range dirEntries {
		name := de.Name()
		if de.IsDir() || !strings.EqualFold(filepath.Ext(name), Extension) {
			continue
		}
		if name == w.reference || w.ignore[name] {
			continue
		}
		code := strings.TrimSuffix(name, filepath.Ext(name))
		if only != "" && code != only {
			continue
		}
		entries = append(entries, FileEntry{Path: filepath.Join(root, name), Code: code})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })

	log.Debug().Int("count", len(entries)).Str("root", root).Msg("Discovered files")
	return entries, nil
}
