package merge

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"langsync/internal/events"
	"langsync/internal/inifile"
)

const refText = "[Audio]\n" +
	"Enable = Enable\n" +
	"Volume = Volume\n" +
	"\n" +
	"[General]\n" +
	"AutoSave = AutoSave\n" +
	"Theme = Theme\n"

func TestCopyMissingAddsLineInOrder(t *testing.T) {
	ref := inifile.Parse("en_US.ini", "[General]\nAutoSave = AutoSave\nTheme = Theme\n")
	target := inifile.Parse("es_ES.ini", "[General]\nTheme = Tema\n")

	stats := NewEngine(nil).CopyMissing(target, ref)

	assert.Equal(t, Stats{LinesAdded: 1}, stats)
	assert.Equal(t, []string{"AutoSave = AutoSave", "Theme = Tema"}, target.Section("General").Lines)
}

func TestCopyMissingClonesWholeSection(t *testing.T) {
	ref := inifile.Parse("en_US.ini", refText)
	target := inifile.Parse("es_ES.ini", "[General]\nAutoSave = Autoguardado\nTheme = Tema\n")
	rec := &events.Recorder{}

	stats := NewEngine(rec).CopyMissing(target, ref)

	assert.Equal(t, 1, stats.SectionsAdded)
	assert.Equal(t, 0, stats.LinesAdded)
	require.Equal(t, []string{"Audio", "General"}, target.SectionNames())
	assert.Equal(t, ref.Section("Audio").Lines, target.Section("Audio").Lines)
	assert.NotEmpty(t, rec.AtLevel(zerolog.InfoLevel))

	again := NewEngine(nil).CopyMissing(target, ref)
	assert.Equal(t, Stats{}, again, "second pass is a no-op")
}

func TestCommentOutUnknownIdempotent(t *testing.T) {
	ref := inifile.Parse("en_US.ini", refText)
	target := inifile.Parse("de_DE.ini", "[General]\n"+
		"AutoSave = Autospeichern\n"+
		"Obsolete = Veraltet\n"+
		"FontName = Arial\n"+
		"HelpURL = https://example.com\n"+
		"Theme = Thema\n")
	engine := NewEngine(nil)

	assert.Equal(t, 1, engine.CommentOutUnknown(target, ref))
	assert.Equal(t, 0, engine.CommentOutUnknown(target, ref))

	lines := target.Section("General").Lines
	assert.Contains(t, lines, "#Obsolete = Veraltet")
	assert.Contains(t, lines, "FontName = Arial")
	assert.Contains(t, lines, "HelpURL = https://example.com")
	for _, l := range lines {
		assert.False(t, strings.HasPrefix(l, "##"), l)
	}
}

func TestCommentOutUnknownSkipsSectionsMissingFromReference(t *testing.T) {
	ref := inifile.Parse("en_US.ini", refText)
	target := inifile.Parse("de_DE.ini", "[Legacy]\nOld = Alt\n")
	rec := &events.Recorder{}

	assert.Equal(t, 0, NewEngine(rec).CommentOutUnknown(target, ref))
	assert.Equal(t, []string{"Old = Alt"}, target.Section("Legacy").Lines)
	warns := rec.AtLevel(zerolog.WarnLevel)
	require.Len(t, warns, 1)
	assert.Equal(t, "Legacy", warns[0].Section)
	assert.Equal(t, "de_DE.ini", warns[0].File)
}

func TestUnknownToleratesInlineCommentsInReference(t *testing.T) {
	ref := inifile.Parse("en_US.ini", "[General]\nTheme = Theme # the UI skin\n")
	target := inifile.Parse("de_DE.ini", "[General]\nTheme = Thema\n")
	assert.Equal(t, 0, NewEngine(nil).CommentOutUnknown(target, ref))
}

func TestRemoveUnknown(t *testing.T) {
	ref := inifile.Parse("en_US.ini", refText)
	target := inifile.Parse("de_DE.ini", "[Audio]\n"+
		"Enable = Aktivieren\n"+
		"Gone = Weg\n"+
		"#Commented = x\n"+
		"FontSize = 12\n"+
		"\n")
	rec := &events.Recorder{}

	assert.Equal(t, 1, NewEngine(rec).RemoveUnknown(target, ref))
	assert.Equal(t, []string{"Enable = Aktivieren", "#Commented = x", "FontSize = 12", ""}, target.Section("Audio").Lines)
	assert.True(t, rec.HasKey(zerolog.InfoLevel, "Gone"))
}

func TestListUnknownDoesNotMutate(t *testing.T) {
	ref := inifile.Parse("en_US.ini", refText)
	text := "[General]\nTheme = Thema\nStale = Alt\n[Extra]\nX = Y\n"
	target := inifile.Parse("de_DE.ini", text)

	got := ListUnknown(target, ref)

	assert.Equal(t, []Finding{
		{Section: "General", Key: "Stale", Line: "Stale = Alt"},
		{Section: "Extra", Key: "X", Line: "X = Y"},
	}, got)
	assert.Equal(t, text, target.Serialize())
}

func TestListNewKeys(t *testing.T) {
	ref := inifile.Parse("en_US.ini", refText)
	target := inifile.Parse("de_DE.ini", "[General]\nTheme = Thema\n")

	got := ListNewKeys(ref, target)

	var keys []string
	for _, f := range got {
		keys = append(keys, f.Section+"/"+f.Key)
	}
	assert.Equal(t, []string{"Audio/Enable", "Audio/Volume", "General/AutoSave"}, keys)
	assert.Equal(t, []string{"Audio"}, ListMissingSections(target, ref))
}
