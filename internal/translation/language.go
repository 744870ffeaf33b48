package translation

import (
	"path/filepath"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language identifies a translation target.
type Language struct {
	// Code as used in file names, e.g. "pt_BR".
	Code string
	// Name is the English display name, e.g. "Brazilian Portuguese".
	Name string
}

// LanguageFromCode resolves the English name for a file-name language code.
// Unknown codes use the code as the name.
func LanguageFromCode(code string) Language {
	lang := Language{Code: code, Name: code}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return lang
	}
	if name := display.English.Tags().Name(tag); name != "" {
		lang.Name = name
	}
	return lang
}

// LanguageFromPath derives the language from a file name like "de_DE.ini".
func LanguageFromPath(path string) Language {
	base := filepath.Base(path)
	return LanguageFromCode(strings.TrimSuffix(base, filepath.Ext(base)))
}

func (l Language) String() string {
	if l.Name == l.Code {
		return l.Code
	}
	return l.Name + " (" + l.Code + ")"
}
