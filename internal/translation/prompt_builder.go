package translation

import (
	"fmt"
	"strings"
)

// PromptBuilder constructs system and user prompts for translation.
type PromptBuilder struct {
	protectedTerms []string
}

// NewPromptBuilder creates a prompt builder. protectedTerms are names that
// must appear verbatim in every translation.
func NewPromptBuilder(protectedTerms []string) *PromptBuilder {
	return &PromptBuilder{protectedTerms: protectedTerms}
}

const systemPrompt = `You are a professional software localizer translating user interface strings of a desktop and mobile application.

Rules:
1. Translate from US English into the requested target language.
2. Preserve ALL placeholders like %s, %d, %1, {0} and ${name}; copy them exactly as-is into your translation.
3. The two-character sequence \n marks an intentional line break. Keep it literally, never output a real newline inside a value.
4. Keep abbreviations, acronyms and units unchanged unless the language has a well-established equivalent.
5. Never translate these names and terms: {{terms}}.
6. Keep translations concise; they are shown on buttons, in menus and on settings screens.
7. Output ONLY the requested format. Do NOT add explanations, notes, or extra text.`

// GetSystemPrompt returns the system prompt with the protected terms filled in.
func (pb *PromptBuilder) GetSystemPrompt() string {
	terms := "(none)"
	if len(pb.protectedTerms) > 0 {
		terms = strings.Join(pb.protectedTerms, ", ")
	}
	return strings.ReplaceAll(systemPrompt, "{{terms}}", terms)
}

// BuildSectionPrompt asks for the untranslated keys of one section. Keys are
// rendered as empty "Key =" lines to be filled in; translated pairs follow as
// context.
func (pb *PromptBuilder) BuildSectionPrompt(lang Language, section string, untranslated []string, translated []Pair) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Translate the strings below from US English to %s.\n", lang))
	sb.WriteString("Each line has the form \"Key = Value\"; the key is the English text. Fill in the value after each \" = \".\n")
	sb.WriteString("Answer with the same [" + section + "] section header followed by one \"Key = Translation\" line per string.\n")
	sb.WriteString("Do not translate the section name or the keys.\n\n")

	sb.WriteString("Strings to translate:\n")
	sb.WriteString("[" + section + "]\n")
	for _, k := range untranslated {
		sb.WriteString(k + " =\n")
	}

	if len(translated) > 0 {
		sb.WriteString("\nAlready translated strings from the same section, for context only:\n")
		for _, p := range translated {
			sb.WriteString(fmt.Sprintf("%s = %s\n", p.Key, p.Value))
		}
	}

	return sb.String()
}

// BuildNewKeyPrompt asks for one new string in many languages at once. The
// reply is expected as a JSON object keyed by language code.
func (pb *PromptBuilder) BuildNewKeyPrompt(section, key, value string, langs []Language) string {
	var sb strings.Builder

	sb.WriteString("Translate the UI string below from US English into each of these languages:\n")
	for _, l := range langs {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", l.Code, l.Name))
	}
	sb.WriteString(fmt.Sprintf("\nSection: %s\nKey: %s\nEnglish text: %s\n\n", section, key, value))
	sb.WriteString("Answer with a single JSON object mapping each language code to its translation, ")
	sb.WriteString("for example {\"de_DE\": \"...\", \"fr_FR\": \"...\"}.\n")

	return sb.String()
}
