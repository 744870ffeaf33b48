package translation

import (
	"context"
	"fmt"
	"strings"

	"langsync/internal/events"
	"langsync/internal/inifile"
	"langsync/internal/interpolation"
	"langsync/internal/keyedit"
	"langsync/internal/textutil"
)

// AnnotationComment marks values written from a machine translation.
const AnnotationComment = "AI translated"

// Reconciler fills untranslated keys of a target file with machine
// translations.
type Reconciler struct {
	client  Client
	prompts *PromptBuilder
	sink    events.Sink
}

// NewReconciler creates a reconciler using client for completions.
func NewReconciler(client Client, prompts *PromptBuilder, sink events.Sink) *Reconciler {
	if sink == nil {
		sink = events.Discard
	}
	if prompts == nil {
		prompts = NewPromptBuilder(nil)
	}
	return &Reconciler{client: client, prompts: prompts, sink: sink}
}

// Result summarizes one FinishLanguage run.
type Result struct {
	// Requests is the number of completion calls made.
	Requests int
	// Requested is the number of keys sent for translation.
	Requested int
	// Applied is the number of values written into the target.
	Applied int
}

// SectionPlan is the partition of a target section against the reference.
type SectionPlan struct {
	Section string
	Aliases *AliasMap
	// Untranslated keys still carry the reference value.
	Untranslated []string
	// Translated pairs hold the key and its existing translation.
	Translated []Pair
	// refValues maps key → reference value, comment stripped.
	refValues map[string]string
}

// PlanSection joins target against ref by key. Keys whose value equals the
// reference value are untranslated, unless that value is all uppercase. Only
// the first target line of a duplicated key is planned.
func PlanSection(ref, target *inifile.Section) *SectionPlan {
	plan := &SectionPlan{
		Section:   ref.Name,
		Aliases:   BuildAliasMap(ref),
		refValues: make(map[string]string),
	}
	for _, line := range ref.Lines {
		if inifile.IsComment(line) {
			continue
		}
		if k, v, ok := inifile.SplitKeyValue(line); ok {
			if _, seen := plan.refValues[k]; !seen {
				plan.refValues[k] = inifile.StripComment(v)
			}
		}
	}

	planned := make(map[string]bool)
	for _, line := range target.Lines {
		if inifile.IsComment(line) {
			continue
		}
		key, value, ok := inifile.SplitKeyValue(line)
		if !ok || planned[key] {
			continue
		}
		planned[key] = true
		refValue, known := plan.refValues[key]
		if !known {
			continue
		}
		value = inifile.StripComment(value)
		if value == refValue {
			if textutil.IsAllUpper(value) {
				continue
			}
			plan.Untranslated = append(plan.Untranslated, key)
			continue
		}
		plan.Translated = append(plan.Translated, Pair{Key: key, Value: value})
	}
	return plan
}

// displayKeys renders untranslated keys with their aliases substituted and
// returns the display → key table used to map the reply back. Display strings
// are unique: keys shown as themselves claim their name first, an alias that
// is already taken falls back to the raw key, and a key with neither free is
// returned in skipped.
func (p *SectionPlan) displayKeys() (keys []string, back map[string]string, skipped []string) {
	back = make(map[string]string, len(p.Untranslated))
	display := make(map[string]string, len(p.Untranslated))
	for _, k := range p.Untranslated {
		if d := p.Aliases.Display(k); d == k {
			back[d] = k
			display[k] = d
		}
	}
	for _, k := range p.Untranslated {
		if _, done := display[k]; done {
			continue
		}
		for _, d := range []string{p.Aliases.Display(k), k} {
			if _, taken := back[d]; !taken {
				back[d] = k
				display[k] = d
				break
			}
		}
	}

	keys = make([]string, 0, len(p.Untranslated))
	for _, k := range p.Untranslated {
		d, ok := display[k]
		if !ok {
			skipped = append(skipped, k)
			continue
		}
		keys = append(keys, d)
	}
	return keys, back, skipped
}

func (p *SectionPlan) contextPairs() []Pair {
	out := make([]Pair, 0, len(p.Translated))
	for _, t := range p.Translated {
		out = append(out, Pair{Key: p.Aliases.Display(t.Key), Value: t.Value})
	}
	return out
}

type assignment struct {
	section string
	key     string
	value   string
}

// FinishLanguage translates the untranslated keys of target, either in one
// section or, with section == "", in every reference section. Assignments are
// applied only after every request succeeded: a client or parse error leaves
// target untouched.
func (r *Reconciler) FinishLanguage(ctx context.Context, target, ref *inifile.File, lang Language, section string) (Result, error) {
	scope := events.For(r.sink, target.Name)
	var res Result

	sections := ref.Sections
	if section != "" {
		rs := ref.Section(section)
		if rs == nil {
			scope.InSection(section).Warn("", "Section not in reference")
			return res, nil
		}
		sections = []*inifile.Section{rs}
	}

	var pending []assignment
	for _, rs := range sections {
		sc := scope.InSection(rs.Name)
		ts := target.Section(rs.Name)
		if ts == nil {
			sc.Warn("", "Section missing from target, run copy-missing first")
			continue
		}

		plan := PlanSection(rs, ts)
		if len(plan.Untranslated) == 0 {
			sc.Debug("", "Nothing to translate")
			continue
		}

		display, back, skipped := plan.displayKeys()
		for _, k := range skipped {
			sc.Warn(k, "Display text clashes with another key, left untranslated")
		}
		if len(display) == 0 {
			continue
		}
		prompt := r.prompts.BuildSectionPrompt(lang, rs.Name, display, plan.contextPairs())

		sc.Info("", fmt.Sprintf("Requesting %d translations into %s", len(display), lang))
		res.Requests++
		res.Requested += len(display)

		reply, err := r.client.Translate(ctx, r.prompts.GetSystemPrompt(), prompt)
		if err != nil {
			return Result{}, fmt.Errorf("translate section %s: %w", rs.Name, err)
		}

		values, err := ParseSectionReply(reply, rs.Name, back, plan.Aliases, sc)
		if err != nil {
			return Result{}, fmt.Errorf("parse reply for section %s: %w", rs.Name, err)
		}

		for _, d := range display {
			key := back[d]
			v, ok := values[key]
			if !ok {
				sc.Warn(key, "Missing from reply, left untranslated")
				continue
			}
			if missing, extra := interpolation.Diff(plan.refValues[key], v); len(missing) > 0 || len(extra) > 0 {
				sc.Warn(key, fmt.Sprintf("Placeholder mismatch: missing %v, extra %v", missing, extra))
			}
			sc.Debug(key, "Translated as "+textutil.Truncate(v, 40))
			pending = append(pending, assignment{section: rs.Name, key: key, value: v})
		}
	}

	editor := keyedit.New(r.sink)
	for _, a := range pending {
		if editor.SetValue(target, a.section, a.key, a.value, AnnotationComment) {
			res.Applied++
		}
	}
	if res.Applied > 0 {
		scope.Info("", fmt.Sprintf("Applied %d translations", res.Applied))
	}
	return res, nil
}

// ParseSectionReply reads a file-shaped reply and returns key → value for the
// requested section. Returned keys are mapped through back (the display keys
// of the request) and then through the alias inverse. Sections with another
// name and keys that were not requested are logged and dropped. A reply
// without any section is ErrMalformedReply.
func ParseSectionReply(reply, section string, back map[string]string, aliases *AliasMap, sc events.Scope) (map[string]string, error) {
	parsed := inifile.Parse("reply", stripCodeFence(reply))
	if len(parsed.Sections) == 0 {
		return nil, fmt.Errorf("%w: no section header in reply", ErrMalformedReply)
	}

	requested := make(map[string]bool, len(back))
	for _, k := range back {
		requested[k] = true
	}

	values := make(map[string]string)
	matched := false
	for _, s := range parsed.Sections {
		if s.Name != section {
			sc.Warn("", "Discarding reply section "+s.Name)
			continue
		}
		matched = true
		for _, line := range s.Lines {
			if inifile.IsComment(line) {
				continue
			}
			k, v, ok := inifile.SplitKeyValue(line)
			if !ok {
				continue
			}
			key, ok := back[k]
			if !ok {
				key = aliases.Canonical(k)
			}
			if !requested[key] {
				sc.Debug(k, "Ignoring key that was not requested")
				continue
			}
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			values[key] = v
		}
	}
	if !matched {
		sc.Warn("", "Requested section missing from reply")
	}
	return values, nil
}

// stripCodeFence drops ``` fence lines models like to wrap answers in.
func stripCodeFence(reply string) string {
	lines := strings.Split(reply, "\n")
	kept := lines[:0]
	for _, l := range lines {
		if strings.HasPrefix(strings.TrimSpace(l), "```") {
			continue
		}
		kept = append(kept, l)
	}
	return strings.Join(kept, "\n")
}
