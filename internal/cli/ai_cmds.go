package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"langsync/internal/filewalker"
	"langsync/internal/inifile"
	"langsync/internal/keyedit"
	"langsync/internal/translation"
)

// errPromptCopied stops a run after the first prompt went to the clipboard.
var errPromptCopied = errors.New("prompt copied to clipboard")

// clipboardClient hands the prompt to the user instead of a service.
type clipboardClient struct {
	copyText func(string) error
}

func (cc clipboardClient) Translate(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := cc.copyText(systemPrompt + "\n\n" + userPrompt); err != nil {
		return "", fmt.Errorf("copy prompt: %w", err)
	}
	return "", errPromptCopied
}

func aiCmds(a *app) []*cobra.Command {
	var copyPrompt bool
	finish := &cobra.Command{
		Use:   "finish-language [section]",
		Short: "Fill untranslated strings of each target with machine translations",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			section := ""
			if len(args) == 1 {
				section = args[0]
			}
			return a.runFinish(section, copyPrompt)
		},
	}
	finish.Flags().BoolVar(&copyPrompt, "copy-prompt", false, "Copy the first prompt to the clipboard instead of calling the service")

	addKeyAI := &cobra.Command{
		Use:   "add-key-ai <section> <key> [value]",
		Short: "Add a key to every file, translated in one request",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := args[1]
			if len(args) == 3 {
				value = args[2]
			}
			return a.runAddKeyAI(args[0], args[1], value)
		},
	}

	return []*cobra.Command{finish, addKeyAI}
}

func (a *app) runFinish(section string, copyPrompt bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	s, err := a.load()
	if err != nil {
		return err
	}

	var client translation.Client
	if copyPrompt {
		client = clipboardClient{copyText: a.copyText}
	} else {
		client, err = a.client(ctx, s.cfg)
		if err != nil {
			return err
		}
		if client == nil {
			return nil
		}
	}

	rc := translation.NewReconciler(client, translation.NewPromptBuilder(s.cfg.ProtectedTerms), a.sink)
	stop := false
	a.eachTarget(s, func(entry filewalker.FileEntry, f *inifile.File) bool {
		if stop || ctx.Err() != nil {
			return false
		}
		lang := translation.LanguageFromPath(entry.Path)
		res, err := rc.FinishLanguage(ctx, f, s.ref, lang, section)
		if errors.Is(err, errPromptCopied) {
			log.Info().Str("language", lang.String()).Msg("Prompt copied to clipboard")
			stop = true
			return false
		}
		if err != nil {
			log.Error().Err(err).Str("language", lang.String()).Msg("Translation aborted, file left unchanged")
			return false
		}
		log.Info().
			Str("language", lang.String()).
			Int("requests", res.Requests).
			Int("requested", res.Requested).
			Int("applied", res.Applied).
			Msg("Language finished")
		return res.Applied > 0
	})
	return nil
}

// runAddKeyAI adds key to the reference, requests its translation into every
// target language at once and adds it to each target. Languages the reply
// leaves out get the untranslated reference value.
func (a *app) runAddKeyAI(section, key, value string) error {
	ctx, cancel := setupContext()
	defer cancel()

	s, err := a.load()
	if err != nil {
		return err
	}
	client, err := a.client(ctx, s.cfg)
	if err != nil || client == nil {
		return err
	}

	if s.ref.Section(section) == nil {
		log.Warn().Str("section", section).Msg("Section not in reference")
		return nil
	}

	langs := make([]translation.Language, 0, len(s.targets))
	for _, t := range s.targets {
		langs = append(langs, translation.LanguageFromCode(t.Code))
	}

	rc := translation.NewReconciler(client, translation.NewPromptBuilder(s.cfg.ProtectedTerms), a.sink)
	translated, err := rc.TranslateNewKey(ctx, translation.NewKeyRequest{
		Section:   section,
		Key:       key,
		Value:     value,
		Languages: langs,
	})
	if err != nil {
		return err
	}

	ed := keyedit.New(a.sink)
	if ed.AddKey(s.ref, section, key, value) {
		a.write(s.refPath, s.ref)
	}
	a.eachTarget(s, func(entry filewalker.FileEntry, f *inifile.File) bool {
		if !ed.AddKey(f, section, key, value) {
			return false
		}
		if tr, ok := translated[entry.Code]; ok {
			ed.SetValue(f, section, key, tr, translation.AnnotationComment)
		}
		return true
	})
	return nil
}
