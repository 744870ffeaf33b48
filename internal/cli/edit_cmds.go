package cli

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"langsync/internal/filewalker"
	"langsync/internal/inifile"
	"langsync/internal/keyedit"
	"langsync/internal/translation"
)

// editCmd builds a command that applies one key edit to the reference and
// every target.
func editCmd(a *app, use, short string, nargs int, op func(ed *keyedit.Editor, f *inifile.File, args []string) bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(nargs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEdit(func(ed *keyedit.Editor, f *inifile.File) bool {
				return op(ed, f, args)
			})
		},
	}
}

func (a *app) runEdit(fn func(ed *keyedit.Editor, f *inifile.File) bool) error {
	s, err := a.load()
	if err != nil {
		return err
	}
	ed := keyedit.New(a.sink)
	a.everyFile(s, func(f *inifile.File) bool { return fn(ed, f) })
	return nil
}

func editCmds(a *app) []*cobra.Command {
	addKey := &cobra.Command{
		Use:   "add-key <section> <key> [value]",
		Short: "Add a key to every file, untranslated",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 3 {
				value = args[2]
			}
			return a.runEdit(func(ed *keyedit.Editor, f *inifile.File) bool {
				return ed.AddKey(f, args[0], args[1], value)
			})
		},
	}

	applyRegex := &cobra.Command{
		Use:   "apply-regex <section> <key> <pattern> <replacement>",
		Short: "Substitute a regular expression in the value of a key in every file",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := keyedit.CompileRegex(args[2])
			if err != nil {
				return err
			}
			return a.runEdit(func(ed *keyedit.Editor, f *inifile.File) bool {
				return ed.ApplyRegex(f, args[0], args[1], re, args[3]) > 0
			})
		},
	}

	aliases := &cobra.Command{
		Use:   "aliases <section>",
		Short: "Print the keys of a reference section whose text differs from the key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			sec := s.ref.Section(args[0])
			if sec == nil {
				log.Warn().Str("section", args[0]).Strs("sections", s.ref.SectionNames()).Msg("Section not in reference")
				return nil
			}
			out := cmd.OutOrStdout()
			for _, p := range translation.BuildAliasMap(sec).Pairs() {
				fmt.Fprintf(out, "%s = %s\n", p.Key, p.Value)
			}
			return nil
		},
	}

	getValue := &cobra.Command{
		Use:   "get-value <section> [key]",
		Short: "Print a key's value in every file, or every value of a section",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			show := func(name string, f *inifile.File) {
				sec := f.Section(args[0])
				if sec == nil {
					return
				}
				keys := sec.Keys()
				if len(args) == 2 {
					keys = []string{args[1]}
				}
				for _, k := range keys {
					if v, ok := keyedit.GetValue(f, args[0], k); ok {
						fmt.Fprintf(out, "%s: %s = %s\n", name, k, v)
					}
				}
			}
			show(filepath.Base(s.refPath), s.ref)
			a.eachTarget(s, func(entry filewalker.FileEntry, f *inifile.File) bool {
				show(filepath.Base(entry.Path), f)
				return false
			})
			return nil
		},
	}

	return []*cobra.Command{
		editCmd(a, "rename-key <section> <old> <new>", "Rename a key in every file", 3,
			func(ed *keyedit.Editor, f *inifile.File, args []string) bool {
				return ed.RenameKey(f, args[0], args[1], args[2])
			}),
		editCmd(a, "dupe-key <section> <old> <new>", "Duplicate a key under a new name in every file", 3,
			func(ed *keyedit.Editor, f *inifile.File, args []string) bool {
				return ed.DupeKey(f, args[0], args[1], args[2])
			}),
		editCmd(a, "move-key <from> <to> <key>", "Move a key to another section in every file", 3,
			func(ed *keyedit.Editor, f *inifile.File, args []string) bool {
				return ed.MoveKey(f, args[0], args[1], args[2])
			}),
		editCmd(a, "copy-key <from> <to> <key>", "Copy a key to another section in every file", 3,
			func(ed *keyedit.Editor, f *inifile.File, args []string) bool {
				return ed.CopyKey(f, args[0], args[1], args[2])
			}),
		editCmd(a, "remove-key <section> <key>", "Remove a key from every file", 2,
			func(ed *keyedit.Editor, f *inifile.File, args []string) bool {
				return ed.RemoveKey(f, args[0], args[1])
			}),
		editCmd(a, "sort-section <section>", "Sort a section by key in every file", 1,
			func(ed *keyedit.Editor, f *inifile.File, args []string) bool {
				return ed.SortSection(f, args[0])
			}),
		editCmd(a, "remove-linebreaks <section> <key>", `Replace \n tokens with spaces in a key's value in every file`, 2,
			func(ed *keyedit.Editor, f *inifile.File, args []string) bool {
				return ed.RemoveLinebreaks(f, args[0], args[1])
			}),
		addKey,
		applyRegex,
		aliases,
		getValue,
	}
}
