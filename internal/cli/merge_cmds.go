package cli

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"langsync/internal/filewalker"
	"langsync/internal/inifile"
	"langsync/internal/merge"
)

func mergeCmds(a *app) []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "copy-missing",
			Short: "Copy sections and keys missing from each target out of the reference",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTargets(func(e *merge.Engine, ref, f *inifile.File) bool {
					st := e.CopyMissing(f, ref)
					log.Debug().
						Str("file", f.Name).
						Int("sections", st.SectionsAdded).
						Int("lines", st.LinesAdded).
						Msg("Copy pass done")
					return st.SectionsAdded+st.LinesAdded > 0
				})
			},
		},
		{
			Use:   "comment-unknown",
			Short: "Comment out target keys the reference does not have",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTargets(func(e *merge.Engine, ref, f *inifile.File) bool {
					n := e.CommentOutUnknown(f, ref)
					log.Info().Str("file", f.Name).Int("lines", n).Msg("Commented out unknown lines")
					return n > 0
				})
			},
		},
		{
			Use:   "remove-unknown",
			Short: "Remove target keys the reference does not have",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.runTargets(func(e *merge.Engine, ref, f *inifile.File) bool {
					n := e.RemoveUnknown(f, ref)
					log.Info().Str("file", f.Name).Int("lines", n).Msg("Removed unknown lines")
					return n > 0
				})
			},
		},
		{
			Use:   "list-unknown",
			Short: "List target lines the reference does not have",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				out := cmd.OutOrStdout()
				return a.runTargets(func(_ *merge.Engine, ref, f *inifile.File) bool {
					printFindings(out, f.Name, merge.ListUnknown(f, ref), true)
					return false
				})
			},
		},
		{
			Use:   "new-keys",
			Short: "List reference keys each target is still missing",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				out := cmd.OutOrStdout()
				return a.runTargets(func(_ *merge.Engine, ref, f *inifile.File) bool {
					for _, name := range merge.ListMissingSections(f, ref) {
						fmt.Fprintf(out, "%s: missing section [%s]\n", f.Name, name)
					}
					printFindings(out, f.Name, merge.ListNewKeys(ref, f), false)
					return false
				})
			},
		},
	}
}

// runTargets loads a session and applies fn to each target against the
// reference.
func (a *app) runTargets(fn func(e *merge.Engine, ref, f *inifile.File) bool) error {
	s, err := a.load()
	if err != nil {
		return err
	}
	engine := merge.NewEngine(a.sink)
	a.eachTarget(s, func(_ filewalker.FileEntry, f *inifile.File) bool {
		return fn(engine, s.ref, f)
	})
	return nil
}

func printFindings(w io.Writer, file string, findings []merge.Finding, lines bool) {
	for _, fd := range findings {
		if lines {
			fmt.Fprintf(w, "%s: [%s] %s\n", file, fd.Section, fd.Line)
		} else {
			fmt.Fprintf(w, "%s: [%s] %s\n", file, fd.Section, fd.Key)
		}
	}
}
