package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/atotto/clipboard"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"langsync/internal/config"
	"langsync/internal/events"
	"langsync/internal/filewalker"
	"langsync/internal/inifile"
	"langsync/internal/translation"
)

// Version is set at build time.
var Version = "dev"

// options holds the global flags.
type options struct {
	dryRun     bool
	verbose    bool
	model      string
	provider   string
	langDir    string
	reference  string
	configPath string
	only       string
}

// app wires the commands to their collaborators. Tests replace newClient and
// copyText.
type app struct {
	opts      options
	sink      events.Sink
	newClient func(ctx context.Context, opts translation.ClientOptions) (translation.Client, error)
	copyText  func(text string) error
}

func newApp() *app {
	return &app{
		sink:      events.NewLogSink(log.Logger),
		newClient: translation.NewClient,
		copyText:  clipboard.WriteAll,
	}
}

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd(newApp()).Execute(); err != nil {
		log.Error().Err(err).Msg("Run failed")
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "langsync",
		Short:         "Keep translation files in sync with a reference language",
		Long:          "Synchronizes key/value translation files against a reference file: copies missing keys, cleans up unknown ones, edits keys across every language and fills untranslated strings with machine translations.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if a.opts.verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVar(&a.opts.dryRun, "dry-run", false, "Run everything but do not write any file")
	pf.BoolVarP(&a.opts.verbose, "verbose", "v", false, "Enable debug logging")
	pf.StringVar(&a.opts.model, "model", "", "Completion model identifier")
	pf.StringVar(&a.opts.provider, "provider", "", "Completion provider: openai or gemini")
	pf.StringVar(&a.opts.langDir, "lang-dir", "", "Directory holding the translation files")
	pf.StringVar(&a.opts.reference, "reference", "", "Reference file name inside the language directory")
	pf.StringVar(&a.opts.configPath, "config", "", "Project config file (default langsync.yaml if present)")
	pf.StringVar(&a.opts.only, "only", "", "Process only the target with this language code, e.g. de_DE")

	rootCmd.AddCommand(mergeCmds(a)...)
	rootCmd.AddCommand(editCmds(a)...)
	rootCmd.AddCommand(aiCmds(a)...)
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "langsync", Version)
		},
	}
}

// session is the state shared by one run: configuration, the parsed
// reference and the target list.
type session struct {
	cfg     *config.Config
	refPath string
	ref     *inifile.File
	targets []filewalker.FileEntry
}

// load resolves config, parses the reference once and enumerates targets.
// An unreadable reference is fatal.
func (a *app) load() (*session, error) {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return nil, err
	}
	cfg.Apply(config.Overrides{
		LangDir:   a.opts.langDir,
		Reference: a.opts.reference,
		Provider:  a.opts.provider,
		Model:     a.opts.model,
	})

	refPath, err := cfg.ReferencePath()
	if err != nil {
		return nil, err
	}
	ref, err := inifile.ReadFile(refPath)
	if err != nil {
		return nil, err
	}
	if ref.Truncated {
		log.Warn().Str("file", refPath).Msg("Unbalanced section header, reference read partially")
	}

	targets, err := filewalker.NewWalker(cfg.Reference, cfg.Ignore).Walk(cfg.LangDir, a.opts.only)
	if err != nil {
		return nil, fmt.Errorf("list targets: %w", err)
	}
	if a.opts.only != "" && len(targets) == 0 {
		log.Warn().Str("only", a.opts.only).Msg("No target matches")
	}

	log.Debug().
		Str("reference", refPath).
		Int("targets", len(targets)).
		Bool("dry_run", a.opts.dryRun).
		Msg("Session ready")

	return &session{cfg: cfg, refPath: refPath, ref: ref, targets: targets}, nil
}

// fileFunc transforms one file and reports whether it changed.
type fileFunc func(f *inifile.File) bool

// eachTarget processes every target fully, parse to write, before the next.
// Unreadable targets are logged and skipped.
func (a *app) eachTarget(s *session, fn func(entry filewalker.FileEntry, f *inifile.File) bool) {
	for _, entry := range s.targets {
		f, err := inifile.ReadFile(entry.Path)
		if err != nil {
			log.Error().Err(err).Str("file", entry.Path).Msg("Skipping target")
			continue
		}
		if f.Truncated {
			log.Warn().Str("file", entry.Path).Msg("Unbalanced section header, file read partially")
		}
		if fn(entry, f) {
			a.write(entry.Path, f)
		}
	}
}

// everyFile runs fn on the reference, then on each target.
func (a *app) everyFile(s *session, fn fileFunc) {
	if fn(s.ref) {
		a.write(s.refPath, s.ref)
	}
	a.eachTarget(s, func(_ filewalker.FileEntry, f *inifile.File) bool {
		return fn(f)
	})
}

func (a *app) write(path string, f *inifile.File) {
	if a.opts.dryRun {
		log.Info().Str("file", path).Msg("Dry run, not writing")
		return
	}
	if err := f.WriteFile(path); err != nil {
		log.Error().Err(err).Str("file", path).Msg("Write failed")
		return
	}
	log.Info().Str("file", path).Msg("File written")
}

// client builds the completion client. With no credential it returns nil
// and logs a skip.
func (a *app) client(ctx context.Context, cfg *config.Config) (translation.Client, error) {
	c, err := a.newClient(ctx, translation.ClientOptions{
		Provider: cfg.Provider,
		APIKey:   cfg.APIKey(),
		Model:    cfg.ModelName(),
		BaseURL:  cfg.OpenAIBaseURL,
	})
	if errors.Is(err, translation.ErrNoClient) {
		log.Warn().Str("provider", cfg.Provider).Msg("No API key configured, skipping machine translation")
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create completion client: %w", err)
	}
	return c, nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
			log.Warn().Msg("Received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigCh)
	}()

	return ctx, cancel
}
