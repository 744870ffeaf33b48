package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the project file looked up in the working directory.
const DefaultFile = "langsync.yaml"

// ErrNoReference means the reference file does not exist.
var ErrNoReference = errors.New("reference file not found")

// Default models per provider.
const (
	DefaultOpenAIModel = "gpt-4o-mini"
	DefaultGeminiModel = "gemini-2.5-flash"
)

type Config struct {
	LangDir        string
	Reference      string
	Provider       string
	Model          string
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	GeminiAPIKey   string
	ProtectedTerms []string
	Ignore         []string
}

// Overrides holds command-line values; empty fields are not applied.
type Overrides struct {
	LangDir   string
	Reference string
	Provider  string
	Model     string
}

type fileConfig struct {
	LangDir        string   `yaml:"lang_dir"`
	Reference      string   `yaml:"reference"`
	Provider       string   `yaml:"provider"`
	Model          string   `yaml:"model"`
	ProtectedTerms []string `yaml:"protected_terms"`
	Ignore         []string `yaml:"ignore"`
}

// Load resolves the configuration: environment, then the project file at
// path, then defaults. An empty path looks for DefaultFile and tolerates its
// absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	fc, err := readFile(path)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		LangDir:        getEnv("LANGSYNC_LANG_DIR", or(fc.LangDir, "assets/lang")),
		Reference:      getEnv("LANGSYNC_REFERENCE", or(fc.Reference, "en_US.ini")),
		Provider:       strings.ToLower(getEnv("LANGSYNC_PROVIDER", or(fc.Provider, "openai"))),
		Model:          getEnv("LANGSYNC_MODEL", fc.Model),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		ProtectedTerms: fc.ProtectedTerms,
		Ignore:         fc.Ignore,
	}
	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	var fc fileConfig
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return fc, nil
		}
		return fc, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config %s: %w", path, err)
	}
	log.Debug().Str("path", path).Msg("Loaded project config")
	return fc, nil
}

// Apply overlays non-empty command-line values.
func (c *Config) Apply(o Overrides) {
	if o.LangDir != "" {
		c.LangDir = o.LangDir
	}
	if o.Reference != "" {
		c.Reference = o.Reference
	}
	if o.Provider != "" {
		c.Provider = strings.ToLower(o.Provider)
	}
	if o.Model != "" {
		c.Model = o.Model
	}
}

// ModelName returns the configured model, or the provider's default.
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == "gemini" {
		return DefaultGeminiModel
	}
	return DefaultOpenAIModel
}

// APIKey returns the credential for the selected provider, possibly empty.
func (c *Config) APIKey() string {
	if c.Provider == "gemini" {
		return c.GeminiAPIKey
	}
	return c.OpenAIAPIKey
}

// ReferencePath returns the reference file path, or ErrNoReference if it
// does not exist.
func (c *Config) ReferencePath() (string, error) {
	p := filepath.Join(c.LangDir, c.Reference)
	if _, err := os.Stat(p); err != nil {
		return p, fmt.Errorf("%w: %s", ErrNoReference, p)
	}
	return p, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func or(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
