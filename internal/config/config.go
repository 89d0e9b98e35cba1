// Package config resolves the paths and scan settings used by the report
// commands.
//
// Settings are layered: built-in defaults, then i18n-report.toml at the
// project root, then a .env file at the project root, then I18N_REPORT_*
// environment variables. Later layers win.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/everafter-app/everafter/src/go/i18n-report/internal/scan"
)

const (
	// FileName is the optional config file at the project root.
	FileName = "i18n-report.toml"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "I18N_REPORT_"
	// LocaleExt is the extension of locale source files.
	LocaleExt = ".ts"
)

// Config holds the resolved settings. Paths are relative to Root unless
// absolute.
type Config struct {
	Root        string   `toml:"-"`
	SourceDir   string   `toml:"source_dir"`
	LocalesDir  string   `toml:"locales_dir"`
	Primary     string   `toml:"primary"`
	Secondary   string   `toml:"secondary"`
	TypesFile   string   `toml:"types_file"`
	TypesImport string   `toml:"types_import"`
	Extensions  []string `toml:"extensions"`
	Exclude     []string `toml:"exclude"`
	Sections    []string `toml:"sections"`
	LogLevel    string   `toml:"log_level"`
}

// Default returns the built-in settings for root.
func Default(root string) *Config {
	return &Config{
		Root:        root,
		SourceDir:   "src",
		LocalesDir:  "src/locales",
		Primary:     "en",
		Secondary:   "es",
		TypesFile:   "src/types/i18n.ts",
		TypesImport: "../types/i18n",
		Extensions:  append([]string(nil), scan.DefaultExtensions...),
		Sections:    append([]string(nil), scan.DefaultSections...),
		LogLevel:    "info",
	}
}

// Loader reads the config layers for a project root. LookupEnv reads the
// process environment and defaults to os.LookupEnv.
type Loader struct {
	Fs        afero.Fs
	LookupEnv func(string) (string, bool)
}

// Load resolves and validates the settings for root.
func (l *Loader) Load(root string) (*Config, error) {
	cfg := Default(root)

	data, err := afero.ReadFile(l.Fs, filepath.Join(root, FileName))
	switch {
	case err == nil:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", FileName, err)
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	dotenv, err := l.readDotenv(root)
	if err != nil {
		return nil, err
	}
	lookup := l.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	cfg.applyEnv(func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// readDotenv parses root/.env. The process environment takes precedence
// over it, as with godotenv.Load.
func (l *Loader) readDotenv(root string) (map[string]string, error) {
	f, err := l.Fs.Open(filepath.Join(root, ".env"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading .env: %w", err)
	}
	defer f.Close()
	env, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing .env: %w", err)
	}
	return env, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	str := map[string]*string{
		"SOURCE_DIR":   &c.SourceDir,
		"LOCALES_DIR":  &c.LocalesDir,
		"PRIMARY":      &c.Primary,
		"SECONDARY":    &c.Secondary,
		"TYPES_FILE":   &c.TypesFile,
		"TYPES_IMPORT": &c.TypesImport,
		"LOG_LEVEL":    &c.LogLevel,
	}
	for name, field := range str {
		if v, ok := lookup(EnvPrefix + name); ok {
			*field = strings.TrimSpace(v)
		}
	}
	list := map[string]*[]string{
		"EXTENSIONS": &c.Extensions,
		"EXCLUDE":    &c.Exclude,
		"SECTIONS":   &c.Sections,
	}
	for name, field := range list {
		if v, ok := lookup(EnvPrefix + name); ok {
			*field = splitList(v)
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	required := []struct{ name, value string }{
		{"source_dir", c.SourceDir},
		{"locales_dir", c.LocalesDir},
		{"primary", c.Primary},
		{"secondary", c.Secondary},
		{"types_file", c.TypesFile},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("config: %s must not be empty", r.name)
		}
	}
	if err := ValidateLocale(c.Primary); err != nil {
		return fmt.Errorf("config: primary: %w", err)
	}
	if err := ValidateLocale(c.Secondary); err != nil {
		return fmt.Errorf("config: secondary: %w", err)
	}
	if c.Primary == c.Secondary {
		return fmt.Errorf("config: primary and secondary are both %q", c.Primary)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("config: extensions must not be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("config: extension %q must start with a dot", ext)
		}
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: log_level: %w", err)
	}
	return nil
}

// Path resolves p against Root.
func (c *Config) Path(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// SourceRoot is the absolute directory scanned for references.
func (c *Config) SourceRoot() string {
	return c.Path(c.SourceDir)
}

// LocalePath is the locale source file for code.
func (c *Config) LocalePath(code string) string {
	return filepath.Join(c.Path(c.LocalesDir), code+LocaleExt)
}

// TypesPath is the absolute path of the generated type file.
func (c *Config) TypesPath() string {
	return c.Path(c.TypesFile)
}

// ScanOptions returns the scan settings with logger attached.
func (c *Config) ScanOptions(logger zerolog.Logger) scan.Options {
	return scan.Options{
		Extensions: c.Extensions,
		Exclude:    c.Exclude,
		Sections:   c.Sections,
		Logger:     logger,
	}
}

// localeCodePattern keeps helper modules such as index.ts out of the
// locale list.
var localeCodePattern = regexp.MustCompile(`^[a-z]{2,3}(?:[-_][A-Za-z0-9]{2,8})*$`)

// Locales lists the locale codes that have a source file in LocalesDir,
// sorted, primary first.
func (c *Config) Locales(fsys afero.Fs) ([]string, error) {
	dir := c.Path(c.LocalesDir)
	entries, err := afero.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var codes []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != LocaleExt || strings.HasSuffix(name, ".d.ts") {
			continue
		}
		code := strings.TrimSuffix(name, LocaleExt)
		if !localeCodePattern.MatchString(code) || ValidateLocale(code) != nil {
			continue
		}
		codes = append(codes, code)
	}
	sort.SliceStable(codes, func(i, j int) bool {
		if (codes[i] == c.Primary) != (codes[j] == c.Primary) {
			return codes[i] == c.Primary
		}
		return codes[i] < codes[j]
	})
	return codes, nil
}

// ValidateLocale checks that code is a well-formed BCP 47 tag.
func ValidateLocale(code string) error {
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("invalid locale code %q: %w", code, err)
	}
	return nil
}

// LanguageName returns the English name of a locale code, e.g. "Spanish"
// for "es", or the code itself when it has no display name.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}
