// Package config loads ff settings from ff-config files, FF_ environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/kk-code-lab/ff/internal/search"
)

const (
	FileName  = "ff-config"
	AppDir    = "ff"
	EnvPrefix = "FF"
)

// Keys as they appear in the config file.
const (
	KeyIgnoreDirectories  = "ignore_directories"
	KeyIgnoreFilePatterns = "ignore_file_patterns"
	KeyMaxParallelThreads = "max_parallel_threads"
	KeyMaxFileSizeMB      = "max_file_size_mb"
	KeyIncludeHidden      = "include_hidden"
	KeyFollowSymlinks     = "follow_symlinks"
	KeyLimit              = "limit"
	KeyMatchMode          = "default_search_options.match_mode"
	KeyCaseSensitive      = "default_search_options.case_sensitive"
	KeyShowDetails        = "output_options.show_details"
	KeyColor              = "output_options.color"
)

// Color modes for output_options.color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// SupportedFormats lists the file formats accepted by Write.
var SupportedFormats = []string{"json", "yaml", "toml"}

var ErrUnsupportedFormat = errors.New("unsupported config format")

type SearchOptions struct {
	MatchMode     string `mapstructure:"match_mode"     json:"match_mode"     yaml:"match_mode"     toml:"match_mode"`
	CaseSensitive bool   `mapstructure:"case_sensitive" json:"case_sensitive" yaml:"case_sensitive" toml:"case_sensitive"`
}

type OutputOptions struct {
	ShowDetails bool   `mapstructure:"show_details" json:"show_details" yaml:"show_details" toml:"show_details"`
	Color       string `mapstructure:"color"        json:"color"        yaml:"color"        toml:"color"`
}

// Settings is the decoded configuration.
type Settings struct {
	IgnoreDirectories    []string      `mapstructure:"ignore_directories"     json:"ignore_directories"     yaml:"ignore_directories"     toml:"ignore_directories"`
	IgnoreFilePatterns   []string      `mapstructure:"ignore_file_patterns"   json:"ignore_file_patterns"   yaml:"ignore_file_patterns"   toml:"ignore_file_patterns"`
	MaxParallelThreads   int           `mapstructure:"max_parallel_threads"   json:"max_parallel_threads"   yaml:"max_parallel_threads"   toml:"max_parallel_threads"`
	MaxFileSizeMB        int64         `mapstructure:"max_file_size_mb"       json:"max_file_size_mb"       yaml:"max_file_size_mb"       toml:"max_file_size_mb"`
	IncludeHidden        bool          `mapstructure:"include_hidden"         json:"include_hidden"         yaml:"include_hidden"         toml:"include_hidden"`
	FollowSymlinks       bool          `mapstructure:"follow_symlinks"        json:"follow_symlinks"        yaml:"follow_symlinks"        toml:"follow_symlinks"`
	Limit                int           `mapstructure:"limit"                  json:"limit"                  yaml:"limit"                  toml:"limit"`
	DefaultSearchOptions SearchOptions `mapstructure:"default_search_options" json:"default_search_options" yaml:"default_search_options" toml:"default_search_options"`
	OutputOptions        OutputOptions `mapstructure:"output_options"         json:"output_options"         yaml:"output_options"         toml:"output_options"`
}

// SetDefaults registers the built-in values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyIgnoreDirectories, []string{
		"node_modules", "target", "build", ".git", "AppData",
		"Windows", "System32", "Cache", "Temp", ".cache",
	})
	v.SetDefault(KeyIgnoreFilePatterns, []string{
		"*.tmp", "*.log", "*.bak", "*.swp", "thumbs.db", ".DS_Store",
	})
	v.SetDefault(KeyMaxParallelThreads, 0)
	v.SetDefault(KeyMaxFileSizeMB, 0)
	v.SetDefault(KeyIncludeHidden, false)
	v.SetDefault(KeyFollowSymlinks, true)
	v.SetDefault(KeyLimit, search.DefaultLimit)
	v.SetDefault(KeyMatchMode, search.ModeFuzzy.String())
	v.SetDefault(KeyCaseSensitive, false)
	v.SetDefault(KeyShowDetails, false)
	v.SetDefault(KeyColor, ColorAuto)
}

// New returns a viper instance with defaults, search paths and environment
// binding configured. explicit, when set, is the only file consulted.
func New(explicit string) *viper.Viper {
	v := viper.New()
	SetDefaults(v)

	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(FileName)
		v.AddConfigPath(".")
		if dir, err := UserDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// UserDir returns the per-user configuration directory for ff.
func UserDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppDir), nil
}

// DefaultPath is where "ff config init" writes when no path is given.
func DefaultPath(format string) (string, error) {
	dir, err := UserDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName+"."+format), nil
}

// Read loads the config file if one exists. A missing file is not an error;
// the returned path is empty in that case.
func Read(v *viper.Viper) (string, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("read config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// Decode unmarshals the effective settings held by v.
func Decode(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Load is Read followed by Decode.
func Load(v *viper.Viper) (Settings, string, error) {
	used, err := Read(v)
	if err != nil {
		return Settings{}, "", err
	}
	s, err := Decode(v)
	if err != nil {
		return Settings{}, used, err
	}
	return s, used, nil
}

// Validate checks values that cannot be expressed through types.
func (s Settings) Validate() error {
	if _, err := search.ParseMatchMode(s.DefaultSearchOptions.MatchMode); err != nil {
		return err
	}
	switch strings.ToLower(s.OutputOptions.Color) {
	case "", ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("config: invalid %s %q (want auto, always or never)", KeyColor, s.OutputOptions.Color)
	}
	if s.MaxParallelThreads < 0 {
		return fmt.Errorf("config: %s must not be negative", KeyMaxParallelThreads)
	}
	if s.MaxFileSizeMB < 0 {
		return fmt.Errorf("config: %s must not be negative", KeyMaxFileSizeMB)
	}
	return nil
}

// SearchConfig converts the settings into a search configuration rooted at
// root. Flag-only fields such as the entry filter are left to the caller.
func (s Settings) SearchConfig(root string) search.Config {
	cfg := search.DefaultConfig(root)
	cfg.Hidden = s.IncludeHidden
	cfg.FollowSymlinks = s.FollowSymlinks
	if s.Limit > 0 {
		cfg.Limit = s.Limit
	}
	cfg.Threads = s.MaxParallelThreads
	cfg.MaxFileSize = s.MaxFileSizeMB * 1024 * 1024
	cfg.Ignore = search.IgnoreRules{
		Dirs:  append([]string(nil), s.IgnoreDirectories...),
		Files: append([]string(nil), s.IgnoreFilePatterns...),
	}
	return cfg
}

// Query builds a search query from text and the configured defaults.
func (s Settings) Query(text string) (search.Query, error) {
	mode, err := search.ParseMatchMode(s.DefaultSearchOptions.MatchMode)
	if err != nil {
		return search.Query{}, err
	}
	return search.Query{
		Text:          text,
		Mode:          mode,
		CaseSensitive: s.DefaultSearchOptions.CaseSensitive,
	}, nil
}

// EffectiveThreads resolves the worker count: an explicit flag wins, then the
// config file, then --max-cpu (twice the CPU count), then automatic sizing.
func EffectiveThreads(flagThreads int, flagSet bool, configured int, maxCPU bool) int {
	switch {
	case flagSet:
		return flagThreads
	case configured > 0:
		return configured
	case maxCPU:
		return runtime.NumCPU() * 2
	default:
		return 0
	}
}

// Write stores the default configuration at path in the given format. An
// existing file is only replaced when force is set.
func Write(path, format string, force bool) error {
	format = strings.ToLower(strings.TrimSpace(format))
	if !slices.Contains(SupportedFormats, format) {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetConfigType(format)
	if force {
		if err := v.WriteConfigAs(path); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		return nil
	}
	if err := v.SafeWriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Encode writes s to w in one of SupportedFormats.
func Encode(w io.Writer, s Settings, format string) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(s)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
