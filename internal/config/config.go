package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/richdoc/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger    logger.Config   `toml:"logger"`
	Document  DocumentConfig  `toml:"document"`
	Theme     ThemeConfig     `toml:"theme"`
	Clipboard ClipboardConfig `toml:"clipboard"`
	Highlight HighlightConfig `toml:"highlight"`
}

// DocumentConfig holds settings for newly created documents.
type DocumentConfig struct {
	Editable bool `toml:"editable"`
	// DefaultFormat is the format id or extension used when none is given.
	DefaultFormat string `toml:"default_format"`
}

// ThemeConfig selects the active theme and where extra themes are loaded from.
type ThemeConfig struct {
	Name string `toml:"name"`
	Dir  string `toml:"dir"`
}

type ClipboardConfig struct {
	System bool `toml:"system"`
}

// HighlightConfig controls syntax highlighting. An empty Language picks the
// grammar from the input file's extension.
type HighlightConfig struct {
	Enabled  bool   `toml:"enabled"`
	Language string `toml:"language"`
}

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel: DefaultLogLevel,
		},
		Document: DocumentConfig{
			Editable:      true,
			DefaultFormat: DefaultFormat,
		},
		Theme: ThemeConfig{
			Name: DefaultThemeName,
		},
		Clipboard: ClipboardConfig{System: SystemClipboard},
		Highlight: HighlightConfig{Enabled: HighlightEnabled},
	}
}

// DefaultPath returns the config file location under the user config dir,
// or "" when that cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath over cfg. A missing file is not an error.
// Keys the file leaves out keep their current values.
func loadFromFile(cfg *Config, filePath string) ([]string, error) {
	md, err := toml.DecodeFile(filePath, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	var notes []string
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		notes = append(notes, fmt.Sprintf("config file '%s': unrecognized keys: %v", filePath, undecoded))
	}
	return notes, nil
}

// validate resets invalid values to defaults and describes each reset.
func (c *Config) validate() []string {
	defaults := NewDefaultConfig()
	var notes []string

	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		notes = append(notes, fmt.Sprintf("invalid log level '%s', using '%s'", c.Logger.LogLevel, defaults.Logger.LogLevel))
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if c.Document.DefaultFormat == "" {
		c.Document.DefaultFormat = defaults.Document.DefaultFormat
	}
	if c.Theme.Name == "" {
		c.Theme.Name = defaults.Theme.Name
	}
	return notes
}

// Load builds a configuration from defaults, the TOML file at path (the
// default location when path is empty) and any flags that were set. The
// returned notes describe ignored or corrected values; they are meant to be
// logged once the logger is up.
func Load(path string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		path = DefaultPath()
	}

	var notes []string
	if path != "" {
		fileNotes, err := loadFromFile(cfg, path)
		if err != nil {
			return nil, nil, err
		}
		notes = append(notes, fileNotes...)
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	notes = append(notes, cfg.validate()...)
	return cfg, notes, nil
}

// LoadConfig loads the process-wide configuration once. Later calls return
// the first result.
func LoadConfig(path string, flags *Flags) (*Config, []string, error) {
	var notes []string
	loadOnce.Do(func() {
		loadedConfig, notes, loadErr = Load(path, flags)
	})
	return loadedConfig, notes, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
