package config

import (
	"flag"
	"fmt"
	"strings"

	"github.com/bethropolis/richdoc/internal/logger"
)

// Flags holds values parsed from command-line flags.
// Use pointers to distinguish between unset flags and zero-value flags.
type Flags struct {
	ConfigFilePath *string
	Version        *bool
	LogLevel       *string
	LogFilePath    *string
	EnableTags     *string
	DisableTags    *string
	EnablePkgs     *string
	DisablePkgs    *string
	EnableFiles    *string
	DisableFiles   *string
	DebugLog       *bool

	ReadOnly        *bool
	DefaultFormat   *string
	ThemeName       *string
	ThemeDir        *string
	SystemClipboard *bool
	Highlight       *string

	fs *flag.FlagSet
}

// DefineFlags sets up the command-line flags on fs. Callers may add their
// own flags to fs before parsing.
func (f *Flags) DefineFlags(fs *flag.FlagSet) {
	f.fs = fs
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default <user config dir>/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.DebugLog = fs.Bool("debug-log", false, "Enable verbose debug logging for the logger filtering system")
	f.ReadOnly = fs.Bool("readonly", false, "Open documents read-only")
	f.DefaultFormat = fs.String("format", "", "Default format id or extension - Overrides config file")
	f.ThemeName = fs.String("theme", "", "Theme name - Overrides config file")
	f.ThemeDir = fs.String("theme-dir", "", "Directory of additional TOML themes - Overrides config file")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Use system clipboard instead of internal clipboard")
	f.Highlight = fs.String("highlight", "", "Syntax-highlight using this language ('auto' picks by file extension)")
}

// ParseFlags defines the flags on fs, parses args and returns the remaining
// non-flag arguments.
func (f *Flags) ParseFlags(fs *flag.FlagSet, args []string) ([]string, error) {
	f.DefineFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return fs.Args(), nil
}

// ApplyOverrides updates cfg with the values of flags that were set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		case "debug-log":
			cfg.Logger.DebugFilter = *f.DebugLog
		case "readonly":
			cfg.Document.Editable = !*f.ReadOnly
		case "format":
			if *f.DefaultFormat != "" {
				cfg.Document.DefaultFormat = *f.DefaultFormat
			}
		case "theme":
			if *f.ThemeName != "" {
				cfg.Theme.Name = *f.ThemeName
			}
		case "theme-dir":
			cfg.Theme.Dir = *f.ThemeDir
		case "system-clipboard":
			cfg.Clipboard.System = *f.SystemClipboard
		case "highlight":
			lang := strings.TrimSpace(*f.Highlight)
			cfg.Highlight.Enabled = lang != ""
			if lang == "auto" {
				lang = ""
			}
			cfg.Highlight.Language = lang
		}
	})
}

func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
