package config

// Base application details
const AppName = "richdoc"
const ThemesDirName = "themes"
const DefaultConfigFileName = "config.toml"

// Defaults for the [document] and [theme] sections.
const DefaultFormat = "application/x-richdoc+toml"
const DefaultThemeName = "Paper"
const DefaultLogLevel = "info"
const SystemClipboard = false
const HighlightEnabled = false
