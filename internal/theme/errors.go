package theme

import "errors"

var (
	// ErrUnknownStyle is returned when a style name is not in the theme.
	ErrUnknownStyle = errors.New("unknown style")
	// ErrBadDeclaration is returned for a malformed style declaration.
	ErrBadDeclaration = errors.New("malformed style declaration")
	// ErrThemeNotFound is returned by Manager.SetTheme for an unknown theme.
	ErrThemeNotFound = errors.New("theme not found")
)
