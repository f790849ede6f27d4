package style

import "errors"

var (
	// ErrTypeMismatch is returned when a value does not fit a key's declared kind.
	ErrTypeMismatch = errors.New("style: value type does not match attribute kind")
	// ErrFrozen is returned when mutating a set that was interned by a Cache.
	ErrFrozen = errors.New("style: attribute set is shared and cannot be modified")
	// ErrUnknownKey is returned for attribute names that are not registered.
	ErrUnknownKey = errors.New("style: unknown attribute")
)
