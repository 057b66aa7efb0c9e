package key

import "errors"

// Errors returned by shortcut parsing and key tables.
var (
	// ErrEmptySpec indicates an empty shortcut description.
	ErrEmptySpec = errors.New("empty key specification")

	// ErrUnknownKey indicates an unrecognized key name.
	ErrUnknownKey = errors.New("unknown key")

	// ErrUnknownModifier indicates an unrecognized modifier name.
	ErrUnknownModifier = errors.New("unknown modifier")

	// ErrBadChain indicates a chain description with no valid chord split.
	ErrBadChain = errors.New("unparseable key chain")

	// ErrBadKeySymbol indicates an invalid user key symbol definition.
	ErrBadKeySymbol = errors.New("invalid key symbol")
)
