package bindings

import "errors"

// Errors returned by binding operations.
var (
	// ErrEmptyAction indicates a bind line with no command word.
	ErrEmptyAction = errors.New("empty action")

	// ErrUnknownCommand indicates a dispatch line whose command word is not
	// part of the binding grammar.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrBadCommand indicates a known command with missing arguments.
	ErrBadCommand = errors.New("malformed command")

	// ErrCyclicLoad indicates a bindings file that includes itself,
	// directly or through another file.
	ErrCyclicLoad = errors.New("cyclic keys file inclusion")

	// ErrNotKeyCode indicates a scan-code chord where only a key code is
	// accepted (the fake meta key).
	ErrNotKeyCode = errors.New("not a key code")
)
