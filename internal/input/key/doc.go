// Package key models keyboard chords and chord sequences for the binding
// engine.
//
// A chord is a single simultaneous key press: a key identifier, a modifier
// bitmask, and the keyspace the identifier belongs to. Key codes are
// layout-dependent (pressing "a" on AZERTY reports a different code than on
// QWERTY); scan codes are layout-independent positions. A chord belongs to
// exactly one keyspace.
//
// # Key Concepts
//
// Set: an immutable chord value, usable as a map key.
//
// Chain: an ordered sequence of Sets forming one shortcut. The last entry is
// the trigger chord; the ones before it are the chain prefix the user must
// have pressed earlier.
//
// TimedChain: a live input chain with per-chord timestamps, matched against
// bound Chains with an inter-key timeout.
//
// Codes: a name table for one keyspace, extensible at runtime with
// user-defined key symbols.
//
// # Shortcut Syntax
//
// A chord is written as "+"-joined modifier names followed by a key name:
//
//	"a"            - plain key
//	"Shift+a"      - exact modifier match
//	"Any+h"        - wildcard: matches h under any modifiers
//	"Alt+numpad+"  - trailing "+" is the numpad plus key
//	"sc_q"         - scan-code keyspace
//	"0x2c"         - raw key code in hex
//
// Chords in a chain are separated by ",". Because "," is itself a bindable
// key, chain parsing backtracks over ambiguous separator positions; see
// ParseChain.
package key
