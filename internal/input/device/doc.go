// Package device adapts terminal key events to the binding engine's
// chord model. It translates tcell key events into key-code and
// scan-code chords, tracks held modifiers (including the fake meta
// key), and accumulates the live chains that resolution consumes.
package device
