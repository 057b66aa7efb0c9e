package key

import (
	"strings"
	"time"
)

// Set is a single chord: a key identifier, a modifier bitmask, and the
// keyspace the identifier belongs to. The zero value is not a valid chord;
// use NewSet or ParseSet.
type Set struct {
	Code  int
	Mods  Modifier
	Space Keyspace
}

// NewSet creates a chord. A set carrying the wildcard bit is canonicalized
// to plain Any so that equal wildcards compare equal as map keys.
func NewSet(code int, mods Modifier, space Keyspace) Set {
	if mods.HasAny() {
		mods = ModAny
	}
	return Set{Code: code, Mods: mods, Space: space}
}

// Valid reports whether the set names a real key.
func (s Set) Valid() bool {
	return s.Code >= 0
}

// AnyMod reports whether the wildcard bit is set.
func (s Set) AnyMod() bool {
	return s.Mods.HasAny()
}

// WithAnyMod returns the wildcard-modifier variant of this chord.
func (s Set) WithAnyMod() Set {
	return Set{Code: s.Code, Mods: ModAny, Space: s.Space}
}

// IsKeyCode reports whether the chord lives in the layout-dependent space.
func (s Set) IsKeyCode() bool {
	return s.Space == KeyCode
}

// Matches reports whether a live chord satisfies this bound chord: same
// keyspace and key, and either this chord is a wildcard or the concrete
// modifier bits are identical.
func (s Set) Matches(live Set) bool {
	if s.Space != live.Space || s.Code != live.Code {
		return false
	}
	if s.AnyMod() {
		return true
	}
	return s.Mods.Concrete() == live.Mods.Concrete()
}

// DisplayString renders the chord using the given name table, e.g.
// "Any+Ctrl+a". The table must belong to the chord's keyspace.
func (s Set) DisplayString(names *Codes) string {
	if mods := s.Mods.String(); mods != "" {
		return mods + "+" + names.Name(s.Code)
	}
	return names.Name(s.Code)
}

// Chain is an ordered non-empty chord sequence; the last entry is the
// trigger chord, the rest are the chain prefix.
type Chain []Set

// Trigger returns the final chord of the chain.
func (c Chain) Trigger() Set {
	return c[len(c)-1]
}

// Equal reports whether two chains contain the same chords.
func (c Chain) Equal(other Chain) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// DisplayString renders the chain with "," separators.
func (c Chain) DisplayString(names *Codes) string {
	parts := make([]string, len(c))
	for i, s := range c {
		parts[i] = s.DisplayString(names)
	}
	return strings.Join(parts, ",")
}

// Chord is a live chord with the time it was pressed.
type Chord struct {
	Set
	Time time.Time
}

// TimedChain is a live input chain, oldest chord first.
type TimedChain []Chord

// Push appends a live chord.
func (tc *TimedChain) Push(s Set, at time.Time) {
	*tc = append(*tc, Chord{Set: s, Time: at})
}

// Trigger returns the most recent chord's set.
func (tc TimedChain) Trigger() Set {
	return tc[len(tc)-1].Set
}

// Sets returns the chain without timestamps.
func (tc TimedChain) Sets() Chain {
	out := make(Chain, len(tc))
	for i, c := range tc {
		out[i] = c.Set
	}
	return out
}

// Fit reports whether the live chain satisfies a bound chain: the live chain
// must end with chords matching each bound entry in order, and every gap
// between consecutive matched chords must be within timeout. The trigger
// chord has no deadline after it. Fit is a pure function of the recorded
// timestamps.
func (tc TimedChain) Fit(bound Chain, timeout time.Duration) bool {
	if len(bound) == 0 || len(bound) > len(tc) {
		return false
	}

	offset := len(tc) - len(bound)
	for i, want := range bound {
		live := tc[offset+i]
		if !want.Matches(live.Set) {
			return false
		}
		if i > 0 && live.Time.Sub(tc[offset+i-1].Time) > timeout {
			return false
		}
	}
	return true
}
