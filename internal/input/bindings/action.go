package bindings

import (
	"strings"

	"github.com/MasterBel2/recoil/internal/input/key"
)

// Action is a parsed command line: the lowercased command word, any trailing
// argument text, and the line itself in raw and normalized forms.
type Action struct {
	// Raw is the line as the user typed it, preserved for saving.
	Raw string

	// Line is the normalized form ("command extra") used as the duplicate
	// identity of a binding.
	Line string

	// Command is the lowercased first word.
	Command string

	// Extra is the trailing argument text, if any.
	Extra string
}

// NewAction parses a raw action line. An all-whitespace line yields an
// Action with an empty Command.
func NewAction(raw string) Action {
	a := Action{Raw: strings.TrimSpace(raw)}

	words := Tokenize(a.Raw, 1)
	if len(words) == 0 {
		return a
	}

	a.Command = strings.ToLower(words[0])
	if len(words) > 1 {
		a.Extra = words[1]
	}

	a.Line = a.Command
	if a.Extra != "" {
		a.Line += " " + a.Extra
	}
	return a
}

// HotkeyKey is the grouping key used by the hotkey reverse index.
func (a Action) HotkeyKey() string {
	return a.Line
}

// Binding associates an action with the key chain it is bound under.
type Binding struct {
	// Action is the bound command.
	Action Action

	// Chain is the chord sequence; its trigger chord keys the store.
	Chain key.Chain

	// BoundWith is the shortcut text as it was typed, used for display and
	// for saving.
	BoundWith string

	// Index is the global insertion index. It is monotonic, never reused,
	// and defines insertion precedence during resolution tie-breaks.
	Index int
}

// anyTrigger reports whether the binding's trigger chord is a wildcard.
func (b Binding) anyTrigger() bool {
	return b.Chain.Trigger().AnyMod()
}
