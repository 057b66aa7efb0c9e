package key

import (
	"fmt"
	"strings"
)

// hexComma is the hex-coded literal for the "," key, substituted for
// separator characters during chain backtracking.
const hexComma = "0x2c"

// ParseSet parses a textual chord like "Any+Ctrl+a", "Shift+,", "sc_q" or
// "0x2c". Leading "+"-joined segments that name modifiers are consumed as
// modifiers; the remainder is the key name, looked up first in the key-code
// table and then in the scan-code table.
func ParseSet(spec string, keys, scans *Codes) (Set, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Set{}, ErrEmptySpec
	}

	mods := ModNone
	rest := spec
	for {
		i := strings.IndexByte(rest, '+')
		if i <= 0 || i == len(rest)-1 {
			break
		}
		mod := ModifierFromName(rest[:i])
		if mod == ModNone {
			break
		}
		mods = mods.With(mod)
		rest = rest[i+1:]
	}

	if rest == "" {
		return Set{}, fmt.Errorf("%w: %q", ErrUnknownKey, spec)
	}

	if code, ok := keys.Code(rest); ok {
		return NewSet(code, mods, KeyCode), nil
	}
	if code, ok := scans.Code(rest); ok {
		return NewSet(code, mods, ScanCode), nil
	}
	// An interior "+" at this point means a segment that is neither a
	// modifier nor, with its tail, a key name.
	if i := strings.IndexByte(rest, '+'); i > 0 && i < len(rest)-1 {
		return Set{}, fmt.Errorf("%w: %q", ErrUnknownModifier, rest[:i])
	}
	return Set{}, fmt.Errorf("%w: %q", ErrUnknownKey, rest)
}

// ParseChain parses a ","-separated chord sequence. Since "," is itself a
// bindable key, a failed split is retried by reinterpreting separator
// occurrences, right to left, as hex-coded literal key references; the
// longest split that parses wins. Backtracking is an explicit worklist, not
// recursion.
func ParseChain(spec string, keys, scans *Codes) (Chain, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, ErrEmptySpec
	}

	type state struct {
		str string
		pos int // highest separator index still eligible for substitution
	}

	stack := []state{{str: spec, pos: len(spec) - 1}}
	for len(stack) > 0 {
		st := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if chain, err := parseSplitChain(st.str, keys, scans); err == nil {
			return chain, nil
		}

		cpos := strings.LastIndexByte(st.str[:st.pos+1], ',')
		if cpos < 0 {
			continue
		}

		// Substituting at cpos is the fallback branch; exploring earlier
		// separators with cpos intact is tried first (LIFO order).
		replaced := st.str[:cpos] + hexComma + st.str[cpos+1:]
		stack = append(stack, state{str: replaced, pos: cpos})
		if cpos > 0 {
			stack = append(stack, state{str: st.str, pos: cpos - 1})
		}
	}

	return nil, fmt.Errorf("%w: %q", ErrBadChain, spec)
}

// parseSplitChain parses a chain treating every "," as a separator.
func parseSplitChain(s string, keys, scans *Codes) (Chain, error) {
	parts := strings.Split(s, ",")
	chain := make(Chain, 0, len(parts))
	for _, part := range parts {
		set, err := ParseSet(part, keys, scans)
		if err != nil {
			return nil, err
		}
		chain = append(chain, set)
	}
	return chain, nil
}
