package key

import (
	"errors"
	"testing"
)

func testTables() (*Codes, *Codes) {
	return NewKeyCodes(), NewScanCodes()
}

func TestParseSet(t *testing.T) {
	keys, scans := testTables()

	tests := []struct {
		spec string
		want Set
	}{
		{"a", NewSet(int('a'), ModNone, KeyCode)},
		{"A", NewSet(int('a'), ModNone, KeyCode)},
		{"Shift+a", NewSet(int('a'), ModShift, KeyCode)},
		{"Any+h", NewSet(int('h'), ModAny, KeyCode)},
		{"Any+Ctrl+a", NewSet(int('a'), ModAny, KeyCode)},
		{"Alt+Ctrl+z", NewSet(int('z'), ModAlt|ModCtrl, KeyCode)},
		{"Control+c", NewSet(int('c'), ModCtrl, KeyCode)},
		{"enter", NewSet(CodeEnter, ModNone, KeyCode)},
		{"Return", NewSet(CodeEnter, ModNone, KeyCode)},
		{"Alt+numpad+", NewSet(CodeNumpadPlus, ModAlt, KeyCode)},
		{"Alt++", NewSet(int('+'), ModAlt, KeyCode)},
		{"Shift+,", NewSet(int(','), ModShift, KeyCode)},
		{"0x2c", NewSet(int(','), ModNone, KeyCode)},
		{"sc_q", NewSet(ScanA + 16, ModNone, ScanCode)},
		{"Any+sc_h", NewSet(ScanA + 7, ModAny, ScanCode)},
		{"Any+ctrl", NewSet(CodeCtrl, ModAny, KeyCode)},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseSet(tt.spec, keys, scans)
			if err != nil {
				t.Fatalf("ParseSet(%q) error: %v", tt.spec, err)
			}
			if got != tt.want {
				t.Errorf("ParseSet(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseSetIsPure(t *testing.T) {
	keys, scans := testTables()

	for _, spec := range []string{"a", "Any+Ctrl+x", "Alt+numpad+", "sc_f5"} {
		first, err := ParseSet(spec, keys, scans)
		if err != nil {
			t.Fatalf("ParseSet(%q) error: %v", spec, err)
		}
		second, err := ParseSet(spec, keys, scans)
		if err != nil {
			t.Fatalf("ParseSet(%q) second parse error: %v", spec, err)
		}
		if first != second {
			t.Errorf("ParseSet(%q) not stable: %+v vs %+v", spec, first, second)
		}
	}
}

func TestParseSetErrors(t *testing.T) {
	keys, scans := testTables()

	tests := []struct {
		spec    string
		wantErr error
	}{
		{"", ErrEmptySpec},
		{"nosuchkey", ErrUnknownKey},
		{"Ctrl+nosuchkey", ErrUnknownKey},
		{"Bogus+a", ErrUnknownModifier},
		{"Ctrl+Bogus+a", ErrUnknownModifier},
	}

	for _, tt := range tests {
		_, err := ParseSet(tt.spec, keys, scans)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseSet(%q) error = %v, want %v", tt.spec, err, tt.wantErr)
		}
	}
}

func TestParseChain(t *testing.T) {
	keys, scans := testTables()

	g := NewSet(int('g'), ModNone, KeyCode)
	comma := NewSet(int(','), ModNone, KeyCode)

	tests := []struct {
		spec string
		want Chain
	}{
		{"g", Chain{g}},
		{"g,g", Chain{g, g}},
		{
			"Any+`,Any+`",
			Chain{
				NewSet(int('`'), ModAny, KeyCode),
				NewSet(int('`'), ModAny, KeyCode),
			},
		},
		// A separator that cannot split is re-read as the literal comma key.
		{",", Chain{comma}},
		{"Shift+,", Chain{NewSet(int(','), ModShift, KeyCode)}},
		{",,,", Chain{comma, comma}},
		{"g,,", Chain{g, comma}},
		{
			"Alt+ctrl+a,Alt+ctrl+a",
			Chain{
				NewSet(int('a'), ModAlt|ModCtrl, KeyCode),
				NewSet(int('a'), ModAlt|ModCtrl, KeyCode),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseChain(tt.spec, keys, scans)
			if err != nil {
				t.Fatalf("ParseChain(%q) error: %v", tt.spec, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseChain(%q) = %+v, want %+v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseChainPrefersLongestSplit(t *testing.T) {
	keys, scans := testTables()

	// Both chords parse, so the comma stays a separator instead of
	// collapsing into a single-key interpretation.
	chain, err := ParseChain("a,b", keys, scans)
	if err != nil {
		t.Fatalf("ParseChain error: %v", err)
	}
	if len(chain) != 2 {
		t.Fatalf("len(chain) = %d, want 2", len(chain))
	}
}

func TestParseChainErrors(t *testing.T) {
	keys, scans := testTables()

	for _, spec := range []string{"", "nosuchkey", "g,nosuchkey"} {
		if _, err := ParseChain(spec, keys, scans); err == nil {
			t.Errorf("ParseChain(%q) succeeded, want error", spec)
		}
	}
}

func TestUserKeySymbols(t *testing.T) {
	keys := NewKeyCodes()

	if err := keys.AddSymbol("mybutton", 0x137); err != nil {
		t.Fatalf("AddSymbol error: %v", err)
	}

	code, ok := keys.Code("MyButton")
	if !ok || code != 0x137 {
		t.Fatalf("Code(mybutton) = %d, %v", code, ok)
	}

	if err := keys.AddSymbol("enter", 99); err == nil {
		t.Error("AddSymbol should refuse to shadow a built-in name")
	}
	if err := keys.AddSymbol("mybutton", 0x200); err == nil {
		t.Error("AddSymbol should refuse to redefine a symbol")
	}
	if err := keys.AddSymbol("mybutton", 0x137); err != nil {
		t.Errorf("identical redefinition should be accepted: %v", err)
	}

	keys.Reset()
	if _, ok := keys.Code("mybutton"); ok {
		t.Error("Reset should drop user symbols")
	}
}
