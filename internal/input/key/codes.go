package key

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Keyspace identifies which identifier space a chord belongs to.
type Keyspace uint8

const (
	// KeyCode is the layout-dependent keyspace.
	KeyCode Keyspace = iota

	// ScanCode is the layout-independent keyspace.
	ScanCode
)

// String returns the keyspace name.
func (s Keyspace) String() string {
	switch s {
	case KeyCode:
		return "keycode"
	case ScanCode:
		return "scancode"
	default:
		return "unknown"
	}
}

// CodeNone marks an unset key identifier.
const CodeNone = -1

// Layout-dependent key codes. Printable keys use their ASCII value so that
// hex-coded references like "0x2c" line up with the character they produce.
const (
	CodeBackspace = 8
	CodeTab       = 9
	CodeEnter     = 13
	CodeEscape    = 27
	CodeSpace     = 32
	CodeDelete    = 127
)

// Non-printable keys sit above the ASCII range.
const (
	CodeUp = 256 + iota
	CodeDown
	CodeLeft
	CodeRight
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
	CodeInsert
	CodePause
	CodePrintScreen
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12
	CodeNumpad0
	CodeNumpad1
	CodeNumpad2
	CodeNumpad3
	CodeNumpad4
	CodeNumpad5
	CodeNumpad6
	CodeNumpad7
	CodeNumpad8
	CodeNumpad9
	CodeNumpadPlus
	CodeNumpadMinus
	CodeNumpadStar
	CodeNumpadSlash
	CodeNumpadDot
	CodeShift
	CodeCtrl
	CodeAlt
	CodeMeta
)

// Codes is a bidirectional name table for one keyspace. User-defined symbols
// added with AddSymbol live alongside the built-in names until Reset.
type Codes struct {
	space      Keyspace
	nameToCode map[string]int
	codeToName map[int]string
	userSyms   map[string]int
}

type namedCode struct {
	name string
	code int
}

// newCodes registers names in order; the first name for a code becomes its
// display name, later ones are lookup aliases.
func newCodes(space Keyspace, names []namedCode) *Codes {
	c := &Codes{
		space:      space,
		nameToCode: make(map[string]int, len(names)),
		codeToName: make(map[int]string, len(names)),
		userSyms:   make(map[string]int),
	}
	for _, n := range names {
		c.nameToCode[n.name] = n.code
		if _, ok := c.codeToName[n.code]; !ok {
			c.codeToName[n.code] = n.name
		}
	}
	return c
}

// NewKeyCodes returns the built-in key-code name table.
func NewKeyCodes() *Codes {
	names := []namedCode{
		{"backspace", CodeBackspace},
		{"tab", CodeTab},
		{"enter", CodeEnter},
		{"return", CodeEnter},
		{"esc", CodeEscape},
		{"escape", CodeEscape},
		{"space", CodeSpace},
		{"delete", CodeDelete},
		{"up", CodeUp},
		{"down", CodeDown},
		{"left", CodeLeft},
		{"right", CodeRight},
		{"home", CodeHome},
		{"end", CodeEnd},
		{"pageup", CodePageUp},
		{"pagedown", CodePageDown},
		{"insert", CodeInsert},
		{"pause", CodePause},
		{"printscreen", CodePrintScreen},
		{"numpad+", CodeNumpadPlus},
		{"numpad-", CodeNumpadMinus},
		{"numpad*", CodeNumpadStar},
		{"numpad/", CodeNumpadSlash},
		{"numpad.", CodeNumpadDot},
		{"shift", CodeShift},
		{"ctrl", CodeCtrl},
		{"alt", CodeAlt},
		{"meta", CodeMeta},
	}
	for i := 0; i < 12; i++ {
		names = append(names, namedCode{"f" + strconv.Itoa(i+1), CodeF1 + i})
	}
	for i := 0; i < 10; i++ {
		names = append(names, namedCode{"numpad" + strconv.Itoa(i), CodeNumpad0 + i})
	}
	// Printable ASCII binds by its character. Letters are stored lowercase.
	for r := rune(33); r < 127; r++ {
		if unicode.IsUpper(r) {
			continue
		}
		names = append(names, namedCode{string(r), int(r)})
	}
	return newCodes(KeyCode, names)
}

// Scan codes follow USB HID usage IDs, named with an "sc_" prefix.
const (
	ScanA     = 4
	Scan1     = 30
	Scan0     = 39
	ScanEnter = 40
	ScanEsc   = 41
	ScanBack  = 42
	ScanTab   = 43
	ScanSpace = 44
	ScanGrave = 53
	ScanComma = 54
	ScanF1    = 58
)

// NewScanCodes returns the built-in scan-code name table.
func NewScanCodes() *Codes {
	names := []namedCode{
		{"sc_enter", ScanEnter},
		{"sc_esc", ScanEsc},
		{"sc_backspace", ScanBack},
		{"sc_tab", ScanTab},
		{"sc_space", ScanSpace},
		{"sc_-", 45},
		{"sc_=", 46},
		{"sc_[", 47},
		{"sc_]", 48},
		{"sc_\\", 49},
		{"sc_;", 51},
		{"sc_'", 52},
		{"sc_`", ScanGrave},
		{"sc_,", ScanComma},
		{"sc_.", 55},
		{"sc_/", 56},
	}
	for i := 0; i < 26; i++ {
		names = append(names, namedCode{"sc_" + string(rune('a'+i)), ScanA + i})
	}
	for i := 0; i < 9; i++ {
		names = append(names, namedCode{"sc_" + strconv.Itoa(i+1), Scan1 + i})
	}
	names = append(names, namedCode{"sc_0", Scan0})
	for i := 0; i < 12; i++ {
		names = append(names, namedCode{"sc_f" + strconv.Itoa(i+1), ScanF1 + i})
	}
	return newCodes(ScanCode, names)
}

// Space returns the keyspace this table names.
func (c *Codes) Space() Keyspace {
	return c.space
}

// Code resolves a key name (case-insensitive) or a hex literal like "0x2c".
func (c *Codes) Code(name string) (int, bool) {
	name = strings.ToLower(name)
	if code, ok := c.nameToCode[name]; ok {
		return code, true
	}
	if code, ok := c.userSyms[name]; ok {
		return code, true
	}
	if strings.HasPrefix(name, "0x") {
		code, err := strconv.ParseInt(name[2:], 16, 32)
		if err == nil && code >= 0 {
			return int(code), true
		}
	}
	return CodeNone, false
}

// Name returns the display name for a code, falling back to a hex literal
// for codes without one.
func (c *Codes) Name(code int) string {
	if name, ok := c.codeToName[code]; ok {
		return name
	}
	for name, sym := range c.userSyms {
		if sym == code {
			return name
		}
	}
	return fmt.Sprintf("0x%x", code)
}

// AddSymbol registers a user-defined key symbol. It fails if the name is
// empty, collides with a built-in name, or is already defined differently.
func (c *Codes) AddSymbol(name string, code int) error {
	name = strings.ToLower(name)
	if name == "" || code < 0 {
		return fmt.Errorf("%w: %q", ErrBadKeySymbol, name)
	}
	if _, ok := c.nameToCode[name]; ok {
		return fmt.Errorf("%w: %q shadows a built-in key", ErrBadKeySymbol, name)
	}
	if existing, ok := c.userSyms[name]; ok && existing != code {
		return fmt.Errorf("%w: %q already defined", ErrBadKeySymbol, name)
	}
	c.userSyms[name] = code
	return nil
}

// UserSymbols returns the user-defined symbols sorted by name.
func (c *Codes) UserSymbols() []UserSymbol {
	syms := make([]UserSymbol, 0, len(c.userSyms))
	for name, code := range c.userSyms {
		syms = append(syms, UserSymbol{Name: name, Code: code})
	}
	sort.Slice(syms, func(i, j int) bool { return syms[i].Name < syms[j].Name })
	return syms
}

// UserSymbol is a user-defined key name.
type UserSymbol struct {
	Name string
	Code int
}

// Reset drops all user-defined symbols.
func (c *Codes) Reset() {
	c.userSyms = make(map[string]int)
}
