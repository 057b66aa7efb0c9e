package device

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/MasterBel2/recoil/internal/input/key"
)

// scanForRune maps the character a key produces on a US layout to its USB
// HID usage ID. Layout-independent in spirit only; it is the best a
// terminal can do without raw scan codes.
var scanForRune = map[rune]int{
	'-':  45,
	'=':  46,
	'[':  47,
	']':  48,
	'\\': 49,
	';':  51,
	'\'': 52,
	'`':  53,
	',':  key.ScanComma,
	'.':  55,
	'/':  56,
	' ':  key.ScanSpace,
}

func init() {
	for i := 0; i < 26; i++ {
		scanForRune['a'+rune(i)] = key.ScanA + i
	}
	for i := 0; i < 9; i++ {
		scanForRune['1'+rune(i)] = key.Scan1 + i
	}
	scanForRune['0'] = key.Scan0
}

// scanForKey maps named tcell keys to USB HID usage IDs.
var scanForKey = map[tcell.Key]int{
	tcell.KeyEnter:      key.ScanEnter,
	tcell.KeyEscape:     key.ScanEsc,
	tcell.KeyBackspace:  key.ScanBack,
	tcell.KeyBackspace2: key.ScanBack,
	tcell.KeyTab:        key.ScanTab,
}

// codeForKey maps named tcell keys to layout-dependent key codes.
var codeForKey = map[tcell.Key]int{
	tcell.KeyEnter:      key.CodeEnter,
	tcell.KeyEscape:     key.CodeEscape,
	tcell.KeyBackspace:  key.CodeBackspace,
	tcell.KeyBackspace2: key.CodeBackspace,
	tcell.KeyTab:        key.CodeTab,
	tcell.KeyDelete:     key.CodeDelete,
	tcell.KeyUp:         key.CodeUp,
	tcell.KeyDown:       key.CodeDown,
	tcell.KeyLeft:       key.CodeLeft,
	tcell.KeyRight:      key.CodeRight,
	tcell.KeyHome:       key.CodeHome,
	tcell.KeyEnd:        key.CodeEnd,
	tcell.KeyPgUp:       key.CodePageUp,
	tcell.KeyPgDn:       key.CodePageDown,
	tcell.KeyInsert:     key.CodeInsert,
}

func init() {
	for i := 0; i < 12; i++ {
		codeForKey[tcell.KeyF1+tcell.Key(i)] = key.CodeF1 + i
		scanForKey[tcell.KeyF1+tcell.Key(i)] = key.ScanF1 + i
	}
}

// translateMods converts tcell modifier flags.
func translateMods(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModMeta
	}
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	return mods
}

// translateKey converts one tcell key event into a key code, a scan code,
// and the modifiers it implies. Either code may be key.CodeNone when the
// event has no representation in that keyspace.
func translateKey(ev *tcell.EventKey) (keyCode, scanCode int, mods key.Modifier) {
	mods = translateMods(ev.Modifiers())
	k := ev.Key()

	if code, ok := codeForKey[k]; ok {
		scanCode = key.CodeNone
		if sc, ok := scanForKey[k]; ok {
			scanCode = sc
		}
		return code, scanCode, mods
	}

	if k == tcell.KeyRune {
		r := ev.Rune()
		if unicode.IsUpper(r) {
			r = unicode.ToLower(r)
			mods |= key.ModShift
		}
		keyCode = key.CodeNone
		if r < 128 {
			keyCode = int(r)
		}
		scanCode = key.CodeNone
		if sc, ok := scanForRune[r]; ok {
			scanCode = sc
		}
		return keyCode, scanCode, mods
	}

	// Terminals fold Ctrl+letter into control characters.
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		r := 'a' + rune(k-tcell.KeyCtrlA)
		mods |= key.ModCtrl
		scanCode = key.CodeNone
		if sc, ok := scanForRune[r]; ok {
			scanCode = sc
		}
		return int(r), scanCode, mods
	}

	return key.CodeNone, key.CodeNone, mods
}
