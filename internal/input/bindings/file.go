package bindings

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultFilename is the bindings file loaded when none is named.
const DefaultFilename = "uikeys.txt"

// DefaultSaveFilename is the save target when none is named. A different
// extension keeps an accidental keysave from clobbering the user's file.
const DefaultSaveFilename = "uikeys.tmp"

// cleanLine strips "//" comments and surrounding whitespace.
func cleanLine(line string) string {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	return strings.TrimSpace(line)
}

// Tokenize splits a line into at most max leading whitespace-separated
// words; the remainder of the line, if any, is kept intact as one final
// element.
func Tokenize(line string, max int) []string {
	line = strings.TrimSpace(line)
	var words []string
	for i := 0; i < max && line != ""; i++ {
		j := strings.IndexFunc(line, func(r rune) bool { return r == ' ' || r == '\t' })
		if j < 0 {
			words = append(words, line)
			return words
		}
		words = append(words, line[:j])
		line = strings.TrimSpace(line[j:])
	}
	if line != "" {
		words = append(words, line)
	}
	return words
}

// Load replays a bindings file line by line. Malformed lines are logged and
// skipped; the registry keeps the state built from earlier lines. A file
// that includes itself, directly or through keyload directives, is rejected
// with ErrCyclicLoad. Hotkey rebuilds are suspended for the duration and run
// once at the end.
func (b *Bindings) Load(filename string) error {
	for _, loading := range b.loadStack {
		if loading == filename {
			b.log.Warn().
				Str("filename", filename).
				Strs("loadStack", b.loadStack).
				Msg("cyclic keys file inclusion")
			return fmt.Errorf("%w: %s", ErrCyclicLoad, filename)
		}
	}

	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("opening bindings file: %w", err)
	}
	defer f.Close()

	if b.debug {
		b.log.Debug().Str("filename", filename).Strs("loadStack", b.loadStack).Msg("load")
	}

	b.loadStack = append(b.loadStack, filename)
	defer func() {
		b.loadStack = b.loadStack[:len(b.loadStack)-1]
	}()

	resume := b.SuspendHotkeyRebuild()
	defer resume()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := cleanLine(scanner.Text())
		if line == "" {
			continue
		}
		b.ExecuteLine(line)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading bindings file: %w", err)
	}
	return nil
}

// Save writes the active bindings to a file in the persisted format.
func (b *Bindings) Save(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating bindings file: %w", err)
	}
	defer f.Close()

	if err := b.Write(f); err != nil {
		return err
	}
	return f.Close()
}

// Print writes the active bindings to standard output.
func (b *Bindings) Print() error {
	return b.Write(os.Stdout)
}

// Write emits the persisted bindings format: a header that clears the
// defaults, user key symbols, the fake meta key if set, then one bind line
// per active binding in insertion order. Replaying the output reproduces
// the registry.
func (b *Bindings) Write(w io.Writer) error {
	var err error
	pr := func(format string, args ...any) {
		if err == nil {
			_, err = fmt.Fprintf(w, format, args...)
		}
	}

	pr("\n")
	pr("unbindall          // clear the defaults\n")
	pr("unbind enter chat  // clear the defaults\n")
	pr("\n")

	wroteSyms := false
	for _, sym := range b.keyCodes.UserSymbols() {
		pr("keysym %-10s 0x%x\n", sym.Name, sym.Code)
		wroteSyms = true
	}
	for _, sym := range b.scanCodes.UserSymbols() {
		pr("keysym %-10s 0x%x\n", sym.Name, sym.Code)
		wroteSyms = true
	}
	if wroteSyms {
		pr("\n")
	}

	if b.fakeMetaKey >= 0 {
		pr("fakemeta  %s\n\n", b.keyCodes.Name(b.fakeMetaKey))
	}

	for _, binding := range b.List() {
		pr("bind %18s  %s\n", binding.BoundWith, binding.Action.Raw)
	}

	return err
}

// printNameTables logs the name-to-code tables, user symbols included.
func (b *Bindings) printNameTables() {
	for _, sym := range b.keyCodes.UserSymbols() {
		b.log.Info().Str("name", sym.Name).Int("code", sym.Code).Msg("user keysym")
	}
	for _, sym := range b.scanCodes.UserSymbols() {
		b.log.Info().Str("name", sym.Name).Int("code", sym.Code).Msg("user scansym")
	}
}

// printCodeTables logs the code-to-name view of the active bindings.
func (b *Bindings) printCodeTables() {
	for _, binding := range b.List() {
		trigger := binding.Chain.Trigger()
		table := b.keyCodes
		if !trigger.IsKeyCode() {
			table = b.scanCodes
		}
		b.log.Info().
			Int("code", trigger.Code).
			Str("name", table.Name(trigger.Code)).
			Str("action", binding.Action.Line).
			Msg("bound code")
	}
}
