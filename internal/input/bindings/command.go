package bindings

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Command is a parsed dispatch line. Free text is parsed into the variant
// once, at the boundary; Execute switches on the concrete type.
type Command interface {
	isCommand()
}

// BindCommand binds an action line under a shortcut.
type BindCommand struct {
	Shortcut string
	Line     string
}

// UnbindCommand removes one command from one exact keyset.
type UnbindCommand struct {
	Shortcut string
	Command  string
}

// UnbindActionCommand removes a command from both keyspaces.
type UnbindActionCommand struct {
	Command string
}

// UnbindKeysetCommand drops an exact keyset's whole list.
type UnbindKeysetCommand struct {
	Shortcut string
}

// UnbindAllCommand clears both stores and restores the baseline binding.
type UnbindAllCommand struct{}

// FakeMetaCommand assigns (or clears, with "none") the fake meta key.
type FakeMetaCommand struct {
	Key string
}

// KeySymCommand defines a user key symbol.
type KeySymCommand struct {
	Name string
	Code string
}

// KeyDebugCommand toggles or sets resolution tracing.
type KeyDebugCommand struct {
	Set   bool
	Value bool
}

// LoadCommand replays a bindings file on top of the current state.
type LoadCommand struct {
	Filename string
	Defaults bool // load the default table first when no filename was given
}

// ReloadCommand clears the current state and replays a bindings file.
type ReloadCommand struct {
	Filename string
	Defaults bool
}

// DefaultsCommand loads the default binding table.
type DefaultsCommand struct{}

// SaveCommand writes the active bindings to a file.
type SaveCommand struct {
	Filename string
}

// PrintCommand writes the active bindings to standard output.
type PrintCommand struct{}

// PrintSymsCommand prints the name-to-code key tables.
type PrintSymsCommand struct{}

// PrintCodesCommand prints the code-to-name key tables.
type PrintCodesCommand struct{}

func (BindCommand) isCommand()         {}
func (UnbindCommand) isCommand()       {}
func (UnbindActionCommand) isCommand() {}
func (UnbindKeysetCommand) isCommand() {}
func (UnbindAllCommand) isCommand()    {}
func (FakeMetaCommand) isCommand()     {}
func (KeySymCommand) isCommand()       {}
func (KeyDebugCommand) isCommand()     {}
func (LoadCommand) isCommand()         {}
func (ReloadCommand) isCommand()       {}
func (DefaultsCommand) isCommand()     {}
func (SaveCommand) isCommand()         {}
func (PrintCommand) isCommand()        {}
func (PrintSymsCommand) isCommand()    {}
func (PrintCodesCommand) isCommand()   {}

// ParseCommand parses one dispatch line into a Command. Unknown command
// words return ErrUnknownCommand; known words with missing arguments return
// ErrBadCommand.
func ParseCommand(line string) (Command, error) {
	words := Tokenize(line, 2)
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrBadCommand)
	}

	cmd := strings.ToLower(words[0])
	arg := func(i int) string {
		if i < len(words) {
			return words[i]
		}
		return ""
	}

	switch cmd {
	case "bind":
		if len(words) < 3 {
			return nil, fmt.Errorf("%w: bind needs a shortcut and an action", ErrBadCommand)
		}
		return BindCommand{Shortcut: words[1], Line: words[2]}, nil

	case "unbind":
		if len(words) < 3 {
			return nil, fmt.Errorf("%w: unbind needs a shortcut and a command", ErrBadCommand)
		}
		return UnbindCommand{Shortcut: words[1], Command: words[2]}, nil

	case "unbindaction":
		if len(words) < 2 {
			return nil, fmt.Errorf("%w: unbindaction needs a command", ErrBadCommand)
		}
		return UnbindActionCommand{Command: words[1]}, nil

	case "unbindkeyset":
		if len(words) < 2 {
			return nil, fmt.Errorf("%w: unbindkeyset needs a shortcut", ErrBadCommand)
		}
		return UnbindKeysetCommand{Shortcut: words[1]}, nil

	case "unbindall":
		return UnbindAllCommand{}, nil

	case "fakemeta":
		if len(words) < 2 {
			return nil, fmt.Errorf("%w: fakemeta needs a key name or none", ErrBadCommand)
		}
		return FakeMetaCommand{Key: words[1]}, nil

	case "keysym":
		if len(words) < 3 {
			return nil, fmt.Errorf("%w: keysym needs a name and a code", ErrBadCommand)
		}
		return KeySymCommand{Name: words[1], Code: words[2]}, nil

	case "keydebug":
		if len(words) == 1 {
			return KeyDebugCommand{}, nil // toggle
		}
		v, err := strconv.Atoi(words[1])
		if err != nil {
			return nil, fmt.Errorf("%w: keydebug takes 0 or 1", ErrBadCommand)
		}
		return KeyDebugCommand{Set: true, Value: v != 0}, nil

	case "keyload":
		filename := arg(1)
		defaults := filename == ""
		if filename == "" {
			filename = DefaultFilename
		}
		return LoadCommand{Filename: filename, Defaults: defaults}, nil

	case "keyreload":
		filename := arg(1)
		defaults := filename == ""
		if filename == "" {
			filename = DefaultFilename
		}
		return ReloadCommand{Filename: filename, Defaults: defaults}, nil

	case "keydefaults":
		return DefaultsCommand{}, nil

	case "keysave":
		filename := arg(1)
		if filename == "" {
			filename = DefaultSaveFilename
		}
		return SaveCommand{Filename: filename}, nil

	case "keyprint":
		return PrintCommand{}, nil

	case "keysyms":
		return PrintSymsCommand{}, nil

	case "keycodes":
		return PrintCodesCommand{}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
}

// Execute runs one parsed command against the registry, reporting success.
func (b *Bindings) Execute(cmd Command) bool {
	switch c := cmd.(type) {
	case BindCommand:
		return b.Bind(c.Shortcut, c.Line)

	case UnbindCommand:
		return b.Unbind(c.Shortcut, c.Command)

	case UnbindActionCommand:
		return b.UnbindAction(c.Command)

	case UnbindKeysetCommand:
		return b.UnbindKeyset(c.Shortcut)

	case UnbindAllCommand:
		b.UnbindAll()
		return true

	case FakeMetaCommand:
		return b.SetFakeMeta(c.Key)

	case KeySymCommand:
		return b.AddKeySymbol(c.Name, c.Code)

	case KeyDebugCommand:
		if c.Set {
			b.debug = c.Value
		} else {
			b.debug = !b.debug
		}
		return true

	case LoadCommand:
		if len(b.loadStack) == 0 && c.Defaults {
			b.LoadDefaults()
		}
		return b.Load(c.Filename) == nil

	case ReloadCommand:
		b.UnbindAll()
		b.Unbind("enter", "chat")
		if len(b.loadStack) == 0 && c.Defaults {
			b.LoadDefaults()
		}
		return b.Load(c.Filename) == nil

	case DefaultsCommand:
		b.LoadDefaults()
		return true

	case SaveCommand:
		if err := b.Save(c.Filename); err != nil {
			b.log.Warn().Str("filename", c.Filename).Err(err).Msg("could not save bindings")
			return false
		}
		b.log.Info().Str("filename", c.Filename).Msg("saved active keybindings")
		return true

	case PrintCommand:
		return b.Print() == nil

	case PrintSymsCommand:
		b.printNameTables()
		return true

	case PrintCodesCommand:
		b.printCodeTables()
		return true
	}

	return false
}

// ExecuteLine parses and executes one dispatch line. Lines whose command
// word is not part of the grammar fall through to the command hook, if one
// is installed.
func (b *Bindings) ExecuteLine(line string) bool {
	cmd, err := ParseCommand(line)
	if err == nil {
		return b.Execute(cmd)
	}

	if errors.Is(err, ErrUnknownCommand) && b.hook != nil {
		action := NewAction(line)
		if action.Command != "" && b.hook(action.Command, action.Extra) {
			return true
		}
	}

	b.log.Warn().Str("line", line).Err(err).Msg("could not execute line")
	return false
}
