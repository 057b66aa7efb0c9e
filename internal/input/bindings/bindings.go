package bindings

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/MasterBel2/recoil/internal/input/key"
)

// DefaultChainTimeout is the default inter-key timeout for chained
// shortcuts.
const DefaultChainTimeout = 750 * time.Millisecond

// ModifierSource reports the modifiers currently held on the input device.
// The device adapter implements it; a nil source means no modifiers.
type ModifierSource interface {
	Modifiers() key.Modifier
}

// CommandHook receives dispatch lines whose command word is not part of the
// binding grammar. It reports whether it handled the command.
type CommandHook func(command, extra string) bool

// Bindings is the owning registry for all key bindings. It is not safe for
// concurrent use; the owning subsystem serializes access on its update loop.
type Bindings struct {
	keyCodes  *key.Codes
	scanCodes *key.Codes

	codeBindings map[key.Set][]Binding
	scanBindings map[key.Set][]Binding
	bindingCount int

	hotkeys      map[string][]string
	buildHotkeys bool

	stateful     map[string]struct{}
	fakeMetaKey  int
	chainTimeout time.Duration
	debug        bool

	loadStack []string
	modSource ModifierSource
	hook      CommandHook
	log       zerolog.Logger
}

// Option configures a Bindings registry.
type Option func(*Bindings)

// WithLogger sets the logger used for warnings and debug traces.
func WithLogger(log zerolog.Logger) Option {
	return func(b *Bindings) {
		b.log = log
	}
}

// WithChainTimeout sets the inter-key timeout for chained shortcuts.
func WithChainTimeout(d time.Duration) Option {
	return func(b *Bindings) {
		b.setChainTimeout(d)
	}
}

// WithCommandHook installs a fallback handler for unrecognized commands.
func WithCommandHook(hook CommandHook) Option {
	return func(b *Bindings) {
		b.hook = hook
	}
}

// WithModifierSource installs the live modifier state provider.
func WithModifierSource(src ModifierSource) Option {
	return func(b *Bindings) {
		b.modSource = src
	}
}

// statefulCommands are "currently held" actions. They are forced onto
// wildcard-modifier keysets at bind time so that releasing a modifier never
// orphans an active action.
var statefulCommands = []string{
	"drawinmap",
	"moveforward",
	"moveback",
	"moveright",
	"moveleft",
	"moveup",
	"movedown",
	"moveslow",
	"movefast",
	"movetilt",
	"movereset",
	"moverotate",
}

// New creates an empty registry.
func New(opts ...Option) *Bindings {
	b := &Bindings{
		keyCodes:     key.NewKeyCodes(),
		scanCodes:    key.NewScanCodes(),
		codeBindings: make(map[key.Set][]Binding),
		scanBindings: make(map[key.Set][]Binding),
		hotkeys:      make(map[string][]string),
		buildHotkeys: true,
		stateful:     make(map[string]struct{}, len(statefulCommands)),
		fakeMetaKey:  key.CodeNone,
		chainTimeout: DefaultChainTimeout,
		log:          zerolog.Nop(),
	}
	for _, cmd := range statefulCommands {
		b.stateful[cmd] = struct{}{}
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// KeyCodes returns the key-code name table (built-ins plus user symbols).
func (b *Bindings) KeyCodes() *key.Codes {
	return b.keyCodes
}

// ScanCodes returns the scan-code name table.
func (b *Bindings) ScanCodes() *key.Codes {
	return b.scanCodes
}

// ChainTimeout returns the current inter-key timeout.
func (b *Bindings) ChainTimeout() time.Duration {
	return b.chainTimeout
}

// SetChainTimeout updates the inter-key timeout. Negative values clamp to
// zero. Safe to call from a config reload callback as long as the caller
// serializes it against lookups.
func (b *Bindings) SetChainTimeout(d time.Duration) {
	b.setChainTimeout(d)
}

func (b *Bindings) setChainTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	b.chainTimeout = d
}

// SetModifierSource installs the live modifier state provider. The device
// adapter needs the registry for its fake meta key, so the two are wired
// after construction.
func (b *Bindings) SetModifierSource(src ModifierSource) {
	b.modSource = src
}

// SetDebug toggles resolution tracing.
func (b *Bindings) SetDebug(enabled bool) {
	b.debug = enabled
}

// Debug reports whether resolution tracing is enabled.
func (b *Bindings) Debug() bool {
	return b.debug
}

// FakeMetaKey returns the key code standing in for the Meta modifier, or
// key.CodeNone when unset.
func (b *Bindings) FakeMetaKey() int {
	return b.fakeMetaKey
}

// SetFakeMeta assigns a key code to act as the Meta modifier. "none" clears
// it. Scan codes are rejected.
func (b *Bindings) SetFakeMeta(keystr string) bool {
	if strings.ToLower(strings.TrimSpace(keystr)) == "none" {
		b.fakeMetaKey = key.CodeNone
		return true
	}

	ks, err := key.ParseSet(keystr, b.keyCodes, b.scanCodes)
	if err != nil {
		b.log.Warn().Str("key", keystr).Err(err).Msg("fakemeta: could not parse key")
		return false
	}
	if !ks.IsKeyCode() {
		b.log.Warn().Str("key", keystr).Err(ErrNotKeyCode).Msg("fakemeta: can't assign to scancode")
		return false
	}

	b.fakeMetaKey = ks.Code
	return true
}

// AddKeySymbol defines a user key symbol in whichever table the code
// expression resolves to.
func (b *Bindings) AddKeySymbol(name, code string) bool {
	ks, err := key.ParseSet(code, b.keyCodes, b.scanCodes)
	if err != nil {
		b.log.Warn().Str("code", code).Err(err).Msg("keysym: could not parse key")
		return false
	}

	table := b.keyCodes
	if !ks.IsKeyCode() {
		table = b.scanCodes
	}
	if err := table.AddSymbol(name, ks.Code); err != nil {
		b.log.Warn().Str("keysym", name).Err(err).Msg("keysym: could not add")
		return false
	}
	return true
}

// storeFor returns the per-keyspace binding store.
func (b *Bindings) storeFor(space key.Keyspace) map[key.Set][]Binding {
	if space == key.KeyCode {
		return b.codeBindings
	}
	return b.scanBindings
}

// insert appends a binding to its trigger chord's list with a fresh global
// index, unless an entry with the identical action line already exists
// (idempotent re-bind).
func (b *Bindings) insert(binding Binding) {
	trigger := binding.Chain.Trigger()
	store := b.storeFor(trigger.Space)

	for _, existing := range store[trigger] {
		if existing.Action.Line == binding.Action.Line {
			return
		}
	}

	b.bindingCount++
	binding.Index = b.bindingCount
	store[trigger] = append(store[trigger], binding)
}

// Bind registers an action under a shortcut. It reports false, with state
// unchanged, when the shortcut does not parse or the action is empty.
func (b *Bindings) Bind(shortcut, line string) bool {
	if b.debug {
		b.log.Debug().
			Int("index", b.bindingCount+1).
			Str("shortcut", shortcut).
			Str("line", line).
			Msg("bind")
	}

	action := NewAction(line)
	if action.Command == "" {
		b.log.Warn().Str("line", line).Err(ErrEmptyAction).Msg("bind: empty action")
		return false
	}

	chain, err := key.ParseChain(shortcut, b.keyCodes, b.scanCodes)
	if err != nil {
		b.log.Warn().Str("shortcut", shortcut).Err(err).Msg("bind: could not parse key")
		return false
	}

	if _, ok := b.stateful[action.Command]; ok {
		chain[len(chain)-1] = chain.Trigger().WithAnyMod()
	}

	b.insert(Binding{Action: action, Chain: chain, BoundWith: shortcut})
	b.rebuildIfEnabled()
	return true
}

// Unbind removes an action from one exact keyset's list. It reports false
// when the shortcut does not parse, the keyset has no list, or the command
// was not bound there.
func (b *Bindings) Unbind(shortcut, command string) bool {
	ks, err := key.ParseSet(shortcut, b.keyCodes, b.scanCodes)
	if err != nil {
		b.log.Warn().Str("shortcut", shortcut).Err(err).Msg("unbind: could not parse key")
		return false
	}

	if b.debug {
		b.log.Debug().Str("shortcut", shortcut).Str("command", command).Msg("unbind")
	}

	store := b.storeFor(ks.Space)
	list, ok := store[ks]
	if !ok {
		return false
	}

	kept, removed := removeCommand(list, command)
	if len(kept) == 0 {
		delete(store, ks)
	} else {
		store[ks] = kept
	}

	if removed {
		b.rebuildIfEnabled()
	}
	return removed
}

// UnbindKeyset drops the entire list for one exact keyset.
func (b *Bindings) UnbindKeyset(shortcut string) bool {
	ks, err := key.ParseSet(shortcut, b.keyCodes, b.scanCodes)
	if err != nil {
		b.log.Warn().Str("shortcut", shortcut).Err(err).Msg("unbindkeyset: could not parse key")
		return false
	}

	if b.debug {
		b.log.Debug().Str("shortcut", shortcut).Msg("unbindkeyset")
	}

	store := b.storeFor(ks.Space)
	if _, ok := store[ks]; !ok {
		return false
	}

	delete(store, ks)
	b.rebuildIfEnabled()
	return true
}

// UnbindAction removes a command from both keyspaces entirely. It reports
// true when the command was bound in either.
func (b *Bindings) UnbindAction(command string) bool {
	if b.debug {
		b.log.Debug().Str("command", command).Msg("unbindaction")
	}

	removedCode := removeActionFromStore(b.codeBindings, command)
	removedScan := removeActionFromStore(b.scanBindings, command)

	removed := removedCode || removedScan
	if removed {
		b.rebuildIfEnabled()
	}
	return removed
}

// UnbindAll clears both stores, resets the index counter and the user key
// symbols, then re-establishes the baseline chat binding so the input
// system always has a working sequence-completion action.
func (b *Bindings) UnbindAll() {
	if b.debug {
		b.log.Debug().Msg("unbindall")
	}

	b.codeBindings = make(map[key.Set][]Binding)
	b.scanBindings = make(map[key.Set][]Binding)
	b.keyCodes.Reset()
	b.scanCodes.Reset()
	b.bindingCount = 0

	prev := b.buildHotkeys
	b.buildHotkeys = false
	b.Bind("enter", "chat") // bare minimum
	b.buildHotkeys = prev

	b.rebuildIfEnabled()
}

// SuspendHotkeyRebuild disables the automatic reverse-index rebuild and
// returns a function that restores the previous setting and rebuilds once.
// Used for bulk loads.
func (b *Bindings) SuspendHotkeyRebuild() func() {
	prev := b.buildHotkeys
	b.buildHotkeys = false
	return func() {
		b.buildHotkeys = prev
		b.rebuildIfEnabled()
	}
}

// removeCommand filters a binding list down to entries whose command
// differs, reporting whether anything was removed.
func removeCommand(list []Binding, command string) ([]Binding, bool) {
	kept := make([]Binding, 0, len(list))
	for _, binding := range list {
		if binding.Action.Command != command {
			kept = append(kept, binding)
		}
	}
	return kept, len(kept) != len(list)
}

// removeActionFromStore removes a command from every keyset list in one
// store, erasing lists that become empty.
func removeActionFromStore(store map[key.Set][]Binding, command string) bool {
	removed := false
	for ks, list := range store {
		kept, changed := removeCommand(list, command)
		if !changed {
			continue
		}
		removed = true
		if len(kept) == 0 {
			delete(store, ks)
		} else {
			store[ks] = kept
		}
	}
	return removed
}
