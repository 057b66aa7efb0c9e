package device

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/MasterBel2/recoil/internal/input/key"
)

// maxChainLength bounds the live chains; no bound chain is longer in
// practice.
const maxChainLength = 16

// FakeMetaSource reports the key code standing in for the Meta modifier,
// or key.CodeNone when unset. The binding registry implements it.
type FakeMetaSource interface {
	FakeMetaKey() int
}

// Device tracks live input state for one terminal: held modifiers, the
// fake meta key, and the accumulated key-code and scan-code chains.
// It implements the resolver's ModifierSource.
type Device struct {
	mods     key.Modifier
	fakeMeta FakeMetaSource

	// pendingMeta marks a fake meta press awaiting its key. Terminals
	// deliver no key releases, so the fake meta key acts as a one-shot
	// prefix rather than a held modifier.
	pendingMeta bool

	code key.TimedChain
	scan key.TimedChain
}

// Option configures a Device.
type Option func(*Device)

// WithFakeMetaSource wires the fake meta key lookup.
func WithFakeMetaSource(src FakeMetaSource) Option {
	return func(d *Device) {
		d.fakeMeta = src
	}
}

// New creates a device with empty chains.
func New(opts ...Option) *Device {
	d := &Device{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Modifiers returns the modifiers of the most recent key event, with the
// fake meta key folded in.
func (d *Device) Modifiers() key.Modifier {
	return d.mods
}

// Chains returns the live key-code and scan-code chains.
func (d *Device) Chains() (code, scan key.TimedChain) {
	return d.code, d.scan
}

// Reset clears the live chains, typically after a resolved action fired
// or focus was lost.
func (d *Device) Reset() {
	d.code = nil
	d.scan = nil
}

// HandleKey folds one terminal key event into the live state and returns
// the chains to resolve against. A press of the fake meta key only
// updates the modifier state and returns nil chains.
func (d *Device) HandleKey(ev *tcell.EventKey, at time.Time) (code, scan key.TimedChain) {
	keyCode, scanCode, mods := translateKey(ev)

	if d.isFakeMeta(keyCode) {
		d.pendingMeta = true
		d.mods = mods | key.ModMeta
		return nil, nil
	}
	d.mods = mods
	if d.pendingMeta {
		d.mods |= key.ModMeta
		d.pendingMeta = false
	}

	if keyCode < 0 && scanCode < 0 {
		return nil, nil
	}

	if keyCode >= 0 {
		d.code.Push(key.NewSet(keyCode, d.mods, key.KeyCode), at)
		d.code = trim(d.code)
	}
	if scanCode >= 0 {
		d.scan.Push(key.NewSet(scanCode, d.mods, key.ScanCode), at)
		d.scan = trim(d.scan)
	}
	return d.code, d.scan
}

func (d *Device) isFakeMeta(keyCode int) bool {
	return d.fakeMeta != nil && keyCode >= 0 && keyCode == d.fakeMeta.FakeMetaKey()
}

func trim(tc key.TimedChain) key.TimedChain {
	if len(tc) <= maxChainLength {
		return tc
	}
	return tc[len(tc)-maxChainLength:]
}
