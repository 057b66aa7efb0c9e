package bindings

import (
	"sort"
	"time"

	"github.com/MasterBel2/recoil/internal/input/key"
)

// listFor fetches the candidate list keyed by a trigger chord, optionally
// under its wildcard-modifier variant.
func (b *Bindings) listFor(ks key.Set, forceAny bool) []Binding {
	if !ks.Valid() {
		return nil
	}
	if forceAny {
		ks = ks.WithAnyMod()
	}
	return b.storeFor(ks.Space)[ks]
}

// filterFit keeps the candidates whose full chain is satisfied by the live
// chain.
func (b *Bindings) filterFit(list []Binding, live key.TimedChain) []Binding {
	var out []Binding
	for _, binding := range list {
		if live.Fit(binding.Chain, b.chainTimeout) {
			out = append(out, binding)
		}
	}
	return out
}

// bindingLess is the trigger-order comparator: exact-modifier trigger chords
// sort before wildcard ones; within equal wildcard status, the lower global
// index sorts first.
func bindingLess(a, b Binding) bool {
	aAny := a.anyTrigger()
	bAny := b.anyTrigger()
	if aAny != bAny {
		return bAny
	}
	return a.Index < b.Index
}

// mergeByTrigger appends the merged result of the two per-keyspace lists to
// out. Both inputs are duplicate-free and index-ordered. A binding on one
// side is a duplicate of one on the other side iff they carry the identical
// action line; exactly one of each such pair survives, the one with the
// lower global index.
func mergeByTrigger(out, a, b []Binding) []Binding {
	if len(a) == 0 {
		return append(out, b...)
	}
	if len(b) == 0 {
		return append(out, a...)
	}

	loses := func(binding Binding, other []Binding) bool {
		for _, o := range other {
			if o.Action.Line == binding.Action.Line && o.Index < binding.Index {
				return true
			}
		}
		return false
	}

	keptA := make([]Binding, 0, len(a))
	for _, binding := range a {
		if !loses(binding, b) {
			keptA = append(keptA, binding)
		}
	}
	keptB := make([]Binding, 0, len(b))
	for _, binding := range b {
		if !loses(binding, a) {
			keptB = append(keptB, binding)
		}
	}

	i, j := 0, 0
	for i < len(keptA) && j < len(keptB) {
		if bindingLess(keptA[i], keptB[j]) {
			out = append(out, keptA[i])
			i++
		} else {
			out = append(out, keptB[j])
			j++
		}
	}
	out = append(out, keptA[i:]...)
	return append(out, keptB[j:]...)
}

// Resolve produces the ordered candidate list for a pair of live chains,
// one per keyspace: exact-modifier matches merged across keyspaces first,
// wildcard matches after, duplicates suppressed by lower global index.
func (b *Bindings) Resolve(code, scan key.TimedChain) []Binding {
	var merged []Binding
	if len(code) == 0 && len(scan) == 0 {
		return merged
	}

	var kList, sList []Binding
	if len(code) > 0 && !code.Trigger().AnyMod() {
		kList = b.filterFit(b.listFor(code.Trigger(), false), code)
	}
	if len(scan) > 0 && !scan.Trigger().AnyMod() {
		sList = b.filterFit(b.listFor(scan.Trigger(), false), scan)
	}
	merged = mergeByTrigger(merged, kList, sList)

	kList, sList = nil, nil
	if len(code) > 0 {
		kList = b.filterFit(b.listFor(code.Trigger(), true), code)
	}
	if len(scan) > 0 {
		sList = b.filterFit(b.listFor(scan.Trigger(), true), scan)
	}
	merged = mergeByTrigger(merged, kList, sList)

	if b.debug {
		b.debugResolve(code, scan, merged)
	}
	return merged
}

// ResolveKey resolves a simple (non-chained) key press given raw key and
// scan codes and the held modifiers.
func (b *Bindings) ResolveKey(keyCode, scanCode int, mods key.Modifier) []Binding {
	var code, scan key.TimedChain
	now := time.Now()
	if keyCode >= 0 {
		code.Push(key.NewSet(keyCode, mods, key.KeyCode), now)
	}
	if scanCode >= 0 {
		scan.Push(key.NewSet(scanCode, mods, key.ScanCode), now)
	}
	return b.Resolve(code, scan)
}

// ResolveKeyCurrent is ResolveKey with the modifiers read from the live
// input-device state.
func (b *Bindings) ResolveKeyCurrent(keyCode, scanCode int) []Binding {
	mods := key.ModNone
	if b.modSource != nil {
		mods = b.modSource.Modifiers()
	}
	return b.ResolveKey(keyCode, scanCode, mods)
}

// List returns every registered binding from both keyspaces sorted purely
// by global index (insertion order). This is the persistence and hotkey
// index view, not live resolution.
func (b *Bindings) List() []Binding {
	merged := make([]Binding, 0, len(b.hotkeys)+1)
	for _, list := range b.codeBindings {
		merged = append(merged, list...)
	}
	for _, list := range b.scanBindings {
		merged = append(merged, list...)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Index < merged[j].Index
	})
	return merged
}

// debugResolve logs a resolution trace.
func (b *Bindings) debugResolve(code, scan key.TimedChain, merged []Binding) {
	ev := b.log.Debug()
	if len(code) > 0 {
		ev = ev.Str("codeChain", code.Sets().DisplayString(b.keyCodes))
	}
	if len(scan) > 0 {
		ev = ev.Str("scanChain", scan.Sets().DisplayString(b.scanCodes))
	}
	ev.Int("matches", len(merged)).Msg("resolve")

	for i, binding := range merged {
		b.log.Debug().
			Int("rank", i+1).
			Str("action", binding.Action.Command).
			Str("rawline", binding.Action.Raw).
			Str("shortcut", binding.BoundWith).
			Int("index", binding.Index).
			Msg("resolve: candidate")
	}
}
