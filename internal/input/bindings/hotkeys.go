package bindings

// RebuildHotkeys clears and rebuilds the reverse index mapping each bound
// action to the display strings of its shortcuts, in global binding order.
// The index is not kept in sync incrementally; call this after mutations,
// or rely on the automatic rebuild when it is enabled.
func (b *Bindings) RebuildHotkeys() {
	if b.debug {
		b.log.Debug().Msg("rebuild hotkeys")
	}

	b.hotkeys = make(map[string][]string, b.bindingCount)
	for _, binding := range b.List() {
		k := binding.Action.HotkeyKey()
		b.hotkeys[k] = append(b.hotkeys[k], binding.BoundWith)
	}
}

// Hotkeys returns the display strings of every shortcut bound to an exact
// action string, or nil if there are none.
func (b *Bindings) Hotkeys(action string) []string {
	return b.hotkeys[action]
}

// rebuildIfEnabled rebuilds the reverse index unless rebuilds are suspended
// for a bulk load.
func (b *Bindings) rebuildIfEnabled() {
	if b.buildHotkeys {
		b.RebuildHotkeys()
	}
}
