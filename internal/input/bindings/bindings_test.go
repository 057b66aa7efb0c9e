package bindings

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/MasterBel2/recoil/internal/input/key"
)

func actions(list []Binding) []string {
	out := make([]string, len(list))
	for i, b := range list {
		out[i] = b.Action.Line
	}
	return out
}

func sameActions(got []Binding, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].Action.Line != want[i] {
			return false
		}
	}
	return true
}

func TestBindParseFailureLeavesStateUnchanged(t *testing.T) {
	b := New()
	if b.Bind("Bogus+a", "attack") {
		t.Fatal("bind with unknown modifier should fail")
	}
	if b.Bind("a", "   ") {
		t.Fatal("bind with empty action should fail")
	}
	if got := len(b.List()); got != 0 {
		t.Fatalf("expected empty registry, got %d bindings", got)
	}
}

func TestBindIsIdempotentPerLine(t *testing.T) {
	b := New()
	b.Bind("a", "attack")
	b.Bind("a", "attack")
	b.Bind("a", "areaattack")
	b.Bind("a", "attack")

	list := b.List()
	if !sameActions(list, []string{"attack", "areaattack"}) {
		t.Fatalf("got %v", actions(list))
	}
	if list[0].Index != 1 || list[1].Index != 2 {
		t.Fatalf("re-bind must keep the original index, got %d and %d",
			list[0].Index, list[1].Index)
	}
}

func TestResolveKeyExactBeforeWildcard(t *testing.T) {
	b := New()
	b.Bind("Any+h", "sharedialog")
	b.Bind("h", "gameinfo")

	got := b.ResolveKey('h', -1, key.ModNone)
	if !sameActions(got, []string{"gameinfo", "sharedialog"}) {
		t.Fatalf("got %v", actions(got))
	}
}

func TestResolveKeyWildcardMatchesEveryModifier(t *testing.T) {
	b := New()
	b.Bind("Any+h", "sharedialog")

	mods := []key.Modifier{
		key.ModNone,
		key.ModShift,
		key.ModCtrl | key.ModAlt,
		key.ModAlt | key.ModCtrl | key.ModMeta | key.ModShift,
	}
	for _, m := range mods {
		got := b.ResolveKey('h', -1, m)
		if !sameActions(got, []string{"sharedialog"}) {
			t.Fatalf("mods %v: got %v", m, actions(got))
		}
	}
}

func TestResolveKeyShiftVariant(t *testing.T) {
	b := New()
	b.Bind("a", "attack")
	b.Bind("Shift+a", "attack")

	if got := b.ResolveKey('a', -1, key.ModNone); !sameActions(got, []string{"attack"}) {
		t.Fatalf("plain: got %v", actions(got))
	}
	if got := b.ResolveKey('a', -1, key.ModShift); !sameActions(got, []string{"attack"}) {
		t.Fatalf("shifted: got %v", actions(got))
	}
	if got := b.ResolveKey('a', -1, key.ModCtrl); len(got) != 0 {
		t.Fatalf("ctrl: expected no match, got %v", actions(got))
	}
}

func TestResolveKeyCrossKeyspaceDuplicate(t *testing.T) {
	b := New()
	b.Bind("q", "groupselect")
	b.Bind("sc_q", "groupselect")
	b.Bind("sc_q", "groupadd")

	got := b.ResolveKey('q', key.ScanA+16, key.ModNone)
	if !sameActions(got, []string{"groupselect", "groupadd"}) {
		t.Fatalf("got %v", actions(got))
	}
	if got[0].Index != 1 {
		t.Fatalf("duplicate must keep the lower index, got %d", got[0].Index)
	}
}

func TestResolveKeyMergesBothKeyspaces(t *testing.T) {
	b := New()
	b.Bind("sc_a", "stop")
	b.Bind("a", "attack")
	b.Bind("Any+a", "wait")

	got := b.ResolveKey('a', key.ScanA, key.ModNone)
	if !sameActions(got, []string{"stop", "attack", "wait"}) {
		t.Fatalf("got %v", actions(got))
	}
}

func TestStatefulCommandBindsWildcard(t *testing.T) {
	b := New()
	b.Bind("up", "moveforward")

	list := b.List()
	if len(list) != 1 {
		t.Fatalf("got %d bindings", len(list))
	}
	if !list[0].Chain.Trigger().AnyMod() {
		t.Fatal("stateful command must bind the wildcard keyset")
	}

	got := b.ResolveKey(key.CodeUp, -1, key.ModCtrl|key.ModShift)
	if !sameActions(got, []string{"moveforward"}) {
		t.Fatalf("got %v", actions(got))
	}
}

func TestResolveChainWithinTimeout(t *testing.T) {
	b := New()
	b.Bind("g,g", "drawlabel")
	b.Bind("g", "guard")

	g := key.NewSet('g', key.ModNone, key.KeyCode)
	t0 := time.Now()

	var live key.TimedChain
	live.Push(g, t0)
	live.Push(g, t0.Add(b.ChainTimeout()))

	got := b.Resolve(live, nil)
	if !sameActions(got, []string{"drawlabel", "guard"}) {
		t.Fatalf("in time: got %v", actions(got))
	}
}

func TestResolveChainExpired(t *testing.T) {
	b := New()
	b.Bind("g,g", "drawlabel")

	g := key.NewSet('g', key.ModNone, key.KeyCode)
	t0 := time.Now()

	var live key.TimedChain
	live.Push(g, t0)
	live.Push(g, t0.Add(b.ChainTimeout()+time.Millisecond))

	if got := b.Resolve(live, nil); len(got) != 0 {
		t.Fatalf("expired chain must not resolve, got %v", actions(got))
	}
}

func TestResolveChainNeedsFullPrefix(t *testing.T) {
	b := New()
	b.Bind("g,g", "drawlabel")

	got := b.ResolveKey('g', -1, key.ModNone)
	if len(got) != 0 {
		t.Fatalf("single press must not satisfy a two-chord chain, got %v", actions(got))
	}
}

func TestUnbindRemovesOneCommand(t *testing.T) {
	b := New()
	b.Bind("a", "attack")
	b.Bind("a", "areaattack")

	if !b.Unbind("a", "attack") {
		t.Fatal("unbind should report removal")
	}
	if b.Unbind("a", "attack") {
		t.Fatal("second unbind should report nothing removed")
	}
	if got := b.ResolveKey('a', -1, key.ModNone); !sameActions(got, []string{"areaattack"}) {
		t.Fatalf("got %v", actions(got))
	}
}

func TestUnbindIsExactKeyset(t *testing.T) {
	b := New()
	b.Bind("Any+a", "attack")

	if b.Unbind("a", "attack") {
		t.Fatal("plain keyset must not remove the wildcard binding")
	}
	if !b.Unbind("Any+a", "attack") {
		t.Fatal("wildcard keyset should remove it")
	}
}

func TestUnbindKeyset(t *testing.T) {
	b := New()
	b.Bind("a", "attack")
	b.Bind("a", "areaattack")
	b.Bind("Any+a", "wait")

	if !b.UnbindKeyset("a") {
		t.Fatal("unbindkeyset should report removal")
	}
	got := b.ResolveKey('a', -1, key.ModNone)
	if !sameActions(got, []string{"wait"}) {
		t.Fatalf("wildcard list must survive, got %v", actions(got))
	}
}

func TestUnbindActionSweepsBothKeyspaces(t *testing.T) {
	b := New()
	b.Bind("a", "attack")
	b.Bind("Shift+a", "attack")
	b.Bind("sc_a", "attack")
	b.Bind("a", "stop")

	if !b.UnbindAction("attack") {
		t.Fatal("unbindaction should report removal")
	}
	if b.UnbindAction("attack") {
		t.Fatal("second sweep should find nothing")
	}
	if got := b.ResolveKey('a', key.ScanA, key.ModNone); !sameActions(got, []string{"stop"}) {
		t.Fatalf("got %v", actions(got))
	}
}

func TestUnbindAllRestoresBaseline(t *testing.T) {
	b := New()
	b.Bind("a", "attack")
	b.AddKeySymbol("mykey", "0x61")
	b.UnbindAll()

	list := b.List()
	if !sameActions(list, []string{"chat"}) {
		t.Fatalf("got %v", actions(list))
	}
	if list[0].Index != 1 {
		t.Fatalf("index counter must reset, got %d", list[0].Index)
	}
	if got := b.ResolveKey(key.CodeEnter, -1, key.ModNone); !sameActions(got, []string{"chat"}) {
		t.Fatalf("got %v", actions(got))
	}
	if syms := b.KeyCodes().UserSymbols(); len(syms) != 0 {
		t.Fatalf("user symbols must be cleared, got %v", syms)
	}
}

func TestSetFakeMeta(t *testing.T) {
	b := New()
	if !b.SetFakeMeta("space") {
		t.Fatal("space should be assignable")
	}
	if b.FakeMetaKey() != key.CodeSpace {
		t.Fatalf("got %d", b.FakeMetaKey())
	}
	if b.SetFakeMeta("sc_a") {
		t.Fatal("scan codes must be rejected")
	}
	if !b.SetFakeMeta("none") {
		t.Fatal("none should clear")
	}
	if b.FakeMetaKey() != key.CodeNone {
		t.Fatalf("got %d", b.FakeMetaKey())
	}
}

func TestHotkeysReverseIndex(t *testing.T) {
	b := New()
	b.Bind("a", "attack")
	b.Bind("Shift+a", "attack")
	b.Bind("f", "fight")
	b.Bind("w", "wait queued")

	got := b.Hotkeys("attack")
	if len(got) != 2 || got[0] != "a" || got[1] != "Shift+a" {
		t.Fatalf("got %v", got)
	}
	if got := b.Hotkeys("wait queued"); len(got) != 1 || got[0] != "w" {
		t.Fatalf("got %v", got)
	}
	if got := b.Hotkeys("wait"); got != nil {
		t.Fatalf("hotkey lookup is exact, got %v", got)
	}

	b.Unbind("a", "attack")
	if got := b.Hotkeys("attack"); len(got) != 1 || got[0] != "Shift+a" {
		t.Fatalf("index must follow mutations, got %v", got)
	}
}

func TestSuspendHotkeyRebuild(t *testing.T) {
	b := New()
	resume := b.SuspendHotkeyRebuild()
	b.Bind("a", "attack")
	if got := b.Hotkeys("attack"); got != nil {
		t.Fatalf("rebuild should be suspended, got %v", got)
	}
	resume()
	if got := b.Hotkeys("attack"); len(got) != 1 {
		t.Fatalf("resume must rebuild once, got %v", got)
	}
}

func TestChainTimeoutClamp(t *testing.T) {
	b := New()
	b.SetChainTimeout(-time.Second)
	if b.ChainTimeout() != 0 {
		t.Fatalf("got %v", b.ChainTimeout())
	}
	b.SetChainTimeout(200 * time.Millisecond)
	if b.ChainTimeout() != 200*time.Millisecond {
		t.Fatalf("got %v", b.ChainTimeout())
	}
}

type fixedMods key.Modifier

func (f fixedMods) Modifiers() key.Modifier { return key.Modifier(f) }

func TestResolveKeyCurrentUsesModifierSource(t *testing.T) {
	b := New(WithModifierSource(fixedMods(key.ModShift)))
	b.Bind("a", "attack")
	b.Bind("Shift+a", "attack queued")

	got := b.ResolveKeyCurrent('a', -1)
	if !sameActions(got, []string{"attack queued"}) {
		t.Fatalf("held shift must select the shifted binding, got %v", actions(got))
	}
}

func TestResolveKeyCurrentWithoutSource(t *testing.T) {
	b := New()
	b.Bind("a", "attack")
	b.Bind("Shift+a", "attack queued")

	got := b.ResolveKeyCurrent('a', -1)
	if !sameActions(got, []string{"attack"}) {
		t.Fatalf("nil source must resolve with no modifiers, got %v", actions(got))
	}
}

func TestSetModifierSource(t *testing.T) {
	b := New()
	b.Bind("Ctrl+a", "selectall")

	b.SetModifierSource(fixedMods(key.ModCtrl))
	if got := b.ResolveKeyCurrent('a', -1); !sameActions(got, []string{"selectall"}) {
		t.Fatalf("got %v", actions(got))
	}
}

func TestWarnLogsCarrySentinels(t *testing.T) {
	var buf strings.Builder
	b := New(WithLogger(zerolog.New(&buf)))

	if b.Bind("a", "   ") {
		t.Fatal("empty action must fail")
	}
	if !strings.Contains(buf.String(), ErrEmptyAction.Error()) {
		t.Fatalf("bind warning should name the error, got %q", buf.String())
	}

	buf.Reset()
	if b.SetFakeMeta("sc_a") {
		t.Fatal("scan code must be rejected")
	}
	if !strings.Contains(buf.String(), ErrNotKeyCode.Error()) {
		t.Fatalf("fakemeta warning should name the error, got %q", buf.String())
	}
}

func TestLoadDefaults(t *testing.T) {
	b := New()
	b.LoadDefaults()

	if b.FakeMetaKey() != key.CodeSpace {
		t.Fatalf("fake meta should default to space, got %d", b.FakeMetaKey())
	}
	if got := b.ResolveKey('a', -1, key.ModNone); !sameActions(got, []string{"attack"}) {
		t.Fatalf("got %v", actions(got))
	}
	if got := b.ResolveKey(key.CodeUp, -1, key.ModCtrl); !sameActions(got, []string{"moveforward"}) {
		t.Fatalf("stateful moves must match held modifiers, got %v", actions(got))
	}
	if got := b.Hotkeys("drawinmap"); len(got) != 3 {
		t.Fatalf("got %v", got)
	}
}
