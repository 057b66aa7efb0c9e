package bindings

// defaultBinding is one entry of the built-in table.
type defaultBinding struct {
	key    string
	action string
}

// defaultBindings is data, not behavior: the stock table applied by
// LoadDefaults. Order matters, since insertion order is the resolution
// tie-break.
var defaultBindings = []defaultBinding{
	{"esc", "quitmessage"},
	{"Shift+esc", "quitmenu"},
	{"Ctrl+Shift+esc", "quitforce"},
	{"Any+pause", "pause"},

	{"c", "controlunit"},
	{"Any+h", "sharedialog"},
	{"Any+i", "gameinfo"},

	{"backspace", "mousestate"},
	{"Shift+backspace", "togglecammode"},
	{"Ctrl+backspace", "togglecammode"},
	{"Any+tab", "toggleoverview"},

	{"Any+enter", "chat"},
	{"Alt+ctrl+a,Alt+ctrl+a", "chatswitchally"},
	{"Alt+ctrl+s,Alt+ctrl+s", "chatswitchspec"},

	{"Ctrl+v", "pastetext"},

	{"Any+home", "increaseViewRadius"},
	{"Any+end", "decreaseViewRadius"},

	{"Alt+insert", "speedup"},
	{"Alt+delete", "slowdown"},
	{"Alt+=", "speedup"},
	{"Alt++", "speedup"},
	{"Alt+-", "slowdown"},
	{"Alt+numpad+", "speedup"},
	{"Alt+numpad-", "slowdown"},

	{",", "prevmenu"},
	{".", "nextmenu"},
	{"Shift+,", "decguiopacity"},
	{"Shift+.", "incguiopacity"},

	{"Any+0", "group0"},
	{"Any+1", "group1"},
	{"Any+2", "group2"},
	{"Any+3", "group3"},
	{"Any+4", "group4"},
	{"Any+5", "group5"},
	{"Any+6", "group6"},
	{"Any+7", "group7"},
	{"Any+8", "group8"},
	{"Any+9", "group9"},

	{"[", "buildfacing inc"},
	{"Shift+[", "buildfacing inc"},
	{"]", "buildfacing dec"},
	{"Shift+]", "buildfacing dec"},
	{"Any+z", "buildspacing inc"},
	{"Any+x", "buildspacing dec"},

	{"a", "attack"},
	{"Shift+a", "attack"},
	{"Alt+a", "areaattack"},
	{"Alt+Shift+a", "areaattack"},
	{"d", "manualfire"},
	{"Shift+d", "manualfire"},
	{"Ctrl+d", "selfd"},
	{"Ctrl+Shift+d", "selfd queued"},
	{"e", "reclaim"},
	{"Shift+e", "reclaim"},
	{"f", "fight"},
	{"Shift+f", "fight"},
	{"g", "guard"},
	{"Shift+g", "guard"},
	{"m", "move"},
	{"Shift+m", "move"},
	{"p", "patrol"},
	{"Shift+p", "patrol"},
	{"q", "groupselect"},
	{"q", "groupadd"},
	{"Shift+q", "groupclear"},
	{"r", "repair"},
	{"Shift+r", "repair"},
	{"s", "stop"},
	{"Shift+s", "stop"},
	{"w", "wait"},
	{"Shift+w", "wait queued"},
	{"x", "onoff"},
	{"Shift+x", "onoff"},

	{"Ctrl+t", "trackmode"},
	{"Any+t", "track"},

	{"Ctrl+f1", "viewfps"},
	{"Ctrl+f2", "viewta"},
	{"Ctrl+f3", "viewspring"},
	{"Ctrl+f4", "viewrot"},
	{"Ctrl+f5", "viewfree"},

	{"Any+f1", "ShowElevation"},
	{"Any+f2", "ShowPathTraversability"},
	{"Any+f3", "LastMsgPos"},
	{"Any+f4", "ShowMetalMap"},
	{"Any+f5", "HideInterface"},
	{"Any+f6", "MuteSound"},
	{"Any+l", "togglelos"},

	{"Ctrl+Shift+f8", "savegame"},
	{"Any+f11", "screenshot"},
	{"Any+f12", "screenshot"},
	{"Alt+enter", "fullscreen"},

	{"Any+`,Any+`", "drawlabel"},
	{"Any+\\,Any+\\", "drawlabel"},
	{"Any+~,Any+~", "drawlabel"},

	{"Any+`", "drawinmap"},
	{"Any+\\", "drawinmap"},
	{"Any+~", "drawinmap"},

	{"Any+up", "moveforward"},
	{"Any+down", "moveback"},
	{"Any+right", "moveright"},
	{"Any+left", "moveleft"},
	{"Any+pageup", "moveup"},
	{"Any+pagedown", "movedown"},

	{"Any+ctrl", "moveslow"},
	{"Any+shift", "movefast"},
	{"Any+ctrl", "movetilt"},
	{"Any+alt", "movereset"},
	{"Any+alt", "moverotate"},

	{"Ctrl+a", "select AllMap++_ClearSelection_SelectAll+"},
	{"Ctrl+b", "select AllMap+_Builder_Idle+_ClearSelection_SelectOne+"},
	{"Ctrl+c", "select AllMap+_ManualFireUnit+_ClearSelection_SelectOne+"},
	{"Ctrl+r", "select AllMap+_Radar+_ClearSelection_SelectAll+"},
	{"Ctrl+x", "select AllMap+_InPrevSel_Not_InHotkeyGroup+_SelectAll+"},
	{"Ctrl+z", "select AllMap+_InPrevSel+_ClearSelection_SelectAll+"},
}

// LoadDefaults applies the stock binding table and the stock fake meta key.
// The hotkey index rebuild is suspended for the duration.
func (b *Bindings) LoadDefaults() {
	if b.debug {
		b.log.Debug().Msg("load defaults")
	}

	resume := b.SuspendHotkeyRebuild()
	defer resume()

	b.SetFakeMeta("space")

	for _, d := range defaultBindings {
		b.Bind(d.key, d.action)
	}
}
