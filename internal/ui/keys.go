package ui

// Keybinding represents a keyboard shortcut with its display name.
type Keybinding struct {
	Key  string // actual key(s) to match
	Desc string // description for help display
}

// Global keybindings (always available)
var (
	KeyQuit        = Keybinding{Key: "q", Desc: "Quit"}
	KeyQuitAlt     = Keybinding{Key: "ctrl+c", Desc: "Quit"}
	KeyHelp        = Keybinding{Key: "?", Desc: "Show help"}
	KeySearch      = Keybinding{Key: "/", Desc: "Search"}
	KeyFilter      = Keybinding{Key: "f", Desc: "Cycle filter"}
	KeySort        = Keybinding{Key: "s", Desc: "Cycle sort"}
	KeyTheme       = Keybinding{Key: "t", Desc: "Toggle light/dark theme"}
	KeyReload      = Keybinding{Key: "R", Desc: "Reload current tab"}
	KeyRefreshUp   = Keybinding{Key: "+", Desc: "Repaint faster"}
	KeyRefreshDown = Keybinding{Key: "-", Desc: "Repaint slower"}
	KeyNextTab     = Keybinding{Key: "tab", Desc: "Next tab"}
	KeyPrevTab     = Keybinding{Key: "shift+tab", Desc: "Previous tab"}
	KeyDismiss     = Keybinding{Key: "c", Desc: "Dismiss notifications"}
)

// Navigation keybindings
var (
	KeyUp      = Keybinding{Key: "up", Desc: "Move up"}
	KeyUpAlt   = Keybinding{Key: "k", Desc: "Move up"}
	KeyDown    = Keybinding{Key: "down", Desc: "Move down"}
	KeyDownAlt = Keybinding{Key: "j", Desc: "Move down"}
	KeyEnter   = Keybinding{Key: "enter", Desc: "Show details"}
	KeyEsc     = Keybinding{Key: "esc", Desc: "Back/cancel"}
	KeyBack    = Keybinding{Key: "backspace", Desc: "Back/cancel"}
)

// Resource action keybindings
var (
	KeyStart   = Keybinding{Key: "S", Desc: "Start container"}
	KeyStop    = Keybinding{Key: "x", Desc: "Stop container"}
	KeyRestart = Keybinding{Key: "r", Desc: "Restart container"}
	KeyPause   = Keybinding{Key: "p", Desc: "Pause/unpause container"}
	KeyKill    = Keybinding{Key: "K", Desc: "Kill container"}
	KeyRemove  = Keybinding{Key: "d", Desc: "Remove selected resource"}
	KeyLogs    = Keybinding{Key: "l", Desc: "Follow container logs"}
	KeyStats   = Keybinding{Key: "m", Desc: "Monitor container stats"}
)

// Log pane keybindings
var (
	KeyLogStream     = Keybinding{Key: "f", Desc: "Cycle stdout/stderr"}
	KeyLogAutoScroll = Keybinding{Key: "a", Desc: "Toggle auto-scroll"}
	KeyLogClear      = Keybinding{Key: "C", Desc: "Clear log lines"}
)

// Confirm/cancel keybindings
var (
	KeyConfirmYes = Keybinding{Key: "y", Desc: "Confirm"}
	KeyConfirmNo  = Keybinding{Key: "n", Desc: "Cancel"}
)

// helpSections groups the bindings shown in the help pane.
var helpSections = []struct {
	title string
	keys  []Keybinding
}{
	{"NAVIGATION", []Keybinding{KeyUp, KeyDown, KeyNextTab, KeyPrevTab, KeyEnter, KeyEsc}},
	{"LIST", []Keybinding{KeySearch, KeyFilter, KeySort, KeyReload}},
	{"CONTAINER", []Keybinding{KeyStart, KeyStop, KeyRestart, KeyPause, KeyKill, KeyRemove, KeyLogs, KeyStats}},
	{"LOGS", []Keybinding{KeyLogStream, KeyLogAutoScroll, KeyLogClear}},
	{"GENERAL", []Keybinding{KeyTheme, KeyRefreshUp, KeyRefreshDown, KeyDismiss, KeyHelp, KeyQuit}},
}

// matchKey checks if the input matches the keybinding.
func matchKey(input string, keys ...Keybinding) bool {
	for _, k := range keys {
		if input == k.Key {
			return true
		}
	}
	return false
}
