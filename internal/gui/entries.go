package gui

import (
	"github.com/agentx-labs/guisettings/internal/pairlist"
	"github.com/agentx-labs/guisettings/internal/settings"
)

func entry(group, name string, def any) settings.Entry {
	return settings.Entry{Group: group, Name: name, Default: def}
}

// Main window layout and info boxes.
var (
	MainWindowGeometry = entry(settings.GroupMainWindow, "geometry", []byte(nil))
	MainWindowState    = entry(settings.GroupMainWindow, "windowState", []byte(nil))
	MainWindowSplitter = entry(settings.GroupMainWindow, "mwState", []byte(nil))
	LoggerVisible      = entry(settings.GroupMainWindow, "loggerVisible", true)
	DebuggerVisible    = entry(settings.GroupMainWindow, "debuggerVisible", false)
	GameListVisible    = entry(settings.GroupMainWindow, "gamelistVisible", true)
	ControlsVisible    = entry(settings.GroupMainWindow, "controlsVisible", true)
	InfoBoxInstallPKG  = entry(settings.GroupMainWindow, "infoBoxEnabledInstallPKG", true)
	InfoBoxInstallPUP  = entry(settings.GroupMainWindow, "infoBoxEnabledInstallPUP", true)
	InfoBoxWelcome     = entry(settings.GroupMainWindow, "infoBoxEnabledWelcome", true)
	LastPKGDirectory   = entry(settings.GroupMainWindow, "lastExplorePathPKG", "")
	RecentGames        = entry(settings.GroupMainWindow, "recentGamesNames", pairlist.List(nil))
	RecentGamesFrozen  = entry(settings.GroupMainWindow, "recentGamesFrozen", false)
)

// Game list.
var (
	GameListSortAscending = entry(settings.GroupGameList, "sortAsc", true)
	GameListSortColumn    = entry(settings.GroupGameList, "sortCol", 1)
	GameListState         = entry(settings.GroupGameList, "state", []byte(nil))
	GameListIconSize      = entry(settings.GroupGameList, "iconSize", "Medium")
	GameListListMode      = entry(settings.GroupGameList, "listMode", true)
	GameListTextFactor    = entry(settings.GroupGameList, "textFactor", 2.0)
	GameListMarginFactor  = entry(settings.GroupGameList, "marginFactor", 0.09)

	categoryHDDGame    = entry(settings.GroupGameList, "categoryVisibleHDDGame", true)
	categoryDiscGame   = entry(settings.GroupGameList, "categoryVisibleDiscGame", true)
	categoryHome       = entry(settings.GroupGameList, "categoryVisibleHome", true)
	categoryAudioVideo = entry(settings.GroupGameList, "categoryVisibleAudioVideo", true)
	categoryGameData   = entry(settings.GroupGameList, "categoryVisibleGameData", true)
	categoryUnknown    = entry(settings.GroupGameList, "categoryVisibleUnknown", true)
	categoryOther      = entry(settings.GroupGameList, "categoryVisibleOther", true)
)

// Logger.
var (
	LoggerTTY   = entry(settings.GroupLogger, "TTY", true)
	LoggerLevel = entry(settings.GroupLogger, "level", uint(LevelSuccess))
)

// Meta bookkeeping. Never exported to profiles.
var (
	CurrentConfig     = settings.CurrentProfileEntry
	CurrentStylesheet = entry(settings.GroupMeta, "currentStylesheet", DefaultStylesheet)
)

// DefaultStylesheet is the built-in stylesheet name.
const DefaultStylesheet = "default"

// Entries lists every declared entry, for help output and exports.
func Entries() []settings.Entry {
	return []settings.Entry{
		MainWindowGeometry, MainWindowState, MainWindowSplitter,
		LoggerVisible, DebuggerVisible, GameListVisible, ControlsVisible,
		InfoBoxInstallPKG, InfoBoxInstallPUP, InfoBoxWelcome,
		LastPKGDirectory, RecentGames, RecentGamesFrozen,
		GameListSortAscending, GameListSortColumn, GameListState,
		GameListIconSize, GameListListMode, GameListTextFactor, GameListMarginFactor,
		categoryHDDGame, categoryDiscGame, categoryHome, categoryAudioVideo,
		categoryGameData, categoryUnknown, categoryOther,
		LoggerTTY, LoggerLevel,
		CurrentConfig, CurrentStylesheet,
	}
}

// LookupEntry finds a declared entry by its "group/name" path.
func LookupEntry(path string) (settings.Entry, bool) {
	for _, e := range Entries() {
		if e.Path() == path {
			return e, true
		}
	}
	return settings.Entry{}, false
}
