package gui

import (
	"fmt"
	"log/slog"

	"github.com/agentx-labs/guisettings/internal/settings"
)

// Settings is the front-end view of the settings store.
type Settings struct {
	*settings.Store
	logger *slog.Logger
}

// New wraps an open store. A nil logger means slog.Default().
func New(store *settings.Store, logger *slog.Logger) *Settings {
	if logger == nil {
		logger = slog.Default()
	}
	return &Settings{Store: store, logger: logger}
}

// Open opens the live store in dir with the front-end migrations
// registered.
func Open(dir string, logger *slog.Logger, opts ...settings.Option) *Settings {
	if logger == nil {
		logger = slog.Default()
	}
	base := []settings.Option{settings.WithLogger(logger), settings.WithMigrations(Migrations()...)}
	return New(settings.Open(dir, append(base, opts...)...), logger)
}

// CategoryVisible reports whether games of category c are shown.
// Unrecognized categories use the shared "other" entry and log a warning
// naming the input.
func (s *Settings) CategoryVisible(c Category) bool {
	e := c.Kind.entry()
	if c.unrecognized() {
		s.logger.Warn("unknown category, using fallback entry", "category", c.Raw, "entry", e.Name)
	}
	return s.Get(e).Bool()
}

// SetCategoryVisible shows or hides games of category c.
func (s *Settings) SetCategoryVisible(c Category, visible bool) {
	e := c.Kind.entry()
	if c.unrecognized() {
		s.logger.Warn("unknown category, setting fallback entry", "category", c.Raw, "entry", e.Name, "visible", visible)
	}
	s.Set(e, visible)
}

// VisibleCategories returns the catalog categories currently shown, in
// display order. It is the game-list filter.
func (s *Settings) VisibleCategories() []CategoryKind {
	var visible []CategoryKind
	for _, k := range KnownCategories() {
		if s.Get(k.entry()).Bool() {
			visible = append(visible, k)
		}
	}
	return visible
}

// ColumnEntry returns the visibility entry for game-list column col.
func ColumnEntry(col int) settings.Entry {
	return entry(settings.GroupGameList, fmt.Sprintf("Col%dvisible", col), true)
}

// ColumnVisible reports whether game-list column col is shown.
func (s *Settings) ColumnVisible(col int) bool {
	return s.Get(ColumnEntry(col)).Bool()
}

// SetColumnVisible shows or hides game-list column col.
func (s *Settings) SetColumnVisible(col int, visible bool) {
	s.Set(ColumnEntry(col), visible)
}

// LogLevel returns the stored log level without range checks.
func (s *Settings) LogLevel() LogLevel {
	return LogLevel(s.Get(LoggerLevel).Uint())
}

// SetLogLevel stores the log level.
func (s *Settings) SetLogLevel(l LogLevel) {
	s.Set(LoggerLevel, uint(l))
}

// CurrentProfile returns the name the live settings were last saved or
// loaded as.
func (s *Settings) CurrentProfile() string {
	return s.Get(CurrentConfig).String()
}

// CurrentStylesheetName returns the selected stylesheet base name.
func (s *Settings) CurrentStylesheetName() string {
	return s.Get(CurrentStylesheet).String()
}

// SetCurrentStylesheet selects a stylesheet by base name.
func (s *Settings) SetCurrentStylesheet(name string) {
	s.Set(CurrentStylesheet, name)
}

// CurrentStylesheetPath resolves the selected stylesheet to an absolute
// .qss path in the settings directory.
func (s *Settings) CurrentStylesheetPath() string {
	return s.StylesheetPath(s.CurrentStylesheetName())
}
