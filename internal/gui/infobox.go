package gui

import "github.com/agentx-labs/guisettings/internal/settings"

// Dialog presents a modal information message with a "don't show again"
// choice. ShowInfo blocks until dismissed and reports whether the user
// asked not to see the message again.
type Dialog interface {
	ShowInfo(title, text string) (dontShowAgain bool)
}

// ShowDismissibleInfo shows text through d only while the boolean entry e
// is true. Choosing "don't show again" sets e to false and saves it.
// It reports whether the dialog was shown.
func (s *Settings) ShowDismissibleInfo(e settings.Entry, title, text string, d Dialog) bool {
	if !s.Get(e).Bool() {
		s.logger.Warn("info box disabled, not shown", "entry", e.Name)
		return false
	}
	if d.ShowInfo(title, text) {
		s.Set(e, false)
		_ = s.Sync()
		s.logger.Warn("info box disabled by user", "entry", e.Name)
	}
	return true
}
