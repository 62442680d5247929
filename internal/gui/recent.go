package gui

import "github.com/agentx-labs/guisettings/internal/pairlist"

// MaxRecentGames caps the recent games list.
const MaxRecentGames = 10

// RecentGameList returns the recently booted games as (path, title) pairs,
// most recent first.
func (s *Settings) RecentGameList() pairlist.List {
	return s.Get(RecentGames).Pairs()
}

// AddRecentGame moves path to the front of the recent games list. It does
// nothing while the list is frozen.
func (s *Settings) AddRecentGame(path, title string) {
	if s.Get(RecentGamesFrozen).Bool() {
		return
	}
	list := pairlist.List{{Key: path, Value: title}}
	for _, p := range s.RecentGameList() {
		if p.Key == path {
			continue
		}
		list = append(list, p)
	}
	if len(list) > MaxRecentGames {
		list = list[:MaxRecentGames]
	}
	s.Set(RecentGames, list)
}

// RemoveRecentGame drops path from the recent games list.
func (s *Settings) RemoveRecentGame(path string) {
	var list pairlist.List
	for _, p := range s.RecentGameList() {
		if p.Key != path {
			list = append(list, p)
		}
	}
	s.Set(RecentGames, list)
}

// SetRecentGamesFrozen freezes or unfreezes the recent games list.
func (s *Settings) SetRecentGamesFrozen(frozen bool) {
	s.Set(RecentGamesFrozen, frozen)
}
