package gui

import (
	"strings"

	"github.com/agentx-labs/guisettings/internal/settings"
)

// CategoryKind is the closed set of game-list categories.
type CategoryKind int

const (
	HDDGame CategoryKind = iota
	DiscGame
	Home
	AudioVideo
	GameData
	Unknown
	// Other stands for any category string the catalog doesn't define.
	Other
)

// Category is a parsed category. For Other, Raw keeps the unrecognized
// input so it can be reported.
type Category struct {
	Kind CategoryKind
	Raw  string
}

type categoryInfo struct {
	name  string
	code  string
	entry settings.Entry
}

var categories = map[CategoryKind]categoryInfo{
	HDDGame:    {"HDD Game", "HG", categoryHDDGame},
	DiscGame:   {"Disc Game", "DG", categoryDiscGame},
	Home:       {"Home", "HM", categoryHome},
	AudioVideo: {"Audio/Video", "AV", categoryAudioVideo},
	GameData:   {"Game Data", "GD", categoryGameData},
	Unknown:    {"Unknown", "", categoryUnknown},
	Other:      {"Other", "", categoryOther},
}

// KnownCategories lists the catalog-defined categories in display order.
func KnownCategories() []CategoryKind {
	return []CategoryKind{HDDGame, DiscGame, Home, AudioVideo, GameData, Unknown}
}

// ParseCategory resolves a display name ("Disc Game") or PARAM.SFO code
// ("DG"). Matching ignores case and surrounding whitespace. Anything else
// parses as Other.
func ParseCategory(s string) Category {
	trimmed := strings.TrimSpace(s)
	for _, k := range KnownCategories() {
		info := categories[k]
		if strings.EqualFold(trimmed, info.name) || (info.code != "" && strings.EqualFold(trimmed, info.code)) {
			return Category{Kind: k, Raw: s}
		}
	}
	return Category{Kind: Other, Raw: s}
}

// String returns the display name.
func (k CategoryKind) String() string {
	if info, ok := categories[k]; ok {
		return info.name
	}
	return "Other"
}

// Code returns the PARAM.SFO category code, or "" when there is none.
func (k CategoryKind) Code() string {
	return categories[k].code
}

func (k CategoryKind) entry() settings.Entry {
	if info, ok := categories[k]; ok {
		return info.entry
	}
	return categoryOther
}

// unrecognized reports whether c came from input that named no known
// category.
func (c Category) unrecognized() bool {
	return c.Kind == Other && c.Raw != ""
}

func (c Category) String() string {
	if c.unrecognized() {
		return c.Raw
	}
	return c.Kind.String()
}
