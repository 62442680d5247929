package gui

import (
	"strconv"

	"github.com/agentx-labs/guisettings/internal/settings"
)

// legacyColumns held every column's visibility as one pair list of
// (column index, "true"/"false") before per-column keys existed.
const legacyColumns = settings.GroupGameList + "/columns"

// Migrations returns the front-end schema migrations.
func Migrations() []settings.Migration {
	return []settings.Migration{
		{
			Version:     "1.0.0",
			Description: "store log level as a number",
			Apply:       migrateLevelNames,
		},
		{
			Version:     "1.1.0",
			Description: "split game list column visibility into per-column keys",
			Apply:       migrateColumnList,
		},
	}
}

func migrateLevelNames(ed settings.Editor) {
	raw, ok := ed.Lookup(LoggerLevel.Path())
	if !ok {
		return
	}
	if _, err := strconv.ParseUint(raw, 10, 32); err == nil {
		return
	}
	level, err := ParseLogLevel(raw)
	if err != nil {
		ed.Remove(LoggerLevel.Path())
		return
	}
	ed.SetRaw(LoggerLevel.Path(), strconv.FormatUint(uint64(level), 10))
}

func migrateColumnList(ed settings.Editor) {
	v := ed.Get(legacyColumns)
	if !v.IsSet() {
		return
	}
	for _, p := range v.Pairs() {
		col, err := strconv.Atoi(p.Key)
		if err != nil {
			continue
		}
		visible, err := strconv.ParseBool(p.Value)
		if err != nil {
			continue
		}
		ed.SetRaw(ColumnEntry(col).Path(), strconv.FormatBool(visible))
	}
	ed.Remove(legacyColumns)
}
