// Package gui declares the front-end's settings entries and the typed
// convenience accessors built on top of the settings store: game-list
// category and column visibility, log level, recent games, stylesheet
// selection, and the dismissible info box.
package gui
