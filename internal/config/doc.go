// Package config loads engine settings from a TOML file and publishes
// change notifications so that subsystems can react to live edits.
//
// The Manager owns the settings value. Components subscribe to the
// Manager for reload events; an optional file watcher feeds debounced
// filesystem changes into Reload.
package config
