// Package config defines scheduler settings and provides helpers to load,
// validate and save them in YAML format.
//
// The Config type holds the display worker render cadence, the dispatcher's
// empty-registry nap, the optional metrics listen address and the log level.
// A missing settings file falls back to defaults.
package config
