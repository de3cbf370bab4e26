// Package viz renders the simulation in the terminal: a braille-dot
// canvas with per-group colors, and a bubbletea live view with a stats
// panel and interactive scenario controls.
package viz
