// Package ui provides helpers for human-readable console output.
//
// ConsoleCommandEventLogger turns git command lifecycle events into short
// sentences for the console log format, and OutputStyle decorates dry-run
// output when it is written to a colour-capable terminal.
package ui
