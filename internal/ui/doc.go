// Package ui provides theme and color support for terminal output.
// It holds the active color scheme and exposes escape-code accessors so
// the CLI, REPL, and dashboard style their output consistently without
// depending on each other.
package ui
