// Package ui adapts command lifecycle events into human-readable console
// output for interactive sessions.
package ui
