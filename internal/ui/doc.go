// Package ui translates command execution events into human-readable console output.
package ui
