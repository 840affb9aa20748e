// Package workflows reports continuous-integration run state for fleet
// repositories through the GitHub CLI.
package workflows
