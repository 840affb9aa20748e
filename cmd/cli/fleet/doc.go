// Package fleet assembles the Cobra commands that apply git operations across
// the configured repository catalog, reporting per-repository outcomes and an
// aggregate summary for each verb.
package fleet
