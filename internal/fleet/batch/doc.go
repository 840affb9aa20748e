// Package batch fans a single-repository operation out across a repository set
// concurrently and aggregates per-repository outcomes without letting one
// failure abort siblings.
package batch
