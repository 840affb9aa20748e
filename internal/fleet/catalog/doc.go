// Package catalog resolves the set of repositories a fleet command operates
// on, either from an explicit manifest or by discovering repositories under
// configured root directories.
package catalog
