// Package shared defines the data model exchanged between the catalog,
// classifier, batch executor, and command handlers.
package shared
