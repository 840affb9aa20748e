// Package utils hosts configuration loading, logger construction, and context
// plumbing shared by every gitfleet command.
package utils
