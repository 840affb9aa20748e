// Package gitrepo implements the version-control backend capability used by
// fleet orchestration. ShellBackend delegates every primitive to the git
// toolchain through execshell; consumers depend on the RepositoryBackend
// interface so tests can substitute fakes.
package gitrepo
