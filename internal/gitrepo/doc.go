// Package gitrepo resolves the browsable web URL of a Git repository.
//
// It exposes WorktreeLocator for pure-filesystem repository detection,
// RepositoryManager for querying remotes and upstream configuration through
// the git binary, and WebURLFromRemote for normalizing heterogeneous remote
// URI formats into canonical HTTPS URLs.
package gitrepo
