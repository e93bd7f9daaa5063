// Package defaults holds the credential store names shared by the resolver
// and its configuration.
package defaults

const (
	// CacheService is the namespace of the resolver's own cache entry
	CacheService = "claude-token-cache"

	// UpstreamService is where Claude Code keeps its credential record
	UpstreamService = "Claude Code-credentials"
)
