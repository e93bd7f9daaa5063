package tokencache

import (
	"log/slog"

	"github.com/mazurov/claude-token-cache/internal/defaults"
)

const (
	// DefaultCacheService is the namespace of the resolver's own cache entry
	DefaultCacheService = defaults.CacheService

	// CacheAccount is the fixed account of the own cache entry
	CacheAccount = "oauth-token"

	// DefaultUpstreamService is where Claude Code keeps its credential record
	DefaultUpstreamService = defaults.UpstreamService
)

// Option configures a Resolver
type Option func(*Resolver)

// WithCacheService overrides the own cache namespace
func WithCacheService(service string) Option {
	return func(r *Resolver) {
		if service != "" {
			r.cacheService = service
		}
	}
}

// WithUpstreamService overrides the upstream service name
func WithUpstreamService(service string) Option {
	return func(r *Resolver) {
		if service != "" {
			r.upstreamService = service
		}
	}
}

// WithLogger sets the logger. Tokens are never logged in clear.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}
