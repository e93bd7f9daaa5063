package tokencache

import (
	"fmt"
	"os"

	"github.com/mazurov/claude-token-cache/internal/config"
	"github.com/mazurov/claude-token-cache/internal/logging"
	"github.com/mazurov/claude-token-cache/keystore"
)

// Open builds a Resolver from configuration. configPath may be empty, in which
// case defaults and CLAUDE_TOKEN_CACHE_* environment variables apply.
// Logs go to stderr.
func Open(configPath string) (*Resolver, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	opts, err := cfg.StoreOptions()
	if err != nil {
		return nil, err
	}
	store, err := keystore.New(opts, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open credential store: %w", err)
	}

	logger.Debug("Resolver configured",
		"backend", cfg.Store.Backend,
		"cache_service", cfg.Cache.Service,
		"upstream_service", cfg.Upstream.Service,
		"store_password", cfg.MaskPassword())

	return New(store,
		WithCacheService(cfg.Cache.Service),
		WithUpstreamService(cfg.Upstream.Service),
		WithLogger(logger),
	), nil
}
