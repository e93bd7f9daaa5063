package tokencache

import (
	"errors"
	"log/slog"
	"unicode/utf8"

	"github.com/mazurov/claude-token-cache/keystore"
)

// Resolver returns Claude OAuth access tokens, preferring its own cache entry
// over the upstream credential record.
//
// Resolver holds no mutable state; concurrent use is as safe as the
// underlying Store's individual calls.
type Resolver struct {
	store           keystore.Store
	cacheService    string
	upstreamService string
	logger          *slog.Logger
}

// New creates a Resolver over store
func New(store keystore.Store, opts ...Option) *Resolver {
	r := &Resolver{
		store:           store,
		cacheService:    DefaultCacheService,
		upstreamService: DefaultUpstreamService,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Resolver) cacheQuery() keystore.Query {
	return keystore.Query{Service: r.cacheService, Account: CacheAccount}
}

// Resolve returns the cached token if there is one. Otherwise it reads the
// upstream record, caches its token and returns it. Only upstream failures
// are returned.
func (r *Resolver) Resolve() (string, error) {
	if token, err := r.readCache(); err == nil {
		r.logger.Debug("Token served from cache", "token", maskToken(token))
		return token, nil
	}

	token, err := r.readUpstream()
	if err != nil {
		r.logger.Debug("Upstream token lookup failed", "service", r.upstreamService, "error", err)
		return "", err
	}

	// Best effort: a failed cache write never fails Resolve.
	if err := r.writeCache(token); err != nil {
		r.logger.Debug("Token cache write skipped", "error", err)
	}

	return token, nil
}

// Invalidate drops the cached token so the next Resolve goes upstream.
// Call it when the service rejects a token.
func (r *Resolver) Invalidate() {
	if err := r.store.Delete(r.cacheQuery()); err != nil {
		r.logger.Debug("Token cache delete failed", "error", err)
		return
	}
	r.logger.Debug("Token cache invalidated", "service", r.cacheService)
}

// ResolveUpstreamDirect reads the upstream record, ignoring the cache
// entirely: nothing is read from or written to it.
func (r *Resolver) ResolveUpstreamDirect() (string, error) {
	return r.readUpstream()
}

func (r *Resolver) readCache() (string, error) {
	data, err := r.store.Get(r.cacheQuery())
	if err != nil {
		return "", newError(KindItemNotFound, err)
	}
	if !utf8.Valid(data) {
		return "", ErrItemNotFound
	}
	return string(data), nil
}

func (r *Resolver) readUpstream() (string, error) {
	data, err := r.store.Get(keystore.Query{Service: r.upstreamService})
	if err != nil {
		if errors.Is(err, keystore.ErrNotFound) {
			return "", newError(KindItemNotFound, err)
		}
		return "", unhandledStoreError(err)
	}
	return parseAccessToken(data)
}

func (r *Resolver) writeCache(token string) error {
	if !utf8.ValidString(token) {
		return ErrUnexpectedData
	}

	// The store has no replace; a stale entry would make Add fail.
	_ = r.store.Delete(r.cacheQuery())

	err := r.store.Add(keystore.Item{
		Service:       r.cacheService,
		Account:       CacheAccount,
		Data:          []byte(token),
		Accessibility: keystore.AccessibleAfterFirstUnlock,
	})
	if err != nil {
		return unhandledStoreError(err)
	}

	r.logger.Debug("Token cached", "service", r.cacheService, "token", maskToken(token))
	return nil
}
