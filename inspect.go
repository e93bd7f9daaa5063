package tokencache

// Report describes which tiers currently yield a token. It never carries
// token values.
type Report struct {
	CacheService    string
	UpstreamService string
	Cached          bool
	Upstream        bool
	UpstreamErr     error
}

// Inspect reads both tiers without writing anything. The upstream read is
// unconditional and, on the keychain backend, may show the access prompt
// the cache is there to avoid; use Cached to check the cache alone.
func (r *Resolver) Inspect() Report {
	report := Report{
		CacheService:    r.cacheService,
		UpstreamService: r.upstreamService,
	}

	if _, err := r.readCache(); err == nil {
		report.Cached = true
	}
	if _, err := r.readUpstream(); err != nil {
		report.UpstreamErr = err
	} else {
		report.Upstream = true
	}

	return report
}

// String returns a human-readable summary
func (rep Report) String() string {
	cache := "empty"
	if rep.Cached {
		cache = "present"
	}
	upstream := "available"
	if !rep.Upstream {
		upstream = "unavailable"
		if rep.UpstreamErr != nil {
			upstream += " (" + rep.UpstreamErr.Error() + ")"
		}
	}
	return "cache " + rep.CacheService + ": " + cache + "; upstream " + rep.UpstreamService + ": " + upstream
}

// Cached reports whether the own cache entry yields a token. It never reads
// the upstream record.
func (r *Resolver) Cached() bool {
	_, err := r.readCache()
	return err == nil
}
