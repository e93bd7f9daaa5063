// Package tokencache resolves the OAuth access token Claude Code keeps in the
// operating system's credential store, caching a copy under its own entry so
// later lookups do not hit (and prompt for) the upstream record.
//
// Lookup order for Resolve:
//  1. the own cache entry (service "claude-token-cache", account "oauth-token")
//  2. the upstream record (service "Claude Code-credentials", any account),
//     whose claudeAiOauth.accessToken is then cached best-effort
//
// Call Invalidate when the remote service rejects a token.
package tokencache
