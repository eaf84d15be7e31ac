package identity

import "time"

// ============================================================================
// ERROR MESSAGES
// ============================================================================

const (
	ErrMsgInvalidToken  = "invalid token"
	ErrMsgMissingUID    = "token has no subject"
	ErrMsgUserNotFound  = "user record not found"
	ErrMsgSigningMethod = "unexpected signing method"
)

// ============================================================================
// CACHE CONFIGURATION
// ============================================================================

const (
	// RecordCacheSize bounds how many user records we keep in memory.
	RecordCacheSize = 1024

	// RecordCacheTTL is how long a cached record stays fresh. Records are
	// refreshed on every verified request, so active users never expire.
	RecordCacheTTL = 15 * time.Minute

	// CacheSchemaVersion must be bumped whenever the cached record shape
	// changes, so stale entries from before a deploy are dropped.
	CacheSchemaVersion = 1
)

// ============================================================================
// NAME RESOLUTION
// ============================================================================

const (
	// LookupTimeout bounds a display-name batch. Names are cosmetic, so a
	// slow lookup degrades to fallback names instead of delaying responses.
	LookupTimeout = 1 * time.Second

	// FallbackUIDLength is how much of the UID shows in a fallback name.
	FallbackUIDLength = 8

	// FallbackSuffix marks a name derived from a UID rather than a profile.
	FallbackSuffix = "..."
)
