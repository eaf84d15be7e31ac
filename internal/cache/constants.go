package cache

import "time"

// ============================================================================
// CONNECTION SETTINGS
// ============================================================================

const (
	DialTimeout  = 5 * time.Second
	ReadTimeout  = 3 * time.Second
	WriteTimeout = 3 * time.Second
	PingTimeout  = 5 * time.Second
)

// ============================================================================
// CACHE KEYS
// ============================================================================

const (
	// KeyGlobalStats caches the aggregate game counters document.
	KeyGlobalStats = "stats:global"

	// KeyTopNumbersPrefix caches top-number listings per sort and limit,
	// e.g. "stats:top_numbers:usage:10".
	KeyTopNumbersPrefix = "stats:top_numbers"
)

// ============================================================================
// LOG MESSAGES
// ============================================================================

const (
	LogMsgConnected        = "Connected to Redis"
	LogMsgUnavailable      = "Redis unavailable, continuing without cache"
	LogMsgGetFailed        = "Cache get failed"
	LogMsgSetFailed        = "Cache set failed"
	LogMsgDeleteFailed     = "Cache delete failed"
	LogMsgDecodeFailed     = "Cache entry decode failed"
	LogMsgConnectionClosed = "Redis connection closed"
	LogMsgCloseFailed      = "Redis close failed"
)
