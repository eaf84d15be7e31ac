package postgres

// Database Connection Pool Constants
const (
	// DefaultMinConnections is the minimum number of connections to maintain in the pool
	DefaultMinConnections = 2
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgUnknownCollection       = "unknown collection"
	ErrMsgInvalidField            = "invalid field name"
	ErrMsgUnsupportedOperator     = "unsupported operator"
	ErrMsgUnsupportedValue        = "unsupported filter value type"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
)
