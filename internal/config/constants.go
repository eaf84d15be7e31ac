package config

import "time"

// Configuration defaults
const (
	DefaultPort        = 8080
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultLogDir      = "logs"

	DefaultDBName            = "whats_the_chance"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultRedisAddr = "localhost:6379"
	DefaultCacheTTL  = 30 * time.Second

	DefaultJWTIssuer = "whats-the-chance"

	DefaultWorkerCount     = 4
	DefaultWorkerQueueSize = 64
)
