package constants

import "time"

const (
	CacheKeySession = "session:%s" // %s -> session token
)

const (
	SessionDefaultTTL = 24 * time.Hour
	SessionTokenLen   = 128
)
