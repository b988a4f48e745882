package utils

import "time"

// AuthCachePrefix is the Redis key prefix for cached auth token hashes.
const AuthCachePrefix = "auth:"

// AvailabilityCachePrefix is the Redis key prefix for cached provider availability listings.
const AvailabilityCachePrefix = "availability:"

// AvailabilityCacheTTL bounds how stale a cached availability listing may be.
const AvailabilityCacheTTL = 60 * time.Second

// AuthCacheTTL is the lifetime of a cached token hash.
const AuthCacheTTL = time.Hour
