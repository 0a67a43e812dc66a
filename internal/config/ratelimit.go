package config

import "time"

// Bucket sizes one token bucket: Capacity tokens at most, RefillTokens
// added back every RefillInterval.
type Bucket struct {
    Capacity       int
    RefillTokens   int
    RefillInterval time.Duration
}

// RateLimitConfig drives the Redis rate limiter in front of /v1.
//
// Fields:
//  API         – bucket for ordinary requests, keyed per KeyStrategy
//                (ip, route or ip_route).
//  Booking     – stricter bucket for creating and cancelling
//                reservations, keyed by the owner id of the booking.
//  TTL         – idle lifetime of a bucket in Redis.
//  Prefix      – key prefix shared by both buckets.
type RateLimitConfig struct {
    Enabled     bool
    API         Bucket
    Booking     Bucket
    KeyStrategy string
    TTL         time.Duration
    Prefix      string
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables.  Sizes below one and
// non-positive intervals fall back to the minimum workable value, and
// TTL is raised to cover at least five refills of the slower bucket.
func LoadRateLimitConfig() RateLimitConfig {
    cfg := RateLimitConfig{
        Enabled: envBool("RATE_LIMIT_ENABLED", true),
        API: loadBucket("RATE_LIMIT", Bucket{Capacity: 60, RefillTokens: 1, RefillInterval: time.Second}),
        Booking: loadBucket("RATE_LIMIT_BOOKING", Bucket{Capacity: 5, RefillTokens: 1, RefillInterval: 10 * time.Second}),
        KeyStrategy: envStr("RATE_LIMIT_KEY_STRATEGY", "ip_route"),
        TTL:         envDur("RATE_LIMIT_TTL", 10*time.Minute),
        Prefix:      envStr("RATE_LIMIT_PREFIX", "rl"),
    }
    slowest := cfg.API.RefillInterval
    if cfg.Booking.RefillInterval > slowest {
        slowest = cfg.Booking.RefillInterval
    }
    if cfg.TTL < 5*slowest {
        cfg.TTL = 5 * slowest
    }
    return cfg
}

func loadBucket(prefix string, def Bucket) Bucket {
    b := Bucket{
        Capacity:       envInt(prefix+"_CAPACITY", def.Capacity),
        RefillTokens:   envInt(prefix+"_REFILL_TOKENS", def.RefillTokens),
        RefillInterval: envDur(prefix+"_REFILL_INTERVAL", def.RefillInterval),
    }
    if b.Capacity < 1 {
        b.Capacity = 1
    }
    if b.RefillTokens < 1 {
        b.RefillTokens = 1
    }
    if b.RefillInterval <= 0 {
        b.RefillInterval = def.RefillInterval
    }
    return b
}
