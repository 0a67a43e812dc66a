package config

// Redis backs the rate limiter and the response cache.  Neither is needed
// for correctness: without a client both middlewares pass requests through.

import (
    "context"
    "crypto/tls"
    "errors"
    "fmt"
    "net"
    "time"

    "github.com/redis/go-redis/v9"
)

// ErrRedisDisabled is returned by NewRedisClient when REDIS_ENABLED=false.
var ErrRedisDisabled = errors.New("redis disabled")

// RedisConfig locates the Redis server.
//
// Fields:
//  Enabled     – REDIS_ENABLED, default true.
//  Addr        – REDIS_HOST:REDIS_PORT when both are set, else REDIS_ADDR,
//                else localhost:6379.
//  Password    – REDIS_PASSWORD.
//  DB          – REDIS_DB.
//  TLS         – REDIS_TLS; REDIS_TLS_INSECURE skips certificate checks.
//  PingTimeout – REDIS_PING_TIMEOUT, bound on the startup ping.
type RedisConfig struct {
    Enabled     bool
    Addr        string
    Password    string
    DB          int
    TLS         bool
    TLSInsecure bool
    PingTimeout time.Duration
}

func LoadRedisConfig() RedisConfig {
    addr := envStr("REDIS_ADDR", "localhost:6379")
    if host, port := envStr("REDIS_HOST", ""), envStr("REDIS_PORT", ""); host != "" && port != "" {
        addr = net.JoinHostPort(host, port)
    }
    return RedisConfig{
        Enabled:     envBool("REDIS_ENABLED", true),
        Addr:        addr,
        Password:    envStr("REDIS_PASSWORD", ""),
        DB:          envInt("REDIS_DB", 0),
        TLS:         envBool("REDIS_TLS", false),
        TLSInsecure: envBool("REDIS_TLS_INSECURE", false),
        PingTimeout: envDur("REDIS_PING_TIMEOUT", 2*time.Second),
    }
}

// NewRedisClient connects and pings the server.  It returns a nil client
// with ErrRedisDisabled when Redis is switched off, or with the ping
// error when the server cannot be reached.
func NewRedisClient(cfg RedisConfig) (*redis.Client, error) {
    if !cfg.Enabled {
        return nil, ErrRedisDisabled
    }
    opts := &redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
    if cfg.TLS {
        opts.TLSConfig = &tls.Config{InsecureSkipVerify: cfg.TLSInsecure}
    }
    client := redis.NewClient(opts)

    ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        _ = client.Close()
        return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
    }
    return client, nil
}
