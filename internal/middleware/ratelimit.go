package middleware

import (
    "bytes"
    "encoding/json"
    "io"
    "math"
    "net/http"
    "strconv"
    "strings"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/hotel-reservation/internal/config"
    "github.com/iliyamo/hotel-reservation/internal/validate"
)

// takeToken refills the bucket at KEYS[1] for the whole intervals that
// have passed, then tries to take one token.
// ARGV: now_ms, capacity, refill_tokens, interval_ms, ttl_s.
// Returns {allowed (0/1), tokens left, ms until the next refill}.
var takeToken = redis.NewScript(`
local b = redis.call('HMGET', KEYS[1], 'tokens', 'refilled_ms')
local now, cap, add, every = tonumber(ARGV[1]), tonumber(ARGV[2]), tonumber(ARGV[3]), tonumber(ARGV[4])
local tokens, refilled = tonumber(b[1]), tonumber(b[2])
if tokens == nil or refilled == nil then
    tokens, refilled = cap, now
end
local n = math.floor(math.max(0, now - refilled) / every)
if n > 0 then
    tokens = math.min(cap, tokens + n * add)
    refilled = refilled + n * every
end
local allowed, wait = 0, 0
if tokens > 0 then
    allowed, tokens = 1, tokens - 1
else
    wait = math.max(0, every - (now - refilled))
end
redis.call('HSET', KEYS[1], 'tokens', tokens, 'refilled_ms', refilled)
redis.call('EXPIRE', KEYS[1], tonumber(ARGV[5]))
return {allowed, tokens, wait}
`)

// maxPeekBytes bounds how much of a booking body is read to find the
// owner id.
const maxPeekBytes = 64 << 10

// NewTokenBucket limits /v1 requests with token buckets kept in Redis.
// Creating and cancelling reservations draw from the Booking bucket of
// the reservation's owner, so one guest cannot flood the booking store
// from many addresses; every other request draws from the API bucket
// keyed by cfg.KeyStrategy.  Redis errors let the request through.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            bucket, key := rateScope(cfg, c)
            args := []any{
                time.Now().UnixMilli(),
                bucket.Capacity,
                bucket.RefillTokens,
                bucket.RefillInterval.Milliseconds(),
                int64(cfg.TTL / time.Second),
            }
            vals, err := takeToken.Run(c.Request().Context(), rdb, []string{key}, args...).Result()
            if err != nil {
                c.Logger().Warnf("ratelimit: %s: %v", key, err)
                return next(c)
            }
            allowed, remaining, waitMs, ok := parseTake(vals)
            if !ok {
                c.Logger().Warnf("ratelimit: %s: unexpected script result %#v", key, vals)
                return next(c)
            }

            h := c.Response().Header()
            h.Set("X-RateLimit-Limit", strconv.Itoa(bucket.Capacity))
            h.Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))
            if allowed {
                return next(c)
            }
            secs := int(math.Ceil(float64(waitMs) / 1000))
            h.Set("Retry-After", strconv.Itoa(secs))
            return c.JSON(http.StatusTooManyRequests, echo.Map{
                "error":       "rate limit exceeded",
                "retry_after": secs,
            })
        }
    }
}

// rateScope picks the bucket and Redis key for the request.  Booking
// requests without a readable owner id fall back to the API bucket.
func rateScope(cfg config.RateLimitConfig, c echo.Context) (config.Bucket, string) {
    if isBookingRoute(c) {
        if owner, ok := bookingOwner(c); ok {
            return cfg.Booking, cfg.Prefix + ":booking:owner:" + strconv.Itoa(owner)
        }
    }
    return cfg.API, buildRateKey(cfg, c)
}

func isBookingRoute(c echo.Context) bool {
    method, path := c.Request().Method, c.Path()
    return (method == http.MethodPost && path == "/v1/reservations") ||
        (method == http.MethodDelete && path == "/v1/users/:id/reservations")
}

// bookingOwner finds the owner id of a booking request: the :id path
// parameter when routed by user, otherwise "owner_id" in the JSON body.
// The body is restored so the handler can read it again.
func bookingOwner(c echo.Context) (int, bool) {
    if p := c.Param("id"); p != "" {
        return validate.Param(p)
    }
    req := c.Request()
    if req.Body == nil {
        return 0, false
    }
    raw, err := io.ReadAll(io.LimitReader(req.Body, maxPeekBytes))
    if err != nil {
        return 0, false
    }
    req.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), req.Body))

    var b struct {
        OwnerID any `json:"owner_id"`
    }
    dec := json.NewDecoder(bytes.NewReader(raw))
    dec.UseNumber()
    if err := dec.Decode(&b); err != nil {
        return 0, false
    }
    return validate.Int(b.OwnerID)
}

// parseTake unpacks the {allowed, tokens, wait_ms} reply of takeToken.
func parseTake(vals any) (allowed bool, remaining, waitMs int64, ok bool) {
    arr, isArr := vals.([]any)
    if !isArr || len(arr) != 3 {
        return false, 0, 0, false
    }
    a, ok1 := arr[0].(int64)
    r, ok2 := arr[1].(int64)
    w, ok3 := arr[2].(int64)
    if !ok1 || !ok2 || !ok3 {
        return false, 0, 0, false
    }
    return a == 1, r, w, true
}

func buildRateKey(cfg config.RateLimitConfig, c echo.Context) string {
    ip := c.RealIP()
    if ip == "" {
        ip = "unknown"
    }
    route := c.Request().Method + " " + c.Path()

    parts := []string{cfg.Prefix}
    switch strings.ToLower(cfg.KeyStrategy) {
    case "ip":
        parts = append(parts, "ip", ip)
    case "route":
        parts = append(parts, "route", route)
    default:
        parts = append(parts, "ip", ip, "route", route)
    }
    return strings.Join(parts, ":")
}
