package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	loginRateLimit  = 10
	loginRateWindow = time.Minute
)

// LoginRateLimit caps login attempts per client IP using a redis counter
// with a sliding expiry. With no redis client configured the middleware is
// a pass-through, so single-node deployments work without redis. Redis
// errors fail open: an unreachable counter store must not lock everyone
// out.
func LoginRateLimit(rdb *redis.Client, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rdb == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			key := fmt.Sprintf("ratelimit:login:%s", ip)

			count, err := rdb.Incr(r.Context(), key).Result()
			if err != nil {
				logger.Warn("login rate limiter unavailable", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if count == 1 {
				if err := rdb.Expire(r.Context(), key, loginRateWindow).Err(); err != nil {
					logger.Warn("failed to set rate limit expiry", "error", err)
				}
			}
			if count > loginRateLimit {
				w.Header().Set("Retry-After", fmt.Sprintf("%d", int(loginRateWindow.Seconds())))
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP keys the counter on RemoteAddr. RealIP runs earlier in the
// chain and folds trusted forwarding headers into RemoteAddr; reading
// X-Forwarded-For here would trust an attacker-settable header.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
