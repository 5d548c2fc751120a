// Copyright (c) 2026 Memoria. All rights reserved.
// Author: hoang.bui.gl@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/buihoang/memoria/internal/platform/constants"
	"github.com/buihoang/memoria/internal/platform/ctxutil"
)

// # Per-Route Request Windows

// WindowLimit enforces a fixed-window request cap per client IP, backed by Redis.
//
// # Usage
//
// Mounted only on abuse-sensitive routes: login (credential stuffing),
// invite creation (mail spam), and share lookups (token probing). The global
// in-memory [RateLimit] stays in front as the coarse guard.
//
// # Flow
//  1. INCR ratelimit:<name>:<ip>.
//  2. First hit in a window sets the key TTL.
//  3. Above the cap, reject with 429 and a Retry-After derived from the TTL.
//
// # Failure Mode
//
// If Redis is unreachable the request is allowed through (fail-open): losing
// a throttle window is preferable to taking the whole gallery offline.
func WindowLimit(client *redis.Client, name string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := request.Context()
			key := constants.RedisPrefixRateLimit + name + ":" + RealIP(request)

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				ctxutil.GetLogger(ctx).WarnContext(ctx, "rate_window_unavailable",
					slog.String("window", name),
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			// First request of a fresh window owns the expiry.
			if count == 1 {
				if err := client.Expire(ctx, key, window).Err(); err != nil {
					ctxutil.GetLogger(ctx).WarnContext(ctx, "rate_window_expire_failed",
						slog.String("window", name),
						slog.Any("error", err),
					)
				}
			}

			if count > int64(limit) {
				retryAfter := int(window.Seconds())
				if ttl, err := client.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					retryAfter = int(ttl.Seconds())
				}

				writer.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				writeError(writer, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
