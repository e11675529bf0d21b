package middleware

import (
	"net"
	"net/http"
	"strconv"

	"studio/shared"
	"studio/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"

	headerRateLimit          = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitWindow    = "X-RateLimit-Window"
)

// RateLimit counts requests per client address in fixed windows. When the cache is down requests pass through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	limiter := a.config.App.RateLimiter
	limit := max(1, limiter.MaxRequests)
	window := max(1, limiter.WindowSeconds)

	return func(next http.Handler) http.Handler {
		if !limiter.Enable {
			return next
		}

		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			key := shared.BuildCacheKey(cacheKeyRateLimit, clientAddress(request))

			count, err := a.cache.Increment(request.Context(), key, window)
			if err != nil {
				log.Warn().Err(err).Msg("rate limiter cache unavailable, letting request through")

				next.ServeHTTP(writer, request)

				return
			}

			writer.Header().Set(headerRateLimit, strconv.Itoa(limit))
			writer.Header().Set(headerRateLimitRemaining, strconv.FormatInt(max(0, int64(limit)-count), 10))
			writer.Header().Set(headerRateLimitWindow, strconv.Itoa(window))

			if count > int64(limit) {
				response.WithRequestLimitExceeded(writer)

				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}

// clientAddress strips the port from RemoteAddr, which chi's RealIP has already resolved from proxy headers.
func clientAddress(request *http.Request) string {
	host, _, err := net.SplitHostPort(request.RemoteAddr)
	if err != nil {
		return request.RemoteAddr
	}

	return host
}
