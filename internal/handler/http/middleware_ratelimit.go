package http

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/marketforge/marketsync/internal/logger"
	"github.com/marketforge/marketsync/internal/ratelimit"
	"github.com/marketforge/marketsync/internal/utils"
	"github.com/marketforge/marketsync/models"
)

// withRateLimit builds a middleware enforcing a fixed-window policy of limit
// requests per window for each client address. Limit and window come from the
// route group's configuration, so the auth endpoints and the collection
// endpoints carry independent budgets.
//
// The X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset headers
// are set on every checked response, allowed or rejected. A rejected request
// receives HTTP 429 with a Retry-After header holding the whole number of
// seconds until the window rolls over.
//
// A non-positive limit or window disables the check for the group.
func (h *Handler) withRateLimit(limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 || window <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			log := logger.FromRequest(r)

			result, err := h.limiter.Check(clientKey(r), limit, window)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if err != nil {
				var limitErr *ratelimit.LimitExceededError
				if errors.As(err, &limitErr) {
					log.Warn().
						Str("uri", r.RequestURI).
						Int("retry_after", limitErr.RetryAfterSeconds).
						Msg("rate limit exceeded")
					w.Header().Set("Retry-After", strconv.Itoa(limitErr.RetryAfterSeconds))
					utils.WriteJSON(w, models.ErrorResponse{Error: limitErr.Error()}, http.StatusTooManyRequests)
					return
				}

				log.Err(err).Msg("unexpected rate limiter failure")
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey derives the limiter key from the request's remote address,
// dropping the ephemeral port so consecutive connections from one host share
// a window.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
