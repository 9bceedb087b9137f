package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/solivera/gatekeeper/internal/platform/httpx"
)

// Request budgets per client address over a trailing window. Each operation
// class gets its own limiter instance, so signup and login counters are
// independent even for the same address.
const (
	signupLimit = 5
	loginLimit  = 10
	rateWindow  = 15 * time.Minute
)

// SignupLimiter returns the middleware throttling account creation.
func SignupLimiter() func(http.Handler) http.Handler {
	return limitByIP(signupLimit, rateWindow)
}

// LoginLimiter returns the middleware throttling credential checks.
func LoginLimiter() func(http.Handler) http.Handler {
	return limitByIP(loginLimit, rateWindow)
}

func limitByIP(limit int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(limit, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			httpx.RateLimitProblem(w, window)
		}),
	)
}
