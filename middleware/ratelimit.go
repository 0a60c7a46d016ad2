package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/upb/blog-platform/utils"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// IPRateLimiter keeps one token bucket per client IP. Buckets idle for
// longer than the eviction window are dropped.
type IPRateLimiter struct {
	limit   rate.Limit
	burst   int
	clients *cache.Cache
	mu      sync.Mutex
	logger  *zap.Logger
}

// NewIPRateLimiter creates a limiter allowing perSecond requests with the given burst
func NewIPRateLimiter(perSecond float64, burst int, idle time.Duration, logger *zap.Logger) *IPRateLimiter {
	if idle <= 0 {
		idle = 10 * time.Minute
	}
	return &IPRateLimiter{
		limit:   rate.Limit(perSecond),
		burst:   burst,
		clients: cache.New(idle, 2*idle),
		logger:  logger,
	}
}

// Allow reports whether a request from key may proceed now
func (l *IPRateLimiter) Allow(key string) bool {
	return l.limiter(key).Allow()
}

func (l *IPRateLimiter) limiter(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.clients.Get(key); ok {
		lim := v.(*rate.Limiter)
		l.clients.SetDefault(key, lim)
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	l.clients.SetDefault(key, lim)
	return lim
}

// Middleware rejects requests over the limit with 429
func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !l.Allow(ip) {
			l.logger.Warn("rate limit exceeded",
				zap.String("request_id", GetRequestIDFromContext(r.Context())),
				zap.String("ip", ip),
				zap.String("path", r.URL.Path))
			w.Header().Set("Retry-After", strconv.Itoa(l.retryAfterSeconds()))
			_ = utils.WriteTooManyRequests(w, "Too many requests, please slow down", nil)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *IPRateLimiter) retryAfterSeconds() int {
	if l.limit <= 0 {
		return 1
	}
	secs := int(1 / float64(l.limit))
	if secs < 1 {
		secs = 1
	}
	return secs
}

// clientIP returns the host part of RemoteAddr, which chi's RealIP
// middleware has already rewritten from proxy headers
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
