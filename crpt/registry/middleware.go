package registry

import (
	"net"
	"net/http"
	"strings"
	"time"

	"crpt-gateway/crpt/domain"
	"crpt-gateway/crpt/infra"
)

type KeyFunc func(r *http.Request) string

// QuotaStore decide se a chave ainda tem cota agora. infra.Store implementa.
type QuotaStore interface {
	Allow(key string) (bool, time.Duration)
}

type Options struct {
	Store               QuotaStore
	Codec               domain.Codec
	KeyFn               KeyFunc
	KeyHeader           string
	TrustXForwardedFor  bool
	RejectStatus        int
	RetryAfter          time.Duration
	AddRateLimitHeaders bool
}

type rateInfo interface {
	RPS() float64
	Burst() int
}

// BearerToken extrai o token de "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(auth[7:])
}

// DefaultKeyFunc usa o token Bearer; sem token, cai para header/XFF/RemoteAddr.
func DefaultKeyFunc(keyHeader string, trustXFF bool) KeyFunc {
	return func(r *http.Request) string {
		if tok := BearerToken(r); tok != "" {
			return "token:" + tok
		}

		if keyHeader != "" {
			if v := strings.TrimSpace(r.Header.Get(keyHeader)); v != "" {
				return v
			}
		}

		if trustXFF {
			// pega o primeiro IP do X-Forwarded-For (cliente original)
			if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
				parts := strings.Split(xff, ",")
				if ip := strings.TrimSpace(parts[0]); ip != "" {
					return ip
				}
			}
		}

		host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
		if err == nil && host != "" {
			return host
		}
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}
}

// Middleware aplica a cota do registro antes do handler.
func Middleware(opts Options) func(next http.Handler) http.Handler {
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusTooManyRequests
	}
	if opts.RetryAfter == 0 {
		opts.RetryAfter = 1 * time.Second
	}
	if opts.KeyFn == nil {
		opts.KeyFn = DefaultKeyFunc(opts.KeyHeader, opts.TrustXForwardedFor)
	}
	if opts.Codec == nil {
		opts.Codec = infra.NewJSONCodec()
	}

	return func(next http.Handler) http.Handler {
		if opts.Store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := opts.KeyFn(r)

			if opts.AddRateLimitHeaders {
				if ri, ok := opts.Store.(rateInfo); ok {
					w.Header().Set("X-RateLimit-RPS", formatFloat(ri.RPS()))
					w.Header().Set("X-RateLimit-Burst", formatInt(ri.Burst()))
				}
			}

			allowed, wait := opts.Store.Allow(key)
			if !allowed {
				if wait <= 0 {
					wait = opts.RetryAfter
				}
				w.Header().Set("Retry-After", retryAfterSeconds(wait.Seconds()))
				writeReply(w, opts.Codec, opts.RejectStatus, domain.RejectedResponse("rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
