package registry

import (
	"net/http"
	"time"

	"crpt-gateway/crpt/application"
	"crpt-gateway/crpt/domain"
	"crpt-gateway/crpt/infra"
)

type ConcurrencyOptions struct {
	Max            int
	RejectStatus   int
	AcquireTimeout time.Duration
	Codec          domain.Codec
}

// ConcurrencyMiddleware limita quantos envios o registro processa ao mesmo
// tempo. Max <= 0 desliga o limite.
func ConcurrencyMiddleware(opts ConcurrencyOptions) func(next http.Handler) http.Handler {
	pool, err := infra.NewSlotPool(opts.Max)
	if err != nil {
		return func(next http.Handler) http.Handler { return next }
	}
	if opts.RejectStatus == 0 {
		opts.RejectStatus = http.StatusServiceUnavailable
	}
	if opts.Codec == nil {
		opts.Codec = infra.NewJSONCodec()
	}

	admission := application.Admission{Gate: pool, AcquireTimeout: opts.AcquireTimeout}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			release, err := admission.Acquire(r.Context())
			if err != nil {
				writeReply(w, opts.Codec, opts.RejectStatus, domain.RejectedResponse("registry busy"))
				return
			}
			defer release()

			next.ServeHTTP(w, r)
		})
	}
}
