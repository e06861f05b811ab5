package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/observability/metrics"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/observability/tracing"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/services"
)

const traceIDHeader = "X-Trace-Id"

type handler struct {
	service services.LedgerService
}

// NewRouter wires the public API. Reads are anonymous, every mutation needs
// a bearer token identifying the caller.
func NewRouter(cfg *config.Config, service services.LedgerService) http.Handler {
	h := &handler{service: service}
	auth := NewAuthenticator(cfg.Auth)

	r := chi.NewRouter()
	r.Use(traceMiddleware)
	r.Use(metricsMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	r.Get("/healthcheck", h.healthcheck)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/status", h.status)
		r.Get("/accounts/{account}", h.account)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Post("/stake", h.stake)
			r.Post("/unstake", h.unstake)
			r.Post("/restake", h.restake)
			r.Post("/claim", h.claim)

			r.Route("/admin", func(r chi.Router) {
				r.Post("/init", h.initLedger)
				r.Post("/pause", h.pause)
				r.Post("/unpause", h.unpause)
				r.Post("/fees", h.switchFees)
				r.Post("/rewards", h.switchRewards)
				r.Post("/emergency-withdraw", h.emergencyWithdraw)
			})
		})
	})

	return r
}

// traceMiddleware attaches a trace id, taken from the request when present,
// to the context logger and echoes it back.
func traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := tracing.WithTraceID(r.Context(), r.Header.Get(traceIDHeader))
		w.Header().Set(traceIDHeader, tracing.TraceIDFromContext(ctx))

		log.Ctx(ctx).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("Request received")
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stop := metrics.StartHttpRequestDurationTimer(r.Method)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		stop(route, status)
	})
}
