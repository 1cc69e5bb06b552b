// Package http exposes the expense service as a JSON API.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"moneta/internal/agent"
	applog "moneta/internal/log"
	"moneta/internal/middleware/ratelimit"
	"moneta/internal/middleware/security"
	"moneta/internal/middleware/trace"
	"moneta/internal/query"
	"moneta/internal/store"
)

// Options carries the server's runtime knobs.
type Options struct {
	Addr string

	// Credential forwarded per call to the language-model endpoints. An
	// empty value is allowed; those endpoints then report it per request.
	Credential string

	RateLimitPerMinute int
}

type Server struct {
	http.Server

	store     *store.Store
	engine    *query.Engine
	extractor *agent.Extractor
	resolver  *agent.Resolver

	credential string

	limiter      *ratelimit.Limiter
	log          *applog.Logger
	shutdownOnce sync.Once
}

// NewServer wires the routes and middleware and returns a ready-to-run server.
func NewServer(opts Options, st *store.Store, engine *query.Engine, extractor *agent.Extractor, resolver *agent.Resolver, logger *applog.Logger) *Server {
	if logger == nil {
		logger = applog.New(applog.DefaultConfig())
	}

	s := &Server{
		store:      st,
		engine:     engine,
		extractor:  extractor,
		resolver:   resolver,
		credential: opts.Credential,
		limiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: opts.RateLimitPerMinute,
		}),
		log: logger.WithComponent(applog.ComponentHTTP),
	}

	r := chi.NewRouter()
	r.Use(trace.NewMiddleware().Handler)
	r.Use(security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/expenses", s.handleListExpenses)
		r.Post("/expenses", s.handleCreateExpense)

		// The parse and agent endpoints each spend a model call; only they
		// sit behind the rate limiter.
		r.Group(func(r chi.Router) {
			r.Use(s.limiter.Middleware)
			r.Post("/expenses/parse", s.handleParseExpenses)
			r.Post("/agent/query", s.handleAgentQuery)
		})
	})

	s.Server = http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Shutdown stops the server and its background goroutines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
