// Package server assembles the HTTP router.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/handika51/openmusic-api/internal/auth"
	"github.com/handika51/openmusic-api/internal/httputil"
)

const serviceName = "openmusic-api"

// Routes is implemented by every feature handler.
type Routes interface {
	Routes(r chi.Router)
}

type Server struct {
	tokens  *auth.TokenManager
	timeout time.Duration

	public  []Routes
	private []Routes
}

// New builds a server. Public handlers are reachable anonymously; private
// ones sit behind auth.Authenticate.
func New(tokens *auth.TokenManager, timeout time.Duration, public, private []Routes) *Server {
	return &Server{
		tokens:  tokens,
		timeout: timeout,
		public:  public,
		private: private,
	}
}

func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", s.handleHealth)

	for _, h := range s.public {
		h.Routes(r)
	}

	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(s.tokens))
		for _, h := range s.private {
			h.Routes(r)
		}
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": serviceName,
	})
}
