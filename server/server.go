package server

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	gorillasessions "github.com/gorilla/sessions"
	"github.com/rs/zerolog"

	"github.com/jrsteele09/go-auth-portal/authapi"
	"github.com/jrsteele09/go-auth-portal/internal/config"
	"github.com/jrsteele09/go-auth-portal/session"
)

// Server is the auth portal: it renders the auth pages, talks to the remote
// credential service on the user's behalf, and keeps the bearer token in a
// server-side session store keyed by an HTTP-only cookie.
type Server struct {
	env        string // Environment (e.g., "DEV", "production")
	router     *mux.Router
	routes     []string
	config     config.Config
	api        *authapi.Client
	sessions   session.Repo
	guard      *session.Guard
	flow       *gorillasessions.CookieStore
	sessionTTL time.Duration
	log        zerolog.Logger
}

// New wires the portal together. The flow cookie store and guard are created
// once here and handed to the handlers; nothing reaches for ambient state.
func New(cfg config.Config, api *authapi.Client, sessionRepo session.Repo, logger zerolog.Logger) *Server {
	flow := gorillasessions.NewCookieStore([]byte(cfg.GetFlowCookieKey()))
	flow.Options = &gorillasessions.Options{
		Path:     "/",
		MaxAge:   flowCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	s := &Server{
		env:        cfg.GetEnv(),
		router:     mux.NewRouter(),
		config:     cfg,
		api:        api,
		sessions:   sessionRepo,
		guard:      session.NewGuard(sessionRepo, logger),
		flow:       flow,
		sessionTTL: time.Duration(cfg.GetSessionTTLMinutes()) * time.Minute,
		log:        logger.With().Str("component", "server").Logger(),
	}

	s.initRoutes()
	s.logRoutes()

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) registerRoute(method, path string, handler http.HandlerFunc) {
	s.routes = append(s.routes, fmt.Sprintf("%s %s", method, path))
	s.router.HandleFunc(path, handler).Methods(method)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Printf("[%-19s] %s\n", displayMethod, path)
}

// Helper function to determine the scheme (http/https)
func getScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if scheme := r.Header.Get("X-Forwarded-Proto"); scheme != "" {
		return scheme
	}
	return "http"
}
