// Package api provides the HTTP API server and handlers for calsync.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/calsync/calsync-server/internal/config"
	"github.com/calsync/calsync-server/internal/http/response"
	"github.com/calsync/calsync-server/internal/service"
	"github.com/calsync/calsync-server/internal/store"
)

// Services groups the business services used by the API server.
type Services struct {
	Country  *service.CountryService
	Calendar *service.CalendarService
	User     *service.UserService
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store    store.Store
	services *Services
	router   *chi.Mux
	api      huma.API
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.Store, services *Services, cfg config.ServerConfig, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:    st,
		services: services,
		router:   router,
		logger:   logger,
	}

	s.setupMiddleware(cfg)
	s.api = newAPI(router)
	s.registerRoutes()

	router.NotFound(response.NotFound(logger))
	router.MethodNotAllowed(response.MethodNotAllowed(logger))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// API exposes the huma API, mainly for OpenAPI generation.
func (s *Server) API() huma.API {
	return s.api
}

func (s *Server) setupMiddleware(cfg config.ServerConfig) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// newAPI builds the huma API on top of the router. The schema link hook is
// dropped so bodies carry only the envelope fields.
func newAPI(router chi.Router) huma.API {
	humaConfig := huma.DefaultConfig("Calsync API", "1.0.0")
	humaConfig.Info.Description = "Public holidays, country data, and per-user holiday calendars."
	humaConfig.CreateHooks = nil
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	RegisterErrorHandler()

	return humachi.New(router, humaConfig)
}

func (s *Server) registerRoutes() {
	s.registerHealthRoutes()
	s.registerCountryRoutes()
	s.registerUserRoutes()
	s.registerCalendarRoutes()
}
