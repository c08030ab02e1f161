package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"assistant/controllers"
	"assistant/services"
	"assistant/utils"
)

// Server struct wires the router, services, and configuration together
type Server struct {
	router *mux.Router
	port   string
	logger zerolog.Logger
}

// NewServer creates a new server instance
func NewServer(port string, logger zerolog.Logger) *Server {
	return &Server{
		router: mux.NewRouter(),
		port:   port,
		logger: logger,
	}
}

// setupRoutes configures all our endpoints
func (s *Server) setupRoutes(c *controllers.Controller) {
	// POST /api/logs - single frontend log event
	s.router.HandleFunc("/api/logs", c.LogHandler).Methods("POST")

	// POST /api/logs/batch - ordered batch of frontend log events
	s.router.HandleFunc("/api/logs/batch", c.LogBatchHandler).Methods("POST")

	// POST /api/search - web search for a downstream LLM context
	s.router.HandleFunc("/api/search", c.SearchHandler).Methods("POST")

	// GET /api/search/status - search provider configuration state
	s.router.HandleFunc("/api/search/status", c.SearchStatusHandler).Methods("GET")

	// GET /health - health check (useful for deployment)
	s.router.HandleFunc("/health", c.HealthHandler).Methods("GET")
}

// Start configures and starts the HTTP server
func (s *Server) Start(c *controllers.Controller) error {
	s.setupRoutes(c)

	// Configure CORS: log events and searches come from the browser frontend
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	handler := corsHandler.Handler(s.router)

	// Ensure port has colon prefix
	if !strings.HasPrefix(s.port, ":") {
		s.port = ":" + s.port
	}

	s.logger.Info().Str("port", s.port).Msg("Server starting")
	return http.ListenAndServe(s.port, handler)
}

func main() {
	utils.LoadEnvWithFallback()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	port := utils.EnvOrDefault("PORT", "8080")
	logFile := utils.EnvOrDefault("FRONTEND_LOG_FILE", "logs/frontend.log")

	frontendLog := services.NewFrontendLogService(logFile, logger)
	defer frontendLog.Close()

	search := services.NewWebSearchService(logger)

	controller := controllers.NewController(frontendLog, search, logger)

	server := NewServer(port, logger)
	if err := server.Start(controller); err != nil {
		logger.Fatal().Err(err).Msg("Server failed to start")
	}
}
