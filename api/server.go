package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/appstore-backend/config"
	"github.com/rpupo63/appstore-backend/services"
	"github.com/rpupo63/appstore-backend/storage"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// handlerDeps is what every page handler shares.
type handlerDeps struct {
	views         *Views
	flashes       *FlashStore
	layout        storage.Layout
	maxUploadSize int64
}

func NewServer(settings config.Settings, catalog *services.Catalog, layout storage.Layout) (Server, error) {
	address := fmt.Sprintf("0.0.0.0:%s", settings.Port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router, err := newRouter(settings, catalog, layout)
	if err != nil {
		return Server{}, err
	}

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  settings.ReadTimeout,  // Timeout for reading the entire request
		WriteTimeout: settings.WriteTimeout, // Timeout for writing the response
		IdleTimeout:  settings.IdleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

func newRouter(settings config.Settings, catalog *services.Catalog, layout storage.Layout) (*chi.Mux, error) {
	views, err := NewViews(settings.AssetsBaseURL)
	if err != nil {
		return nil, err
	}

	deps := handlerDeps{
		views:         views,
		flashes:       NewFlashStore(settings.SessionSecret),
		layout:        layout,
		maxUploadSize: settings.MaxUploadSize,
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	if len(settings.AcceptedOrigins) > 0 {
		chiRouter.Use(corsMiddleware(settings.AcceptedOrigins))
	}

	handlers := initializeHandlers(catalog, deps)
	setupCatalogRoutes(chiRouter, handlers, settings.AssetsBaseURL)

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Dur("uptime", time.Since(s.startupTime)).Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
