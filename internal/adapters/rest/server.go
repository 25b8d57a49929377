package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dashboard-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// Server - REST API сервиса дашборда.
type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(cfg ServerConfig, market *MarketHandler, consultations *ConsultationHandler, baseLogger port.LoggerPort) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           NewRouter(cfg.AllowedOrigins, market, consultations, baseLogger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: baseLogger,
	}
}

// NewRouter собирает маршруты /api/v1. Вынесен отдельно для тестов.
func NewRouter(allowedOrigins []string, market *MarketHandler, consultations *ConsultationHandler, baseLogger port.LoggerPort) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/market", func(r chi.Router) {
			r.Get("/dashboard", market.GetDashboard)
			r.Post("/dashboard/refresh", market.RefreshDashboard)
			r.Get("/assets", market.ListAssets)
			r.Get("/assets/{assetID}", market.GetAsset)
			r.Get("/assets/{assetID}/chart", market.GetAssetChart)
		})

		// Заявки доступны только администратору
		r.Route("/consultations", func(r chi.Router) {
			r.Use(AuthMiddleware)

			r.Get("/", consultations.ListConsultations)
			r.Get("/{consultationID}", consultations.GetConsultation)
			r.Get("/{consultationID}/transitions", consultations.GetTransitions)
			r.Put("/{consultationID}", consultations.UpdateNotes)
			r.Patch("/{consultationID}/status", consultations.UpdateStatus)
			r.Post("/{consultationID}/messages", consultations.SendMessage)
			r.Delete("/{consultationID}", consultations.DeleteConsultation)
		})
	})

	return r
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
