package server

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rockyxcoded/Example-PDF-vector-search/app/api"
	"github.com/rockyxcoded/Example-PDF-vector-search/app/middleware"
)

type Server struct {
	listenAddr string
	app        *fiber.App
	logger     *slog.Logger
}

func NewServer(listenAddr, uploadDir string, pipeline api.DocumentPipeline, store api.Pinger) *Server {
	app := fiber.New(fiber.Config{
		ErrorHandler: api.ErrorHandler,
	})
	app.Use(middleware.RequestLogger())

	var (
		checkHandler   = api.NewCheckHandler(store)
		requestHandler = api.NewRequestHandler(pipeline, uploadDir)
		check          = app.Group("/check")
		apiv1          = app.Group("/api/v1")
	)

	check.Get("/healthy", checkHandler.HandleHealthy)
	apiv1.Post("/documents", requestHandler.HandleUpload)
	apiv1.Get("/documents", requestHandler.HandleList)
	apiv1.Delete("/documents/:filename", requestHandler.HandleDelete)
	apiv1.Post("/ask", requestHandler.HandleAsk)

	return &Server{
		listenAddr: listenAddr,
		app:        app,
		logger:     slog.Default(),
	}
}

func (s *Server) Run() {
	if err := s.app.Listen(s.listenAddr); err != nil {
		s.logger.Error("error to start server", "error", err.Error())
	}
}

func (s *Server) Stop() {
	if err := s.app.ShutdownWithTimeout(5 * time.Second); err != nil {
		s.logger.Error("server shutdown", "error", err.Error())
	}
	s.logger.Info("server stopped")
}
