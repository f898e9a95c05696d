package http_handler

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/anthanhphan/go-vanet-cluster/internal/api/config"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/domain"
	"github.com/anthanhphan/go-vanet-cluster/internal/api/port"
	sdklogger "github.com/anthanhphan/gosdk/logger"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app      *fiber.App
	cfg      *config.Config
	ranking  port.RankingService
	topology port.TopologyService
}

func NewServer(cfg *config.Config, ranking port.RankingService, topology port.TopologyService) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Server.BodyLimit,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	s := &Server{
		app:      app,
		cfg:      cfg,
		ranking:  ranking,
		topology: topology,
	}

	// Routes
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", s.handleHealth)
	s.app.Post("/rankings", s.handleRank)
	s.app.Get("/cluster", s.handleCluster)
	s.app.Post("/nodes/:addr/start", s.handleStartNode)
	s.app.Post("/nodes/:addr/stop", s.handleStopNode)
}

func (s *Server) Start() error {
	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) sendJSONError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (s *Server) handleRank(c *fiber.Ctx) error {
	var req domain.RankRequest
	if err := c.BodyParser(&req); err != nil {
		return s.sendJSONError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), s.cfg.App.RankTimeout())
	defer cancel()

	resp, err := s.ranking.Rank(ctx, req)
	if err != nil {
		if errors.Is(err, port.ErrInvalidRequest) {
			return s.sendJSONError(c, fiber.StatusBadRequest, err.Error())
		}
		sdklogger.Errorw("Ranking failed", "candidates", len(req.Candidates), "error", err.Error())
		return s.sendJSONError(c, fiber.StatusInternalServerError, fmt.Sprintf("Ranking failed: %v", err))
	}

	return c.JSON(resp)
}

func (s *Server) handleCluster(c *fiber.Ctx) error {
	return c.JSON(s.topology.Cluster(c.UserContext()))
}

func (s *Server) handleStartNode(c *fiber.Ctx) error {
	return s.control(c, s.topology.StartNode)
}

func (s *Server) handleStopNode(c *fiber.Ctx) error {
	return s.control(c, s.topology.StopNode)
}

func (s *Server) control(c *fiber.Ctx, call func(context.Context, string) (bool, error)) error {
	addr, err := url.PathUnescape(c.Params("addr"))
	if err != nil || addr == "" {
		return s.sendJSONError(c, fiber.StatusBadRequest, "Invalid node address")
	}

	running, err := call(c.UserContext(), addr)
	switch {
	case errors.Is(err, port.ErrUnknownNode):
		return s.sendJSONError(c, fiber.StatusNotFound, err.Error())
	case err != nil:
		return s.sendJSONError(c, fiber.StatusBadGateway, err.Error())
	}

	return c.JSON(fiber.Map{
		"addr":    addr,
		"running": running,
	})
}
