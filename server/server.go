// Package server exposes campaign flows over HTTP. Every flow lives in
// memory for the lifetime of the process and is addressed by a UUID.
package server

import (
	"errors"
	"log/slog"
	"sort"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/google/uuid"
	"github.com/meikuraledutech/flow"
	"github.com/meikuraledutech/flow/internal/tracing"
	"github.com/meikuraledutech/flow/memory"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
)

// ErrFlowNotFound is returned for requests naming an unknown flow.
var ErrFlowNotFound = errors.New("server: flow not found")

// Config configures a Server. Zero values pick defaults.
type Config struct {
	Logger    *slog.Logger
	Tracer    trace.Tracer
	Registry  *prometheus.Registry
	AccessLog bool
}

type session struct {
	mu      sync.Mutex // serializes intents on one flow
	builder *flow.Builder
}

// Server holds the flows and serves the HTTP surface.
type Server struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	registry  *prometheus.Registry
	metrics   *metrics
	validate  *validator.Validate
	accessLog bool

	mu       sync.RWMutex
	sessions map[string]*session
}

func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = tracing.Tracer("campaignflow/server")
	}
	if cfg.Registry == nil {
		cfg.Registry = prometheus.NewRegistry()
	}

	return &Server{
		logger:    cfg.Logger,
		tracer:    cfg.Tracer,
		registry:  cfg.Registry,
		metrics:   newMetrics(cfg.Registry),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		accessLog: cfg.AccessLog,
		sessions:  make(map[string]*session),
	}
}

// App builds the fiber application.
func (s *Server) App() *fiber.App {
	app := fiber.New()
	app.Use(recoverer.New())
	if s.accessLog {
		app.Use(logger.New())
	}

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("campaignflow API")
	})
	app.Get("/health", s.health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	// ── Flows ─────────────────────────────────────────────────────────
	f := app.Group("/flows")
	f.Post("/", s.createFlow)
	f.Get("/", s.listFlows)
	f.Get("/:id", s.getFlow)
	f.Delete("/:id", s.deleteFlow)
	f.Get("/:id/mermaid", s.getMermaid)

	// ── Steps ─────────────────────────────────────────────────────────
	f.Post("/:id/actions", s.appendAction)
	f.Post("/:id/close", s.closeFlow)

	// ── Nodes ─────────────────────────────────────────────────────────
	f.Delete("/:id/nodes/:nodeId", s.deleteNode)
	f.Patch("/:id/positions", s.reposition)

	// ── Edges ─────────────────────────────────────────────────────────
	f.Post("/:id/edges", s.connect)
	f.Delete("/:id/edges/:edgeId", s.deleteEdge)

	return app
}

// Start listens on the given port until the app is shut down.
func (s *Server) Start(port int) error {
	return s.App().Listen(":" + strconv.Itoa(port))
}

func (s *Server) create() (string, *session, error) {
	id := uuid.NewString()
	b, err := flow.NewBuilder(memory.New(), flow.WithLogger(s.logger.With("flow", id)))
	if err != nil {
		return "", nil, err
	}
	sess := &session{builder: b}

	s.mu.Lock()
	s.sessions[id] = sess
	n := len(s.sessions)
	s.mu.Unlock()

	s.metrics.flows.Set(float64(n))
	return id, sess, nil
}

func (s *Server) session(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrFlowNotFound
	}
	return sess, nil
}

func (s *Server) remove(id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	n := len(s.sessions)
	s.mu.Unlock()

	if !ok {
		return ErrFlowNotFound
	}
	s.metrics.flows.Set(float64(n))
	return nil
}

func (s *Server) ids() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
