package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/Egham-7/llm-router/internal/api"
	"github.com/Egham-7/llm-router/internal/models"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 30 * time.Second

// Server exposes a loaded routing configuration over a read-only HTTP API.
type Server struct {
	config   *models.RouterConfig
	settings models.ServerConfig
	gatherer prometheus.Gatherer
	app      *fiber.App
}

// Option customizes a Server
type Option func(*Server)

// WithGatherer serves metrics from g on /metrics instead of the default
// Prometheus registry.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		if g != nil {
			s.gatherer = g
		}
	}
}

// New creates a Server for cfg. The cfg parameter is required and must not be nil.
func New(cfg *models.RouterConfig, settings models.ServerConfig, opts ...Option) *Server {
	if cfg == nil {
		panic("router config cannot be nil - use config.LoadFromFile() or the builder to create one")
	}

	s := &Server{
		config:   cfg,
		settings: settings,
		gatherer: prometheus.DefaultGatherer,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.app = createFiberApp(settings)
	setupMiddleware(s.app, settings)
	setupRoutes(s.app, cfg, s.gatherer)
	return s
}

// App returns the underlying fiber application, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run starts the server and blocks until an interrupt or a listen failure.
func (s *Server) Run() error {
	SetupLogLevel(s.settings.LogLevel)

	port := s.settings.Port
	if port == "" {
		port = "8080"
	}
	listenAddr := ":" + port

	fmt.Printf("LLM router config API starting on %s\n", listenAddr)
	fmt.Printf("   Environment: %s\n", s.settings.Environment)
	fmt.Printf("   Policies: %d\n", len(s.config.Policies))
	fmt.Printf("   Go version: %s\n", runtime.Version())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	serverErrChan := make(chan error, 1)
	go func() {
		if err := s.app.Listen(listenAddr); err != nil {
			serverErrChan <- err
		}
	}()

	select {
	case sig := <-sigChan:
		fiberlog.Infof("Received signal: %v. Starting graceful shutdown...", sig)
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	}

	fiberlog.Info("Server shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	shutdownErrChan := make(chan error, 1)
	go func() {
		shutdownErrChan <- s.app.ShutdownWithTimeout(shutdownTimeout)
	}()

	select {
	case err := <-shutdownErrChan:
		if err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		fiberlog.Info("Server shutdown completed successfully")
	case <-shutdownCtx.Done():
		return fmt.Errorf("shutdown timeout exceeded")
	}

	return nil
}

func createFiberApp(settings models.ServerConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               "LLM Router Config v1.0",
		DisableStartupMessage: settings.IsProduction(),
		ReadTimeout:           30 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           2 * time.Minute,
		CaseSensitive:         true,
		StrictRouting:         false,
		Network:               "tcp",
		ServerHeader:          "LLMRouter",
	})
}

func setupMiddleware(app *fiber.App, settings models.ServerConfig) {
	isProd := settings.IsProduction()

	// Recover middleware (must be first)
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !isProd,
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))

	if isProd {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${status} ${method} ${path} ${latency} ${bytesSent}b\n",
			Output: os.Stdout,
		}))
	} else {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${status} - ${latency} ${method} ${path} ${error}\n",
			Output: os.Stdout,
		}))
	}

	allowedOrigins := settings.AllowedOrigins
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, OPTIONS",
		MaxAge:       86400,
	}))
}

func setupRoutes(app *fiber.App, cfg *models.RouterConfig, gatherer prometheus.Gatherer) {
	healthHandler := api.NewHealthHandler(cfg)
	policyHandler := api.NewPolicyHandler(cfg)

	app.Get("/", welcomeHandler())
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := app.Group("/v1")
	v1.Get("/config.yaml", policyHandler.ExportYAML)
	v1.Get("/policies", policyHandler.ListPolicies)
	v1.Get("/policies/index/:index", policyHandler.GetPolicyByIndex)
	v1.Get("/policies/:name", policyHandler.GetPolicy)
	v1.Get("/policies/:name/llms/index/:index", policyHandler.GetLLMByIndex)
	v1.Get("/policies/:name/llms/:llm", policyHandler.GetLLM)
}

func welcomeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":    "LLM router configuration API",
			"version":    "1.0.0",
			"go_version": runtime.Version(),
			"status":     "running",
			"endpoints": fiber.Map{
				"health":   "/health",
				"metrics":  "/metrics",
				"policies": "/v1/policies",
				"policy":   "/v1/policies/:name",
				"llm":      "/v1/policies/:name/llms/:llm",
				"export":   "/v1/config.yaml",
			},
		})
	}
}

// SetupLogLevel applies a textual log level to fiber's global logger
func SetupLogLevel(level string) {
	logLevel := strings.ToLower(level)

	switch logLevel {
	case "trace":
		fiberlog.SetLevel(fiberlog.LevelTrace)
	case "debug":
		fiberlog.SetLevel(fiberlog.LevelDebug)
	case "info", "":
		fiberlog.SetLevel(fiberlog.LevelInfo)
	case "warn", "warning":
		fiberlog.SetLevel(fiberlog.LevelWarn)
	case "error":
		fiberlog.SetLevel(fiberlog.LevelError)
	case "fatal":
		fiberlog.SetLevel(fiberlog.LevelFatal)
	case "panic":
		fiberlog.SetLevel(fiberlog.LevelPanic)
	default:
		fiberlog.SetLevel(fiberlog.LevelInfo)
		fiberlog.Warnf("Unknown log level '%s', defaulting to 'info'", logLevel)
	}

	fiberlog.Infof("Log level set to: %s", logLevel)
}
