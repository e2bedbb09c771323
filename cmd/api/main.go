package main

import (
	"github.com/Egham-7/llm-router/internal/config"
	"github.com/Egham-7/llm-router/pkg/server"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	// Load environment files explicitly
	envFiles := []string{".env.local", ".env.development", ".env"}
	config.LoadEnvFiles(envFiles, nil)

	settings := config.LoadServerConfig(config.OSEnvironment{})
	server.SetupLogLevel(settings.LogLevel)

	loader := config.NewLoader(config.WithMetrics(config.NewMetrics(prometheus.DefaultRegisterer)))
	cfg, err := loader.LoadFromFile(settings.ConfigPath)
	if err != nil {
		fiberlog.Fatalf("Failed to load config: %v", err)
	}

	fiberlog.Infof("Starting LLM router config server with %d policies...", len(cfg.Policies))
	if err := server.New(cfg, settings).Run(); err != nil {
		fiberlog.Fatalf("Server failed: %v", err)
	}
}
