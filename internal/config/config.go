package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Egham-7/llm-router/internal/models"

	"github.com/joho/godotenv"
)

// Loader reads, substitutes, parses and validates routing configuration
// files. A Loader holds no per-load state and may be shared between
// goroutines.
type Loader struct {
	env     Environment
	log     Logger
	metrics *Metrics
}

// Option customizes a Loader
type Option func(*Loader)

// WithEnvironment sets the source of placeholder values
func WithEnvironment(env Environment) Option {
	return func(l *Loader) {
		if env != nil {
			l.env = env
		}
	}
}

// WithLogger sets the sink for substitution and validation diagnostics
func WithLogger(log Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithMetrics records load outcomes on m
func WithMetrics(m *Metrics) Option {
	return func(l *Loader) {
		l.metrics = m
	}
}

// NewLoader creates a Loader that reads the process environment and logs
// through fiber's logger unless overridden by opts.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		env: OSEnvironment{},
		log: DefaultLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadFromFile loads configuration from a YAML file with environment variable
// substitution and validates the result.
func (l *Loader) LoadFromFile(configPath string) (*models.RouterConfig, error) {
	cfg, err := l.loadFromFile(configPath)
	l.metrics.observeLoad(err)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) loadFromFile(configPath string) (*models.RouterConfig, error) {
	cleanPath := filepath.Clean(configPath)

	data, err := os.ReadFile(cleanPath) // #nosec G304 - operator supplied path
	if err != nil {
		return nil, &IOError{Path: cleanPath, Err: err}
	}

	return l.load(data)
}

// Load runs substitution, parsing and validation over raw configuration text
func (l *Loader) Load(data []byte) (*models.RouterConfig, error) {
	cfg, err := l.load(data)
	l.metrics.observeLoad(err)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (l *Loader) load(data []byte) (*models.RouterConfig, error) {
	content := substituteEnvVars(string(data), l.env, l.log, l.metrics)

	cfg, err := Parse([]byte(content))
	if err != nil {
		return nil, err
	}

	if err := validate(cfg, l.log, l.metrics); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile loads configuration using the process environment and the
// default logger.
func LoadFromFile(configPath string) (*models.RouterConfig, error) {
	return NewLoader().LoadFromFile(configPath)
}

// LoadEnvFiles loads environment variables from .env files in order of precedence.
// Loads files in the order provided (first has highest priority); variables
// already present in the process environment are never overwritten.
func LoadEnvFiles(envFiles []string, log Logger) {
	if log == nil {
		log = DefaultLogger()
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			log.Warnf("Failed to load environment file %s: %v", envFile, err)
			continue
		}
		log.Infof("Loaded environment variables from %s", envFile)
	}
}

// ReadEnvFile parses a .env file into a MapEnvironment without touching the
// process environment.
func ReadEnvFile(path string) (MapEnvironment, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return MapEnvironment(values), nil
}

// LayeredEnvironment consults each Environment in order and returns the first
// defined value.
type LayeredEnvironment []Environment

// Lookup implements Environment
func (e LayeredEnvironment) Lookup(name string) (string, bool) {
	for _, env := range e {
		if env == nil {
			continue
		}
		if value, ok := env.Lookup(name); ok {
			return value, true
		}
	}
	return "", false
}
