package config

import (
	"os"
	"regexp"
	"strings"

	"github.com/Egham-7/llm-router/internal/models"
)

// placeholderPattern matches ${VAR_NAME}. Everything up to the next '}' is
// the variable name, so ${A:-b} looks up a variable literally named "A:-b".
var placeholderPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// Environment supplies variable values during placeholder substitution
type Environment interface {
	Lookup(name string) (string, bool)
}

// OSEnvironment reads from the process environment
type OSEnvironment struct{}

// Lookup implements Environment
func (OSEnvironment) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapEnvironment is a fixed set of variables, used by tests and embedders
// that must not touch the process environment.
type MapEnvironment map[string]string

// Lookup implements Environment
func (m MapEnvironment) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// SubstituteEnvVars replaces every ${VAR_NAME} in content with the value of
// the variable. Undefined variables keep their placeholder. Substituted
// values are not scanned again.
func SubstituteEnvVars(content string, env Environment, log Logger) string {
	return substituteEnvVars(content, env, log, nil)
}

func substituteEnvVars(content string, env Environment, log Logger, metrics *Metrics) string {
	if env == nil {
		env = OSEnvironment{}
	}
	if log == nil {
		log = DefaultLogger()
	}

	return placeholderPattern.ReplaceAllStringFunc(content, func(match string) string {
		varName := match[2 : len(match)-1]

		if value, ok := env.Lookup(varName); ok {
			log.Infof("Substituted environment variable '%s' in config", varName)
			metrics.observeSubstitution(true)
			return value
		}

		log.Warnf("Environment variable '%s' not found, keeping placeholder", varName)
		metrics.observeSubstitution(false)
		return match
	})
}

// isUnresolvedPlaceholder reports whether value still has the ${...} shape
func isUnresolvedPlaceholder(value string) bool {
	return strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}")
}

// LoadServerConfig builds the inspection server settings from env, falling
// back to defaults for unset variables.
func LoadServerConfig(env Environment) models.ServerConfig {
	if env == nil {
		env = OSEnvironment{}
	}

	return models.ServerConfig{
		ConfigPath:     getEnv(env, "ROUTER_CONFIG_PATH", "config.yaml"),
		Port:           getEnv(env, "PORT", "8080"),
		AllowedOrigins: getEnv(env, "ALLOWED_ORIGINS", "*"),
		Environment:    getEnv(env, "ENVIRONMENT", "development"),
		LogLevel:       strings.ToLower(getEnv(env, "LOG_LEVEL", "info")),
	}
}

func getEnv(env Environment, key, defaultValue string) string {
	if value, ok := env.Lookup(key); ok && value != "" {
		return value
	}
	return defaultValue
}
